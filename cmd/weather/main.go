package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/okutsenko-ucu/cloud-portfolio/internal/cli"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/config"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/services/logger"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/services/weather"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	// Config is loaded before anything else so a missing API key never
	// reaches the network.
	cfg, err := config.NewWeatherConfig()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	fileLogger, err := logger.NewFileLogger(cfg.LogsPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer func() {
		_ = fileLogger.Sync()
	}()

	prompter := cli.NewPrompter(os.Stdin, os.Stdout)

	if err := prompter.Welcome(); err != nil {
		return err
	}

	city, err := prompter.City()
	if err != nil {
		return err
	}
	tempUnit, err := prompter.TemperatureUnit()
	if err != nil {
		return err
	}
	windUnit, err := prompter.WindSpeedUnit()
	if err != nil {
		return err
	}

	httpClient := &http.Client{
		Transport: logger.NewRoundTripper(fileLogger),
	}
	client := weather.NewWeatherBitClient(cfg.APIKey, cfg.APIURL, httpClient, log.Default())

	ctx, cancel := context.WithTimeout(
		context.Background(), time.Duration(cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	data, err := client.Fetch(ctx, city)
	if err != nil {
		switch {
		case errors.Is(err, weather.ErrCityNotFound):
			return fmt.Errorf("the city you entered does not exist or could not be found; " +
				"please check the spelling and try again")
		case errors.Is(err, weather.ErrInvalidAPIKey):
			return fmt.Errorf("the weather provider rejected the API key; " +
				"check WEATHER_BIT_API_KEY")
		case errors.Is(err, context.DeadlineExceeded):
			return fmt.Errorf("the request timed out, please try again later")
		default:
			return err
		}
	}

	return cli.RenderWeather(os.Stdout, data, tempUnit, windUnit)
}
