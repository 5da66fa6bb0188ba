package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/okutsenko-ucu/cloud-portfolio/internal/app"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/config"
)

// @title			Serverless Movies API
// @version		1.0
// @description	Read-only movie catalog with AI-generated summaries.
// @host			localhost:8080
// @BasePath		/api
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg, err := config.NewServerConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	logger := log.New(os.Stdout, "MoviesAPI: ", log.LstdFlags)

	application := app.New(*cfg, logger)
	container := application.Init()

	go func() {
		if err := application.Start(container); err != nil {
			logger.Printf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Println("shutting down")
	if err := application.Stop(container); err != nil {
		logger.Printf("shutdown error: %v", err)
	}
}
