package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/okutsenko-ucu/cloud-portfolio/internal/models"
)

var (
	ErrCityNotFound  = errors.New("city not found")
	ErrInvalidAPIKey = errors.New("invalid or unauthorized API key")
)

type bitWeatherAPIResponse = struct {
	Data []struct {
		CityName string  `json:"city_name"`
		Temp     float64 `json:"temp"`
		Rh       float64 `json:"rh"`
		WindSpd  float64 `json:"wind_spd"`
		Weather  struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"data"`
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientWeatherBit fetches current weather from weatherbit.io. Temperature
// arrives in Celsius and wind speed in metres per second.
type ClientWeatherBit struct {
	apiKey string
	apiURL string
	client HTTPClient
	logger *log.Logger
}

func NewWeatherBitClient(apiKey, apiURL string, httpClient HTTPClient, logger *log.Logger) *ClientWeatherBit {
	return &ClientWeatherBit{apiKey: apiKey, apiURL: apiURL, client: httpClient, logger: logger}
}

func (s *ClientWeatherBit) Fetch(ctx context.Context, city string) (models.WeatherData, error) {
	reqURL := fmt.Sprintf("%s?city=%s&key=%s", s.apiURL, url.QueryEscape(city), s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.WeatherData{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return models.WeatherData{}, fmt.Errorf("weatherbit request: %w", err)
	}
	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			s.logger.Println("failed to close response body:", err)
		}
	}(resp.Body)

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
		return models.WeatherData{}, ErrCityNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return models.WeatherData{}, ErrInvalidAPIKey
	case resp.StatusCode != http.StatusOK:
		return models.WeatherData{}, fmt.Errorf("weatherbit API error: status %d", resp.StatusCode)
	}

	var raw bitWeatherAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.WeatherData{}, fmt.Errorf("weatherbit response: %w", err)
	}

	if len(raw.Data) == 0 {
		return models.WeatherData{}, ErrCityNotFound
	}

	// The provider fuzzy-matches city names. Treat an answer for a different
	// city as not found, the same way the original lookup did.
	if !strings.EqualFold(city, raw.Data[0].CityName) {
		return models.WeatherData{}, ErrCityNotFound
	}

	return models.WeatherData{
		City:        raw.Data[0].CityName,
		Temperature: raw.Data[0].Temp,
		Humidity:    raw.Data[0].Rh,
		WindSpeed:   raw.Data[0].WindSpd,
		Condition:   raw.Data[0].Weather.Description,
	}, nil
}
