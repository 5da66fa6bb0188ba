package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Server struct {
	Address     string `envconfig:"MOVIES_SERVER_ADDRESS" default:":8080"`
	ReadTimeout int    `envconfig:"MOVIES_SERVER_TIMEOUT" default:"10"`
}

type Db struct {
	Dialect        string `envconfig:"DB_DIALECT" default:"sqlite"`
	Source         string `envconfig:"DB_NAME" default:"movies.db"`
	MigrationsPath string `envconfig:"DB_MIGRATIONS_DIR" default:"./migrations"`
}

type Redis struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Db       int    `envconfig:"REDIS_DB" default:"0"`
	LiveTime int    `envconfig:"REDIS_LIVE_TIME" default:"10"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"10"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

type Summary struct {
	APIKey string `envconfig:"COHERE_API_KEY" required:"true"`
	APIURL string `envconfig:"COHERE_API_URL" default:"https://api.cohere.com/v2/chat"`
	Model  string `envconfig:"COHERE_MODEL" default:"command-r-plus-08-2024"`
}

type Warmer struct {
	// Cron spec for the catalog cache warmer.
	Schedule string `envconfig:"CATALOG_WARM_SCHEDULE" default:"@every 10m"`
}

// ServerConfig configures the movies API server.
type ServerConfig struct {
	Server  Server
	DB      Db
	Redis   Redis
	Breaker Breaker
	Summary Summary
	Warmer  Warmer

	LogsPath string `envconfig:"LOGS_PATH" default:"./log/movies-api.log"`
}

// WeatherConfig configures the weather CLI. The API key is required so a
// missing key fails here, before any request is built.
type WeatherConfig struct {
	APIKey         string `envconfig:"WEATHER_BIT_API_KEY" required:"true"`
	APIURL         string `envconfig:"WEATHER_BIT_URL" default:"https://api.weatherbit.io/v2.0/current"`
	TimeoutSeconds int    `envconfig:"WEATHER_REQUEST_TIMEOUT" default:"8"`

	LogsPath string `envconfig:"LOGS_PATH" default:"./log/weather-cli.log"`
}

func NewServerConfig() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func NewWeatherConfig() (*WeatherConfig, error) {
	var cfg WeatherConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *Redis) Address() string {
	return r.Host + ":" + r.Port
}
