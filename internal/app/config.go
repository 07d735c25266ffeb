package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the client.
type Config struct {
	APIBaseURL     string        `envconfig:"API_BASE_URL" default:"http://127.0.0.1:8000"`
	APIToken       string        `envconfig:"API_TOKEN" required:"true"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`

	CurrencySymbol string `envconfig:"CURRENCY_SYMBOL" default:"$"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("COUNTERDESK", &cfg); err != nil {
		return nil, err
	}
	if cfg.APIToken == "" {
		return nil, errors.New("api token must be provided")
	}
	return &cfg, nil
}
