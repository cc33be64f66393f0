package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HttpPort        uint16        `envconfig:"TIDEPOOL_DOSING_HTTP_PORT" default:"8080" required:"true"`
	ShutdownTimeout time.Duration `envconfig:"TIDEPOOL_DOSING_SHUTDOWN_TIMEOUT" default:"20s"`
}

func New() *Config {
	return &Config{}
}

func (c *Config) LoadFromEnv() error {
	return envconfig.Process("", c)
}

func NewFromEnv() (*Config, error) {
	cfg := New()
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}
