package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	API      API
}

type API struct {
	Debug       bool          `env:"API_DEBUG" envDefault:"false"`
	Timeout     time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	TreasuryApi TreasuryApi
}

type TreasuryApi struct {
	Url string `env:"TREASURY_API_URL" envDefault:"https://www.treasurydirect.gov"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, err
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("parse config error: %s", err)
	}
	return cfg
}
