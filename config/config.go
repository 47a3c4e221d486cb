// Package config reads the cgt settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix is shared by every environment variable read by cgt.
const Prefix = "CGT_"

// Config holds the settings of a cgt run.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"true"`
	Currency  string `env:"CURRENCY" envDefault:"INR"`
	Sheet     string `env:"SHEET"` // Excel sheet holding the ledger, the first one if empty
}

// Load reads ".env" in the current directory, if any, then the environment.
func Load() (*Config, error) { return LoadFile(".env") }

// LoadFile reads the dotenv file at path, if it exists, then the environment.
//
// Variables already set in the environment take precedence over the file.
func LoadFile(path string) (*Config, error) {
	_ = godotenv.Load(path)

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: Prefix}); err != nil {
		return nil, fmt.Errorf("parse config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings and normalizes the currency code.
func (c *Config) Validate() error {
	var errs []error
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	if money.GetCurrency(c.Currency) == nil {
		errs = append(errs, fmt.Errorf("%sCURRENCY: unknown currency %q", Prefix, c.Currency))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%sLOG_LEVEL: unknown level %q, want debug, info, warn or error", Prefix, c.LogLevel))
	}
	return errors.Join(errs...)
}
