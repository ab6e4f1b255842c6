package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	APIKey        string        `env:"CURRENCY_LAYER_API_KEY" env-required:"true"`
	ProviderURL   string        `env:"CURRENCY_LAYER_URL" env-default:"http://apilayer.net/api"`
	ClientTimeout time.Duration `env:"CURRENCY_LAYER_TIMEOUT" env-default:"20s"`

	RatesCSVPath  string   `env:"RATES_CSV_PATH" env-required:"true"`
	RatesXLSXPath string   `env:"RATES_XLSX_PATH"`
	DateLayouts   []string `env:"RATES_DATE_LAYOUTS" env-separator:"|"`

	DatabaseURL string `env:"DATABASE_URL"`
	EncodingKey string `env:"ENCODING_KEY"`

	HTTPPort string `env:"PORT" env-default:"8080"`

	SnapshotBase string `env:"SNAPSHOT_BASE" env-default:"USD"`
	CronSpec     string `env:"SNAPSHOT_CRON" env-default:"0 12 * * *"`
	Location     string `env:"SNAPSHOT_TZ" env-default:"UTC"`

	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

func LoadConfig() (Config, error) {
	// .env is optional; real env vars still apply.
	_ = godotenv.Overload()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg.normalize()
}

func (c Config) normalize() (Config, error) {
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.APIKey == "" {
		return Config{}, fmt.Errorf("CURRENCY_LAYER_API_KEY is empty")
	}
	c.RatesCSVPath = strings.TrimSpace(c.RatesCSVPath)
	if c.RatesCSVPath == "" {
		return Config{}, fmt.Errorf("RATES_CSV_PATH is empty")
	}

	c.DatabaseURL = strings.TrimSpace(c.DatabaseURL)
	c.EncodingKey = strings.TrimSpace(c.EncodingKey)
	if c.DatabaseURL != "" && c.EncodingKey == "" {
		return Config{}, fmt.Errorf("ENCODING_KEY is required when DATABASE_URL is set")
	}
	if c.ClientTimeout <= 0 {
		return Config{}, fmt.Errorf("CURRENCY_LAYER_TIMEOUT must be positive, got %s", c.ClientTimeout)
	}

	layouts := c.DateLayouts[:0]
	for _, l := range c.DateLayouts {
		if l = strings.TrimSpace(l); l != "" {
			layouts = append(layouts, l)
		}
	}
	c.DateLayouts = layouts
	c.SnapshotBase = strings.ToUpper(strings.TrimSpace(c.SnapshotBase))
	return c, nil
}

func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
