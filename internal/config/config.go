package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Mode selects which brief is sent on a run.
type Mode string

const (
	ModeDaily  Mode = "daily"
	ModeWeekly Mode = "weekly"
)

// ParseMode maps a RUN_MODE value to a Mode. Matching is case-insensitive and
// anything unrecognised falls back to ModeDaily.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeWeekly:
		return ModeWeekly
	default:
		return ModeDaily
	}
}

// Config holds application settings sourced from environment variables.
// The secrets must stay the first fields; Load relies on envconfig filling
// them before any optional field can fail to parse.
type Config struct {
	TelegramBotToken  string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID    string `envconfig:"TELEGRAM_CHAT_ID"`
	OpenWeatherAPIKey string `envconfig:"OPENWEATHER_API_KEY"`
	RunMode           string `envconfig:"RUN_MODE" default:"daily"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`

	City                string        `envconfig:"WEATHER_CITY" default:"London"`
	Country             string        `envconfig:"WEATHER_COUNTRY" default:"GB"`
	WeatherBaseURL      string        `envconfig:"OPENWEATHER_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	WeatherTimeout      time.Duration `envconfig:"WEATHER_TIMEOUT" default:"20s"`
	TelegramAPIEndpoint string        `envconfig:"TELEGRAM_API_ENDPOINT" default:"https://api.telegram.org/bot%s/%s"`
}

// MissingEnvError lists required variables that were empty or unset.
type MissingEnvError struct {
	Names []string
}

func (e *MissingEnvError) Error() string {
	return "Missing required env vars: " + strings.Join(e.Names, ", ")
}

// Load reads configuration from the environment.
// A *MissingEnvError is returned when any secret is empty after trimming.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		// Missing secrets take precedence over a malformed optional value.
		cfg.trim()
		if verr := cfg.Validate(); verr != nil {
			return cfg, verr
		}
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.trim()

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.City == "" {
		cfg.City = "London"
	}
	if cfg.Country == "" {
		cfg.Country = "GB"
	}
	if cfg.WeatherTimeout <= 0 {
		cfg.WeatherTimeout = 20 * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that all secrets are present.
func (c Config) Validate() error {
	var missing []string
	if c.TelegramBotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if c.TelegramChatID == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if c.OpenWeatherAPIKey == "" {
		missing = append(missing, "OPENWEATHER_API_KEY")
	}
	if len(missing) > 0 {
		return &MissingEnvError{Names: missing}
	}
	return nil
}

// Mode returns the normalised run mode.
func (c Config) Mode() Mode {
	return ParseMode(c.RunMode)
}

func (c *Config) trim() {
	for _, f := range []*string{
		&c.TelegramBotToken,
		&c.TelegramChatID,
		&c.OpenWeatherAPIKey,
		&c.RunMode,
		&c.LogLevel,
		&c.City,
		&c.Country,
		&c.WeatherBaseURL,
		&c.TelegramAPIEndpoint,
	} {
		*f = strings.TrimSpace(*f)
	}
}
