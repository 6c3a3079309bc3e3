// Package config provides application configuration with multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (CONCIERGE_* prefix, plus the bare supplier
//     variable names GEMINI_API_KEY, AMADEUS_CLIENT_ID, AMADEUS_CLIENT_SECRET,
//     AMADEUS_BASE_URL)
//  2. A .env file in the working directory
//  3. Config file (config.yaml in the working directory)
//  4. Default values
//
// Error handling uses sentinel errors for errors.Is checks, wrapped with
// fmt.Errorf("%w: details").
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingGeminiKey indicates the Gemini API key is missing.
	ErrMissingGeminiKey = errors.New("missing GEMINI_API_KEY")

	// ErrMissingAmadeusCredentials indicates the supplier client id or
	// secret is missing.
	ErrMissingAmadeusCredentials = errors.New("missing Amadeus credentials")

	// ErrInvalidBaseURL indicates the supplier base URL is empty or malformed.
	ErrInvalidBaseURL = errors.New("invalid Amadeus base URL")

	// ErrInvalidModelName indicates the model name is empty.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidReferenceDate indicates the reference date is not YYYY-MM-DD.
	ErrInvalidReferenceDate = errors.New("invalid reference date")

	// ErrInvalidHistoryWindow indicates max_history_messages is out of range.
	ErrInvalidHistoryWindow = errors.New("invalid history window")

	// ErrInvalidMaxTurns indicates max_turns is out of range.
	ErrInvalidMaxTurns = errors.New("invalid max turns")
)

const (
	// DefaultModelName is the conversational model used when none is configured.
	DefaultModelName = "gemini-2.5-flash"

	// DefaultReferenceDate anchors relative date inference. Dates the user
	// mentions are resolved against this day.
	DefaultReferenceDate = "2025-12-25"

	// DefaultMaxHistoryMessages is the number of client-supplied turns honored
	// per request.
	DefaultMaxHistoryMessages = 10

	// DefaultMaxTurns bounds agent-loop iterations (model calls) per request.
	DefaultMaxTurns = 8

	// DefaultAddr is the HTTP listen address for serve mode.
	DefaultAddr = ":8080"
)

// Config stores application configuration.
// Sensitive fields (API keys, client secret) must never be logged.
type Config struct {
	// Model configuration.
	GeminiAPIKey string  `mapstructure:"gemini_api_key"`
	ModelName    string  `mapstructure:"model_name"`
	Temperature  float32 `mapstructure:"temperature"`
	MaxTokens    int     `mapstructure:"max_tokens"`

	// Booking supplier configuration.
	AmadeusClientID     string `mapstructure:"amadeus_client_id"`
	AmadeusClientSecret string `mapstructure:"amadeus_client_secret"`
	AmadeusBaseURL      string `mapstructure:"amadeus_base_url"`

	// Conversation configuration.
	ReferenceDate       string `mapstructure:"reference_date"`
	MaxHistoryMessages  int    `mapstructure:"max_history_messages"`
	MaxTurns            int    `mapstructure:"max_turns"`
	AlwaysInjectPersona bool   `mapstructure:"always_inject_persona"`

	// Server configuration (serve mode only).
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	TrustProxy  bool     `mapstructure:"trust_proxy"`
	RateBurst   int      `mapstructure:"rate_burst"`
}

// Load reads configuration from .env, config.yaml, and the environment.
// Validation is deliberately not performed here: the chat and serve commands
// have different requirements (see Validate and ValidateServe).
func Load() (*Config, error) {
	// Best-effort .env load, matching the supplier tooling most developers
	// use locally. Absence is not an error.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("config file not found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model_name", DefaultModelName)
	v.SetDefault("temperature", 0.7)
	v.SetDefault("max_tokens", 1024)
	v.SetDefault("reference_date", DefaultReferenceDate)
	v.SetDefault("max_history_messages", DefaultMaxHistoryMessages)
	v.SetDefault("max_turns", DefaultMaxTurns)
	v.SetDefault("always_inject_persona", false)
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("trust_proxy", false)
	v.SetDefault("rate_burst", 0)
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("CONCIERGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The supplier credentials keep their conventional bare names so the
	// same .env works for this service and the supplier's own CLI tools.
	for key, envVar := range map[string]string{
		"gemini_api_key":        "GEMINI_API_KEY",
		"amadeus_client_id":     "AMADEUS_CLIENT_ID",
		"amadeus_client_secret": "AMADEUS_CLIENT_SECRET",
		"amadeus_base_url":      "AMADEUS_BASE_URL",
	} {
		if err := v.BindEnv(key, envVar); err != nil {
			slog.Warn("binding environment variable failed", "key", key, "error", err)
		}
	}
}

// Validate checks the fields every mode needs.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}
	if c.GeminiAPIKey == "" {
		return ErrMissingGeminiKey
	}
	if strings.TrimSpace(c.ModelName) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidModelName)
	}
	if _, err := time.Parse("2006-01-02", c.ReferenceDate); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidReferenceDate, c.ReferenceDate)
	}
	if c.MaxHistoryMessages < 1 || c.MaxHistoryMessages > 100 {
		return fmt.Errorf("%w: %d (want 1-100)", ErrInvalidHistoryWindow, c.MaxHistoryMessages)
	}
	if c.MaxTurns < 1 || c.MaxTurns > 32 {
		return fmt.Errorf("%w: %d (want 1-32)", ErrInvalidMaxTurns, c.MaxTurns)
	}
	if c.AmadeusClientID == "" || c.AmadeusClientSecret == "" {
		return ErrMissingAmadeusCredentials
	}
	if !strings.HasPrefix(c.AmadeusBaseURL, "http://") && !strings.HasPrefix(c.AmadeusBaseURL, "https://") {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.AmadeusBaseURL)
	}
	return nil
}

// ValidateServe checks serve-mode fields in addition to Validate.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("empty listen address")
	}
	return nil
}

// ReferenceTime returns the parsed reference date. Validate must have
// succeeded first; on a malformed value it falls back to the default.
func (c *Config) ReferenceTime() time.Time {
	t, err := time.Parse("2006-01-02", c.ReferenceDate)
	if err != nil {
		t, _ = time.Parse("2006-01-02", DefaultReferenceDate)
	}
	return t
}
