package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/CTAG07/marklang/pkg/textclean"
	"github.com/natefinch/atomic"
	"golang.org/x/text/language"
)

// ModelConfig holds the defaults used when building and sampling a model.
type ModelConfig struct {
	Order         int    `json:"order"`
	Length        int    `json:"length"`
	Count         int    `json:"count"`
	Seed          uint64 `json:"seed"` // 0 picks a random seed
	ClampRounding bool   `json:"clamp_rounding"`
}

// CleanerConfig holds the settings for cleaning raw text before training.
type CleanerConfig struct {
	Lowercase    bool   `json:"lowercase"`
	Language     string `json:"language"`
	DropPattern  string `json:"drop_pattern"`
	KeepNewlines bool   `json:"keep_newlines"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	LogLevel     string         `json:"log_level"`
	DatabasePath string         `json:"database_path"`
	Model        *ModelConfig   `json:"model_config"`
	Cleaner      *CleanerConfig `json:"cleaner_config"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "warn",
		DatabasePath: "./marklang.db",
		Model: &ModelConfig{
			Order:  2,
			Length: 8,
			Count:  10,
		},
		Cleaner: &CleanerConfig{
			Lowercase:   true,
			Language:    "und",
			DropPattern: textclean.DefaultDropPattern,
		},
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The defaults are still usable without a file on disk.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Model == nil {
		config.Model = DefaultConfig().Model
	}
	if config.Cleaner == nil {
		config.Cleaner = DefaultConfig().Cleaner
	}
	return config, nil
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation failed for field %q: %s", e.Field, e.Message)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if _, ok := parseLogLevel(c.LogLevel); !ok {
		return ValidationError{Field: "log_level", Message: fmt.Sprintf("unknown level %q", c.LogLevel)}
	}
	if c.DatabasePath == "" {
		return ValidationError{Field: "database_path", Message: "value cannot be empty"}
	}
	if c.Model.Order <= 0 {
		return ValidationError{Field: "model_config.order", Message: fmt.Sprintf("value must be positive, got %d", c.Model.Order)}
	}
	if c.Model.Length < 0 {
		return ValidationError{Field: "model_config.length", Message: fmt.Sprintf("value must not be negative, got %d", c.Model.Length)}
	}
	if c.Model.Count <= 0 {
		return ValidationError{Field: "model_config.count", Message: fmt.Sprintf("value must be positive, got %d", c.Model.Count)}
	}
	if _, err := regexp.Compile(c.Cleaner.DropPattern); err != nil {
		return ValidationError{Field: "cleaner_config.drop_pattern", Message: err.Error()}
	}
	if _, err := language.Parse(c.Cleaner.Language); err != nil {
		return ValidationError{Field: "cleaner_config.language", Message: err.Error()}
	}
	return nil
}

// NewCleaner builds the text cleaner described by the config. The config
// must have passed Validate.
func (c *CleanerConfig) NewCleaner() *textclean.Cleaner {
	return textclean.New(
		textclean.WithLowercase(c.Lowercase),
		textclean.WithLanguage(language.Make(c.Language)),
		textclean.WithDropPattern(c.DropPattern),
		textclean.WithKeepNewlines(c.KeepNewlines),
	)
}

func parseLogLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// newLogger returns a text logger at the configured level. Output goes to w
// so that stdout stays free for generated text.
func newLogger(w io.Writer, level string) *slog.Logger {
	logLevel, _ := parseLogLevel(level)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}
