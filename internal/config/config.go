// Package config loads settings from a YAML file, then applies overrides
// from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/insightdelivered/statement-parser/internal/layout"
	"github.com/insightdelivered/statement-parser/internal/models"
	"github.com/insightdelivered/statement-parser/internal/parser"
)

// Config is the top-level statement-parser.yaml configuration.
type Config struct {
	// Bank is empty for auto-detection.
	Bank string `yaml:"bank,omitempty"`
	// Year anchors transaction dates; 0 means the current year.
	Year   int           `yaml:"year,omitempty"`
	Layout layout.Params `yaml:"layout"`
	Server ServerConfig  `yaml:"server"`
	Log    LogConfig     `yaml:"log"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	MaxUploadMiB int    `yaml:"max_upload_mib"`
	// AllowOrigins is the CORS origin list for browser clients.
	AllowOrigins string `yaml:"allow_origins"`
	// StaticDir, when set, holds a single-page web client served at /.
	StaticDir string `yaml:"static_dir,omitempty"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// Default returns the settings tuned for Truist statements.
func Default() *Config {
	truist := parser.Truist()
	return &Config{
		Layout: truist.Params,
		Server: ServerConfig{
			Addr:         ":8080",
			MaxUploadMiB: 32,
			AllowOrigins: "*",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML file on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Resolve builds the effective configuration: defaults, then the YAML file
// at path if given, then envPath (or ./.env when empty and present), then
// process environment variables.
func Resolve(path, envPath string) (*Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// A missing ./.env is fine.
		_ = godotenv.Load()
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from STATEMENT_* and LOG_* variables.
func (c *Config) ApplyEnv() error {
	c.Bank = getEnvOrDefault("STATEMENT_BANK", c.Bank)
	c.Server.Addr = getEnvOrDefault("STATEMENT_ADDR", c.Server.Addr)
	c.Server.StaticDir = getEnvOrDefault("STATEMENT_STATIC_DIR", c.Server.StaticDir)
	c.Server.AllowOrigins = getEnvOrDefault("STATEMENT_ALLOW_ORIGINS", c.Server.AllowOrigins)
	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvOrDefault("LOG_FORMAT", c.Log.Format)

	var err error
	if c.Year, err = parseIntEnv("STATEMENT_YEAR", c.Year); err != nil {
		return err
	}
	if c.Layout.CharMargin, err = parseFloatEnv("STATEMENT_CHAR_MARGIN", c.Layout.CharMargin); err != nil {
		return err
	}
	if c.Layout.WordMargin, err = parseFloatEnv("STATEMENT_WORD_MARGIN", c.Layout.WordMargin); err != nil {
		return err
	}
	if c.Layout.LineMargin, err = parseFloatEnv("STATEMENT_LINE_MARGIN", c.Layout.LineMargin); err != nil {
		return err
	}
	return nil
}

// Validate rejects settings the parser cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Bank != "" {
		if _, err := parser.ParseBankType(c.Bank); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Year < 0 {
		errs = append(errs, fmt.Errorf("year must not be negative, got %d", c.Year))
	}
	if c.Layout.CharMargin <= 0 {
		errs = append(errs, fmt.Errorf("layout.char_margin must be positive, got %g", c.Layout.CharMargin))
	}
	if c.Layout.WordMargin <= 0 {
		errs = append(errs, fmt.Errorf("layout.word_margin must be positive, got %g", c.Layout.WordMargin))
	}
	if c.Layout.LineMargin <= 0 {
		errs = append(errs, fmt.Errorf("layout.line_margin must be positive, got %g", c.Layout.LineMargin))
	}
	if c.Layout.LineOverlap <= 0 || c.Layout.LineOverlap > 1 {
		errs = append(errs, fmt.Errorf("layout.line_overlap must be in (0, 1], got %g", c.Layout.LineOverlap))
	}
	if c.Server.MaxUploadMiB <= 0 {
		errs = append(errs, fmt.Errorf("server.max_upload_mib must be positive, got %d", c.Server.MaxUploadMiB))
	}
	return errors.Join(errs...)
}

// BankType returns the configured bank, or "" for auto-detection.
func (c *Config) BankType() models.BankType {
	if c.Bank == "" {
		return ""
	}
	bankType, err := parser.ParseBankType(c.Bank)
	if err != nil {
		return ""
	}
	return bankType
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}
	return parsed, nil
}

func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number value for %s: %s", key, value)
	}
	return parsed, nil
}
