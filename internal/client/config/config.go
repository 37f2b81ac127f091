package config

import (
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
)

const (
	DefaultAPIBaseURL = "https://api.motosegura.online"
	DefaultUserAgent  = "motosegura-cli/1.0 (Go)"
	DefaultStateDir   = ".motosegura"
	DefaultStateDB    = "motosegura.db"
)

// S3Config points the photo source at an S3-compatible store.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// Config holds runtime settings for the MotoSegura CLI.
type Config struct {
	APIBaseURL string `validate:"required,url"`
	UserAgent  string `validate:"required"`
	StateDir   string `validate:"required"`
	StateDB    string `validate:"required"`
	// APIKey is the default credential for delete operations; the CLI
	// prompts for one when it is empty.
	APIKey     string
	LogLevel   string `validate:"oneof=debug info warn error"`
	LogBackend string `validate:"oneof=slog zap"`
	S3         S3Config
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.UserAgent = DefaultUserAgent
	c.StateDir = DefaultStateDir
	c.StateDB = DefaultStateDB
	c.LogLevel = "info"
	c.LogBackend = "slog"
	c.S3.Region = "us-east-1"
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load builds a Config from defaults, dotenv, JSON, environment and flags
// (in that order) using args as the command line (without program name).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadDotenv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load applied to the process command line.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
