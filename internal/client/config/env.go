package config

import (
	"errors"
	"fmt"
	"io/fs"

	env "github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/manuelmariscal/coursera/internal/flagx"
)

type envConfig struct {
	APIBaseURL  string `env:"MOTOSEGURA_API_URL"`
	UserAgent   string `env:"MOTOSEGURA_USER_AGENT"`
	StateDB     string `env:"MOTOSEGURA_STATE_DB"`
	APIKey      string `env:"MOTOSEGURA_API_KEY"`
	LogLevel    string `env:"MOTOSEGURA_LOG_LEVEL"`
	LogBackend  string `env:"MOTOSEGURA_LOG_BACKEND"`
	S3Endpoint  string `env:"MOTOSEGURA_S3_ENDPOINT"`
	S3Region    string `env:"MOTOSEGURA_S3_REGION"`
	S3AccessKey string `env:"MOTOSEGURA_S3_ACCESS_KEY"`
	S3SecretKey string `env:"MOTOSEGURA_S3_SECRET_KEY"`
}

// loadDotenv overlays cfg with the -env file, or ".env" when none is given.
// The file is read into a map and never exported into the process
// environment, so later JSON and environment layers still win over it. A
// missing default file is not an error; a missing explicit file is.
func loadDotenv(cfg *Config, args []string) error {
	path := flagx.EnvFilePath(args)
	if path == "" {
		vars, err := godotenv.Read()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("load .env: %w", err)
		}
		return parseEnvFrom(cfg, vars)
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return parseEnvFrom(cfg, vars)
}

// parseEnv overlays cfg with MOTOSEGURA_* process environment variables.
func parseEnv(cfg *Config) error {
	return parseEnvFrom(cfg, nil)
}

// parseEnvFrom overlays cfg with MOTOSEGURA_* variables taken from vars, or
// from the process environment when vars is nil.
func parseEnvFrom(cfg *Config, vars map[string]string) error {
	var ec envConfig
	if err := env.Parse(&ec, env.Options{Environment: vars}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	overlay(&cfg.APIBaseURL, ec.APIBaseURL)
	overlay(&cfg.UserAgent, ec.UserAgent)
	overlay(&cfg.StateDB, ec.StateDB)
	overlay(&cfg.APIKey, ec.APIKey)
	overlay(&cfg.LogLevel, ec.LogLevel)
	overlay(&cfg.LogBackend, ec.LogBackend)
	overlay(&cfg.S3.Endpoint, ec.S3Endpoint)
	overlay(&cfg.S3.Region, ec.S3Region)
	overlay(&cfg.S3.AccessKey, ec.S3AccessKey)
	overlay(&cfg.S3.SecretKey, ec.S3SecretKey)
	return nil
}
