package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/manuelmariscal/coursera/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	APIBaseURL  string `json:"api_base_url"`
	UserAgent   string `json:"user_agent"`
	StateDB     string `json:"state_db"`
	APIKey      string `json:"api_key"`
	LogLevel    string `json:"log_level"`
	LogBackend  string `json:"log_backend"`
	S3Endpoint  string `json:"s3_endpoint"`
	S3Region    string `json:"s3_region"`
	S3AccessKey string `json:"s3_access_key"`
	S3SecretKey string `json:"s3_secret_key"`
}

// parseJson overlays cfg with the JSON file named by -c/-config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.JSONConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	overlay(&cfg.APIBaseURL, jc.APIBaseURL)
	overlay(&cfg.UserAgent, jc.UserAgent)
	overlay(&cfg.StateDB, jc.StateDB)
	overlay(&cfg.APIKey, jc.APIKey)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogBackend, jc.LogBackend)
	overlay(&cfg.S3.Endpoint, jc.S3Endpoint)
	overlay(&cfg.S3.Region, jc.S3Region)
	overlay(&cfg.S3.AccessKey, jc.S3AccessKey)
	overlay(&cfg.S3.SecretKey, jc.S3SecretKey)
	return nil
}
