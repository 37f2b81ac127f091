// Package config loads runtime configuration for the MotoSegura CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional dotenv file: ".env" in the working directory, or the file
//     given with -env. Variables already present in the environment win.
//  3. Optional JSON file selected with -c or -config.
//  4. Environment variables (MOTOSEGURA_*).
//  5. Command-line flags.
//
// Later sources override earlier ones; empty values never override.
//
// Supported flags
//
//	-u  string   backend origin URL
//	-ua string   user agent presented to the backend
//	-db string   state database file (relative names live in .motosegura/)
//	-l  string   log level: debug, info, warn, error
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://api.motosegura.online",
//	  "user_agent": "motosegura-cli/1.0 (Go)",
//	  "state_db": "motosegura.db",
//	  "api_key": "",
//	  "log_level": "info",
//	  "log_backend": "slog",
//	  "s3_endpoint": "http://127.0.0.1:9000",
//	  "s3_region": "us-east-1",
//	  "s3_access_key": "minioadmin",
//	  "s3_secret_key": "minioadmin"
//	}
//
// The resulting Config is validated with go-playground/validator.
package config
