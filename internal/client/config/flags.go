package config

import (
	"flag"
	"io"

	"github.com/manuelmariscal/coursera/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-u  string   backend origin URL
//	-ua string   user agent
//	-db string   state database file
//	-l  string   log level
//
// Only these flags are considered; -c/-config/-env are handled by the
// earlier layers and anything else is ignored.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-u", "-ua", "-db", "-l"})

	fs := flag.NewFlagSet("motosegura", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "u", cfg.APIBaseURL, "backend origin URL")
	fs.StringVar(&cfg.UserAgent, "ua", cfg.UserAgent, "user agent presented to the backend")
	fs.StringVar(&cfg.StateDB, "db", cfg.StateDB, "state database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(filtered)
}
