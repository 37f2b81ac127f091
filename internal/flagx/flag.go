// Package flagx holds helpers for picking individual flags out of the
// command line before the main flag set is parsed, so the config layers
// (.env file, JSON file) can be located first.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps only the flags listed in allowedFlags, together with
// their values.
//
// Both "-c conf.json" and "-c=conf.json" forms are recognised. A token that
// starts with "-" is never taken as the value of the preceding flag. The
// result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// lookupString parses only the given aliases of one string flag out of args.
// The last occurrence wins. Missing flag yields "".
func lookupString(args []string, usage string, names ...string) string {
	var value string

	allowed := make([]string, 0, len(names))
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		fs.StringVar(&value, n, "", usage)
		allowed = append(allowed, "-"+n, "--"+n)
	}

	_ = fs.Parse(FilterArgs(args, allowed))
	return value
}

// JSONConfigPath returns the config file path given via -c or -config.
func JSONConfigPath(args []string) string {
	return lookupString(args, "path to JSON config file", "c", "config")
}

// EnvFilePath returns the dotenv file path given via -env, or "" when the
// default ".env" lookup should be used.
func EnvFilePath(args []string) string {
	return lookupString(args, "path to .env file", "env")
}
