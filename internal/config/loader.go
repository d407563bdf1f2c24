// Package config loads the planner's runtime configuration from the process
// environment.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config captures environment driven configuration values for the planner.
type Config struct {
	// SQLiteDSN locates the roster database.
	SQLiteDSN string
	// RosterName selects which stored roster the planner operates on.
	RosterName string
	// RosterFile, when set, reads the roster from a JSON file instead of
	// the database.
	RosterFile string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load parses configuration values from the current process environment.
// Every value has a default; only malformed values produce an error.
func Load() (Config, error) {
	cfg := Config{
		SQLiteDSN:  "file:planner.db?_foreign_keys=on",
		RosterName: "default",
		LogLevel:   "info",
	}

	invalid := make([]string, 0, 1)

	if dsn := strings.TrimSpace(os.Getenv("PLANNER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}
	if name := strings.TrimSpace(os.Getenv("PLANNER_ROSTER")); name != "" {
		cfg.RosterName = name
	}
	cfg.RosterFile = strings.TrimSpace(os.Getenv("PLANNER_ROSTER_FILE"))

	if level := strings.TrimSpace(os.Getenv("PLANNER_LOG_LEVEL")); level != "" {
		switch strings.ToLower(level) {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = strings.ToLower(level)
		default:
			invalid = append(invalid, "PLANNER_LOG_LEVEL")
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
