package config

import (
	"os"
	"testing"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		unset := []string{
			"PLANNER_SQLITE_DSN",
			"PLANNER_ROSTER",
			"PLANNER_ROSTER_FILE",
			"PLANNER_LOG_LEVEL",
		}
		for _, key := range unset {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.SQLiteDSN != "file:planner.db?_foreign_keys=on" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.RosterName != "default" {
			t.Fatalf("expected default roster name, got %q", cfg.RosterName)
		}
		if cfg.RosterFile != "" {
			t.Fatalf("expected empty roster file, got %q", cfg.RosterFile)
		}
		if cfg.LogLevel != "info" {
			t.Fatalf("expected log level info, got %q", cfg.LogLevel)
		}
	})

	t.Run("reads overrides from the environment", func(t *testing.T) {
		t.Setenv("PLANNER_SQLITE_DSN", "file:/tmp/planner.db")
		t.Setenv("PLANNER_ROSTER", "kw35")
		t.Setenv("PLANNER_ROSTER_FILE", "/tmp/roster.json")
		t.Setenv("PLANNER_LOG_LEVEL", "DEBUG")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.SQLiteDSN != "file:/tmp/planner.db" {
			t.Fatalf("unexpected DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.RosterName != "kw35" {
			t.Fatalf("unexpected roster name: %q", cfg.RosterName)
		}
		if cfg.RosterFile != "/tmp/roster.json" {
			t.Fatalf("unexpected roster file: %q", cfg.RosterFile)
		}
		if cfg.LogLevel != "debug" {
			t.Fatalf("unexpected log level: %q", cfg.LogLevel)
		}
	})

	t.Run("rejects unknown log levels", func(t *testing.T) {
		t.Setenv("PLANNER_LOG_LEVEL", "loud")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error for invalid log level")
		}
		expected := "invalid environment variable values: PLANNER_LOG_LEVEL"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})
}
