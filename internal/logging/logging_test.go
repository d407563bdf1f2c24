package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"Info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.input); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	logger := New(&bytes.Buffer{}, "debug")
	ctx := ContextWithLogger(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Fatal("FromContext did not return the attached logger")
	}
	if got := FromContext(context.Background()); got != nil {
		t.Fatal("FromContext on a bare context should return nil")
	}
}
