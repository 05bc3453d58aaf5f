package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"Info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(LevelEnv, tt.value)
			if got := levelFromEnv(); got != tt.want {
				t.Errorf("levelFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Setenv(LevelEnv, "WARN")
	var buf bytes.Buffer
	log := New(&buf)

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestJSONComponentAndFailure(t *testing.T) {
	t.Setenv(FormatEnv, "json")
	var buf bytes.Buffer
	log := New(&buf).Component("sim").Run("run_1")

	log.Failure("step failed", errors.New("boom"), "second", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}
	for key, want := range map[string]any{
		"msg":       "step failed",
		"component": "sim",
		"run_id":    "run_1",
		"error":     "boom",
		"second":    float64(3),
	} {
		if entry[key] != want {
			t.Errorf("%s = %v, want %v", key, entry[key], want)
		}
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("nothing")
	log.Failure("nothing", nil)
}
