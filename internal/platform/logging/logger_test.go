package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "json", "info")
	logger.Info("hello", "event", "doodle_test")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected json output, got %q: %v", buf.String(), err)
	}
	if line["event"] != "doodle_test" {
		t.Fatalf("unexpected event attr: %v", line["event"])
	}
}

func TestNewWithWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "text", "warn")
	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") || !strings.Contains(out, "loud") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithWriterPretty(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "pretty", "debug")
	logger.Debug("pretty line", "event", "doodle_test")
	if !strings.Contains(buf.String(), "pretty line") {
		t.Fatalf("expected message in pretty output, got %q", buf.String())
	}
}
