package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/classconnect-grupo3/classconnect-cli/internal/errors"
)

func testConfig(buf *bytes.Buffer, format Format) Config {
	return Config{
		Level:  LevelDebug,
		Format: format,
		Output: buf,
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(testConfig(&buf, FormatText))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	for _, want := range []string{"debug message", "info message", "warn message", "error message"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig(&buf, FormatText)
	cfg.Level = LevelWarn
	logger := New(cfg)

	logger.Debug("filtered out")
	logger.Info("also filtered")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "filtered out") || strings.Contains(out, "also filtered") {
		t.Errorf("messages below WARN should be suppressed:\n%s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("WARN message should be emitted:\n%s", out)
	}
}

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(testConfig(&buf, FormatJSON))

	logger.Info("structured", "course_id", "42")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "structured" {
		t.Errorf("expected msg 'structured', got %v", entry["msg"])
	}
	if entry["course_id"] != "42" {
		t.Errorf("expected course_id attribute, got %v", entry["course_id"])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(testConfig(&buf, FormatJSON))

	coded := errors.Wrap(errors.ErrCodeNetworkFailure, "request failed", fmt.Errorf("connection refused"))
	logger.WithError(coded).Error("login failed")

	out := buf.String()
	if !strings.Contains(out, "NET-001") {
		t.Errorf("expected error code in output:\n%s", out)
	}
	if !strings.Contains(out, "connection refused") {
		t.Errorf("expected cause in output:\n%s", out)
	}
}

func TestWithErrorPlain(t *testing.T) {
	var buf bytes.Buffer
	logger := New(testConfig(&buf, FormatText))

	logger.WithError(fmt.Errorf("plain failure")).Error("operation failed")

	if !strings.Contains(buf.String(), "plain failure") {
		t.Errorf("expected plain error message in output:\n%s", buf.String())
	}
}

func TestWithErrorNil(t *testing.T) {
	logger := Default()
	if logger.WithError(nil) != logger {
		t.Errorf("WithError(nil) should return the same logger")
	}
}

func TestEnabled(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig(&buf, FormatText)
	cfg.Level = LevelInfo
	logger := New(cfg)

	ctx := context.Background()
	if logger.Enabled(ctx, LevelDebug) {
		t.Errorf("DEBUG should be disabled at INFO level")
	}
	if !logger.Enabled(ctx, LevelError) {
		t.Errorf("ERROR should be enabled at INFO level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"ERROR", LevelError},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("json") != FormatJSON {
		t.Errorf("ParseFormat(json) should be FormatJSON")
	}
	if ParseFormat("console") != FormatText {
		t.Errorf("ParseFormat(console) should be FormatText")
	}
	if ParseFormat("") != FormatText {
		t.Errorf("unknown format should default to text")
	}
}

func TestDefaultLoggerSingleton(t *testing.T) {
	custom := Default()
	SetDefaultLogger(custom)
	if DefaultLogger() != custom {
		t.Errorf("DefaultLogger should return the configured logger")
	}
}
