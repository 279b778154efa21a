package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHelpersNilLoggerNoPanic(t *testing.T) {
	Debug(nil, "debug")
	Info(nil, "info")
	Warn(nil, "warn")
	Error(nil, "error", errors.New("boom"))
}

func TestErrorAppendsErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	Error(logger, "upstream failed", errors.New("boom"), FieldDate, "2025-01-02")

	out := buf.String()
	if !strings.Contains(out, "error=boom") || !strings.Contains(out, "date=2025-01-02") {
		t.Fatalf("expected error and date fields, got %s", out)
	}
}
