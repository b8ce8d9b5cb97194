package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer: &buf,
		Format: "json",
		Level:  slog.LevelInfo,
	})

	log.Info("ticket approved", "ticket_id", "tkt-123")

	out := buf.String()
	assert.Contains(t, out, `"msg":"ticket approved"`)
	assert.Contains(t, out, `"ticket_id":"tkt-123"`)
}

func TestNewDefaultsToPrettyInDevelopment(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer:      &buf,
		Environment: "development",
		Level:       slog.LevelInfo,
	})

	log.Info("book returned", "book_id", "book-1")

	out := buf.String()
	assert.Contains(t, out, "book returned")
	assert.Contains(t, out, "book_id=book-1")
	// Pretty output is not JSON.
	assert.False(t, strings.HasPrefix(strings.TrimSpace(out), "{"))
}

func TestPrettyHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer: &buf,
		Format: "pretty",
		Level:  slog.LevelWarn,
	})

	log.Info("should not appear")
	log.Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "should appear")
}
