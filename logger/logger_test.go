package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	if got := New(false).GetLevel(); got != zerolog.WarnLevel {
		t.Errorf("New(false).GetLevel() = %v, want %v", got, zerolog.WarnLevel)
	}
	if got := New(true).GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("New(true).GetLevel() = %v, want %v", got, zerolog.DebugLevel)
	}
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, false)

	log.Debug().Msg("hidden")
	log.Warn().Msg("test message")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("debug message written without verbose: %s", output)
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected output to contain 'test message', got: %s", output)
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf, true))

	lg := FromContext(ctx)

	lg.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("Expected log output from retrieved logger")
	}
}

func TestFromContext_DefaultLogger(t *testing.T) {
	if got := FromContext(context.Background()).GetLevel(); got != zerolog.Disabled {
		t.Errorf("FromContext() level = %v, want %v", got, zerolog.Disabled)
	}
}

func TestWithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := WithFields(NewWithWriter(buf, true), map[string]any{"coin": "bitcoin"})
	log.Info().Msg("test message")

	if output := buf.String(); !strings.Contains(output, `"coin":"bitcoin"`) {
		t.Errorf("Expected output to contain coin field, got: %s", output)
	}
}
