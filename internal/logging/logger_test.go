package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFieldHelpers(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("key", "value"), "key", "value"},
		{"Int", Int("count", 42), "count", 42},
		{"Uint64", Uint64("ticks", 12345678901234567890), "ticks", uint64(12345678901234567890)},
		{"Float64", Float64("cpu", 60.5), "cpu", 60.5},
		{"Duration", Duration("window", time.Second), "window", time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.key)
			}
			if tt.field.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.value)
			}
		})
	}

	t.Run("Err uses error key", func(t *testing.T) {
		testErr := errors.New("test error")
		f := Err(testErr)
		if f.Key != "error" || f.Value != testErr {
			t.Errorf("Err() = %+v", f)
		}
	})
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewLogger(&buf, "engine")
	logger.Info("cycle complete", Int("records", 12), Float64("health", 31))

	out := buf.String()
	for _, want := range []string{"engine", "cycle complete", `"records":12`, `"health":31`} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestZerologAdapter_Error(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewLogger(&buf, "tui")
	logger.Error("terminate failed", errors.New("no such process"), Int("pid", 99999))

	out := buf.String()
	for _, want := range []string{"terminate failed", "no such process", `"level":"error"`, "99999"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestZerologAdapter_LevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test").WithLevel(zerolog.InfoLevel)

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line should be filtered at info level, got: %s", buf.String())
	}
	logger.Component("engine").Info("visible")
	if !strings.Contains(buf.String(), `"component":"engine"`) {
		t.Errorf("Component() should override the component field, got: %s", buf.String())
	}
}

func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Printf("formatted %s %d", "message", 42)
	logger.Println("hello", "world")

	out := buf.String()
	if !strings.Contains(out, "formatted message 42") {
		t.Errorf("Printf should format message, got: %s", out)
	}
	if !strings.Contains(out, "hello world") {
		t.Errorf("Println should join arguments, got: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"WARN", zerolog.WarnLevel, false},
		{"chatty", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNopLogger(t *testing.T) {
	t.Parallel()
	NewNopLogger().Info("discarded", String("k", "v"))
}
