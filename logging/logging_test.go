package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", DefaultLevel},
		{"verbose", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", &buf)

	log.Info().Msg("loaded frames")
	log.Warn().Str("folder", "clip01").Msg("no frames matched")

	out := buf.String()
	if strings.Contains(out, "loaded frames") {
		t.Errorf("info message written at warn level: %q", out)
	}
	if !strings.Contains(out, "no frames matched") || !strings.Contains(out, "clip01") {
		t.Errorf("warn message missing from output: %q", out)
	}
}
