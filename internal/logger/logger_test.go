package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{"off", LevelOff, false, false},
		{"normal", LevelNormal, false, true},
		{"verbose", LevelVerbose, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.level, &buf)
			log.Debug("debug %d", 1)
			log.Info("info %d", 2)

			out := buf.String()
			if got := strings.Contains(out, "debug 1"); got != tt.wantDebug {
				t.Errorf("debug visible = %v, want %v (out=%q)", got, tt.wantDebug, out)
			}
			if got := strings.Contains(out, "info 2"); got != tt.wantInfo {
				t.Errorf("info visible = %v, want %v (out=%q)", got, tt.wantInfo, out)
			}
		})
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelOff, &buf)
	log.Error("hidden")
	log.SetLevel(LevelNormal)
	log.Error("shown")

	if log.GetLevel() != LevelNormal {
		t.Fatalf("expected LevelNormal, got %d", log.GetLevel())
	}
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("message logged while off: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "ERROR") {
		t.Fatalf("expected error line, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"off":     LevelOff,
		"QUIET":   LevelOff,
		"debug":   LevelVerbose,
		"verbose": LevelVerbose,
		"info":    LevelNormal,
		"":        LevelNormal,
		"bogus":   LevelNormal,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %d, want %d", in, got, want)
		}
	}
}
