package logger

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInit_WithFile(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	logFile := filepath.Join(t.TempDir(), "dashboard.log")
	if err := Init("debug", logFile); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info("logger initialized")
	Sync()

	if !Log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be enabled")
	}
}

func TestInit_BadFilePath(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	err := Init("info", filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	if err == nil {
		t.Error("expected error for unwritable log path")
	}
}
