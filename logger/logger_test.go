package logger

import (
	"log/slog"
	"testing"
)

func TestNewLoggerFormatSelection(t *testing.T) {
	if _, ok := NewLogger("Test", slog.LevelInfo, "json", true).Handler().(*slog.JSONHandler); !ok {
		t.Error(`NewLogger(format "json") did not return a JSON handler`)
	}
	if _, ok := NewLogger("Test", slog.LevelInfo, "", false).Handler().(*CustomHandler); !ok {
		t.Error("NewLogger(default format) did not return the console handler")
	}
	if _, ok := NewLogger("Test", slog.LevelInfo, "console", false).Handler().(*CustomHandler); !ok {
		t.Error(`NewLogger(format "console") did not return the console handler`)
	}
}

func TestHandlerLevelThreshold(t *testing.T) {
	h := NewHandler("Test", slog.LevelWarn)

	if h.Enabled(nil, slog.LevelInfo) {
		t.Error("Enabled(Info) = true with a Warn threshold")
	}
	if !h.Enabled(nil, slog.LevelWarn) {
		t.Error("Enabled(Warn) = false with a Warn threshold")
	}
	if !h.Enabled(nil, slog.LevelError) {
		t.Error("Enabled(Error) = false with a Warn threshold")
	}
}
