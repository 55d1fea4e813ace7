package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestNewLoggerNoFileDiscards(t *testing.T) {
	log, closeLog := newLogger("", false)
	defer closeLog()
	log.Error("this should not panic or write anywhere visible")
}

func TestNewLoggerWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gupty.log")
	log, closeLog := newLogger(path, true)

	log.Debug("hello", "key", "value")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v (%q)", err, data)
	}
	if entry["msg"] != "hello" {
		t.Errorf("msg = %v, want %q", entry["msg"], "hello")
	}
	if entry["key"] != "value" {
		t.Errorf("key = %v, want %q", entry["key"], "value")
	}
}

func TestNewLoggerDebugGatesLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gupty.log")
	log, closeLog := newLogger(path, false)
	log.Debug("should be filtered out at error level")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("log file = %q, want empty (debug line filtered at error level)", data)
	}
}

func TestNewLoggerBadPathFallsBackToDiscard(t *testing.T) {
	log, closeLog := newLogger(filepath.Join(t.TempDir(), "nope", "gupty.log"), false)
	defer closeLog()
	if log == nil {
		t.Fatal("newLogger returned a nil logger on an unwritable path")
	}
	log.Error("must not panic")
}

var _ = slog.LevelDebug
