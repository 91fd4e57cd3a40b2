// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// =============================================================================
// Test Helpers
// =============================================================================

// captureLogger returns a logger writing JSON lines to the returned buffer.
func captureLogger(level Level) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := New(Config{Level: level, JSON: true, Writer: buf})
	return logger, buf
}

// decodeLines parses every JSON log line in buf.
func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("Failed to parse log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

// =============================================================================
// Level Tests
// =============================================================================

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
		{Level(-1), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.level.String()
			if got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevel_toSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{Level(99), slog.LevelInfo}, // Unknown defaults to Info
		{Level(-1), slog.LevelInfo}, // Unknown defaults to Info
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			got := tt.level.toSlogLevel()
			if got != tt.want {
				t.Errorf("Level.toSlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevel_Constants(t *testing.T) {
	// Verify ordering: Debug < Info < Warn < Error
	if LevelDebug >= LevelInfo {
		t.Error("LevelDebug should be < LevelInfo")
	}
	if LevelInfo >= LevelWarn {
		t.Error("LevelInfo should be < LevelWarn")
	}
	if LevelWarn >= LevelError {
		t.Error("LevelWarn should be < LevelError")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"Debug", LevelDebug, false},
		{"info", LevelInfo, false},
		{"INFO", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"error", LevelError, false},
		{" error ", LevelError, false},
		{"", LevelInfo, false}, // Unset means default
		{"verbose", LevelInfo, true},
		{"warning!", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

// =============================================================================
// Logger Constructor Tests
// =============================================================================

func TestNew_DefaultConfig(t *testing.T) {
	logger := New(Config{})
	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if logger.slog == nil {
		t.Error("logger.slog is nil")
	}
	defer logger.Close()
}

func TestNew_AllLevels(t *testing.T) {
	levels := []Level{LevelDebug, LevelInfo, LevelWarn, LevelError}
	for _, level := range levels {
		t.Run(level.String(), func(t *testing.T) {
			logger := New(Config{Level: level, Quiet: true})
			if logger == nil {
				t.Fatal("New() returned nil")
			}
			defer logger.Close()
		})
	}
}

func TestNew_WithService(t *testing.T) {
	logger := New(Config{
		Service: "test-service",
		Quiet:   true,
	})
	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if logger.config.Service != "test-service" {
		t.Errorf("Service = %v, want test-service", logger.config.Service)
	}
	defer logger.Close()
}

func TestNew_QuietMode(t *testing.T) {
	logger := New(Config{Quiet: true})
	if logger == nil {
		t.Fatal("New() returned nil")
	}
	// Should still have a handler (fallback)
	if logger.slog == nil {
		t.Error("logger.slog is nil in quiet mode")
	}
	defer logger.Close()
}

func TestNew_WithLogDir(t *testing.T) {
	tmpDir := t.TempDir()
	logger := New(Config{
		LogDir:  tmpDir,
		Service: "test",
		Quiet:   true,
	})
	if logger == nil {
		t.Fatal("New() returned nil")
	}
	defer logger.Close()

	// Should have created a log file
	if logger.file == nil {
		t.Error("logger.file is nil when LogDir specified")
	}

	// Verify file was created
	files, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(files) == 0 {
		t.Error("No log file created in LogDir")
	}
}

func TestNew_WithLogDir_NoService(t *testing.T) {
	tmpDir := t.TempDir()
	logger := New(Config{
		LogDir: tmpDir,
		Quiet:  true,
	})
	if logger == nil {
		t.Fatal("New() returned nil")
	}
	defer logger.Close()

	// Should use "satoracle" as default service name
	files, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	found := false
	for _, f := range files {
		if strings.HasPrefix(f.Name(), "satoracle_") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected log file with 'satoracle_' prefix")
	}
}

func TestNew_WithLogDir_InvalidPath(t *testing.T) {
	// Use a path that can't be created
	logger := New(Config{
		LogDir: "/proc/nonexistent/deep/path/that/should/fail",
		Quiet:  true,
	})
	if logger == nil {
		t.Fatal("New() returned nil even with invalid LogDir")
	}
	defer logger.Close()
	// Should still work, just without file logging
	if logger.file != nil {
		t.Error("logger.file should be nil for invalid path")
	}
}

func TestDefault(t *testing.T) {
	logger := Default()
	if logger == nil {
		t.Fatal("Default() returned nil")
	}
	defer logger.Close()

	if logger.config.Level != LevelInfo {
		t.Errorf("Default level = %v, want LevelInfo", logger.config.Level)
	}
	if logger.config.Service != "satoracle" {
		t.Errorf("Default service = %v, want satoracle", logger.config.Service)
	}
}

// =============================================================================
// Logging Method Tests
// =============================================================================

func TestLogger_Debug(t *testing.T) {
	logger, buf := captureLogger(LevelDebug)
	defer logger.Close()

	logger.Debug("test message", "key", "value")

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0]["level"] != "DEBUG" {
		t.Errorf("level = %v, want DEBUG", entries[0]["level"])
	}
	if entries[0]["msg"] != "test message" {
		t.Errorf("msg = %v, want 'test message'", entries[0]["msg"])
	}
	if entries[0]["key"] != "value" {
		t.Errorf("key = %v, want 'value'", entries[0]["key"])
	}
}

func TestLogger_Info(t *testing.T) {
	logger, buf := captureLogger(LevelInfo)
	defer logger.Close()

	logger.Info("info message", "count", 42)

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0]["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", entries[0]["level"])
	}
	// JSON numbers decode as float64
	if entries[0]["count"] != float64(42) {
		t.Errorf("count = %v, want 42", entries[0]["count"])
	}
}

func TestLogger_Warn(t *testing.T) {
	logger, buf := captureLogger(LevelWarn)
	defer logger.Close()

	logger.Warn("warning message", "attempt", 2)

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0]["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", entries[0]["level"])
	}
}

func TestLogger_Error(t *testing.T) {
	logger, buf := captureLogger(LevelError)
	defer logger.Close()

	logger.Error("error message", "error", "something failed")

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0]["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", entries[0]["level"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := captureLogger(LevelWarn) // Only Warn and Error
	defer logger.Close()

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	entries := decodeLines(t, buf)
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries (Warn+Error), got %d", len(entries))
	}
}

func TestLogger_TextFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(Config{Level: LevelInfo, Writer: buf})
	defer logger.Close()

	logger.Info("plain message", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "msg=\"plain message\"") {
		t.Errorf("Text output missing message: %q", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("Text output missing attribute: %q", out)
	}
}

func TestLogger_ServiceAttribute(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(Config{
		Level:   LevelInfo,
		Service: "oracle",
		JSON:    true,
		Writer:  buf,
	})
	defer logger.Close()

	logger.Info("with service")

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0]["service"] != "oracle" {
		t.Errorf("service = %v, want oracle", entries[0]["service"])
	}
}

func TestLogger_With(t *testing.T) {
	logger, buf := captureLogger(LevelInfo)
	defer logger.Close()

	childLogger := logger.With("request_id", "abc123")
	if childLogger == nil {
		t.Fatal("With() returned nil")
	}

	childLogger.Info("request started")

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0]["request_id"] != "abc123" {
		t.Errorf("request_id = %v, want abc123", entries[0]["request_id"])
	}
}

func TestLogger_With_SharesResources(t *testing.T) {
	tmpDir := t.TempDir()
	logger := New(Config{
		LogDir:  tmpDir,
		Service: "test",
		Quiet:   true,
	})
	defer logger.Close()

	childLogger := logger.With("child", true)

	// Child should share the file handle
	if childLogger.file != logger.file {
		t.Error("Child logger should share file handle")
	}
	// And the level var, so SetLevel affects both
	if childLogger.level != logger.level {
		t.Error("Child logger should share level")
	}
}

func TestLogger_Slog(t *testing.T) {
	logger := New(Config{Quiet: true})
	defer logger.Close()

	slogger := logger.Slog()
	if slogger == nil {
		t.Error("Slog() returned nil")
	}
}

func TestLogger_ConcurrentUse(t *testing.T) {
	logger, buf := captureLogger(LevelInfo)
	defer logger.Close()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Info("concurrent log", "n", n)
		}(i)
	}
	wg.Wait()

	entries := decodeLines(t, buf)
	if len(entries) != 100 {
		t.Errorf("Expected 100 entries, got %d", len(entries))
	}
}

// =============================================================================
// Dynamic Level Tests
// =============================================================================

func TestLogger_SetLevel(t *testing.T) {
	logger, buf := captureLogger(LevelInfo)
	defer logger.Close()

	logger.Debug("filtered")
	if len(decodeLines(t, buf)) != 0 {
		t.Fatal("Debug should be filtered at Info level")
	}

	logger.SetLevel(LevelDebug)
	logger.Debug("visible")

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry after SetLevel, got %d", len(entries))
	}
	if entries[0]["msg"] != "visible" {
		t.Errorf("msg = %v, want 'visible'", entries[0]["msg"])
	}
}

func TestLogger_SetLevel_Raises(t *testing.T) {
	logger, buf := captureLogger(LevelInfo)
	defer logger.Close()

	logger.SetLevel(LevelError)
	logger.Info("filtered")
	logger.Warn("filtered")
	logger.Error("kept")

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
}

func TestLogger_SetLevel_AffectsChildren(t *testing.T) {
	logger, buf := captureLogger(LevelInfo)
	defer logger.Close()

	child := logger.With("component", "watcher")
	child.Debug("filtered")
	if len(decodeLines(t, buf)) != 0 {
		t.Fatal("Debug should be filtered before SetLevel")
	}

	// Lowering the parent's level must make the child verbose too
	logger.SetLevel(LevelDebug)
	child.Debug("visible")

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0]["component"] != "watcher" {
		t.Errorf("component = %v, want watcher", entries[0]["component"])
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestLogger_Close_NoResources(t *testing.T) {
	logger := New(Config{Quiet: true})
	if err := logger.Close(); err != nil {
		t.Errorf("Close() returned error: %v", err)
	}
}

func TestLogger_Close_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	logger := New(Config{
		LogDir:  tmpDir,
		Service: "test",
		Quiet:   true,
	})

	logger.Info("before close")

	if err := logger.Close(); err != nil {
		t.Errorf("Close() returned error: %v", err)
	}
}

// =============================================================================
// multiHandler Tests
// =============================================================================

func TestMultiHandler_Enabled(t *testing.T) {
	// Create handlers with different levels
	debugOpts := &slog.HandlerOptions{Level: slog.LevelDebug}
	warnOpts := &slog.HandlerOptions{Level: slog.LevelWarn}

	var buf bytes.Buffer
	h1 := slog.NewTextHandler(&buf, debugOpts)
	h2 := slog.NewTextHandler(&buf, warnOpts)

	mh := &multiHandler{handlers: []slog.Handler{h1, h2}}

	// Debug level: should be enabled (h1 accepts it)
	if !mh.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Debug should be enabled")
	}

	// Info level: should be enabled (h1 accepts it)
	if !mh.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Info should be enabled")
	}

	// Warn level: both accept it
	if !mh.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("Warn should be enabled")
	}
}

func TestMultiHandler_Enabled_NoneEnabled(t *testing.T) {
	// Create handler that only accepts Error
	opts := &slog.HandlerOptions{Level: slog.LevelError}
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, opts)

	mh := &multiHandler{handlers: []slog.Handler{h}}

	// Debug should not be enabled
	if mh.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Debug should not be enabled")
	}
}

func TestMultiHandler_Handle(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	h1 := slog.NewTextHandler(&buf1, opts)
	h2 := slog.NewTextHandler(&buf2, opts)

	mh := &multiHandler{handlers: []slog.Handler{h1, h2}}

	record := slog.Record{}
	record.Level = slog.LevelInfo
	record.Message = "test message"

	err := mh.Handle(context.Background(), record)
	if err != nil {
		t.Errorf("Handle() returned error: %v", err)
	}

	// Both buffers should have content
	if buf1.Len() == 0 {
		t.Error("buf1 should have content")
	}
	if buf2.Len() == 0 {
		t.Error("buf2 should have content")
	}
}

func TestMultiHandler_Handle_LevelFiltering(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h1 := slog.NewTextHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelDebug})
	h2 := slog.NewTextHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelError})

	mh := &multiHandler{handlers: []slog.Handler{h1, h2}}

	record := slog.Record{}
	record.Level = slog.LevelInfo

	_ = mh.Handle(context.Background(), record)

	// buf1 should have content (accepts Info)
	if buf1.Len() == 0 {
		t.Error("buf1 should have content")
	}
	// buf2 should be empty (only accepts Error)
	if buf2.Len() != 0 {
		t.Error("buf2 should be empty")
	}
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, nil)
	mh := &multiHandler{handlers: []slog.Handler{h}}

	attrs := []slog.Attr{slog.String("key", "value")}
	newHandler := mh.WithAttrs(attrs)

	if newHandler == nil {
		t.Fatal("WithAttrs() returned nil")
	}
	if _, ok := newHandler.(*multiHandler); !ok {
		t.Error("WithAttrs() should return *multiHandler")
	}
}

func TestMultiHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, nil)
	mh := &multiHandler{handlers: []slog.Handler{h}}

	newHandler := mh.WithGroup("group")

	if newHandler == nil {
		t.Fatal("WithGroup() returned nil")
	}
	if _, ok := newHandler.(*multiHandler); !ok {
		t.Error("WithGroup() should return *multiHandler")
	}
}

// =============================================================================
// Helper Function Tests
// =============================================================================

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/logs", filepath.Join(home, "logs")},
		{"~/.satoracle/logs", filepath.Join(home, ".satoracle/logs")},
		{"~", home},
		{"/var/log", "/var/log"},
		{"relative/path", "relative/path"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := expandPath(tt.input)
			if got != tt.want {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// =============================================================================
// File Logging Tests
// =============================================================================

func TestLogger_FileContent(t *testing.T) {
	tmpDir := t.TempDir()
	logger := New(Config{
		Level:   LevelInfo,
		LogDir:  tmpDir,
		Service: "file-test",
		Quiet:   true,
	})

	logger.Info("test message", "key", "value")
	logger.Close()

	// Read the log file
	files, _ := os.ReadDir(tmpDir)
	if len(files) == 0 {
		t.Fatal("No log file created")
	}

	content, err := os.ReadFile(filepath.Join(tmpDir, files[0].Name()))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	// Should be JSON format
	if !strings.Contains(string(content), "test message") {
		t.Error("Log file should contain 'test message'")
	}
	if !strings.Contains(string(content), "\"key\":\"value\"") {
		t.Error("Log file should contain key-value pair in JSON format")
	}
}

func TestLogger_FileAndWriterFanout(t *testing.T) {
	tmpDir := t.TempDir()
	buf := &bytes.Buffer{}
	logger := New(Config{
		Level:   LevelInfo,
		LogDir:  tmpDir,
		Service: "fanout-test",
		JSON:    true,
		Writer:  buf,
	})

	logger.Info("both destinations")
	logger.Close()

	// Writer should have the entry
	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 writer entry, got %d", len(entries))
	}

	// File should have it too
	files, _ := os.ReadDir(tmpDir)
	if len(files) == 0 {
		t.Fatal("No log file created")
	}
	content, err := os.ReadFile(filepath.Join(tmpDir, files[0].Name()))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "both destinations") {
		t.Error("Log file should contain the message")
	}
}

// =============================================================================
// Config Tests
// =============================================================================

func TestConfig_ZeroValue(t *testing.T) {
	config := Config{}
	if config.LogDir != "" {
		t.Error("LogDir zero value should be empty")
	}
	if config.Service != "" {
		t.Error("Service zero value should be empty")
	}
	if config.JSON {
		t.Error("JSON zero value should be false")
	}
	if config.Quiet {
		t.Error("Quiet zero value should be false")
	}
	if config.Writer != nil {
		t.Error("Writer zero value should be nil")
	}
}
