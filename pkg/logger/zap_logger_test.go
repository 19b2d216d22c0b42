package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/threatflux/cot/internal/config"
)

func TestZapLogger_Levels(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "test.log")

	cfg := config.LoggingConfig{
		Level:    "debug",
		Format:   "json",
		FilePath: logFile,
	}

	logger, err := NewZapLogger(cfg)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Debug("debug message", String("key", "value"))
	logger.Info("info message", Int("count", 42))
	logger.Warn("warn message", Bool("enabled", true))
	logger.Error("error message", Error(errors.New("test error")))

	if err := logger.Sync(); err != nil {
		t.Logf("Sync error (may be expected on some platforms): %v", err)
	}

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	logContent := string(content)

	expectedMessages := []string{
		"debug message",
		"info message",
		"warn message",
		"error message",
	}

	expectedFields := []string{
		`"key":"value"`,
		`"count":42`,
		`"enabled":true`,
		`"error":"test error"`,
	}

	for _, msg := range expectedMessages {
		if !strings.Contains(logContent, msg) {
			t.Errorf("Log content doesn't contain expected message: %s", msg)
		}
	}

	for _, field := range expectedFields {
		if !strings.Contains(logContent, field) {
			t.Errorf("Log content doesn't contain expected field: %s", field)
		}
	}
}

func TestZapLogger_WithFields(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "test.log")

	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		FilePath: logFile,
	}

	baseLogger, err := NewZapLogger(cfg)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	contextLogger := baseLogger.WithFields(
		String("service", "test-service"),
		Int("instance", 1),
	)

	contextLogger.Info("context log message")

	errLogger := contextLogger.WithError(errors.New("context error"))
	errLogger.Error("error with context")

	if err := baseLogger.Sync(); err != nil {
		t.Logf("Sync error (may be expected on some platforms): %v", err)
	}

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	logContent := string(content)

	expectedFields := []string{
		`"service":"test-service"`,
		`"instance":1`,
		`"error":"context error"`,
	}

	for _, field := range expectedFields {
		if !strings.Contains(logContent, field) {
			t.Errorf("Log content doesn't contain expected field: %s", field)
		}
	}
}

func TestZapLogger_FormatTypes(t *testing.T) {
	tests := []struct {
		name   string
		format string
	}{
		{name: "JSON format", format: "json"},
		{name: "Console format", format: "console"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			logFile := filepath.Join(tmpDir, "test.log")

			cfg := config.LoggingConfig{
				Level:    "info",
				Format:   tt.format,
				FilePath: logFile,
			}

			logger, err := NewZapLogger(cfg)
			if err != nil {
				t.Fatalf("Failed to create logger: %v", err)
			}

			logger.Info("test message", String("format", tt.format))

			if err := logger.Sync(); err != nil {
				t.Logf("Sync error (may be expected on some platforms): %v", err)
			}

			if _, err := os.Stat(logFile); os.IsNotExist(err) {
				t.Errorf("Log file was not created")
			}
		})
	}
}

func TestZapLogger_FilePaths(t *testing.T) {
	tests := []struct {
		name      string
		filePath  string
		shouldErr bool
	}{
		{name: "Stdout output", filePath: "stdout", shouldErr: false},
		{name: "Stderr output", filePath: "stderr", shouldErr: false},
		{name: "File output", filePath: "", shouldErr: false},
		{name: "Invalid path", filePath: "/nonexistent/directory/file.log", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := tt.filePath
			if filePath == "" {
				tmpDir := t.TempDir()
				filePath = filepath.Join(tmpDir, "test.log")
			}

			cfg := config.LoggingConfig{
				Level:    "info",
				Format:   "json",
				FilePath: filePath,
			}

			logger, err := NewZapLogger(cfg)
			if tt.shouldErr {
				if err == nil {
					t.Errorf("Expected error when creating logger, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("Failed to create logger: %v", err)
			}

			logger.Info("test message")

			if err := logger.Sync(); err != nil {
				if tt.filePath != "stdout" && tt.filePath != "stderr" {
					t.Errorf("Failed to sync logger: %v", err)
				}
			}
		})
	}
}
