package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Common errors.
var (
	ErrEmptyValue         = errors.New("value cannot be empty")
	ErrFileNotAccessible  = errors.New("file is not accessible")
	ErrDirectoryNotExists = errors.New("directory does not exist")
	ErrInvalidFormat      = errors.New("invalid format")
)

// Validate checks if the configuration is valid.
func Validate(cfg *Config) error {
	if err := ValidateLogging(cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := ValidateSession(cfg.Session); err != nil {
		return fmt.Errorf("session config: %w", err)
	}

	if err := ValidateOutput(cfg.Output); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	return nil
}

// ValidateLogging validates logging configuration.
func ValidateLogging(logging LoggingConfig) error {
	validLevels := map[string]bool{
		"debug":  true,
		"info":   true,
		"warn":   true,
		"error":  true,
		"dpanic": true,
		"panic":  true,
		"fatal":  true,
	}

	if !validLevels[strings.ToLower(logging.Level)] {
		return fmt.Errorf("log level %s: %w", logging.Level, ErrInvalidFormat)
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[strings.ToLower(logging.Format)] {
		return fmt.Errorf("log format %s: %w", logging.Format, ErrInvalidFormat)
	}

	if logging.FilePath != "" && logging.FilePath != "stdout" && logging.FilePath != "stderr" {
		dir := filepath.Dir(logging.FilePath)
		if err := checkDirWritable(dir); err != nil {
			return fmt.Errorf("log directory: %w", err)
		}
	}

	return nil
}

// ValidateSession validates scratch-directory/session configuration.
func ValidateSession(session SessionConfig) error {
	if session.ScratchDir != "" {
		if err := checkDirWritable(session.ScratchDir); err != nil {
			return fmt.Errorf("scratch directory: %w", err)
		}
	}

	if session.SpaceCheckMargin < 0 || session.SpaceCheckMargin > 1 {
		return fmt.Errorf("space check margin must be in [0,1]")
	}

	return nil
}

// ValidateOutput validates output configuration.
func ValidateOutput(output OutputConfig) error {
	switch output.DefaultForm {
	case "directory", "ova":
	default:
		return fmt.Errorf("default form %s: %w", output.DefaultForm, ErrInvalidFormat)
	}
	return nil
}

// checkDirWritable checks if a directory exists and is writable.
func checkDirWritable(path string) error {
	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", path, ErrDirectoryNotExists)
	}
	if err != nil {
		return fmt.Errorf("accessing %s: %w", path, err)
	}

	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}

	tempFile := filepath.Join(path, ".cot-write-test")
	f, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("directory %s is not writable: %w", path, err)
	}
	f.Close()
	os.Remove(tempFile)

	return nil
}
