// Package logging wires the process-wide slog logger. Log output goes
// to a file, never stdout: the CLI prints rendered boards on stdout
// and anything interleaved would corrupt piped exports.
package logging

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger is the global slog instance for the application.
var Logger *slog.Logger

// Init opens ~/.tablero/logs/tablero.log in append mode and installs
// a text handler over it as the slog default. It returns the logger
// so callers can thread it explicitly instead of reaching for the
// global.
func Init() (*slog.Logger, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	logDir := filepath.Join(homeDir, ".tablero", "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	logPath := filepath.Join(logDir, "tablero.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	// Redirect standard log package output to the same file.
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags)

	return Logger, nil
}
