// Package logger provides the process-wide rotating file logger.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global logger. It stays nil until Init succeeds.
var Logger *log.Logger

// Config controls where and how verbosely the logger writes.
type Config struct {
	Debug bool
	// Stderr mirrors log output to stderr. Ignored unless Debug is set.
	Stderr bool
	Dir    string
}

// Init creates the log directory and installs the global logger.
func Init(cfg Config) error {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return err
	}
	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, "housekeep.log"),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	level := log.InfoLevel
	var writer io.Writer = fileWriter
	if cfg.Debug {
		level = log.DebugLevel
		if cfg.Stderr {
			writer = io.MultiWriter(os.Stderr, fileWriter)
		}
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "housekeep",
	})
	return nil
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message.
func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning.
func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error.
func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
