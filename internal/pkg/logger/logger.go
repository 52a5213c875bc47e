// Package logger wires zerolog as the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger zerolog.Logger

// Config controls the global logger output.
type Config struct {
	Level  string    // zerolog level name; unknown values fall back to info
	Pretty bool      // console writer instead of JSON lines
	Output io.Writer // defaults to os.Stdout
}

// Configure replaces the global logger. Called once more after the
// configuration file has been read.
func Configure(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	writer := cfg.Output
	if cfg.Pretty {
		writer = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.RFC3339}
	}

	defaultLogger = zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = defaultLogger
}

// Debug starts a debug-level event on the global logger.
func Debug() *zerolog.Event { return defaultLogger.Debug() }

// Info starts an info-level event on the global logger.
func Info() *zerolog.Event { return defaultLogger.Info() }

// Warn starts a warn-level event on the global logger.
func Warn() *zerolog.Event { return defaultLogger.Warn() }

// Error starts an error-level event on the global logger.
func Error() *zerolog.Event { return defaultLogger.Error() }

func init() {
	Configure(Config{Level: "info", Pretty: true})
}
