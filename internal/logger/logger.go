// Package logger configures structured JSON logging with zerolog.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the root logger. With pretty enabled the output goes
// through the console writer instead of raw JSON.
func New(level string, pretty bool) zerolog.Logger {
	logLevel := zerolog.InfoLevel
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	var log zerolog.Logger
	if pretty {
		log = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(logLevel).With().Timestamp().Logger()
}
