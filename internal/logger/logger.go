package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const serviceName = "cover-quote"

// New builds the root logger. Unknown or empty levels fall back to info.
func New(level string) *zerolog.Logger {
	return NewWithWriter(level, os.Stdout)
}

func NewWithWriter(level string, w io.Writer) *zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}

	log := zerolog.New(w).
		Level(parsed).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	return &log
}
