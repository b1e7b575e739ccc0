package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New constructs the application logger. Defaults to JSON on stdout at
// info level when the configured level does not parse.
func New(levelStr string) zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(levelStr))); err == nil {
		level = parsed
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	return zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("app", "studio-manager").
		Logger()
}
