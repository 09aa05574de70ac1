// Package logging builds the zerolog logger shared by the alert tools.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config describes a logger. The zero value logs JSON at info level to stdout.
type Config struct {
	Level   string
	AppName string
	Format  string
	Output  io.Writer
}

// New returns a logger for the config. Every entry carries the app name and a timestamp.
func New(c Config) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if c.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(c.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", c.Level, err)
		}
		level = parsed
	}

	out := c.Output
	if out == nil {
		out = os.Stdout
	}
	switch strings.ToLower(c.Format) {
	case "", FormatJSON:
	case FormatConsole:
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", c.Format)
	}

	appName := c.AppName
	if appName == "" {
		appName = "none"
	}
	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", appName).
		Logger(), nil
}
