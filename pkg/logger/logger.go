package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

type Config struct {
	Level      string
	JSON       bool
	Output     io.Writer
	TimeFormat string
}

func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Output:     os.Stderr,
		TimeFormat: "15:04:05",
	}
}

func New(config Config) *log.Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	if config.TimeFormat == "" {
		config.TimeFormat = "15:04:05"
	}

	logger := log.NewWithOptions(config.Output, log.Options{
		ReportTimestamp: true,
		TimeFormat:      config.TimeFormat,
		Level:           ParseLevel(config.Level),
		Prefix:          "pictech",
	})

	if config.JSON {
		logger.SetFormatter(log.JSONFormatter)
	} else {
		logger.SetFormatter(log.TextFormatter)
	}

	return logger
}

// ParseLevel falls back to info for unknown level names.
func ParseLevel(level string) log.Level {
	parsed, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}

	return parsed
}

func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
