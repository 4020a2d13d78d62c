package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	Level  string
	File   string
	Format string
}

func level(option string) (slog.Leveler, bool) {
	switch strings.ToLower(option) {
	case "":
		return nil, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return nil, false
	}
}

func nopClose() error { return nil }

// New returns a logger configured by options and a function releasing the
// log file, if any. Options that cannot be honored are reset to their
// default and reported as a warning through the returned logger.
func New(options *Options) (*slog.Logger, func() error) {
	return newLogger(options, os.Stdout)
}

func newLogger(options *Options, stdout io.Writer) (*slog.Logger, func() error) {
	level, ok := level(options.Level)
	if !ok {
		options.Level = ""
		logger, closer := newLogger(options, stdout)
		logger.Warn("could not parse logger level")
		return logger, closer
	}
	opts := slog.HandlerOptions{Level: level}

	format := strings.ToLower(options.Format)
	if format != "" && format != "text" && format != "json" {
		options.Format = "text"
		logger, closer := newLogger(options, stdout)
		logger.Warn("could not parse logger format")
		return logger, closer
	}

	output, closer := stdout, nopClose
	switch options.File {
	case "", "-":
	case os.DevNull:
		return slog.New(slog.DiscardHandler), nopClose
	default:
		f, err := os.OpenFile(options.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			options.File = ""
			logger, closer := newLogger(options, stdout)
			logger.Warn("could not open logger file", "err", err)
			return logger, closer
		}
		output, closer = f, f.Close
	}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(output, &opts)), closer
	}
	return slog.New(slog.NewTextHandler(output, &opts)), closer
}
