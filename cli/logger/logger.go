package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	LogLevel  string `doc:"log from debug, info, warn or error, with an optional offset like warn+2"`
	LogFile   string `doc:"append logs to file"`
	LogFormat string `doc:"format logs as text or json"         default:"text"`
	LogSource bool   `doc:"add source file and line to logs"`
}

func level(option string) (slog.Leveler, bool) {
	if option == "" {
		return nil, true
	}
	if strings.EqualFold(option, "warning") {
		return slog.LevelWarn, true
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(option)); err != nil {
		return nil, false
	}
	return l, true
}

// New builds a logger from options, with attrs attached to every record.
// Invalid options are reset to their default and reported through the
// returned logger.
func New(options *Options, attrs ...slog.Attr) *slog.Logger {
	level, ok := level(options.LogLevel)
	if !ok {
		invalid := options.LogLevel
		options.LogLevel = ""
		logger := New(options, attrs...)
		logger.Warn("could not parse logger level", "option", invalid)
		return logger
	}
	opts := slog.HandlerOptions{Level: level, AddSource: options.LogSource}

	var output io.Writer
	switch options.LogFile {
	case "", "-":
		output = os.Stdout
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		var err error
		output, err = os.OpenFile(options.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			options.LogFile = ""
			logger := New(options, attrs...)
			logger.Warn("could not open logger file", "err", err)
			return logger
		}
	}

	var handler slog.Handler
	switch strings.ToLower(options.LogFormat) {
	case "json":
		handler = slog.NewJSONHandler(output, &opts)
	case "text":
		handler = slog.NewTextHandler(output, &opts)
	default:
		format := options.LogFormat
		options.LogFormat = "text"
		logger := New(options, attrs...)
		logger.Warn("could not parse logger format", "option", format)
		return logger
	}
	return slog.New(handler.WithAttrs(attrs))
}
