package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	charmlog "charm.land/log/v2"
)

// Format represents the output format of diagnostic logs.
type Format string

const (
	// FormatText outputs human-readable, colorized logs.
	FormatText Format = "text"
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatLogfmt outputs logs in logfmt format.
	FormatLogfmt Format = "logfmt"
)

// ErrUnknownLogFormat indicates an unrecognized log format string.
var ErrUnknownLogFormat = errors.New("unknown log format")

// Handler is the [slog.Handler] used for diagnostics.
type Handler = slog.Handler

// NewHandlerFromStrings creates a diagnostics [Handler] from a level name and
// a format name.
func NewHandlerFromStrings(w io.Writer, logLevel, logFormat string) (Handler, error) {
	lvl, err := ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	f, err := ParseFormat(logFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, lvl, f), nil
}

// NewHandler creates a diagnostics [Handler] writing to w.
//
// Records below lvl are discarded. [FormatText] is rendered by
// [charm.land/log/v2]; the other formats use the [log/slog] built-ins.
func NewHandler(w io.Writer, lvl Level, f Format) Handler {
	switch f {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     lvl.Slog(),
		})

	case FormatLogfmt:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     lvl.Slog(),
		})
	}

	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(lvl.Slog()),
		ReportTimestamp: true,
		Formatter:       charmlog.TextFormatter,
	})
}

// ParseFormat parses a log format string, ignoring case.
func ParseFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if slices.Contains([]Format{FormatText, FormatJSON, FormatLogfmt}, f) {
		return f, nil
	}

	return "", ErrUnknownLogFormat
}

// GetAllFormatStrings returns the names accepted by [ParseFormat].
func GetAllFormatStrings() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatLogfmt)}
}
