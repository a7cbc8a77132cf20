package log

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Level is the severity of a chat log record.
//
// Levels are ordered: a logger set to [LevelWarn] emits warn, error and
// critical records. [LevelOff] disables emission and is never accepted by
// [ParseLevel].
type Level int

const (
	// LevelTrace is the most verbose level.
	LevelTrace Level = iota
	// LevelDebug is for debugging output.
	LevelDebug
	// LevelInfo is the default level.
	LevelInfo
	// LevelWarn is for recoverable problems.
	LevelWarn
	// LevelError is for failed operations.
	LevelError
	// LevelCritical is for failures that stop the caller.
	LevelCritical
	// LevelOff disables all output.
	LevelOff
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
)

var levelNames = [...]string{
	LevelTrace:    "trace",
	LevelDebug:    "debug",
	LevelInfo:     "info",
	LevelWarn:     "warn",
	LevelError:    "error",
	LevelCritical: "critical",
	LevelOff:      "off",
}

var levelLetters = [...]string{
	LevelTrace:    "T",
	LevelDebug:    "D",
	LevelInfo:     "I",
	LevelWarn:     "W",
	LevelError:    "E",
	LevelCritical: "C",
	LevelOff:      "O",
}

// Levels returns every level that can carry a record, in ascending order.
// [LevelOff] is not included.
func Levels() []Level {
	return []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelCritical}
}

// Valid reports whether l is one of the record-carrying levels.
func (l Level) Valid() bool {
	return l >= LevelTrace && l < LevelOff
}

// String returns the canonical lower-case name of l. Values outside the
// enumeration are rendered as their decimal value.
func (l Level) String() string {
	if l >= LevelTrace && l <= LevelOff {
		return levelNames[l]
	}

	return strconv.Itoa(int(l))
}

// Letter returns the single upper-case letter used for compact output.
func (l Level) Letter() string {
	if l >= LevelTrace && l <= LevelOff {
		return levelLetters[l]
	}

	return "?"
}

// Slog returns the [slog.Level] that best matches l.
func (l Level) Slog() slog.Level {
	switch l {
	case LevelTrace:
		return slog.LevelDebug - 4
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelCritical:
		return slog.LevelError + 4
	}

	return slog.LevelError + 8
}

// FromSlog maps a [slog.Level] onto the nearest [Level].
func FromSlog(l slog.Level) Level {
	switch {
	case l < slog.LevelDebug:
		return LevelTrace
	case l < slog.LevelInfo:
		return LevelDebug
	case l < slog.LevelWarn:
		return LevelInfo
	case l < slog.LevelError:
		return LevelWarn
	case l == slog.LevelError:
		return LevelError
	}

	return LevelCritical
}

// ParseLevel parses a level name, ignoring case.
//
// Accepted names are trace, debug, info, warn or warning, err or error, and
// critical or fatal. The name "off" is rejected.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "err", "error":
		return LevelError, nil
	case "critical", "fatal":
		return LevelCritical, nil
	}

	return 0, ErrUnknownLogLevel
}

// GetAllLevelStrings returns the canonical names accepted by [ParseLevel].
func GetAllLevelStrings() []string {
	names := make([]string, 0, len(Levels()))
	for _, l := range Levels() {
		names = append(names, l.String())
	}

	return names
}
