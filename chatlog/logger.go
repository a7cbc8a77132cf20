package chatlog

import (
	"fmt"
	"runtime"
	"slices"
	"time"

	"go.jacobcolvin.com/chatlog/log"
	"go.jacobcolvin.com/chatlog/pattern"
)

// Logger filters records by level and hands them to its sinks.
//
// A Logger does no locking; callers serialize logging and configuration.
//
// Create instances with [NewLogger].
type Logger struct {
	name       string
	sinks      []Sink
	level      log.Level
	flushLevel log.Level
}

// NewLogger creates a [Logger] at [log.LevelInfo] that never flushes on its
// own.
func NewLogger(name string, sinks ...Sink) *Logger {
	return &Logger{
		name:       name,
		sinks:      sinks,
		level:      log.LevelInfo,
		flushLevel: log.LevelOff,
	}
}

// Name returns the logger name.
func (l *Logger) Name() string {
	return l.name
}

// Level returns the minimum level emitted by l.
func (l *Logger) Level() log.Level {
	return l.level
}

// SetLevel sets the minimum level emitted by l.
func (l *Logger) SetLevel(lvl log.Level) {
	l.level = lvl
}

// FlushLevel returns the level at and above which sinks are flushed after
// each record.
func (l *Logger) FlushLevel() log.Level {
	return l.flushLevel
}

// FlushOn sets the level at and above which sinks are flushed after each
// record. [log.LevelOff] disables automatic flushing.
func (l *Logger) FlushOn(lvl log.Level) {
	l.flushLevel = lvl
}

// Sinks returns the sinks of l.
func (l *Logger) Sinks() []Sink {
	return slices.Clone(l.sinks)
}

// AddSink appends s to the sinks of l.
func (l *Logger) AddSink(s Sink) {
	l.sinks = append(l.sinks, s)
}

// Enabled reports whether a record at lvl would be emitted.
func (l *Logger) Enabled(lvl log.Level) bool {
	return lvl.Valid() && l.level != log.LevelOff && lvl >= l.level
}

// Flush flushes every sink.
func (l *Logger) Flush() {
	for _, s := range l.sinks {
		s.Flush()
	}
}

// Log emits msg at lvl.
func (l *Logger) Log(lvl log.Level, msg string) {
	l.logSkip(lvl, msg, 2)
}

// Logf emits a message formatted with [fmt.Sprintf] at lvl.
func (l *Logger) Logf(lvl log.Level, format string, args ...any) {
	if !l.Enabled(lvl) {
		return
	}

	l.logSkip(lvl, fmt.Sprintf(format, args...), 2)
}

// Trace emits a formatted message at [log.LevelTrace].
func (l *Logger) Trace(format string, args ...any) {
	l.logfSkip(log.LevelTrace, format, args)
}

// Debug emits a formatted message at [log.LevelDebug].
func (l *Logger) Debug(format string, args ...any) {
	l.logfSkip(log.LevelDebug, format, args)
}

// Info emits a formatted message at [log.LevelInfo].
func (l *Logger) Info(format string, args ...any) {
	l.logfSkip(log.LevelInfo, format, args)
}

// Warn emits a formatted message at [log.LevelWarn].
func (l *Logger) Warn(format string, args ...any) {
	l.logfSkip(log.LevelWarn, format, args)
}

// Error emits a formatted message at [log.LevelError].
func (l *Logger) Error(format string, args ...any) {
	l.logfSkip(log.LevelError, format, args)
}

// Critical emits a formatted message at [log.LevelCritical].
func (l *Logger) Critical(format string, args ...any) {
	l.logfSkip(log.LevelCritical, format, args)
}

// LogRecord emits rec as given, after the level check. A zero time is
// replaced by the current time.
func (l *Logger) LogRecord(rec pattern.Record) {
	if !l.Enabled(rec.Level) {
		return
	}

	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}

	l.dispatch(rec)
}

// logfSkip is called directly by the exported level helpers so that the
// caller frame is at a fixed depth.
func (l *Logger) logfSkip(lvl log.Level, format string, args []any) {
	if !l.Enabled(lvl) {
		return
	}

	l.logSkip(lvl, fmt.Sprintf(format, args...), 3)
}

func (l *Logger) logSkip(lvl log.Level, msg string, skip int) {
	if !l.Enabled(lvl) {
		return
	}

	rec := pattern.Record{
		Time:    time.Now(),
		Level:   lvl,
		Name:    l.name,
		Message: msg,
	}

	if pc, file, line, ok := runtime.Caller(skip); ok {
		rec.Caller = pattern.Caller{File: file, Line: line}
		if fn := runtime.FuncForPC(pc); fn != nil {
			rec.Caller.Function = fn.Name()
		}
	}

	l.dispatch(rec)
}

func (l *Logger) dispatch(rec pattern.Record) {
	if rec.Name == "" {
		rec.Name = l.name
	}

	for _, s := range l.sinks {
		if rec.Level >= s.Level() {
			s.Log(rec)
		}
	}

	if l.flushLevel != log.LevelOff && rec.Level >= l.flushLevel {
		l.Flush()
	}
}
