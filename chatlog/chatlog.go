package chatlog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"go.jacobcolvin.com/chatlog/log"
	"go.jacobcolvin.com/chatlog/pattern"
)

var (
	// ErrNilChat indicates a nil [Chat] was passed to a constructor.
	ErrNilChat = errors.New("nil chat")
	// ErrInvalidColor indicates a color that is not 1, 3 or 7 characters
	// long.
	ErrInvalidColor = errors.New("invalid color")
)

type options struct {
	macros  MacroContext
	diag    *slog.Logger
	pattern string
	name    string
}

// Option configures a [Log].
type Option func(*options)

// WithPattern sets the initial line pattern. The default is
// [log.DefaultPattern].
func WithPattern(p string) Option {
	return func(o *options) {
		o.pattern = p
	}
}

// WithName sets the logger name shown by %n. The default is
// [log.DefaultName].
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithMacroContext sets the host query used by the %j, %k and %q
// directives. Without it those directives write nothing.
func WithMacroContext(m MacroContext) Option {
	return func(o *options) {
		o.macros = m
	}
}

// WithLogger sets the logger that receives diagnostics about rejected
// settings and formatter rebuilds. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.diag = l
		}
	}
}

// Log routes log records into the host chat window.
//
// A Log owns one [Logger], one [ChatSink], its [ColorTable] and the active
// pattern. The formatter holds the color table by reference, so every line
// uses the table as it is when the line is formatted. The formatter is
// rebuilt whenever the pattern changes and when a color change asks for it.
//
// Log is not safe for concurrent use. Logging calls and configuration
// changes must come from one goroutine, normally the host's main thread.
//
// Create instances with [New] or [NewFromConfig].
type Log struct {
	logger  *Logger
	sink    *ChatSink
	colors  *ColorTable
	macros  MacroContext
	diag    *slog.Logger
	pattern string
	closed  bool
}

// New creates a [Log] printing to chat and registers its logger as the
// process-wide default (see [SetDefault]).
//
// The logger starts at [log.LevelInfo] and flushes on info; the sink accepts
// every level. An invalid pattern is returned as a [pattern.ErrInvalidPattern]
// error.
func New(chat Chat, opts ...Option) (*Log, error) {
	if chat == nil {
		return nil, ErrNilChat
	}

	o := options{
		pattern: log.DefaultPattern,
		name:    log.DefaultName,
		diag:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	l := &Log{
		sink:   NewChatSink(chat),
		colors: NewColorTable(),
		macros: o.macros,
		diag:   o.diag,
	}

	l.logger = NewLogger(o.name, l.sink)
	l.logger.SetLevel(log.LevelInfo)
	l.logger.FlushOn(log.LevelInfo)

	err := l.SetPattern(o.pattern)
	if err != nil {
		return nil, err
	}

	SetDefault(l.logger)

	return l, nil
}

// NewFromConfig creates a [Log] using the name, pattern, level and colors of
// cfg. Empty name and pattern fall back to the defaults. opts are applied
// after the config values.
func NewFromConfig(chat Chat, cfg *log.Config, opts ...Option) (*Log, error) {
	lvl, err := cfg.LogLevel()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", log.ErrInvalidArgument, err)
	}

	colors, err := cfg.ColorMap()
	if err != nil {
		return nil, err
	}

	var bad []string

	for _, k := range log.Levels() {
		if c, ok := colors[k]; ok && !ValidColor(c) {
			bad = append(bad, fmt.Sprintf("%s=%q", k, c))
		}
	}

	if len(bad) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidColor, bad)
	}

	var base []Option
	if cfg.Pattern != "" {
		base = append(base, WithPattern(cfg.Pattern))
	}

	if cfg.Name != "" {
		base = append(base, WithName(cfg.Name))
	}

	l, err := New(chat, slices.Concat(base, opts)...)
	if err != nil {
		return nil, err
	}

	l.logger.SetLevel(lvl)
	l.logger.FlushOn(lvl)

	if len(colors) > 0 {
		l.SetColorsByLevel(colors)
	}

	return l, nil
}

// Close flushes the logger and releases the default-logger registration if
// this Log still holds it. Only the first call has any effect.
func (l *Log) Close() error {
	if l.closed {
		return nil
	}

	l.closed = true
	l.logger.Flush()

	if release(l.logger) {
		l.diag.Debug("released default chat logger", slog.String("name", l.logger.Name()))
	}

	return nil
}

// Logger returns the underlying [Logger].
func (l *Log) Logger() *Logger {
	return l.logger
}

// Handler returns a [slog.Handler] that writes to this Log.
func (l *Log) Handler() slog.Handler {
	return NewHandler(l.logger)
}

// Pattern returns the active pattern.
func (l *Log) Pattern() string {
	return l.pattern
}

// SetPattern compiles p and installs it on the sink, replacing the previous
// formatter as a whole. When p does not compile the error is returned and
// the previous pattern stays active.
func (l *Log) SetPattern(p string) error {
	f, err := l.compile(p)
	if err != nil {
		l.diag.Debug("rejected chat pattern",
			slog.String("pattern", p),
			slog.Any("error", err),
		)

		return err
	}

	l.pattern = p
	l.sink.SetFormatter(f)

	return nil
}

// LogLevel returns the name of the logger's minimum level, or its decimal
// value when the level is not a known one.
func (l *Log) LogLevel() string {
	return l.logger.Level().String()
}

// SetLogLevel sets the minimum level and the flush level from a level name,
// ignoring case. Accepted names are those of [log.ParseLevel]; "off" is not
// one of them. On failure nothing changes and false is returned.
func (l *Log) SetLogLevel(name string) bool {
	lvl, err := log.ParseLevel(name)
	if err != nil {
		l.diag.Debug("rejected chat log level", slog.String("level", name))

		return false
	}

	l.logger.SetLevel(lvl)
	l.logger.FlushOn(lvl)

	return true
}

// ColorByLevel returns the color of lvl, or [pattern.FallbackColor] when lvl
// has none.
func (l *Log) ColorByLevel(lvl log.Level) string {
	return l.colors.ColorByLevel(lvl)
}

// SetColorByLevel sets the color of lvl. The color must be 1, 3 or 7
// characters long and lvl must be a level that carries records. The new
// color is used from the next line on. When recycle is true the formatter is
// also rebuilt from the active pattern.
func (l *Log) SetColorByLevel(lvl log.Level, color string, recycle bool) bool {
	if !l.colors.Set(lvl, color) {
		l.diag.Debug("rejected chat color",
			slog.String("level", lvl.String()),
			slog.String("color", color),
		)

		return false
	}

	if recycle {
		l.rebuild()
	}

	return true
}

// SetColorsByLevel applies every entry of colors and then rebuilds the
// formatter once. It returns true only if every entry was accepted; accepted
// entries stay applied even when others are rejected. An empty map changes
// nothing and returns false.
func (l *Log) SetColorsByLevel(colors map[log.Level]string) bool {
	if len(colors) == 0 {
		return false
	}

	ok := true

	for lvl, color := range colors {
		if !l.SetColorByLevel(lvl, color, false) {
			ok = false
		}
	}

	l.rebuild()

	return ok
}

// Trace emits a formatted message at [log.LevelTrace].
func (l *Log) Trace(format string, args ...any) {
	l.logger.logfSkip(log.LevelTrace, format, args)
}

// Debug emits a formatted message at [log.LevelDebug].
func (l *Log) Debug(format string, args ...any) {
	l.logger.logfSkip(log.LevelDebug, format, args)
}

// Info emits a formatted message at [log.LevelInfo].
func (l *Log) Info(format string, args ...any) {
	l.logger.logfSkip(log.LevelInfo, format, args)
}

// Warn emits a formatted message at [log.LevelWarn].
func (l *Log) Warn(format string, args ...any) {
	l.logger.logfSkip(log.LevelWarn, format, args)
}

// Error emits a formatted message at [log.LevelError].
func (l *Log) Error(format string, args ...any) {
	l.logger.logfSkip(log.LevelError, format, args)
}

// Critical emits a formatted message at [log.LevelCritical].
func (l *Log) Critical(format string, args ...any) {
	l.logger.logfSkip(log.LevelCritical, format, args)
}

func (l *Log) compile(p string) (*pattern.Formatter, error) {
	return pattern.Compile(p,
		pattern.WithColors(l.colors),
		pattern.WithLocator(macroLocator{macros: l.macros}),
	)
}

// rebuild recompiles the active pattern and installs the result on the
// sink.
func (l *Log) rebuild() {
	f, err := l.compile(l.pattern)
	if err != nil {
		// The active pattern compiled when it was set.
		l.diag.Error("rebuilding chat formatter", slog.Any("error", err))

		return
	}

	l.sink.SetFormatter(f)
	l.diag.Debug("rebuilt chat formatter", slog.String("pattern", l.pattern))
}
