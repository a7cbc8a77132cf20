package chatlog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"

	"github.com/go-logfmt/logfmt"

	"go.jacobcolvin.com/chatlog/log"
	"go.jacobcolvin.com/chatlog/pattern"
)

// Handler is a [slog.Handler] that writes records to a [Logger].
//
// slog levels are mapped with [log.FromSlog]. Attributes follow the message
// as logfmt key=value pairs, with group names joined to keys by '.'. The
// record's program counter fills the caller used by %s, %g, %#, %! and %@.
//
// Create instances with [NewHandler].
type Handler struct {
	logger *Logger
	prefix string
	attrs  []keyval
}

type keyval struct {
	value slog.Value
	key   string
}

// NewHandler creates a [Handler] writing to l.
func NewHandler(l *Logger) *Handler {
	return &Handler{logger: l}
}

// Enabled reports whether the logger emits records at lvl.
func (h *Handler) Enabled(_ context.Context, lvl slog.Level) bool {
	return h.logger.Enabled(log.FromSlog(lvl))
}

// Handle writes r to the logger.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	kvs := slices.Clone(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		kvs = appendAttr(kvs, h.prefix, a)

		return true
	})

	msg := r.Message

	if len(kvs) > 0 {
		var buf bytes.Buffer

		enc := logfmt.NewEncoder(&buf)
		for _, kv := range kvs {
			v := kv.value.Any()

			err := enc.EncodeKeyval(kv.key, v)
			if errors.Is(err, logfmt.ErrUnsupportedValueType) {
				err = enc.EncodeKeyval(kv.key, fmt.Sprintf("%+v", v))
			}

			if err != nil {
				return fmt.Errorf("encode attribute %q: %w", kv.key, err)
			}
		}

		msg += " " + buf.String()
	}

	h.logger.LogRecord(pattern.Record{
		Time:    r.Time,
		Level:   log.FromSlog(r.Level),
		Name:    h.logger.Name(),
		Message: msg,
		Caller:  callerAt(r.PC),
	})

	return nil
}

// WithAttrs returns a Handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	h2 := *h

	h2.attrs = slices.Clip(h.attrs)
	for _, a := range attrs {
		h2.attrs = appendAttr(h2.attrs, h.prefix, a)
	}

	return &h2
}

// WithGroup returns a Handler that qualifies later attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	h2 := *h
	h2.prefix = h.prefix + name + "."

	return &h2
}

func appendAttr(kvs []keyval, prefix string, a slog.Attr) []keyval {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return kvs
	}

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return kvs
		}

		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}

		for _, ga := range group {
			kvs = appendAttr(kvs, p, ga)
		}

		return kvs
	}

	return append(kvs, keyval{key: sanitizeKey(prefix + a.Key), value: a.Value})
}

// sanitizeKey replaces the characters logfmt does not allow in keys.
func sanitizeKey(key string) string {
	if key == "" {
		return "_"
	}

	return strings.Map(func(r rune) rune {
		if r <= ' ' || r == '=' || r == '"' || r == 0x7f {
			return '_'
		}

		return r
	}, key)
}

func callerAt(pc uintptr) pattern.Caller {
	if pc == 0 {
		return pattern.Caller{}
	}

	frames := runtime.CallersFrames([]uintptr{pc})
	f, _ := frames.Next()

	return pattern.Caller{File: f.File, Line: f.Line, Function: f.Function}
}
