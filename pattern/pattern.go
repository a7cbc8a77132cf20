package pattern

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"go.jacobcolvin.com/chatlog/log"
)

// maxWidth bounds the padding width of a single flag.
const maxWidth = 64

// ErrInvalidPattern indicates a pattern string could not be compiled.
var ErrInvalidPattern = errors.New("invalid pattern")

// Caller identifies the Go source location that produced a record.
type Caller struct {
	File     string
	Function string
	Line     int
}

// Record is a single log event handed to a [Formatter].
type Record struct {
	Time    time.Time
	Name    string
	Message string
	Caller  Caller
	Level   log.Level
}

type align uint8

const (
	alignRight align = iota
	alignLeft
	alignCenter
)

type padding struct {
	width    int
	align    align
	truncate bool
}

func (p padding) enabled() bool {
	return p.width > 0
}

type itemKind uint8

const (
	itemLiteral itemKind = iota
	itemFlag
	itemDirective
)

type item struct {
	text      string
	pad       padding
	kind      itemKind
	flag      byte
	directive Directive
}

// Formatter turns a [Record] into one line of text according to a compiled
// pattern.
//
// Colors are looked up in the [ColorSource] each time a record is formatted,
// so changes to the source show on the next line. A Formatter keeps the time
// of the previous record for the elapsed-time flags and is not safe for
// concurrent use.
//
// Create instances with [Compile].
type Formatter struct {
	last    time.Time
	locator Locator
	colors  ColorSource
	pattern string
	items   []item
	pid     int
}

// Option configures a [Formatter].
type Option func(*Formatter)

// WithColors sets the source of the colors emitted by [ColorStart]. The
// source is kept by reference. Without one, [FallbackColor] is emitted.
func WithColors(src ColorSource) Option {
	return func(f *Formatter) {
		f.colors = src
	}
}

// WithLocator sets the source of the locations emitted by [SourceFile],
// [SourceLine] and [SourceFull].
func WithLocator(loc Locator) Option {
	return func(f *Formatter) {
		f.locator = loc
	}
}

// Compile parses pattern and returns a [Formatter] for it.
//
// A flag is written as '%' followed by an optional alignment ('-' for left,
// '=' for center, right otherwise), an optional width of at most 64, an
// optional '!' to truncate to that width, and the flag character. Unknown
// flag characters are copied to the output unchanged, including the '%'.
// A pattern ending in '%' or in a width without a flag is rejected with
// [ErrInvalidPattern].
func Compile(pattern string, opts ...Option) (*Formatter, error) {
	f := &Formatter{
		pattern: pattern,
		pid:     os.Getpid(),
		last:    time.Now(),
	}

	for _, opt := range opts {
		opt(f)
	}

	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			f.items = append(f.items, item{kind: itemLiteral, text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); {
		c := pattern[i]
		if c != '%' {
			lit.WriteByte(c)
			i++

			continue
		}

		start := i
		i++

		if i >= len(pattern) {
			return nil, fmt.Errorf("%w: dangling %% at offset %d", ErrInvalidPattern, start)
		}

		pad, n := parsePadding(pattern[i:])
		i += n

		if i >= len(pattern) {
			return nil, fmt.Errorf("%w: missing flag after %q at offset %d",
				ErrInvalidPattern, pattern[start:], start)
		}

		flag := pattern[i]
		i++

		switch {
		case flag == '%':
			lit.WriteByte('%')

		case directiveFlags[flag] != 0:
			flush()

			f.items = append(f.items, item{kind: itemDirective, directive: directiveFlags[flag], pad: pad})

		case builtinFlags[flag]:
			flush()

			f.items = append(f.items, item{kind: itemFlag, flag: flag, pad: pad})

		default:
			lit.WriteByte('%')
			lit.WriteByte(flag)
		}
	}

	flush()

	return f, nil
}

// parsePadding reads an alignment prefix at the start of s and returns it with
// the number of bytes consumed. An alignment character without digits is
// consumed and yields no padding.
func parsePadding(s string) (padding, int) {
	var (
		p padding
		i int
	)

	switch s[0] {
	case '-':
		p.align = alignLeft
		i++
	case '=':
		p.align = alignCenter
		i++
	}

	if i >= len(s) || !isDigit(s[i]) {
		return padding{}, i
	}

	for i < len(s) && isDigit(s[i]) {
		p.width = p.width*10 + int(s[i]-'0')
		if p.width > maxWidth {
			p.width = maxWidth
		}

		i++
	}

	if i < len(s) && s[i] == '!' {
		p.truncate = true
		i++
	}

	return p, i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Pattern returns the pattern f was compiled from.
func (f *Formatter) Pattern() string {
	return f.pattern
}

// Format returns rec rendered as a single line.
func (f *Formatter) Format(rec Record) string {
	return string(f.AppendFormat(nil, rec))
}

// AppendFormat appends rec rendered by f to dst and returns the extended
// buffer.
func (f *Formatter) AppendFormat(dst []byte, rec Record) []byte {
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}

	elapsed := max(rec.Time.Sub(f.last), 0)
	f.last = rec.Time

	var scratch []byte

	for _, it := range f.items {
		switch it.kind {
		case itemLiteral:
			dst = append(dst, it.text...)

			continue

		case itemFlag:
			scratch = f.appendFlag(scratch[:0], it.flag, &rec, elapsed)

		case itemDirective:
			scratch = f.appendDirective(scratch[:0], it.directive, &rec)
		}

		dst = appendPadded(dst, scratch, it.pad)
	}

	return dst
}

func appendPadded(dst, s []byte, p padding) []byte {
	if !p.enabled() {
		return append(dst, s...)
	}

	n := utf8.RuneCount(s)
	if n >= p.width {
		if !p.truncate || n == p.width {
			return append(dst, s...)
		}

		cut := 0
		for range p.width {
			_, size := utf8.DecodeRune(s[cut:])
			cut += size
		}

		return append(dst, s[:cut]...)
	}

	fill := p.width - n

	switch p.align {
	case alignLeft:
		dst = append(dst, s...)
		dst = appendSpaces(dst, fill)

	case alignCenter:
		dst = appendSpaces(dst, fill/2)
		dst = append(dst, s...)
		dst = appendSpaces(dst, fill-fill/2)

	default:
		dst = appendSpaces(dst, fill)
		dst = append(dst, s...)
	}

	return dst
}

func appendSpaces(dst []byte, n int) []byte {
	for range n {
		dst = append(dst, ' ')
	}

	return dst
}
