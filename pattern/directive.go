package pattern

import (
	"strconv"

	"go.jacobcolvin.com/chatlog/log"
)

const (
	// ColorEscape starts a chat color code. The color string follows it.
	ColorEscape = "\a"
	// ColorResetSequence restores the default chat color.
	ColorResetSequence = ColorEscape + "x"
	// FallbackColor is emitted by [ColorStart] for a level without a color.
	FallbackColor = "#000000"
)

// Directive is one of the chat-specific pattern flags.
type Directive uint8

const (
	// ColorStart ('^') emits [ColorEscape] followed by the record level's
	// color.
	ColorStart Directive = iota + 1
	// ColorReset ('$') emits [ColorResetSequence].
	ColorReset
	// SourceFile ('j') emits the source file of the running macro.
	SourceFile
	// SourceLine ('k') emits the line number of the running macro.
	SourceLine
	// SourceFull ('q') emits "(file :: Line n)" for the running macro.
	SourceFull
)

var directiveFlags = [256]Directive{
	'^': ColorStart,
	'$': ColorReset,
	'j': SourceFile,
	'k': SourceLine,
	'q': SourceFull,
}

// Flag returns the pattern character that selects d.
func (d Directive) Flag() byte {
	for c, v := range directiveFlags {
		if v == d {
			return byte(c)
		}
	}

	return 0
}

// String returns the name of d.
func (d Directive) String() string {
	switch d {
	case ColorStart:
		return "color-start"
	case ColorReset:
		return "color-reset"
	case SourceFile:
		return "source-file"
	case SourceLine:
		return "source-line"
	case SourceFull:
		return "source-full"
	}

	return "directive(" + strconv.Itoa(int(d)) + ")"
}

// ColorSource supplies the chat color of each level.
type ColorSource interface {
	ColorByLevel(lvl log.Level) string
}

// Location is a position inside a running macro.
type Location struct {
	File string
	Line int
}

// Locator reports the location of the currently running macro, if any.
type Locator interface {
	Locate() (Location, bool)
}

// LocatorFunc adapts a function to a [Locator].
type LocatorFunc func() (Location, bool)

// Locate calls fn.
func (fn LocatorFunc) Locate() (Location, bool) {
	return fn()
}

func (f *Formatter) appendDirective(dst []byte, d Directive, rec *Record) []byte {
	switch d {
	case ColorStart:
		color := FallbackColor
		if f.colors != nil {
			color = f.colors.ColorByLevel(rec.Level)
		}

		dst = append(dst, ColorEscape...)

		return append(dst, color...)

	case ColorReset:
		return append(dst, ColorResetSequence...)
	}

	if f.locator == nil {
		return dst
	}

	loc, ok := f.locator.Locate()
	if !ok {
		return dst
	}

	switch d {
	case SourceFile:
		return append(dst, loc.File...)

	case SourceLine:
		return strconv.AppendInt(dst, int64(loc.Line), 10)

	case SourceFull:
		dst = append(dst, '(')
		dst = append(dst, loc.File...)
		dst = append(dst, " :: Line "...)
		dst = strconv.AppendInt(dst, int64(loc.Line), 10)

		return append(dst, ')')
	}

	return dst
}
