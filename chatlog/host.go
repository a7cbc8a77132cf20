package chatlog

import "go.jacobcolvin.com/chatlog/pattern"

// Chat is the host's chat output. WriteChatf prints one line to the chat
// window.
type Chat interface {
	WriteChatf(format string, args ...any)
}

// ChatFunc adapts a printf-style function to a [Chat].
type ChatFunc func(format string, args ...any)

// WriteChatf calls fn.
func (fn ChatFunc) WriteChatf(format string, args ...any) {
	fn(format, args...)
}

// MacroLine is the line of a macro the host is currently executing.
type MacroLine struct {
	SourceFile string
	LineNumber int
}

// MacroContext queries the host for the macro line being executed. It
// reports false while no macro is running.
type MacroContext interface {
	CurrentMacroLine() (MacroLine, bool)
}

// MacroContextFunc adapts a function to a [MacroContext].
type MacroContextFunc func() (MacroLine, bool)

// CurrentMacroLine calls fn.
func (fn MacroContextFunc) CurrentMacroLine() (MacroLine, bool) {
	return fn()
}

// macroLocator exposes a [MacroContext] to the formatter.
type macroLocator struct {
	macros MacroContext
}

func (m macroLocator) Locate() (pattern.Location, bool) {
	if m.macros == nil {
		return pattern.Location{}, false
	}

	ml, ok := m.macros.CurrentMacroLine()
	if !ok {
		return pattern.Location{}, false
	}

	return pattern.Location{File: ml.SourceFile, Line: ml.LineNumber}, true
}
