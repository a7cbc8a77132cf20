// Package chattest provides test doubles for the chat host.
package chattest

import (
	"fmt"
	"strings"

	"go.jacobcolvin.com/chatlog/chatlog"
)

// Recorder is a [chatlog.Chat] that keeps every line it is given.
type Recorder struct {
	lines []string
}

// WriteChatf records one formatted line.
func (r *Recorder) WriteChatf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

// Lines returns the recorded lines.
func (r *Recorder) Lines() []string {
	return append([]string(nil), r.lines...)
}

// Last returns the most recent line, or "" when nothing was recorded.
func (r *Recorder) Last() string {
	if len(r.lines) == 0 {
		return ""
	}

	return r.lines[len(r.lines)-1]
}

// String returns the recorded lines joined with LF.
func (r *Recorder) String() string {
	return JoinLF(r.lines...)
}

// Reset drops the recorded lines.
func (r *Recorder) Reset() {
	r.lines = nil
}

// Macro is a [chatlog.MacroContext] whose current line is set by the test.
// The zero value reports that no macro is running.
type Macro struct {
	line    chatlog.MacroLine
	running bool
}

// Run marks a macro as running at file:line.
func (m *Macro) Run(file string, line int) {
	m.line = chatlog.MacroLine{SourceFile: file, LineNumber: line}
	m.running = true
}

// End marks the macro as finished.
func (m *Macro) End() {
	m.running = false
}

// CurrentMacroLine reports the line set by [Macro.Run].
func (m *Macro) CurrentMacroLine() (chatlog.MacroLine, bool) {
	return m.line, m.running
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected chat output line by line.
//
// Example:
//
//	want := chattest.JoinLF(
//		"[12:00:00] I [test] :: one",
//		"[12:00:00] W [test] :: two",
//	)
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}
