package chatlog

import (
	"go.jacobcolvin.com/chatlog/log"
	"go.jacobcolvin.com/chatlog/pattern"
)

// Sink receives records from a [Logger].
type Sink interface {
	// Log writes rec.
	Log(rec pattern.Record)
	// Flush pushes buffered output to its destination.
	Flush()
	// SetFormatter replaces the formatter used by Log.
	SetFormatter(f *pattern.Formatter)
	// Level returns the minimum level written by Log.
	Level() log.Level
	// SetLevel sets the minimum level written by Log.
	SetLevel(lvl log.Level)
}

// ChatSink is a [Sink] that prints each formatted record as one chat line.
//
// Output is written immediately, so [ChatSink.Flush] does nothing. A
// ChatSink does no locking of its own; callers serialize access.
//
// Create instances with [NewChatSink].
type ChatSink struct {
	chat      Chat
	formatter *pattern.Formatter
	buf       []byte
	level     log.Level
}

// NewChatSink creates a [ChatSink] writing to chat. It accepts every level
// and drops records until a formatter is set.
func NewChatSink(chat Chat) *ChatSink {
	return &ChatSink{
		chat:  chat,
		level: log.LevelTrace,
	}
}

// Log formats rec and prints it to the chat.
func (s *ChatSink) Log(rec pattern.Record) {
	if s.formatter == nil {
		return
	}

	s.buf = s.formatter.AppendFormat(s.buf[:0], rec)
	s.chat.WriteChatf("%s", string(s.buf))
}

// Flush does nothing; chat output is synchronous.
func (s *ChatSink) Flush() {}

// SetFormatter replaces the formatter.
func (s *ChatSink) SetFormatter(f *pattern.Formatter) {
	s.formatter = f
}

// Formatter returns the current formatter, or nil.
func (s *ChatSink) Formatter() *pattern.Formatter {
	return s.formatter
}

// Level returns the minimum level of s.
func (s *ChatSink) Level() log.Level {
	return s.level
}

// SetLevel sets the minimum level of s.
func (s *ChatSink) SetLevel(lvl log.Level) {
	s.level = lvl
}
