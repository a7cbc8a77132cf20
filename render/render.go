package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/logrusorgru/aurora"
	"golang.org/x/term"
)

type paint func(arg any) aurora.Value

func index(n uint8) paint {
	return func(arg any) aurora.Value {
		return aurora.Index(n, arg)
	}
}

// letters maps each color letter to its bright and dark paint.
var letters = map[byte][2]paint{
	'y': {aurora.BrightYellow, aurora.Yellow},
	'o': {index(208), index(130)},
	'g': {aurora.BrightGreen, aurora.Green},
	'u': {aurora.BrightBlue, aurora.Blue},
	'b': {aurora.BrightBlack, aurora.Black},
	'r': {aurora.BrightRed, aurora.Red},
	't': {aurora.BrightCyan, aurora.Cyan},
	'm': {aurora.BrightMagenta, aurora.Magenta},
	'p': {index(171), index(91)},
	'w': {aurora.BrightWhite, aurora.White},
}

// ANSI returns s with chat color codes replaced by ANSI escape sequences.
func ANSI(s string) string {
	var sb strings.Builder
	for _, seg := range Parse(s) {
		sb.WriteString(colorize(seg))
	}

	return sb.String()
}

func colorize(seg Segment) string {
	switch {
	case seg.Code.Hex != "":
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(seg.Code.Hex)).
			TabWidth(lipgloss.NoTabConversion).
			Render(seg.Text)

	case seg.Code.Letter != 0:
		p := letters[seg.Code.Letter]
		if seg.Code.Dark {
			return p[1](seg.Text).String()
		}

		return p[0](seg.Text).String()
	}

	return seg.Text
}

// Chat prints chat lines to a terminal, one per call. It satisfies the
// chat interface of [go.jacobcolvin.com/chatlog/chatlog].
//
// Create instances with [New].
type Chat struct {
	w     io.Writer
	mu    sync.Mutex
	color bool
}

// Option configures a [Chat].
type Option func(*Chat)

// WithColor forces color output on or off.
func WithColor(enabled bool) Option {
	return func(c *Chat) {
		c.color = enabled
	}
}

// New creates a [Chat] writing to w. Color is on when w is a terminal.
func New(w io.Writer, opts ...Option) *Chat {
	c := &Chat{
		w:     w,
		color: IsTerminal(w),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WriteChatf formats a chat line and prints it followed by a newline.
func (c *Chat) WriteChatf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if c.color {
		line = ANSI(line)
	} else {
		line = Strip(line)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	//nolint:errcheck // Chat output has no error path.
	io.WriteString(c.w, line+"\n")
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
}
