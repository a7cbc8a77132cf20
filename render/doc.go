// Package render shows chat output in a terminal.
//
// Chat lines carry color codes introduced by a BEL character: "#RRGGBB" hex
// colors, single letters for named colors (y, o, g, u, b, r, t, m, p, w,
// with a '-' prefix for the dark variant) and 'x' to reset. [ANSI] converts
// them to terminal escapes, using [charm.land/lipgloss/v2] for hex colors
// and [github.com/logrusorgru/aurora] for named ones. [Strip] removes them.
//
// [Chat] is a drop-in chat window for running a plugin's logging outside
// the host:
//
//	l, err := chatlog.New(render.New(os.Stdout))
package render
