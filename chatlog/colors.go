package chatlog

import (
	"maps"

	"go.jacobcolvin.com/chatlog/log"
	"go.jacobcolvin.com/chatlog/pattern"
)

// DefaultColors returns the color of each level used by a new [ColorTable].
func DefaultColors() map[log.Level]string {
	return map[log.Level]string{
		log.LevelTrace:    "#FF00FF",
		log.LevelDebug:    "#FF8C00",
		log.LevelInfo:     "#FFFFFF",
		log.LevelWarn:     "#FFD700",
		log.LevelError:    "#F22613",
		log.LevelCritical: "#F22613",
	}
}

// ValidColor reports whether color has an accepted length: a single letter
// code, a 3 character code, or a 7 character "#RRGGBB" value. The characters
// themselves are not checked.
func ValidColor(color string) bool {
	switch len(color) {
	case 1, 3, 7:
		return true
	}

	return false
}

// ColorTable maps every level that can carry a record to a chat color.
// Entries are replaced, never removed.
//
// Create instances with [NewColorTable].
type ColorTable struct {
	colors map[log.Level]string
}

// NewColorTable creates a [ColorTable] holding [DefaultColors].
func NewColorTable() *ColorTable {
	return &ColorTable{colors: DefaultColors()}
}

// ColorByLevel returns the color of lvl, or [pattern.FallbackColor] when lvl
// has no entry.
func (t *ColorTable) ColorByLevel(lvl log.Level) string {
	if c, ok := t.colors[lvl]; ok {
		return c
	}

	return pattern.FallbackColor
}

// Set replaces the color of lvl. It reports false, leaving the table
// unchanged, when lvl has no entry or color fails [ValidColor].
func (t *ColorTable) Set(lvl log.Level, color string) bool {
	if _, ok := t.colors[lvl]; !ok {
		return false
	}

	if !ValidColor(color) {
		return false
	}

	t.colors[lvl] = color

	return true
}

// Colors returns a copy of the table.
func (t *ColorTable) Colors() map[log.Level]string {
	return maps.Clone(t.colors)
}
