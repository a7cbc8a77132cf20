package render

import (
	"strings"

	"go.jacobcolvin.com/chatlog/pattern"
)

// Code is a chat color code.
type Code struct {
	// Hex is "#RRGGBB" for a hex color, empty otherwise.
	Hex string
	// Letter is the letter of a named color, zero otherwise.
	Letter byte
	// Dark selects the dark variant of a named color ("-" prefix).
	Dark bool
}

// IsZero reports whether c is the default color.
func (c Code) IsZero() bool {
	return c.Hex == "" && c.Letter == 0
}

// Segment is a run of text drawn in one color.
type Segment struct {
	Text string
	Code Code
}

// Parse splits a chat line into colored segments.
//
// Recognized codes follow the escape character: "#RRGGBB", a color letter,
// '-' plus a color letter, three hex digits as shorthand for "#RRGGBB", and
// 'x' to reset. A color letter wins over shorthand hex, so "\abad" is 'b'
// followed by "ad". An escape followed by anything else is dropped and the
// text after it is kept.
func Parse(s string) []Segment {
	var (
		segs []Segment
		cur  Code
		text strings.Builder
	)

	emit := func() {
		if text.Len() > 0 {
			segs = append(segs, Segment{Text: text.String(), Code: cur})
			text.Reset()
		}
	}

	for i := 0; i < len(s); {
		if !strings.HasPrefix(s[i:], pattern.ColorEscape) {
			text.WriteByte(s[i])
			i++

			continue
		}

		i += len(pattern.ColorEscape)

		code, n, ok := parseCode(s[i:])
		if !ok {
			continue
		}

		emit()

		cur = code
		i += n
	}

	emit()

	return segs
}

// parseCode reads the code at the start of s.
func parseCode(s string) (Code, int, bool) {
	if s == "" {
		return Code{}, 0, false
	}

	switch {
	case s[0] == 'x':
		return Code{}, 1, true

	case s[0] == '#' && len(s) >= 7 && isHex(s[1:7]):
		return Code{Hex: s[:7]}, 7, true

	case s[0] == '-' && len(s) >= 2 && isLetter(s[1]):
		return Code{Letter: s[1], Dark: true}, 2, true

	case isLetter(s[0]):
		return Code{Letter: s[0]}, 1, true

	case len(s) >= 3 && isHex(s[:3]):
		return Code{Hex: expandHex(s[:3])}, 3, true
	}

	return Code{}, 0, false
}

// expandHex turns "rgb" into "#rrggbb".
func expandHex(s string) string {
	return string([]byte{'#', s[0], s[0], s[1], s[1], s[2], s[2]})
}

func isHex(s string) bool {
	for i := range len(s) {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}

	return true
}

func isLetter(c byte) bool {
	_, ok := letters[c]

	return ok
}

// Strip returns s without color codes.
func Strip(s string) string {
	var sb strings.Builder
	for _, seg := range Parse(s) {
		sb.WriteString(seg.Text)
	}

	return sb.String()
}
