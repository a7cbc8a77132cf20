package pattern

import (
	"path/filepath"
	"strconv"
	"time"
)

// builtinFlags lists the flag characters handled by appendFlag.
var builtinFlags = [256]bool{
	'v': true, 'n': true, 'l': true, 'L': true, 'P': true,
	'Y': true, 'y': true, 'm': true, 'd': true,
	'H': true, 'I': true, 'M': true, 'S': true,
	'e': true, 'f': true, 'F': true, 'p': true,
	'T': true, 'D': true, 'R': true, 'r': true,
	'a': true, 'A': true, 'b': true, 'B': true,
	'c': true, 'z': true, 'E': true,
	'o': true, 'i': true, 'u': true, 'O': true,
	's': true, 'g': true, '#': true, '!': true, '@': true,
}

func (f *Formatter) appendFlag(dst []byte, flag byte, rec *Record, elapsed time.Duration) []byte {
	t := rec.Time

	switch flag {
	case 'v':
		return append(dst, rec.Message...)
	case 'n':
		return append(dst, rec.Name...)
	case 'l':
		return append(dst, rec.Level.String()...)
	case 'L':
		return append(dst, rec.Level.Letter()...)
	case 'P':
		return strconv.AppendInt(dst, int64(f.pid), 10)

	case 'Y':
		return strconv.AppendInt(dst, int64(t.Year()), 10)
	case 'y':
		return appendPad2(dst, t.Year()%100)
	case 'm':
		return appendPad2(dst, int(t.Month()))
	case 'd':
		return appendPad2(dst, t.Day())
	case 'H':
		return appendPad2(dst, t.Hour())
	case 'I':
		return appendPad2(dst, hour12(t))
	case 'M':
		return appendPad2(dst, t.Minute())
	case 'S':
		return appendPad2(dst, t.Second())
	case 'e':
		return appendPadN(dst, t.Nanosecond()/int(time.Millisecond), 3)
	case 'f':
		return appendPadN(dst, t.Nanosecond()/int(time.Microsecond), 6)
	case 'F':
		return appendPadN(dst, t.Nanosecond(), 9)
	case 'p':
		return append(dst, ampm(t)...)
	case 'T':
		return t.AppendFormat(dst, "15:04:05")
	case 'D':
		return t.AppendFormat(dst, "01/02/06")
	case 'R':
		return t.AppendFormat(dst, "15:04")
	case 'r':
		return t.AppendFormat(dst, "03:04:05 PM")
	case 'a':
		return t.AppendFormat(dst, "Mon")
	case 'A':
		return t.AppendFormat(dst, "Monday")
	case 'b':
		return t.AppendFormat(dst, "Jan")
	case 'B':
		return t.AppendFormat(dst, "January")
	case 'c':
		return t.AppendFormat(dst, "Mon Jan 2 15:04:05 2006")
	case 'z':
		return t.AppendFormat(dst, "-07:00")
	case 'E':
		return strconv.AppendInt(dst, t.Unix(), 10)

	case 'o':
		return strconv.AppendInt(dst, elapsed.Milliseconds(), 10)
	case 'i':
		return strconv.AppendInt(dst, elapsed.Microseconds(), 10)
	case 'u':
		return strconv.AppendInt(dst, elapsed.Nanoseconds(), 10)
	case 'O':
		return strconv.AppendInt(dst, int64(elapsed/time.Second), 10)

	case 's':
		if rec.Caller.File == "" {
			return dst
		}

		return append(dst, filepath.Base(rec.Caller.File)...)
	case 'g':
		return append(dst, rec.Caller.File...)
	case '#':
		if rec.Caller.Line <= 0 {
			return dst
		}

		return strconv.AppendInt(dst, int64(rec.Caller.Line), 10)
	case '!':
		return append(dst, rec.Caller.Function...)
	case '@':
		if rec.Caller.File == "" {
			return dst
		}

		dst = append(dst, filepath.Base(rec.Caller.File)...)
		dst = append(dst, ':')

		return strconv.AppendInt(dst, int64(rec.Caller.Line), 10)
	}

	return dst
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}

	return h
}

func ampm(t time.Time) string {
	if t.Hour() >= 12 {
		return "PM"
	}

	return "AM"
}

func appendPad2(dst []byte, v int) []byte {
	return appendPadN(dst, v, 2)
}

// appendPadN appends v zero-padded to n digits.
func appendPadN(dst []byte, v, n int) []byte {
	var buf [20]byte

	b := strconv.AppendInt(buf[:0], int64(v), 10)
	for i := len(b); i < n; i++ {
		dst = append(dst, '0')
	}

	return append(dst, b...)
}
