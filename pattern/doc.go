// Package pattern implements the line pattern language of the chat log.
//
// A pattern is literal text interleaved with flags introduced by '%'. The
// usual flags cover the message (%v), logger name (%n), level (%l, %L), date
// and time (%Y, %m, %d, %T, ...), elapsed time since the previous record
// (%o, %i, %u, %O) and the Go caller (%s, %g, %#, %!, %@). Five chat
// directives extend the set:
//
//	%^  start the record level's color
//	%$  reset the color
//	%j  source file of the running macro
//	%k  line of the running macro
//	%q  "(file :: Line n)" of the running macro
//
// Compile a pattern once and reuse the [Formatter]:
//
//	f, err := pattern.Compile("%^[%T] %L [%n] :: %v%$",
//	    pattern.WithColors(colors),
//	    pattern.WithLocator(macros),
//	)
//	line := f.Format(pattern.Record{Time: time.Now(), Level: log.LevelInfo, Message: "hi"})
//
// The macro directives write nothing while no macro is running.
package pattern
