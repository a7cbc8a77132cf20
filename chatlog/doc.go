// Package chatlog writes log output into the chat window of a plugin host.
//
// A [Log] owns a [Logger], a single [ChatSink] that prints every formatted
// record through the host's [Chat], a per-instance [ColorTable], and the
// active line pattern (see package [go.jacobcolvin.com/chatlog/pattern]).
// Records are colored per level with chat color codes, and can carry the
// file and line of the macro the host is running through a [MacroContext].
//
//	l, err := chatlog.New(host,
//	    chatlog.WithName("myplugin"),
//	    chatlog.WithMacroContext(host),
//	)
//	if err != nil {
//	    return err
//	}
//	defer l.Close()
//
//	l.SetLogLevel("debug")
//	l.SetColorByLevel(log.LevelWarn, "y", true)
//	l.Warn("low on %s", "mana")
//
// [New] registers the logger as the process-wide default; [Log.Close]
// releases it again. Go code using [log/slog] can log into the chat through
// [Log.Handler]:
//
//	slog.SetDefault(slog.New(l.Handler()))
//
// A [Publisher] is a [Chat] that fans lines out to subscribers, which is
// useful to mirror chat output into a terminal or a file.
//
// Nothing in a [Log] is synchronized. Configure and log from one goroutine.
package chatlog
