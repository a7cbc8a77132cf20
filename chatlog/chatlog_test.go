package chatlog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/chatlog/chatlog"
	"go.jacobcolvin.com/chatlog/chattest"
	"go.jacobcolvin.com/chatlog/log"
	"go.jacobcolvin.com/chatlog/pattern"
)

func newLog(t *testing.T, rec *chattest.Recorder, opts ...chatlog.Option) *chatlog.Log {
	t.Helper()

	l, err := chatlog.New(rec, opts...)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, l.Close()) })

	return l
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	var rec chattest.Recorder

	l := newLog(t, &rec)

	assert.Equal(t, "info", l.LogLevel())
	assert.Equal(t, log.DefaultPattern, l.Pattern())
	assert.Equal(t, log.DefaultName, l.Logger().Name())
	assert.Equal(t, log.LevelInfo, l.Logger().FlushLevel())

	for lvl, color := range chatlog.DefaultColors() {
		assert.Equal(t, color, l.ColorByLevel(lvl), lvl.String())
	}

	assert.Equal(t, pattern.FallbackColor, l.ColorByLevel(log.LevelOff))
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	_, err := chatlog.New(nil)
	require.ErrorIs(t, err, chatlog.ErrNilChat)

	_, err = chatlog.New(&chattest.Recorder{}, chatlog.WithPattern("%-"))
	require.ErrorIs(t, err, pattern.ErrInvalidPattern)
}

func TestErrorLine(t *testing.T) {
	t.Parallel()

	var rec chattest.Recorder

	l := newLog(t, &rec)
	l.Error("the %s is on fire", "inn")

	line := rec.Last()
	assert.True(t, strings.HasPrefix(line, "\a#F22613["), line)
	assert.True(t, strings.HasSuffix(line, " E [chatlog] :: the inn is on fire\ax"), line)
}

func TestLevelMethods(t *testing.T) {
	t.Parallel()

	var rec chattest.Recorder

	l := newLog(t, &rec, chatlog.WithPattern("%l %v"))
	require.True(t, l.SetLogLevel("trace"))

	l.Trace("a")
	l.Debug("b")
	l.Info("c")
	l.Warn("d")
	l.Error("e")
	l.Critical("f")

	want := []string{
		"trace a",
		"debug b",
		"info c",
		"warn d",
		"error e",
		"critical f",
	}
	assert.Equal(t, want, rec.Lines())
}

func TestSetLogLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
		ok    bool
	}{
		"lower case":     {input: "debug", want: "debug", ok: true},
		"upper case":     {input: "TRACE", want: "trace", ok: true},
		"warning alias":  {input: "WARNING", want: "warn", ok: true},
		"warn":           {input: "warn", want: "warn", ok: true},
		"err alias":      {input: "Err", want: "error", ok: true},
		"fatal alias":    {input: "fatal", want: "critical", ok: true},
		"critical":       {input: "critical", want: "critical", ok: true},
		"off is refused": {input: "off", want: "info"},
		"unknown":        {input: "verbose", want: "info"},
		"empty":          {input: "", want: "info"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := newLog(t, &chattest.Recorder{})

			assert.Equal(t, tc.ok, l.SetLogLevel(tc.input))
			assert.Equal(t, tc.want, l.LogLevel())
		})
	}
}

func TestSetLogLevelFilters(t *testing.T) {
	t.Parallel()

	var rec chattest.Recorder

	l := newLog(t, &rec, chatlog.WithPattern("%v"))
	require.True(t, l.SetLogLevel("error"))

	l.Info("hidden")
	l.Warn("hidden")
	l.Error("shown")

	assert.Equal(t, []string{"shown"}, rec.Lines())
	assert.Equal(t, log.LevelError, l.Logger().FlushLevel())
}

func TestSetColorByLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level log.Level
		color string
		want  string
		ok    bool
	}{
		"hex":           {level: log.LevelWarn, color: "#00FF00", want: "#00FF00", ok: true},
		"letter":        {level: log.LevelWarn, color: "y", want: "y", ok: true},
		"three chars":   {level: log.LevelWarn, color: "-y1", want: "-y1", ok: true},
		"two chars":     {level: log.LevelWarn, color: "ff", want: "#FFD700"},
		"empty":         {level: log.LevelWarn, color: "", want: "#FFD700"},
		"too long":      {level: log.LevelWarn, color: "#FFD7000", want: "#FFD700"},
		"off level":     {level: log.LevelOff, color: "y", want: pattern.FallbackColor},
		"unknown level": {level: log.Level(42), color: "y", want: pattern.FallbackColor},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := newLog(t, &chattest.Recorder{})

			assert.Equal(t, tc.ok, l.SetColorByLevel(tc.level, tc.color, true))
			assert.Equal(t, tc.want, l.ColorByLevel(tc.level))
		})
	}
}

func TestColorRecycle(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		recycle bool
	}{
		"without rebuild": {recycle: false},
		"with rebuild":    {recycle: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var rec chattest.Recorder

			l := newLog(t, &rec, chatlog.WithPattern("%^%v%$"))

			l.Info("a")
			assert.Equal(t, "\a#FFFFFFa\ax", rec.Last())

			require.True(t, l.SetColorByLevel(log.LevelInfo, "g", tc.recycle))
			assert.Equal(t, "g", l.ColorByLevel(log.LevelInfo))

			l.Info("b")
			assert.Equal(t, "\agb\ax", rec.Last())

			l.Warn("c")
			assert.Equal(t, "\a#FFD700c\ax", rec.Last())
		})
	}
}

func TestSetColorsByLevel(t *testing.T) {
	t.Parallel()

	t.Run("all accepted", func(t *testing.T) {
		t.Parallel()

		var rec chattest.Recorder

		l := newLog(t, &rec, chatlog.WithPattern("%^%v"))

		ok := l.SetColorsByLevel(map[log.Level]string{
			log.LevelInfo: "#123456",
			log.LevelWarn: "o",
		})
		require.True(t, ok)

		l.Info("i")
		l.Warn("w")
		assert.Equal(t, []string{"\a#123456i", "\aow"}, rec.Lines())
	})

	t.Run("partial apply", func(t *testing.T) {
		t.Parallel()

		var rec chattest.Recorder

		l := newLog(t, &rec, chatlog.WithPattern("%^%v"))

		ok := l.SetColorsByLevel(map[log.Level]string{
			log.LevelInfo: "#123456",
			log.LevelWarn: "toolong!",
		})
		assert.False(t, ok)
		assert.Equal(t, "#123456", l.ColorByLevel(log.LevelInfo))
		assert.Equal(t, "#FFD700", l.ColorByLevel(log.LevelWarn))

		l.Info("i")
		assert.Equal(t, "\a#123456i", rec.Last())
	})

	t.Run("empty map", func(t *testing.T) {
		t.Parallel()

		l := newLog(t, &chattest.Recorder{})

		assert.False(t, l.SetColorsByLevel(nil))
		assert.False(t, l.SetColorsByLevel(map[log.Level]string{}))
		assert.Equal(t, chatlog.DefaultColors(), colorsOf(l))
	})
}

func colorsOf(l *chatlog.Log) map[log.Level]string {
	out := make(map[log.Level]string)
	for _, lvl := range log.Levels() {
		out[lvl] = l.ColorByLevel(lvl)
	}

	return out
}

func TestSetPattern(t *testing.T) {
	t.Parallel()

	var rec chattest.Recorder

	l := newLog(t, &rec, chatlog.WithPattern("[%n] %v"), chatlog.WithName("quest"))

	l.Info("one")

	err := l.SetPattern("%12")
	require.ErrorIs(t, err, pattern.ErrInvalidPattern)
	assert.Equal(t, "[%n] %v", l.Pattern())

	l.Info("two")

	require.NoError(t, l.SetPattern("%L|%v"))
	l.Info("three")

	assert.Equal(t, []string{"[quest] one", "[quest] two", "I|three"}, rec.Lines())
}

func TestMacroLocation(t *testing.T) {
	t.Parallel()

	t.Run("with macro context", func(t *testing.T) {
		t.Parallel()

		var (
			rec   chattest.Recorder
			macro chattest.Macro
		)

		l := newLog(t, &rec,
			chatlog.WithPattern("%q%v"),
			chatlog.WithMacroContext(&macro),
		)

		l.Info("idle")

		macro.Run("hunt.mac", 42)
		l.Info(" running")

		macro.End()
		l.Info("done")

		assert.Equal(t, []string{"idle", "(hunt.mac :: Line 42) running", "done"}, rec.Lines())
	})

	t.Run("without macro context", func(t *testing.T) {
		t.Parallel()

		var rec chattest.Recorder

		l := newLog(t, &rec, chatlog.WithPattern("%j|%k|%q|%v"))
		l.Info("x")

		assert.Equal(t, "|||x", rec.Last())
	})

	t.Run("macro context func", func(t *testing.T) {
		t.Parallel()

		var rec chattest.Recorder

		macros := chatlog.MacroContextFunc(func() (chatlog.MacroLine, bool) {
			return chatlog.MacroLine{SourceFile: "loot.mac", LineNumber: 3}, true
		})

		l := newLog(t, &rec, chatlog.WithPattern("%j:%k %v"), chatlog.WithMacroContext(macros))
		l.Warn("x")

		assert.Equal(t, "loot.mac:3 x", rec.Last())
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("applies config", func(t *testing.T) {
		t.Parallel()

		var rec chattest.Recorder

		cfg := log.NewConfig()
		cfg.Level = "debug"
		cfg.Name = "raid"
		cfg.Pattern = "%^%n %l %v"
		cfg.Colors = map[string]string{"warning": "y"}

		l, err := chatlog.NewFromConfig(&rec, cfg)
		require.NoError(t, err)

		t.Cleanup(func() { require.NoError(t, l.Close()) })

		assert.Equal(t, "debug", l.LogLevel())
		assert.Equal(t, log.LevelDebug, l.Logger().FlushLevel())
		assert.Equal(t, "y", l.ColorByLevel(log.LevelWarn))

		l.Trace("hidden")
		l.Warn("pull")

		assert.Equal(t, []string{"\ayraid warn pull"}, rec.Lines())
	})

	t.Run("empty values use defaults", func(t *testing.T) {
		t.Parallel()

		cfg := log.NewConfig()
		cfg.Name = ""
		cfg.Pattern = ""

		l, err := chatlog.NewFromConfig(&chattest.Recorder{}, cfg)
		require.NoError(t, err)

		t.Cleanup(func() { require.NoError(t, l.Close()) })

		assert.Equal(t, log.DefaultPattern, l.Pattern())
		assert.Equal(t, log.DefaultName, l.Logger().Name())
	})

	t.Run("options override config", func(t *testing.T) {
		t.Parallel()

		cfg := log.NewConfig()
		cfg.Pattern = "%v"

		l, err := chatlog.NewFromConfig(&chattest.Recorder{}, cfg, chatlog.WithPattern("%l"))
		require.NoError(t, err)

		t.Cleanup(func() { require.NoError(t, l.Close()) })

		assert.Equal(t, "%l", l.Pattern())
	})

	tcs := map[string]struct {
		cfg  func(*log.Config)
		want error
	}{
		"off level": {
			cfg:  func(c *log.Config) { c.Level = "off" },
			want: log.ErrInvalidArgument,
		},
		"unknown level": {
			cfg:  func(c *log.Config) { c.Level = "loud" },
			want: log.ErrUnknownLogLevel,
		},
		"unknown color key": {
			cfg:  func(c *log.Config) { c.Colors = map[string]string{"loud": "y"} },
			want: log.ErrInvalidArgument,
		},
		"bad color": {
			cfg:  func(c *log.Config) { c.Colors = map[string]string{"info": "ff"} },
			want: chatlog.ErrInvalidColor,
		},
		"bad pattern": {
			cfg:  func(c *log.Config) { c.Pattern = "%" },
			want: pattern.ErrInvalidPattern,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := log.NewConfig()
			tc.cfg(cfg)

			_, err := chatlog.NewFromConfig(&chattest.Recorder{}, cfg)
			require.ErrorIs(t, err, tc.want)
		})
	}
}
