package log_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/chatlog/log"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expected    log.Level
		expectError bool
	}{
		"trace":            {input: "trace", expected: log.LevelTrace},
		"debug":            {input: "debug", expected: log.LevelDebug},
		"info":             {input: "info", expected: log.LevelInfo},
		"warn":             {input: "warn", expected: log.LevelWarn},
		"warning alias":    {input: "warning", expected: log.LevelWarn},
		"err alias":        {input: "err", expected: log.LevelError},
		"error":            {input: "error", expected: log.LevelError},
		"critical":         {input: "critical", expected: log.LevelCritical},
		"fatal alias":      {input: "fatal", expected: log.LevelCritical},
		"case insensitive": {input: "WaRnInG", expected: log.LevelWarn},
		"off rejected":     {input: "off", expectError: true},
		"empty":            {input: "", expectError: true},
		"unknown":          {input: "verbose", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			lvl, err := log.ParseLevel(tc.input)
			if tc.expectError {
				require.ErrorIs(t, err, log.ErrUnknownLogLevel)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, lvl)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level      log.Level
		wantName   string
		wantLetter string
		wantValid  bool
	}{
		"trace":    {level: log.LevelTrace, wantName: "trace", wantLetter: "T", wantValid: true},
		"warn":     {level: log.LevelWarn, wantName: "warn", wantLetter: "W", wantValid: true},
		"error":    {level: log.LevelError, wantName: "error", wantLetter: "E", wantValid: true},
		"critical": {level: log.LevelCritical, wantName: "critical", wantLetter: "C", wantValid: true},
		"off":      {level: log.LevelOff, wantName: "off", wantLetter: "O", wantValid: false},
		"unknown":  {level: log.Level(42), wantName: "42", wantLetter: "?", wantValid: false},
		"negative": {level: log.Level(-1), wantName: "-1", wantLetter: "?", wantValid: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.wantName, tc.level.String())
			assert.Equal(t, tc.wantLetter, tc.level.Letter())
			assert.Equal(t, tc.wantValid, tc.level.Valid())
		})
	}
}

func TestLevelsRoundTripNames(t *testing.T) {
	t.Parallel()

	for _, l := range log.Levels() {
		got, err := log.ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}

	assert.Equal(t,
		[]string{"trace", "debug", "info", "warn", "error", "critical"},
		log.GetAllLevelStrings())
}

func TestFromSlog(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input slog.Level
		want  log.Level
	}{
		"below debug":   {input: slog.LevelDebug - 4, want: log.LevelTrace},
		"debug":         {input: slog.LevelDebug, want: log.LevelDebug},
		"info":          {input: slog.LevelInfo, want: log.LevelInfo},
		"between":       {input: slog.LevelInfo + 2, want: log.LevelInfo},
		"warn":          {input: slog.LevelWarn, want: log.LevelWarn},
		"error":         {input: slog.LevelError, want: log.LevelError},
		"above error":   {input: slog.LevelError + 4, want: log.LevelCritical},
		"barely higher": {input: slog.LevelError + 1, want: log.LevelCritical},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, log.FromSlog(tc.input))
		})
	}

	for _, l := range log.Levels() {
		assert.Equal(t, l, log.FromSlog(l.Slog()), l.String())
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expected    log.Format
		expectError bool
	}{
		"json format":      {input: "json", expected: log.FormatJSON},
		"logfmt format":    {input: "logfmt", expected: log.FormatLogfmt},
		"text format":      {input: "text", expected: log.FormatText},
		"case insensitive": {input: "JSON", expected: log.FormatJSON},
		"unknown format":   {input: "unknown", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f, err := log.ParseFormat(tc.input)
			if tc.expectError {
				require.ErrorIs(t, err, log.ErrUnknownLogFormat)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, f)
			}
		})
	}
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		checkFunc func(*testing.T, []byte)
		format    log.Format
	}{
		"json handler": {
			format: log.FormatJSON,
			checkFunc: func(t *testing.T, output []byte) {
				t.Helper()

				var logEntry map[string]any

				err := json.Unmarshal(output, &logEntry)
				require.NoError(t, err)
				assert.Equal(t, "test message", logEntry["msg"])
				assert.Equal(t, "INFO", logEntry["level"])
				assert.Equal(t, "value", logEntry["key"])
			},
		},
		"logfmt handler": {
			format: log.FormatLogfmt,
			checkFunc: func(t *testing.T, output []byte) {
				t.Helper()

				outputStr := string(output)
				assert.Contains(t, outputStr, "level=INFO")
				assert.Contains(t, outputStr, "msg=\"test message\"")
				assert.Contains(t, outputStr, "key=value")
			},
		},
		"text handler": {
			format: log.FormatText,
			checkFunc: func(t *testing.T, output []byte) {
				t.Helper()

				outputStr := string(output)
				assert.Contains(t, outputStr, "test message")
				assert.Contains(t, outputStr, "key=value")
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			handler := log.NewHandler(&buf, log.LevelInfo, tc.format)
			require.NotNil(t, handler)

			logger := slog.New(handler)
			logger.Info("test message", slog.String("key", "value"))

			tc.checkFunc(t, buf.Bytes())
		})
	}
}

func TestNewHandlerFromStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		levelStr    string
		formatStr   string
		expectError bool
	}{
		"valid json handler": {levelStr: "info", formatStr: "json"},
		"invalid level":      {levelStr: "invalid", formatStr: "json", expectError: true},
		"off level":          {levelStr: "off", formatStr: "json", expectError: true},
		"invalid format":     {levelStr: "info", formatStr: "invalid", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			handler, err := log.NewHandlerFromStrings(&buf, tc.levelStr, tc.formatStr)
			if tc.expectError {
				require.ErrorIs(t, err, log.ErrInvalidArgument)
				assert.Empty(t, buf.Bytes())

				return
			}

			require.NoError(t, err)
			slog.New(handler).Info("hello")
			assert.Contains(t, buf.String(), "hello")
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		logFunc       func(*slog.Logger)
		level         log.Level
		shouldContain bool
	}{
		"info level passes info log": {
			level:         log.LevelInfo,
			logFunc:       func(l *slog.Logger) { l.Info("test message") },
			shouldContain: true,
		},
		"info level blocks debug log": {
			level:         log.LevelInfo,
			logFunc:       func(l *slog.Logger) { l.Debug("test message") },
			shouldContain: false,
		},
		"trace level passes debug log": {
			level:         log.LevelTrace,
			logFunc:       func(l *slog.Logger) { l.Debug("test message") },
			shouldContain: true,
		},
		"error level blocks warn log": {
			level:         log.LevelError,
			logFunc:       func(l *slog.Logger) { l.Warn("test message") },
			shouldContain: false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			tc.logFunc(slog.New(log.NewHandler(&buf, tc.level, log.FormatJSON)))

			if tc.shouldContain {
				assert.Contains(t, buf.String(), "test message")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestRegisterCompletions(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		flag string
		want []string
	}{
		"log-level completions": {
			flag: "log-level",
			want: log.GetAllLevelStrings(),
		},
		"diag-format completions": {
			flag: "diag-format",
			want: log.GetAllFormatStrings(),
		},
		"log-color completions": {
			flag: "log-color",
			want: []string{"trace=", "debug=", "info=", "warn=", "error=", "critical="},
		},
	}

	cfg := log.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	err := cfg.RegisterCompletions(cmd)
	require.NoError(t, err)

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			completionFn, ok := cmd.GetFlagCompletionFunc(tc.flag)
			require.True(t, ok)

			values, _ := completionFn(cmd, nil, "")
			assert.Equal(t, tc.want, values)
		})
	}
}
