// Package log holds the level vocabulary and configuration of the chat log.
//
// [Level] orders the six record levels from [LevelTrace] to
// [LevelCritical], plus [LevelOff]. [ParseLevel] accepts the names users
// type (case-insensitive, with "warning", "err" and "fatal" as aliases) and
// never accepts "off".
//
// [Config] carries CLI flag values via [github.com/spf13/pflag] and shell
// completion via [github.com/spf13/cobra]. A YAML file named by --log-config
// is validated against [Schema] and fills in every setting not given on the
// command line:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	// after flag parsing
//	err := cfg.Resolve(rootCmd.PersistentFlags())
//
// The same [Config] describes the diagnostics handler of the surrounding
// program, built by [NewHandler] in text ([charm.land/log/v2]), JSON or logfmt
// form:
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	slog.SetDefault(slog.New(handler))
//
// A configuration file looks like:
//
//	level: debug
//	name: myplugin
//	pattern: "%^[%T] %L %q :: %v%$"
//	colors:
//	  warn: "y"
//	  error: "#FF0000"
package log
