// Command chatlog runs the chat log outside a plugin host.
//
// Lines are formatted exactly as a plugin would print them to the chat
// window and shown in the terminal with their colors.
//
// # Usage
//
//	chatlog emit [flags] [message ...]
//	chatlog schema
//	chatlog version
//
// Every command accepts --profile kind=path to write runtime profiles, for
// example --profile cpu=cpu.prof.
//
// Without message arguments, emit reads one message per line from stdin. A
// message of the form "warn: text" is emitted at the named level.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/chatlog/chatlog"
	"go.jacobcolvin.com/chatlog/log"
	"go.jacobcolvin.com/chatlog/profile"
	"go.jacobcolvin.com/chatlog/render"
	"go.jacobcolvin.com/chatlog/version"
)

// ErrInvalidMacro indicates a --macro value that is not FILE:LINE.
var ErrInvalidMacro = errors.New("invalid macro location")

func main() {
	err := newCLI(os.Stdin, os.Stdout, os.Stderr).execute(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// cli is the root command together with the profiler it starts.
type cli struct {
	root     *cobra.Command
	profiler *profile.Profiler
}

func newCLI(stdin io.Reader, stdout, stderr io.Writer) *cli {
	c := &cli{}
	c.root = newRootCmd(stdin, stdout, stderr, &c.profiler)

	return c
}

// execute runs the command for args and then writes any requested
// profiles, also when the command failed.
func (c *cli) execute(args []string) error {
	c.root.SetArgs(args)

	err := c.root.Execute()

	return errors.Join(err, c.profiler.Stop())
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer, profiler **profile.Profiler) *cobra.Command {
	cfg := log.NewConfig()
	profCfg := profile.NewConfig()

	rootCmd := &cobra.Command{
		Use:           "chatlog",
		Short:         "Format log lines the way they appear in the chat window",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			p, err := profCfg.NewProfiler()
			if err != nil {
				return err
			}

			*profiler = p

			return p.Start()
		},
	}

	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	cfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())

	completionErr := errors.Join(
		cfg.RegisterCompletions(rootCmd),
		profCfg.RegisterCompletions(rootCmd),
	)
	if completionErr != nil {
		fmt.Fprintf(stderr, "register completions: %v\n", completionErr)
	}

	rootCmd.AddCommand(
		newEmitCmd(cfg),
		newSchemaCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

type emitOptions struct {
	level  string
	macro  string
	record string
	color  string
}

func newEmitCmd(cfg *log.Config) *cobra.Command {
	opts := emitOptions{}

	cmd := &cobra.Command{
		Use:   "emit [message ...]",
		Short: "Write messages through the chat log",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(cmd, cfg, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.level, "level", "info",
		"level of messages without a level prefix")
	cmd.Flags().StringVar(&opts.macro, "macro", "",
		"simulate a running macro at FILE:LINE")
	cmd.Flags().StringVar(&opts.record, "record", "",
		"also append raw chat lines to this file")
	cmd.Flags().StringVar(&opts.color, "color", "auto",
		"color output, one of: auto, always, never")

	err := cmd.RegisterFlagCompletionFunc("color",
		cobra.FixedCompletions([]string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("level",
		cobra.FixedCompletions(log.GetAllLevelStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		panic(err)
	}

	return cmd
}

func runEmit(cmd *cobra.Command, cfg *log.Config, opts emitOptions, args []string) error {
	err := cfg.Resolve(cmd.Flags())
	if err != nil {
		return err
	}

	handler, err := cfg.NewHandler(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	diag := slog.New(handler)

	defaultLevel, err := log.ParseLevel(opts.level)
	if err != nil {
		return fmt.Errorf("%w: --level %q", err, opts.level)
	}

	var renderOpts []render.Option

	switch opts.color {
	case "auto":
	case "always":
		renderOpts = append(renderOpts, render.WithColor(true))
	case "never":
		renderOpts = append(renderOpts, render.WithColor(false))
	default:
		return fmt.Errorf("%w: --color %q", log.ErrInvalidArgument, opts.color)
	}

	chatOpts := []chatlog.Option{chatlog.WithLogger(diag)}

	if opts.macro != "" {
		ml, err := parseMacro(opts.macro)
		if err != nil {
			return err
		}

		chatOpts = append(chatOpts, chatlog.WithMacroContext(chatlog.MacroContextFunc(
			func() (chatlog.MacroLine, bool) { return ml, true },
		)))
	}

	pub := chatlog.NewPublisher()
	defer pub.Close() //nolint:errcheck // Publisher.Close always returns nil.

	window := render.New(cmd.OutOrStdout(), renderOpts...)
	outputs := []output{{sub: pub.Subscribe(), chat: window}}

	if opts.record != "" {
		f, err := os.OpenFile(opts.record, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) //nolint:gosec // Path from CLI flag is expected.
		if err != nil {
			return fmt.Errorf("open record file: %w", err)
		}

		defer f.Close() //nolint:errcheck // Best effort on exit.

		outputs = append(outputs, output{sub: pub.Subscribe(), chat: rawChat{w: f}})
	}

	l, err := chatlog.NewFromConfig(pub, cfg, chatOpts...)
	if err != nil {
		return err
	}
	defer l.Close() //nolint:errcheck // Log.Close always returns nil.

	diag.Debug("emitting chat lines",
		slog.String("level", l.LogLevel()),
		slog.String("pattern", l.Pattern()),
	)

	emit := func(msg string) {
		lvl, text := splitLevel(msg, defaultLevel)
		l.Logger().Log(lvl, text)

		for _, o := range outputs {
			o.drain()
		}
	}

	if len(args) > 0 {
		for _, a := range args {
			emit(a)
		}

		return nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		emit(scanner.Text())
	}

	err = scanner.Err()
	if err != nil {
		return fmt.Errorf("read messages: %w", err)
	}

	return nil
}

// output copies published lines to a chat window.
type output struct {
	sub  *chatlog.Subscription
	chat chatlog.Chat
}

func (o output) drain() {
	for {
		select {
		case line, ok := <-o.sub.C():
			if !ok {
				return
			}

			o.chat.WriteChatf("%s", line)
		default:
			return
		}
	}
}

// rawChat appends chat lines to a writer with their color codes intact.
type rawChat struct {
	w io.Writer
}

func (r rawChat) WriteChatf(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// splitLevel separates a "level: text" prefix from msg.
func splitLevel(msg string, def log.Level) (log.Level, string) {
	before, after, found := strings.Cut(msg, ":")
	if !found {
		return def, msg
	}

	lvl, err := log.ParseLevel(strings.TrimSpace(before))
	if err != nil {
		return def, msg
	}

	return lvl, strings.TrimPrefix(after, " ")
}

func parseMacro(s string) (chatlog.MacroLine, error) {
	i := strings.LastIndexByte(s, ':')
	if i <= 0 {
		return chatlog.MacroLine{}, fmt.Errorf("%w: %q", ErrInvalidMacro, s)
	}

	n, err := strconv.Atoi(s[i+1:])
	if err != nil || n < 0 {
		return chatlog.MacroLine{}, fmt.Errorf("%w: %q", ErrInvalidMacro, s)
	}

	return chatlog.MacroLine{SourceFile: s[:i], LineNumber: n}, nil
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := json.MarshalIndent(log.Schema(), "", "  ")
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}

			out = append(out, '\n')

			_, err = cmd.OutOrStdout().Write(out)
			if err != nil {
				return fmt.Errorf("write schema: %w", err)
			}

			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get())
		},
	}
}
