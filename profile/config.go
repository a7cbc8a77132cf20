package profile

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// ErrUnknownKind indicates a profile kind that [Kinds] does not list.
	ErrUnknownKind = errors.New("unknown profile kind")
	// ErrMissingPath indicates a profile requested without an output file.
	ErrMissingPath = errors.New("missing profile path")
)

// Kind names a runtime profile.
type Kind string

// Profile kinds. [KindCPU] runs for the lifetime of the command; the others
// are snapshots written when profiling stops.
const (
	KindCPU          Kind = "cpu"
	KindHeap         Kind = "heap"
	KindAllocs       Kind = "allocs"
	KindGoroutine    Kind = "goroutine"
	KindThreadcreate Kind = "threadcreate"
	KindBlock        Kind = "block"
	KindMutex        Kind = "mutex"
)

// Kinds returns every profile kind in the order profiles are written.
func Kinds() []Kind {
	return []Kind{
		KindCPU,
		KindHeap,
		KindAllocs,
		KindGoroutine,
		KindThreadcreate,
		KindBlock,
		KindMutex,
	}
}

// ParseKind returns the [Kind] named by s, ignoring case and surrounding
// space.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Kinds(), k) {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}

	return k, nil
}

// Flags holds CLI flag names for profiling, allowing callers to customize
// flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Profile              string
	MemProfileRate       string
	BlockProfileRate     string
	MutexProfileFraction string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags:                f,
		MemProfileRate:       512 * 1024,
		BlockProfileRate:     1,
		MutexProfileFraction: 1,
	}
}

// Config holds the requested profiles and sampling rates.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags].
type Config struct {
	// Paths maps a kind name to its output file.
	Paths                map[string]string
	Flags                Flags
	MemProfileRate       int
	BlockProfileRate     int
	MutexProfileFraction int
}

// NewConfig returns a new [Config] with default flag names, default rates
// and no profiles requested.
func NewConfig() *Config {
	f := Flags{
		Profile:              "profile",
		MemProfileRate:       "mem-profile-rate",
		BlockProfileRate:     "block-profile-rate",
		MutexProfileFraction: "mutex-profile-fraction",
	}

	return f.NewConfig()
}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringToStringVar(&c.Paths, c.Flags.Profile, c.Paths,
		fmt.Sprintf("write a profile as kind=path, kind one of: %s", kindStrings()))
	flags.IntVar(&c.MemProfileRate, c.Flags.MemProfileRate, c.MemProfileRate,
		"memory profile rate (bytes per sample)")
	flags.IntVar(&c.BlockProfileRate, c.Flags.BlockProfileRate, c.BlockProfileRate,
		"block profile rate (nanoseconds)")
	flags.IntVar(&c.MutexProfileFraction, c.Flags.MutexProfileFraction, c.MutexProfileFraction,
		"mutex profile fraction (1/N sampling)")
}

// RegisterCompletions registers shell completions for profile flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	keys := make([]string, 0, len(Kinds()))
	for _, k := range Kinds() {
		keys = append(keys, string(k)+"=")
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.Profile,
		cobra.FixedCompletions(keys, cobra.ShellCompDirectiveNoFileComp|cobra.ShellCompDirectiveNoSpace))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Profile, err)
	}

	for _, name := range []string{c.Flags.MemProfileRate, c.Flags.BlockProfileRate, c.Flags.MutexProfileFraction} {
		err := cmd.RegisterFlagCompletionFunc(name, cobra.NoFileCompletions)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	return nil
}

// Requests parses [Config.Paths] into an output path per kind.
func (c *Config) Requests() (map[Kind]string, error) {
	out := make(map[Kind]string, len(c.Paths))

	for name, path := range c.Paths {
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}

		if path == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingPath, k)
		}

		out[k] = path
	}

	return out, nil
}

// NewProfiler creates a [Profiler] for the requested profiles.
func (c *Config) NewProfiler() (*Profiler, error) {
	reqs, err := c.Requests()
	if err != nil {
		return nil, err
	}

	return &Profiler{
		paths:                reqs,
		memProfileRate:       c.MemProfileRate,
		blockProfileRate:     c.BlockProfileRate,
		mutexProfileFraction: c.MutexProfileFraction,
	}, nil
}

func kindStrings() []string {
	out := make([]string, 0, len(Kinds()))
	for _, k := range Kinds() {
		out = append(out, string(k))
	}

	return out
}
