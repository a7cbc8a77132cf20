package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// DefaultPattern is the chat line layout used when none is configured:
// colored "[HH:MM:SS] L [name] :: message".
const DefaultPattern = "%^[%T] %L [%n] :: %v%$"

// DefaultName is the logger name used when none is configured.
const DefaultName = "chatlog"

// ErrInvalidConfig indicates a configuration file could not be used.
var ErrInvalidConfig = errors.New("invalid config")

// Flags holds CLI flag names for log configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Level            string
	Pattern          string
	Name             string
	Color            string
	File             string
	DiagnosticLevel  string
	DiagnosticFormat string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags:            f,
		Level:            LevelInfo.String(),
		Pattern:          DefaultPattern,
		Name:             DefaultName,
		DiagnosticLevel:  LevelWarn.String(),
		DiagnosticFormat: string(FormatText),
	}
}

// Config holds CLI flag values for the chat log and for the diagnostics
// handler of the surrounding program.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Call [Config.Resolve] after flag parsing to merge
// the optional YAML file, then hand the result to the chat log constructor.
type Config struct {
	Colors           map[string]string
	Level            string
	Pattern          string
	Name             string
	File             string
	DiagnosticLevel  string
	DiagnosticFormat string
	Flags            Flags
}

// NewConfig returns a new [Config] with default flag names and values.
func NewConfig() *Config {
	f := Flags{
		Level:            "log-level",
		Pattern:          "log-pattern",
		Name:             "log-name",
		Color:            "log-color",
		File:             "log-config",
		DiagnosticLevel:  "diag-level",
		DiagnosticFormat: "diag-format",
	}

	return f.NewConfig()
}

// RegisterFlags adds logging flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, c.Level,
		fmt.Sprintf("chat log level, one of: %s", GetAllLevelStrings()))
	flags.StringVar(&c.Pattern, c.Flags.Pattern, c.Pattern,
		"chat line pattern")
	flags.StringVar(&c.Name, c.Flags.Name, c.Name,
		"logger name shown by %n")
	flags.StringToStringVar(&c.Colors, c.Flags.Color, c.Colors,
		"per-level chat color as level=color (1, 3 or 7 characters)")
	flags.StringVar(&c.File, c.Flags.File, c.File,
		"YAML file with level, name, pattern and colors")
	flags.StringVar(&c.DiagnosticLevel, c.Flags.DiagnosticLevel, c.DiagnosticLevel,
		fmt.Sprintf("diagnostics level, one of: %s", GetAllLevelStrings()))
	flags.StringVar(&c.DiagnosticFormat, c.Flags.DiagnosticFormat, c.DiagnosticFormat,
		fmt.Sprintf("diagnostics format, one of: %s", GetAllFormatStrings()))
}

// RegisterCompletions registers shell completions for log flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	fixed := map[string][]string{
		c.Flags.Level:            GetAllLevelStrings(),
		c.Flags.DiagnosticLevel:  GetAllLevelStrings(),
		c.Flags.DiagnosticFormat: GetAllFormatStrings(),
	}

	for _, name := range []string{c.Flags.Level, c.Flags.DiagnosticLevel, c.Flags.DiagnosticFormat} {
		err := cmd.RegisterFlagCompletionFunc(name,
			cobra.FixedCompletions(fixed[name], cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	colorKeys := make([]string, 0, len(Levels()))
	for _, l := range Levels() {
		colorKeys = append(colorKeys, l.String()+"=")
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.Color,
		cobra.FixedCompletions(colorKeys, cobra.ShellCompDirectiveNoFileComp|cobra.ShellCompDirectiveNoSpace))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Color, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.File,
		cobra.FixedCompletions([]string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.File, err)
	}

	return nil
}

// Resolve loads [Config.File], if set, and copies its values into c for
// every setting whose flag was not explicitly changed on flags. Color
// entries are merged per level, with flag entries taking precedence. A nil
// flags treats every setting as unchanged.
func (c *Config) Resolve(flags *pflag.FlagSet) error {
	if c.File == "" {
		return nil
	}

	f, err := LoadFile(c.File)
	if err != nil {
		return err
	}

	changed := func(name string) bool {
		return flags != nil && flags.Changed(name)
	}

	if f.Level != "" && !changed(c.Flags.Level) {
		c.Level = f.Level
	}

	if f.Pattern != "" && !changed(c.Flags.Pattern) {
		c.Pattern = f.Pattern
	}

	if f.Name != "" && !changed(c.Flags.Name) {
		c.Name = f.Name
	}

	if len(f.Colors) > 0 {
		merged := make(map[string]string, len(f.Colors)+len(c.Colors))
		for k, v := range f.Colors {
			merged[k] = v
		}

		for k, v := range c.Colors {
			merged[k] = v
		}

		c.Colors = merged
	}

	return nil
}

// LogLevel parses [Config.Level].
func (c *Config) LogLevel() (Level, error) {
	lvl, err := ParseLevel(c.Level)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", err, c.Level)
	}

	return lvl, nil
}

// ColorMap parses the level keys of [Config.Colors]. Color values are passed
// through unchanged; the chat log validates them.
func (c *Config) ColorMap() (map[Level]string, error) {
	out := make(map[Level]string, len(c.Colors))

	keys := make([]string, 0, len(c.Colors))
	for k := range c.Colors {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	for _, k := range keys {
		lvl, err := ParseLevel(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("%w: color key %q: %w", ErrInvalidArgument, k, err)
		}

		out[lvl] = c.Colors[k]
	}

	return out, nil
}

// NewHandler creates the diagnostics [Handler] described by c.
func (c *Config) NewHandler(w io.Writer) (Handler, error) {
	return NewHandlerFromStrings(w, c.DiagnosticLevel, c.DiagnosticFormat)
}

// File is the YAML configuration file layout.
type File struct {
	Colors  map[string]string `json:"colors,omitempty"  yaml:"colors"`
	Level   string            `json:"level,omitempty"   yaml:"level"`
	Name    string            `json:"name,omitempty"    yaml:"name"`
	Pattern string            `json:"pattern,omitempty" yaml:"pattern"`
}

// LoadFile reads and parses the YAML configuration file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Config path from CLI flag is expected.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	f, err := ParseFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// ParseFile validates data against [Schema] and decodes it. An empty
// document yields an empty [File].
func ParseFile(data []byte) (*File, error) {
	var doc any

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if doc == nil {
		return &File{}, nil
	}

	resolved, err := Schema().Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve config schema: %w", err)
	}

	err = resolved.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	var f File

	err = yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &f, nil
}

const (
	levelNamePattern = `(?i)^(trace|debug|info|warn|warning|err|error|critical|fatal)$`
	colorPattern     = `^(.|.{3}|.{7})$`
)

// Schema returns the JSON Schema describing the configuration [File].
func Schema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Title:       "chatlog configuration",
		Description: "Level, logger name, line pattern and per-level colors of the chat log.",
		Type:        "object",
		Properties: map[string]*jsonschema.Schema{
			"level": {
				Type:        "string",
				Description: "Minimum level written to chat.",
				Pattern:     levelNamePattern,
			},
			"name": {
				Type:        "string",
				Description: "Logger name shown by %n.",
			},
			"pattern": {
				Type:        "string",
				Description: "Chat line pattern.",
			},
			"colors": {
				Type:          "object",
				Description:   "Chat color per level: a letter code, a 3 character code or #RRGGBB.",
				PropertyNames: &jsonschema.Schema{Pattern: levelNamePattern},
				AdditionalProperties: &jsonschema.Schema{
					Type:    "string",
					Pattern: colorPattern,
				},
			},
		},
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
}
