// Package version reports build metadata of the chatlog command.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string
)

// Info describes one build.
type Info struct {
	Version   string
	Revision  string
	BuildDate string
	GoVersion string
	Platform  string
}

// Get returns the metadata of the running binary.
func Get() Info {
	v := Version
	if v == "" {
		v = "devel"
	}

	return Info{
		Version:   v,
		Revision:  revision(debug.ReadBuildInfo()),
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders i on one line, omitting empty fields.
func (i Info) String() string {
	parts := []string{i.Version}
	if i.Revision != "" {
		parts = append(parts, "revision "+i.Revision)
	}

	if i.BuildDate != "" {
		parts = append(parts, "built "+i.BuildDate)
	}

	return fmt.Sprintf("chatlog %s (%s, %s)", strings.Join(parts, ", "), i.GoVersion, i.Platform)
}

func revision(buildInfo *debug.BuildInfo, ok bool) string {
	if !ok {
		return ""
	}

	rev := ""
	modified := false

	for _, s := range buildInfo.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if rev != "" && modified {
		return rev + "-dirty"
	}

	return rev
}
