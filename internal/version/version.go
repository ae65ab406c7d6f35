// Package version provides version and build information for the application.
package version

import (
	_ "embed"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var versionFile string

// Linker-injected variables. Set via:
//
//	go build -ldflags "-X github.com/leefowlercu/minreads/internal/version.gitCommit=VALUE"
var (
	gitCommit string
	buildDate string
)

const unknown = "unknown"

// Info describes the running minreads binary.
type Info struct {
	Version   string // semantic version from the embedded VERSION file
	GitCommit string // short hash, "-dirty" suffixed for modified trees
	BuildDate string // RFC 3339 timestamp or "unknown"
	GoVersion string
	Platform  string // GOOS/GOARCH
}

// String formats Info as aligned "Label: value" lines.
func (i Info) String() string {
	return formatFields([][2]string{
		{"Version", i.Version},
		{"Git Commit", i.GitCommit},
		{"Build Date", i.BuildDate},
		{"Go Version", i.GoVersion},
		{"Platform", i.Platform},
	})
}

// Get returns build information for the current binary.
func Get() Info {
	return Info{
		Version:   strings.TrimSpace(versionFile),
		GitCommit: commit(),
		BuildDate: orUnknown(buildDate),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// formatFields renders label/value pairs with values aligned one column past
// the longest label.
func formatFields(fields [][2]string) string {
	width := 0
	for _, f := range fields {
		width = max(width, len(f[0]))
	}

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, fmt.Sprintf("%-*s %s", width+1, f[0]+":", f[1]))
	}
	return strings.Join(lines, "\n")
}

// commit prefers the linker-injected hash, then VCS stamping from go install.
func commit() string {
	if gitCommit != "" {
		return gitCommit
	}

	revision, dirty := readBuildInfo()
	switch {
	case revision == "":
		return unknown
	case dirty:
		return revision + "-dirty"
	default:
		return revision
	}
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}

// readBuildInfo returns the 7-character VCS revision and whether the tree was modified.
func readBuildInfo() (revision string, dirty bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	return revision, dirty
}
