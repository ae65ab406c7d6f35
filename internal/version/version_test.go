package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet_VersionFromEmbeddedFile(t *testing.T) {
	info := Get()

	if info.Version == "" {
		t.Fatal("Get().Version is empty, expected embedded version")
	}
	if info.Version != strings.TrimSpace(info.Version) {
		t.Errorf("Get().Version = %q, contains leading/trailing whitespace", info.Version)
	}
	if parts := strings.SplitN(info.Version, ".", 3); len(parts) < 3 {
		t.Errorf("Get().Version = %q, expected MAJOR.MINOR.PATCH", info.Version)
	}
}

func TestGet_RuntimeFields(t *testing.T) {
	info := Get()

	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if want := runtime.GOOS + "/" + runtime.GOARCH; info.Platform != want {
		t.Errorf("Platform = %q, want %q", info.Platform, want)
	}
	if info.GitCommit == "" {
		t.Error("GitCommit is empty, expected value or 'unknown'")
	}
	if info.BuildDate == "" {
		t.Error("BuildDate is empty, expected value or 'unknown'")
	}
}

func TestCommit_PrefersLinkerValue(t *testing.T) {
	orig := gitCommit
	t.Cleanup(func() { gitCommit = orig })

	gitCommit = "abc1234"
	if got := commit(); got != "abc1234" {
		t.Errorf("commit() = %q, want %q", got, "abc1234")
	}
}

func TestCommit_Format(t *testing.T) {
	orig := gitCommit
	t.Cleanup(func() { gitCommit = orig })
	gitCommit = ""

	got := commit()
	if got == unknown {
		return
	}

	for _, c := range strings.TrimSuffix(got, "-dirty") {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Errorf("commit() = %q, contains non-hex character %q", got, c)
			return
		}
	}
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "0.1.0",
		GitCommit: "def5678-dirty",
		BuildDate: "2026-01-10T16:00:00Z",
		GoVersion: "go1.25.1",
		Platform:  "linux/amd64",
	}

	want := "Version:    0.1.0\n" +
		"Git Commit: def5678-dirty\n" +
		"Build Date: 2026-01-10T16:00:00Z\n" +
		"Go Version: go1.25.1\n" +
		"Platform:   linux/amd64"

	if got := info.String(); got != want {
		t.Errorf("Info.String() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatFields_AlignsValues(t *testing.T) {
	got := formatFields([][2]string{{"A", "1"}, {"Longer", "2"}})
	want := "A:      1\nLonger: 2"
	if got != want {
		t.Errorf("formatFields() = %q, want %q", got, want)
	}
}

func TestOrUnknown(t *testing.T) {
	if got := orUnknown(""); got != unknown {
		t.Errorf("orUnknown(\"\") = %q, want %q", got, unknown)
	}
	if got := orUnknown("2026-01-10T15:04:05Z"); got != "2026-01-10T15:04:05Z" {
		t.Errorf("orUnknown() = %q", got)
	}
}
