// Package testutil provides testing utilities for isolated test environments.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leefowlercu/minreads/internal/config"
)

// FakeSeqfu is a shell stand-in for the seqfu subcommands minreads runs,
// understanding FASTA input only.
//
// Behavior is steered by environment variables:
//
//	FAKE_SEQFU_FAIL     print the value to stderr and exit 1 for every subcommand
//	FAKE_SEQFU_REPORT   emit the value verbatim from `stats` instead of counting
//	FAKE_SEQFU_VERSION  output of `version` (default 1.22.3)
const FakeSeqfu = `#!/bin/sh
if [ -n "$FAKE_SEQFU_FAIL" ]; then
  echo "$FAKE_SEQFU_FAIL" >&2
  exit 1
fi
case "$1" in
head)
  awk -v n="$3" '/^>/{c++} c>n{exit} {print}' "$4"
  ;;
stats)
  if [ -n "$FAKE_SEQFU_REPORT" ]; then
    cat >/dev/null
    printf '%s' "$FAKE_SEQFU_REPORT"
    exit 0
  fi
  c=$(grep -c '^>' || true)
  printf 'File\t#Seq\tTotal bp\tAvg\n-\t%s\t0\t0\n' "$c"
  ;;
version)
  printf '%s\n' "${FAKE_SEQFU_VERSION-1.22.3}"
  ;;
*)
  echo "unknown command: $1" >&2
  exit 2
  ;;
esac
`

// TestEnv provides an isolated test environment with its own config directory.
type TestEnv struct {
	t *testing.T

	// Dir is the temp directory used as HOME, config dir, and working directory.
	Dir string

	// Seqfu is the path of the installed fake seqfu executable.
	Seqfu string
}

// NewTestEnv creates an isolated test environment.
// HOME, MINREADS_CONFIG_DIR, and the working directory all point at a fresh
// temp directory so no real config file is discovered, and config state is
// reset before and after the test. Tests using it must not run in parallel.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("MINREADS_CONFIG_DIR", dir)

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working dir: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change to test dir: %v", err)
	}

	config.Reset()
	t.Cleanup(func() {
		config.Reset()
		_ = os.Chdir(origDir)
	})

	return &TestEnv{
		t:     t,
		Dir:   dir,
		Seqfu: InstallFakeSeqfu(t),
	}
}

// ConfigPath returns where the test config file is discovered.
func (e *TestEnv) ConfigPath() string {
	return filepath.Join(e.Dir, "config.yaml")
}

// WriteConfig writes content as the discoverable config file.
func (e *TestEnv) WriteConfig(content string) string {
	e.t.Helper()

	path := e.ConfigPath()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		e.t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// InitConfig runs config.Init against the isolated environment.
func (e *TestEnv) InitConfig() {
	e.t.Helper()

	if err := config.Init(""); err != nil {
		e.t.Fatalf("failed to initialize test config: %v", err)
	}
}

// WriteFasta creates a FASTA file in the environment holding reads records.
func (e *TestEnv) WriteFasta(name string, reads int) string {
	e.t.Helper()
	return WriteFasta(e.t, filepath.Join(e.Dir, name), reads)
}

// InstallFakeSeqfu writes FakeSeqfu as an executable into a temp directory
// and returns its path.
func InstallFakeSeqfu(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seqfu")
	if err := os.WriteFile(path, []byte(FakeSeqfu), 0755); err != nil {
		t.Fatalf("failed to install fake seqfu: %v", err)
	}
	return path
}

// WriteFasta writes a FASTA file with reads ten-base records to path.
func WriteFasta(t *testing.T, path string, reads int) string {
	t.Helper()

	var b strings.Builder
	for i := 0; i < reads; i++ {
		fmt.Fprintf(&b, ">read_%d\nACGTACGTAC\n", i)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("failed to write fasta %s: %v", path, err)
	}
	return path
}
