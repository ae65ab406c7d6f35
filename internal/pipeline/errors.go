package pipeline

import (
	"fmt"
	"os"
	"strings"
)

// ProcessError reports a pipeline stage that failed to start, exited non-zero,
// or was killed. Stderr carries the pipeline's captured diagnostic text.
type ProcessError struct {
	Stage    string
	ExitCode int
	Signal   os.Signal
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "stage %q", e.Stage)

	switch {
	case e.Err != nil:
		fmt.Fprintf(&b, " failed; %v", e.Err)
	case e.Signal != nil:
		fmt.Fprintf(&b, " killed by signal: %v", e.Signal)
	default:
		fmt.Fprintf(&b, " exited with status %d", e.ExitCode)
	}

	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}
	return b.String()
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
