// Package pipeline runs external commands as a chain of connected stages.
//
// Each stage's standard output is wired to the next stage's standard input
// through an OS pipe, so intermediate data never touches the filesystem and
// no shell is involved. The stdout of the last stage and the stderr of every
// stage are captured in memory.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// waitDelay bounds how long Wait blocks on inherited I/O after a stage is killed.
const waitDelay = 2 * time.Second

// Stage describes one command in a pipeline.
type Stage struct {
	// Name identifies the stage in results and errors (e.g., "head").
	Name string

	// Path is the executable to run. Resolved against PATH when it has no separator.
	Path string

	// Args are the arguments passed to the executable, without argv[0].
	Args []string
}

// String renders the stage as a command line for logging.
func (s Stage) String() string {
	return strings.Join(append([]string{s.Path}, s.Args...), " ")
}

// StageResult holds the exit status and diagnostics of one stage.
type StageResult struct {
	Name     string
	ExitCode int
	Stderr   []byte

	// Signal is the signal that terminated the stage, or nil when it exited.
	Signal os.Signal
}

// failed reports whether the stage did not exit cleanly.
func (s StageResult) failed() bool {
	return s.ExitCode != 0 || s.Signal != nil
}

// Result holds the captured output of a completed pipeline.
type Result struct {
	// Stdout is the standard output of the last stage.
	Stdout []byte

	// Stages holds one entry per stage, in pipeline order.
	Stages []StageResult
}

// Err returns a *ProcessError for the stage that caused the pipeline to fail,
// or nil when every stage succeeded.
//
// The first failing stage is reported, except that a stage killed by a
// signal yields to any later failing stage: an upstream writer dies from
// SIGPIPE once its reader has exited. The error carries the stderr of every
// stage.
func (r *Result) Err() error {
	culprit := -1
	for i, s := range r.Stages {
		if !s.failed() {
			continue
		}
		if culprit < 0 || r.Stages[culprit].Signal != nil {
			culprit = i
		}
	}
	if culprit < 0 {
		return nil
	}

	s := r.Stages[culprit]
	return &ProcessError{
		Stage:    s.Name,
		ExitCode: s.ExitCode,
		Signal:   s.Signal,
		Stderr:   r.stderr(culprit),
	}
}

// stderr joins the captured stderr of all stages, the culprit's first.
// Output from other stages is prefixed with the stage name.
func (r *Result) stderr(culprit int) string {
	parts := make([]string, 0, len(r.Stages))
	if msg := strings.TrimSpace(string(r.Stages[culprit].Stderr)); msg != "" {
		parts = append(parts, msg)
	}
	for i, s := range r.Stages {
		if i == culprit {
			continue
		}
		if msg := strings.TrimSpace(string(s.Stderr)); msg != "" {
			parts = append(parts, s.Name+": "+msg)
		}
	}
	return strings.Join(parts, "\n")
}

// Run starts every stage, connects them, and waits for all of them to exit.
//
// A non-zero exit status is not an error from Run; inspect Result.Err for that.
// Run returns a *ProcessError when a stage cannot be started or when ctx ends
// before the pipeline completes. Stages still running when ctx ends are killed.
func Run(ctx context.Context, stages ...Stage) (*Result, error) {
	if len(stages) == 0 {
		return nil, errors.New("pipeline has no stages")
	}

	cmds := make([]*exec.Cmd, len(stages))
	stderrs := make([]bytes.Buffer, len(stages))
	var stdout bytes.Buffer

	for i, s := range stages {
		cmd := exec.CommandContext(ctx, s.Path, s.Args...)
		cmd.Stderr = &stderrs[i]
		cmd.WaitDelay = waitDelay
		cmds[i] = cmd
	}

	// Parent copies of the pipe ends; closed once children hold their own.
	var fds []*os.File
	for i := 0; i < len(cmds)-1; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			closeFiles(fds)
			return nil, fmt.Errorf("failed to create pipe between %q and %q; %w",
				stages[i].Name, stages[i+1].Name, err)
		}
		cmds[i].Stdout = w
		cmds[i+1].Stdin = r
		fds = append(fds, r, w)
	}
	cmds[len(cmds)-1].Stdout = &stdout

	started := 0
	var startErr error
	for i, cmd := range cmds {
		if err := cmd.Start(); err != nil {
			startErr = &ProcessError{Stage: stages[i].Name, ExitCode: -1, Err: err}
			break
		}
		started++
	}

	closeFiles(fds)

	if startErr != nil {
		for _, cmd := range cmds[:started] {
			_ = cmd.Process.Kill()
		}
	}

	result := &Result{Stages: make([]StageResult, len(stages))}
	for i := range stages {
		result.Stages[i] = StageResult{Name: stages[i].Name, ExitCode: -1}
	}

	for i, cmd := range cmds[:started] {
		waitErr := cmd.Wait()
		result.Stages[i].Stderr = stderrs[i].Bytes()
		if cmd.ProcessState != nil {
			result.Stages[i].ExitCode = cmd.ProcessState.ExitCode()
			if ws, ok := cmd.ProcessState.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
				result.Stages[i].Signal = ws.Signal()
			}
		}

		var exitErr *exec.ExitError
		if waitErr != nil && !errors.As(waitErr, &exitErr) && startErr == nil && ctx.Err() == nil {
			startErr = &ProcessError{
				Stage:    stages[i].Name,
				ExitCode: result.Stages[i].ExitCode,
				Signal:   result.Stages[i].Signal,
				Stderr:   stderrs[i].String(),
				Err:      waitErr,
			}
		}
	}
	result.Stdout = stdout.Bytes()

	if startErr != nil {
		return result, startErr
	}

	if err := ctx.Err(); err != nil {
		stage := stages[len(stages)-1].Name
		for _, s := range result.Stages {
			if s.failed() {
				stage = s.Name
				break
			}
		}
		return result, &ProcessError{Stage: stage, ExitCode: -1, Err: err}
	}

	return result, nil
}

func closeFiles(files []*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
