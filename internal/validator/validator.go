// Package validator gates a sequence file on a minimum read count and
// promotes it to an output location when the requirement is met.
//
// A run moves through
//
//	Start -> Probing -> Validated -> Copying -> Done(success)
//	                 -> Insufficient -> Done(failure)
//	                 -> ProbeFailed -> Done(failure)
//
// and nothing is retried.
package validator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/leefowlercu/minreads/internal/fsutil"
)

// Prober counts reads in a sequence file, stopping at minReads.
// Implementations must never return a count greater than minReads.
type Prober interface {
	ProbeReadCount(ctx context.Context, path string, minReads int) (int, error)
}

// Recorder receives one observation per completed run.
type Recorder interface {
	Observe(result string, reads, minReads int, elapsed time.Duration)
}

// resultCopyFailed labels runs that validated but could not be promoted.
const resultCopyFailed = "copy_failed"

// Validator runs the probe, decision, and promotion steps for a Request.
type Validator struct {
	prober   Prober
	out      io.Writer
	logger   *slog.Logger
	recorder Recorder
}

// Option configures a Validator.
type Option func(*Validator)

// WithOutput sets where outcome messages are written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(v *Validator) {
		if w != nil {
			v.out = w
		}
	}
}

// WithLogger sets the logger for run diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithRecorder registers a Recorder for run outcomes.
func WithRecorder(r Recorder) Option {
	return func(v *Validator) {
		v.recorder = r
	}
}

// New creates a Validator backed by prober.
func New(prober Prober, opts ...Option) *Validator {
	v := &Validator{
		prober: prober,
		out:    os.Stdout,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Probe asks the prober for the clamped read count and decides the outcome.
func (v *Validator) Probe(ctx context.Context, req Request) Outcome {
	count, err := v.prober.ProbeReadCount(ctx, req.InputPath, req.MinReads)
	if err != nil {
		return ProbeFailed(req.MinReads, err)
	}
	return Decide(count, req.MinReads)
}

// Apply performs the side effect for outcome.
//
// A validated outcome copies input to output and reports the copy. An
// insufficient outcome only reports the observed count. A failed probe does
// nothing; its reason is surfaced by Validate.
func (v *Validator) Apply(outcome Outcome, inputPath, outputPath string) error {
	switch outcome.Status {
	case StatusValidated:
		res, err := fsutil.CopyFile(inputPath, outputPath)
		if err != nil {
			return &CopyError{Src: inputPath, Dst: outputPath, Err: err}
		}
		v.logger.Debug("input promoted",
			"destination", res.Path,
			"bytes", res.Bytes,
			"sha256", res.SHA256)
		fmt.Fprintln(v.out, outcome.Message())
	case StatusInsufficient:
		fmt.Fprintln(v.out, outcome.Message())
	}
	return nil
}

// Validate runs one request through probing, decision, and promotion.
//
// It returns nil only when the input was validated and copied. An
// insufficient input yields ErrInsufficientReads, a failed probe yields the
// probe error, and a failed copy yields a *CopyError.
func (v *Validator) Validate(ctx context.Context, req Request) (Outcome, error) {
	logger := v.logger.With("input", req.InputPath, "min_reads", req.MinReads)
	logger.Debug("probing read count")

	start := time.Now()
	outcome := v.Probe(ctx, req)
	logger.Debug("probe finished", "status", outcome.Status.String(), "count", outcome.Count)

	if err := v.Apply(outcome, req.InputPath, req.OutputPath); err != nil {
		logger.Debug("promotion failed", "output", req.OutputPath, "error", err)
		v.record(resultCopyFailed, outcome, time.Since(start))
		return outcome, err
	}
	v.record(outcome.Status.String(), outcome, time.Since(start))

	switch outcome.Status {
	case StatusValidated:
		logger.Info("input validated", "output", req.OutputPath)
		return outcome, nil
	case StatusInsufficient:
		logger.Info("input rejected", "count", outcome.Count)
		return outcome, ErrInsufficientReads
	default:
		logger.Debug("read count probe failed", "error", outcome.Err)
		return outcome, outcome.Err
	}
}

func (v *Validator) record(result string, outcome Outcome, elapsed time.Duration) {
	if v.recorder == nil {
		return
	}
	v.recorder.Observe(result, outcome.Count, outcome.MinReads, elapsed)
}
