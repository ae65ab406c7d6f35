// Package seqfu adapts the SeqFu command-line toolkit as the read-counting
// backend of the validator.
package seqfu

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/leefowlercu/minreads/internal/pipeline"
)

// DefaultBinary is the seqfu executable looked up on PATH.
const DefaultBinary = "seqfu"

// Client probes sequence files through `seqfu head` piped into `seqfu stats`.
type Client struct {
	binary  string
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBinary sets the seqfu executable path.
func WithBinary(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.binary = path
		}
	}
}

// WithTimeout bounds every probe. Zero disables the deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger for probe diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a Client using DefaultBinary unless overridden.
func NewClient(opts ...Option) *Client {
	c := &Client{
		binary: DefaultBinary,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "seqfu")
	return c
}

// Binary returns the configured seqfu executable.
func (c *Client) Binary() string {
	return c.binary
}

// Stages returns the truncate-then-count pipeline for path.
func (c *Client) Stages(path string, n int) []pipeline.Stage {
	// Keep dash-prefixed names from being parsed as options.
	if strings.HasPrefix(path, "-") {
		path = "./" + path
	}
	return []pipeline.Stage{
		{Name: "head", Path: c.binary, Args: []string{"head", "-n", strconv.Itoa(n), path}},
		{Name: "stats", Path: c.binary, Args: []string{"stats", "-"}},
	}
}

// ProbeReadCount returns the number of reads in path, clamped at minReads.
//
// The file is truncated to its first minReads reads and the truncated stream
// is counted, so the result equals minReads exactly when the file holds at
// least that many reads. Process failures are returned as a wrapped
// *pipeline.ProcessError and unparseable output as *MalformedReportError.
func (c *Client) ProbeReadCount(ctx context.Context, path string, minReads int) (int, error) {
	if minReads <= 0 {
		return 0, fmt.Errorf("read bound must be positive, got %d", minReads)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	stages := c.Stages(path, minReads)
	c.logger.Debug("running probe", "head", stages[0].String(), "stats", stages[1].String())

	start := time.Now()
	res, err := pipeline.Run(ctx, stages...)
	if err != nil {
		return 0, fmt.Errorf("seqfu command failed; %w", err)
	}
	if err := res.Err(); err != nil {
		return 0, fmt.Errorf("seqfu command failed; %w", err)
	}

	stats, err := ParseStats(res.Stdout)
	if err != nil {
		c.logger.Debug("unparseable stats report", "report", string(res.Stdout))
		return 0, err
	}
	if stats.Count > minReads {
		return 0, &MalformedReportError{
			Reason: fmt.Sprintf("count %d exceeds truncation bound %d", stats.Count, minReads),
		}
	}

	c.logger.Debug("probe complete", "count", stats.Count, "duration", time.Since(start))
	return stats.Count, nil
}

// Version reports the version string printed by `seqfu version`.
func (c *Client) Version(ctx context.Context) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	res, err := pipeline.Run(ctx, pipeline.Stage{Name: "version", Path: c.binary, Args: []string{"version"}})
	if err != nil {
		return "", fmt.Errorf("seqfu command failed; %w", err)
	}
	if err := res.Err(); err != nil {
		return "", fmt.Errorf("seqfu command failed; %w", err)
	}

	out := strings.TrimSpace(string(res.Stdout))
	if out == "" {
		return "", &MalformedReportError{Reason: "empty version output"}
	}
	first, _, _ := strings.Cut(out, "\n")
	return strings.TrimSpace(first), nil
}
