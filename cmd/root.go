package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	configcmd "github.com/leefowlercu/minreads/cmd/config"
	versioncmd "github.com/leefowlercu/minreads/cmd/version"
	"github.com/leefowlercu/minreads/internal/config"
	"github.com/leefowlercu/minreads/internal/logging"
	"github.com/leefowlercu/minreads/internal/metrics"
	"github.com/leefowlercu/minreads/internal/seqfu"
	"github.com/leefowlercu/minreads/internal/validator"
	"github.com/leefowlercu/minreads/internal/version"
)

// logManager is the global logging manager, created in init() and upgraded after config loads
var logManager *logging.Manager

var (
	inputPath   string
	outputPath  string
	minReads    int
	configFile  string
	seqfuBinary string
)

var minreadsCmd = &cobra.Command{
	Use:   "minreads",
	Short: "Promote a sequence file only if it holds enough reads",
	Long: "Check that a FASTA/FASTQ file contains at least a minimum number of reads and, " +
		"if so, copy it to the output path.\n\n" +
		"The input is streamed through `seqfu head -n MIN` and `seqfu stats -`, so at most MIN " +
		"records are ever read. The copy preserves permissions and modification time and " +
		"replaces the destination atomically. When the input holds fewer reads the output " +
		"is left untouched and the command exits with status 1.",
	Example: `  # Copy sample.fastq.gz to checked/ if it holds at least 1000 reads
  minreads -i sample.fastq.gz -o checked/sample.fastq.gz -m 1000

  # Use a specific seqfu binary
  minreads -i reads.fa -o out.fa -m 50 --seqfu /opt/seqfu/bin/seqfu

  # Write Prometheus metrics for node_exporter
  MINREADS_METRICS_TEXTFILE=/var/lib/node_exporter/minreads.prom minreads -i r.fq -o o.fq -m 10`,
	Args:              cobra.NoArgs,
	Version:           version.Get().Version,
	PersistentPreRunE: runInitialize,
	PreRunE:           validateMinreads,
	RunE:              runMinreads,
}

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func init() {
	// Create logging Manager in bootstrap mode (stderr text only)
	logManager = logging.NewManager()
	slog.SetDefault(logManager.Logger())

	minreadsCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input FASTA/FASTQ file (may be gzipped)")
	minreadsCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination path for the validated copy")
	minreadsCmd.Flags().IntVarP(&minReads, "minreads", "m", 0, "Minimum number of reads required")
	_ = minreadsCmd.MarkFlagRequired("input")
	_ = minreadsCmd.MarkFlagRequired("output")
	_ = minreadsCmd.MarkFlagRequired("minreads")

	minreadsCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default searches $MINREADS_CONFIG_DIR, ~/.config/minreads, .)")
	minreadsCmd.PersistentFlags().StringVar(&seqfuBinary, "seqfu", "", "Path to the seqfu binary (overrides seqfu.binary)")

	minreadsCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	minreadsCmd.AddCommand(versioncmd.VersionCmd)
	minreadsCmd.AddCommand(configcmd.ConfigCmd)
}

func runInitialize(cmd *cobra.Command, args []string) error {
	logger := logManager.Logger()

	// Initialize config subsystem
	if err := config.Init(configFile); err != nil {
		return err
	}
	if err := config.BindFlag("seqfu.binary", cmd.Root().PersistentFlags().Lookup("seqfu")); err != nil {
		return err
	}

	levelStr := config.GetString("log_level")
	level, ok := logging.ParseLevel(levelStr)
	if !ok {
		logger.Warn("invalid log level configured, using default",
			"configured", levelStr, "default", logging.DefaultLevel.String())
	}

	logFile := config.GetPath("log_file")
	if logFile == "" {
		logManager.SetLevel(level)
		return nil
	}

	opts := logging.FileOptions{
		Path:       logFile,
		MaxSizeMB:  config.GetInt("log_max_size_mb"),
		MaxBackups: config.GetInt("log_max_backups"),
		MaxAgeDays: config.GetInt("log_max_age_days"),
	}
	if err := logManager.Upgrade(opts, level); err != nil {
		logManager.SetLevel(level)
		logger.Warn("failed to enable file logging, continuing with stderr only", "error", err)
		// Don't return error - continue with bootstrap mode
	}

	return nil
}

func validateMinreads(cmd *cobra.Command, args []string) error {
	if err := cmd.ValidateRequiredFlags(); err != nil {
		return &usageError{err: err}
	}

	// All errors after this are runtime errors
	cmd.SilenceUsage = true

	return currentRequest().Check()
}

func runMinreads(cmd *cobra.Command, args []string) error {
	cfg, err := config.Get()
	if err != nil {
		return err
	}

	logger := logManager.Logger().With("run_id", uuid.NewString())

	client := seqfu.NewClient(
		seqfu.WithBinary(cfg.SeqFu.Binary),
		seqfu.WithTimeout(cfg.SeqFu.TimeoutDuration()),
		seqfu.WithLogger(logger),
	)

	opts := []validator.Option{
		validator.WithOutput(cmd.OutOrStdout()),
		validator.WithLogger(logger),
	}

	textfile := config.GetPath("metrics.textfile")
	var registry *metrics.Registry
	if textfile != "" {
		registry = metrics.NewRegistry()
		opts = append(opts, validator.WithRecorder(registry))
	}

	_, runErr := validator.New(client, opts...).Validate(cmd.Context(), currentRequest())

	if registry != nil {
		if err := registry.WriteTextfile(textfile); err != nil {
			logger.Warn("failed to write metrics textfile", "path", textfile, "error", err)
		}
	}

	return runErr
}

func currentRequest() validator.Request {
	return validator.Request{
		InputPath:  inputPath,
		OutputPath: outputPath,
		MinReads:   minReads,
	}
}

// Execute runs the root command. Errors are printed once to stderr; an
// input rejected for holding too few reads has already been reported.
func Execute() error {
	minreadsCmd.SilenceErrors = true
	minreadsCmd.SilenceUsage = true

	// Ensure logging is properly closed on exit
	defer func() { _ = logManager.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, err := minreadsCmd.ExecuteContextC(ctx)
	if err == nil {
		return nil
	}

	if errors.Is(err, validator.ErrInsufficientReads) {
		return err
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var ue *usageError
	if errors.As(err, &ue) {
		if cmd == nil {
			cmd = minreadsCmd
		}
		fmt.Fprintln(os.Stderr)
		cmd.SetOut(os.Stderr)
		_ = cmd.Usage()
	}

	return err
}
