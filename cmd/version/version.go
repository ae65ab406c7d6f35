package version

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/minreads/internal/config"
	"github.com/leefowlercu/minreads/internal/seqfu"
	"github.com/leefowlercu/minreads/internal/version"
)

// seqfuProbeTimeout bounds the `seqfu version` call.
const seqfuProbeTimeout = 5 * time.Second

// VersionCmd displays version and build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build information",
	Long: "Display version and build information.\n\n" +
		"Shows the semantic version, git commit hash, build date, and Go runtime " +
		"of the current minreads binary, followed by the version of the seqfu " +
		"toolkit it is configured to run. This information is useful for " +
		"troubleshooting and for recording the toolchain used in a pipeline.",
	Example: `  # Display version information
  minreads version

  # Check a specific seqfu installation
  minreads version --seqfu /opt/seqfu/bin/seqfu`,
	Args:    cobra.NoArgs,
	PreRunE: validateVersion,
	RunE:    runVersion,
}

func validateVersion(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, version.Get().String())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client := seqfu.NewClient(
		seqfu.WithBinary(config.GetString("seqfu.binary")),
		seqfu.WithTimeout(seqfuProbeTimeout),
	)

	seqfuVersion, err := client.Version(ctx)
	if err != nil {
		seqfuVersion = fmt.Sprintf("unavailable (%s)", client.Binary())
	}
	fmt.Fprintf(out, "%-11s %s\n", "SeqFu:", seqfuVersion)

	return nil
}
