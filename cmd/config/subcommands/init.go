package subcommands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/minreads/internal/config"
)

var (
	initPath  string
	initForce bool
)

// InitCmd writes a config file populated with default values.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	Long: "Write a config file with default values.\n\n" +
		"Creates ~/.config/minreads/config.yaml (or the file given with --path) " +
		"containing every setting at its default, ready to edit. An existing file " +
		"is never replaced unless --force is given.",
	Example: `  # Create the default config file
  minreads config init

  # Write a project-local config
  minreads config init --path ./config.yaml`,
	Args:    cobra.NoArgs,
	PreRunE: validateInit,
	RunE:    runInit,
}

func init() {
	InitCmd.Flags().StringVar(&initPath, "path", "", "Destination file (default ~/.config/minreads/config.yaml)")
	InitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func validateInit(cmd *cobra.Command, args []string) error {
	if initPath == "" {
		initPath = config.DefaultConfigPath()
	}

	// All errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	if config.ConfigExistsAt(initPath) && !initForce {
		return fmt.Errorf("config file %s already exists; use --force to overwrite", initPath)
	}

	cfg := config.NewDefaultConfig()
	if err := config.Write(&cfg, initPath); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written: %s\n", initPath)
	return nil
}
