package subcommands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/minreads/internal/config"
)

// ValidateCmd validates the current configuration.
var ValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the current configuration",
	Long: "Validate the current configuration.\n\n" +
		"Checks the effective settings (config file plus MINREADS_ environment " +
		"overrides) and reports every invalid value. Syntax errors in the config " +
		"file are reported when it is loaded. Returns exit code 0 if valid, 1 if invalid.",
	Example: `  # Validate the configuration
  minreads config validate

  # Validate a specific file
  minreads config validate --config ./pipeline/minreads.yaml`,
	Args:    cobra.NoArgs,
	PreRunE: validateValidate,
	RunE:    runValidate,
}

func validateValidate(cmd *cobra.Command, args []string) error {
	// All errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	source := config.ConfigFilePath()
	if source == "" {
		fmt.Fprintf(out, "No configuration file found at %s\n", config.GetConfigPath())
		fmt.Fprintln(out, "Validating default configuration values.")
	}

	if _, err := config.Get(); err != nil {
		fmt.Fprintln(out, "Configuration validation failed:")
		fmt.Fprintf(out, "  %v\n", err)
		return fmt.Errorf("configuration is invalid")
	}

	if source != "" {
		fmt.Fprintf(out, "Configuration is valid: %s\n", source)
	} else {
		fmt.Fprintln(out, "Configuration is valid.")
	}
	return nil
}
