// Package config provides the config parent command and subcommands.
package config

import (
	"github.com/spf13/cobra"

	"github.com/leefowlercu/minreads/cmd/config/subcommands"
)

// ConfigCmd is the parent command for all config-related subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage minreads configuration",
	Long: "Inspect and manage minreads configuration.\n\n" +
		"The config command shows the effective settings, validates the config " +
		"file, and writes a starter file. Configuration is read from config.yaml in " +
		"$MINREADS_CONFIG_DIR, ~/.config/minreads/, or the current directory, and " +
		"every key can be overridden with a MINREADS_ environment variable " +
		"(for example MINREADS_SEQFU_BINARY).",
}

func init() {
	// Register subcommands
	ConfigCmd.AddCommand(subcommands.ShowCmd)
	ConfigCmd.AddCommand(subcommands.ValidateCmd)
	ConfigCmd.AddCommand(subcommands.InitCmd)
}
