package subcommands

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leefowlercu/minreads/internal/config"
)

var (
	showRaw    bool
	showFormat string
)

// ShowCmd displays the current configuration.
var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current configuration",
	Long: "Display the current configuration.\n\n" +
		"Shows the effective minreads settings after defaults, the config file, " +
		"MINREADS_ environment variables, and flags are merged. Use --raw to print " +
		"the config file exactly as written, or --format toml to render the " +
		"effective settings as TOML.",
	Example: `  # Show effective configuration
  minreads config show

  # Show the config file as written
  minreads config show --raw

  # Render effective settings as TOML
  minreads config show --format toml

  # Show the effect of an environment override
  MINREADS_SEQFU_TIMEOUT=60 minreads config show`,
	Args:    cobra.NoArgs,
	PreRunE: validateShow,
	RunE:    runShow,
}

func init() {
	ShowCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the config file as written (no defaults or overrides)")
	ShowCmd.Flags().StringVar(&showFormat, "format", "yaml", "Output format for effective settings: yaml or toml")
}

func validateShow(cmd *cobra.Command, args []string) error {
	if showFormat != "yaml" && showFormat != "toml" {
		return fmt.Errorf("invalid format %q; must be yaml or toml", showFormat)
	}

	// All errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if showRaw {
		return showRawConfig(cmd.OutOrStdout())
	}
	return showEffectiveConfig(cmd.OutOrStdout())
}

func showRawConfig(out io.Writer) error {
	configPath := config.GetConfigPath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(out, "# No configuration file found")
			fmt.Fprintf(out, "# Default location: %s\n", configPath)
			return nil
		}
		return fmt.Errorf("failed to read config file; %w", err)
	}

	fmt.Fprintf(out, "# Configuration file: %s\n", configPath)
	fmt.Fprintln(out, string(data))
	return nil
}

func showEffectiveConfig(out io.Writer) error {
	settings := config.GetAllSettings()

	var (
		data []byte
		err  error
	)
	switch showFormat {
	case "toml":
		data, err = toml.Marshal(settings)
	default:
		data, err = yaml.Marshal(settings)
	}
	if err != nil {
		return fmt.Errorf("failed to format configuration; %w", err)
	}

	source := config.ConfigFilePath()
	if source == "" {
		source = "none (defaults and environment only)"
	}

	fmt.Fprintln(out, "# Effective configuration (with defaults)")
	fmt.Fprintf(out, "# Config file: %s\n", source)
	fmt.Fprint(out, string(data))
	return nil
}
