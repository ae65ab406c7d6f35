package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides (e.g., MINREADS_SEQFU_BINARY).
const EnvPrefix = "MINREADS"

// configFilePath stores the path to the loaded config file
var configFilePath string

// Init initializes the configuration subsystem.
//
// When explicitPath is set, that file is read and must exist. Otherwise
// configuration files are searched in priority order:
//  1. Directory specified by MINREADS_CONFIG_DIR environment variable
//  2. ~/.config/minreads/
//  3. Current working directory (.)
//
// If no config file is found, defaults are used.
// If a config file exists but is invalid or unreadable, Init returns an error.
func Init(explicitPath string) error {
	configureViper(viper.GetViper())

	if explicitPath != "" {
		viper.SetConfigFile(expandHome(explicitPath))
	} else {
		if envPath := os.Getenv(EnvPrefix + "_CONFIG_DIR"); envPath != "" {
			viper.AddConfigPath(envPath)
		}
		if dir := ConfigDir(); dir != "" {
			viper.AddConfigPath(dir)
		}
		viper.AddConfigPath(".")
	}

	err := viper.ReadInConfig()
	if err != nil {
		// No config file found is acceptable when searching
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && explicitPath == "" {
			configFilePath = ""
			return nil
		}

		// Any other error (invalid YAML, permission denied, missing explicit file) is fatal
		return fmt.Errorf("failed to read config; %w", err)
	}

	configFilePath = viper.ConfigFileUsed()
	slog.Debug("config initialized", "file", configFilePath)

	return nil
}

// configureViper applies the naming, env, and default settings shared by the
// global instance and the standalone loaders.
func configureViper(v *viper.Viper) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setViperDefaults(v)
}

// Get returns the typed, validated configuration from the initialized state.
func Get() (*Config, error) {
	return unmarshalConfig(viper.GetViper())
}

// ConfigFilePath returns the path to the loaded config file,
// or empty string if using defaults only.
func ConfigFilePath() string {
	return configFilePath
}

// Reset clears the configuration state for testing purposes.
func Reset() {
	viper.Reset()
	configFilePath = ""
}

// BindFlag makes a command-line flag override the given key when the flag is set.
func BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return nil
	}
	if err := viper.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("failed to bind flag %q to %q; %w", flag.Name, key, err)
	}
	return nil
}

// GetString returns the string value for the given key.
// Returns empty string if key is not found.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns the integer value for the given key.
// Returns 0 if key is not found or value cannot be converted to int.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// Set sets a value for the given key, overriding defaults and config file values.
// Primarily used for testing.
func Set(key string, value any) {
	viper.Set(key, value)
}

// GetPath returns the string value for the given key with ~ expanded to $HOME.
// Returns empty string if key is not found.
func GetPath(key string) string {
	return expandHome(viper.GetString(key))
}

// expandHome expands a leading ~ in path to the user's home directory.
// Only expands "~" alone or "~/..." patterns. Patterns like "~user" are not expanded.
// Returns the path unchanged if it doesn't start with ~/ or if home dir cannot be determined.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	// Only expand "~" or "~/..."
	if len(path) > 1 && path[1] != '/' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return home
	}

	return filepath.Join(home, path[2:])
}

// GetConfigPath returns the path where the config file should be located.
// If a config file is loaded, returns its path. Otherwise returns the default path.
func GetConfigPath() string {
	if configFilePath != "" {
		return configFilePath
	}
	return DefaultConfigPath()
}

// GetAllSettings returns all configuration settings as a map.
func GetAllSettings() map[string]any {
	return viper.AllSettings()
}
