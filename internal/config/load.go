package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadFromPath reads configuration from a specific file path.
// Environment overrides and defaults apply as they do for Init.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	configureViper(v)
	v.SetConfigFile(expandHome(path))

	err := v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to read config from %s; %w", path, err)
	}

	return unmarshalConfig(v)
}

// LoadWithDefaults returns configuration using defaults only.
func LoadWithDefaults() *Config {
	cfg := NewDefaultConfig()
	return &cfg
}

// unmarshalConfig converts viper config to typed Config struct.
func unmarshalConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	err := v.Unmarshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config; %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
