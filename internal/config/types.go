package config

import "time"

// Config is the root configuration structure for the application.
type Config struct {
	LogLevel      string        `yaml:"log_level" mapstructure:"log_level"`
	LogFile       string        `yaml:"log_file" mapstructure:"log_file"`
	LogMaxSizeMB  int           `yaml:"log_max_size_mb" mapstructure:"log_max_size_mb"`
	LogMaxBackups int           `yaml:"log_max_backups" mapstructure:"log_max_backups"`
	LogMaxAgeDays int           `yaml:"log_max_age_days" mapstructure:"log_max_age_days"`
	SeqFu         SeqFuConfig   `yaml:"seqfu" mapstructure:"seqfu"`
	Metrics       MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// SeqFuConfig holds settings for the external seqfu toolkit.
type SeqFuConfig struct {
	Binary  string `yaml:"binary" mapstructure:"binary"`
	Timeout int    `yaml:"timeout" mapstructure:"timeout"` // seconds, 0 = no deadline
}

// TimeoutDuration returns the probe deadline, or zero when disabled.
func (c SeqFuConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// MetricsConfig holds metrics output configuration.
type MetricsConfig struct {
	// Textfile is where Prometheus metrics are written after each run. Empty disables.
	Textfile string `yaml:"textfile" mapstructure:"textfile"`
}
