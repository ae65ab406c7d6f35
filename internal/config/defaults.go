package config

import "github.com/spf13/viper"

// Default configuration values.
const (
	DefaultLogLevel      = "warn"
	DefaultLogFile       = "" // stderr only
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28

	DefaultSeqFuBinary  = "seqfu"
	DefaultSeqFuTimeout = 0

	DefaultMetricsTextfile = ""
)

// NewDefaultConfig returns a Config populated with default values.
func NewDefaultConfig() Config {
	return Config{
		LogLevel:      DefaultLogLevel,
		LogFile:       DefaultLogFile,
		LogMaxSizeMB:  DefaultLogMaxSizeMB,
		LogMaxBackups: DefaultLogMaxBackups,
		LogMaxAgeDays: DefaultLogMaxAgeDays,
		SeqFu: SeqFuConfig{
			Binary:  DefaultSeqFuBinary,
			Timeout: DefaultSeqFuTimeout,
		},
		Metrics: MetricsConfig{
			Textfile: DefaultMetricsTextfile,
		},
	}
}

// setViperDefaults registers all default configuration values with a viper instance.
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", DefaultLogFile)
	v.SetDefault("log_max_size_mb", DefaultLogMaxSizeMB)
	v.SetDefault("log_max_backups", DefaultLogMaxBackups)
	v.SetDefault("log_max_age_days", DefaultLogMaxAgeDays)

	// SeqFu defaults
	v.SetDefault("seqfu.binary", DefaultSeqFuBinary)
	v.SetDefault("seqfu.timeout", DefaultSeqFuTimeout)

	// Metrics defaults
	v.SetDefault("metrics.textfile", DefaultMetricsTextfile)
}
