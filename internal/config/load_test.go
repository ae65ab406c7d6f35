package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig_ReturnsTypedConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `log_level: debug
log_file: /var/log/minreads.log
log_max_size_mb: 50
log_max_backups: 7
log_max_age_days: 14
seqfu:
  binary: /opt/seqfu/bin/seqfu
  timeout: 120
metrics:
  textfile: /var/lib/node_exporter/minreads.prom
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config; %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogFile != "/var/log/minreads.log" {
		t.Errorf("LogFile = %q, want %q", cfg.LogFile, "/var/log/minreads.log")
	}
	if cfg.LogMaxSizeMB != 50 || cfg.LogMaxBackups != 7 || cfg.LogMaxAgeDays != 14 {
		t.Errorf("rotation = %d/%d/%d, want 50/7/14", cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays)
	}
	if cfg.SeqFu.Binary != "/opt/seqfu/bin/seqfu" {
		t.Errorf("SeqFu.Binary = %q, want %q", cfg.SeqFu.Binary, "/opt/seqfu/bin/seqfu")
	}
	if cfg.SeqFu.Timeout != 120 {
		t.Errorf("SeqFu.Timeout = %d, want %d", cfg.SeqFu.Timeout, 120)
	}
	if cfg.Metrics.Textfile != "/var/lib/node_exporter/minreads.prom" {
		t.Errorf("Metrics.Textfile = %q", cfg.Metrics.Textfile)
	}
}

func TestLoad_InvalidConfig_ReturnsValidationError(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `seqfu:
  timeout: -5
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config; %v", err)
	}

	_, err := LoadFromPath(configPath)
	if err == nil {
		t.Fatal("LoadFromPath() expected error for negative timeout")
	}

	if !IsValidationError(err) {
		t.Errorf("expected validation error, got %T: %v", err, err)
	}
}

func TestLoad_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("LoadFromPath() expected error for missing file")
	}
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `invalid: [yaml: content`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config; %v", err)
	}

	_, err := LoadFromPath(configPath)
	if err == nil {
		t.Fatal("LoadFromPath() expected error for invalid YAML")
	}
}

func TestLoadWithDefaults_ReturnsDefaultConfig(t *testing.T) {
	cfg := LoadWithDefaults()

	if cfg == nil {
		t.Fatal("LoadWithDefaults() returned nil")
	}

	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.SeqFu.Binary != DefaultSeqFuBinary {
		t.Errorf("SeqFu.Binary = %q, want %q", cfg.SeqFu.Binary, DefaultSeqFuBinary)
	}
}

func TestLoad_UsesViperDefaults_WhenKeysNotInFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Minimal config - should get defaults for unspecified keys
	configContent := `log_level: info
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config; %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}

	if cfg.SeqFu.Binary != DefaultSeqFuBinary {
		t.Errorf("SeqFu.Binary = %q, want default %q", cfg.SeqFu.Binary, DefaultSeqFuBinary)
	}
	if cfg.LogMaxSizeMB != DefaultLogMaxSizeMB {
		t.Errorf("LogMaxSizeMB = %d, want default %d", cfg.LogMaxSizeMB, DefaultLogMaxSizeMB)
	}
}

func TestLoad_EnvOverride_AppliesToStandaloneLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("seqfu:\n  timeout: 10\n"), 0600); err != nil {
		t.Fatalf("failed to write test config; %v", err)
	}

	t.Setenv("MINREADS_SEQFU_TIMEOUT", "45")

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.SeqFu.Timeout != 45 {
		t.Errorf("SeqFu.Timeout = %d, want %d", cfg.SeqFu.Timeout, 45)
	}
}
