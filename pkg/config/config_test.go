package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testConfig struct {
	Workers     int    `yaml:"workers"`
	RecordIndex string `yaml:"record_index"`
}

func (c *testConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive")
	}
	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "workers: 8\nrecord_index: /data/records.json\n")
	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 8 {
		t.Errorf("workers = %d, want 8", cfg.Workers)
	}
	if cfg.RecordIndex != "/data/records.json" {
		t.Errorf("record_index = %q", cfg.RecordIndex)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("BGCONVERT_TEST_INDEX", "/mnt/records.json")
	path := writeConfig(t, "workers: 2\nrecord_index: ${BGCONVERT_TEST_INDEX}\n")
	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RecordIndex != "/mnt/records.json" {
		t.Errorf("record_index = %q, want expanded value", cfg.RecordIndex)
	}
}

func TestLoadRunsValidator(t *testing.T) {
	path := writeConfig(t, "workers: 0\n")
	var cfg testConfig
	err := Load(path, &cfg)
	if err == nil {
		t.Fatal("invalid config should fail")
	}
	if !strings.Contains(err.Error(), "config validation failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	var cfg testConfig
	if err := Load(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err == nil {
		t.Fatal("missing file should fail")
	}
}

func TestLoadWithDefaultsFallsBack(t *testing.T) {
	fallback := writeConfig(t, "workers: 3\n")
	var cfg testConfig
	if err := LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"), fallback, &cfg); err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if cfg.Workers != 3 {
		t.Errorf("workers = %d, want fallback value 3", cfg.Workers)
	}
}
