package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 4000 {
		t.Errorf("expected default port 4000, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("expected default read timeout 10s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Storage.DataDir != "./data" {
		t.Errorf("expected default data dir ./data, got %q", cfg.Storage.DataDir)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "server:\n  port: 5000\nstorage:\n  data_dir: /var/lib/storylab\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("expected port 5000 from file, got %d", cfg.Server.Port)
	}
	if cfg.Storage.DataDir != "/var/lib/storylab" {
		t.Errorf("expected data dir from file, got %q", cfg.Storage.DataDir)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 5000\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "6000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 6000 {
		t.Errorf("expected env override port 6000, got %d", cfg.Server.Port)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := Load(); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
