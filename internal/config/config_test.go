package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Viper(), "")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ZoneinfoDir != DefaultZoneinfoDir {
		t.Errorf("ZoneinfoDir = %q, want %q", cfg.ZoneinfoDir, DefaultZoneinfoDir)
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers = %d, want >= 1", cfg.Workers)
	}
	if cfg.LogFormat != "console" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "console")
	}
	if cfg.Debug {
		t.Error("Debug = true, want false")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TZWALK_ZONEINFO_DIR", "/tmp/zoneinfo")
	t.Setenv("TZWALK_LOG_FORMAT", "json")
	cfg, err := Load(Viper(), "")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ZoneinfoDir != "/tmp/zoneinfo" {
		t.Errorf("ZoneinfoDir = %q, want %q", cfg.ZoneinfoDir, "/tmp/zoneinfo")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tzwalk.yaml")
	content := "zoneinfo_dir: /opt/tz\nworkers: 3\nlog_format: json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(Viper(), path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ZoneinfoDir != "/opt/tz" {
		t.Errorf("ZoneinfoDir = %q, want %q", cfg.ZoneinfoDir, "/opt/tz")
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(Viper(), filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() = nil, want error for missing file")
	}
}
