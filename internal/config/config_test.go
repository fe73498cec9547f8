package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Browser.Headless {
		t.Fatal("expected headless by default")
	}
	if cfg.Browser.SettleDelay != 5*time.Second {
		t.Fatalf("expected 5s settle delay, got %v", cfg.Browser.SettleDelay)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestLoadFile_OverlaysOnlyGivenKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extractor.yaml")
	content := "workers: 3\nbrowser:\n  headless: false\n  settle_delay: 2s\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadFile(path, &cfg); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Workers != 3 {
		t.Errorf("workers = %d, want 3", cfg.Workers)
	}
	if cfg.Browser.Headless {
		t.Errorf("expected headless=false from file")
	}
	if cfg.Browser.SettleDelay != 2*time.Second {
		t.Errorf("settle_delay = %v, want 2s", cfg.Browser.SettleDelay)
	}
	if cfg.DBPath != "extractor.db" {
		t.Errorf("db_path should keep its default, got %q", cfg.DBPath)
	}
}

func TestLoadFile_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("workers: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if err := LoadFile(path, &cfg); err == nil {
		t.Fatal("expected validation error for workers: 0")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	cfg := DefaultConfig()
	if err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), &cfg); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("EXTRACTOR_HEADLESS", "false")
	t.Setenv("EXTRACTOR_WORKERS", "4")
	t.Setenv("EXTRACTOR_SETTLE_DELAY", "750ms")
	t.Setenv("CHROME_PATH", "/opt/chrome")
	t.Setenv("EXTRACTOR_LOOKUP_TIMEOUT", "not-a-duration")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)

	if cfg.Browser.Headless {
		t.Error("expected headless=false")
	}
	if cfg.Workers != 4 {
		t.Errorf("workers = %d, want 4", cfg.Workers)
	}
	if cfg.Browser.SettleDelay != 750*time.Millisecond {
		t.Errorf("settle delay = %v", cfg.Browser.SettleDelay)
	}
	if cfg.Browser.ExecPath != "/opt/chrome" {
		t.Errorf("exec path = %q", cfg.Browser.ExecPath)
	}
	if cfg.Browser.LookupTimeout != 3*time.Second {
		t.Errorf("unparseable override should keep default, got %v", cfg.Browser.LookupTimeout)
	}
}
