package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestManagerCreatesFromSeed(t *testing.T) {
	dir := t.TempDir()
	seed := DefaultConfigWithRoot(dir)
	seed.Symbol = "AAPL"

	mgr, err := NewManager(WithConfigDir(dir), WithInitialConfig(seed))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if got := mgr.Get().Symbol; got != "AAPL" {
		t.Fatalf("symbol = %q, want seed value AAPL", got)
	}
}

func TestManagerExistingFileWinsOverSeed(t *testing.T) {
	dir := t.TempDir()
	onDisk := DefaultConfigWithRoot(dir)
	onDisk.Symbol = "MSFT"
	onDisk.DaysBack = 90
	if err := writeConfig(filepath.Join(dir, "config.json"), *onDisk); err != nil {
		t.Fatalf("writeConfig: %v", err)
	}

	seed := DefaultConfigWithRoot(dir)
	seed.Symbol = "AAPL"
	mgr, err := NewManager(WithConfigDir(dir), WithInitialConfig(seed))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	cfg := mgr.Get()
	if cfg.Symbol != "MSFT" || cfg.DaysBack != 90 {
		t.Fatalf("expected file values MSFT/90, got %s/%d", cfg.Symbol, cfg.DaysBack)
	}
}

func TestManagerRejectsInvalidExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"symbol":"","days_back":1}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := NewManager(WithConfigPath(path)); err == nil {
		t.Fatal("expected error for invalid config file")
	}
}

func TestManagerUpdatePersists(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	cfg := mgr.Get()
	cfg.Symbol = "AAPL"
	cfg.DaysBack = 60
	if err := mgr.Update(cfg); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// A fresh manager sees the persisted values.
	reopened, err := NewManager(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("NewManager (reopen): %v", err)
	}
	got := reopened.Get()
	if got.Symbol != "AAPL" || got.DaysBack != 60 {
		t.Fatalf("expected persisted AAPL/60, got %s/%d", got.Symbol, got.DaysBack)
	}
}

func TestManagerRejectsInvalidUpdate(t *testing.T) {
	mgr, err := NewManager(WithConfigDir(t.TempDir()))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	cfg := mgr.Get()
	cfg.DaysBack = 1
	if err := mgr.Update(cfg); err == nil {
		t.Fatal("expected validation error for days_back < 2")
	}
}

func TestManagerWatchAppliesExternalEdit(t *testing.T) {
	mgr, err := NewManager(WithConfigDir(t.TempDir()), WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	applied := make(chan Config, 1)
	if err := mgr.Watch(ctx, func(cfg Config) {
		applied <- cfg
	}); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	cfg := mgr.Get()
	cfg.Symbol = "MSFT"
	cfg.DaysBack = 14
	if err := writeConfig(mgr.Path(), cfg); err != nil {
		t.Fatalf("writeConfig: %v", err)
	}

	select {
	case got := <-applied:
		if got.Symbol != "MSFT" || got.DaysBack != 14 {
			t.Fatalf("applied config = %s/%d, want MSFT/14", got.Symbol, got.DaysBack)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not fire on config change")
	}

	if got := mgr.Get().Symbol; got != "MSFT" {
		t.Fatalf("Get after reload = %q, want MSFT", got)
	}
}

func TestManagerWatchKeepsLastGoodConfigOnInvalidEdit(t *testing.T) {
	mgr, err := NewManager(WithConfigDir(t.TempDir()), WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := mgr.Watch(ctx, nil); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	before := mgr.Get()
	if err := os.WriteFile(mgr.Path(), []byte(`{"symbol":"","days_back":0}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	time.Sleep(300 * time.Millisecond)

	if got := mgr.Get(); got != before {
		t.Fatalf("invalid edit replaced config: %+v", got)
	}
}

func TestDefaultConfigPathHonorsEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.json")
	t.Setenv("CATSTONKS_CONFIG", want)

	got, err := defaultConfigPath()
	if err != nil {
		t.Fatalf("defaultConfigPath: %v", err)
	}
	if got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}
}
