package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestLoadConfigEnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "books.db")
	t.Setenv("SHELF_CONFIG_PATH", t.TempDir())
	t.Setenv("SHELF_PATH", want)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BasePath() != want {
		t.Fatalf("expected %q, got %q", want, cfg.BasePath())
	}
}

func TestLoadConfigFileExpandsHome(t *testing.T) {
	home := t.TempDir()
	cfgDir := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELF_CONFIG_PATH", cfgDir)
	t.Setenv("SHELF_PATH", "")
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()

	if err := os.WriteFile(filepath.Join(cfgDir, ".shelf.yaml"), []byte("path: ~/library\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if want := filepath.Join(home, "library"); cfg.BasePath() != want {
		t.Fatalf("expected %q, got %q", want, cfg.BasePath())
	}
}
