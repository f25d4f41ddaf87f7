package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WebPort != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.WebPort)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.LogLevel)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	want := Config{DBPath: "/tmp/x.db", WebEnabled: true, WebPort: 9090, LogLevel: "debug", LogPath: "/tmp/x.log"}

	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApplyDefaultsDerivesPaths(t *testing.T) {
	cfg := ApplyDefaults(Config{}, filepath.Join("/home/me/.config/dailytodo", "config.json"))
	if cfg.DBPath != filepath.Join("/home/me/.config/dailytodo", "dailytodo.db") {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
	if cfg.LogPath != filepath.Join("/home/me/.config/dailytodo", "dailytodo.log") {
		t.Fatalf("unexpected log path %q", cfg.LogPath)
	}
	if cfg.WebPort != 8080 || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}
