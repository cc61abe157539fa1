package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".codecompanion", "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel=%q, want info", cfg.LogLevel)
	}
	if len(cfg.RootMarkers) == 0 {
		t.Error("RootMarkers should default to non-empty")
	}
	if cfg.RenderStyle != "dark" {
		t.Errorf("RenderStyle=%q, want dark", cfg.RenderStyle)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: debug\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel=%q, want debug", cfg.LogLevel)
	}
	if cfg.RenderStyle != "dark" {
		t.Errorf("RenderStyle=%q, want default dark", cfg.RenderStyle)
	}
	if len(cfg.RootMarkers) != 3 {
		t.Errorf("RootMarkers=%v, want defaults", cfg.RootMarkers)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: [unclosed\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error for malformed settings")
	}
}

func TestSettings_SaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".codecompanion")
	path := Path(dir)

	cfg := Default()
	cfg.LogLevel = "warn"
	cfg.RootMarkers = []string{".hg"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.LogLevel != "warn" {
		t.Errorf("LogLevel=%q, want warn", loaded.LogLevel)
	}
	if len(loaded.RootMarkers) != 1 || loaded.RootMarkers[0] != ".hg" {
		t.Errorf("RootMarkers=%v, want [.hg]", loaded.RootMarkers)
	}
}
