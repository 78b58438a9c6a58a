package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

// pointXDGAt redirects XDG_CONFIG_HOME to dir for the duration of the test.
// The xdg package caches its paths at init, so it must be reloaded both on
// the way in and on the way out.
func pointXDGAt(t *testing.T, dir string) {
	t.Helper()
	// Registered before Setenv so it runs after the env restore (LIFO).
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
}

func TestConfigPath(t *testing.T) {
	dir := t.TempDir()
	pointXDGAt(t, dir)

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath returned error: %v", err)
	}

	want := filepath.Join(dir, APP_NAME, "config.yaml")
	if path != want {
		t.Errorf("ConfigPath = %q, want %q", path, want)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	pointXDGAt(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with no config file returned error: %v", err)
	}

	defaults := DefaultConfig()
	if cfg.DimensionsDir != defaults.DimensionsDir {
		t.Errorf("DimensionsDir = %q, want default %q", cfg.DimensionsDir, defaults.DimensionsDir)
	}
	if cfg.LogLevel != defaults.LogLevel {
		t.Errorf("LogLevel = %q, want default %q", cfg.LogLevel, defaults.LogLevel)
	}
	if cfg.Version != defaults.Version {
		t.Errorf("Version = %q, want default %q", cfg.Version, defaults.Version)
	}
}

func TestSaveToAndLoadFrom_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := Config{
		DimensionsDir: "/srv/dimensions",
		SkipSuffixes:  []string{".generated.go", ".min.js"},
		LogLevel:      "debug",
		Version:       "1.0",
	}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file permissions = %o, want 600", perm)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}

	if loaded.DimensionsDir != cfg.DimensionsDir {
		t.Errorf("DimensionsDir = %q, want %q", loaded.DimensionsDir, cfg.DimensionsDir)
	}
	if len(loaded.SkipSuffixes) != 2 || loaded.SkipSuffixes[0] != ".generated.go" {
		t.Errorf("SkipSuffixes = %v, want %v", loaded.SkipSuffixes, cfg.SkipSuffixes)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", loaded.LogLevel)
	}
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("log_level: debug\n"), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.DimensionsDir != DefaultConfig().DimensionsDir {
		t.Errorf("DimensionsDir = %q, want default to survive partial config", cfg.DimensionsDir)
	}
}

func TestLoadFrom_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("log_level: [unclosed\n"), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("Expected LoadFrom to reject malformed YAML")
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	pointXDGAt(t, dir)

	path, exists := FindConfigFile()
	if exists {
		t.Fatalf("FindConfigFile reported existing config in empty dir %q", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("version: \"1.0\"\n"), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	found, exists := FindConfigFile()
	if !exists {
		t.Error("FindConfigFile did not report the written config")
	}
	if found != path {
		t.Errorf("FindConfigFile = %q, want %q", found, path)
	}
}
