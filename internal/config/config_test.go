package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Locale != "en" {
		t.Errorf("Default().Locale = %q, want %q", cfg.Locale, "en")
	}
	if cfg.LogLevel != 0 {
		t.Errorf("Default().LogLevel = %d, want 0", cfg.LogLevel)
	}
}

func TestLoadWithNoFilesReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, sources, err := Load(dir, "", Config{}, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if sources.Project != "" {
		t.Errorf("Sources.Project = %q, want empty", sources.Project)
	}
	if cfg.WorkerPoolSize <= 0 {
		t.Errorf("WorkerPoolSize = %d, want > 0 (GOMAXPROCS fallback)", cfg.WorkerPoolSize)
	}
}

func TestLoadProjectConfigOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	content := `{
		// trailing comment, JSONC
		"log_level": 3,
		"locale": "de",
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, sources, err := Load(dir, "", Config{}, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != 3 {
		t.Errorf("LogLevel = %d, want 3", cfg.LogLevel)
	}
	if cfg.Locale != "de" {
		t.Errorf("Locale = %q, want %q", cfg.Locale, "de")
	}
	if sources.Project != path {
		t.Errorf("Sources.Project = %q, want %q", sources.Project, path)
	}
}

func TestLoadCLIOverrideWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(`{"locale": "de"}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, _, err := Load(dir, "", Config{Locale: "fr"}, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Locale != "fr" {
		t.Errorf("Locale = %q, want %q (CLI override)", cfg.Locale, "fr")
	}
}

func TestLoadExplicitMissingConfigFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Load(dir, "does-not-exist.json", Config{}, nil)
	if err == nil {
		t.Fatal("Load() with missing explicit config file: want error, got nil")
	}
}

func TestSaveAndReloadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	cfg := Config{LogLevel: 4, Locale: "ja", WorkerPoolSize: 8}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, _, err := Load(dir, "", Config{}, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.LogLevel != 4 || loaded.Locale != "ja" || loaded.WorkerPoolSize != 8 {
		t.Errorf("Load() after Save() = %+v, want LogLevel=4 Locale=ja WorkerPoolSize=8", loaded)
	}
}
