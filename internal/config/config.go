// Package config loads memspy's runtime configuration: the scanner's
// address ceiling and worker pool size, the logging level and sink file,
// and the locale used for error-message lookup.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

var (
	ErrFileNotFound = errors.New("config file not found")
	ErrFileRead     = errors.New("cannot read config file")
	ErrInvalid      = errors.New("invalid config file")
)

// FileName is the default project-local config file name.
const FileName = ".memspy.json"

// Config holds every tunable memspy reads at startup.
type Config struct {
	AddressCeiling uint64 `json:"address_ceiling,omitempty"` //nolint:tagliatelle
	WorkerPoolSize int    `json:"worker_pool_size,omitempty"` //nolint:tagliatelle
	LogLevel       int    `json:"log_level,omitempty"`        //nolint:tagliatelle
	LogFile        string `json:"log_file,omitempty"`         //nolint:tagliatelle
	Locale         string `json:"locale,omitempty"`
}

// Sources records which files contributed to a loaded Config, for
// diagnostics. The memspyctl config command does not print it.
type Sources struct {
	Global  string
	Project string
}

// Default returns memspy's built-in defaults: no address ceiling override
// (the scanner falls back to its own 48-bit default), GOMAXPROCS workers,
// logging off, and the "en" locale.
func Default() Config {
	return Config{
		AddressCeiling: 0,
		WorkerPoolSize: 0,
		LogLevel:       0,
		LogFile:        "",
		Locale:         "en",
	}
}

// globalConfigPath returns $XDG_CONFIG_HOME/memspy/config.json, falling
// back to ~/.config/memspy/config.json. Returns "" if neither can be
// determined.
func globalConfigPath(env []string) string {
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "XDG_CONFIG_HOME="); ok {
			return filepath.Join(after, "memspy", "config.json")
		}
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "memspy", "config.json")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "memspy", "config.json")
}

// Load resolves a Config with the following precedence (highest wins):
//  1. Default()
//  2. global user config
//  3. project config file at workDir/.memspy.json, or an explicit file at
//     configPath if non-empty (which must then exist)
//  4. cliOverride, merged field-by-field wherever it is non-zero
func Load(workDir, configPath string, cliOverride Config, env []string) (Config, Sources, error) {
	cfg := Default()
	var sources Sources

	globalCfg, globalPath, err := loadGlobalConfig(env)
	if err != nil {
		return Config{}, Sources{}, err
	}
	sources.Global = globalPath
	cfg = merge(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, configPath)
	if err != nil {
		return Config{}, Sources{}, err
	}
	sources.Project = projectPath
	cfg = merge(cfg, projectCfg)

	cfg = merge(cfg, cliOverride)

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = runtime.GOMAXPROCS(0)
	}
	if cfg.Locale == "" {
		cfg.Locale = "en"
	}

	return cfg, sources, nil
}

func loadGlobalConfig(env []string) (Config, string, error) {
	path := globalConfigPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadConfigFile(path, false)
	if err != nil {
		return Config{}, "", err
	}
	if !loaded {
		return Config{}, "", nil
	}

	return cfg, path, nil
}

func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var file string
	var mustExist bool

	if configPath != "" {
		file = configPath
		if !filepath.IsAbs(file) {
			file = filepath.Join(workDir, file)
		}
		mustExist = true

		if _, err := os.Stat(file); err != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrFileNotFound, configPath)
		}
	} else {
		file = filepath.Join(workDir, FileName)
		mustExist = false
	}

	cfg, loaded, err := loadConfigFile(file, mustExist)
	if err != nil {
		return Config{}, "", err
	}
	if !loaded {
		return Config{}, "", nil
	}

	return cfg, file, nil
}

func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}
		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrFileRead, path)
		}
		return Config{}, false, nil
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrInvalid, path, err)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.AddressCeiling != 0 {
		base.AddressCeiling = overlay.AddressCeiling
	}
	if overlay.WorkerPoolSize != 0 {
		base.WorkerPoolSize = overlay.WorkerPoolSize
	}
	if overlay.LogLevel != 0 {
		base.LogLevel = overlay.LogLevel
	}
	if overlay.LogFile != "" {
		base.LogFile = overlay.LogFile
	}
	if overlay.Locale != "" {
		base.Locale = overlay.Locale
	}
	return base
}

// Format returns cfg as indented JSON, as printed by `memspyctl config`.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("formatting config: %w", err)
	}
	return string(data), nil
}

// Save writes cfg to path as indented JSON, replacing the file atomically
// so a crash mid-write never leaves a truncated config behind.
func Save(path string, cfg Config) error {
	data, err := Format(cfg)
	if err != nil {
		return err
	}

	if err := atomic.WriteFile(path, strings.NewReader(data)); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}

	return nil
}
