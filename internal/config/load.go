package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load builds the effective configuration. Values from a config file
// override the defaults, CLI flags override both.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = locateConfig()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, err
		}
	}

	applyFlags(cfg)
	return cfg, nil
}

// loadFromFile overlays the YAML file at path onto cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// locateConfig checks the working directory first, then the per-user dir.
func locateConfig() string {
	for _, path := range []string{"config.yaml", filepath.Join(ConfigDir(), "config.yaml")} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user configuration directory for this OS.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "CryxtalCastor")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "CryxtalCastor")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "cryxtal-castor")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cryxtal-castor")
	}
}
