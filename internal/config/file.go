package config

// Optional TOML config file support. The file is decoded directly over the
// default-initialized Config, so keys absent from the file keep their
// defaults and CLI flags (applied afterwards) still win.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigPathEnv overrides the default config file location when set.
const ConfigPathEnv = "LOUDMASTER_CONFIG"

// ResolveConfigPath returns the config file path to use: $LOUDMASTER_CONFIG
// when set, otherwise ~/.config/loudmaster/config.toml.
func ResolveConfigPath() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "loudmaster", "config.toml")
}

// LoadFile overlays cfg with values from the resolved config file. A missing
// file is not an error (the defaults stand); a malformed file is, so a typo
// never silently reverts a user to defaults.
func LoadFile(cfg *Config) error {
	path := ResolveConfigPath()
	if path == "" {
		return nil
	}
	return LoadFileFrom(cfg, path)
}

// LoadFileFrom decodes the TOML file at path over cfg. Exported separately
// so tests can point at a temp file without touching the environment.
func LoadFileFrom(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
