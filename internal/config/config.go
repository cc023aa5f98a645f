// Package config loads the global configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mydehq/mediafilename/internal/metadata"
	"github.com/mydehq/mediafilename/internal/types"
)

// EnvPath overrides the default config location.
const EnvPath = "MEDIAFILENAME_CONFIG"

// DefaultPath returns $MEDIAFILENAME_CONFIG or ~/.config/mediafilename/config.yml.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return expandPath(p)
	}
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, appName, "config.yml"), nil
	}
	return expandPath("~/.config/" + appName + "/config.yml")
}

// LoadGlobal loads the config from DefaultPath.
func LoadGlobal() (*types.GlobalConfig, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load reads path over the defaults. A missing file yields the defaults.
// Files ending in .toml are parsed as TOML, everything else as YAML.
func Load(path string) (*types.GlobalConfig, error) {
	cfg := GetDefaults()

	path, err := expandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := decode(path, data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if cfg.StateDir, err = expandPath(cfg.StateDir); err != nil {
		return nil, err
	}
	if cfg.Exiftool, err = expandBinary(cfg.Exiftool); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(path string, data []byte, cfg *types.GlobalConfig) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks values that would otherwise fail late in a run.
func Validate(cfg *types.GlobalConfig) error {
	if strings.TrimSpace(cfg.Exiftool) == "" {
		return errors.New("exiftool must not be empty")
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", cfg.TimeoutSeconds)
	}
	if strings.TrimSpace(cfg.StateDir) == "" {
		return errors.New("state_dir must not be empty")
	}
	if _, err := metadata.MergeProfiles(cfg.Profiles); err != nil {
		return err
	}
	return nil
}

// expandBinary expands ~ in a binary given as a path and leaves bare names
// for $PATH lookup.
func expandBinary(bin string) (string, error) {
	if !strings.ContainsRune(bin, filepath.Separator) && !strings.HasPrefix(bin, "~") {
		return bin, nil
	}
	return expandPath(bin)
}

func expandPath(p string) (string, error) {
	if p == "" {
		return p, nil
	}
	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if p == "~" {
			p = home
		} else if len(p) > 1 && (p[1] == '/' || p[1] == '\\') {
			p = filepath.Join(home, p[2:])
		}
	}
	abs, err := filepath.Abs(filepath.Clean(p))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", p, err)
	}
	return abs, nil
}
