package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mydehq/mediafilename/internal/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/var/state")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := GetDefaults()
	if diff := cmp.Diff(&want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if cfg.StateDir != "/var/state/mediafilename" {
		t.Errorf("StateDir = %q", cfg.StateDir)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "config.yml", `
exiftool: /opt/exiftool/exiftool
workers: 4
timeout_seconds: 30
journal: false
state_dir: /tmp/mf-state
profiles:
  cr2: exif
  mp4: quicktime
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := types.GlobalConfig{
		Exiftool:       "/opt/exiftool/exiftool",
		Workers:        4,
		TimeoutSeconds: 30,
		LogFiles:       true,
		Journal:        false,
		StateDir:       "/tmp/mf-state",
		Profiles:       map[string]string{"cr2": "exif", "mp4": "quicktime"},
	}
	if diff := cmp.Diff(&want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
workers = 2
skip_hidden = true
log_files = false
state_dir = "/tmp/mf-state"

[profiles]
heic = "exif"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Workers != 2 || !cfg.SkipHidden || cfg.LogFiles || !cfg.Journal || cfg.Exiftool != "exiftool" {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Profiles["heic"] != "exif" {
		t.Errorf("Profiles = %v", cfg.Profiles)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yml", "\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Workers != 1 || !cfg.LogFiles {
		t.Errorf("Load() = %+v; want defaults", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"BadYAML", "config.yml", "workers: [", "parse config"},
		{"BadTOML", "config.toml", "workers = ", "parse config"},
		{"ZeroWorkers", "config.yml", "workers: 0", "workers must be at least 1"},
		{"NegativeTimeout", "config.yml", "timeout_seconds: -1", "timeout_seconds"},
		{"EmptyExiftool", "config.yml", `exiftool: ""`, "exiftool must not be empty"},
		{"UnknownProfile", "config.yml", "profiles:\n  heic: magic\n", "magic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v; want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_UnknownProfileIsTyped(t *testing.T) {
	cfg := GetDefaults()
	cfg.Profiles = map[string]string{"heic": "magic"}
	var unknown types.ErrUnknownProfile
	if err := Validate(&cfg); !errors.As(err, &unknown) {
		t.Errorf("Validate() error = %v; want ErrUnknownProfile", err)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", "/etc/xdg-home")
	got, err := DefaultPath()
	if err != nil || got != "/etc/xdg-home/mediafilename/config.yml" {
		t.Errorf("DefaultPath() = (%q, %v)", got, err)
	}

	t.Setenv(EnvPath, "/srv/mf.toml")
	got, err = DefaultPath()
	if err != nil || got != "/srv/mf.toml" {
		t.Errorf("DefaultPath() with %s = (%q, %v)", EnvPath, got, err)
	}
}

func TestClone(t *testing.T) {
	cfg := GetDefaults()
	cfg.Profiles = map[string]string{"cr2": "exif"}
	c := cfg.Clone()
	c.Profiles["cr2"] = "quicktime"
	if cfg.Profiles["cr2"] != "exif" {
		t.Error("Clone() shares the profiles map")
	}
}
