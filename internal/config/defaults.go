package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mydehq/mediafilename/internal/types"
)

const appName = "mediafilename"

// GetDefaults returns the configuration used when no file is present.
func GetDefaults() types.GlobalConfig {
	return types.GlobalConfig{
		Exiftool:       "exiftool",
		Workers:        1,
		TimeoutSeconds: 0,
		LogFiles:       true,
		Journal:        true,
		StateDir:       defaultStateDir(),
		SkipHidden:     false,
	}
}

func defaultStateDir() string {
	if base, ok := os.LookupEnv("XDG_STATE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".local", "state", appName)
}
