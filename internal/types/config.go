package types

// GlobalConfig represents the global configuration file (~/.config/mediafilename/config.yml)
type GlobalConfig struct {
	Exiftool       string            `yaml:"exiftool" toml:"exiftool"`                     // exiftool binary name or path
	Workers        int               `yaml:"workers" toml:"workers"`                       // Parallel metadata reads in the first pass
	TimeoutSeconds int               `yaml:"timeout_seconds" toml:"timeout_seconds"`       // Per-file exiftool timeout, 0 disables it
	LogFiles       bool              `yaml:"log_files" toml:"log_files"`                   // Write <base>.log and <base>_errors.log
	Journal        bool              `yaml:"journal" toml:"journal"`                       // Record runs in the history database
	StateDir       string            `yaml:"state_dir" toml:"state_dir"`                   // Holds the history database and run lock
	SkipHidden     bool              `yaml:"skip_hidden" toml:"skip_hidden"`               // Ignore dot-files while walking
	Profiles       map[string]string `yaml:"profiles,omitempty" toml:"profiles,omitempty"` // Extension -> metadata profile
}

// Clone returns a deep copy of the global configuration
func (g *GlobalConfig) Clone() GlobalConfig {
	res := *g
	if len(g.Profiles) > 0 {
		res.Profiles = make(map[string]string, len(g.Profiles))
		for ext, name := range g.Profiles {
			res.Profiles[ext] = name
		}
	}
	return res
}
