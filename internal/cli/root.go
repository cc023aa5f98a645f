// Package cli wires the cobra commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mydehq/mediafilename/internal/config"
	"github.com/mydehq/mediafilename/internal/tz"
	"github.com/mydehq/mediafilename/internal/types"
	"github.com/mydehq/mediafilename/internal/ui"
)

var (
	logger    = ui.NewLogger(os.Stderr, log.InfoLevel)
	globalCfg *types.GlobalConfig

	flagConfig   string
	flagLogLevel string
	flagVerbose  bool
	flagDryRun   bool
	flagSummary  bool
	flagApply    bool
	flagYes      bool
	flagWorkers  int
)

// RootCmd renames the media under a path for a timezone.
var RootCmd = &cobra.Command{
	Use:   "mediafilename <timezone> <path>",
	Short: "Generate timestamped names for photos and videos",
	Long: `Reads the capture time of every media file under <path>, converts it from
<timezone> to UTC and prints one mv command per file. Files without their own
capture time (RAW sidecars, XMP, etc.) follow the file sharing their name.

The commands are also written to a script in the working directory: the parent
of <path> when it is absolute, the current directory otherwise.`,
	Example: `  mediafilename UTC+2 /media/import/2015-10-rome
  mediafilename UTC-4:30 caracas --summary
  mediafilename zones`,
	Args:              validateRunArgs,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions{
			Code:    args[0],
			Target:  args[1],
			DryRun:  flagDryRun,
			Summary: flagSummary,
			Apply:   flagApply,
			Yes:     flagYes,
		}
		_, err := runRename(cmd.Context(), globalCfg, opts, defaultEnv())
		return err
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default $"+config.EnvPath+" or ~/.config/mediafilename/config.yml)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "shortcut for --log-level debug")

	f := RootCmd.Flags()
	f.BoolVarP(&flagDryRun, "dry-run", "n", false, "print the mv commands only; write no script, logs or history")
	f.BoolVarP(&flagSummary, "summary", "s", false, "print rename and skip tables when done")
	f.BoolVar(&flagApply, "apply", false, "perform the renames after writing the script")
	f.BoolVarP(&flagYes, "yes", "y", false, "do not ask before --apply")
	f.IntVarP(&flagWorkers, "workers", "w", 0, "parallel metadata reads (default from config)")
	RootCmd.MarkFlagsMutuallyExclusive("dry-run", "apply")
}

func validateRunArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return usageError{err: fmt.Errorf("expected <timezone> and <path>, got %d argument(s)", len(args)), zones: true}
	}
	if _, err := tz.ForCode(args[0]); err != nil {
		return usageError{err: err, zones: true}
	}
	return nil
}

// setup configures logging and loads the config for every command.
func setup(cmd *cobra.Command, args []string) error {
	level := flagLogLevel
	if flagVerbose {
		level = "debug"
	}
	lvl, err := ui.ParseLevel(level)
	if err != nil {
		return usageError{err: fmt.Errorf("invalid --log-level %q", level)}
	}
	logger.SetLevel(lvl)
	ui.SetLogger(logger)

	var cfg *types.GlobalConfig
	if flagConfig != "" {
		cfg, err = config.Load(flagConfig)
	} else {
		cfg, err = config.LoadGlobal()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("workers") {
		if flagWorkers < 1 {
			return usageError{err: fmt.Errorf("--workers must be at least 1, got %d", flagWorkers)}
		}
		cfg.Workers = flagWorkers
	}
	globalCfg = cfg
	return nil
}

// usageError marks errors caused by bad arguments. zones adds the list of
// accepted timezone codes to the usage message.
type usageError struct {
	err   error
	zones bool
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// zonesMessage lists every accepted timezone code.
func zonesMessage() string {
	return "Time zone can be any of: " + strings.Join(tz.Codes(), ", ")
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	err := RootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	logger.Error(err.Error())
	var usage usageError
	if errors.As(err, &usage) {
		fmt.Fprintln(os.Stderr, "Usage: "+RootCmd.UseLine())
		if usage.zones {
			fmt.Fprintln(os.Stderr, zonesMessage())
		}
		return 2
	}
	if errors.Is(err, types.ErrAlreadyRunning) {
		return 3
	}
	return 1
}
