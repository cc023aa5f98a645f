package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mydehq/mediafilename/internal/correlate"
	"github.com/mydehq/mediafilename/internal/finder"
	"github.com/mydehq/mediafilename/internal/journal"
	"github.com/mydehq/mediafilename/internal/metadata"
	"github.com/mydehq/mediafilename/internal/script"
	"github.com/mydehq/mediafilename/internal/types"
	"github.com/mydehq/mediafilename/internal/tz"
	"github.com/mydehq/mediafilename/internal/ui"
)

type runOptions struct {
	Code    string
	Target  string
	DryRun  bool
	Summary bool
	Apply   bool
	Yes     bool
}

// runEnv holds what a run takes from the process. Tests replace it.
type runEnv struct {
	stdout  io.Writer
	stderr  io.Writer
	meta    correlate.MetadataService // nil builds exiftool from the config
	now     func() time.Time
	cwd     func() (string, error)
	confirm func(title, description string) (bool, error)
	prompt  bool // a terminal is available for confirm
}

func defaultEnv() runEnv {
	return runEnv{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		now:     time.Now,
		cwd:     os.Getwd,
		confirm: ui.Confirm,
		prompt:  ui.Interactive(),
	}
}

func newExiftool(cfg *types.GlobalConfig) (*metadata.Exiftool, error) {
	profiles, err := metadata.MergeProfiles(cfg.Profiles)
	if err != nil {
		return nil, err
	}
	return metadata.New(
		metadata.WithBinary(cfg.Exiftool),
		metadata.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		metadata.WithProfiles(profiles),
	), nil
}

// runRename resolves every file under opts.Target and emits the mv commands.
// Unless DryRun is set it also writes the script, the run logs and the
// history entry.
func runRename(ctx context.Context, cfg *types.GlobalConfig, opts runOptions, env runEnv) (*correlate.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	offset, err := tz.ForCode(opts.Code)
	if err != nil {
		return nil, usageError{err: err, zones: true}
	}

	launched := env.now()
	cwd, err := env.cwd()
	if err != nil {
		return nil, fmt.Errorf("determine working directory: %w", err)
	}
	plan, err := script.NewPlan(opts.Target, offset, launched, cwd)
	if err != nil {
		return nil, usageError{err: err}
	}
	if _, err := os.Stat(plan.Target); err != nil {
		return nil, usageError{err: fmt.Errorf("target: %w", err)}
	}

	if opts.DryRun {
		logger.Info(ui.StyleFlag.Render("[DRY RUN]") + " " + ui.StyleDim.Render("no script, logs or history will be written"))
	}
	logger.Debug("Run plan", "target", plan.Target, "workdir", plan.WorkDir, "base", plan.Base)
	logger.Info(fmt.Sprintf("%s %s %s %s",
		ui.StyleHeader.Render("Processing"), ui.StylePath.Render(plan.Target),
		ui.StyleDim.Render("as"), ui.StyleOffset.Render("UTC"+offset.String())))

	meta := env.meta
	if meta == nil {
		x, err := newExiftool(cfg)
		if err != nil {
			return nil, err
		}
		if !x.IsAvailable() {
			return nil, fmt.Errorf("exiftool binary %q not found (see `mediafilename doctor`)", x.Binary())
		}
		meta = x
	}

	var runLog *ui.RunLog
	if !opts.DryRun {
		lock, err := script.AcquireLock(cfg.StateDir)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("Failed to release run lock", "path", lock.Path(), "err", err)
			}
		}()

		if cfg.LogFiles {
			runLog, err = ui.OpenRunLog(plan.LogPath(), plan.ErrorLogPath())
			if err != nil {
				return nil, err
			}
			defer runLog.Close()
		}
	}

	paths, err := finder.Find(plan.Target, finder.Options{
		SkipHidden: cfg.SkipHidden,
		OnError: func(path string, err error) {
			logger.Warn("Could not visit", "path", path, "err", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", plan.Target, err)
	}
	runLog.Start(plan.Target, plan.WorkDir, offset.String(), len(paths))

	engine := correlate.New(meta, offset,
		correlate.WithWorkers(cfg.Workers),
		correlate.WithLogger(logger),
	)
	report, err := engine.Run(ctx, paths)
	if err != nil {
		return nil, err
	}
	for _, r := range report.Results {
		runLog.Resolved(r)
	}
	for _, s := range report.Skipped {
		runLog.Skipped(s)
	}

	lines, err := plan.Lines(report.Results)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		fmt.Fprintln(env.stdout, l)
	}

	if !opts.DryRun {
		backup, err := plan.Save(lines, env.now())
		if err != nil {
			return nil, err
		}
		if backup != "" {
			logger.Info(fmt.Sprintf("%s: %s", ui.StyleHeader.Render("Previous script saved"), ui.StylePath.Render(backup)))
		}
		logger.Info(fmt.Sprintf("%s: %s", ui.StyleHeader.Render("Script written"), ui.StylePath.Render(plan.ScriptPath())))

		if cfg.Journal {
			if err := record(ctx, cfg, plan, opts.Code, report); err != nil {
				logger.Warn("Failed to record run history", "err", err)
			}
		}
	}

	if opts.Summary {
		fmt.Fprintln(env.stderr, ui.ResultsTable(report.Results))
		if len(report.Skipped) > 0 {
			fmt.Fprintln(env.stderr, ui.SkipsTable(report.Skipped))
		}
	}

	logger.Info("Done",
		"renamed", len(report.Results),
		"primary", report.Primary(),
		"companions", report.Companions(),
		"skipped", len(report.Skipped))

	if opts.Apply && !opts.DryRun {
		if err := apply(report.Results, opts.Yes, env); err != nil {
			return report, err
		}
	}
	return report, nil
}

func record(ctx context.Context, cfg *types.GlobalConfig, plan script.Plan, code string, report *correlate.Report) error {
	store, err := journal.Open(ctx, cfg.StateDir)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Record(ctx, journal.Run{
		StartedAt:  plan.Launched,
		OffsetCode: code,
		Offset:     plan.Offset.String(),
		Target:     plan.Target,
		Script:     plan.ScriptPath(),
	}, report.Results, report.Skipped)
	if err != nil {
		return err
	}
	logger.Debug("Run recorded", "id", run.ID, "db", store.Path())
	return nil
}

func apply(results []types.RenameResult, yes bool, env runEnv) error {
	if len(results) == 0 {
		return nil
	}
	if !yes {
		if !env.prompt {
			return usageError{err: errors.New("--apply needs a terminal to confirm; pass --yes to skip the prompt")}
		}
		ok, err := env.confirm(
			fmt.Sprintf("Rename %d file(s)?", len(results)),
			"Files are renamed in place. Existing files are never overwritten.",
		)
		if err != nil && !errors.Is(err, ui.ErrCancelled) {
			return err
		}
		if !ok {
			logger.Info(ui.StyleDim.Render("Apply cancelled"))
			return nil
		}
	}

	n, err := script.Apply(results)
	logger.Info(fmt.Sprintf("%s: %d of %d", ui.StyleHeader.Render("Renamed"), n, len(results)))
	return err
}
