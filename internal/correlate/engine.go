// Package correlate runs the two-pass rename: files with a capture timestamp
// get a generated name, then files without one borrow the name of the first
// timestamped file sharing their filename root.
package correlate

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/mydehq/mediafilename/internal/filename"
	"github.com/mydehq/mediafilename/internal/index"
	"github.com/mydehq/mediafilename/internal/tz"
	"github.com/mydehq/mediafilename/internal/types"
)

// MetadataService reads capture timestamps. ok is false for formats it does
// not support or files without the tag; err is reserved for files that could
// not be read at all.
type MetadataService interface {
	CaptureTime(ctx context.Context, path string) (captured time.Time, ok bool, err error)
}

// Report is the outcome of a run.
type Report struct {
	Results []types.RenameResult // traversal order
	Skipped []types.Skip         // traversal order
}

// Primary counts first-pass renames.
func (r *Report) Primary() int {
	return r.count(types.PassPrimary)
}

// Companions counts second-pass renames.
func (r *Report) Companions() int {
	return r.count(types.PassCompanion)
}

func (r *Report) count(p types.Pass) int {
	n := 0
	for _, res := range r.Results {
		if res.Pass == p {
			n++
		}
	}
	return n
}

// Engine correlates a batch of paths. It holds no per-run state and can be
// reused.
type Engine struct {
	meta    MetadataService
	offset  tz.Offset
	workers int
	logger  *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers bounds the number of concurrent metadata reads in the first
// pass. Values below 2 keep the reads sequential.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithLogger sets the progress logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine generating names for offset.
func New(meta MetadataService, offset tz.Offset, opts ...Option) *Engine {
	e := &Engine{
		meta:    meta,
		offset:  offset,
		workers: 1,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// outcome of the first pass for one path.
type outcome struct {
	captured time.Time
	ok       bool
	err      error
}

type positioned struct {
	pos  int
	skip types.Skip
}

// Run processes paths in the given order. The first pass completes for every
// path before the second pass starts. Per-file failures are reported in the
// Report; only context cancellation aborts the run.
func (e *Engine) Run(ctx context.Context, paths []string) (*Report, error) {
	e.logger.Info("First pass: processing known extensions", "files", len(paths))
	outcomes, err := e.readAll(ctx, paths)
	if err != nil {
		return nil, err
	}

	var skips []positioned
	failed := make(map[string]bool)

	x := index.New(nil)
	for i, path := range paths {
		o := outcomes[i]
		switch {
		case o.err != nil:
			if !failed[path] {
				failed[path] = true
				skips = append(skips, positioned{i, types.Skip{Path: path, Reason: types.SkipUnreadable, Err: o.err}})
			}
			e.logger.Warn("File could not be read", "path", path, "err", o.err)
		case o.ok:
			newName := filename.Generate(o.captured, e.offset, filepath.Base(path))
			if x.Add(types.RenameResult{OriginalPath: path, NewFilename: newName, Pass: types.PassPrimary}) {
				e.logger.Info("Generated filename", "path", path, "captured", o.captured.Format(time.DateTime), "name", newName)
			}
		default:
			e.logger.Debug("No capture time, deferred to second pass", "path", path)
		}
	}

	e.logger.Info("Second pass: matching companion files")
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if failed[path] {
			continue
		}
		if _, done := x.ByPath(path); done {
			continue
		}
		result, skip := e.companion(x, path)
		if skip != nil {
			failed[path] = true
			skips = append(skips, positioned{i, *skip})
			continue
		}
		x.AddCompanion(result)
		e.logger.Info("Generated filename", "path", path, "name", result.NewFilename)
	}

	slices.SortStableFunc(skips, func(a, b positioned) int { return a.pos - b.pos })
	report := &Report{Results: x.Results()}
	for _, s := range skips {
		report.Skipped = append(report.Skipped, s.skip)
	}
	return report, nil
}

// companion derives a rename for path from the master sharing its root.
func (e *Engine) companion(x *index.Index, path string) (types.RenameResult, *types.Skip) {
	base := filepath.Base(path)
	parts, ok := filename.Split(base)
	if !ok {
		e.logger.Warn("Skipping file for which we could not determine base filename", "path", path)
		return types.RenameResult{}, &types.Skip{Path: path, Reason: types.SkipUnparseable, Err: types.ErrUnparseableFilename{Path: path}}
	}

	master, ok := x.ByRoot(parts.Root)
	if !ok {
		e.logger.Warn("No result found matching root", "root", parts.Root, "path", path)
		return types.RenameResult{}, &types.Skip{Path: path, Reason: types.SkipNoMatch, Err: types.ErrNoMatch{Path: path, Root: parts.Root}}
	}

	newRoot, ok := master.NewFilenameRoot()
	if !ok {
		e.logger.Warn("Master name cannot be split", "path", path, "master", master.NewFilename)
		return types.RenameResult{}, &types.Skip{Path: path, Reason: types.SkipUnparseable, Err: types.ErrUnparseableFilename{Path: master.NewFilename}}
	}
	e.logger.Debug("Found result matching root", "root", parts.Root, "master", master.NewFilename)

	return types.RenameResult{
		OriginalPath: path,
		NewFilename:  filename.Components{Root: newRoot, Ext: parts.Ext}.Join(),
		Pass:         types.PassCompanion,
	}, nil
}

// readAll queries the metadata service for every path. Results land in the
// slot matching the path's position so traversal order survives a parallel
// fan-out.
func (e *Engine) readAll(ctx context.Context, paths []string) ([]outcome, error) {
	outcomes := make([]outcome, len(paths))

	if e.workers < 2 {
		for i, path := range paths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			outcomes[i] = e.read(ctx, path)
		}
		return outcomes, ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = e.read(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (e *Engine) read(ctx context.Context, path string) outcome {
	captured, ok, err := e.meta.CaptureTime(ctx, path)
	if err != nil {
		var unreadable types.ErrMetadataUnreadable
		if !errors.As(err, &unreadable) {
			err = types.ErrMetadataUnreadable{Path: path, Err: err}
		}
		return outcome{err: err}
	}
	return outcome{captured: captured, ok: ok}
}
