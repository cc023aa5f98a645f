// Package metadata reads capture timestamps from media files using exiftool.
package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mydehq/mediafilename/internal/types"
)

const defaultBinary = "exiftool"

// queriedTags are requested on every call; profiles pick what they need.
var queriedTags = []string{"DateTimeOriginal", "CreationDate", "MediaCreateDate", "Make", "Model"}

// Tags holds the exiftool fields the profiles look at, flattened to strings.
type Tags struct {
	SourceFile       string
	DateTimeOriginal string
	CreationDate     string
	MediaCreateDate  string
	Make             string
	Model            string
}

// runFunc executes the binary and returns its stdout.
type runFunc func(ctx context.Context, binary string, args ...string) ([]byte, error)

// Exiftool is a MetadataService backed by the exiftool binary.
type Exiftool struct {
	binary   string
	timeout  time.Duration
	profiles map[string]Profile
	run      runFunc
}

// Option configures an Exiftool.
type Option func(*Exiftool)

// WithBinary overrides the exiftool executable.
func WithBinary(path string) Option {
	return func(x *Exiftool) {
		if path != "" {
			x.binary = path
		}
	}
}

// WithTimeout bounds each exiftool call. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(x *Exiftool) { x.timeout = d }
}

// WithProfiles replaces the extension dispatch table.
func WithProfiles(profiles map[string]Profile) Option {
	return func(x *Exiftool) { x.profiles = profiles }
}

// New returns an Exiftool using the built-in profile table.
func New(opts ...Option) *Exiftool {
	x := &Exiftool{
		binary:   defaultBinary,
		profiles: DefaultProfiles(),
		run:      execRun,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// IsAvailable returns true if the configured binary is found in $PATH.
func (x *Exiftool) IsAvailable() bool {
	_, err := exec.LookPath(x.binary)
	return err == nil
}

// Binary is the executable this service invokes.
func (x *Exiftool) Binary() string {
	return x.binary
}

// CaptureTime returns the local capture time recorded in path. Files whose
// extension has no profile are reported as unsupported without running
// exiftool.
func (x *Exiftool) CaptureTime(ctx context.Context, path string) (time.Time, bool, error) {
	profile, ok := x.profileFor(path)
	if !ok {
		return time.Time{}, false, nil
	}

	if _, err := os.Stat(path); err != nil {
		return time.Time{}, false, types.ErrMetadataUnreadable{Path: path, Err: err}
	}

	if x.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.timeout)
		defer cancel()
	}

	args := make([]string, 0, len(queriedTags)+3)
	args = append(args, "-json")
	for _, tag := range queriedTags {
		args = append(args, "-"+tag)
	}
	args = append(args, "--", path)

	out, err := x.run(ctx, x.binary, args...)
	if err != nil {
		return time.Time{}, false, types.ErrMetadataUnreadable{Path: path, Err: err}
	}

	tags, err := ParseJSON(out)
	if err != nil {
		return time.Time{}, false, types.ErrMetadataUnreadable{Path: path, Err: err}
	}
	if tags == nil {
		return time.Time{}, false, nil
	}
	return profile.extract(*tags)
}

func (x *Exiftool) profileFor(path string) (Profile, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "", false
	}
	p, ok := x.profiles[ext]
	return p, ok
}

// ParseJSON decodes `exiftool -json` output for a single file. It returns nil
// when exiftool reported no entry.
// Exported for testing without a real exiftool binary.
func ParseJSON(data []byte) (*Tags, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse exiftool JSON: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	e := entries[0]
	return &Tags{
		SourceFile:       str(e["SourceFile"]),
		DateTimeOriginal: str(e["DateTimeOriginal"]),
		CreationDate:     str(e["CreationDate"]),
		MediaCreateDate:  str(e["MediaCreateDate"]),
		Make:             str(e["Make"]),
		Model:            str(e["Model"]),
	}, nil
}

// str flattens a JSON value; exiftool emits numbers for some models.
func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func execRun(ctx context.Context, binary string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w\noutput: %s", binary, err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}
