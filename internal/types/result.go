package types

import "github.com/mydehq/mediafilename/internal/filename"

// Pass identifies which correlation pass produced a rename.
type Pass int

const (
	// PassPrimary renames come from the file's own capture timestamp.
	PassPrimary Pass = 1
	// PassCompanion renames are borrowed from a primary file sharing the root.
	PassCompanion Pass = 2
)

func (p Pass) String() string {
	switch p {
	case PassPrimary:
		return "primary"
	case PassCompanion:
		return "companion"
	default:
		return "unknown"
	}
}

// RenameResult maps one original file to its generated name. NewFilename is a
// bare name; the file stays in its original directory.
type RenameResult struct {
	OriginalPath string
	NewFilename  string
	Pass         Pass
}

// NewFilenameRoot is NewFilename without its extension. The second value is
// false when the generated name cannot be parsed.
func (r RenameResult) NewFilenameRoot() (string, bool) {
	return filename.Root(r.NewFilename)
}

// SkipReason explains why a file produced no rename.
type SkipReason string

const (
	SkipUnparseable SkipReason = "unparseable filename"
	SkipUnreadable  SkipReason = "metadata unreadable"
	SkipNoMatch     SkipReason = "no matching master found"
)

// Skip records a file that was left untouched, with the error behind it.
type Skip struct {
	Path   string
	Reason SkipReason
	Err    error
}
