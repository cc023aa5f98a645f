package types

import (
	"errors"
	"fmt"
)

// ErrUnknownOffset is returned for a timezone code outside the catalog.
type ErrUnknownOffset struct {
	Code string
}

func (e ErrUnknownOffset) Error() string {
	return fmt.Sprintf("unknown offset code: %q", e.Code)
}

// ErrUnparseableFilename is returned when a name cannot be split into root
// and extension.
type ErrUnparseableFilename struct {
	Path string
}

func (e ErrUnparseableFilename) Error() string {
	return fmt.Sprintf("cannot determine base filename: %s", e.Path)
}

// ErrMetadataUnreadable is returned when a file's bytes could not be read by
// the metadata tool.
type ErrMetadataUnreadable struct {
	Path string
	Err  error
}

func (e ErrMetadataUnreadable) Error() string {
	return fmt.Sprintf("file %s is unreadable: %v", e.Path, e.Err)
}

func (e ErrMetadataUnreadable) Unwrap() error {
	return e.Err
}

// ErrNoMatch is returned when a file without a timestamp shares its root
// with no primary file.
type ErrNoMatch struct {
	Path string
	Root string
}

func (e ErrNoMatch) Error() string {
	return fmt.Sprintf("no result found matching [%s] for %s", e.Root, e.Path)
}

// ErrAlreadyRunning is returned when another run holds the state lock.
var ErrAlreadyRunning = errors.New("another run is in progress")

// ErrUnknownProfile is returned for a metadata profile name that does not exist.
type ErrUnknownProfile struct {
	Extension string
	Name      string
}

func (e ErrUnknownProfile) Error() string {
	return fmt.Sprintf("unknown metadata profile %q for extension %q", e.Name, e.Extension)
}
