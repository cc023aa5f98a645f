// Package index keeps the renames produced during a run, addressable by the
// original path and by the filename root of the original path.
package index

import (
	"github.com/mydehq/mediafilename/internal/filename"
	"github.com/mydehq/mediafilename/internal/types"
)

// Index is an append-only log of renames with two lookup maps pointing into
// it. For both maps the first result stored under a key wins; later writes
// to the same key are ignored. Not safe for concurrent use.
type Index struct {
	entries []types.RenameResult
	byPath  map[string]int // original path -> entry
	byRoot  map[string]int // root of the original base name -> entry
}

// New indexes the primary results in the given order.
func New(primary []types.RenameResult) *Index {
	x := &Index{
		entries: make([]types.RenameResult, 0, len(primary)),
		byPath:  make(map[string]int, len(primary)),
		byRoot:  make(map[string]int, len(primary)),
	}
	for _, r := range primary {
		x.Add(r)
	}
	return x
}

// Add stores r under its path and its root. It returns false when the path
// was already present, in which case nothing changes.
// A path whose base name has no parseable root is stored by path only.
func (x *Index) Add(r types.RenameResult) bool {
	i, ok := x.insert(r)
	if !ok {
		return false
	}
	if root, ok := filename.BaseRoot(r.OriginalPath); ok {
		if _, taken := x.byRoot[root]; !taken {
			x.byRoot[root] = i
		}
	}
	return true
}

// AddCompanion stores r under its path only, so that derived renames never
// become masters for later lookups.
func (x *Index) AddCompanion(r types.RenameResult) bool {
	_, ok := x.insert(r)
	return ok
}

func (x *Index) insert(r types.RenameResult) (int, bool) {
	if _, exists := x.byPath[r.OriginalPath]; exists {
		return 0, false
	}
	x.entries = append(x.entries, r)
	i := len(x.entries) - 1
	x.byPath[r.OriginalPath] = i
	return i, true
}

// ByPath returns the rename recorded for an original path.
func (x *Index) ByPath(path string) (types.RenameResult, bool) {
	i, ok := x.byPath[path]
	if !ok {
		return types.RenameResult{}, false
	}
	return x.entries[i], true
}

// ByRoot returns the first primary rename whose original base name has root.
func (x *Index) ByRoot(root string) (types.RenameResult, bool) {
	i, ok := x.byRoot[root]
	if !ok {
		return types.RenameResult{}, false
	}
	return x.entries[i], true
}

// MatchRoot looks up the master for path by the root of its base name.
func (x *Index) MatchRoot(path string) (types.RenameResult, bool) {
	root, ok := filename.BaseRoot(path)
	if !ok {
		return types.RenameResult{}, false
	}
	return x.ByRoot(root)
}

// Len is the number of distinct paths stored.
func (x *Index) Len() int {
	return len(x.entries)
}

// Results returns every stored rename in insertion order.
func (x *Index) Results() []types.RenameResult {
	out := make([]types.RenameResult, len(x.entries))
	copy(out, x.entries)
	return out
}
