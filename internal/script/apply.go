package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mydehq/mediafilename/internal/types"
)

// Apply performs the renames directly. A destination that already exists is
// never overwritten; that rename fails and the rest still run. It returns the
// number of files renamed.
func Apply(results []types.RenameResult) (int, error) {
	var errs []error
	n := 0
	for _, r := range results {
		dst := filepath.Join(filepath.Dir(r.OriginalPath), r.NewFilename)
		if dst == r.OriginalPath {
			continue
		}
		if _, err := os.Lstat(dst); err == nil {
			errs = append(errs, fmt.Errorf("rename %s: destination %s exists", r.OriginalPath, dst))
			continue
		}
		if err := os.Rename(r.OriginalPath, dst); err != nil {
			errs = append(errs, err)
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}
