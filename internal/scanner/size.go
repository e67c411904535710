package scanner

import (
	"io/fs"
	"path/filepath"
)

// DirSize returns the total length of every regular file under path.
// Directories contribute nothing of their own and unreadable entries are
// skipped, so the result is 0 for an empty or fully unreadable tree.
func DirSize(path string) uint64 {
	var total uint64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += uint64(info.Size())
		return nil
	})
	return total
}
