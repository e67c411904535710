package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/findex/pkg/types"
)

// ErrRootNotFound is returned when the walk root does not exist
var ErrRootNotFound = errors.New("root path does not exist")

// WalkFunc receives each classified entry. Returning an error stops the walk.
type WalkFunc func(entry types.Entry) error

// WalkStats counts what a walk saw
type WalkStats struct {
	Visited    int // Entries passed to the WalkFunc
	Unreadable int // Entries skipped because they could not be read
	Unlistable int // Visited directories whose contents could not be listed
}

// Walk visits root and everything beneath it in lexical order.
// Directories are sized with DirSize, files with their own length.
// Errors from fn abort the walk and are returned unchanged.
func Walk(root string, fn WalkFunc) (WalkStats, error) {
	var stats WalkStats

	if _, err := os.Lstat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return stats, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return stats, fmt.Errorf("failed to access root %s: %w", root, err)
	}

	var lastDir string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// WalkDir reports a failed listing with a second call for a
			// directory it has already visited
			if path == lastDir {
				stats.Unlistable++
			} else {
				stats.Unreadable++
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			stats.Unreadable++
			return nil
		}

		entry := Classify(path, info)
		if entry.IsDir {
			entry.SizeBytes = DirSize(path)
			lastDir = path
		}

		stats.Visited++
		return fn(entry)
	})

	return stats, err
}

// Classify builds an entry from a path and its metadata.
// Directory sizes are left at zero for the caller to fill in.
func Classify(path string, info fs.FileInfo) types.Entry {
	isDir := info.IsDir()
	name := info.Name()

	entry := types.Entry{
		Name:  name,
		Path:  path,
		Kind:  types.KindFor(name, isDir),
		IsDir: isDir,
	}
	if !isDir && info.Size() > 0 {
		entry.SizeBytes = uint64(info.Size())
	}
	return entry
}
