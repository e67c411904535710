package types

import (
	"path/filepath"
	"strings"
)

// Kind classifies a catalogued filesystem entry
type Kind string

const (
	// KindDirectory marks a directory entry
	KindDirectory Kind = "directory"
	// KindFile marks a file without an extension
	KindFile Kind = "file"
)

// Entry represents one catalogued filesystem object
type Entry struct {
	ID        int64 // Assigned by the store, zero before insert
	Name      string
	Path      string // Full path, unique within the index
	Kind      Kind
	IsDir     bool
	SizeBytes uint64 // Recursive file total for directories
}

// KindFor returns the kind recorded for a name.
// Files are classified by extension without the leading dot; dotfiles
// and names ending in a bare dot have no extension.
func KindFor(name string, isDir bool) Kind {
	if isDir {
		return KindDirectory
	}
	ext := filepath.Ext(name)
	if ext == "" || ext == name || ext == "." {
		return KindFile
	}
	return Kind(strings.TrimPrefix(ext, "."))
}

// Validate checks if the entry can be stored
func (e *Entry) Validate() error {
	if e.Path == "" {
		return ErrEmptyPath
	}
	if e.Name == "" {
		return ErrEmptyName
	}
	if e.Kind == "" {
		return ErrEmptyKind
	}
	return nil
}
