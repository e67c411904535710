package types

import "errors"

// Domain errors for type validation
var (
	// Entry errors
	ErrEmptyPath = errors.New("entry path cannot be empty")
	ErrEmptyName = errors.New("entry name cannot be empty")
	ErrEmptyKind = errors.New("entry kind cannot be empty")

	// Search result errors
	ErrInvalidEntryID    = errors.New("invalid entry ID")
	ErrInvalidRank       = errors.New("rank must be >= 1")
	ErrInvalidSimilarity = errors.New("similarity must be a number between -1 and 1")
)
