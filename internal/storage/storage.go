package storage

import (
	"context"
	"iter"
	"time"

	"github.com/dshills/findex/pkg/types"
)

// Storage defines the interface for persisting and querying catalogued entries
type Storage interface {
	// Entry operations
	InsertEntry(ctx context.Context, entry *types.Entry) (bool, error)
	GetEntryByPath(ctx context.Context, path string) (*types.Entry, error)
	CountEntries(ctx context.Context) (int, error)

	// Scan operations. Each returned sequence runs its query when iterated
	// and holds the connection until iteration finishes.
	AllEntries(ctx context.Context) iter.Seq2[types.Entry, error]
	NonDirectoryEntries(ctx context.Context) iter.Seq2[types.Entry, error]

	// Status operations
	GetStatus(ctx context.Context) (*Status, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction
type Tx interface {
	Commit() error
	Rollback() error
	Storage // Embed Storage interface for transaction operations
}

// Status contains statistics about the catalog
type Status struct {
	EntriesCount     int
	DirectoriesCount int
	FilesCount       int
	TotalFileBytes   uint64 // Sum of non-directory sizes
	IndexSizeBytes   int64  // Database size on disk
	SchemaVersion    string
	LastIndexedAt    time.Time // Zero when nothing has been indexed
}
