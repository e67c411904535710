package indexer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dshills/findex/internal/scanner"
	"github.com/dshills/findex/internal/storage"
	"github.com/dshills/findex/pkg/types"
)

// ErrIndexingInProgress is returned when Index is called while another run holds the lock
var ErrIndexingInProgress = errors.New("indexing already in progress")

// Indexer walks a directory tree and records every entry in the catalog
type Indexer struct {
	storage storage.Storage
	logger  *slog.Logger
	lock    IndexLock
}

// Options tunes a single Index run
type Options struct {
	// OnEntry is called after each entry is written (inserted=true) or found
	// already catalogued (inserted=false). It is for progress output only.
	OnEntry func(entry types.Entry, inserted bool)
}

// Statistics contains statistics about the indexing operation
type Statistics struct {
	Root             string
	EntriesProcessed int
	EntriesInserted  int
	EntriesSkipped   int // Already catalogued
	Unreadable       int
	Unlistable       int // Catalogued directories whose contents could not be read
	Duration         time.Duration
}

// New creates a new Indexer instance. A nil logger discards output.
func New(store storage.Storage, logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Indexer{
		storage: store,
		logger:  logger,
	}
}

// InProgress reports whether an Index run is currently holding the catalog
func (idx *Indexer) InProgress() bool {
	return idx.lock.Held()
}

// Index catalogs root and everything beneath it in one transaction.
// Entries already present (by path) are left untouched. On any storage
// failure the transaction is rolled back and nothing from this run is kept.
func (idx *Indexer) Index(ctx context.Context, root string, opts *Options) (*Statistics, error) {
	if !idx.lock.TryAcquire() {
		return nil, ErrIndexingInProgress
	}
	defer idx.lock.Release()

	if opts == nil {
		opts = &Options{}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	startTime := time.Now()
	stats := &Statistics{Root: absRoot}

	tx, err := idx.storage.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	walkStats, err := scanner.Walk(absRoot, func(entry types.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		inserted, err := tx.InsertEntry(ctx, &entry)
		if err != nil {
			return err
		}

		stats.EntriesProcessed++
		if inserted {
			stats.EntriesInserted++
		} else {
			stats.EntriesSkipped++
		}
		if opts.OnEntry != nil {
			opts.OnEntry(entry, inserted)
		}
		return nil
	})
	stats.Unreadable = walkStats.Unreadable
	stats.Unlistable = walkStats.Unlistable
	if err != nil {
		return nil, fmt.Errorf("failed to index %s: %w", absRoot, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit index of %s: %w", absRoot, err)
	}
	committed = true

	stats.Duration = time.Since(startTime)
	idx.logger.Info("indexed",
		"root", absRoot,
		"processed", stats.EntriesProcessed,
		"inserted", stats.EntriesInserted,
		"skipped", stats.EntriesSkipped,
		"unreadable", stats.Unreadable,
		"unlistable", stats.Unlistable,
		"duration", stats.Duration)

	return stats, nil
}
