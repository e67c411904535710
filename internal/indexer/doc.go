// Package indexer records a directory tree in the catalog.
//
// Index walks the root with the scanner package and inserts one row per
// file or directory, all inside a single storage transaction:
//
//	idx := indexer.New(store, logger)
//	stats, err := idx.Index(ctx, "/home/me/Pictures", &indexer.Options{
//	    OnEntry: func(e types.Entry, inserted bool) {
//	        fmt.Printf("%9d\t%s\n", e.SizeBytes, e.Path)
//	    },
//	})
//
// Paths already in the catalog are skipped, so indexing the same root twice
// leaves the catalog unchanged. Entries the walk cannot read are counted in
// Statistics.Unreadable and otherwise ignored; a directory that is catalogued
// but cannot be listed counts once, in Statistics.Unlistable. A storage error aborts the run
// and rolls back every row written by it.
//
// An Indexer runs one Index at a time; a concurrent call returns
// ErrIndexingInProgress.
package indexer
