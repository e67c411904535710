// Package storage provides SQLite-based persistence for the file catalog.
//
// # Database Schema
//
// Tables:
//   - schema_version: Applied migration versions (semver)
//   - items: One row per catalogued file or directory, unique by path
//
// # Basic Usage
//
//	store, err := storage.NewSQLiteStorage("~/.findex/findex.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	inserted, err := store.InsertEntry(ctx, &types.Entry{
//	    Name: "report.pdf",
//	    Path: "/home/me/report.pdf",
//	    Kind: "pdf",
//	})
//
// InsertEntry never creates a second row for a path already in the catalog;
// it returns false instead.
//
// # Transactions
//
// Indexing writes a whole scan inside one transaction so a failure leaves
// the catalog untouched:
//
//	tx, err := store.BeginTx(ctx)
//	if err != nil {
//	    return err
//	}
//	defer tx.Rollback()
//
//	for _, e := range entries {
//	    if _, err := tx.InsertEntry(ctx, &e); err != nil {
//	        return err
//	    }
//	}
//	return tx.Commit()
//
// # Scanning
//
// AllEntries and NonDirectoryEntries return lazy sequences. The store keeps a
// single connection, so finish (or break out of) an iteration before issuing
// another query on the same store:
//
//	for entry, err := range store.AllEntries(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(entry.Path)
//	}
//
// # Locking
//
// A file-backed store holds an exclusive lock on "<db>.lock" from
// NewSQLiteStorage until Close. Opening the same catalog from a second
// process fails with ErrStoreLocked.
//
// # Build Tags
//
// Pure Go build (default):
//
//   - Uses modernc.org/sqlite
//
//   - No C compiler needed
//
//     CGO_ENABLED=0 go build ./...
//
// CGO build (sqlite_cgo tag):
//
//   - Uses github.com/mattn/go-sqlite3
//
//     CGO_ENABLED=1 go build -tags "sqlite_cgo" ./...
package storage
