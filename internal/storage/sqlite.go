package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"math"
	"strings"
	"time"

	"github.com/dshills/findex/pkg/types"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db   *sql.DB
	lock *storeLock
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// One connection: the store has a single writer and no concurrent readers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA cache_size=10000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	return db, nil
}

// NewSQLiteStorage opens (creating if needed) the catalog at dbPath.
// File-backed stores hold an exclusive lock until Close; a second opener
// gets ErrStoreLocked.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	var lock *storeLock
	if !isMemoryPath(dbPath) {
		l, err := acquireStoreLock(dbPath)
		if err != nil {
			return nil, err
		}
		lock = l
	}

	db, err := openDatabase(dbPath)
	if err != nil {
		lock.release()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Apply migrations
	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		lock.release()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db, lock: lock}, nil
}

// Close closes the database connection and releases the store lock
func (s *SQLiteStorage) Close() error {
	err := s.db.Close()
	s.lock.release()
	return err
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx, storage: s}, nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// sqliteTx wraps a SQL transaction
type sqliteTx struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// querier returns the transaction querier
func (t *sqliteTx) querier() querier {
	return t.tx
}

// querier returns the DB querier
func (s *SQLiteStorage) querier() querier {
	return s.db
}

// Entry operations

const entryColumns = `id, name, path, kind, is_dir, size_bytes`

// insertEntryWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) insertEntryWithQuerier(ctx context.Context, q querier, entry *types.Entry) (bool, error) {
	if err := entry.Validate(); err != nil {
		return false, fmt.Errorf("invalid entry: %w", err)
	}

	query := `
		INSERT INTO items (name, path, kind, is_dir, size_bytes, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO NOTHING
	`
	result, err := q.ExecContext(ctx, query,
		entry.Name, entry.Path, string(entry.Kind), entry.IsDir,
		clampSize(entry.SizeBytes), time.Now().Unix())
	if err != nil {
		return false, fmt.Errorf("failed to insert entry %s: %w", entry.Path, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return false, err
	}
	entry.ID = id
	return true, nil
}

// InsertEntry stores entry unless its path is already catalogued.
// It reports whether a row was written and sets entry.ID when it was.
func (s *SQLiteStorage) InsertEntry(ctx context.Context, entry *types.Entry) (bool, error) {
	return s.insertEntryWithQuerier(ctx, s.querier(), entry)
}

// getEntryByPathWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getEntryByPathWithQuerier(ctx context.Context, q querier, path string) (*types.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM items WHERE path = ?`
	entry, err := scanEntry(q.QueryRowContext(ctx, query, path))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *SQLiteStorage) GetEntryByPath(ctx context.Context, path string) (*types.Entry, error) {
	return s.getEntryByPathWithQuerier(ctx, s.querier(), path)
}

// countEntriesWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) countEntriesWithQuerier(ctx context.Context, q querier) (int, error) {
	var count int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

func (s *SQLiteStorage) CountEntries(ctx context.Context) (int, error) {
	return s.countEntriesWithQuerier(ctx, s.querier())
}

// Scan operations

// allEntriesWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) allEntriesWithQuerier(ctx context.Context, q querier) iter.Seq2[types.Entry, error] {
	return queryEntries(ctx, q, `SELECT `+entryColumns+` FROM items ORDER BY id`)
}

// AllEntries yields every catalogued entry in insertion order
func (s *SQLiteStorage) AllEntries(ctx context.Context) iter.Seq2[types.Entry, error] {
	return s.allEntriesWithQuerier(ctx, s.querier())
}

// nonDirectoryEntriesWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) nonDirectoryEntriesWithQuerier(ctx context.Context, q querier) iter.Seq2[types.Entry, error] {
	return queryEntries(ctx, q, `SELECT `+entryColumns+` FROM items WHERE is_dir = 0 ORDER BY id`)
}

// NonDirectoryEntries yields every catalogued file in insertion order
func (s *SQLiteStorage) NonDirectoryEntries(ctx context.Context) iter.Seq2[types.Entry, error] {
	return s.nonDirectoryEntriesWithQuerier(ctx, s.querier())
}

// Status operations

// GetStatus returns catalog statistics
func (s *SQLiteStorage) GetStatus(ctx context.Context) (*Status, error) {
	return s.getStatusWithQuerier(ctx, s.querier())
}

// getStatusWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getStatusWithQuerier(ctx context.Context, q querier) (*Status, error) {
	status := &Status{}

	var dirs, files sql.NullInt64
	var totalBytes sql.NullInt64
	var lastIndexed sql.NullInt64
	err := q.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			SUM(CASE WHEN is_dir = 1 THEN 1 ELSE 0 END),
			SUM(CASE WHEN is_dir = 0 THEN 1 ELSE 0 END),
			SUM(CASE WHEN is_dir = 0 THEN size_bytes ELSE 0 END),
			MAX(indexed_at)
		FROM items
	`).Scan(&status.EntriesCount, &dirs, &files, &totalBytes, &lastIndexed)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog statistics: %w", err)
	}
	status.DirectoriesCount = int(dirs.Int64)
	status.FilesCount = int(files.Int64)
	if totalBytes.Int64 > 0 {
		status.TotalFileBytes = uint64(totalBytes.Int64)
	}
	if lastIndexed.Valid {
		status.LastIndexedAt = time.Unix(lastIndexed.Int64, 0)
	}

	// Get database size
	var pageCount, pageSize int64
	if err := q.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err != nil {
		return nil, fmt.Errorf("failed to read page count: %w", err)
	}
	if err := q.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err != nil {
		return nil, fmt.Errorf("failed to read page size: %w", err)
	}
	status.IndexSizeBytes = pageCount * pageSize

	version, err := currentSchemaVersion(ctx, q)
	if err != nil {
		return nil, err
	}
	status.SchemaVersion = version

	return status, nil
}

// Helper functions

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(r rowScanner) (types.Entry, error) {
	var e types.Entry
	var kind string
	var size int64
	if err := r.Scan(&e.ID, &e.Name, &e.Path, &kind, &e.IsDir, &size); err != nil {
		return types.Entry{}, err
	}
	e.Kind = types.Kind(kind)
	if size > 0 {
		e.SizeBytes = uint64(size)
	}
	return e, nil
}

// queryEntries returns a sequence that runs query when iterated.
// A query or scan failure is yielded once and ends the sequence.
func queryEntries(ctx context.Context, q querier, query string, args ...interface{}) iter.Seq2[types.Entry, error] {
	return func(yield func(types.Entry, error) bool) {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			yield(types.Entry{}, fmt.Errorf("failed to query entries: %w", err))
			return
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			entry, err := scanEntry(rows)
			if err != nil {
				yield(types.Entry{}, fmt.Errorf("failed to scan entry: %w", err))
				return
			}
			if !yield(entry, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(types.Entry{}, err)
		}
	}
}

// clampSize maps an unsigned size onto SQLite's signed integer column
func clampSize(size uint64) int64 {
	if size > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(size)
}

func isMemoryPath(dbPath string) bool {
	return dbPath == ":memory:" || strings.HasPrefix(dbPath, "file::memory:")
}

// Transaction implementations - reads and writes go through the tx querier

func (t *sqliteTx) InsertEntry(ctx context.Context, entry *types.Entry) (bool, error) {
	return t.storage.insertEntryWithQuerier(ctx, t.querier(), entry)
}

func (t *sqliteTx) GetEntryByPath(ctx context.Context, path string) (*types.Entry, error) {
	return t.storage.getEntryByPathWithQuerier(ctx, t.querier(), path)
}

func (t *sqliteTx) CountEntries(ctx context.Context) (int, error) {
	return t.storage.countEntriesWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) AllEntries(ctx context.Context) iter.Seq2[types.Entry, error] {
	return t.storage.allEntriesWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) NonDirectoryEntries(ctx context.Context) iter.Seq2[types.Entry, error] {
	return t.storage.nonDirectoryEntriesWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) GetStatus(ctx context.Context) (*Status, error) {
	return t.storage.getStatusWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) Close() error {
	// Transactions don't close the underlying connection
	return nil
}

func (t *sqliteTx) BeginTx(ctx context.Context) (Tx, error) {
	// SQLite does not support true nested transactions
	return nil, errors.New("nested transactions not supported")
}
