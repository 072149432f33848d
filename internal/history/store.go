package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one finished build.
type Entry struct {
	BuildID     string        `json:"build_id"`
	PackName    string        `json:"pack_name"`
	OK          bool          `json:"ok"`
	FinalState  string        `json:"final_state"`
	ArchivePath string        `json:"archive_path,omitempty"`
	Message     string        `json:"message,omitempty"`
	ErrorKind   string        `json:"error_kind,omitempty"`
	Skipped     int           `json:"skipped"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
}

// Store manages build history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// timeLayout has a fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const entryColumns = `build_id, pack_name, ok, final_state, archive_path, message,
    error_kind, skipped_count, started_at, duration_ms`

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record inserts or replaces the entry keyed by its build id.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if strings.TrimSpace(e.BuildID) == "" {
		return errors.New("history entry has no build id")
	}
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO builds (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.BuildID,
			e.PackName,
			boolToInt(e.OK),
			e.FinalState,
			nullableString(e.ArchivePath),
			nullableString(e.Message),
			nullableString(e.ErrorKind),
			e.Skipped,
			e.StartedAt.UTC().Format(timeLayout),
			e.Duration.Milliseconds(),
		)
		if err != nil {
			return fmt.Errorf("insert build: %w", err)
		}
		return nil
	})
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns every entry.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + entryColumns + ` FROM builds ORDER BY started_at DESC, build_id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate builds: %w", err)
	}
	return entries, nil
}

// Get returns the entry for buildID, or nil when none exists.
func (s *Store) Get(ctx context.Context, buildID string) (*Entry, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM builds WHERE build_id = ?`, buildID)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Prune deletes entries that started before cutoff and returns how many were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx = ensureContext(ctx)
	var removed int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM builds WHERE started_at < ?`, cutoff.UTC().Format(timeLayout))
		if err != nil {
			return fmt.Errorf("prune builds: %w", err)
		}
		removed, err = res.RowsAffected()
		return err
	})
	return removed, err
}
