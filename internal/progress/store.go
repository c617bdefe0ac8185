package progress

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// querier abstracts *sql.DB and *sql.Tx for shared query logic.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

// Store provides access to playback progress data.
type Store struct {
	db *sql.DB
}

// NewStore creates a new progress store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Begin starts a transaction.
func (s *Store) Begin() (*Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Tx wraps a database transaction with the same methods as Store.
type Tx struct {
	tx *sql.Tx
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction.
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// mapSQLiteError converts SQLite errors to custom error types.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	// modernc.org/sqlite wraps errors; check error message for constraint violations
	errStr := err.Error()
	if strings.Contains(errStr, "FOREIGN KEY constraint failed") ||
		strings.Contains(errStr, "CHECK constraint failed") {
		return ErrConstraint
	}
	return err
}

func upsert(q querier, r *Record) error {
	now := time.Now().UTC()
	_, err := q.Exec(`
		INSERT INTO watch_progress (user_id, item_id, position, duration, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, item_id) DO UPDATE SET
			position = excluded.position,
			duration = excluded.duration,
			updated_at = excluded.updated_at`,
		r.UserID, r.ItemID, r.Position, r.Duration, now,
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", mapSQLiteError(err))
	}
	r.UpdatedAt = now
	return nil
}

// Upsert records the playback position, replacing any previous one
// for the same user and item. Sets UpdatedAt on the struct.
func (s *Store) Upsert(r *Record) error { return upsert(s.db, r) }

// Upsert records the playback position within a transaction.
func (t *Tx) Upsert(r *Record) error { return upsert(t.tx, r) }

func get(q querier, userID, itemID string) (*Record, error) {
	r := &Record{}
	err := q.QueryRow(`
		SELECT user_id, item_id, position, duration, updated_at
		FROM watch_progress WHERE user_id = ? AND item_id = ?`,
		userID, itemID,
	).Scan(&r.UserID, &r.ItemID, &r.Position, &r.Duration, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get progress %s/%s: %w", userID, itemID, mapSQLiteError(err))
	}
	return r, nil
}

// Get retrieves the playback position for one item.
// Returns ErrNotFound if the user has no progress for it.
func (s *Store) Get(userID, itemID string) (*Record, error) { return get(s.db, userID, itemID) }

// Get retrieves the playback position within a transaction.
func (t *Tx) Get(userID, itemID string) (*Record, error) { return get(t.tx, userID, itemID) }

func listByUser(q querier, userID string) ([]*Record, error) {
	rows, err := q.Query(`
		SELECT user_id, item_id, position, duration, updated_at
		FROM watch_progress WHERE user_id = ?
		ORDER BY updated_at DESC, item_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", mapSQLiteError(err))
	}
	defer func() { _ = rows.Close() }()

	var results []*Record
	for rows.Next() {
		r := &Record{}
		if err := rows.Scan(&r.UserID, &r.ItemID, &r.Position, &r.Duration, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return results, nil
}

// ListByUser returns all progress records for a user, most recent first.
func (s *Store) ListByUser(userID string) ([]*Record, error) { return listByUser(s.db, userID) }

// ListByUser returns all progress records for a user within a transaction.
func (t *Tx) ListByUser(userID string) ([]*Record, error) { return listByUser(t.tx, userID) }

func deleteRecord(q querier, userID, itemID string) error {
	_, err := q.Exec("DELETE FROM watch_progress WHERE user_id = ? AND item_id = ?", userID, itemID)
	if err != nil {
		return fmt.Errorf("delete progress %s/%s: %w", userID, itemID, mapSQLiteError(err))
	}
	return nil
}

// Delete removes the progress record for one item.
// This operation is idempotent - no error is returned if none exists.
func (s *Store) Delete(userID, itemID string) error { return deleteRecord(s.db, userID, itemID) }

// Delete removes the progress record within a transaction.
func (t *Tx) Delete(userID, itemID string) error { return deleteRecord(t.tx, userID, itemID) }
