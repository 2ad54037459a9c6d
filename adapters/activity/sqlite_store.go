package activity

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/layer-3/tokenasset/core"
	"github.com/layer-3/tokenasset/ports"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements ActivityStore using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the journal at dbPath
func NewSQLiteStore(dbPath string) (ports.ActivityStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single writer keeps SQLITE_BUSY away
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS activity (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		username TEXT NOT NULL,
		kind TEXT NOT NULL,
		reference TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_activity_user ON activity(user_id, created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Record appends an activity row and fills in its ID
func (s *SQLiteStore) Record(ctx context.Context, a *core.Activity) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO activity (user_id, username, kind, reference, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.UserID, a.Username, string(a.Kind), a.Reference, a.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("activity id: %w", err)
	}
	a.ID = id
	return nil
}

// Recent returns the user's latest activity, newest first
func (s *SQLiteStore) Recent(ctx context.Context, userID int64, limit int) ([]core.Activity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, username, kind, reference, created_at
		FROM activity WHERE user_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	out := []core.Activity{}
	for rows.Next() {
		var a core.Activity
		var kind string
		var createdAt int64
		if err := rows.Scan(&a.ID, &a.UserID, &a.Username, &kind, &a.Reference, &createdAt); err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		a.Kind = core.ActivityKind(kind)
		a.CreatedAt = time.UnixMilli(createdAt)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return out, nil
}

// CountExchanged counts accepted offers and trades for the user
func (s *SQLiteStore) CountExchanged(ctx context.Context, userID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM activity WHERE user_id = ? AND kind IN (?, ?)`,
		userID, string(core.ActivityAcceptOffer), string(core.ActivityTrade),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count exchanged: %w", err)
	}
	return n, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
