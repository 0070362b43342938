package highscore

import (
	"database/sql"
	"fmt"

	"github.com/feifei876/alien-invasion/internal/difficulty"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps one row per tier in a SQLite database.
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open high score db: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}

	_, err = conn.Exec(`CREATE TABLE IF NOT EXISTS high_scores (
		tier  TEXT PRIMARY KEY,
		score INTEGER NOT NULL DEFAULT 0
	)`)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate high score db: %w", err)
	}

	return &SQLiteStore{conn: conn}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// Load reads every known tier. Missing rows are zero; unknown tiers are ignored.
func (s *SQLiteStore) Load() (Table, error) {
	rows, err := s.conn.Query("SELECT tier, score FROM high_scores")
	if err != nil {
		return NewTable(), fmt.Errorf("query high scores: %w", err)
	}
	defer rows.Close()

	t := NewTable()
	for rows.Next() {
		var name string
		var score int
		if err := rows.Scan(&name, &score); err != nil {
			return NewTable(), fmt.Errorf("scan high score: %w", err)
		}
		if tier, ok := difficulty.ParseTier(name); ok {
			t[tier] = score
		}
	}
	if err := rows.Err(); err != nil {
		return NewTable(), fmt.Errorf("iterate high scores: %w", err)
	}
	return t.normalize(), nil
}

// Save writes every tier in a single transaction.
func (s *SQLiteStore) Save(t Table) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin high score tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO high_scores (tier, score) VALUES (?, ?)
		ON CONFLICT(tier) DO UPDATE SET score = excluded.score`)
	if err != nil {
		return fmt.Errorf("prepare high score upsert: %w", err)
	}
	defer stmt.Close()

	for tier, score := range t.normalize() {
		if _, err := stmt.Exec(string(tier), score); err != nil {
			return fmt.Errorf("save %s high score: %w", tier, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit high scores: %w", err)
	}
	return nil
}
