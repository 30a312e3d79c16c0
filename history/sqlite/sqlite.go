// Package sqlite implements the history store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/docuflow/docuflow/history"
)

// SqliteHistoryStore implements history.Store using SQLite.
type SqliteHistoryStore struct {
	db        *sql.DB
	tableName string
}

var _ history.Store = (*SqliteHistoryStore)(nil)

// SqliteOptions configuration for the SQLite connection.
type SqliteOptions struct {
	Path      string
	TableName string // Default "chat_history"
}

// NewSqliteHistoryStore opens the database and creates the schema.
func NewSqliteHistoryStore(opts SqliteOptions) (*SqliteHistoryStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "chat_history"
	}

	store := &SqliteHistoryStore{
		db:        db,
		tableName: tableName,
	}

	if err := store.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// InitSchema creates the history table if it doesn't exist.
func (s *SqliteHistoryStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			route TEXT NOT NULL,
			path_label TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_session_id ON %s (session_id);
	`, s.tableName, s.tableName, s.tableName)

	_, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SqliteHistoryStore) Close() error {
	return s.db.Close()
}

// Append stores a record.
func (s *SqliteHistoryStore) Append(ctx context.Context, record history.Record) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, session_id, question, answer, route, path_label, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			session_id = excluded.session_id,
			question = excluded.question,
			answer = excluded.answer,
			route = excluded.route,
			path_label = excluded.path_label,
			created_at = excluded.created_at
	`, s.tableName)

	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.SessionID,
		record.Question,
		record.Answer,
		record.Route,
		record.PathLabel,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}

	return nil
}

// List returns all records for a session, oldest first.
func (s *SqliteHistoryStore) List(ctx context.Context, sessionID string) ([]history.Record, error) {
	query := fmt.Sprintf(`
		SELECT id, session_id, question, answer, route, path_label, created_at
		FROM %s
		WHERE session_id = ?
		ORDER BY created_at ASC
	`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []history.Record
	for rows.Next() {
		var r history.Record
		err := rows.Scan(
			&r.ID,
			&r.SessionID,
			&r.Question,
			&r.Answer,
			&r.Route,
			&r.PathLabel,
			&r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", err)
	}

	return records, nil
}

// Clear removes all records for a session.
func (s *SqliteHistoryStore) Clear(ctx context.Context, sessionID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE session_id = ?", s.tableName)
	_, err := s.db.ExecContext(ctx, query, sessionID)
	if err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}
