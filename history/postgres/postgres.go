// Package postgres implements the history store on PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docuflow/docuflow/history"
)

// DBPool defines the interface for the database connection pool.
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresHistoryStore implements history.Store using PostgreSQL.
type PostgresHistoryStore struct {
	pool      DBPool
	tableName string
}

var _ history.Store = (*PostgresHistoryStore)(nil)

// PostgresOptions configuration for the Postgres connection.
type PostgresOptions struct {
	ConnString string
	TableName  string // Default "chat_history"
}

// NewPostgresHistoryStore creates a store backed by a new connection pool.
func NewPostgresHistoryStore(ctx context.Context, opts PostgresOptions) (*PostgresHistoryStore, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "chat_history"
	}

	return &PostgresHistoryStore{
		pool:      pool,
		tableName: tableName,
	}, nil
}

// NewPostgresHistoryStoreWithPool creates a store with an existing pool.
// Useful for testing with mocks.
func NewPostgresHistoryStoreWithPool(pool DBPool, tableName string) *PostgresHistoryStore {
	if tableName == "" {
		tableName = "chat_history"
	}
	return &PostgresHistoryStore{
		pool:      pool,
		tableName: tableName,
	}
}

// InitSchema creates the history table if it doesn't exist.
func (s *PostgresHistoryStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			route TEXT NOT NULL,
			path_label TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_session_id ON %s (session_id);
	`, s.tableName, s.tableName, s.tableName)

	_, err := s.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresHistoryStore) Close() {
	s.pool.Close()
}

// Append stores a record.
func (s *PostgresHistoryStore) Append(ctx context.Context, record history.Record) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, session_id, question, answer, route, path_label, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			session_id = EXCLUDED.session_id,
			question = EXCLUDED.question,
			answer = EXCLUDED.answer,
			route = EXCLUDED.route,
			path_label = EXCLUDED.path_label,
			created_at = EXCLUDED.created_at
	`, s.tableName)

	_, err := s.pool.Exec(ctx, query,
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
func (s *PostgresHistoryStore) List(ctx context.Context, sessionID string) ([]history.Record, error) {
	query := fmt.Sprintf(`
		SELECT id, session_id, question, answer, route, path_label, created_at
		FROM %s
		WHERE session_id = $1
		ORDER BY created_at ASC
	`, s.tableName)

	rows, err := s.pool.Query(ctx, query, sessionID)
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
func (s *PostgresHistoryStore) Clear(ctx context.Context, sessionID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE session_id = $1", s.tableName)
	_, err := s.pool.Exec(ctx, query, sessionID)
	if err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}
