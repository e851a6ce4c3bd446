// Package postgres provides a PostgreSQL-backed KeyValueStore. Each
// logical key maps to one jsonb row; Set upserts whole documents.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/dlformula/assistant/config"
)

// DB wraps the sql.DB connection pool
type DB struct {
	*sql.DB
	logger *zap.Logger
}

// NewDB creates a new database connection pool
func NewDB(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		zap.String("connection", cfg.LogString()))

	return &DB{DB: db, logger: logger}, nil
}

// Close closes the database connection pool
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// Store implements repositories.KeyValueStore on PostgreSQL
type Store struct {
	db     *DB
	logger *zap.Logger
}

// NewStore creates a new PostgreSQL-backed store
func NewStore(db *DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// EnsureSchema creates the backing table when it does not exist
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_entries (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create kv_entries table: %w", err)
	}
	return nil
}

// Get returns the stored values for the requested keys
func (s *Store) Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error) {
	result := make(map[string]json.RawMessage, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	query := `SELECT key, value FROM kv_entries WHERE key = ANY($1)`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(keys))
	if err != nil {
		return nil, fmt.Errorf("failed to query kv entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan kv entry: %w", err)
		}
		result[key] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read kv entries: %w", err)
	}

	return result, nil
}

// Set upserts all given key/value pairs in one transaction
func (s *Store) Set(ctx context.Context, values map[string]json.RawMessage) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	for key, value := range values {
		if _, err := tx.ExecContext(ctx, query, key, []byte(value)); err != nil {
			return fmt.Errorf("failed to upsert kv entry %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit kv entries: %w", err)
	}

	s.logger.Debug("kv entries stored", zap.Int("count", len(values)))
	return nil
}

// Clear removes all stored values
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries`); err != nil {
		return fmt.Errorf("failed to clear kv entries: %w", err)
	}
	return nil
}
