package store

import (
	"context"
	"errors"
	"fmt"

	"standup-relay/internal/observability"

	_ "github.com/jackc/pgx/v5/stdlib" // Import the pgx stdlib for sqlx
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

// Driver names registered with database/sql
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

type Store struct {
	db     *sqlx.DB
	logger *observability.Logger
}

// New opens a connection pool for the given driver. Queries are written with
// '?' placeholders and rebound per driver.
func New(driver, dataSource string, logger *observability.Logger) (Store, error) {
	db, err := sqlx.Open(driver, dataSource)
	if err != nil {
		return Store{}, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if driver == DriverSQLite {
		// sqlite allows a single writer; in-memory databases also vanish per connection.
		db.SetMaxOpenConns(1)
	}
	return Store{db: db, logger: logger}, nil
}

// DB returns the underlying database connection
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the connection pool
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const sqlCreateStandupResponses = `
CREATE TABLE IF NOT EXISTS standup_responses (
	slack_user_id TEXT NOT NULL,
	date TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	UNIQUE (slack_user_id, date)
)`

const sqlCreateStandupTranscripts = `
CREATE TABLE IF NOT EXISTS standup_transcripts (
	id TEXT PRIMARY KEY,
	slack_user_id TEXT NOT NULL,
	date TEXT NOT NULL,
	conversation_id TEXT NOT NULL,
	transcript TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
)`

const sqlCreateStandupTranscriptsUserIndex = `
CREATE INDEX IF NOT EXISTS standup_transcripts_user_idx
	ON standup_transcripts (slack_user_id, created_at)`

// Migrate creates the tables this service owns when they do not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range []string{
		sqlCreateStandupResponses,
		sqlCreateStandupTranscripts,
		sqlCreateStandupTranscriptsUserIndex,
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			s.logger.Error(ctx, "failed to run migration", err)
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
