package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound signals that the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrMissingRelation indicates a write without its required parent row.
	ErrMissingRelation = errors.New("missing related row")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping runs a trivial query to confirm the database answers.
func (s *Store) Ping(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// CountUsers returns the number of rows in the user table.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM "User"`)
}

// CountGroups returns the number of rows in the group table.
func (s *Store) CountGroups(ctx context.Context) (int64, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM "Group"`)
}

// CountArtists returns the number of rows in the artist table.
func (s *Store) CountArtists(ctx context.Context) (int64, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM "Artist"`)
}

// CountSongs returns the number of rows in the song table.
func (s *Store) CountSongs(ctx context.Context) (int64, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM "Song"`)
}

func (s *Store) count(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return n, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
