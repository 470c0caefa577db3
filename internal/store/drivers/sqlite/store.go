package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shan145/event-management-client/internal/store"

	_ "modernc.org/sqlite"
)

// dbtx covers both *sql.DB and *sql.Tx so one repo implementation serves
// plain and transactional access.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// The cache is accessed from the poller goroutine and the main flow;
	// a single connection sidesteps sqlite write contention.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database is still reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithTx executes fn within a transaction, automatically handling
// commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	wrapped := newTx(tx)

	// Rollback after commit is a no-op, so this is safe on every path.
	defer func() {
		_ = wrapped.Rollback()
	}()

	if err := fn(wrapped); err != nil {
		return err
	}
	return wrapped.Commit()
}

func (s *Store) Groups() store.Groups     { return &groupsRepo{db: s.db} }
func (s *Store) Events() store.Events     { return &eventsRepo{db: s.db} }
func (s *Store) Messages() store.Messages { return &messagesRepo{db: s.db} }
func (s *Store) Prefs() store.Prefs       { return &prefsRepo{db: s.db} }
func (s *Store) Sessions() store.Sessions { return &sessionsRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
