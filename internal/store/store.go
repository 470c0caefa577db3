package store

import (
	"context"
	"errors"

	"github.com/shan145/event-management-client/internal/domain"
)

var ErrNotFound = errors.New("store: not found")

// Store is the local cache: a read-through mirror of server state plus the
// few things the client owns outright (UI prefs, the sealed session token,
// chat read cursors). Concrete drivers (sqlite) implement this. The server
// stays the source of truth; cached rows are replaced wholesale on refetch.
type Store interface {
	Groups() Groups
	Events() Events
	Messages() Messages
	Prefs() Prefs
	Sessions() Sessions

	ApplyMigrations() error

	// WithTx executes fn within a transaction, rolling back if fn errors
	// and committing otherwise. Multi-entity cache refreshes go through
	// here so a half-applied refetch never becomes visible.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying database.
	Close() error

	// Ping verifies the database is still reachable.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	Groups() Groups
	Events() Events
	Messages() Messages
	Prefs() Prefs
	Sessions() Sessions

	Commit() error
	Rollback() error
}

type Groups interface {
	// UpsertGroup inserts or replaces one cached group.
	UpsertGroup(ctx context.Context, g domain.Group) error

	// GetGroupByID returns a cached group.
	GetGroupByID(ctx context.Context, id string) (domain.Group, error)

	// ListGroups returns all cached groups ordered by name.
	ListGroups(ctx context.Context) ([]domain.Group, error)

	// ReplaceGroups swaps the whole cache for a fresh server snapshot.
	ReplaceGroups(ctx context.Context, groups []domain.Group) error

	// DeleteGroup drops one cached group.
	DeleteGroup(ctx context.Context, id string) error
}

type Events interface {
	UpsertEvent(ctx context.Context, e domain.Event) error
	GetEventByID(ctx context.Context, id string) (domain.Event, error)

	// ListEvents returns all cached events ordered by date then time.
	ListEvents(ctx context.Context) ([]domain.Event, error)

	// ListEventsByGroup returns the cached events one group owns.
	ListEventsByGroup(ctx context.Context, groupID string) ([]domain.Event, error)

	ReplaceEvents(ctx context.Context, events []domain.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

type Messages interface {
	// UpsertMessages merges a polled batch into the cache; existing ids
	// are replaced, so re-polling the same page is harmless.
	UpsertMessages(ctx context.Context, msgs []domain.Message) error

	// ListByEvent returns an event's cached messages ascending by
	// creation time.
	ListByEvent(ctx context.Context, eventID string) ([]domain.Message, error)

	// LastID returns the newest cached message id for an event, or ""
	// when none are cached. Used as the poll cursor.
	LastID(ctx context.Context, eventID string) (string, error)

	// SetLastSeen records the newest message the user has read, for
	// locally derived unread counts.
	SetLastSeen(ctx context.Context, eventID, messageID string) error
	GetLastSeen(ctx context.Context, eventID string) (string, error)

	// CountAfter counts an event's cached messages newer than the given
	// message id ("" counts all).
	CountAfter(ctx context.Context, eventID, messageID string) (int, error)

	DeleteByEvent(ctx context.Context, eventID string) error
}

// Prefs holds the two durable UI preferences: the last-active dashboard
// tab for the admin view and the user view. Plain integers, no schema
// versioning.
type Prefs interface {
	GetTabIndex(ctx context.Context, dashboard string) (int, error)
	SetTabIndex(ctx context.Context, dashboard string, index int) error
}

// Sessions persists the single sealed access token between CLI runs.
type Sessions interface {
	SaveToken(ctx context.Context, sealedToken string) error
	GetToken(ctx context.Context) (string, error)
	ClearToken(ctx context.Context) error
}
