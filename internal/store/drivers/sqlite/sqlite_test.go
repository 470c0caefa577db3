package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shan145/event-management-client/internal/domain"
	"github.com/shan145/event-management-client/internal/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestGroupsRepo(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	group := domain.Group{
		ID:          "grp-1",
		Name:        "Hiking Club",
		Tags:        []string{"outdoors"},
		MainAdminID: "main",
		GroupAdmins: []string{"ga"},
		Members:     []string{"main", "ga", "alice"},
		InviteToken: "tok-abc",
	}

	t.Run("upsert and get round-trip", func(t *testing.T) {
		require.NoError(t, s.Groups().UpsertGroup(ctx, group))

		got, err := s.Groups().GetGroupByID(ctx, "grp-1")
		require.NoError(t, err)
		require.Equal(t, group.Name, got.Name)
		require.Equal(t, group.MainAdminID, got.MainAdminID)
		require.Equal(t, group.GroupAdmins, got.GroupAdmins)
		require.Equal(t, group.Members, got.Members)
		require.Equal(t, group.Tags, got.Tags)
		require.Equal(t, group.InviteToken, got.InviteToken)
	})

	t.Run("upsert overwrites", func(t *testing.T) {
		updated := group
		updated.Name = "Hiking & Climbing"
		updated.Members = []string{"main"}
		require.NoError(t, s.Groups().UpsertGroup(ctx, updated))

		got, err := s.Groups().GetGroupByID(ctx, "grp-1")
		require.NoError(t, err)
		require.Equal(t, "Hiking & Climbing", got.Name)
		require.Equal(t, []string{"main"}, got.Members)
	})

	t.Run("missing group maps to ErrNotFound", func(t *testing.T) {
		_, err := s.Groups().GetGroupByID(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("replace swaps the full set", func(t *testing.T) {
		fresh := domain.Group{ID: "grp-2", Name: "Book Club", MainAdminID: "main"}
		require.NoError(t, s.Groups().ReplaceGroups(ctx, []domain.Group{fresh}))

		groups, err := s.Groups().ListGroups(ctx)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		require.Equal(t, "grp-2", groups[0].ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Groups().DeleteGroup(ctx, "grp-2"))
		_, err := s.Groups().GetGroupByID(ctx, "grp-2")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestEventsRepo(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	capacity := 10
	event := domain.Event{
		ID:           "evt-1",
		GroupID:      "grp-1",
		Title:        "Saturday Hike",
		Description:  "bring water",
		Date:         "2026-09-05",
		Time:         "09:00",
		Location:     "Trailhead",
		MaxAttendees: &capacity,
		Guests:       2,
		GoingList:    []string{"alice"},
		Waitlist:     []string{"bob"},
		NoGoList:     []string{"carol"},
	}

	t.Run("round-trip preserves lists and capacity", func(t *testing.T) {
		require.NoError(t, s.Events().UpsertEvent(ctx, event))

		got, err := s.Events().GetEventByID(ctx, "evt-1")
		require.NoError(t, err)
		require.Equal(t, event.Title, got.Title)
		require.Equal(t, event.Date, got.Date)
		require.Equal(t, event.Time, got.Time)
		require.NotNil(t, got.MaxAttendees)
		require.Equal(t, 10, *got.MaxAttendees)
		require.Equal(t, 2, got.Guests)
		require.Equal(t, []string{"alice"}, got.GoingList)
		require.Equal(t, []string{"bob"}, got.Waitlist)
		require.Equal(t, []string{"carol"}, got.NoGoList)
	})

	t.Run("uncapped events keep a nil max", func(t *testing.T) {
		uncapped := domain.Event{ID: "evt-2", GroupID: "grp-1", Title: "Picnic", Date: "2026-09-06", Time: "12:00"}
		require.NoError(t, s.Events().UpsertEvent(ctx, uncapped))

		got, err := s.Events().GetEventByID(ctx, "evt-2")
		require.NoError(t, err)
		require.Nil(t, got.MaxAttendees)
		require.False(t, got.IsFull())
	})

	t.Run("list by group", func(t *testing.T) {
		other := domain.Event{ID: "evt-3", GroupID: "grp-9", Title: "Elsewhere", Date: "2026-09-07", Time: "10:00"}
		require.NoError(t, s.Events().UpsertEvent(ctx, other))

		events, err := s.Events().ListEventsByGroup(ctx, "grp-1")
		require.NoError(t, err)
		require.Len(t, events, 2)
		for _, e := range events {
			require.Equal(t, "grp-1", e.GroupID)
		}
	})

	t.Run("list orders by date then time", func(t *testing.T) {
		events, err := s.Events().ListEvents(ctx)
		require.NoError(t, err)
		require.Len(t, events, 3)
		require.Equal(t, "evt-1", events[0].ID)
		require.Equal(t, "evt-2", events[1].ID)
		require.Equal(t, "evt-3", events[2].ID)
	})
}

func TestMessagesRepo(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	msgs := []domain.Message{
		{ID: "m1", EventID: "evt-1", SenderID: "alice", Sender: "Alice A", Content: "hi", CreatedAt: base},
		{ID: "m2", EventID: "evt-1", SenderID: "bob", Sender: "Bob B", Content: "hey", CreatedAt: base.Add(time.Minute)},
		{ID: "m3", EventID: "evt-1", SenderID: "alice", Sender: "Alice A", Content: "ready?", CreatedAt: base.Add(2 * time.Minute)},
	}

	t.Run("upsert skips optimistic placeholders", func(t *testing.T) {
		withTemp := append(msgs, domain.Message{
			ID: "temp-1", TempID: "temp-1", EventID: "evt-1", Content: "pending", CreatedAt: base,
		})
		require.NoError(t, s.Messages().UpsertMessages(ctx, withTemp))

		got, err := s.Messages().ListByEvent(ctx, "evt-1")
		require.NoError(t, err)
		require.Len(t, got, 3)
		for _, m := range got {
			require.Empty(t, m.TempID)
		}
	})

	t.Run("list is ordered oldest first", func(t *testing.T) {
		got, err := s.Messages().ListByEvent(ctx, "evt-1")
		require.NoError(t, err)
		require.Equal(t, "m1", got[0].ID)
		require.Equal(t, "m3", got[2].ID)
	})

	t.Run("last id", func(t *testing.T) {
		id, err := s.Messages().LastID(ctx, "evt-1")
		require.NoError(t, err)
		require.Equal(t, "m3", id)

		id, err = s.Messages().LastID(ctx, "evt-none")
		require.NoError(t, err)
		require.Empty(t, id)
	})

	t.Run("seen cursor and unread count", func(t *testing.T) {
		seen, err := s.Messages().GetLastSeen(ctx, "evt-1")
		require.NoError(t, err)
		require.Empty(t, seen)

		n, err := s.Messages().CountAfter(ctx, "evt-1", seen)
		require.NoError(t, err)
		require.Equal(t, 3, n)

		require.NoError(t, s.Messages().SetLastSeen(ctx, "evt-1", "m2"))

		seen, err = s.Messages().GetLastSeen(ctx, "evt-1")
		require.NoError(t, err)
		require.Equal(t, "m2", seen)

		n, err = s.Messages().CountAfter(ctx, "evt-1", seen)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})

	t.Run("delete clears messages and cursor", func(t *testing.T) {
		require.NoError(t, s.Messages().DeleteByEvent(ctx, "evt-1"))

		got, err := s.Messages().ListByEvent(ctx, "evt-1")
		require.NoError(t, err)
		require.Empty(t, got)

		seen, err := s.Messages().GetLastSeen(ctx, "evt-1")
		require.NoError(t, err)
		require.Empty(t, seen)
	})
}

func TestPrefsRepo(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	index, err := s.Prefs().GetTabIndex(ctx, "admin")
	require.NoError(t, err)
	require.Zero(t, index, "unset dashboards default to the first tab")

	require.NoError(t, s.Prefs().SetTabIndex(ctx, "admin", 2))
	require.NoError(t, s.Prefs().SetTabIndex(ctx, "user", 1))
	require.NoError(t, s.Prefs().SetTabIndex(ctx, "admin", 3))

	index, err = s.Prefs().GetTabIndex(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, 3, index)

	index, err = s.Prefs().GetTabIndex(ctx, "user")
	require.NoError(t, err)
	require.Equal(t, 1, index)
}

func TestSessionsRepo(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Sessions().GetToken(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Sessions().SaveToken(ctx, "sealed-1"))
	tok, err := s.Sessions().GetToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "sealed-1", tok)

	// Saving again replaces the single row.
	require.NoError(t, s.Sessions().SaveToken(ctx, "sealed-2"))
	tok, err = s.Sessions().GetToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "sealed-2", tok)

	require.NoError(t, s.Sessions().ClearToken(ctx))
	_, err = s.Sessions().GetToken(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTx(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	t.Run("commit persists", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Groups().UpsertGroup(ctx, domain.Group{ID: "g1", Name: "A", MainAdminID: "m"}); err != nil {
				return err
			}
			return tx.Events().UpsertEvent(ctx, domain.Event{ID: "e1", GroupID: "g1", Title: "T", Date: "2026-01-01", Time: "10:00"})
		})
		require.NoError(t, err)

		_, err = s.Groups().GetGroupByID(ctx, "g1")
		require.NoError(t, err)
	})

	t.Run("error rolls back", func(t *testing.T) {
		boom := domain.Group{ID: "g2", Name: "B", MainAdminID: "m"}
		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Groups().UpsertGroup(ctx, boom); err != nil {
				return err
			}
			return store.ErrNotFound
		})
		require.Error(t, err)

		_, err = s.Groups().GetGroupByID(ctx, "g2")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
