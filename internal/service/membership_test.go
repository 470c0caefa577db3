package service

import (
	"context"
	"testing"

	"github.com/shan145/event-management-client/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestAddMember(t *testing.T) {
	t.Parallel()

	var svc MembershipService
	ctx := context.Background()

	t.Run("group admin adds a new member", func(t *testing.T) {
		group := testGroup()

		out, effects, err := svc.AddMember(ctx, groupAdminActor(), group, "dave")
		require.NoError(t, err)
		require.True(t, out.IsMember("dave"))
		require.Len(t, effects, 1)
		require.Equal(t, EffectAddMember, effects[0].Kind)
		require.False(t, group.IsMember("dave"), "input group must stay untouched")
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		_, _, err := svc.AddMember(ctx, groupAdminActor(), testGroup(), "alice")
		require.ErrorIs(t, err, ErrAlreadyMember)
	})

	t.Run("plain members cannot add", func(t *testing.T) {
		_, _, err := svc.AddMember(ctx, memberActor("alice"), testGroup(), "dave")
		require.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("global admin may add anywhere", func(t *testing.T) {
		site := Actor{ID: "root", Role: domain.RoleAdmin, Authenticated: true}
		out, _, err := svc.AddMember(ctx, site, testGroup(), "dave")
		require.NoError(t, err)
		require.True(t, out.IsMember("dave"))
	})
}

func TestRemoveMember(t *testing.T) {
	t.Parallel()

	var svc MembershipService
	ctx := context.Background()

	t.Run("removal cascades through event lists", func(t *testing.T) {
		group := testGroup()
		going := testEvent()
		going.ID = "evt-going"
		going.GoingList = []string{"alice", "bob"}
		waitlisted := testEvent()
		waitlisted.ID = "evt-wait"
		waitlisted.Waitlist = []string{"alice"}

		outGroup, outEvents, effects, err := svc.RemoveMember(
			ctx, groupAdminActor(), group, []domain.Event{going, waitlisted}, "alice")
		require.NoError(t, err)
		require.False(t, outGroup.IsMember("alice"))
		require.Len(t, outEvents, 2)
		for _, e := range outEvents {
			require.Equal(t, domain.StatusNoResponse, e.StatusOf("alice"))
		}
		require.Equal(t, []string{"bob"}, outEvents[0].GoingList)
		require.Len(t, effects, 1)
		require.Equal(t, EffectRemoveMember, effects[0].Kind)
	})

	t.Run("removing a group admin drops the role", func(t *testing.T) {
		outGroup, _, _, err := svc.RemoveMember(ctx, groupAdminActor(), testGroup(), nil, "ga")
		require.NoError(t, err)
		require.False(t, outGroup.IsMember("ga"))
		require.NotContains(t, outGroup.GroupAdmins, "ga")
	})

	t.Run("main admin is not removable", func(t *testing.T) {
		_, _, _, err := svc.RemoveMember(ctx, groupAdminActor(), testGroup(), nil, "main")
		require.ErrorIs(t, err, ErrCannotRemoveMainAdmin)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, _, err := svc.RemoveMember(ctx, groupAdminActor(), testGroup(), nil, "nobody")
		require.ErrorIs(t, err, ErrNotAMember)
	})

	t.Run("add then remove round-trips", func(t *testing.T) {
		group := testGroup()

		added, _, err := svc.AddMember(ctx, groupAdminActor(), group, "dave")
		require.NoError(t, err)

		removed, _, _, err := svc.RemoveMember(ctx, groupAdminActor(), added, nil, "dave")
		require.NoError(t, err)
		require.ElementsMatch(t, group.Members, removed.Members)
	})
}

func TestLeave(t *testing.T) {
	t.Parallel()

	var svc MembershipService
	ctx := context.Background()

	t.Run("member leaves and loses RSVPs", func(t *testing.T) {
		event := testEvent()
		event.GoingList = []string{"alice"}

		outGroup, outEvents, effects, err := svc.Leave(
			ctx, memberActor("alice"), testGroup(), []domain.Event{event})
		require.NoError(t, err)
		require.False(t, outGroup.IsMember("alice"))
		require.Empty(t, outEvents[0].GoingList)
		require.Equal(t, EffectLeaveGroup, effects[0].Kind)
	})

	t.Run("main admin cannot leave", func(t *testing.T) {
		actor := Actor{
			ID:            "main",
			Role:          domain.RoleMember,
			Groups:        []string{"grp-1"},
			GroupAdminOf:  []string{"grp-1"},
			Authenticated: true,
		}
		_, _, _, err := svc.Leave(ctx, actor, testGroup(), nil)
		require.ErrorIs(t, err, ErrCannotRemoveMainAdmin)
	})

	t.Run("main admin cannot leave even with the global admin role", func(t *testing.T) {
		actor := Actor{ID: "main", Role: domain.RoleAdmin, Authenticated: true}
		_, _, _, err := svc.Leave(ctx, actor, testGroup(), nil)
		require.ErrorIs(t, err, ErrCannotRemoveMainAdmin)
	})
}

func TestPromoteDemote(t *testing.T) {
	t.Parallel()

	var svc MembershipService
	ctx := context.Background()

	t.Run("promote grants group admin", func(t *testing.T) {
		out, effects, err := svc.Promote(ctx, groupAdminActor(), testGroup(), "alice")
		require.NoError(t, err)
		require.True(t, out.IsGroupAdmin("alice"))
		require.Equal(t, EffectPromoteAdmin, effects[0].Kind)
	})

	t.Run("promote is idempotent", func(t *testing.T) {
		out, effects, err := svc.Promote(ctx, groupAdminActor(), testGroup(), "ga")
		require.NoError(t, err)
		require.Empty(t, effects)
		require.True(t, out.IsGroupAdmin("ga"))
	})

	t.Run("promote requires membership", func(t *testing.T) {
		_, _, err := svc.Promote(ctx, groupAdminActor(), testGroup(), "nobody")
		require.ErrorIs(t, err, ErrNotAMember)
	})

	t.Run("demote revokes group admin", func(t *testing.T) {
		out, effects, err := svc.Demote(ctx, groupAdminActor(), testGroup(), "ga")
		require.NoError(t, err)
		require.False(t, out.IsGroupAdmin("ga"))
		require.True(t, out.IsMember("ga"), "demotion keeps membership")
		require.Equal(t, EffectDemoteAdmin, effects[0].Kind)
	})

	t.Run("demote cannot touch the main admin", func(t *testing.T) {
		_, _, err := svc.Demote(ctx, groupAdminActor(), testGroup(), "main")
		require.ErrorIs(t, err, ErrCannotRemoveMainAdmin)
	})

	t.Run("demoting a plain member is a no-op", func(t *testing.T) {
		out, effects, err := svc.Demote(ctx, groupAdminActor(), testGroup(), "alice")
		require.NoError(t, err)
		require.Empty(t, effects)
		require.True(t, out.IsMember("alice"))
	})
}
