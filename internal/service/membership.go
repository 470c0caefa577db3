package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/shan145/event-management-client/internal/domain"
	"github.com/shan145/event-management-client/pkg/slogx"
)

var (
	ErrNotAuthorized         = errors.New("not authorized")
	ErrAlreadyMember         = errors.New("user is already a member of this group")
	ErrNotAMember            = errors.New("user is not a member of this group")
	ErrCannotRemoveMainAdmin = errors.New("the main admin cannot be removed from the group")
)

// MembershipService owns group membership transitions. Every method
// validates first and mutates clones, so a failure leaves the caller's
// state untouched and a success returns the new state plus the REST calls
// to issue.
type MembershipService struct{}

// AddMember inserts userID into the group's member set.
func (MembershipService) AddMember(
	ctx context.Context,
	actor Actor,
	group domain.Group,
	userID string,
) (domain.Group, []SideEffect, error) {
	log := slogx.FromContext(ctx)

	if !Can(actor, ActionManageMembers, Target{Group: group}) {
		log.Warn("add member denied",
			slog.String("group_id", group.ID),
			slog.String("actor_id", actor.ID),
		)
		return domain.Group{}, nil, ErrNotAuthorized
	}
	if group.IsMember(userID) {
		return domain.Group{}, nil, ErrAlreadyMember
	}

	out := group.Clone()
	out.Members = append(out.Members, userID)

	return out, []SideEffect{{Kind: EffectAddMember, GroupID: group.ID, UserID: userID}}, nil
}

// RemoveMember removes userID from the group and cascades through every
// owned event's RSVP lists. A demoted group admin loses that role too.
// The main admin is never removable this way.
func (MembershipService) RemoveMember(
	ctx context.Context,
	actor Actor,
	group domain.Group,
	events []domain.Event,
	userID string,
) (domain.Group, []domain.Event, []SideEffect, error) {
	log := slogx.FromContext(ctx)

	if !Can(actor, ActionManageMembers, Target{Group: group}) {
		log.Warn("remove member denied",
			slog.String("group_id", group.ID),
			slog.String("actor_id", actor.ID),
		)
		return domain.Group{}, nil, nil, ErrNotAuthorized
	}
	if userID == group.MainAdminID {
		return domain.Group{}, nil, nil, ErrCannotRemoveMainAdmin
	}
	if !group.IsMember(userID) {
		return domain.Group{}, nil, nil, ErrNotAMember
	}

	outGroup, outEvents := evictFromGroup(group, events, userID)

	return outGroup, outEvents, []SideEffect{
		{Kind: EffectRemoveMember, GroupID: group.ID, UserID: userID},
	}, nil
}

// Leave is the self-service counterpart of RemoveMember: the actor walks
// away from the group and from every event RSVP in it. Irreversible
// without a fresh invite. The main admin cannot leave their own group.
func (MembershipService) Leave(
	ctx context.Context,
	actor Actor,
	group domain.Group,
	events []domain.Event,
) (domain.Group, []domain.Event, []SideEffect, error) {
	log := slogx.FromContext(ctx)

	if !Can(actor, ActionLeaveGroup, Target{Group: group, SubjectID: actor.ID}) {
		if actor.ID == group.MainAdminID {
			return domain.Group{}, nil, nil, ErrCannotRemoveMainAdmin
		}
		log.Warn("leave group denied",
			slog.String("group_id", group.ID),
			slog.String("actor_id", actor.ID),
		)
		return domain.Group{}, nil, nil, ErrNotAuthorized
	}
	if !group.IsMember(actor.ID) {
		return domain.Group{}, nil, nil, ErrNotAMember
	}

	outGroup, outEvents := evictFromGroup(group, events, actor.ID)

	return outGroup, outEvents, []SideEffect{
		{Kind: EffectLeaveGroup, GroupID: group.ID, UserID: actor.ID},
	}, nil
}

// Promote grants userID group-admin rights. Idempotent: promoting an
// existing group admin succeeds without effects.
func (MembershipService) Promote(
	ctx context.Context,
	actor Actor,
	group domain.Group,
	userID string,
) (domain.Group, []SideEffect, error) {
	log := slogx.FromContext(ctx)

	if !Can(actor, ActionManageAdmins, Target{Group: group}) {
		log.Warn("promote denied",
			slog.String("group_id", group.ID),
			slog.String("actor_id", actor.ID),
		)
		return domain.Group{}, nil, ErrNotAuthorized
	}
	if !group.IsMember(userID) {
		return domain.Group{}, nil, ErrNotAMember
	}
	if group.IsGroupAdmin(userID) {
		return group.Clone(), nil, nil
	}

	out := group.Clone()
	out.GroupAdmins = append(out.GroupAdmins, userID)

	return out, []SideEffect{{Kind: EffectPromoteAdmin, GroupID: group.ID, UserID: userID}}, nil
}

// Demote revokes group-admin rights. Idempotent for members who are not
// admins. The main admin's standing is immutable.
func (MembershipService) Demote(
	ctx context.Context,
	actor Actor,
	group domain.Group,
	userID string,
) (domain.Group, []SideEffect, error) {
	log := slogx.FromContext(ctx)

	if !Can(actor, ActionManageAdmins, Target{Group: group}) {
		log.Warn("demote denied",
			slog.String("group_id", group.ID),
			slog.String("actor_id", actor.ID),
		)
		return domain.Group{}, nil, ErrNotAuthorized
	}
	if userID == group.MainAdminID {
		return domain.Group{}, nil, ErrCannotRemoveMainAdmin
	}
	if !group.IsMember(userID) {
		return domain.Group{}, nil, ErrNotAMember
	}
	if !slices.Contains(group.GroupAdmins, userID) {
		return group.Clone(), nil, nil
	}

	out := group.Clone()
	out.GroupAdmins = slices.DeleteFunc(out.GroupAdmins, func(id string) bool { return id == userID })

	return out, []SideEffect{{Kind: EffectDemoteAdmin, GroupID: group.ID, UserID: userID}}, nil
}

// evictFromGroup removes userID from the group's member and admin sets and
// from the three RSVP lists of every owned event. Operates on clones.
func evictFromGroup(group domain.Group, events []domain.Event, userID string) (domain.Group, []domain.Event) {
	outGroup := group.Clone()
	outGroup.Members = slices.DeleteFunc(outGroup.Members, func(id string) bool { return id == userID })
	outGroup.GroupAdmins = slices.DeleteFunc(outGroup.GroupAdmins, func(id string) bool { return id == userID })

	outEvents := make([]domain.Event, 0, len(events))
	for _, ev := range events {
		clone := ev.Clone()
		if clone.GroupID == group.ID {
			clone.Place(userID, domain.StatusNoResponse)
		}
		outEvents = append(outEvents, clone)
	}
	return outGroup, outEvents
}
