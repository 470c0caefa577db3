package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shan145/event-management-client/internal/domain"
	"github.com/shan145/event-management-client/pkg/slogx"
)

var (
	ErrNotAGroupMember  = errors.New("user is not a member of the event's group")
	ErrAlreadyGoing     = errors.New("user is already confirmed going")
	ErrNotOnWaitlist    = errors.New("user is not on the waitlist")
	ErrNoActiveRSVP     = errors.New("user is neither waitlisted nor going")
	ErrNotDeclined      = errors.New("user has not been marked not-going")
	ErrCapacityExceeded = errors.New("event is at capacity")
)

// RSVPService is the transition engine over an event's three RSVP lists.
// Transitions validate before they mutate, operate on clones, and keep the
// lists disjoint by construction: Place removes the user from every list
// before inserting into the target one. A returned error means the input
// state is untouched.
type RSVPService struct{}

// JoinWaitlist puts the actor on the waitlist. Valid from NoResponse or
// NotGoing; calling it while already waitlisted is a no-op.
func (RSVPService) JoinWaitlist(
	ctx context.Context,
	actor Actor,
	group domain.Group,
	event domain.Event,
) (domain.Event, []SideEffect, error) {
	log := slogx.FromContext(ctx)

	if !Can(actor, ActionJoinWaitlist, Target{Group: group}) {
		if actor.Authenticated && !group.IsMember(actor.ID) {
			return domain.Event{}, nil, ErrNotAGroupMember
		}
		log.Warn("join waitlist denied",
			slog.String("event_id", event.ID),
			slog.String("actor_id", actor.ID),
		)
		return domain.Event{}, nil, ErrNotAuthorized
	}

	switch event.StatusOf(actor.ID) {
	case domain.StatusWaitlisted:
		return event.Clone(), nil, nil
	case domain.StatusGoing:
		return domain.Event{}, nil, ErrAlreadyGoing
	}

	out := event.Clone()
	out.Place(actor.ID, domain.StatusWaitlisted)

	return out, []SideEffect{{Kind: EffectJoinEvent, EventID: event.ID, UserID: actor.ID}}, nil
}

// Approve confirms a waitlisted user. Blocked once the going list reaches
// capacity; the waitlisted user keeps their spot and the admin sees the
// conflict.
func (RSVPService) Approve(
	ctx context.Context,
	actor Actor,
	group domain.Group,
	event domain.Event,
	userID string,
) (domain.Event, []SideEffect, error) {
	log := slogx.FromContext(ctx)

	if !Can(actor, ActionApprove, Target{Group: group}) {
		log.Warn("approve denied",
			slog.String("event_id", event.ID),
			slog.String("actor_id", actor.ID),
		)
		return domain.Event{}, nil, ErrNotAuthorized
	}
	if event.StatusOf(userID) != domain.StatusWaitlisted {
		return domain.Event{}, nil, ErrNotOnWaitlist
	}
	if event.IsFull() {
		return domain.Event{}, nil, ErrCapacityExceeded
	}

	out := event.Clone()
	out.Place(userID, domain.StatusGoing)

	return out, []SideEffect{{Kind: EffectApproveAttendee, EventID: event.ID, UserID: userID}}, nil
}

// Deny moves a waitlisted or confirmed user to the not-going list.
func (RSVPService) Deny(
	ctx context.Context,
	actor Actor,
	group domain.Group,
	event domain.Event,
	userID string,
) (domain.Event, []SideEffect, error) {
	log := slogx.FromContext(ctx)

	if !Can(actor, ActionDeny, Target{Group: group}) {
		log.Warn("deny denied",
			slog.String("event_id", event.ID),
			slog.String("actor_id", actor.ID),
		)
		return domain.Event{}, nil, ErrNotAuthorized
	}

	status := event.StatusOf(userID)
	if status != domain.StatusWaitlisted && status != domain.StatusGoing {
		return domain.Event{}, nil, ErrNoActiveRSVP
	}

	out := event.Clone()
	out.Place(userID, domain.StatusNotGoing)

	return out, []SideEffect{{Kind: EffectMarkNotGoing, EventID: event.ID, UserID: userID}}, nil
}

// MoveToWaitlist undoes a deny, returning a not-going user to the waitlist.
func (RSVPService) MoveToWaitlist(
	ctx context.Context,
	actor Actor,
	group domain.Group,
	event domain.Event,
	userID string,
) (domain.Event, []SideEffect, error) {
	log := slogx.FromContext(ctx)

	if !Can(actor, ActionMoveToWaitlist, Target{Group: group}) {
		log.Warn("move to waitlist denied",
			slog.String("event_id", event.ID),
			slog.String("actor_id", actor.ID),
		)
		return domain.Event{}, nil, ErrNotAuthorized
	}
	if event.StatusOf(userID) != domain.StatusNotGoing {
		return domain.Event{}, nil, ErrNotDeclined
	}

	out := event.Clone()
	out.Place(userID, domain.StatusWaitlisted)

	return out, []SideEffect{{Kind: EffectMoveToWaitlist, EventID: event.ID, UserID: userID}}, nil
}

// MarkNotGoing records a not-going response from any pre-state. Members may
// only set their own; group admins may set anyone's. Already not-going is a
// no-op.
func (RSVPService) MarkNotGoing(
	ctx context.Context,
	actor Actor,
	group domain.Group,
	event domain.Event,
	userID string,
) (domain.Event, []SideEffect, error) {
	log := slogx.FromContext(ctx)

	if !Can(actor, ActionMarkNotGoing, Target{Group: group, SubjectID: userID}) {
		log.Warn("mark not-going denied",
			slog.String("event_id", event.ID),
			slog.String("actor_id", actor.ID),
			slog.String("user_id", userID),
		)
		return domain.Event{}, nil, ErrNotAuthorized
	}
	if event.StatusOf(userID) == domain.StatusNotGoing {
		return event.Clone(), nil, nil
	}

	out := event.Clone()
	out.Place(userID, domain.StatusNotGoing)

	return out, []SideEffect{{Kind: EffectMarkNotGoing, EventID: event.ID, UserID: userID}}, nil
}
