package service

import (
	"github.com/shan145/event-management-client/internal/domain"
)

// Action enumerates everything a user can ask the client to do against a
// group or one of its events. Every call site goes through Can rather than
// repeating role checks inline.
type Action int

const (
	ActionJoinWaitlist Action = iota
	ActionMarkNotGoing
	ActionApprove
	ActionDeny
	ActionMoveToWaitlist
	ActionCreateEvent
	ActionEditEvent
	ActionDeleteEvent
	ActionEditGroup
	ActionDeleteGroup
	ActionManageMembers
	ActionManageAdmins
	ActionRegenerateInvite
	ActionSendEmail
	ActionViewRoster
	ActionViewRosterEmails
	ActionLeaveGroup
)

// Actor is the identity a permission check runs against. It is threaded
// explicitly into every check; nothing reads ambient session state.
type Actor struct {
	ID           string
	Role         string // domain.RoleAdmin or domain.RoleMember
	Groups       []string
	GroupAdminOf []string

	// Authenticated is false for anonymous visitors (e.g. the public
	// invite landing flow). Unauthenticated actors can do nothing.
	Authenticated bool
}

// ActorFromUser builds an Actor for the signed-in user.
func ActorFromUser(u domain.User) Actor {
	return Actor{
		ID:            u.ID,
		Role:          u.Role,
		Groups:        u.Groups,
		GroupAdminOf:  u.GroupAdminOf,
		Authenticated: u.ID != "",
	}
}

// Target scopes a permission check: the owning group plus, for self-service
// actions like markNotGoing and leaveGroup, the user the action applies to.
type Target struct {
	Group     domain.Group
	SubjectID string
}

// Can reports whether actor may perform action on target. Denial is a
// normal false return, never an error; callers surface it as a disabled
// control or a not-authorized message, distinct from transport failures.
func Can(actor Actor, action Action, target Target) bool {
	if !actor.Authenticated || actor.ID == "" {
		return false
	}
	// The main admin can never leave their own group, global role or not;
	// the group must be deleted or handed off instead.
	if action == ActionLeaveGroup && actor.ID == target.Group.MainAdminID {
		return false
	}
	if actor.Role == domain.RoleAdmin {
		return true
	}

	group := target.Group
	isGroupAdmin := group.IsGroupAdmin(actor.ID)
	isMember := group.IsMember(actor.ID)

	switch action {
	case ActionApprove, ActionDeny, ActionMoveToWaitlist,
		ActionCreateEvent, ActionEditEvent, ActionDeleteEvent,
		ActionEditGroup, ActionManageMembers, ActionManageAdmins,
		ActionRegenerateInvite, ActionSendEmail, ActionViewRosterEmails:
		return isGroupAdmin

	case ActionDeleteGroup:
		// Only the creator (or a global admin, handled above) may
		// destroy a group; group admins cannot.
		return actor.ID == group.MainAdminID

	case ActionJoinWaitlist, ActionViewRoster:
		return isMember

	case ActionMarkNotGoing:
		if isGroupAdmin {
			return true
		}
		// Members may only set their own state.
		return isMember && target.SubjectID == actor.ID

	case ActionLeaveGroup:
		return isMember && target.SubjectID == actor.ID

	default:
		return false
	}
}
