package service

// EffectKind names the REST call a transition wants issued. The engine
// decides locally and returns effects; the app layer maps each kind onto
// the matching eventsdk call and refetches on success.
type EffectKind int

const (
	// POST /events/:id/join
	EffectJoinEvent EffectKind = iota
	// POST /events/:id/approve {userId}
	EffectApproveAttendee
	// POST /events/:id/nogo {userId}
	EffectMarkNotGoing
	// POST /events/:id/move-to-waitlist {userId}
	EffectMoveToWaitlist
	// POST /groups/:id/members {userId}
	EffectAddMember
	// DELETE /groups/:id/members/:userId
	EffectRemoveMember
	// POST /groups/:id/admins {userId}
	EffectPromoteAdmin
	// DELETE /groups/:id/admins/:userId
	EffectDemoteAdmin
	// POST /groups/:id/leave
	EffectLeaveGroup
)

// SideEffect is one HTTP call owed to the server after a successful local
// transition. Effects are descriptions, not actions; issuing them is the
// caller's job so transitions stay pure and testable.
type SideEffect struct {
	Kind    EffectKind
	GroupID string
	EventID string
	UserID  string
}
