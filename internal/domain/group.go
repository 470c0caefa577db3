package domain

import (
	"slices"
	"time"
)

type Group struct {
	ID          string
	Name        string
	Tags        []string
	MainAdminID string // creator; always a member, never removable
	GroupAdmins []string
	Members     []string
	InviteToken string // single active value, regenerable
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsMember reports whether userID belongs to the group.
func (g Group) IsMember(userID string) bool {
	return slices.Contains(g.Members, userID)
}

// IsGroupAdmin reports whether userID has admin rights scoped to this group.
// The main admin always counts.
func (g Group) IsGroupAdmin(userID string) bool {
	return userID == g.MainAdminID || slices.Contains(g.GroupAdmins, userID)
}

// Clone returns a deep copy so transition logic can mutate freely
// without touching the caller's view of the group.
func (g Group) Clone() Group {
	out := g
	out.Tags = slices.Clone(g.Tags)
	out.GroupAdmins = slices.Clone(g.GroupAdmins)
	out.Members = slices.Clone(g.Members)
	return out
}
