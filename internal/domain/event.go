package domain

import (
	"slices"
	"time"
)

type Event struct {
	ID          string
	GroupID     string // owning group, immutable after creation
	Title       string
	Description string
	Date        string // "2006-01-02"; date and time travel as separate fields
	Time        string // "15:04"
	Location    string
	LocationURL string

	// MaxAttendees is nil when the event is uncapped.
	MaxAttendees *int
	// Guests counts extra attendees with no identity of their own.
	Guests int

	// The three RSVP lists. A user id appears in at most one of them.
	GoingList []string
	Waitlist  []string
	NoGoList  []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusOf derives a user's RSVP status from the three lists.
func (e Event) StatusOf(userID string) RSVPStatus {
	switch {
	case slices.Contains(e.GoingList, userID):
		return StatusGoing
	case slices.Contains(e.Waitlist, userID):
		return StatusWaitlisted
	case slices.Contains(e.NoGoList, userID):
		return StatusNotGoing
	default:
		return StatusNoResponse
	}
}

// AttendingCount is the display counter: confirmed attendees plus guests.
func (e Event) AttendingCount() int {
	return len(e.GoingList) + e.Guests
}

// IsFull reports whether the going list has reached capacity.
// Uncapped events are never full.
func (e Event) IsFull() bool {
	return e.MaxAttendees != nil && len(e.GoingList) >= *e.MaxAttendees
}

// ContainsUser reports whether userID appears in any of the three lists.
func (e Event) ContainsUser(userID string) bool {
	return e.StatusOf(userID) != StatusNoResponse
}

// Clone returns a deep copy of the event, including its RSVP lists.
func (e Event) Clone() Event {
	out := e
	out.GoingList = slices.Clone(e.GoingList)
	out.Waitlist = slices.Clone(e.Waitlist)
	out.NoGoList = slices.Clone(e.NoGoList)
	if e.MaxAttendees != nil {
		cap := *e.MaxAttendees
		out.MaxAttendees = &cap
	}
	return out
}

// removeFromAllLists strips userID from all three lists. Transitions call
// this first so the disjointness invariant holds by construction.
func (e *Event) removeFromAllLists(userID string) {
	e.GoingList = slices.DeleteFunc(e.GoingList, func(id string) bool { return id == userID })
	e.Waitlist = slices.DeleteFunc(e.Waitlist, func(id string) bool { return id == userID })
	e.NoGoList = slices.DeleteFunc(e.NoGoList, func(id string) bool { return id == userID })
}

// Place moves userID into exactly one RSVP list, removing it from the others.
// Placing into StatusNoResponse just clears the user from every list.
func (e *Event) Place(userID string, status RSVPStatus) {
	e.removeFromAllLists(userID)
	switch status {
	case StatusGoing:
		e.GoingList = append(e.GoingList, userID)
	case StatusWaitlisted:
		e.Waitlist = append(e.Waitlist, userID)
	case StatusNotGoing:
		e.NoGoList = append(e.NoGoList, userID)
	}
}

// StartsAt combines the split date and time fields into a single instant in
// the given location. Display-only; the wire format keeps them separate.
func (e Event) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", e.Date+" "+e.Time, loc)
}
