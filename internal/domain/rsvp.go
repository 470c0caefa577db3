package domain

// RSVPStatus is a user's standing with respect to one event.
type RSVPStatus int

const (
	// StatusNoResponse is the default: the user is in none of the three
	// lists. The model never returns a user here; only event or account
	// deletion clears an explicit response.
	StatusNoResponse RSVPStatus = iota
	StatusWaitlisted
	StatusGoing
	StatusNotGoing
)

func (s RSVPStatus) String() string {
	switch s {
	case StatusWaitlisted:
		return "waitlisted"
	case StatusGoing:
		return "going"
	case StatusNotGoing:
		return "not_going"
	default:
		return "no_response"
	}
}
