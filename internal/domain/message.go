package domain

import "time"

// Message is one chat entry on an event. Append-only; never mutated after
// creation. Local optimistic sends carry a temp ULID id until the server
// acks with the real one.
type Message struct {
	ID        string
	EventID   string
	SenderID  string
	Sender    string // display name, as returned by the server
	Content   string
	CreatedAt time.Time

	// TempID is set on optimistic local entries so the merge can replace
	// them once the server-assigned row arrives. Empty on server messages.
	TempID string
}
