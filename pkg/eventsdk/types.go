package eventsdk

import "time"

// ============================================================================
// Entities (wire shapes, Mongo-style _id keys)
// ============================================================================

// User is the API's user payload.
type User struct {
	ID           string   `json:"_id"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Email        string   `json:"email"`
	Role         string   `json:"role"` // "admin" or "member"
	Groups       []string `json:"groups,omitempty"`
	GroupAdminOf []string `json:"groupAdminOf,omitempty"`
}

// Group is the API's group payload. AdminID is the immutable main admin.
type Group struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Tags        []string `json:"tags,omitempty"`
	AdminID     string   `json:"adminId"`
	GroupAdmins []string `json:"groupAdmins,omitempty"`
	Members     []string `json:"members,omitempty"`
	InviteToken string   `json:"inviteToken,omitempty"`
	EventCount  int      `json:"eventCount,omitempty"`
}

// Event is the API's event payload. Date and time travel as separate
// strings; the three RSVP lists hold user ids and are pairwise disjoint.
type Event struct {
	ID           string   `json:"_id"`
	GroupID      string   `json:"groupId"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Date         string   `json:"date"` // "2006-01-02"
	Time         string   `json:"time"` // "15:04"
	Location     string   `json:"location,omitempty"`
	LocationURL  string   `json:"locationUrl,omitempty"`
	MaxAttendees *int     `json:"maxAttendees,omitempty"`
	Guests       int      `json:"guests"`
	GoingList    []string `json:"goingList"`
	Waitlist     []string `json:"waitlist"`
	NoGoList     []string `json:"noGoList"`
}

// Sender is the populated sender reference on a message.
type Sender struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Message is one chat entry on an event. Append-only.
type Message struct {
	ID        string    `json:"_id"`
	EventID   string    `json:"eventId"`
	Sender    Sender    `json:"senderId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ============================================================================
// Auth
// ============================================================================

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// authData is the login/signup success payload.
type authData struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

type passwordResetSubmit struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ============================================================================
// Groups
// ============================================================================

type CreateGroupRequest struct {
	Name string   `json:"name"`
	Tags []string `json:"tags,omitempty"`
}

type UpdateGroupRequest struct {
	Name string   `json:"name,omitempty"`
	Tags []string `json:"tags,omitempty"`
}

type groupData struct {
	Group Group `json:"group"`
}

type groupsData struct {
	Groups []Group `json:"groups"`
}

type membersData struct {
	Members []User `json:"members"`
}

type adminsData struct {
	MainAdmin   *User  `json:"mainAdmin"`
	GroupAdmins []User `json:"groupAdmins"`
}

type inviteData struct {
	InviteToken string `json:"inviteToken"`
}

// AdminRoster is a group's admin structure: the immutable main admin plus
// the promotable group admins.
type AdminRoster struct {
	MainAdmin   *User
	GroupAdmins []User
}

type emailBody struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type userIDBody struct {
	UserID string `json:"userId"`
}

// ============================================================================
// Events
// ============================================================================

type CreateEventRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Location     string `json:"location,omitempty"`
	LocationURL  string `json:"locationUrl,omitempty"`
	MaxAttendees *int   `json:"maxAttendees"`
	Guests       int    `json:"guests"`
}

// UpdateEventRequest mirrors CreateEventRequest; the owning group is
// immutable so it carries no group id.
type UpdateEventRequest = CreateEventRequest

type eventData struct {
	Event Event `json:"event"`
}

type eventsData struct {
	Events []Event `json:"events"`
}

// AttendeeRoster is the populated who's-going view. Email fields are only
// filled in for group admins; plain members get names only.
type AttendeeRoster struct {
	Attendees  []User `json:"attendees"`
	Waitlisted []User `json:"waitlisted"`
}

// ============================================================================
// Messages
// ============================================================================

type SendMessageRequest struct {
	Content string `json:"content"`
}

type messageData struct {
	Message Message `json:"message"`
}

type messagesData struct {
	Messages []Message `json:"messages"`
}

type unreadCountsData struct {
	UnreadCounts map[string]int `json:"unreadCounts"`
}

// ============================================================================
// Users
// ============================================================================

type UpdateUserRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type userData struct {
	User User `json:"user"`
}

type usersData struct {
	Users []User `json:"users"`
}

// InvitePreview is the public payload behind GET /join/:token: just enough
// to render the landing page before the visitor decides to join.
type InvitePreview struct {
	Group struct {
		ID   string   `json:"_id"`
		Name string   `json:"name"`
		Tags []string `json:"tags,omitempty"`
	} `json:"group"`
}
