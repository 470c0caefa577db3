package eventsdk

import (
	"context"
	"net/http"
)

// ListEvents retrieves every upcoming event. Global-admin dashboard view.
func (s *Session) ListEvents(ctx context.Context) ([]Event, error) {
	return s.listEvents(ctx, "/events")
}

// ListUserEvents retrieves upcoming events in the current user's groups.
func (s *Session) ListUserEvents(ctx context.Context) ([]Event, error) {
	return s.listEvents(ctx, "/events/user")
}

// ListPastEvents retrieves events whose date has passed.
func (s *Session) ListPastEvents(ctx context.Context) ([]Event, error) {
	return s.listEvents(ctx, "/events/past")
}

func (s *Session) listEvents(ctx context.Context, path string) ([]Event, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var data eventsData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return data.Events, nil
}

// CreateEvent creates an event in the given group.
func (s *Session) CreateEvent(ctx context.Context, groupID string, req CreateEventRequest) (*Event, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/groups/"+groupID+"/events", req)
	if err != nil {
		return nil, err
	}

	var data eventData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return &data.Event, nil
}

// UpdateEvent edits an event's details. The owning group never changes.
func (s *Session) UpdateEvent(ctx context.Context, eventID string, req UpdateEventRequest) (*Event, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/events/"+eventID, req)
	if err != nil {
		return nil, err
	}

	var data eventData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return &data.Event, nil
}

// DeleteEvent destroys an event and its messages.
func (s *Session) DeleteEvent(ctx context.Context, eventID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/events/"+eventID, nil)
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}

// GetAttendees retrieves the populated who's-going roster. The server
// omits emails unless the caller administers the event's group.
func (s *Session) GetAttendees(ctx context.Context, eventID string) (*AttendeeRoster, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/events/"+eventID+"/attendees", nil)
	if err != nil {
		return nil, err
	}

	var roster AttendeeRoster
	if err := decodeData(resp, &roster); err != nil {
		return nil, err
	}
	return &roster, nil
}

// JoinEvent puts the current user on the event's waitlist.
func (s *Session) JoinEvent(ctx context.Context, eventID string) (*Event, error) {
	return s.postEventAction(ctx, eventID, "/join", nil)
}

// ApproveAttendee moves a waitlisted user onto the going list.
func (s *Session) ApproveAttendee(ctx context.Context, eventID, userID string) (*Event, error) {
	return s.postEventAction(ctx, eventID, "/approve", &userIDBody{UserID: userID})
}

// MoveToWaitlist returns a not-going user to the waitlist.
func (s *Session) MoveToWaitlist(ctx context.Context, eventID, userID string) (*Event, error) {
	return s.postEventAction(ctx, eventID, "/move-to-waitlist", &userIDBody{UserID: userID})
}

// MarkNoGo records a not-going response for userID.
func (s *Session) MarkNoGo(ctx context.Context, eventID, userID string) (*Event, error) {
	return s.postEventAction(ctx, eventID, "/nogo", &userIDBody{UserID: userID})
}

func (s *Session) postEventAction(ctx context.Context, eventID, action string, body *userIDBody) (*Event, error) {
	var payload any
	if body != nil {
		payload = body
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/events/"+eventID+action, payload)
	if err != nil {
		return nil, err
	}

	var data eventData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return &data.Event, nil
}

// SendEventEmail asks the server to email everyone on the going list.
func (s *Session) SendEventEmail(ctx context.Context, eventID, subject, body string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/events/"+eventID+"/send-email", emailBody{
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}
