package eventsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListUsers retrieves every user. Global-admin dashboard view.
func (s *Session) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}

	var data usersData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return data.Users, nil
}

// GetUser retrieves one user's profile.
func (s *Session) GetUser(ctx context.Context, userID string) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/users/"+userID, nil)
	if err != nil {
		return nil, err
	}

	var data userData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// UpdateUser edits profile fields. RSVP state is never touched by profile
// updates.
func (s *Session) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/users/"+userID, req)
	if err != nil {
		return nil, err
	}

	var data userData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// UpdatePassword changes the user's password, verifying the current one.
func (s *Session) UpdatePassword(ctx context.Context, userID string, req UpdatePasswordRequest) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/users/"+userID+"/password", req)
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}

// SearchUserByEmail finds a user by exact email. The admin dialogs use it
// to add members and promote admins. Misses come back as NotFound.
func (s *Session) SearchUserByEmail(ctx context.Context, email string) (*User, error) {
	query := url.Values{}
	query.Set("email", email)

	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/users/search?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var data userData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}
