package eventsdk

import (
	"context"
	"net/http"
)

// ListGroups retrieves every group. Global-admin dashboard view.
func (s *Session) ListGroups(ctx context.Context) ([]Group, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/groups", nil)
	if err != nil {
		return nil, err
	}

	var data groupsData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return data.Groups, nil
}

// ListUserGroups retrieves the groups the current user belongs to.
func (s *Session) ListUserGroups(ctx context.Context) ([]Group, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/groups/user", nil)
	if err != nil {
		return nil, err
	}

	var data groupsData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return data.Groups, nil
}

// CreateGroup creates a group with the current user as its main admin.
func (s *Session) CreateGroup(ctx context.Context, req CreateGroupRequest) (*Group, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/groups", req)
	if err != nil {
		return nil, err
	}

	var data groupData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return &data.Group, nil
}

// UpdateGroup edits a group's name and tags.
func (s *Session) UpdateGroup(ctx context.Context, groupID string, req UpdateGroupRequest) (*Group, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/groups/"+groupID, req)
	if err != nil {
		return nil, err
	}

	var data groupData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return &data.Group, nil
}

// DeleteGroup destroys a group. The server cascades to its events,
// membership records, and messages.
func (s *Session) DeleteGroup(ctx context.Context, groupID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/groups/"+groupID, nil)
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}

// RegenerateInvite mints a fresh invite token, invalidating the previous
// link. Returns the new token.
func (s *Session) RegenerateInvite(ctx context.Context, groupID string) (string, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/groups/"+groupID+"/invite", nil)
	if err != nil {
		return "", err
	}

	var data inviteData
	if err := decodeData(resp, &data); err != nil {
		return "", err
	}
	return data.InviteToken, nil
}

// ListMembers retrieves the group's member roster.
func (s *Session) ListMembers(ctx context.Context, groupID string) ([]User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/groups/"+groupID+"/members", nil)
	if err != nil {
		return nil, err
	}

	var data membersData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return data.Members, nil
}

// AddMember adds a user to the group. Already-members come back as a
// Conflict APIError.
func (s *Session) AddMember(ctx context.Context, groupID, userID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/groups/"+groupID+"/members", userIDBody{UserID: userID})
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}

// RemoveMember removes a user from the group. The server cascades through
// the group's events; removing the main admin is a Conflict.
func (s *Session) RemoveMember(ctx context.Context, groupID, userID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/groups/"+groupID+"/members/"+userID, nil)
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}

// LeaveGroup removes the current user from the group.
func (s *Session) LeaveGroup(ctx context.Context, groupID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/groups/"+groupID+"/leave", nil)
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}

// ListGroupAdmins retrieves the group's main admin and group admins.
func (s *Session) ListGroupAdmins(ctx context.Context, groupID string) (*AdminRoster, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/groups/"+groupID+"/admins", nil)
	if err != nil {
		return nil, err
	}

	var data adminsData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return &AdminRoster{MainAdmin: data.MainAdmin, GroupAdmins: data.GroupAdmins}, nil
}

// AddGroupAdmin promotes a member to group admin.
func (s *Session) AddGroupAdmin(ctx context.Context, groupID, userID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/groups/"+groupID+"/admins", userIDBody{UserID: userID})
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}

// RemoveGroupAdmin demotes a group admin back to plain member.
func (s *Session) RemoveGroupAdmin(ctx context.Context, groupID, userID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/groups/"+groupID+"/admins/"+userID, nil)
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}

// SendGroupEmail asks the server to email every member of the group.
// Delivery is entirely server-side.
func (s *Session) SendGroupEmail(ctx context.Context, groupID, subject, body string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/groups/"+groupID+"/send-email", emailBody{
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}

// JoinViaInvite joins the current user to the group behind an invite
// token. The public preview counterpart lives on SDKClient.
func (s *Session) JoinViaInvite(ctx context.Context, inviteToken string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/join/"+inviteToken, userIDBody{
		UserID: s.identity.UserID,
	})
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}
