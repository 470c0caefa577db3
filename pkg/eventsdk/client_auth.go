package eventsdk

import (
	"context"
	"net/http"
)

// Login authenticates with email and password and returns a session. The
// identity is decoded from the issued token, with the login response's
// user payload as the source for anything the claims omit.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var data authData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return c.sessionFromAuthData(data)
}

// Signup registers a new account and returns a signed-in session.
func (c *SDKClient) Signup(ctx context.Context, req SignupRequest) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/signup", req)
	if err != nil {
		return nil, err
	}

	var data authData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return c.sessionFromAuthData(data)
}

func (c *SDKClient) sessionFromAuthData(data authData) (*Session, error) {
	sess, err := c.NewSessionFromToken(data.Token)
	if err != nil {
		return nil, err
	}
	if sess.identity.Email == "" {
		sess.identity.Email = data.User.Email
	}
	if sess.identity.Role == "" {
		sess.identity.Role = data.User.Role
	}
	return sess, nil
}

// RequestPasswordReset asks the server to email a reset link. Always
// succeeds for well-formed addresses; the server does not reveal whether
// the account exists.
func (c *SDKClient) RequestPasswordReset(ctx context.Context, email string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/password-reset/request", passwordResetRequest{
		Email: email,
	})
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}

// VerifyPasswordReset checks a reset token before showing the new-password
// form. An expired or unknown token surfaces as a NotFound APIError.
func (c *SDKClient) VerifyPasswordReset(ctx context.Context, token string) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/password-reset/verify/"+token, nil)
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}

// ResetPassword sets a new password using a verified reset token.
func (c *SDKClient) ResetPassword(ctx context.Context, token, newPassword string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/password-reset/reset", passwordResetSubmit{
		Token:    token,
		Password: newPassword,
	})
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}

// GetInvitePreview fetches the public landing payload for an invite link.
// Unauthenticated by design; invalid tokens come back as NotFound.
func (c *SDKClient) GetInvitePreview(ctx context.Context, inviteToken string) (*InvitePreview, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/join/"+inviteToken, nil)
	if err != nil {
		return nil, err
	}

	var preview InvitePreview
	if err := decodeData(resp, &preview); err != nil {
		return nil, err
	}
	return &preview, nil
}
