package eventsdk

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what the client knows about the signed-in user, decoded from
// the access token's claims. The server remains the authority; these
// values only drive which controls the client offers.
type Identity struct {
	UserID       string
	Email        string
	Role         string
	GroupAdminOf []string
}

// Session is an authenticated handle on the API. Sessions are immutable
// once created; a password change or logout means minting a new one.
type Session struct {
	client   *SDKClient
	token    string
	identity Identity
}

// Token returns the bearer token, e.g. for sealing into the local cache.
func (s *Session) Token() string { return s.token }

// Identity returns the claims-derived identity of the session's user.
func (s *Session) Identity() Identity { return s.identity }

// sessionClaims is the JWT claim set the Eventable server issues.
type sessionClaims struct {
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	GroupAdminOf []string `json:"groupAdminOf,omitempty"`
	jwt.RegisteredClaims
}

// identityFromToken decodes the token's claims without verifying the
// signature. Verification is the server's job on every request; the
// client only needs to read who it is acting as.
func identityFromToken(token string) (Identity, error) {
	var claims sessionClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return Identity{}, fmt.Errorf("failed to decode access token: %w", err)
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("access token has no subject claim")
	}
	return Identity{
		UserID:       claims.Subject,
		Email:        claims.Email,
		Role:         claims.Role,
		GroupAdminOf: claims.GroupAdminOf,
	}, nil
}
