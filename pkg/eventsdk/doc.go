/*
Package eventsdk provides a client for the Eventable REST API: groups,
events, RSVPs, attendee messaging, and account management.

# SDKClient vs Session

The package is organized around two types:

  - SDKClient: unauthenticated operations (login, signup, password reset,
    public invite previews) and the factory for authenticated Sessions
  - Session: authenticated operations carrying the bearer token

Create an SDKClient for public endpoints and to sign in:

	client := eventsdk.NewSDKClient("https://api.eventable.example.com")

	// Preview a public invite link
	preview, err := client.GetInvitePreview(ctx, inviteToken)

	// Sign in to obtain a session
	session, err := client.Login(ctx, "user@example.com", "password")

Use the Session for everything else:

	groups, err := session.ListUserGroups(ctx)
	event, err := session.JoinEvent(ctx, eventID)
	msg, err := session.SendMessage(ctx, eventID, "see you there")

# Identity

The server issues a JWT access token on login. The client never verifies
it (that is the server's job); it only decodes the claims to learn the
current user's id, role, and group-admin assignments:

	who := session.Identity()
	fmt.Println(who.UserID, who.Role)

A Session can be rebuilt from a stored token with NewSessionFromToken,
which is how the CLI resumes between invocations.

# Response envelope

Every endpoint answers with the same envelope:

	{ "success": bool, "data": {...}, "message": "..." }

The SDK unwraps data on success. A success=false payload or an HTTP error
status becomes an *APIError whose Kind classifies the failure (validation,
permission denied, not found, conflict, transport) so callers can present
it the right way without string matching.

# Rate limiting

All requests flow through the client's rate.Limiter. The default allows
short bursts while capping sustained traffic, which keeps chat polling and
dashboard refreshes from hammering the API. Replace Limiter before first
use to tune it.
*/
package eventsdk
