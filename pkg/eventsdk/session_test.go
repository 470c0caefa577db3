package eventsdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityFromToken(t *testing.T) {
	t.Parallel()

	t.Run("decodes the full claim set", func(t *testing.T) {
		token := unsignedToken(t, map[string]any{
			"sub":          "u1",
			"email":        "alice@example.com",
			"role":         "member",
			"groupAdminOf": []string{"grp-1", "grp-2"},
		})

		ident, err := identityFromToken(token)
		require.NoError(t, err)
		require.Equal(t, "u1", ident.UserID)
		require.Equal(t, "alice@example.com", ident.Email)
		require.Equal(t, "member", ident.Role)
		require.Equal(t, []string{"grp-1", "grp-2"}, ident.GroupAdminOf)
	})

	t.Run("optional claims may be absent", func(t *testing.T) {
		ident, err := identityFromToken(unsignedToken(t, map[string]any{"sub": "u1"}))
		require.NoError(t, err)
		require.Equal(t, "u1", ident.UserID)
		require.Empty(t, ident.Email)
		require.Empty(t, ident.GroupAdminOf)
	})

	t.Run("rejects tokens without a subject", func(t *testing.T) {
		_, err := identityFromToken(unsignedToken(t, map[string]any{"email": "x@y.z"}))
		require.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := identityFromToken("not-a-jwt")
		require.Error(t, err)
	})
}

func TestNewSessionFromToken(t *testing.T) {
	t.Parallel()

	client := NewSDKClient("https://api.example.com")

	sess, err := client.NewSessionFromToken(unsignedToken(t, map[string]any{"sub": "u1"}))
	require.NoError(t, err)
	require.Equal(t, "u1", sess.Identity().UserID)

	_, err = client.NewSessionFromToken("corrupt")
	require.Error(t, err)
}
