package eventsdk

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// unsignedToken builds an alg=none JWT so identity decoding can be tested
// without a signing key. The client never verifies signatures anyway.
func unsignedToken(t *testing.T, claims map[string]any) string {
	t.Helper()

	header, err := json.Marshal(map[string]string{"alg": "none", "typ": "JWT"})
	require.NoError(t, err)
	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	return base64.RawURLEncoding.EncodeToString(header) + "." +
		base64.RawURLEncoding.EncodeToString(payload) + "."
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: raw})
}

func testSession(t *testing.T, baseURL string) *Session {
	t.Helper()
	client := NewSDKClient(baseURL)
	sess, err := client.NewSessionFromToken(unsignedToken(t, map[string]any{
		"sub": "u1", "email": "alice@example.com", "role": "member",
	}))
	require.NoError(t, err)
	return sess
}

func TestLogin(t *testing.T) {
	t.Parallel()

	token := ""
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "alice@example.com", req.Email)
		require.Equal(t, "hunter2", req.Password)

		writeEnvelope(t, w, authData{
			Token: token,
			User:  User{ID: "u1", Email: "alice@example.com", Role: "member"},
		})
	}))
	defer srv.Close()

	token = unsignedToken(t, map[string]any{
		"sub":          "u1",
		"email":        "alice@example.com",
		"role":         "member",
		"groupAdminOf": []string{"grp-1"},
	})

	client := NewSDKClient(srv.URL)
	sess, err := client.Login(context.Background(), "alice@example.com", "hunter2")
	require.NoError(t, err)

	ident := sess.Identity()
	require.Equal(t, "u1", ident.UserID)
	require.Equal(t, "alice@example.com", ident.Email)
	require.Equal(t, "member", ident.Role)
	require.Equal(t, []string{"grp-1"}, ident.GroupAdminOf)
	require.Equal(t, token, sess.Token())
}

func TestLoginBackfillsIdentityFromUserPayload(t *testing.T) {
	t.Parallel()

	// Claims carry only the subject; email and role come from the user
	// object in the response.
	token := ""
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, authData{
			Token: token,
			User:  User{ID: "u1", Email: "bob@example.com", Role: "admin"},
		})
	}))
	defer srv.Close()

	token = unsignedToken(t, map[string]any{"sub": "u1"})

	sess, err := NewSDKClient(srv.URL).Login(context.Background(), "bob@example.com", "pw")
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", sess.Identity().Email)
	require.Equal(t, "admin", sess.Identity().Role)
}

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		kind   ErrorKind
	}{
		{http.StatusBadRequest, KindValidation},
		{http.StatusUnauthorized, KindPermissionDenied},
		{http.StatusForbidden, KindPermissionDenied},
		{http.StatusNotFound, KindNotFound},
		{http.StatusConflict, KindConflict},
		{http.StatusInternalServerError, KindTransport},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("status %d", tc.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_ = json.NewEncoder(w).Encode(envelope{Success: false, Message: "nope"})
			}))
			defer srv.Close()

			_, err := NewSDKClient(srv.URL).Login(context.Background(), "a@b.c", "pw")
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tc.kind, apiErr.Kind)
			require.Equal(t, tc.status, apiErr.Status)
			require.Equal(t, "nope", apiErr.Message)
		})
	}
}

func TestSuccessFalseBecomesConflict(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(envelope{Success: false, Message: "event is full"})
	}))
	defer srv.Close()

	sess := testSession(t, srv.URL)
	_, err := sess.JoinEvent(context.Background(), "evt-1")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, KindConflict, apiErr.Kind)
	require.Equal(t, "event is full", apiErr.Message)
}

func TestTransportFailure(t *testing.T) {
	t.Parallel()

	// Nothing listens here.
	client := NewSDKClient("http://127.0.0.1:1")
	_, err := client.Login(context.Background(), "a@b.c", "pw")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, KindTransport, apiErr.Kind)
}

func TestAuthenticatedRequestsCarryBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(t, w, groupsData{Groups: []Group{{ID: "grp-1", Name: "Hiking Club", AdminID: "main"}}})
	}))
	defer srv.Close()

	sess := testSession(t, srv.URL)
	groups, err := sess.ListUserGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, "Hiking Club", groups[0].Name)
	require.Equal(t, "Bearer "+sess.Token(), gotAuth)
}

func TestListEventMessagesQuery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/messages/event/evt-1", r.URL.Path)
		require.Equal(t, "m5", r.URL.Query().Get("since"))
		require.Equal(t, "50", r.URL.Query().Get("limit"))

		writeEnvelope(t, w, messagesData{Messages: []Message{
			{ID: "m6", EventID: "evt-1", Sender: Sender{ID: "u2", FirstName: "Bob"}, Content: "hey"},
		}})
	}))
	defer srv.Close()

	sess := testSession(t, srv.URL)
	msgs, err := sess.ListEventMessages(context.Background(), "evt-1", "m5", 50)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, "m6", msgs[0].ID)
	require.Equal(t, "Bob", msgs[0].Sender.FirstName)
}

func TestUnreadCounts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/messages/unread-counts", r.URL.Path)
		require.Equal(t, "evt-1,evt-2", r.URL.Query().Get("eventIds"))
		writeEnvelope(t, w, unreadCountsData{UnreadCounts: map[string]int{"evt-1": 3, "evt-2": 0}})
	}))
	defer srv.Close()

	sess := testSession(t, srv.URL)
	counts, err := sess.UnreadCounts(context.Background(), []string{"evt-1", "evt-2"})
	require.NoError(t, err)
	require.Equal(t, map[string]int{"evt-1": 3, "evt-2": 0}, counts)
}

func TestJoinEventReturnsUpdatedEvent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/events/evt-1/join", r.URL.Path)
		writeEnvelope(t, w, eventData{Event: Event{
			ID: "evt-1", GroupID: "grp-1", Title: "Saturday Hike",
			Waitlist: []string{"u1"},
		}})
	}))
	defer srv.Close()

	sess := testSession(t, srv.URL)
	event, err := sess.JoinEvent(context.Background(), "evt-1")
	require.NoError(t, err)
	require.Equal(t, []string{"u1"}, event.Waitlist)
}

func TestGetInvitePreviewIsUnauthenticated(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		require.Equal(t, "/join/tok-abc", r.URL.Path)

		_, _ = w.Write([]byte(`{"success":true,"data":{"group":{"_id":"grp-1","name":"Hiking Club"}}}`))
	}))
	defer srv.Close()

	preview, err := NewSDKClient(srv.URL).GetInvitePreview(context.Background(), "tok-abc")
	require.NoError(t, err)
	require.Equal(t, "Hiking Club", preview.Group.Name)
}
