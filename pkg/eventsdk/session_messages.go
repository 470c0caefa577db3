package eventsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ListEventMessages retrieves an event's messages ordered ascending by
// creation time. sinceID narrows to messages after that id (for polling);
// limit caps the page, 0 meaning the server default.
func (s *Session) ListEventMessages(ctx context.Context, eventID, sinceID string, limit int) ([]Message, error) {
	path := "/messages/event/" + eventID
	query := url.Values{}
	if sinceID != "" {
		query.Set("since", sinceID)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var data messagesData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return data.Messages, nil
}

// SendMessage posts a chat message and returns the stored copy with its
// server-assigned id and timestamp.
func (s *Session) SendMessage(ctx context.Context, eventID, content string) (*Message, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/messages/event/"+eventID, SendMessageRequest{
		Content: content,
	})
	if err != nil {
		return nil, err
	}

	var data messageData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return &data.Message, nil
}

// UnreadCounts returns per-event unread message counts for the given
// event ids, keyed by event id.
func (s *Session) UnreadCounts(ctx context.Context, eventIDs []string) (map[string]int, error) {
	path := "/messages/unread-counts"
	if len(eventIDs) > 0 {
		query := url.Values{}
		query.Set("eventIds", strings.Join(eventIDs, ","))
		path += "?" + query.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var data unreadCountsData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	return data.UnreadCounts, nil
}
