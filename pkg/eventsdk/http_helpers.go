package eventsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// envelope is the uniform response wrapper every endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doRequest performs an unauthenticated request (no Authorization header).
// JSON bodies are encoded here so callers pass plain request structs.
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	body any,
) (*http.Response, error) {
	return c.send(ctx, method, path, body, "")
}

// doAuthRequest performs a request with the session's bearer token.
func (s *Session) doAuthRequest(
	ctx context.Context,
	method, path string,
	body any,
) (*http.Response, error) {
	return s.client.send(ctx, method, path, body, s.token)
}

func (c *SDKClient) send(
	ctx context.Context,
	method, path string,
	body any,
	token string,
) (*http.Response, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Message: err.Error()}
	}
	return resp, nil
}

// decodeData unwraps the response envelope into target. Non-2xx statuses
// and success=false envelopes become *APIError. target may be nil when the
// caller only cares about success.
func decodeData(resp *http.Response, target any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Kind: KindTransport, Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, body)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &APIError{
			Kind:    KindTransport,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("malformed response: %v", err),
		}
	}
	if !env.Success {
		e := parseAPIError(resp.StatusCode, body)
		// A 2xx with success=false is still a rejection; treat it as a
		// conflict unless the status already says otherwise.
		if e.Kind == KindTransport {
			e.Kind = KindConflict
		}
		return e
	}

	if target == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		return &APIError{
			Kind:    KindTransport,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("malformed data payload: %v", err),
		}
	}
	return nil
}
