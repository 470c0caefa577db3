package eventsdk

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// SDKClient is a client for the Eventable API. It serves the public
// endpoints directly and mints authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Limiter throttles all outgoing requests, shared between the client
	// and every Session it creates. Swap it before first use to tune.
	Limiter *rate.Limiter
}

// NewSDKClient creates a client with a 10s request timeout and a limiter
// sized for interactive use: 5 req/s sustained with a burst of 10.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

// NewSessionFromToken rebuilds an authenticated session from a stored
// access token, e.g. one unsealed from the local cache. The identity is
// decoded from the token's claims; an undecodable token yields an error
// so a corrupt cache fails loudly rather than as a 401 later.
func (c *SDKClient) NewSessionFromToken(token string) (*Session, error) {
	ident, err := identityFromToken(token)
	if err != nil {
		return nil, err
	}
	return &Session{client: c, token: token, identity: ident}, nil
}
