package api

import (
	"context"
	"net/http"

	"github.com/sangamlabs/sangam/internal/logging"
)

// TokenSource supplies the current bearer token, if any. An empty string
// means "no token"; an error means the underlying store failed.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// authTransport wraps a RoundTripper so every outgoing request carries the
// bearer token without call sites fetching it manually. The token lookup is
// a suspension point: dispatch waits for it to resolve.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
	log    logging.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokens.Token(req.Context())
	if err != nil {
		// Degrade gracefully: a storage glitch must not block the user.
		// The request goes out unmodified and the server decides.
		t.log.Warn(req.Context(), "token lookup failed, sending request unauthenticated", "error", err)
		return t.base.RoundTrip(req)
	}

	if token == "" {
		return t.base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(clone)
}
