// Package gateway decorates every outgoing platform API call with the current
// bearer credential and recovers expired-token failures through a single
// coordinated refresh.
package gateway

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	slogctx "github.com/veqryn/slog-context"
)

// TokenSource is the slice of the credential store the gateway needs. Only
// the store mutates session state; the gateway calls its designated
// operations.
type TokenSource interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(ctx context.Context, access, refresh string)
	Logout(ctx context.Context)
}

// RefreshFunc performs the token refresh network call and returns the new
// access/refresh pair.
type RefreshFunc func(ctx context.Context, refreshToken string) (access, refresh string, err error)

// Transport is an http.RoundTripper that attaches the bearer credential and
// hands authorization failures to the refresh coordinator. Responses other
// than 401 pass through unchanged.
type Transport struct {
	next        http.RoundTripper
	store       TokenSource
	coordinator *Coordinator

	// Paths of the auth endpoints that must never be replayed: a 401 from
	// the refresh endpoint is fatal for the session, a 401 from the logout
	// endpoint is ignored so that Logout stays re-entrant.
	refreshPath string
	logoutPath  string
}

func NewTransport(next http.RoundTripper, store TokenSource, refresh RefreshFunc, refreshPath, logoutPath string) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}

	return &Transport{
		next:        next,
		store:       store,
		coordinator: NewCoordinator(store, refresh, next),
		refreshPath: refreshPath,
		logoutPath:  logoutPath,
	}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := uuid.New().String()
	ctx := slogctx.With(req.Context(), "request_id", requestID)

	out := req.Clone(ctx)
	out.Header.Set("X-Request-Id", requestID)

	token := t.store.AccessToken()
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(out)
	recordRequest(ctx, out, resp, time.Since(start), err)

	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// The refresh call itself was rejected: never attempt a second
	// refresh, the session is over.
	if out.URL.Path == t.refreshPath {
		slogctx.Warn(ctx, "Refresh endpoint rejected the credential, logging out")
		t.store.Logout(context.WithoutCancel(ctx))

		return resp, nil
	}

	// The request went out without a bearer token (e.g. a login with bad
	// credentials), so the 401 cannot mean "expired access token".
	if token == "" {
		return resp, nil
	}

	// A 401 on the best-effort logout call is not worth a refresh.
	if out.URL.Path == t.logoutPath {
		return resp, nil
	}

	// A body we cannot rewind cannot be replayed.
	if out.Body != nil && out.GetBody == nil {
		return resp, nil
	}

	drainBody(resp)

	slogctx.Debug(ctx, "Authorization failure, entering refresh protocol", "path", out.URL.Path)

	return t.coordinator.Retry(out)
}

// drainBody discards and closes the response body so the underlying
// connection can be reused for the replay.
func drainBody(resp *http.Response) {
	if resp.Body == nil {
		return
	}

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
