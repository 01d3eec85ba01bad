package gateway

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	slogctx "github.com/veqryn/slog-context"

	"github.com/stockyodha/terminal/internal/serviceerr"
)

type result struct {
	resp *http.Response
	err  error
}

type pending struct {
	req  *http.Request
	done chan result
}

// Coordinator serializes token refreshes. However many requests fail with a
// 401 concurrently, at most one refresh call is in flight; the rest queue up
// and are replayed in arrival order once the refresh settles.
type Coordinator struct {
	store   TokenSource
	refresh RefreshFunc

	// base is the transport below the gateway. Replays go through it
	// directly so a replayed request can never re-enter the retry path.
	base http.RoundTripper

	mu         sync.Mutex
	refreshing bool
	queue      []*pending
}

func NewCoordinator(store TokenSource, refresh RefreshFunc, base http.RoundTripper) *Coordinator {
	return &Coordinator{
		store:   store,
		refresh: refresh,
		base:    base,
	}
}

// Retry enqueues the failed request and blocks until the refresh settles and
// the request has been replayed (or rejected), or until the request's own
// context is done.
func (c *Coordinator) Retry(req *http.Request) (*http.Response, error) {
	entry := &pending{req: req, done: make(chan result, 1)}

	c.mu.Lock()
	c.queue = append(c.queue, entry)
	if !c.refreshing {
		c.refreshing = true
		// The refresh outcome is shared by every queued request, so it
		// must not die with the one caller that happened to trigger it.
		go c.runRefresh(context.WithoutCancel(req.Context()))
	}
	c.mu.Unlock()

	select {
	case res := <-entry.done:
		return res.resp, res.err
	case <-req.Context().Done():
		// The drain settles every entry exactly once; a replay that raced
		// the cancellation still needs its response closed.
		go func() {
			if res := <-entry.done; res.resp != nil {
				drainBody(res.resp)
			}
		}()

		return nil, req.Context().Err()
	}
}

func (c *Coordinator) runRefresh(ctx context.Context) {
	var (
		access, refresh string
		err             error
	)

	if current := c.store.RefreshToken(); current == "" {
		// Nothing to present to the refresh endpoint; skip the network
		// call and fail the cycle outright.
		err = serviceerr.ErrNoRefreshToken
	} else {
		access, refresh, err = c.refresh(ctx, current)
	}

	if err == nil {
		c.store.SetTokens(ctx, access, refresh)
		slogctx.Info(ctx, "Access token refreshed")
	} else {
		slogctx.Warn(ctx, "Token refresh failed, ending session", "error", err)
		c.store.Logout(ctx)
	}

	recordRefresh(ctx, err)

	c.mu.Lock()
	queue := c.queue
	c.queue = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, entry := range queue {
		// The caller may have given up while the refresh was running; its
		// request must not be replayed on its behalf.
		if ctxErr := entry.req.Context().Err(); ctxErr != nil {
			entry.done <- result{err: ctxErr}
			continue
		}

		if err != nil {
			entry.done <- result{err: fmt.Errorf("refreshing access token: %w", err)}
			continue
		}

		entry.done <- c.reissue(entry.req, access)
	}
}

// reissue replays a queued request through the base transport with the fresh
// credential. The stale Authorization header is always overwritten.
func (c *Coordinator) reissue(req *http.Request, token string) result {
	out := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return result{err: fmt.Errorf("rewinding request body: %w", err)}
		}
		out.Body = body
	}
	out.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.base.RoundTrip(out)

	return result{resp: resp, err: err}
}
