package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (c *Coordinator) queueLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.queue)
}

func waitForQueueLen(t *testing.T, c *Coordinator, want int) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for c.queueLen() != want {
		if time.Now().After(deadline) {
			t.Fatalf("queue never reached length %d (stuck at %d)", want, c.queueLen())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestCoordinator_ReplaysInArrivalOrder(t *testing.T) {
	store := &fakeStore{access: "stale", refresh: "stale-refresh"}

	release := make(chan struct{})
	refresh := func(context.Context, string) (string, string, error) {
		<-release
		return "fresh", "fresh-refresh", nil
	}

	var (
		mu     sync.Mutex
		replay []string
	)

	base := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		mu.Lock()
		replay = append(replay, req.URL.Path)
		mu.Unlock()

		assert.Equal(t, "fresh", bearer(req))

		return newResponse(http.StatusOK, "{}"), nil
	})

	coordinator := NewCoordinator(store, refresh, base)

	const requests = 3

	var wg sync.WaitGroup
	for i := range requests {
		req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, fmt.Sprintf("http://platform/api/v1/orders/%d", i), nil)
		require.NoError(t, err)

		// sequence the arrivals so the order is known
		waitForQueueLen(t, coordinator, i)

		wg.Add(1)
		go func() {
			defer wg.Done()

			resp, err := coordinator.Retry(req)
			if assert.NoError(t, err) {
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				resp.Body.Close()
			}
		}()

		waitForQueueLen(t, coordinator, i+1)
	}

	close(release)
	wg.Wait()

	assert.Equal(t, []string{
		"/api/v1/orders/0",
		"/api/v1/orders/1",
		"/api/v1/orders/2",
	}, replay)
}

func TestCoordinator_RejectsWholeQueueOnFailure(t *testing.T) {
	store := &fakeStore{access: "stale", refresh: "stale-refresh"}

	release := make(chan struct{})
	refreshErr := errors.New("invalid refresh token")
	refresh := func(context.Context, string) (string, string, error) {
		<-release
		return "", "", refreshErr
	}

	base := roundTripFunc(func(*http.Request) (*http.Response, error) {
		t.Error("a failed refresh must not replay anything")
		return nil, errors.New("unexpected replay")
	})

	coordinator := NewCoordinator(store, refresh, base)

	const requests = 2

	var wg sync.WaitGroup
	errs := make([]error, requests)

	for i := range requests {
		req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, "http://platform/api/v1/users/me", nil)
		require.NoError(t, err)

		waitForQueueLen(t, coordinator, i)

		wg.Add(1)
		go func() {
			defer wg.Done()

			resp, err := coordinator.Retry(req) //nolint:bodyclose // no response on error
			assert.Nil(t, resp)
			errs[i] = err
		}()

		waitForQueueLen(t, coordinator, i+1)
	}

	close(release)
	wg.Wait()

	for i := range requests {
		assert.ErrorIs(t, errs[i], refreshErr)
	}

	sets, logouts := store.counts()
	assert.Zero(t, sets)
	assert.Equal(t, 1, logouts)
}

func TestCoordinator_RetryHonorsContext(t *testing.T) {
	store := &fakeStore{access: "stale", refresh: "stale-refresh"}

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	refresh := func(context.Context, string) (string, string, error) {
		<-release
		return "fresh", "fresh-refresh", nil
	}

	base := roundTripFunc(func(*http.Request) (*http.Response, error) {
		return newResponse(http.StatusOK, "{}"), nil
	})

	coordinator := NewCoordinator(store, refresh, base)

	ctx, cancel := context.WithCancel(t.Context())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://platform/api/v1/users/me", nil)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := coordinator.Retry(req) //nolint:bodyclose // no response on error
		done <- err
	}()

	waitForQueueLen(t, coordinator, 1)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Retry did not return after context cancellation")
	}
}

func TestCoordinator_CancelledEntryIsNotReplayed(t *testing.T) {
	store := &fakeStore{access: "stale", refresh: "stale-refresh"}

	release := make(chan struct{})
	refresh := func(context.Context, string) (string, string, error) {
		<-release
		return "fresh", "fresh-refresh", nil
	}

	var (
		mu     sync.Mutex
		replay []string
	)

	base := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		mu.Lock()
		replay = append(replay, req.URL.Path)
		mu.Unlock()

		return newResponse(http.StatusOK, "{}"), nil
	})

	coordinator := NewCoordinator(store, refresh, base)

	ctx, cancel := context.WithCancel(t.Context())

	abandoned, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://platform/api/v1/orders/abandoned", nil)
	require.NoError(t, err)

	kept, err := http.NewRequestWithContext(t.Context(), http.MethodGet, "http://platform/api/v1/orders/kept", nil)
	require.NoError(t, err)

	abandonedDone := make(chan error, 1)
	go func() {
		_, err := coordinator.Retry(abandoned) //nolint:bodyclose // no response on error
		abandonedDone <- err
	}()

	waitForQueueLen(t, coordinator, 1)

	keptDone := make(chan error, 1)
	go func() {
		resp, err := coordinator.Retry(kept)
		if resp != nil {
			_ = resp.Body.Close()
		}
		keptDone <- err
	}()

	waitForQueueLen(t, coordinator, 2)

	// The abandoned caller leaves before the refresh settles.
	cancel()

	select {
	case err := <-abandonedDone:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Retry did not return after context cancellation")
	}

	close(release)

	select {
	case err := <-keptDone:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Retry never settled the remaining request")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/api/v1/orders/kept"}, replay)
}

func TestCoordinator_RewindsRequestBody(t *testing.T) {
	store := &fakeStore{access: "stale", refresh: "stale-refresh"}

	refresh := func(context.Context, string) (string, string, error) {
		return "fresh", "fresh-refresh", nil
	}

	const payload = `{"symbol":"RELIANCE","quantity":5}`

	var got string
	base := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		body, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		got = string(body)

		return newResponse(http.StatusCreated, "{}"), nil
	})

	coordinator := NewCoordinator(store, refresh, base)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, "http://platform/api/v1/orders", strings.NewReader(payload))
	require.NoError(t, err)
	require.NotNil(t, req.GetBody)

	// simulate the first attempt having consumed the body
	_, _ = io.Copy(io.Discard, req.Body)

	resp, err := coordinator.Retry(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, payload, got)
}
