// Package api is the client of the trading platform's REST API. All calls go
// through the gateway transport, which attaches the bearer credential and
// recovers expired tokens transparently.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/stockyodha/terminal/internal/config"
	"github.com/stockyodha/terminal/internal/gateway"
	"github.com/stockyodha/terminal/internal/serviceerr"
	"github.com/stockyodha/terminal/internal/session"
)

type Client struct {
	http    *http.Client
	baseURL *url.URL
	store   *session.Store

	// cache holds read-mostly market data. Mutating calls never touch it.
	cache *gocache.Cache
	ttl   config.Cache
}

// NewClient wires the client against the given credential store. The caller
// is expected to Bind the store to the returned client afterwards.
func NewClient(cfg *config.Config, store *session.Store) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.API.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing API base URL: %w", err)
	}

	c := &Client{
		baseURL: base,
		store:   store,
		cache:   gocache.New(gocache.NoExpiration, cfg.Cache.CleanupInterval),
		ttl:     cfg.Cache,
	}

	transport := gateway.NewTransport(
		http.DefaultTransport,
		store,
		c.refreshTokens,
		base.Path+"/auth/refresh",
		base.Path+"/auth/logout",
	)

	c.http = &http.Client{
		Transport: transport,
		Timeout:   cfg.API.Timeout,
	}

	return c, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path += path

	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u.String()
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}

		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

func (c *Client) doForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
	}

	return nil
}

// decodeError turns the platform's error payload into a coded error. The
// detail field is a plain string for most errors and a structured list for
// request validation failures.
func decodeError(resp *http.Response) error {
	description := http.StatusText(resp.StatusCode)

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && len(payload.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil && detail != "" {
			description = detail
		} else {
			description = string(payload.Detail)
		}
	}

	return serviceerr.FromStatus(resp.StatusCode, description)
}

// cached serves key from the client cache, falling back to fetch and storing
// the result for ttl. A fetch failure is never cached.
func cached[T any](c *Client, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	if hit, ok := c.cache.Get(key); ok {
		if value, ok := hit.(T); ok {
			return value, nil
		}
	}

	value, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}

	c.cache.Set(key, value, ttl)

	return value, nil
}
