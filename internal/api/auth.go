package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/stockyodha/terminal/internal/session"
)

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login exchanges the credentials for a token pair and installs it in the
// store. The token endpoint expects an OAuth2 password form.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var tokens tokenResponse
	if err := c.doForm(ctx, "/auth/token", form, &tokens); err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	c.store.SetTokens(ctx, tokens.AccessToken, tokens.RefreshToken)

	return nil
}

// Register creates a new platform account. It does not log the user in.
func (c *Client) Register(ctx context.Context, user UserCreate) (session.User, error) {
	var created session.User
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, user, &created); err != nil {
		return session.User{}, fmt.Errorf("registering user: %w", err)
	}

	return created, nil
}

// refreshTokens is the gateway's refresh call. It rides the same transport,
// so a 401 from the refresh endpoint ends the session via the gateway's
// pass-through rule instead of recursing.
func (c *Client) refreshTokens(ctx context.Context, refreshToken string) (string, string, error) {
	var tokens tokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/refresh", nil, refreshRequest{RefreshToken: refreshToken}, &tokens); err != nil {
		return "", "", fmt.Errorf("refreshing tokens: %w", err)
	}

	return tokens.AccessToken, tokens.RefreshToken, nil
}

// EndSession invalidates the refresh token server-side. The store treats it
// as best-effort.
func (c *Client) EndSession(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil, nil); err != nil {
		return fmt.Errorf("ending session: %w", err)
	}

	return nil
}

// CurrentUser fetches the profile of the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (session.User, error) {
	var user session.User
	if err := c.get(ctx, "/users/me", nil, &user); err != nil {
		return session.User{}, fmt.Errorf("fetching profile: %w", err)
	}

	return user, nil
}
