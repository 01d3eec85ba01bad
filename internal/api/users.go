package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stockyodha/terminal/internal/session"
)

type passwordUpdate struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdateCurrentUser changes the profile fields of the authenticated user and
// refreshes the cached profile in the store.
func (c *Client) UpdateCurrentUser(ctx context.Context, update UserUpdate) (session.User, error) {
	var user session.User
	if err := c.doJSON(ctx, http.MethodPut, "/users/me", nil, update, &user); err != nil {
		return session.User{}, fmt.Errorf("updating profile: %w", err)
	}

	c.store.SetUser(&user)

	return user, nil
}

// UpdatePassword changes the account password. The platform keeps the
// session valid, so no token handling is needed here.
func (c *Client) UpdatePassword(ctx context.Context, current, next string) error {
	payload := passwordUpdate{CurrentPassword: current, NewPassword: next}
	if err := c.doJSON(ctx, http.MethodPatch, "/users/me/password", nil, payload, nil); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	return nil
}
