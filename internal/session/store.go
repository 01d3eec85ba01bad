// Package session owns the process-wide authentication state of the terminal
// client: the two bearer tokens, the cached user profile, and the hydration
// flag. The Store is the only component allowed to mutate that state; every
// other package reads it or calls the Store's operations.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	slogctx "github.com/veqryn/slog-context"

	"github.com/stockyodha/terminal/internal/serviceerr"
)

// AuthBackend is the slice of the platform API the Store needs: fetching the
// profile of the current user and terminating the session server-side. It is
// bound after construction because the API client itself depends on the Store
// for its bearer token.
type AuthBackend interface {
	CurrentUser(ctx context.Context) (User, error)
	EndSession(ctx context.Context) error
}

// Store holds the Session record. All methods are safe for concurrent use.
type Store struct {
	mu           sync.Mutex
	accessToken  string
	refreshToken string
	user         *User
	hydrated     bool

	vault   Vault
	backend AuthBackend

	fetchWG sync.WaitGroup
}

func NewStore(vault Vault) *Store {
	return &Store{vault: vault}
}

// Bind attaches the platform API the Store uses for profile fetches and
// server-side session termination. Must be called once during wiring, before
// Hydrate.
func (s *Store) Bind(backend AuthBackend) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backend = backend
}

// AccessToken returns the current access token, or "" when absent.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.accessToken
}

// RefreshToken returns the current refresh token, or "" when absent.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.refreshToken
}

// IsAuthenticated is true iff an access token is present. There is no other
// authentication signal.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.accessToken != ""
}

// User returns the cached profile, which may be nil even when authenticated.
func (s *Store) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.user
}

// Hydrated reports whether persisted tokens have been loaded at startup.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hydrated
}

// Snapshot returns a consistent copy of the whole session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		AccessToken:     s.accessToken,
		RefreshToken:    s.refreshToken,
		IsAuthenticated: s.accessToken != "",
		User:            s.user,
		Hydrated:        s.hydrated,
	}
}

// SetTokens replaces both tokens and persists the new pair. A non-empty
// access token marks the session authenticated and schedules a profile fetch;
// an empty one also clears the cached user.
func (s *Store) SetTokens(ctx context.Context, access, refresh string) {
	s.mu.Lock()
	s.accessToken = access
	s.refreshToken = refresh
	if access == "" {
		s.user = nil
	}

	if err := s.vault.Store(ctx, Credentials{AccessToken: access, RefreshToken: refresh}); err != nil {
		slogctx.Warn(ctx, "Failed to persist session tokens", "error", err)
	}
	s.mu.Unlock()

	if access != "" {
		s.scheduleProfileFetch(ctx)
	}
}

// SetUser replaces the cached profile without touching the tokens.
func (s *Store) SetUser(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// FetchUser loads the profile of the authenticated user from the platform.
//
// Without an access token it resets the in-memory state to logged out and
// returns nil. An authorization failure is returned untouched: the gateway's
// refresh protocol owns that case and the Store must not log out underneath
// an in-flight refresh. Any other failure invalidates the session.
func (s *Store) FetchUser(ctx context.Context) error {
	s.mu.Lock()
	token := s.accessToken
	backend := s.backend
	if token == "" {
		s.user = nil
		s.mu.Unlock()

		return nil
	}
	s.mu.Unlock()

	if backend == nil {
		return errors.New("no auth backend bound")
	}

	user, err := backend.CurrentUser(ctx)
	if err != nil {
		if serviceerr.IsAuthError(err) {
			return fmt.Errorf("fetching current user: %w", err)
		}

		slogctx.Warn(ctx, "Profile fetch failed, invalidating session", "error", err)
		s.Logout(ctx)

		return fmt.Errorf("fetching current user: %w", err)
	}

	s.SetUser(&user)

	return nil
}

// Logout terminates the session. The server-side call is best-effort: its
// failure is logged and never blocks the local cleanup. Safe to call multiple
// times and from any state.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	backend := s.backend
	loggedIn := s.accessToken != ""
	s.mu.Unlock()

	if backend != nil && loggedIn {
		if err := backend.EndSession(ctx); err != nil {
			slogctx.Warn(ctx, "Session termination call failed", "error", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.refreshToken = ""
	s.user = nil

	if err := s.vault.Clear(ctx); err != nil {
		slogctx.Warn(ctx, "Failed to clear persisted tokens", "error", err)
	}
}

// Hydrate loads the persisted tokens once at startup. The hydrated flag is
// set on every path, including failures, so that dependents never block on a
// broken vault. A found access token schedules a profile fetch.
func (s *Store) Hydrate(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.hydrated = true
		s.mu.Unlock()
	}()

	creds, err := s.vault.Load(ctx)
	if err != nil {
		if errors.Is(err, serviceerr.ErrNoCredentials) {
			return nil
		}

		return fmt.Errorf("loading persisted credentials: %w", err)
	}

	s.mu.Lock()
	s.accessToken = creds.AccessToken
	s.refreshToken = creds.RefreshToken
	s.mu.Unlock()

	if creds.AccessToken != "" {
		s.scheduleProfileFetch(ctx)
	}

	return nil
}

// WaitProfile blocks until all scheduled profile fetches have settled.
func (s *Store) WaitProfile() {
	s.fetchWG.Wait()
}

func (s *Store) scheduleProfileFetch(ctx context.Context) {
	s.mu.Lock()
	backend := s.backend
	s.mu.Unlock()
	if backend == nil {
		return
	}

	// The fetch must survive the triggering request's deadline.
	ctx = context.WithoutCancel(ctx)

	s.fetchWG.Add(1)
	go func() {
		defer s.fetchWG.Done()

		if err := s.FetchUser(ctx); err != nil {
			slogctx.Warn(ctx, "Scheduled profile fetch failed", "error", err)
		}
	}()
}
