package business

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockyodha/terminal/internal/api"
	"github.com/stockyodha/terminal/internal/config"
	"github.com/stockyodha/terminal/internal/serviceerr"
	"github.com/stockyodha/terminal/internal/session"
)

func newTestConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.API.BaseURL = baseURL + "/api/v1"
	cfg.API.Timeout = 5 * time.Second
	cfg.Vault.Backend = config.VaultBackendFile
	cfg.Vault.Path = filepath.Join(t.TempDir(), "credentials.json")
	cfg.Cache.QuoteTTL = time.Minute
	cfg.Cache.TrendsTTL = time.Minute
	cfg.Cache.NewsTTL = time.Minute
	cfg.Cache.CleanupInterval = time.Minute
	cfg.Watch.Interval = 10 * time.Millisecond
	cfg.Watch.Limit = 10

	return cfg
}

// serveProfile answers GET /users/me for any bearer token.
func serveProfile(t *testing.T) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(session.User{
			ID:       "u1",
			Username: "alice",
			Email:    "alice@example.com",
		}))
	}
}

func TestRuntime_HydratesPersistedSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		serveProfile(t)(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := newTestConfig(t, srv.URL)

	// First runtime logs in and persists the tokens.
	first, err := NewRuntime(t.Context(), cfg)
	require.NoError(t, err)
	defer first.Close()

	first.Store.SetTokens(t.Context(), "access-1", "refresh-1")
	first.Store.WaitProfile()

	// A second runtime over the same vault starts authenticated.
	second, err := NewRuntime(t.Context(), cfg)
	require.NoError(t, err)
	defer second.Close()

	second.Store.WaitProfile()

	assert.True(t, second.Store.Hydrated())
	assert.True(t, second.Store.IsAuthenticated())
	assert.Equal(t, "access-1", second.Store.AccessToken())

	user := second.Store.User()
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
}

func TestRuntime_RequireAuth(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/users/me", serveProfile(t))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	rt, err := NewRuntime(t.Context(), newTestConfig(t, srv.URL))
	require.NoError(t, err)
	defer rt.Close()

	err = rt.RequireAuth()
	require.ErrorIs(t, err, serviceerr.ErrNotAuthenticated)

	rt.Store.SetTokens(t.Context(), "access-1", "refresh-1")
	rt.Store.WaitProfile()
	assert.NoError(t, rt.RequireAuth())
}

func TestRuntime_UnknownVaultBackend(t *testing.T) {
	cfg := newTestConfig(t, "http://localhost:0")
	cfg.Vault.Backend = "keychain"

	_, err := NewRuntime(t.Context(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown vault backend")
}

func TestWatchOnce(t *testing.T) {
	price := "2450.00"
	change := "1.25"

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/users/me", serveProfile(t))
	mux.HandleFunc("GET /api/v1/market/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(api.MarketStatus{Status: "OPEN"}))
	})
	mux.HandleFunc("GET /api/v1/watchlists", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode([]api.Watchlist{
			{ID: "w1", Name: "Scratch", IsDefault: false},
			{ID: "w2", Name: "Main", IsDefault: true},
		}))
	})
	mux.HandleFunc("GET /api/v1/watchlists/w2/stocks", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode([]api.WatchlistStock{
			{
				Symbol:   "RELIANCE",
				Exchange: "NSE",
				AddedAt:  "2026-01-02T03:04:05Z",
				Stock: &api.Stock{
					Symbol:   "RELIANCE",
					Exchange: "NSE",
					Name:     "Reliance Industries",
					Info: &api.StockInfo{
						MCID:               "m1",
						Symbol:             "RELIANCE",
						Exchange:           "NSE",
						CurrentPrice:       &price,
						PricePercentChange: &change,
					},
				},
			},
		}))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := newTestConfig(t, srv.URL)

	rt, err := NewRuntime(t.Context(), cfg)
	require.NoError(t, err)
	defer rt.Close()

	// not logged in yet
	err = watchOnce(t.Context(), rt, cfg)
	require.ErrorIs(t, err, serviceerr.ErrNotAuthenticated)

	rt.Store.SetTokens(t.Context(), "access-1", "refresh-1")

	require.NoError(t, watchOnce(t.Context(), rt, cfg))
}
