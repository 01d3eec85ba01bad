// Package business wires the terminal's components together: vault, store,
// API client. It also hosts the long-running quote watcher.
package business

import (
	"context"
	"fmt"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/valkey-io/valkey-go"

	slogctx "github.com/veqryn/slog-context"

	"github.com/stockyodha/terminal/internal/api"
	"github.com/stockyodha/terminal/internal/config"
	"github.com/stockyodha/terminal/internal/serviceerr"
	"github.com/stockyodha/terminal/internal/session"
	sessionfile "github.com/stockyodha/terminal/internal/session/file"
	sessionvalkey "github.com/stockyodha/terminal/internal/session/valkey"
)

// Runtime is one wired instance of the terminal: a hydrated credential store
// and the API client bound to it.
type Runtime struct {
	Store  *session.Store
	Client *api.Client

	close func()
}

func NewRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	vault, closeFn, err := newVault(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialising the token vault: %w", err)
	}

	store := session.NewStore(vault)

	client, err := api.NewClient(cfg, store)
	if err != nil {
		closeFn()
		return nil, fmt.Errorf("initialising the API client: %w", err)
	}

	store.Bind(client)

	// A broken vault degrades to a logged-out session, it never blocks the
	// terminal from starting.
	if err := store.Hydrate(ctx); err != nil {
		slogctx.Warn(ctx, "Session hydration failed, starting logged out", "error", err)
	}

	return &Runtime{Store: store, Client: client, close: closeFn}, nil
}

func (r *Runtime) Close() {
	if r.close != nil {
		r.close()
	}
}

// RequireAuth fails fast for operations that need a session, before any
// network call is made.
func (r *Runtime) RequireAuth() error {
	if !r.Store.IsAuthenticated() {
		return serviceerr.ErrNotAuthenticated
	}

	return nil
}

func newVault(cfg *config.Config) (session.Vault, func(), error) {
	switch cfg.Vault.Backend {
	case config.VaultBackendValKey:
		return newValkeyVault(cfg)
	case config.VaultBackendFile, "":
		path := cfg.Vault.Path
		if path == "" {
			var err error

			path, err = sessionfile.DefaultPath()
			if err != nil {
				return nil, nil, fmt.Errorf("resolving default credentials path: %w", err)
			}
		}

		return sessionfile.NewVault(path), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown vault backend %q", cfg.Vault.Backend)
	}
}

func newValkeyVault(cfg *config.Config) (session.Vault, func(), error) {
	valkeyHost, err := commoncfg.LoadValueFromSourceRef(cfg.Vault.Host)
	if err != nil {
		return nil, nil, fmt.Errorf("loading valkey host: %w", err)
	}

	valkeyUsername, err := commoncfg.LoadValueFromSourceRef(cfg.Vault.User)
	if err != nil {
		return nil, nil, fmt.Errorf("loading valkey username: %w", err)
	}

	valkeyPassword, err := commoncfg.LoadValueFromSourceRef(cfg.Vault.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("loading valkey password: %w", err)
	}

	valkeyClient, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{string(valkeyHost)},
		Username:    string(valkeyUsername),
		Password:    string(valkeyPassword),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating a new valkey client: %w", err)
	}

	return sessionvalkey.NewVault(valkeyClient, cfg.Vault.Prefix, cfg.Vault.Profile), valkeyClient.Close, nil
}
