package sessionvalkey_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"

	"github.com/stockyodha/terminal/internal/dbtest/valkeytest"
	"github.com/stockyodha/terminal/internal/serviceerr"
	"github.com/stockyodha/terminal/internal/session"
	sessionvalkey "github.com/stockyodha/terminal/internal/session/valkey"
)

var client valkey.Client

func TestMain(m *testing.M) {
	ctx := context.Background()

	valkeyClient, terminate := valkeytest.Start(ctx)
	client = valkeyClient

	code := m.Run()
	terminate(ctx)

	os.Exit(code)
}

func prepareCredentials(t *testing.T, prefix, profile string, creds session.Credentials) {
	t.Helper()

	key := fmt.Sprintf("%s:credentials:%s", prefix, profile)
	err := client.Do(t.Context(), client.B().Set().Key(key).Value(valkey.JSON(creds)).Build()).Error()
	require.NoError(t, err, "inserting credentials")
}

func TestVault_Load(t *testing.T) {
	const prefix = "stockyodha-load-test"

	prepareCredentials(t, prefix, "alice", session.Credentials{
		AccessToken:  "access-alice",
		RefreshToken: "refresh-alice",
	})

	tests := []struct {
		name      string
		profile   string
		wantCreds session.Credentials
		assertErr assert.ErrorAssertionFunc
	}{
		{
			name:      "existing profile",
			profile:   "alice",
			wantCreds: session.Credentials{AccessToken: "access-alice", RefreshToken: "refresh-alice"},
			assertErr: assert.NoError,
		},
		{
			name:    "missing profile",
			profile: "nobody",
			assertErr: func(t assert.TestingT, err error, _ ...any) bool {
				return assert.ErrorIs(t, err, serviceerr.ErrNoCredentials)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vault := sessionvalkey.NewVault(client, prefix, tt.profile)

			got, err := vault.Load(t.Context())
			tt.assertErr(t, err)
			assert.Equal(t, tt.wantCreds, got)
		})
	}
}

func TestVault_StoreAndClear(t *testing.T) {
	const prefix = "stockyodha-store-test"

	vault := sessionvalkey.NewVault(client, prefix+":", "default")

	creds := session.Credentials{AccessToken: "a1", RefreshToken: "r1"}
	require.NoError(t, vault.Store(t.Context(), creds))

	got, err := vault.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, creds, got)

	// Overwrite with a refreshed pair.
	refreshed := session.Credentials{AccessToken: "a2", RefreshToken: "r2"}
	require.NoError(t, vault.Store(t.Context(), refreshed))

	got, err = vault.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, refreshed, got)

	require.NoError(t, vault.Clear(t.Context()))

	_, err = vault.Load(t.Context())
	assert.ErrorIs(t, err, serviceerr.ErrNoCredentials)

	// Clearing twice must not fail.
	assert.NoError(t, vault.Clear(t.Context()))
}
