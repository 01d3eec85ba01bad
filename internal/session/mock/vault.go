// Package sessionmock provides an in-memory Vault with injectable errors for
// unit tests.
package sessionmock

import (
	"context"
	"sync"

	"github.com/stockyodha/terminal/internal/serviceerr"
	"github.com/stockyodha/terminal/internal/session"
)

type Vault struct {
	mu    sync.Mutex
	creds *session.Credentials

	loadErr, storeErr, clearErr error

	storeCalls, clearCalls int
}

func NewVault(loadErr, storeErr, clearErr error) *Vault {
	return &Vault{
		loadErr:  loadErr,
		storeErr: storeErr,
		clearErr: clearErr,
	}
}

// Seed pre-populates the vault, as if a previous run had persisted tokens.
func (v *Vault) Seed(creds session.Credentials) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.creds = &creds
}

func (v *Vault) Load(_ context.Context) (session.Credentials, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.loadErr != nil {
		return session.Credentials{}, v.loadErr
	}

	if v.creds == nil {
		return session.Credentials{}, serviceerr.ErrNoCredentials
	}

	return *v.creds, nil
}

func (v *Vault) Store(_ context.Context, creds session.Credentials) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.storeCalls++
	if v.storeErr != nil {
		return v.storeErr
	}

	v.creds = &creds

	return nil
}

func (v *Vault) Clear(_ context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.clearCalls++
	if v.clearErr != nil {
		return v.clearErr
	}

	v.creds = nil

	return nil
}

// Stored returns the currently persisted credentials, or false when empty.
func (v *Vault) Stored() (session.Credentials, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.creds == nil {
		return session.Credentials{}, false
	}

	return *v.creds, true
}

func (v *Vault) StoreCalls() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.storeCalls
}

func (v *Vault) ClearCalls() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.clearCalls
}
