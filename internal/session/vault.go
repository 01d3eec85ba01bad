package session

import "context"

// Vault persists the Credentials projection across restarts. Implementations
// store the JSON-encoded two-token object under a single fixed key.
type Vault interface {
	// Load returns the persisted credentials, or serviceerr.ErrNoCredentials
	// when nothing has been stored yet.
	Load(ctx context.Context) (Credentials, error)
	Store(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
}
