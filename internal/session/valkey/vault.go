// Package sessionvalkey persists the session credentials in ValKey, for
// deployments where the terminal runs as a long-lived service and the local
// filesystem is not durable.
package sessionvalkey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/valkey-io/valkey-go"

	"github.com/stockyodha/terminal/internal/serviceerr"
	"github.com/stockyodha/terminal/internal/session"
)

const objectTypeCredentials = "credentials"

type Vault struct {
	valkey  valkey.Client
	prefix  string
	profile string
}

// NewVault stores the credentials of one profile under
// "<prefix>:credentials:<profile>".
func NewVault(valkeyClient valkey.Client, prefix, profile string) *Vault {
	prefix = strings.TrimSuffix(prefix, ":")

	return &Vault{
		valkey:  valkeyClient,
		prefix:  prefix,
		profile: profile,
	}
}

func (v *Vault) Load(ctx context.Context) (session.Credentials, error) {
	bytes, err := v.valkey.Do(ctx, v.valkey.B().Get().Key(v.key()).Build()).AsBytes()
	if err != nil {
		valkeyErr, ok := valkey.IsValkeyErr(err)
		if ok && valkeyErr.IsNil() {
			return session.Credentials{}, errors.Join(valkeyErr, serviceerr.ErrNoCredentials)
		}

		return session.Credentials{}, fmt.Errorf("executing get command: %w", err)
	}

	var creds session.Credentials
	if err := json.Unmarshal(bytes, &creds); err != nil {
		return session.Credentials{}, fmt.Errorf("decoding credentials: %w", err)
	}

	return creds, nil
}

func (v *Vault) Store(ctx context.Context, creds session.Credentials) error {
	bytes, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	if err := v.valkey.Do(ctx, v.valkey.B().Set().Key(v.key()).Value(valkey.BinaryString(bytes)).Build()).Error(); err != nil {
		return fmt.Errorf("executing set command: %w", err)
	}

	return nil
}

func (v *Vault) Clear(ctx context.Context) error {
	if err := v.valkey.Do(ctx, v.valkey.B().Del().Key(v.key()).Build()).Error(); err != nil {
		return fmt.Errorf("executing del command: %w", err)
	}

	return nil
}

func (v *Vault) key() string {
	return fmt.Sprintf("%s:%s:%s", v.prefix, objectTypeCredentials, v.profile)
}
