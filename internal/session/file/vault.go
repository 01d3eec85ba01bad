// Package sessionfile persists the session credentials in a single JSON file,
// the default vault backend for interactive CLI use.
package sessionfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/stockyodha/terminal/internal/serviceerr"
	"github.com/stockyodha/terminal/internal/session"
)

type Vault struct {
	path string
}

func NewVault(path string) *Vault {
	return &Vault{path: path}
}

// DefaultPath returns $HOME/.stockyodha/credentials.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(home, ".stockyodha", "credentials.json"), nil
}

func (v *Vault) Load(_ context.Context) (session.Credentials, error) {
	data, err := os.ReadFile(v.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return session.Credentials{}, serviceerr.ErrNoCredentials
		}

		return session.Credentials{}, fmt.Errorf("reading credentials file: %w", err)
	}

	var creds session.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return session.Credentials{}, fmt.Errorf("decoding credentials file: %w", err)
	}

	return creds, nil
}

// Store writes the credentials atomically: a temp file in the same directory
// is renamed over the target so a crash never leaves a torn file behind.
func (v *Vault) Store(_ context.Context, creds session.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	dir := filepath.Dir(v.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("creating temp credentials file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("writing credentials: %w", err)
	}

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("restricting credentials file mode: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("closing temp credentials file: %w", err)
	}

	if err := os.Rename(tmp.Name(), v.path); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("replacing credentials file: %w", err)
	}

	return nil
}

func (v *Vault) Clear(_ context.Context) error {
	if err := os.Remove(v.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing credentials file: %w", err)
	}

	return nil
}
