package secrets

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/calmworks/breathcheck/pkg/types"
)

// Compile-time interface check: System must implement Store.
var _ Store = System{}

// System stores secrets in the operating system keychain (Secret Service on
// Linux, Keychain on macOS, Credential Manager on Windows).
type System struct{}

// Get returns the secret stored under service/user. Returns
// types.ErrSecretNotFound when no entry exists.
func (System) Get(service, user string) (string, error) {
	secret, err := keyring.Get(service, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", types.ErrSecretNotFound
		}
		return "", fmt.Errorf("reading keyring entry %s/%s: %w", service, user, err)
	}
	return secret, nil
}

// Set stores the secret under service/user, replacing any existing entry.
func (System) Set(service, user, secret string) error {
	if err := keyring.Set(service, user, secret); err != nil {
		return fmt.Errorf("writing keyring entry %s/%s: %w", service, user, err)
	}
	return nil
}

// Delete removes the entry under service/user. Deleting a missing entry is
// not an error.
func (System) Delete(service, user string) error {
	if err := keyring.Delete(service, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("deleting keyring entry %s/%s: %w", service, user, err)
	}
	return nil
}
