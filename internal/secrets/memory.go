package secrets

import (
	"sync"

	"github.com/calmworks/breathcheck/pkg/types"
)

// Compile-time interface check: Memory must implement Store.
var _ Store = (*Memory)(nil)

// Memory is an in-memory Store for tests and keyring-less environments.
// Secrets are lost when the process exits.
type Memory struct {
	mu     sync.Mutex
	values map[string]string

	// FailWrites makes Set and Delete return an error, simulating an
	// unavailable keyring backend.
	FailWrites bool
	// FailReads makes Get return an error other than ErrSecretNotFound.
	FailReads bool
}

// NewMemory returns an empty in-memory secret store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// errBackend simulates a keyring backend failure.
var errBackend = &backendError{}

type backendError struct{}

func (*backendError) Error() string { return "secret backend unavailable" }

// Get returns the stored secret or types.ErrSecretNotFound.
func (m *Memory) Get(service, user string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads {
		return "", errBackend
	}
	secret, ok := m.values[service+"\x00"+user]
	if !ok {
		return "", types.ErrSecretNotFound
	}
	return secret, nil
}

// Set stores the secret, replacing any existing entry.
func (m *Memory) Set(service, user, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errBackend
	}
	m.values[service+"\x00"+user] = secret
	return nil
}

// Delete removes the entry. Deleting a missing entry is not an error.
func (m *Memory) Delete(service, user string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errBackend
	}
	delete(m.values, service+"\x00"+user)
	return nil
}

// Len reports the number of stored secrets.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}
