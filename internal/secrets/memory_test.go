package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmworks/breathcheck/pkg/types"
)

func TestMemoryStore(t *testing.T) {
	m := NewMemory()

	_, err := m.Get("svc", "user")
	require.ErrorIs(t, err, types.ErrSecretNotFound)

	require.NoError(t, m.Set("svc", "user", "secret-1"))
	got, err := m.Get("svc", "user")
	require.NoError(t, err)
	assert.Equal(t, "secret-1", got)

	// Same service, different user is a distinct entry.
	_, err = m.Get("svc", "other")
	require.ErrorIs(t, err, types.ErrSecretNotFound)

	require.NoError(t, m.Set("svc", "user", "secret-2"))
	got, err = m.Get("svc", "user")
	require.NoError(t, err)
	assert.Equal(t, "secret-2", got)

	require.NoError(t, m.Delete("svc", "user"))
	_, err = m.Get("svc", "user")
	require.ErrorIs(t, err, types.ErrSecretNotFound)

	// Deleting again is still fine.
	require.NoError(t, m.Delete("svc", "user"))
}

func TestMemoryStoreFailures(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set("svc", "user", "x"))

	m.FailReads = true
	_, err := m.Get("svc", "user")
	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrSecretNotFound)

	m.FailWrites = true
	require.Error(t, m.Set("svc", "other", "y"))
	require.Error(t, m.Delete("svc", "user"))
}

func TestDisabledStoreFailsEverything(t *testing.T) {
	d := Disabled{}

	_, err := d.Get("svc", "user")
	require.Error(t, err)
	// Not a missing-entry condition; callers must degrade, not create.
	assert.NotErrorIs(t, err, types.ErrSecretNotFound)

	require.Error(t, d.Set("svc", "user", "x"))
	require.Error(t, d.Delete("svc", "user"))
}
