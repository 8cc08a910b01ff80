// Unit tests for key resolution and the unconfigured paths. Live API
// behavior is exercised through the Generator interface with fakes in the
// service tests.
package ai

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmworks/breathcheck/internal/secrets"
	"github.com/calmworks/breathcheck/pkg/types"
)

func newTestClient(store *secrets.Memory, apiKey string) *Client {
	return NewClient("BreathCheck", apiKey, store, "", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestConfigured(t *testing.T) {
	tests := []struct {
		name     string
		override string
		stored   string
		want     bool
	}{
		{name: "no key anywhere", want: false},
		{name: "explicit key", override: "sk-test", want: true},
		{name: "keyring key", stored: "sk-ring", want: true},
		{name: "explicit wins over keyring", override: "sk-test", stored: "sk-ring", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := secrets.NewMemory()
			if tt.stored != "" {
				require.NoError(t, store.Set("BreathCheck", keyUser, tt.stored))
			}
			c := newTestClient(store, tt.override)
			assert.Equal(t, tt.want, c.Configured())
		})
	}
}

func TestResolveKeyPrefersOverride(t *testing.T) {
	store := secrets.NewMemory()
	require.NoError(t, store.Set("BreathCheck", keyUser, "sk-ring"))

	c := newTestClient(store, "sk-explicit")
	assert.Equal(t, "sk-explicit", c.resolveKey())

	c = newTestClient(store, "")
	assert.Equal(t, "sk-ring", c.resolveKey())
}

func TestGenerateWithoutKey(t *testing.T) {
	c := newTestClient(secrets.NewMemory(), "")

	_, err := c.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, types.ErrNoAPIKey)
}

func TestStreamWithoutKey(t *testing.T) {
	c := newTestClient(secrets.NewMemory(), "")

	called := false
	err := c.Stream(context.Background(), "prompt", func(string) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, types.ErrNoAPIKey)
	assert.False(t, called, "no tokens without a key")
}

func TestValidateKeyWithoutKey(t *testing.T) {
	c := newTestClient(secrets.NewMemory(), "")

	ok, message := c.ValidateKey(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "No API key found.", message)
}

func TestDefaultModel(t *testing.T) {
	c := newTestClient(secrets.NewMemory(), "")
	assert.Equal(t, DefaultModel, c.Model())

	c = NewClient("BreathCheck", "", secrets.NewMemory(), "gpt-5.2-mini", slog.Default())
	assert.Equal(t, "gpt-5.2-mini", c.Model())
}
