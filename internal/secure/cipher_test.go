package secure

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmworks/breathcheck/internal/secrets"
)

func newTestCipher(t *testing.T) (*Cipher, *secrets.Memory) {
	t.Helper()
	store := secrets.NewMemory()
	return NewCipher("BreathCheck", store, slog.Default()), store
}

func TestCipherRoundTrip(t *testing.T) {
	c, _ := newTestCipher(t)

	tests := []struct {
		name  string
		plain string
	}{
		{"short text", "woke up anxious before the exam"},
		{"multibyte text", "lunch at the café went fine"},
		{"json payload", `{"worry":"deadline","intensity":7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encrypted := c.Encrypt(tt.plain)
			require.True(t, strings.HasPrefix(encrypted, "enc:"), "expected enc: prefix, got %q", encrypted)
			assert.NotContains(t, encrypted[len("enc:"):], tt.plain)
			assert.Equal(t, tt.plain, c.Decrypt(encrypted))
		})
	}
}

func TestCipherEmptyString(t *testing.T) {
	c, store := newTestCipher(t)

	assert.Equal(t, "", c.Encrypt(""))
	assert.Equal(t, "", c.Decrypt(""))
	// Empty input must not trigger lazy key creation.
	assert.Equal(t, 0, store.Len())
}

func TestCipherEncryptIdempotent(t *testing.T) {
	c, _ := newTestCipher(t)

	once := c.Encrypt("trigger note")
	twice := c.Encrypt(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, "trigger note", c.Decrypt(twice))
}

func TestCipherPlaintextPassthrough(t *testing.T) {
	c, _ := newTestCipher(t)

	// Legacy rows written before encryption was enabled have no prefix.
	assert.Equal(t, "legacy note", c.Decrypt("legacy note"))
}

func TestCipherDegradesWithoutKeyring(t *testing.T) {
	store := secrets.NewMemory()
	store.FailWrites = true
	c := NewCipher("BreathCheck", store, slog.Default())

	// No key can be stored, so values pass through unchanged.
	assert.Equal(t, "plain value", c.Encrypt("plain value"))
	assert.False(t, c.EnsureKey())

	enabled, message := c.Status()
	assert.False(t, enabled)
	assert.Contains(t, message, "unavailable")
}

func TestCipherUndecryptableTokenPassesThrough(t *testing.T) {
	c, _ := newTestCipher(t)
	require.True(t, c.EnsureKey())

	// A prefixed value that is not a valid token for the current key.
	garbled := "enc:not-a-real-token"
	assert.Equal(t, garbled, c.Decrypt(garbled))
}

func TestCipherKeySurvivesAcrossInstances(t *testing.T) {
	store := secrets.NewMemory()
	first := NewCipher("BreathCheck", store, slog.Default())
	token := first.Encrypt("shared secret")

	second := NewCipher("BreathCheck", store, slog.Default())
	assert.Equal(t, "shared secret", second.Decrypt(token))
}

func TestCipherDeleteKey(t *testing.T) {
	c, store := newTestCipher(t)
	token := c.Encrypt("note")
	require.True(t, strings.HasPrefix(token, "enc:"))
	require.Equal(t, 1, store.Len())

	c.DeleteKey()
	assert.Equal(t, 0, store.Len())

	// A new key gets generated on the next use; the old token no longer
	// verifies and passes through unchanged.
	assert.Equal(t, token, c.Decrypt(token))

	enabled, _ := c.Status()
	assert.True(t, enabled)
}

func TestCipherStatusEnabled(t *testing.T) {
	c, _ := newTestCipher(t)
	enabled, message := c.Status()
	assert.True(t, enabled)
	assert.Equal(t, "Local encryption is enabled. Your data is stored encrypted on this device.", message)
}
