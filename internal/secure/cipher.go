// Package secure provides field-level encryption for stored data and master
// password handling. Both lean on the platform keychain through the secrets
// store and degrade to plaintext operation when it is unavailable, so a
// missing keyring never blocks the app.
package secure

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/fernet/fernet-go"

	"github.com/calmworks/breathcheck/internal/secrets"
)

// encPrefix marks encrypted values at rest. Values without it are legacy
// plaintext rows and pass through decryption unchanged.
const encPrefix = "enc:"

// Keychain coordinates for the encryption key, derived from the app name.
const (
	encServiceSuffix = "-enc"
	encUser          = "key"
)

// Encryption status messages shown on the settings surface.
const (
	statusEnabled     = "Local encryption is enabled. Your data is stored encrypted on this device."
	statusUnavailable = "Local encryption is unavailable (keyring not accessible)."
)

// Cipher encrypts and decrypts individual fields with a Fernet key held in
// the platform keychain. The key is generated lazily on first use and cached
// for the life of the process. All operations are best-effort: when no key
// can be obtained, values pass through unchanged.
type Cipher struct {
	app   string
	store secrets.Store
	log   *slog.Logger

	mu     sync.Mutex
	key    *fernet.Key
	warned bool
}

// NewCipher returns a Cipher for the given app name backed by store.
func NewCipher(app string, store secrets.Store, logger *slog.Logger) *Cipher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cipher{app: app, store: store, log: logger}
}

func (c *Cipher) service() string {
	return c.app + encServiceSuffix
}

// Encrypt returns plain as an "enc:" prefixed Fernet token. Empty input stays
// empty and already-encrypted input is returned unchanged, so re-encrypting
// a stored value is a no-op. When no key is available the plaintext is
// returned unchanged and the degrade is logged once.
func (c *Cipher) Encrypt(plain string) string {
	if plain == "" {
		return ""
	}
	if strings.HasPrefix(plain, encPrefix) {
		return plain
	}
	key := c.fernetKey()
	if key == nil {
		return plain
	}
	token, err := fernet.EncryptAndSign([]byte(plain), key)
	if err != nil {
		c.log.Warn("encrypting field failed, storing plaintext", "error", err)
		return plain
	}
	return encPrefix + string(token)
}

// Decrypt reverses Encrypt. Values without the "enc:" prefix are returned
// unchanged, as are tokens that fail verification (for example after the key
// was lost). Decrypt never fails.
func (c *Cipher) Decrypt(text string) string {
	if text == "" {
		return ""
	}
	if !strings.HasPrefix(text, encPrefix) {
		return text
	}
	key := c.fernetKey()
	if key == nil {
		return text
	}
	msg := fernet.VerifyAndDecrypt([]byte(text[len(encPrefix):]), 0, []*fernet.Key{key})
	if msg == nil {
		return text
	}
	return string(msg)
}

// EnsureKey creates the encryption key if it does not exist yet and reports
// whether encryption is usable.
func (c *Cipher) EnsureKey() bool {
	return c.fernetKey() != nil
}

// DeleteKey removes the encryption key from the keychain and drops the
// cached copy. Best-effort: failures are logged, not returned.
func (c *Cipher) DeleteKey() {
	c.mu.Lock()
	c.key = nil
	c.mu.Unlock()
	if err := c.store.Delete(c.service(), encUser); err != nil {
		c.log.Warn("deleting encryption key failed", "error", err)
	}
}

// Status reports whether encryption is active together with the user-facing
// status line.
func (c *Cipher) Status() (bool, string) {
	if c.EnsureKey() {
		return true, statusEnabled
	}
	return false, statusUnavailable
}

// fernetKey returns the cached key, loading or generating it as needed.
// Returns nil when the keychain cannot provide one.
func (c *Cipher) fernetKey() *fernet.Key {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.key != nil {
		return c.key
	}

	encoded, err := c.store.Get(c.service(), encUser)
	if err == nil {
		key, decErr := fernet.DecodeKey(encoded)
		if decErr != nil {
			c.warnOnce("stored encryption key is unreadable", decErr)
			return nil
		}
		c.key = key
		return c.key
	}

	// Missing or unreadable: try to generate and store a fresh key.
	var key fernet.Key
	if genErr := key.Generate(); genErr != nil {
		c.warnOnce("generating encryption key failed", genErr)
		return nil
	}
	if setErr := c.store.Set(c.service(), encUser, key.Encode()); setErr != nil {
		c.warnOnce("storing encryption key failed, data will not be encrypted", setErr)
		return nil
	}
	c.key = &key
	return c.key
}

// warnOnce logs the first degrade at Warn; repeats stay quiet so bulk
// operations on an unavailable keyring do not flood the log.
func (c *Cipher) warnOnce(msg string, err error) {
	if c.warned {
		return
	}
	c.warned = true
	c.log.Warn(msg, "error", err)
}
