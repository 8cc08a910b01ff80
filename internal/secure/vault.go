package secure

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/calmworks/breathcheck/internal/secrets"
)

// Key derivation parameters for the master password digest.
const (
	kdfIterations = 200_000
	kdfKeyLen     = 32
	saltLen       = 16
)

// Keychain coordinates for the master password hash.
const (
	masterServiceSuffix = "-master"
	masterUser          = "hash"
)

// Vault manages the optional master password. Only a salted PBKDF2 digest is
// stored, in the platform keychain, never the password itself. Verification
// is unthrottled; the vault gates the UI, it is not a remote auth boundary.
type Vault struct {
	app    string
	store  secrets.Store
	cipher *Cipher
	log    *slog.Logger
}

// NewVault returns a Vault for the given app name backed by store. The
// cipher is used to ensure the encryption key exists once a password is set.
func NewVault(app string, store secrets.Store, cipher *Cipher, logger *slog.Logger) *Vault {
	if logger == nil {
		logger = slog.Default()
	}
	return &Vault{app: app, store: store, cipher: cipher, log: logger}
}

func (v *Vault) service() string {
	return v.app + masterServiceSuffix
}

// SetMasterPassword derives a fresh salted digest from password and stores it
// as "base64(salt):base64(digest)". Setting a password also ensures the
// encryption key exists, so vault users always get encrypted storage when
// the keychain allows it.
func (v *Vault) SetMasterPassword(password string) error {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("generating salt: %w", err)
	}
	digest := deriveKey(password, salt)
	payload := base64.StdEncoding.EncodeToString(salt) + ":" + base64.StdEncoding.EncodeToString(digest)

	if err := v.store.Set(v.service(), masterUser, payload); err != nil {
		return fmt.Errorf("storing master password hash: %w", err)
	}
	if v.cipher != nil {
		v.cipher.EnsureKey()
	}
	v.log.Info("master password set")
	return nil
}

// VerifyMasterPassword recomputes the digest with the stored salt and
// compares in constant time. A missing or malformed stored payload verifies
// false; verification never returns an error.
func (v *Vault) VerifyMasterPassword(password string) bool {
	stored, err := v.store.Get(v.service(), masterUser)
	if err != nil {
		return false
	}
	saltPart, digestPart, ok := strings.Cut(stored, ":")
	if !ok {
		return false
	}
	salt, err := base64.StdEncoding.DecodeString(saltPart)
	if err != nil {
		return false
	}
	expected, err := base64.StdEncoding.DecodeString(digestPart)
	if err != nil {
		return false
	}
	actual := deriveKey(password, salt)
	return subtle.ConstantTimeCompare(expected, actual) == 1
}

// HasMasterPassword reports whether a digest is stored.
func (v *Vault) HasMasterPassword() bool {
	_, err := v.store.Get(v.service(), masterUser)
	return err == nil
}

// DeleteMasterPassword removes the stored digest. Best-effort: failures are
// logged, not returned.
func (v *Vault) DeleteMasterPassword() {
	if err := v.store.Delete(v.service(), masterUser); err != nil {
		v.log.Warn("deleting master password hash failed", "error", err)
	}
}

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, kdfIterations, kdfKeyLen, sha256.New)
}
