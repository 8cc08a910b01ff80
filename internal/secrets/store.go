// Package secrets abstracts the platform keychain behind a small store
// interface so the security layer can run against a fake in tests and on
// machines without a usable keyring.
package secrets

// Store reads and writes named secrets. Implementations map their backend's
// missing-entry condition to types.ErrSecretNotFound; any other error means
// the backend itself failed and callers should degrade gracefully.
type Store interface {
	Get(service, user string) (string, error)
	Set(service, user, secret string) error
	Delete(service, user string) error
}
