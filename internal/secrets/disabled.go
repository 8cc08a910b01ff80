package secrets

import "errors"

// errDisabled is returned by every Disabled operation.
var errDisabled = errors.New("keyring disabled")

// Disabled is a Store for environments where the platform keychain must not
// be touched, such as integration tests. Every operation fails, which
// downgrades field encryption to plaintext storage.
type Disabled struct{}

var _ Store = Disabled{}

func (Disabled) Get(service, user string) (string, error) {
	return "", errDisabled
}

func (Disabled) Set(service, user, secret string) error {
	return errDisabled
}

func (Disabled) Delete(service, user string) error {
	return errDisabled
}
