package secrets

import "errors"

var (
	ErrEmptySecret         = errors.New("secrets: secret and info must not be empty")
	ErrKeyDerivationFailed = errors.New("secrets: key derivation failed")
)
