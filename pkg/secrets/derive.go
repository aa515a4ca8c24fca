package secrets

import (
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the length of derived keys in bytes.
const KeySize = 32

// salt provides domain separation for every key derived by this module.
const salt = "formguard-secrets-v1"

// DeriveKey returns a KeySize-byte key bound to info.
// The same secret and info always produce the same key.
func DeriveKey(secret []byte, info string) ([]byte, error) {
	if len(secret) == 0 || info == "" {
		return nil, ErrEmptySecret
	}

	r := hkdf.New(sha256.New, secret, []byte(salt), []byte(info))

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return key, nil
}
