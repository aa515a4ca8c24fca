// Package secrets derives purpose-specific keys from a single application
// secret.
//
// DeriveKey runs HKDF-SHA-256 over the secret with a caller-chosen info
// string, so one configured secret can key several independent primitives
// (for example the token HMAC and the binding cookie signature) without the
// keys being related in any usable way.
//
// # Usage
//
//	import "github.com/dmitrymomot/formguard/pkg/secrets"
//
//	cookieKey, err := secrets.DeriveKey([]byte(cfg.Secret), "formguard-binding-cookie")
//	if err != nil {
//	    return err
//	}
//
// # Error Handling
//
// ErrEmptySecret is returned for an empty secret or info string; HKDF
// failures are wrapped with ErrKeyDerivationFailed.
package secrets
