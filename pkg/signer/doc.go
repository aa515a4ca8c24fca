// Package signer issues and validates tamper-evident, time-limited tokens
// without server-side storage, typically for CSRF protection of HTML forms.
//
// A token has the form
//
//	<timestamp>:<token>:<signature>
//
// where timestamp is the creation time in Unix seconds, token is the base64
// encoding of 64 random bytes, and signature is the base64 encoding of an
// HMAC-SHA-512 digest keyed with the caller's secret. The digest covers the
// timestamp, the random token and a canonical encoding of the payload data
// added to the Signer, so changing any of them invalidates the token.
//
// # Payload
//
// Payload data comes in two flavours. Ordered values (AddValue) are sorted
// before encoding, so the order in which they were added does not matter.
// Keyed values (AddKeyValue) are encoded as an object with ascending keys.
// SetData replaces both from a map, sending integer-like keys ("0", "17",
// "-3") to the ordered values.
//
// # Usage
//
//	s, err := signer.New(secret)
//	if err != nil {
//	    return err
//	}
//	s.AddKeyValue("session", sessionID)
//	tok, err := s.Signature() // embed in a hidden form field
//
//	// later, on submission
//	v, _ := signer.New(secret)
//	v.AddKeyValue("session", sessionID)
//	ok, err := v.Validate(r.PostFormValue("_token"))
//
// # Validity window
//
// Tokens whose timestamp is older than the validity window are rejected.
// The default window is 24 hours before the Signer was created. The window
// accepts absolute times, durations and relative expressions such as
// "-2 hours"; the value NoExpiry (0) disables the check.
//
// # Error Handling
//
// Validate reports a rejected token (expired, tampered or signed for other
// data) as false with a nil error. Structurally broken input is an error:
// ErrInvalidFormat when the string does not have exactly three fields, and
// ErrInvalidInput when the timestamp field is not a decimal integer.
package signer
