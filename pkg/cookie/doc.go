// Package cookie sets and reads HMAC-signed HTTP cookies.
//
// A Manager is created with one key of at least MinKeyLength bytes and a set
// of default Options. Signed values are stored as
//
//	base64url(value) "|" base64url(HMAC-SHA256(key, name "|" value))
//
// so a value cannot be edited, nor moved to a cookie with another name,
// without the signature failing. Verification is constant time.
//
// # Usage
//
//	man, err := cookie.New(key, cookie.WithSecure(true))
//	if err != nil {
//	    return err
//	}
//	man.SetSigned(w, "__csrf_bind", id)
//	id, err := man.GetSigned(r, "__csrf_bind")
//
// # Error Handling
//
// ErrCookieNotFound, ErrInvalidFormat and ErrInvalidSignature are returned by
// GetSigned and can be matched with errors.Is.
package cookie
