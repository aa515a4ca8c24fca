package csrf

import (
	"errors"
	"net/http"
)

var (
	ErrNoSecret       = errors.New("csrf: secret must not be empty")
	ErrNoProtection   = errors.New("csrf: request did not pass through the middleware")
	ErrTokenMissing   = errors.New("csrf: token missing")
	ErrTokenInvalid   = errors.New("csrf: token invalid or expired")
	ErrMalformedToken = errors.New("csrf: malformed token")
	ErrBindingMissing = errors.New("csrf: binding cookie missing or invalid")
)

// StatusCode maps a middleware error to an HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrMalformedToken):
		return http.StatusBadRequest
	case errors.Is(err, ErrTokenMissing),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrBindingMissing):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
