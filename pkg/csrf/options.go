package csrf

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/formguard/pkg/cookie"
	"github.com/dmitrymomot/formguard/pkg/entropy"
	"github.com/dmitrymomot/formguard/pkg/signer"
)

const (
	DefaultFieldName  = "_token"
	DefaultHeaderName = "X-CSRF-Token"
	DefaultCookieName = "__csrf_bind"
	DefaultValidity   = signer.DefaultValidity
)

// PayloadFunc adds request-specific data to the token payload, for example
// the user id or the form action. It runs both when issuing and when
// validating, so it must return the same data for both requests.
type PayloadFunc func(r *http.Request, s *signer.Signer)

// ErrorHandler writes the response for a rejected request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// SkipFunc reports whether a request bypasses the middleware entirely.
type SkipFunc func(r *http.Request) bool

// Option configures a Protector.
type Option func(*Protector)

// WithValidity sets how long tokens stay valid. Zero disables expiry.
func WithValidity(d time.Duration) Option {
	return func(p *Protector) {
		if d >= 0 {
			p.validity = d
		}
	}
}

// WithFieldName sets the form field the default extractor reads.
func WithFieldName(name string) Option {
	return func(p *Protector) { p.fieldName = name }
}

// WithHeaderName sets the header the default extractor reads.
func WithHeaderName(name string) Option {
	return func(p *Protector) { p.headerName = name }
}

// WithCookieName sets the name of the binding cookie.
func WithCookieName(name string) Option {
	return func(p *Protector) { p.cookieName = name }
}

// WithExtractor replaces the default header-then-form lookup.
func WithExtractor(ex Extractor) Option {
	return func(p *Protector) { p.extractor = ex }
}

// WithPayload binds extra request data into every token.
func WithPayload(fn PayloadFunc) Option {
	return func(p *Protector) { p.payload = fn }
}

// WithErrorHandler replaces DefaultErrorHandler. Nil is ignored.
func WithErrorHandler(h ErrorHandler) Option {
	return func(p *Protector) {
		if h != nil {
			p.onError = h
		}
	}
}

// WithSkip lets matching requests bypass the middleware.
func WithSkip(fn SkipFunc) Option {
	return func(p *Protector) { p.skip = fn }
}

// WithLogger sets the logger for rejections. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(p *Protector) {
		if l != nil {
			p.log = l
		}
	}
}

// WithEntropy sets the random source for tokens and binding ids.
func WithEntropy(src *entropy.Source) Option {
	return func(p *Protector) {
		if src != nil {
			p.entropy = src
		}
	}
}

// WithCookieOptions sets attributes of the binding cookie.
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(p *Protector) {
		p.cookieOpts = append(p.cookieOpts, opts...)
	}
}

// WithClock overrides time.Now for issuing and checking tokens.
func WithClock(now func() time.Time) Option {
	return func(p *Protector) {
		if now != nil {
			p.now = now
		}
	}
}
