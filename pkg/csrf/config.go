package csrf

import (
	"time"

	"github.com/dmitrymomot/formguard/pkg/cookie"
)

type Config struct {
	Secret       string        `env:"CSRF_SECRET,required"`
	Validity     time.Duration `env:"CSRF_VALIDITY" envDefault:"24h"`
	FieldName    string        `env:"CSRF_FIELD" envDefault:"_token"`
	HeaderName   string        `env:"CSRF_HEADER" envDefault:"X-CSRF-Token"`
	CookieName   string        `env:"CSRF_COOKIE" envDefault:"__csrf_bind"`
	SecureCookie bool          `env:"CSRF_COOKIE_SECURE" envDefault:"false"`
}

// NewFromConfig creates a Protector from cfg. Empty names keep the defaults;
// a zero Validity disables expiry.
func NewFromConfig(cfg Config, opts ...Option) (*Protector, error) {
	configOpts := []Option{WithValidity(cfg.Validity)}
	if cfg.FieldName != "" {
		configOpts = append(configOpts, WithFieldName(cfg.FieldName))
	}
	if cfg.HeaderName != "" {
		configOpts = append(configOpts, WithHeaderName(cfg.HeaderName))
	}
	if cfg.CookieName != "" {
		configOpts = append(configOpts, WithCookieName(cfg.CookieName))
	}
	if cfg.SecureCookie {
		configOpts = append(configOpts, WithCookieOptions(cookie.WithSecure(true)))
	}
	return New(cfg.Secret, append(configOpts, opts...)...)
}
