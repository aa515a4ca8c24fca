package signer

import (
	"log/slog"
	"time"
)

// Entropy supplies the random part of each token.
// *entropy.Source satisfies it.
type Entropy interface {
	HexString(length int) string
}

type settings struct {
	entropy   Entropy
	now       func() time.Time
	log       *slog.Logger
	window    any
	normalize bool
}

// Option configures a Signer.
type Option func(*settings)

// WithEntropy sets the random source. Nil values are ignored.
func WithEntropy(e Entropy) Option {
	return func(s *settings) {
		if e != nil {
			s.entropy = e
		}
	}
}

// WithValidityWindow sets the initial window. It accepts the same values as
// SetValidityWindow; New returns ErrInvalidInput for anything else.
func WithValidityWindow(window any) Option {
	return func(s *settings) { s.window = window }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used to report rejected tokens. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// WithUnicodeNormalization converts string keys and values to NFC before
// signing, so that canonically equivalent strings produce the same signature.
func WithUnicodeNormalization() Option {
	return func(s *settings) { s.normalize = true }
}
