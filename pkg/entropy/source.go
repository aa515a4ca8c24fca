package entropy

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dmitrymomot/formguard/pkg/logger"
)

const hexDigits = "0123456789abcdef"

// Option configures a Source.
type Option func(*Source)

// WithProviders replaces the provider chain. Providers are tried in order.
func WithProviders(providers ...Provider) Option {
	return func(s *Source) {
		s.providers = providers
	}
}

// WithLogger sets the logger used to report the weak fallback.
// Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.log = l
		}
	}
}

// WithWeakRand sets the pseudo-random generator used as the last resort.
func WithWeakRand(r *rand.Rand) Option {
	return func(s *Source) {
		if r != nil {
			s.weak = r
		}
	}
}

// Source produces random hex strings from an ordered chain of providers.
// It is safe for concurrent use.
type Source struct {
	providers []Provider
	log       *slog.Logger

	mu   sync.Mutex
	weak *rand.Rand
}

// New returns a Source with the default provider chain.
func New(opts ...Option) *Source {
	seed := uint64(time.Now().UnixNano())
	s := &Source{
		providers: []Provider{CryptoProvider{}, NewDeviceProvider()},
		log:       logger.Noop(),
		weak:      rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSource = sync.OnceValue(func() *Source { return New() })

// Default returns a process-wide Source with the default chain and no logging.
func Default() *Source {
	return defaultSource()
}

// Read returns n bytes from the first provider that succeeds.
// The weak generator is never consulted; ErrUnavailable is returned instead.
func (s *Source) Read(n int) ([]byte, error) {
	errs := make([]error, 0, len(s.providers)+1)
	errs = append(errs, ErrUnavailable)
	for _, p := range s.providers {
		b, err := p.Read(n)
		if err == nil && len(b) != n {
			err = ErrShortRead
		}
		if err == nil {
			return b, nil
		}
		s.log.Debug("entropy provider failed",
			logger.Component("entropy"),
			logger.Provider(p.Name()),
			logger.Error(err),
		)
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
	}
	return nil, errors.Join(errs...)
}

// HexString returns length hex characters, two per random byte.
// It never fails: if no strong provider works, a weak generator is used
// and a warning is logged.
func (s *Source) HexString(length int) string {
	if length <= 0 {
		return ""
	}

	b, err := s.Read((length + 1) / 2)
	if err == nil {
		return hex.EncodeToString(b)[:length]
	}

	s.log.Warn("no strong randomness source, falling back to internal generator",
		logger.Component("entropy"),
		logger.Event("weak_fallback"),
		logger.Error(err),
	)
	return s.weakHex(length)
}

func (s *Source) weakHex(length int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]byte, length)
	for i := range out {
		out[i] = hexDigits[s.weak.IntN(16)]
	}
	return string(out)
}

// Reader returns an io.Reader over the strong provider chain.
// Reads fail with ErrUnavailable instead of using the weak generator.
func (s *Source) Reader() io.Reader {
	return reader{s}
}

type reader struct{ s *Source }

func (r reader) Read(p []byte) (int, error) {
	b, err := r.s.Read(len(p))
	if err != nil {
		return 0, err
	}
	return copy(p, b), nil
}
