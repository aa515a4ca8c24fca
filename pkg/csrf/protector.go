package csrf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formguard/pkg/cookie"
	"github.com/dmitrymomot/formguard/pkg/entropy"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/secrets"
	"github.com/dmitrymomot/formguard/pkg/signer"
)

// bindKey is the payload key carrying the binding id.
const bindKey = "bind"

const cookieKeyInfo = "formguard-binding-cookie"

// Protector issues and checks CSRF tokens. It is safe for concurrent use.
type Protector struct {
	secret     string
	validity   time.Duration
	fieldName  string
	headerName string
	cookieName string
	cookieOpts []cookie.Option

	extractor Extractor
	payload   PayloadFunc
	onError   ErrorHandler
	skip      SkipFunc

	cookies *cookie.Manager
	entropy *entropy.Source
	log     *slog.Logger
	now     func() time.Time
}

// New creates a Protector. The binding cookie is signed with a key derived
// from secret, never with secret itself.
func New(secret string, opts ...Option) (*Protector, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}

	p := &Protector{
		secret:     secret,
		validity:   DefaultValidity,
		fieldName:  DefaultFieldName,
		headerName: DefaultHeaderName,
		cookieName: DefaultCookieName,
		onError:    DefaultErrorHandler,
		entropy:    entropy.Default(),
		log:        logger.Noop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.extractor == nil {
		p.extractor = ChainExtractors(HeaderExtractor(p.headerName), FormExtractor(p.fieldName))
	}

	key, err := secrets.DeriveKey([]byte(secret), cookieKeyInfo)
	if err != nil {
		return nil, fmt.Errorf("csrf: derive cookie key: %w", err)
	}
	p.cookies, err = cookie.New(key, p.cookieOpts...)
	if err != nil {
		return nil, fmt.Errorf("csrf: cookie manager: %w", err)
	}

	return p, nil
}

// FieldName returns the form field the default extractor reads.
func (p *Protector) FieldName() string { return p.fieldName }

// HeaderName returns the header the default extractor reads.
func (p *Protector) HeaderName() string { return p.headerName }

// Middleware enforces CSRF protection on unsafe methods and makes Token
// available to downstream handlers.
func (p *Protector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p.skip != nil && p.skip(r) {
			next.ServeHTTP(w, r)
			return
		}

		bind, bindErr := p.cookies.GetSigned(r, p.cookieName)

		if isSafeMethod(r.Method) {
			if bindErr != nil {
				id, err := p.newBindID()
				if err != nil {
					p.reject(w, r, err)
					return
				}
				bind = id
				p.cookies.SetSigned(w, p.cookieName, bind)
				p.log.DebugContext(r.Context(), "csrf binding issued",
					logger.Component("csrf"),
					logger.Event("binding_issued"),
				)
			}
			next.ServeHTTP(w, r.WithContext(withState(r.Context(), p, bind)))
			return
		}

		if bindErr != nil {
			// Clear a forged or corrupted cookie.
			if !errors.Is(bindErr, cookie.ErrCookieNotFound) {
				p.cookies.Delete(w, p.cookieName)
			}
			p.reject(w, r, errors.Join(ErrBindingMissing, bindErr))
			return
		}
		if err := p.verify(r, bind); err != nil {
			p.reject(w, r, err)
			return
		}

		p.log.DebugContext(r.Context(), "csrf token accepted", logger.Component("csrf"))
		next.ServeHTTP(w, r.WithContext(withState(r.Context(), p, bind)))
	})
}

// DefaultErrorHandler answers with the status from StatusCode and its text.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	code := StatusCode(err)
	http.Error(w, http.StatusText(code), code)
}

func (p *Protector) issue(r *http.Request, bind string) (string, error) {
	s, err := p.newSigner(r, bind)
	if err != nil {
		return "", err
	}
	return s.Signature()
}

func (p *Protector) verify(r *http.Request, bind string) error {
	tok, err := p.extractor(r)
	if err != nil {
		return err
	}

	s, err := p.newSigner(r, bind)
	if err != nil {
		return err
	}

	ok, err := s.Validate(tok)
	switch {
	case errors.Is(err, signer.ErrInvalidFormat), errors.Is(err, signer.ErrInvalidInput):
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	case err != nil:
		return err
	case !ok:
		return ErrTokenInvalid
	}
	return nil
}

func (p *Protector) newSigner(r *http.Request, bind string) (*signer.Signer, error) {
	var window any = signer.NoExpiry
	if p.validity > 0 {
		window = -p.validity
	}

	s, err := signer.New(p.secret,
		signer.WithEntropy(p.entropy),
		signer.WithClock(p.now),
		signer.WithLogger(p.log),
		signer.WithValidityWindow(window),
	)
	if err != nil {
		return nil, err
	}

	s.AddKeyValue(bindKey, bind)
	if p.payload != nil {
		p.payload(r, s)
	}
	return s, nil
}

func (p *Protector) newBindID() (string, error) {
	id, err := uuid.NewRandomFromReader(p.entropy.Reader())
	if err != nil {
		return "", fmt.Errorf("csrf: binding id: %w", err)
	}
	return id.String(), nil
}

func (p *Protector) reject(w http.ResponseWriter, r *http.Request, err error) {
	p.log.WarnContext(r.Context(), "csrf check failed",
		logger.Component("csrf"),
		logger.Reason(err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
	p.onError(w, r, err)
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

type contextKey struct{ name string }

var stateKey = &contextKey{name: "csrf"}

type state struct {
	p    *Protector
	bind string
}

func withState(ctx context.Context, p *Protector, bind string) context.Context {
	return context.WithValue(ctx, stateKey, state{p: p, bind: bind})
}

// Token issues a fresh token for r. The request must have passed through
// Protector.Middleware; otherwise ErrNoProtection is returned.
func Token(r *http.Request) (string, error) {
	st, ok := r.Context().Value(stateKey).(state)
	if !ok {
		return "", ErrNoProtection
	}
	return st.p.issue(r, st.bind)
}
