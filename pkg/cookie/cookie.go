package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// MinKeyLength is the minimum signing key length in bytes.
const MinKeyLength = 32

const sep = "|"

type Manager struct {
	key      []byte
	defaults Options
}

// New returns a Manager signing with key. Defaults: Path "/", HttpOnly,
// SameSite=Lax.
func New(key []byte, opts ...Option) (*Manager, error) {
	if len(key) < MinKeyLength {
		return nil, fmt.Errorf("%w: have %d bytes, need at least %d", ErrKeyTooShort, len(key), MinKeyLength)
	}

	defaults := applyOptions(Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, opts)

	return &Manager{
		key:      append([]byte(nil), key...),
		defaults: defaults,
	}, nil
}

func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	o := applyOptions(m.defaults, opts)
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	})
}

func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete expires the cookie using the manager's default path and domain.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
	})
}

func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) {
	m.Set(w, name, m.sign(name, value), opts...)
}

func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	signed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(name, signed)
}

func (m *Manager) mac(name string, value []byte) []byte {
	h := hmac.New(sha256.New, m.key)
	h.Write([]byte(name))
	h.Write([]byte(sep))
	h.Write(value)
	return h.Sum(nil)
}

func (m *Manager) sign(name, value string) string {
	sig := m.mac(name, []byte(value))
	return base64.RawURLEncoding.EncodeToString([]byte(value)) + sep + base64.RawURLEncoding.EncodeToString(sig)
}

func (m *Manager) verify(name, signed string) (string, error) {
	encValue, encSig, ok := strings.Cut(signed, sep)
	if !ok {
		return "", ErrInvalidFormat
	}

	value, err := base64.RawURLEncoding.DecodeString(encValue)
	if err != nil {
		return "", ErrInvalidFormat
	}
	sig, err := base64.RawURLEncoding.DecodeString(encSig)
	if err != nil {
		return "", ErrInvalidFormat
	}

	if !hmac.Equal(sig, m.mac(name, value)) {
		return "", ErrInvalidSignature
	}
	return string(value), nil
}
