package signer

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/formguard/pkg/entropy"
	"github.com/dmitrymomot/formguard/pkg/logger"
)

const (
	// NoExpiry disables the validity window check.
	NoExpiry int64 = 0

	// DefaultValidity is how far back the default window reaches.
	DefaultValidity = 24 * time.Hour

	// rawTokenLength is the number of hex characters requested per token (64 bytes).
	rawTokenLength = 128

	fieldSeparator = ":"
)

// Signer accumulates payload data and issues or validates tokens bound to it.
// A Signer is meant to be used by one goroutine at a time, typically one per
// request; Validate and Signature do not modify it.
type Signer struct {
	secret  []byte
	window  int64
	ordered []any
	keyed   map[string]any

	entropy   Entropy
	now       func() time.Time
	log       *slog.Logger
	normalize bool
}

// New creates a Signer keyed with secret. The validity window defaults to
// DefaultValidity before the current time.
func New(secret string, opts ...Option) (*Signer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	cfg := settings{
		now: time.Now,
		log: logger.Noop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.entropy == nil {
		cfg.entropy = entropy.Default()
	}

	s := &Signer{
		secret:    []byte(secret),
		keyed:     make(map[string]any),
		entropy:   cfg.entropy,
		now:       cfg.now,
		log:       cfg.log,
		normalize: cfg.normalize,
	}

	window := cfg.window
	if window == nil {
		window = -DefaultValidity
	}
	if err := s.SetValidityWindow(window); err != nil {
		return nil, err
	}

	return s, nil
}

// SetValidityWindow sets the earliest timestamp a token may carry.
//
// Accepted values:
//   - time.Time: an absolute instant.
//   - time.Duration: an offset from now, resolved immediately (-2*time.Hour).
//   - string: a relative expression resolved against now ("-24 hours", "+10s", "now").
//   - any integer type: Unix seconds; 0 (NoExpiry) disables expiry.
//
// Other types yield ErrInvalidInput and leave the window unchanged.
func (s *Signer) SetValidityWindow(window any) error {
	switch w := window.(type) {
	case time.Time:
		s.window = w.Unix()
		return nil
	case time.Duration:
		s.window = s.now().Add(w).Unix()
		return nil
	case string:
		t, err := parseRelative(w, s.now())
		if err != nil {
			return err
		}
		s.window = t.Unix()
		return nil
	}

	rv := reflect.ValueOf(window)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s.window = rv.Int()
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return fmt.Errorf("%w: validity window %d overflows int64", ErrInvalidInput, u)
		}
		s.window = int64(u)
		return nil
	}

	return fmt.Errorf("%w: validity window of type %T", ErrInvalidInput, window)
}

// SetValidityWindowAt sets an absolute window.
func (s *Signer) SetValidityWindowAt(t time.Time) {
	s.window = t.Unix()
}

// DisableExpiry accepts tokens with any timestamp, including future ones.
func (s *Signer) DisableExpiry() {
	s.window = NoExpiry
}

// ValidityWindow returns the current window in Unix seconds.
func (s *Signer) ValidityWindow() int64 {
	return s.window
}

// AddValue appends an ordered payload value.
func (s *Signer) AddValue(v any) {
	s.ordered = append(s.ordered, v)
}

// AddKeyValue sets a keyed payload value, replacing any previous value for key.
func (s *Signer) AddKeyValue(key string, v any) {
	s.keyed[key] = v
}

// SetData replaces the payload. Entries with integer-like keys become ordered
// values (the key itself is dropped); all others become keyed values.
func (s *Signer) SetData(data map[string]any) {
	s.ordered = nil
	s.keyed = make(map[string]any, len(data))
	for k, v := range data {
		if isIntegerKey(k) {
			s.ordered = append(s.ordered, v)
			continue
		}
		s.keyed[k] = v
	}
}

// Signature issues a new token for the current payload.
func (s *Signer) Signature() (string, error) {
	ts := s.now().Unix()

	raw, err := hex.DecodeString(s.entropy.HexString(rawTokenLength))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadEntropy, err)
	}
	token := base64.StdEncoding.EncodeToString(raw)

	sig, err := s.generateSignature(ts, token)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(ts, 10) + fieldSeparator + token + fieldSeparator + sig, nil
}

// Validate reports whether tokenString was issued for the current payload
// with the same secret and is not older than the validity window.
func (s *Signer) Validate(tokenString string) (bool, error) {
	fields := strings.Split(tokenString, fieldSeparator)
	if len(fields) != 3 {
		return false, fmt.Errorf("%w: expected 3 fields, got %d", ErrInvalidFormat, len(fields))
	}
	rawTS, token, signature := fields[0], fields[1], fields[2]

	ts, err := parseTimestamp(rawTS)
	if err != nil {
		return false, err
	}

	if s.window != NoExpiry && ts < s.window {
		s.log.Debug("token rejected", logger.Component("signer"), logger.Reason("expired"))
		return false, nil
	}

	expected, err := s.generateSignature(ts, token)
	if err != nil {
		return false, err
	}

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		s.log.Debug("token rejected", logger.Component("signer"), logger.Reason("signature mismatch"))
		return false, nil
	}
	return true, nil
}

// generateSignature returns base64(HMAC-SHA-512(secret, canonical payload)).
func (s *Signer) generateSignature(ts int64, token string) (string, error) {
	data, err := s.canonicalPayload(ts, token)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha512.New, s.secret)
	mac.Write(data)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// parseTimestamp accepts only plain decimal digits.
func parseTimestamp(s string) (int64, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, fmt.Errorf("%w: timestamp %q is not numeric", ErrInvalidInput, s)
	}
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: timestamp %q: %w", ErrInvalidInput, s, err)
	}
	return ts, nil
}

// isIntegerKey reports whether k is a canonical base-10 int64 ("0", "42", "-7").
func isIntegerKey(k string) bool {
	if k == "" || k == "-0" {
		return false
	}
	digits := strings.TrimPrefix(k, "-")
	if digits == "" || (len(digits) > 1 && digits[0] == '0') {
		return false
	}
	if strings.TrimLeft(digits, "0123456789") != "" {
		return false
	}
	_, err := strconv.ParseInt(k, 10, 64)
	return err == nil
}
