package entropy_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/entropy"
	"github.com/dmitrymomot/formguard/pkg/logger"
)

type stubProvider struct {
	name string
	data []byte
	err  error
}

func (p stubProvider) Name() string { return p.name }

func (p stubProvider) Read(n int) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	if len(p.data) < n {
		return p.data, nil
	}
	return p.data[:n], nil
}

var errBroken = errors.New("broken")

func isHex(s string) bool {
	_, err := hex.DecodeString(s)
	return err == nil
}

func TestHexString(t *testing.T) {
	t.Parallel()
	src := entropy.New()

	tests := []struct {
		name   string
		length int
	}{
		{"token size", 128},
		{"single byte", 2},
		{"odd length", 7},
		{"zero", 0},
		{"negative", -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := src.HexString(tt.length)
			if tt.length <= 0 {
				assert.Empty(t, got)
				return
			}
			assert.Len(t, got, tt.length)
			assert.Regexp(t, "^[0-9a-f]+$", got)
		})
	}
}

func TestHexStringUnique(t *testing.T) {
	t.Parallel()
	src := entropy.Default()
	seen := make(map[string]struct{}, 100)
	for range 100 {
		s := src.HexString(128)
		_, dup := seen[s]
		require.False(t, dup, "duplicate random string")
		seen[s] = struct{}{}
	}
}

func TestProviderChainOrder(t *testing.T) {
	t.Parallel()
	want := []byte{0xde, 0xad, 0xbe, 0xef}
	src := entropy.New(entropy.WithProviders(
		stubProvider{name: "first", err: errBroken},
		stubProvider{name: "short", data: []byte{0x01}},
		stubProvider{name: "third", data: want},
		stubProvider{name: "unused", data: []byte{0, 0, 0, 0}},
	))

	assert.Equal(t, "deadbeef", src.HexString(8))

	b, err := src.Read(4)
	require.NoError(t, err)
	assert.Equal(t, want, b)
}

func TestWeakFallback(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	src := entropy.New(
		entropy.WithProviders(
			stubProvider{name: "crypto", err: errBroken},
			entropy.NewDeviceProvider(filepath.Join(t.TempDir(), "missing")),
		),
		entropy.WithLogger(logger.New(logger.WithOutput(buf))),
	)

	got := src.HexString(128)
	assert.Len(t, got, 128)
	assert.True(t, isHex(got))
	assert.Contains(t, buf.String(), "falling back to internal generator")
	assert.Contains(t, buf.String(), `"component":"entropy"`)

	_, err := src.Read(64)
	assert.ErrorIs(t, err, entropy.ErrUnavailable)
	assert.ErrorIs(t, err, entropy.ErrNoDevice)
	assert.ErrorIs(t, err, errBroken)
}

func TestProviderFailuresAreLogged(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	src := entropy.New(
		entropy.WithProviders(
			stubProvider{name: "crypto", err: errBroken},
			stubProvider{name: "device", err: entropy.ErrNoDevice},
		),
		entropy.WithLogger(logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelDebug))),
	)

	assert.Len(t, src.HexString(16), 16)

	out := buf.String()
	assert.Contains(t, out, `"provider":"crypto"`)
	assert.Contains(t, out, `"provider":"device"`)
	assert.Contains(t, out, `"event":"weak_fallback"`)
	assert.Equal(t, 3, strings.Count(out, "\n"), out)
}

func TestWeakFallbackIsSeeded(t *testing.T) {
	t.Parallel()
	newSource := func() *entropy.Source {
		return entropy.New(
			entropy.WithProviders(),
			entropy.WithWeakRand(rand.New(rand.NewPCG(1, 2))),
		)
	}
	a, b := newSource().HexString(32), newSource().HexString(32)
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestDeviceProvider(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	full := filepath.Join(dir, "full")
	require.NoError(t, os.WriteFile(full, bytes.Repeat([]byte{0xab}, 64), 0o600))
	short := filepath.Join(dir, "short")
	require.NoError(t, os.WriteFile(short, []byte{0x01, 0x02}, 0o600))
	missing := filepath.Join(dir, "missing")

	t.Run("first readable device wins", func(t *testing.T) {
		t.Parallel()
		b, err := entropy.NewDeviceProvider(missing, full).Read(16)
		require.NoError(t, err)
		assert.Equal(t, bytes.Repeat([]byte{0xab}, 16), b)
	})

	t.Run("short device is skipped", func(t *testing.T) {
		t.Parallel()
		b, err := entropy.NewDeviceProvider(short, full).Read(8)
		require.NoError(t, err)
		assert.Len(t, b, 8)
	})

	t.Run("no readable device", func(t *testing.T) {
		t.Parallel()
		_, err := entropy.NewDeviceProvider(missing, short).Read(8)
		assert.ErrorIs(t, err, entropy.ErrNoDevice)
		assert.ErrorIs(t, err, entropy.ErrShortRead)
	})

	t.Run("default paths", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, entropy.DefaultDevices, entropy.NewDeviceProvider().Paths)
	})
}

func TestCryptoProvider(t *testing.T) {
	t.Parallel()
	b, err := entropy.CryptoProvider{}.Read(64)
	require.NoError(t, err)
	assert.Len(t, b, 64)
}

func TestReader(t *testing.T) {
	t.Parallel()

	t.Run("strong chain", func(t *testing.T) {
		t.Parallel()
		buf := make([]byte, 16)
		n, err := entropy.New().Reader().Read(buf)
		require.NoError(t, err)
		assert.Equal(t, 16, n)
	})

	t.Run("never weak", func(t *testing.T) {
		t.Parallel()
		src := entropy.New(entropy.WithProviders(stubProvider{name: "broken", err: errBroken}))
		_, err := src.Reader().Read(make([]byte, 16))
		assert.ErrorIs(t, err, entropy.ErrUnavailable)
	})
}
