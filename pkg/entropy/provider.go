package entropy

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultDevices lists system entropy devices in preference order.
var DefaultDevices = []string{"/dev/urandom", "/dev/random"}

// Provider is a single source of random bytes.
// Read returns exactly n bytes or an error.
type Provider interface {
	Name() string
	Read(n int) ([]byte, error)
}

// CryptoProvider reads from the runtime CSPRNG.
type CryptoProvider struct{}

func (CryptoProvider) Name() string { return "crypto" }

func (CryptoProvider) Read(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeviceProvider reads raw bytes from the first readable device in Paths.
type DeviceProvider struct {
	Paths []string
}

// NewDeviceProvider returns a DeviceProvider for paths, or DefaultDevices when none are given.
func NewDeviceProvider(paths ...string) DeviceProvider {
	if len(paths) == 0 {
		paths = DefaultDevices
	}
	return DeviceProvider{Paths: paths}
}

func (DeviceProvider) Name() string { return "device" }

func (p DeviceProvider) Read(n int) ([]byte, error) {
	var errs []error
	for _, path := range p.Paths {
		b, err := readDevice(path, n)
		if err == nil {
			return b, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(append([]error{ErrNoDevice}, errs...)...)
}

func readDevice(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b := make([]byte, n)
	if _, err := io.ReadFull(f, b); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrShortRead, path, err)
	}
	return b, nil
}
