package entropy

import "errors"

var (
	// ErrNoDevice is returned by DeviceProvider when no device path is readable.
	ErrNoDevice = errors.New("entropy: no system source for randomness available")

	// ErrShortRead is returned when a provider yields fewer bytes than requested.
	ErrShortRead = errors.New("entropy: short read")

	// ErrUnavailable is returned by Source.Read when every provider failed.
	ErrUnavailable = errors.New("entropy: no strong source available")
)
