// Package entropy supplies random hex strings for token generation.
//
// A Source walks an ordered list of providers and uses the first one that
// succeeds. The default chain is:
//
//  1. CryptoProvider – the runtime CSPRNG (crypto/rand).
//  2. DeviceProvider – raw bytes read from the first readable system device
//     in DefaultDevices ("/dev/urandom" before "/dev/random").
//
// When every provider fails, HexString falls back to a non-cryptographic
// pseudo-random generator, emitting one hex digit at a time, and logs a
// warning. HexString therefore never fails; callers that would rather get an
// error than weak output use Read, which returns ErrUnavailable instead.
//
// # Usage
//
//	import "github.com/dmitrymomot/formguard/pkg/entropy"
//
//	src := entropy.New(entropy.WithLogger(log))
//	hex := src.HexString(128) // 64 random bytes, hex encoded
//
// # Error Handling
//
// DeviceProvider returns ErrNoDevice when none of its paths can be read. The
// Source joins every provider failure into ErrUnavailable. Both can be matched
// with errors.Is.
package entropy
