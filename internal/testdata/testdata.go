// Package testdata provides a deterministic random bit generator for seeding tests and fuzz corpora.
package testdata

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// DRBG is a SHAKE128-based deterministic random bit generator. The same domain always yields the same sequence.
type DRBG struct {
	xof sha3.ShakeHash
}

// New returns a DRBG seeded with the given domain string.
func New(domain string) *DRBG {
	xof := sha3.NewShake128()
	_, _ = xof.Write([]byte(domain))
	return &DRBG{xof: xof}
}

// Data returns the next n bytes of output.
func (d *DRBG) Data(n int) []byte {
	b := make([]byte, n)
	_, _ = d.xof.Read(b)
	return b
}

// Uint64 returns the next 8 bytes of output as a little-endian integer.
func (d *DRBG) Uint64() uint64 {
	return binary.LittleEndian.Uint64(d.Data(8))
}

// Bits returns the next value truncated to the low width bits.
func (d *DRBG) Bits(width int) uint64 {
	if width >= 64 {
		return d.Uint64()
	}
	return d.Uint64() & (uint64(1)<<width - 1)
}
