// Package digest provides the ROM integrity digest: cSHAKE256 (NIST SP 800-185) with an empty function name, a
// customization string, and a fixed 256-bit output.
package digest

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/sha3"
)

// Size is the size, in bytes, of the digest.
const Size = 32

// Customization is the customization string used for ROM images.
const Customization = "ROM_CTRL"

// New returns a new hash.Hash computing cSHAKE256 with the given customization string and a Size-byte output.
func New(customization string) hash.Hash {
	d := &digest{ //nolint:exhaustruct // initialized via Reset
		customization: []byte(customization),
	}
	d.Reset()
	return d
}

// SumWords returns the ROM digest of the given words, each absorbed as an 8-byte little-endian block.
func SumWords(words []uint64) [Size]byte {
	h := New(Customization)

	var block [8]byte
	for _, w := range words {
		binary.LittleEndian.PutUint64(block[:], w)
		_, _ = h.Write(block[:])
	}

	var out [Size]byte
	h.Sum(out[:0])
	return out
}

type digest struct {
	xof           sha3.ShakeHash
	customization []byte
}

func (d *digest) Write(p []byte) (n int, err error) {
	return d.xof.Write(p)
}

func (d *digest) Sum(b []byte) []byte {
	out := make([]byte, Size)
	_, _ = d.xof.Clone().Read(out)
	return append(b, out...)
}

func (d *digest) Reset() {
	d.xof = sha3.NewCShake256(nil, d.customization)
}

func (d *digest) Size() int {
	return Size
}

func (d *digest) BlockSize() int {
	return 136 // cSHAKE256 rate (1088 bits)
}

var _ hash.Hash = (*digest)(nil)
