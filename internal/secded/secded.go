// Package secded implements the inverted Hsiao (39,32) single-error-correcting, double-error-detecting code.
//
// Only detection is provided: Check reports whether a codeword is consistent, it never repairs one.
package secded

import "math/bits"

const (
	// DataBits is the number of data bits in a codeword.
	DataBits = 32

	// CodeBits is the total number of bits in a codeword.
	CodeBits = 39

	// inversion flips every other check bit so the all-zero and all-one words are not codewords.
	inversion = 0x2a_0000_0000
)

// Encode returns the 39-bit codeword for w: w in bits 0-31 and the check bits in bits 32-38.
func Encode(w uint32) uint64 {
	v := uint64(w)
	for i, m := range masks {
		v |= uint64(bits.OnesCount64(v&m)&1) << (DataBits + i)
	}
	return v ^ inversion
}

// Check returns true if v is a valid codeword.
func Check(v uint64) bool {
	return Encode(uint32(v)) == v //nolint:gosec // truncation is intended
}

//nolint:gochecknoglobals // parity masks
var masks = [CodeBits - DataBits]uint64{
	0x00_2606_bd25,
	0x00_deba_8050,
	0x00_413d_89aa,
	0x00_3123_4ed1,
	0x00_c2c1_323b,
	0x00_2dcc_624c,
	0x00_9850_5586,
}
