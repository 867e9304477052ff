// Package present implements a width-generic substitution-permutation network built from the PRESENT S-box.
//
// It operates on values of 0 to 64 bits. Each round XORs the round key, substitutes every full nibble through the
// PRESENT S-box, and then interleaves the even-indexed bits into the low half of the state and the odd-indexed bits
// into the high half. A final key XOR whitens the output. When the width is not a multiple of four, the partial top
// nibble bypasses the S-box; when the width is odd, the top bit bypasses the permutation.
//
// This is used for obfuscation at reduced round counts, not as a general-purpose block cipher.
package present

import "errors"

// MaxWidth is the largest supported state width in bits.
const MaxWidth = 64

var (
	// ErrInvalidWidth is returned when the width is outside [0, MaxWidth].
	ErrInvalidWidth = errors.New("present: invalid width")

	// ErrDataTooWide is returned when the input value does not fit in the requested width.
	ErrDataTooWide = errors.New("present: data does not fit in width")

	// ErrInvalidRounds is returned when the round count is negative.
	ErrInvalidRounds = errors.New("present: invalid round count")
)

// Scramble applies the given number of rounds of the substitution-permutation network to data, which must fit in
// width bits. Only the low width bits of key are used.
func Scramble(data, key uint64, width, rounds int) (uint64, error) {
	if err := validate(data, width, rounds); err != nil {
		return 0, err
	}

	key &= mask(width)
	for range rounds {
		data ^= key
		data = substitute(data, width, &sbox)
		data = permute(data, width)
	}
	return data ^ key, nil
}

// Descramble inverts Scramble for the same key, width, and round count.
func Descramble(data, key uint64, width, rounds int) (uint64, error) {
	if err := validate(data, width, rounds); err != nil {
		return 0, err
	}

	key &= mask(width)
	data ^= key
	for range rounds {
		data = unpermute(data, width)
		data = substitute(data, width, &sboxInv)
		data ^= key
	}
	return data, nil
}

func validate(data uint64, width, rounds int) error {
	if width < 0 || width > MaxWidth {
		return ErrInvalidWidth
	}

	if rounds < 0 {
		return ErrInvalidRounds
	}

	if data&^mask(width) != 0 {
		return ErrDataTooWide
	}

	return nil
}

func mask(width int) uint64 {
	if width >= MaxWidth {
		return ^uint64(0)
	}
	return uint64(1)<<width - 1
}

// substitute replaces each full nibble of s through the table. Bits above the last full nibble are left as-is.
func substitute(s uint64, width int, table *[16]byte) uint64 {
	out := s
	for i := 0; i+4 <= width; i += 4 {
		n := (s >> i) & 0xf
		out = out&^(uint64(0xf)<<i) | uint64(table[n])<<i
	}
	return out
}

// permute moves bit 2k to position k and bit 2k+1 to position k+width/2.
func permute(s uint64, width int) uint64 {
	half := width / 2

	var out uint64
	for k := range half {
		out |= ((s >> (2 * k)) & 1) << k
		out |= ((s >> (2*k + 1)) & 1) << (k + half)
	}

	if width%2 == 1 {
		out |= s & (uint64(1) << (width - 1))
	}
	return out
}

func unpermute(s uint64, width int) uint64 {
	half := width / 2

	var out uint64
	for k := range half {
		out |= ((s >> k) & 1) << (2 * k)
		out |= ((s >> (k + half)) & 1) << (2*k + 1)
	}

	if width%2 == 1 {
		out |= s & (uint64(1) << (width - 1))
	}
	return out
}

//nolint:gochecknoglobals // S-boxes
var (
	sbox = [16]byte{
		0xc, 0x5, 0x6, 0xb, 0x9, 0x0, 0xa, 0xd, 0x3, 0xe, 0xf, 0x8, 0x4, 0x7, 0x1, 0x2,
	}
	sboxInv = [16]byte{
		0x5, 0xe, 0xf, 0x8, 0xc, 0x1, 0x2, 0xd, 0xb, 0x4, 0x6, 0x3, 0x0, 0x7, 0x9, 0xa,
	}
)
