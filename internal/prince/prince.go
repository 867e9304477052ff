// Package prince implements the PRINCE reflection cipher with a configurable number of rounds and the alternating
// k0/k1 round-key schedule.
//
// Only the forward direction is provided. It is used as a keyed, position-bound keystream generator: the output for
// a given (data, k0, k1) is XORed into data rather than decrypted.
//
// With both keys zero the output matches the PRINCE reference vectors at the full round count.
package prince

import "math/bits"

// MaxRounds is the number of structural rounds of full-strength PRINCE.
const MaxRounds = 11

// Scramble runs rounds of PRINCE over data using the 128-bit key (k0, k1). Half of the rounds (rounded down) run
// before the middle involution and the same number run after it.
//
// Scramble panics if rounds is negative or greater than MaxRounds.
func Scramble(data, k0, k1 uint64, rounds int) uint64 {
	if rounds < 0 || rounds > MaxRounds {
		panic("invalid argument to Scramble: rounds must be in [0, 11]")
	}
	half := rounds / 2

	k0Prime := bits.RotateLeft64(k0, -1) ^ (k0 >> 63)

	s := data ^ k0 ^ k1 ^ roundConstants[0]

	for i := 1; i <= half; i++ {
		s = substitute(s, &sbox)
		s = multiply(s)
		s = shiftRows(s, &shifts)
		s ^= roundConstants[i]
		s ^= roundKey(i, k0, k1)
	}

	s = substitute(s, &sbox)
	s = multiply(s)
	s = substitute(s, &sboxInv)

	for i := MaxRounds - half; i < MaxRounds; i++ {
		s ^= roundKey(i, k0, k1)
		s ^= roundConstants[i]
		s = shiftRows(s, &shiftsInv)
		s = multiply(s)
		s = substitute(s, &sboxInv)
	}

	return s ^ k0Prime ^ k1 ^ roundConstants[MaxRounds]
}

func roundKey(i int, k0, k1 uint64) uint64 {
	if i%2 == 1 {
		return k1
	}
	return k0
}

func substitute(s uint64, table *[16]byte) uint64 {
	var out uint64
	for i := 0; i < 64; i += 4 {
		out |= uint64(table[(s>>i)&0xf]) << i
	}
	return out
}

// multiply applies the M' layer: four 16x16 binary matrix multiplications, M̂0 on the outer lanes and M̂1 on the
// inner ones. Each output nibble is the XOR of the masked input nibbles of its lane. M' is an involution.
func multiply(s uint64) uint64 {
	var out uint64
	for lane := range 4 {
		in := uint16(s >> (16 * lane))
		masks := &m1
		if lane == 0 || lane == 3 {
			masks = &m0
		}

		for j, m := range masks {
			out |= uint64(fold(in&m)) << (16*lane + 4*j)
		}
	}
	return out
}

func fold(v uint16) uint16 {
	return (v ^ v>>4 ^ v>>8 ^ v>>12) & 0xf
}

// shiftRows moves nibble table[k] of s to nibble k of the output.
func shiftRows(s uint64, table *[16]byte) uint64 {
	var out uint64
	for k, src := range table {
		out |= ((s >> (4 * src)) & 0xf) << (4 * k)
	}
	return out
}

//nolint:gochecknoglobals // cipher tables
var (
	roundConstants = [MaxRounds + 1]uint64{
		0x0000000000000000, 0x13198a2e03707344, 0xa4093822299f31d0, 0x082efa98ec4e6c89,
		0x452821e638d01377, 0xbe5466cf34e90c6c, 0x7ef84f78fd955cb1, 0x85840851f1ac43aa,
		0xc882d32f25323c54, 0x64a51195e0e3610d, 0xd3b5a399ca0c2399, 0xc0ac29b7c97c50dd,
	}

	sbox = [16]byte{
		0xb, 0xf, 0x3, 0x2, 0xa, 0xc, 0x9, 0x1, 0x6, 0x7, 0x8, 0x0, 0xe, 0x5, 0xd, 0x4,
	}
	sboxInv = [16]byte{
		0xb, 0x7, 0x3, 0x2, 0xf, 0xd, 0x8, 0x9, 0xa, 0x6, 0x4, 0x0, 0x5, 0xe, 0xc, 0x1,
	}

	shifts    = [16]byte{4, 9, 14, 3, 8, 13, 2, 7, 12, 1, 6, 11, 0, 5, 10, 15}
	shiftsInv = [16]byte{12, 9, 6, 3, 0, 13, 10, 7, 4, 1, 14, 11, 8, 5, 2, 15}

	m0 = [4]uint16{0xe7bd, 0xde7b, 0xbde7, 0x7bde}
	m1 = [4]uint16{0x7bde, 0xe7bd, 0xde7b, 0xbde7}
)
