package romctrl

import "encoding/binary"

const (
	// KeySize is the length, in bytes, of an encoded Key.
	KeySize = 16

	// NonceSize is the length, in bytes, of an encoded Nonce.
	NonceSize = 8
)

// Key is the 128-bit data scrambling key, split into the two PRINCE key halves.
type Key struct {
	K0, K1 uint64
}

// ParseKey decodes a key from its 16-byte big-endian form, i.e. the byte order of its hex representation. The first
// eight bytes are K0 and the last eight are K1.
func ParseKey(b []byte) (Key, error) {
	if len(b) != KeySize {
		return Key{}, ErrInvalidKey
	}

	return Key{
		K0: binary.BigEndian.Uint64(b[:8]),
		K1: binary.BigEndian.Uint64(b[8:]),
	}, nil
}

// AppendBinary appends the 16-byte encoding of k to b.
func (k Key) AppendBinary(b []byte) ([]byte, error) {
	b = binary.BigEndian.AppendUint64(b, k.K0)
	return binary.BigEndian.AppendUint64(b, k.K1), nil
}

// Nonce is the 64-bit scrambling nonce. Its top bits key the address scrambling and the rest bind the data
// keystream.
type Nonce uint64

// ParseNonce decodes a nonce from its 8-byte big-endian form.
func ParseNonce(b []byte) (Nonce, error) {
	if len(b) != NonceSize {
		return 0, ErrInvalidNonce
	}
	return Nonce(binary.BigEndian.Uint64(b)), nil
}

// AppendBinary appends the 8-byte encoding of n to b.
func (n Nonce) AppendBinary(b []byte) ([]byte, error) {
	return binary.BigEndian.AppendUint64(b, uint64(n)), nil
}

// split returns the address key (the top width bits) and the data nonce (the remaining bits, shifted up so the low
// width bits are free for the word index).
func (n Nonce) split(width int) (addressKey, dataNonce uint64) {
	return uint64(n) >> (64 - width), uint64(n) << width
}
