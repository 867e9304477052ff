package romctrl

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMemorySize is returned when the backing memory is too small or not a whole number of words.
	ErrInvalidMemorySize = errors.New("romctrl: memory size must be a multiple of 4 greater than 32 bytes")

	// ErrInvalidKey is returned when a key is not exactly KeySize bytes.
	ErrInvalidKey = errors.New("romctrl: invalid key length")

	// ErrInvalidNonce is returned when a nonce is not exactly NonceSize bytes.
	ErrInvalidNonce = errors.New("romctrl: invalid nonce length")

	// ErrAlreadyLoaded is returned when an image is loaded twice, or key material is changed after a load.
	ErrAlreadyLoaded = errors.New("romctrl: image already loaded")
)

// IndexOutOfRangeError indicates that a scrambled index descrambled to a word outside the ROM. This means the image
// is corrupt or was scrambled with different key material.
type IndexOutOfRangeError struct {
	ScrambledIndex uint32
	Index          uint64
	Words          int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("romctrl: scrambled index 0x%X descrambled to word %d, ROM has %d words",
		e.ScrambledIndex, e.Index, e.Words)
}

// CorruptWordError indicates that a scrambled index or payload is wider than the ROM permits.
type CorruptWordError struct {
	ScrambledIndex uint32
	Payload        uint64
	Err            error
}

func (e *CorruptWordError) Error() string {
	return fmt.Sprintf("romctrl: corrupt word at scrambled index 0x%X (payload 0x%X): %v",
		e.ScrambledIndex, e.Payload, e.Err)
}

func (e *CorruptWordError) Unwrap() error {
	return e.Err
}
