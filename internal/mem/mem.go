// Package mem provides a linear, byte-addressable memory used as the backing store of a ROM.
package mem

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrUnaligned is returned for word accesses at an offset that is not a multiple of four.
var ErrUnaligned = errors.New("mem: unaligned access")

// OutOfBoundsError is returned for accesses past the end of the memory.
type OutOfBoundsError struct {
	Offset int
	Size   int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("mem: offset 0x%X out of bounds for size 0x%X", e.Offset, e.Size)
}

// Linear is a fixed-size, zero-initialized little-endian memory.
//
// Linear instances are not concurrent-safe.
type Linear struct {
	b []byte
}

// NewLinear returns a Linear memory of size bytes.
func NewLinear(size int) *Linear {
	return &Linear{b: make([]byte, size)}
}

// Size returns the size of the memory in bytes.
func (m *Linear) Size() int {
	return len(m.b)
}

// WriteUint32 stores v at the given byte offset.
func (m *Linear) WriteUint32(offset int, v uint32) error {
	if err := m.check(offset); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(m.b[offset:], v)
	return nil
}

// ReadUint32 loads the word at the given byte offset.
func (m *Linear) ReadUint32(offset int) (uint32, error) {
	if err := m.check(offset); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(m.b[offset:]), nil
}

// Bytes returns the memory contents. The returned slice aliases the memory.
func (m *Linear) Bytes() []byte {
	return m.b
}

func (m *Linear) check(offset int) error {
	if offset%4 != 0 {
		return ErrUnaligned
	}

	if offset < 0 || offset+4 > len(m.b) {
		return &OutOfBoundsError{Offset: offset, Size: len(m.b)}
	}

	return nil
}
