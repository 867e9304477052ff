// Package vmem reads scrambled ROM images in the Verilog memory (".vmem") text format.
//
// Each line holds an optional "@<hex address>" followed by zero or more hex words. Words on a line occupy
// consecutive word addresses starting at the line's address, or at the address following the previous word when the
// line has none. Text after "//" is a comment. Files whose name ends in ".lz4" are LZ4 frame-decompressed first.
//
// The addresses and words are the scrambled index and scrambled payload of each ROM word; descrambling is done by
// the controller.
package vmem

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// CompressedSuffix is the file name suffix which selects LZ4 frame decompression.
const CompressedSuffix = ".lz4"

// Word is a single scrambled ROM word.
type Word struct {
	Index uint32 // Index is the scrambled word address.
	Value uint64 // Value is the scrambled payload.
}

// Image is a parsed ROM image, in file order.
type Image struct {
	Words []Word
}

// All returns an iterator over the (scrambled index, scrambled payload) pairs of the image.
func (img *Image) All() iter.Seq2[uint32, uint64] {
	return func(yield func(uint32, uint64) bool) {
		for _, w := range img.Words {
			if !yield(w.Index, w.Value) {
				return
			}
		}
	}
}

// SyntaxError describes a malformed line.
type SyntaxError struct {
	Line int
	Msg  string
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vmem: line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("vmem: line %d: %s", e.Line, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Parse reads the image at path.
func Parse(path string) (*Image, error) {
	f, err := os.Open(path) //nolint:gosec // caller-supplied path
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, CompressedSuffix) {
		r = lz4.NewReader(f)
	}

	return ParseReader(r)
}

// ParseReader reads an uncompressed image from r.
func ParseReader(r io.Reader) (*Image, error) {
	img := &Image{Words: make([]Word, 0, defaultCapacity)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineLength)

	var (
		next    uint64
		lineNum int
	)
	for scanner.Scan() {
		lineNum++

		line := scanner.Text()
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}

		for _, field := range strings.Fields(line) {
			if addr, ok := strings.CutPrefix(field, "@"); ok {
				v, err := strconv.ParseUint(addr, 16, 32)
				if err != nil {
					return nil, &SyntaxError{Line: lineNum, Msg: "invalid address " + strconv.Quote(field), Err: err}
				}
				next = v
				continue
			}

			if next > maxIndex {
				return nil, &SyntaxError{Line: lineNum, Msg: "word address overflows 32 bits"}
			}

			v, err := strconv.ParseUint(field, 16, 64)
			if err != nil {
				return nil, &SyntaxError{Line: lineNum, Msg: "invalid word " + strconv.Quote(field), Err: err}
			}

			img.Words = append(img.Words, Word{Index: uint32(next), Value: v})
			next++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	return img, nil
}

const (
	defaultCapacity = 1024
	maxLineLength   = 1 << 20
	maxIndex        = 1<<32 - 1
)
