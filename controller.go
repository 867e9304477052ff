// Package romctrl implements an integrity-protected boot ROM controller.
//
// A ROM image is stored scrambled: each word's address is permuted by a keyed substitution-permutation network, and
// each 39-bit payload (32 data bits plus 7 Hsiao SEC-DED check bits) is masked by a PRINCE keystream bound to the
// word's logical address and then diffused by a keyless substitution-permutation network. The controller reverses
// both layers, writes the decoded words to a backing memory, checks each word's code, and hashes the scrambled image
// with cSHAKE256 to compare against the expected digest stored in the top eight words of the ROM.
//
// Results are exposed through a small register file (see Register) and a fatal alert handler.
package romctrl

import (
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"iter"
	"math/bits"

	"github.com/codahale/romctrl/digest"
	"github.com/codahale/romctrl/internal/present"
	"github.com/codahale/romctrl/internal/prince"
	"github.com/codahale/romctrl/internal/secded"
)

const (
	// DigestWords is the number of 32-bit words in a digest, and the number of ROM words reserved for the expected
	// digest.
	DigestWords = digest.Size / 4

	// MinMemorySize is the smallest valid backing memory, in bytes.
	MinMemorySize = (DigestWords + 1) * 4

	scramblingRounds = 2
	keystreamRounds  = 6
	payloadMask      = 1<<secded.CodeBits - 1
)

// Memory is the backing store decoded words are written to.
type Memory interface {
	// Size returns the size of the memory in bytes.
	Size() int

	// WriteUint32 stores a 32-bit word at the given byte offset.
	WriteUint32(offset int, v uint32) error
}

// Status is a snapshot of the fatal alert cause flags.
type Status struct {
	CheckerError   bool
	IntegrityError bool
}

// LoadStats summarizes an image load.
type LoadStats struct {
	Words         int // Words is the number of words decoded.
	DigestWords   int // DigestWords is the number of words which landed in the expected digest region.
	CodeMismatch  int // CodeMismatch is the number of payload words whose SEC-DED check failed.
	DigestMatches bool // DigestMatches reports whether the observed digest equals the expected digest.
}

// A Controller decodes a scrambled ROM image into a backing memory and verifies its digest.
//
// Controller instances are not concurrent-safe. Access must be serialized by the caller, and Load must not run
// concurrently with register reads.
type Controller struct {
	memory Memory
	config config

	words      int
	indexWidth int
	addressKey uint64
	dataNonce  uint64

	loaded   bool
	digest   [digest.Size]byte
	expected [DigestWords]uint32

	checkerError   bool
	integrityError bool
}

// New creates a Controller backed by memory, whose size determines the ROM length. The size must be a multiple of 4
// and at least MinMemorySize.
//
// Example:
//
//	ctrl, err := romctrl.New(memory,
//	    romctrl.WithKey(key),
//	    romctrl.WithNonce(nonce),
//	    romctrl.WithAlert(raiseFatalAlert),
//	)
func New(memory Memory, opts ...Option) (*Controller, error) {
	if memory == nil {
		panic("memory cannot be nil")
	}

	size := memory.Size()
	if size < MinMemorySize || size%4 != 0 || uint64(size/4) > 1<<32 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMemorySize, size)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	words := size / 4
	c := &Controller{
		memory:     memory,
		config:     cfg,
		words:      words,
		indexWidth: bits.Len(uint(words - 1)), // enough bits to address every word, including the last
	}
	c.addressKey, c.dataNonce = cfg.nonce.split(c.indexWidth)
	return c, nil
}

// Words returns the ROM length in 32-bit words.
func (c *Controller) Words() int {
	return c.words
}

// SetKey sets the scrambling key from its 16-byte encoding. It must be called before Load.
func (c *Controller) SetKey(b []byte) error {
	if c.loaded {
		return ErrAlreadyLoaded
	}

	key, err := ParseKey(b)
	if err != nil {
		return err
	}

	c.config.key = key
	return nil
}

// SetNonce sets the scrambling nonce from its 8-byte encoding. It must be called before Load.
func (c *Controller) SetNonce(b []byte) error {
	if c.loaded {
		return ErrAlreadyLoaded
	}

	nonce, err := ParseNonce(b)
	if err != nil {
		return err
	}

	c.config.nonce = nonce
	c.addressKey, c.dataNonce = nonce.split(c.indexWidth)
	return nil
}

// Load decodes the scrambled image words into memory, captures the expected digest, computes the observed digest,
// and updates the integrity error flag. Words are (scrambled index, scrambled payload) pairs.
//
// A word which descrambles to an index outside the ROM is fatal and returns an *IndexOutOfRangeError; an index or
// payload too wide for the ROM returns a *CorruptWordError. After a fatal error the memory may be partially written
// and the controller must be discarded. SEC-DED mismatches and digest mismatches are not errors: the former are
// logged and counted, the latter are reported via Status.
//
// Load may only be called once.
func (c *Controller) Load(image iter.Seq2[uint32, uint64]) (LoadStats, error) {
	if c.loaded {
		return LoadStats{}, ErrAlreadyLoaded
	}
	c.loaded = true

	var stats LoadStats
	payloadWords := c.words - DigestWords
	hashInput := make([]uint64, payloadWords)

	for scrambledIndex, payload := range image {
		index, err := present.Descramble(uint64(scrambledIndex), c.addressKey, c.indexWidth, scramblingRounds)
		if err != nil {
			return stats, &CorruptWordError{ScrambledIndex: scrambledIndex, Payload: payload, Err: err}
		}

		if index >= uint64(c.words) { //nolint:gosec // words is positive
			return stats, &IndexOutOfRangeError{ScrambledIndex: scrambledIndex, Index: index, Words: c.words}
		}

		reserved := index >= uint64(payloadWords) //nolint:gosec // payloadWords is positive
		if reserved {
			c.expected[index-uint64(payloadWords)] = uint32(payload) //nolint:gosec // low word is the digest
			stats.DigestWords++
		} else {
			hashInput[index] = payload
		}

		diffused, err := present.Descramble(payload, 0, secded.CodeBits, scramblingRounds)
		if err != nil {
			return stats, &CorruptWordError{ScrambledIndex: scrambledIndex, Payload: payload, Err: err}
		}

		keystream := prince.Scramble(index|c.dataNonce, c.config.key.K0, c.config.key.K1, keystreamRounds)
		plain := (diffused ^ keystream) & payloadMask

		if !reserved && !secded.Check(plain) {
			stats.CodeMismatch++
			c.config.logger.Warn("SEC-DED check failed",
				"index", index,
				"value", fmt.Sprintf("0x%010X", plain),
			)
		}

		if err := c.memory.WriteUint32(int(index)*4, uint32(plain)); err != nil { //nolint:gosec // bounded above
			return stats, fmt.Errorf("write word %d: %w", index, err)
		}
		stats.Words++
	}

	c.digest = digest.SumWords(hashInput)
	stats.DigestMatches = c.digestMatches()
	c.integrityError = !stats.DigestMatches

	if stats.DigestMatches {
		c.config.logger.Info("ROM image loaded",
			"words", stats.Words,
			"code_mismatches", stats.CodeMismatch,
		)
	} else {
		c.config.logger.Warn("ROM digest mismatch",
			"digest", fmt.Sprintf("%x", c.digest),
			"expected", fmt.Sprintf("%x", c.ExpectedDigest()),
		)
	}

	return stats, nil
}

// Reset clears the checker error and recomputes the integrity error from the already-computed digests. It does not
// reload or rehash the image.
func (c *Controller) Reset() {
	c.checkerError = false
	c.integrityError = !c.digestMatches()
}

// Status returns the current fatal alert cause flags.
func (c *Controller) Status() Status {
	return Status{CheckerError: c.checkerError, IntegrityError: c.integrityError}
}

// Digest returns the observed digest of the loaded image.
func (c *Controller) Digest() [digest.Size]byte {
	return c.digest
}

// ExpectedDigest returns the expected digest read from the top of the image.
func (c *Controller) ExpectedDigest() [digest.Size]byte {
	var b [digest.Size]byte
	for i, w := range c.expected {
		binary.LittleEndian.PutUint32(b[4*i:], w)
	}
	return b
}

// alertTest sets both fault flags and fires the alert line once.
func (c *Controller) alertTest() {
	c.checkerError = true
	c.integrityError = true
	c.config.alert()
}

func (c *Controller) digestMatches() bool {
	expected := c.ExpectedDigest()
	return subtle.ConstantTimeCompare(c.digest[:], expected[:]) == 1
}
