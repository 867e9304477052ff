package romctrl_test

import (
	"encoding/binary"
	"math/bits"

	"github.com/codahale/romctrl"
	"github.com/codahale/romctrl/digest"
	"github.com/codahale/romctrl/internal/present"
	"github.com/codahale/romctrl/internal/prince"
	"github.com/codahale/romctrl/internal/secded"
	"github.com/codahale/romctrl/vmem"
)

// scrambleImage builds a ROM image of the given length in which logical word i decodes to plain(i) with a valid
// SEC-DED code, followed by the correct expected digest. Words appear in logical order.
func scrambleImage(words int, key romctrl.Key, nonce romctrl.Nonce, plain func(int) uint32) *vmem.Image {
	width := bits.Len(uint(words - 1))
	addressKey, dataNonce := uint64(nonce)>>(64-width), uint64(nonce)<<width
	payloadWords := words - romctrl.DigestWords

	scrambleIndex := func(i int) uint32 {
		idx, err := present.Scramble(uint64(i), addressKey, width, 2)
		if err != nil {
			panic(err)
		}
		return uint32(idx) //nolint:gosec // width <= 32
	}

	img := new(vmem.Image)
	hashInput := make([]uint64, payloadWords)
	for i := range payloadWords {
		keystream := prince.Scramble(uint64(i)|dataNonce, key.K0, key.K1, 6)
		layer := (secded.Encode(plain(i)) ^ keystream) & (1<<secded.CodeBits - 1)

		payload, err := present.Scramble(layer, 0, secded.CodeBits, 2)
		if err != nil {
			panic(err)
		}

		hashInput[i] = payload
		img.Words = append(img.Words, vmem.Word{Index: scrambleIndex(i), Value: payload})
	}

	sum := digest.SumWords(hashInput)
	for j := range romctrl.DigestWords {
		img.Words = append(img.Words, vmem.Word{
			Index: scrambleIndex(payloadWords + j),
			Value: uint64(binary.LittleEndian.Uint32(sum[4*j:])),
		})
	}

	return img
}

func zeros(int) uint32 { return 0 }

func ramp(i int) uint32 { return uint32(i) * 0x01010101 } //nolint:gosec // small test indexes

//nolint:gochecknoglobals // test fixtures
var (
	testKeyBytes   = []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f}
	testNonceBytes = []byte{0xfe, 0xdc, 0xba, 0x98, 0x76, 0x54, 0x32, 0x10}
	testKey        = romctrl.Key{K0: 0x0001020304050607, K1: 0x08090a0b0c0d0e0f}
	testNonce      = romctrl.Nonce(0xfedcba9876543210)
)
