package digest_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/codahale/romctrl/digest"
)

func TestDigest_Size(t *testing.T) {
	h := digest.New(digest.Customization)
	if s := h.Size(); s != digest.Size {
		t.Errorf("Size() = %d, want %d", s, digest.Size)
	}
}

func TestDigest_BlockSize(t *testing.T) {
	h := digest.New(digest.Customization)
	if bs := h.BlockSize(); bs != 136 {
		t.Errorf("BlockSize() = %d, want 136", bs)
	}
}

func TestDigest_KnownAnswer(t *testing.T) {
	// NIST SP 800-185 cSHAKE256 sample #3, truncated to 256 bits.
	h := digest.New("Email Signature")
	_, _ = h.Write([]byte{0x00, 0x01, 0x02, 0x03})

	if got, want := hex.EncodeToString(h.Sum(nil)),
		"d008828e2b80ac9d2218ffee1d070c48b8e4c87bff32c9699d5b6896eee0edd1"; got != want {
		t.Errorf("Sum() = %s, want = %s", got, want)
	}
}

func TestDigest_Sum(t *testing.T) {
	h := digest.New(digest.Customization)
	input := []byte("Hello, world!")
	_, _ = h.Write(input)

	sum := h.Sum(nil)
	if len(sum) != digest.Size {
		t.Errorf("Sum length = %d, want %d", len(sum), digest.Size)
	}

	// Sum must not disturb the running state.
	sum2 := h.Sum(nil)
	if !bytes.Equal(sum, sum2) {
		t.Errorf("Sum() = %x, want %x", sum2, sum)
	}

	_, _ = h.Write(input)
	if sum3 := h.Sum(nil); bytes.Equal(sum, sum3) {
		t.Error("Sum() should change after Write()")
	}

	prefix := []byte("prefix")
	if got := h.Sum(prefix); !bytes.HasPrefix(got, prefix) || len(got) != len(prefix)+digest.Size {
		t.Errorf("Sum(prefix) = %x, want prefix followed by digest", got)
	}
}

func TestDigest_Reset(t *testing.T) {
	h := digest.New(digest.Customization)
	_, _ = h.Write([]byte("data"))
	sum1 := h.Sum(nil)

	h.Reset()
	if sumEmpty := h.Sum(nil); bytes.Equal(sum1, sumEmpty) {
		t.Error("Reset() didn't clear the state")
	}

	_, _ = h.Write([]byte("data"))
	if sum2 := h.Sum(nil); !bytes.Equal(sum1, sum2) {
		t.Errorf("Sum() after Reset+Write = %x, want %x", sum2, sum1)
	}
}

func TestDigest_Customization(t *testing.T) {
	a, b := digest.New("ROM_CTRL"), digest.New("OTHER")
	if bytes.Equal(a.Sum(nil), b.Sum(nil)) {
		t.Error("customization strings do not separate domains")
	}
}

func TestSumWords(t *testing.T) {
	sum := digest.SumWords(make([]uint64, 56))
	if got, want := hex.EncodeToString(sum[:]),
		"1c02d5077a1034b0d9ced43dd47e9f1176c0bd3ffc942b291b99ce1fbe7673ba"; got != want {
		t.Errorf("SumWords(56 zero words) = %s, want = %s", got, want)
	}

	h := digest.New(digest.Customization)
	_, _ = h.Write(make([]byte, 56*8))
	if got, want := sum[:], h.Sum(nil); !bytes.Equal(got, want) {
		t.Errorf("SumWords = %x, streaming = %x", got, want)
	}
}
