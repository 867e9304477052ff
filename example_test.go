package romctrl_test

import (
	"fmt"

	"github.com/codahale/romctrl"
	"github.com/codahale/romctrl/internal/mem"
)

func Example() {
	// A 64-word ROM scrambled with a known key and nonce.
	image := scrambleImage(64, testKey, testNonce, ramp)

	memory := mem.NewLinear(64 * 4)
	ctrl, err := romctrl.New(memory,
		romctrl.WithKey(testKey),
		romctrl.WithNonce(testNonce),
		romctrl.WithAlert(func() { fmt.Println("fatal alert") }),
	)
	if err != nil {
		panic(err)
	}

	stats, err := ctrl.Load(image.All())
	if err != nil {
		panic(err)
	}
	fmt.Printf("words=%d matches=%t\n", stats.Words, stats.DigestMatches)

	word, err := memory.ReadUint32(3 * 4)
	if err != nil {
		panic(err)
	}
	fmt.Printf("word 3 = %#x\n", word)

	fmt.Printf("%s = %#x\n", romctrl.Digest0, ctrl.ReadDoubleWord(romctrl.Digest0))
	fmt.Printf("%s = %#x\n", romctrl.FatalAlertCause, ctrl.ReadDoubleWord(romctrl.FatalAlertCause))

	ctrl.WriteDoubleWord(romctrl.AlertTest, 1)
	fmt.Printf("%s = %#x\n", romctrl.FatalAlertCause, ctrl.ReadDoubleWord(romctrl.FatalAlertCause))

	// Output:
	// words=64 matches=true
	// word 3 = 0x3030303
	// DIGEST_0 = 0xf42e9820
	// FATAL_ALERT_CAUSE = 0x0
	// fatal alert
	// FATAL_ALERT_CAUSE = 0x3
}
