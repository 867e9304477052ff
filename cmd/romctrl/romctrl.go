// Command romctrl loads a scrambled ROM image into a simulated ROM and reports its integrity status.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/codahale/romctrl"
	"github.com/codahale/romctrl/internal/mem"
	"github.com/codahale/romctrl/vmem"
)

func main() {
	log := slog.New(slog.Default().Handler())

	image := flag.String("image", "", "the .vmem image to load (optionally .lz4 compressed)")
	size := flag.Int("size", 32*1024, "the ROM size in bytes")
	key := flag.String("key", "00000000000000000000000000000000", "the scrambling key as 32 hex digits")
	nonce := flag.String("nonce", "0000000000000000", "the scrambling nonce as 16 hex digits")
	alertTest := flag.Bool("alert-test", false, "fire the fatal alert through ALERT_TEST after loading")
	flag.Parse()

	if *image == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(log, *image, *size, *key, *nonce, *alertTest); err != nil {
		log.Error("failed to load ROM", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, path string, size int, keyHex, nonceHex string, alertTest bool) error {
	img, err := vmem.Parse(path)
	if err != nil {
		return err
	}
	log.Info("parsed image", "path", path, "words", len(img.Words))

	ctrl, err := romctrl.New(mem.NewLinear(size),
		romctrl.WithLogger(log),
		romctrl.WithAlert(func() { log.Error("fatal alert raised") }),
	)
	if err != nil {
		return err
	}

	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}

	if err := ctrl.SetKey(keyBytes); err != nil {
		return err
	}

	nonceBytes, err := hex.DecodeString(nonceHex)
	if err != nil {
		return fmt.Errorf("invalid nonce: %w", err)
	}

	if err := ctrl.SetNonce(nonceBytes); err != nil {
		return err
	}

	stats, err := ctrl.Load(img.All())
	if err != nil {
		return err
	}

	if alertTest {
		ctrl.WriteDoubleWord(romctrl.AlertTest, 1)
	}

	for r := romctrl.FatalAlertCause; int(r) < romctrl.RegisterFileSize; r += 4 {
		fmt.Printf("%-18s 0x%08x\n", r, ctrl.ReadDoubleWord(r)) //nolint:forbidigo // command output
	}

	log.Info("loaded ROM",
		"words", stats.Words,
		"digest_words", stats.DigestWords,
		"code_mismatches", stats.CodeMismatch,
		"digest_matches", stats.DigestMatches,
	)

	if status := ctrl.Status(); status.CheckerError || status.IntegrityError {
		return fmt.Errorf("fatal alert cause: checker=%t integrity=%t", status.CheckerError, status.IntegrityError)
	}

	return nil
}
