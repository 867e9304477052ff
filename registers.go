package romctrl

import (
	"encoding/binary"
	"fmt"
)

// Register is the byte offset of a 32-bit controller register.
type Register uint32

// Register offsets. All registers are 32 bits wide and little-endian.
const (
	// AlertTest fires the fatal alert when bit 0 is written as 1. Reads return 0.
	AlertTest Register = 0x00

	// FatalAlertCause holds the checker error in bit 0 and the integrity error in bit 1. Read-only.
	FatalAlertCause Register = 0x04

	// Digest0 is the first of DigestWords read-only registers holding the observed digest.
	Digest0 Register = 0x08

	// ExpectedDigest0 is the first of DigestWords read-only registers holding the expected digest.
	ExpectedDigest0 Register = Digest0 + DigestWords*4

	// RegisterFileSize is the size of the register file in bytes.
	RegisterFileSize = int(ExpectedDigest0) + DigestWords*4
)

const (
	causeCheckerError   = 1 << 0
	causeIntegrityError = 1 << 1
)

// String returns the register's name, or its hex offset if it is not a register.
func (r Register) String() string {
	switch {
	case r == AlertTest:
		return "ALERT_TEST"
	case r == FatalAlertCause:
		return "FATAL_ALERT_CAUSE"
	case r%4 != 0:
		return fmt.Sprintf("0x%02X", uint32(r))
	case r >= Digest0 && r < ExpectedDigest0:
		return fmt.Sprintf("DIGEST_%d", (r-Digest0)/4)
	case r >= ExpectedDigest0 && int(r) < RegisterFileSize:
		return fmt.Sprintf("EXP_DIGEST_%d", (r-ExpectedDigest0)/4)
	default:
		return fmt.Sprintf("0x%02X", uint32(r))
	}
}

// ReadDoubleWord returns the value of the register at offset. Unknown or unaligned offsets are logged and read as
// zero.
func (c *Controller) ReadDoubleWord(offset Register) uint32 {
	switch {
	case offset == AlertTest:
		return 0
	case offset == FatalAlertCause:
		var v uint32
		if c.checkerError {
			v |= causeCheckerError
		}
		if c.integrityError {
			v |= causeIntegrityError
		}
		return v
	case offset%4 != 0:
		// unaligned
	case offset >= Digest0 && offset < ExpectedDigest0:
		i := (offset - Digest0) / 4
		return binary.LittleEndian.Uint32(c.digest[4*i:])
	case offset >= ExpectedDigest0 && int(offset) < RegisterFileSize:
		return c.expected[(offset-ExpectedDigest0)/4]
	}

	c.config.logger.Warn("unhandled register read", "offset", fmt.Sprintf("0x%X", uint32(offset)))
	return 0
}

// WriteDoubleWord writes value to the register at offset. Only AlertTest responds to writes; writes to read-only or
// unknown registers are logged and ignored.
func (c *Controller) WriteDoubleWord(offset Register, value uint32) {
	switch {
	case offset == AlertTest:
		if value&1 == 1 {
			c.alertTest()
		}
	case offset%4 == 0 && int(offset) < RegisterFileSize:
		c.config.logger.Warn("write to read-only register",
			"register", offset.String(),
			"value", fmt.Sprintf("0x%08X", value),
		)
	default:
		c.config.logger.Warn("unhandled register write",
			"offset", fmt.Sprintf("0x%X", uint32(offset)),
			"value", fmt.Sprintf("0x%08X", value),
		)
	}
}
