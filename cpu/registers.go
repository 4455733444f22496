package cpu

import (
	"strings"
)

// Flag is a status register bit mask.
type Flag uint8

const (
	FLAG_CARRY     = Flag(0x01) // C
	FLAG_ZERO      = Flag(0x02) // Z
	FLAG_INTERRUPT = Flag(0x04) // I
	FLAG_DECIMAL   = Flag(0x08) // D
	FLAG_BREAK     = Flag(0x10) // B
	FLAG_UNUSED    = Flag(0x20) // -
	FLAG_OVERFLOW  = Flag(0x40) // V
	FLAG_NEGATIVE  = Flag(0x80) // N
)

const (
	STACK_BASE  = 0x0100 // Stack page base address.
	VECTOR_BRK  = 0xfffe // BRK/IRQ vector address.
	RESET_SP    = 0xff   // Stack pointer after reset.
	RESET_P     = 0x24   // Status register after reset.
	BRK_P_FORCE = 0x30   // Bits forced on in the status pushed by BRK.
)

// Registers is the CPU register file.
type Registers struct {
	A  uint8  // Accumulator.
	X  uint8  // X index.
	Y  uint8  // Y index.
	SP uint8  // Stack pointer, offset into the stack page.
	PC uint16 // Program counter.
	P  uint8  // Packed status flags.
}

// SetFlag sets or clears the flag bits in P.
func (reg *Registers) SetFlag(flag Flag, value bool) {
	if value {
		reg.P |= uint8(flag)
	} else {
		reg.P &^= uint8(flag)
	}
}

// GetFlag returns true if any of the flag bits are set in P.
func (reg *Registers) GetFlag(flag Flag) bool {
	return (reg.P & uint8(flag)) != 0
}

// UpdateNZ sets Zero iff value is 0, and Negative iff bit 7 of value is set.
func (reg *Registers) UpdateNZ(value uint8) {
	reg.SetFlag(FLAG_ZERO, value == 0)
	reg.SetFlag(FLAG_NEGATIVE, (value&0x80) != 0)
}

// Flags renders P as 'NV-BDIZC', with '.' for clear bits.
func (reg *Registers) Flags() string {
	const names = "NV-BDIZC"
	var sb strings.Builder
	for n := range 8 {
		if (reg.P & (0x80 >> n)) != 0 {
			sb.WriteByte(names[n])
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
