package cpu

import (
	"fmt"
	"strings"
)

// Disassembled is the decoded form of the instruction at an address.
type Disassembled struct {
	Address  int     // Address of the opcode byte.
	Bytes    []uint8 // Opcode and operand bytes.
	Mnemonic string  // Mnemonic, or '???' for unknown opcodes.
	Operand  string  // Operand text, empty for implied instructions.
	Comment  string  // Short description.
}

// String formats the instruction as a listing line.
func (dis Disassembled) String() string {
	hex := make([]string, len(dis.Bytes))
	for n, b := range dis.Bytes {
		hex[n] = fmt.Sprintf("%02X", b)
	}
	text := strings.TrimSpace(dis.Mnemonic + " " + dis.Operand)
	return fmt.Sprintf("$%04X  %-8s  %-12s ; %v", dis.Address, strings.Join(hex, " "), text, dis.Comment)
}

// Disassemble decodes the instruction at addr without changing CPU state.
// Any address may be decoded, including the middle of an instruction.
func (cpu *Cpu) Disassemble(addr int) (dis Disassembled) {
	addr &= 0xffff
	opcode := cpu.Memory.ReadByte(addr)

	dis.Address = addr
	dis.Bytes = []uint8{opcode}

	ins, ok := cpu.table.Lookup(opcode)
	if !ok {
		dis.Mnemonic = "???"
		dis.Comment = "Unknown opcode"
		return
	}

	dis.Mnemonic = ins.Mnemonic
	for n := range ins.Mode.OperandSize() {
		dis.Bytes = append(dis.Bytes, cpu.Memory.ReadByte(addr+1+n))
	}

	var value int
	switch len(dis.Bytes) {
	case 2:
		value = int(dis.Bytes[1])
	case 3:
		value = int(dis.Bytes[1]) | (int(dis.Bytes[2]) << 8)
	}

	switch ins.Mode {
	case MODE_IMM:
		dis.Operand = fmt.Sprintf("#$%02X", value)
		dis.Comment = fmt.Sprintf("Load immediate %d", value)
	case MODE_ZP:
		dis.Operand = fmt.Sprintf("$%02X", value)
		dis.Comment = fmt.Sprintf("Zero page address $%02X", value)
	case MODE_ZPX:
		dis.Operand = fmt.Sprintf("$%02X,X", value)
		dis.Comment = "Zero page X indexed"
	case MODE_ZPY:
		dis.Operand = fmt.Sprintf("$%02X,Y", value)
		dis.Comment = "Zero page Y indexed"
	case MODE_ABS:
		dis.Operand = fmt.Sprintf("$%04X", value)
		dis.Comment = fmt.Sprintf("Absolute address $%04X", value)
	case MODE_ABX:
		dis.Operand = fmt.Sprintf("$%04X,X", value)
		dis.Comment = "Absolute X indexed"
	case MODE_ABY:
		dis.Operand = fmt.Sprintf("$%04X,Y", value)
		dis.Comment = "Absolute Y indexed"
	case MODE_IMP:
		dis.Comment = "Implied addressing"
	default:
		panic("unknown mode")
	}

	return
}

// Listing disassembles up to count consecutive instructions from addr,
// stopping after the first BRK or at the end of the address space.
func (cpu *Cpu) Listing(addr int, count int) (list []Disassembled) {
	for range count {
		if addr < 0 || addr > 0xffff {
			break
		}
		dis := cpu.Disassemble(addr)
		list = append(list, dis)
		if dis.Mnemonic == "BRK" {
			break
		}
		addr += len(dis.Bytes)
	}
	return
}
