package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		bytes    []uint8
		mnemonic string
		operand  string
		comment  string
	}){
		{[]uint8{0xa9, 0x42}, "LDA", "#$42", "Load immediate 66"},
		{[]uint8{0xa5, 0x10}, "LDA", "$10", "Zero page address $10"},
		{[]uint8{0xb5, 0x10}, "LDA", "$10,X", "Zero page X indexed"},
		{[]uint8{0xb6, 0x10}, "LDX", "$10,Y", "Zero page Y indexed"},
		{[]uint8{0xad, 0x34, 0x12}, "LDA", "$1234", "Absolute address $1234"},
		{[]uint8{0xbd, 0x34, 0x12}, "LDA", "$1234,X", "Absolute X indexed"},
		{[]uint8{0xb9, 0x34, 0x12}, "LDA", "$1234,Y", "Absolute Y indexed"},
		{[]uint8{0x20, 0x00, 0x06}, "JSR", "$0600", "Absolute address $0600"},
		{[]uint8{0xaa}, "TAX", "", "Implied addressing"},
		{[]uint8{0x00}, "BRK", "", "Implied addressing"},
		{[]uint8{0xff}, "???", "", "Unknown opcode"},
		{[]uint8{0x02}, "???", "", "Unknown opcode"},
	}

	for _, entry := range table {
		cpu := newCpuWith(entry.bytes, 0x0300)
		regs := cpu.Registers

		dis := cpu.Disassemble(0x0300)
		assert.Equal(0x0300, dis.Address)
		assert.Equal(entry.bytes, dis.Bytes)
		assert.Equal(entry.mnemonic, dis.Mnemonic)
		assert.Equal(entry.operand, dis.Operand)
		assert.Equal(entry.comment, dis.Comment)

		assert.Equal(regs, cpu.Registers)
	}
}

func TestDisassemble_Wrap(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Memory.WriteByte(0xffff, 0xad)
	cpu.Memory.WriteByte(0x0000, 0x34)
	cpu.Memory.WriteByte(0x0001, 0x12)

	dis := cpu.Disassemble(0xffff)
	assert.Equal([]uint8{0xad, 0x34, 0x12}, dis.Bytes)
	assert.Equal("$1234", dis.Operand)

	dis = cpu.Disassemble(0x1ffff)
	assert.Equal(0xffff, dis.Address)
}

func TestDisassembled_String(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpuWith([]uint8{0xa9, 0x42, 0xaa}, 0x0600)

	assert.Equal("$0600  A9 42     LDA #$42     ; Load immediate 66", cpu.Disassemble(0x0600).String())
	assert.Equal("$0602  AA        TAX          ; Implied addressing", cpu.Disassemble(0x0602).String())
}

func TestListing(t *testing.T) {
	assert := assert.New(t)

	// LDA #1, TAX, BRK, LDA #2
	cpu := newCpuWith([]uint8{0xa9, 0x01, 0xaa, 0x00, 0xa9, 0x02}, 0x0200)

	list := cpu.Listing(0x0200, 10)
	assert.Equal(3, len(list))
	assert.Equal(0x0200, list[0].Address)
	assert.Equal(0x0202, list[1].Address)
	assert.Equal(0x0203, list[2].Address)
	assert.Equal("BRK", list[2].Mnemonic)

	list = cpu.Listing(0x0200, 2)
	assert.Equal(2, len(list))

	list = cpu.Listing(0x0200, 0)
	assert.Equal(0, len(list))

	// Unknown opcodes decode as single bytes.
	cpu = newCpuWith([]uint8{0xff, 0xff, 0xff}, 0xfffd)
	list = cpu.Listing(0xfffd, 10)
	assert.Equal(3, len(list))
	assert.Equal(0xffff, list[2].Address)
}
