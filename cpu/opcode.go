package cpu

import (
	"iter"
)

// Mode is an operand addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_IMP = Mode(0) // IMP
	MODE_IMM = Mode(1) // IMM
	MODE_ZP  = Mode(2) // ZP
	MODE_ZPX = Mode(3) // ZPX
	MODE_ZPY = Mode(4) // ZPY
	MODE_ABS = Mode(5) // ABS
	MODE_ABX = Mode(6) // ABX
	MODE_ABY = Mode(7) // ABY
)

// OperandSize returns the number of operand bytes following the opcode.
func (mode Mode) OperandSize() int {
	switch mode {
	case MODE_IMP:
		return 0
	case MODE_IMM, MODE_ZP, MODE_ZPX, MODE_ZPY:
		return 1
	case MODE_ABS, MODE_ABX, MODE_ABY:
		return 2
	default:
		panic("unknown mode")
	}
}

// Executor runs an instruction against the CPU. On entry PC points past
// the opcode byte; the executor consumes its own operand bytes.
type Executor func(cpu *Cpu, mode Mode)

// Instruction describes a single opcode.
type Instruction struct {
	Opcode   uint8    // Opcode byte.
	Mnemonic string   // Assembly mnemonic.
	Mode     Mode     // Addressing mode.
	Cycles   int      // Base cycle count.
	Execute  Executor // Implementation.
}

// Size returns the encoded size of the instruction in bytes.
func (ins *Instruction) Size() int {
	return 1 + ins.Mode.OperandSize()
}

// InstructionTable maps opcode bytes to instructions. Unpopulated entries are nil.
type InstructionTable [256]*Instruction

var _instructions = buildInstructions()

func buildInstructions() (table *InstructionTable) {
	table = &InstructionTable{}

	set := func(opcode uint8, mnemonic string, mode Mode, cycles int, exec Executor) {
		table[opcode] = &Instruction{
			Opcode:   opcode,
			Mnemonic: mnemonic,
			Mode:     mode,
			Cycles:   cycles,
			Execute:  exec,
		}
	}

	set(0x69, "ADC", MODE_IMM, 2, opADC)
	set(0x65, "ADC", MODE_ZP, 3, opADC)
	set(0x75, "ADC", MODE_ZPX, 4, opADC)

	set(0x29, "AND", MODE_IMM, 2, opAND)
	set(0x25, "AND", MODE_ZP, 3, opAND)
	set(0x35, "AND", MODE_ZPX, 4, opAND)

	set(0xa9, "LDA", MODE_IMM, 2, opLDA)
	set(0xa5, "LDA", MODE_ZP, 3, opLDA)
	set(0xb5, "LDA", MODE_ZPX, 4, opLDA)
	set(0xad, "LDA", MODE_ABS, 4, opLDA)
	set(0xbd, "LDA", MODE_ABX, 4, opLDA)
	set(0xb9, "LDA", MODE_ABY, 4, opLDA)

	set(0xa2, "LDX", MODE_IMM, 2, opLDX)
	set(0xa6, "LDX", MODE_ZP, 3, opLDX)
	set(0xb6, "LDX", MODE_ZPY, 4, opLDX)
	set(0xae, "LDX", MODE_ABS, 4, opLDX)
	set(0xbe, "LDX", MODE_ABY, 4, opLDX)

	set(0xa0, "LDY", MODE_IMM, 2, opLDY)
	set(0xa4, "LDY", MODE_ZP, 3, opLDY)
	set(0xb4, "LDY", MODE_ZPX, 4, opLDY)
	set(0xac, "LDY", MODE_ABS, 4, opLDY)
	set(0xbc, "LDY", MODE_ABX, 4, opLDY)

	set(0x85, "STA", MODE_ZP, 3, opSTA)
	set(0x95, "STA", MODE_ZPX, 4, opSTA)
	set(0x8d, "STA", MODE_ABS, 4, opSTA)
	set(0x9d, "STA", MODE_ABX, 5, opSTA)
	set(0x99, "STA", MODE_ABY, 5, opSTA)

	set(0x86, "STX", MODE_ZP, 3, opSTX)
	set(0x96, "STX", MODE_ZPY, 4, opSTX)
	set(0x8e, "STX", MODE_ABS, 4, opSTX)

	set(0x84, "STY", MODE_ZP, 3, opSTY)
	set(0x94, "STY", MODE_ZPX, 4, opSTY)
	set(0x8c, "STY", MODE_ABS, 4, opSTY)

	set(0xaa, "TAX", MODE_IMP, 2, opTAX)
	set(0xa8, "TAY", MODE_IMP, 2, opTAY)
	set(0x8a, "TXA", MODE_IMP, 2, opTXA)
	set(0x98, "TYA", MODE_IMP, 2, opTYA)

	set(0xe8, "INX", MODE_IMP, 2, opINX)
	set(0xc8, "INY", MODE_IMP, 2, opINY)
	set(0xca, "DEX", MODE_IMP, 2, opDEX)
	set(0x88, "DEY", MODE_IMP, 2, opDEY)

	set(0x4c, "JMP", MODE_ABS, 3, opJMP)
	set(0x20, "JSR", MODE_ABS, 6, opJSR)
	set(0x60, "RTS", MODE_IMP, 6, opRTS)

	set(0x48, "PHA", MODE_IMP, 3, opPHA)
	set(0x68, "PLA", MODE_IMP, 4, opPLA)

	set(0x00, "BRK", MODE_IMP, 7, opBRK)

	return
}

// Instructions returns the shared, read-only instruction table.
func Instructions() *InstructionTable {
	return _instructions
}

// Lookup returns the instruction for an opcode byte.
func (table *InstructionTable) Lookup(opcode uint8) (ins *Instruction, ok bool) {
	ins = table[opcode]
	ok = ins != nil
	return
}

// All iterates over the populated opcodes in ascending order.
func (table *InstructionTable) All() iter.Seq2[uint8, *Instruction] {
	return func(yield func(opcode uint8, ins *Instruction) bool) {
		for n, ins := range table {
			if ins == nil {
				continue
			}
			if !yield(uint8(n), ins) {
				return
			}
		}
	}
}

// Find returns the instruction for a mnemonic in a specific mode.
func (table *InstructionTable) Find(mnemonic string, mode Mode) (ins *Instruction, ok bool) {
	for _, ins = range table.All() {
		if ins.Mnemonic == mnemonic && ins.Mode == mode {
			ok = true
			return
		}
	}
	ins = nil
	return
}

// Modes returns the set of modes a mnemonic supports.
func (table *InstructionTable) Modes(mnemonic string) (modes map[Mode]*Instruction) {
	for _, ins := range table.All() {
		if ins.Mnemonic == mnemonic {
			if modes == nil {
				modes = make(map[Mode]*Instruction, 8)
			}
			modes[ins.Mode] = ins
		}
	}
	return
}
