// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/sim6502/memory"
)

var _cpu_defines = map[string]string{
	"STACK_BASE":     fmt.Sprintf("%#x", STACK_BASE),
	"VECTOR_BRK":     fmt.Sprintf("%#x", VECTOR_BRK),
	"FLAG_CARRY":     fmt.Sprintf("%#x", uint8(FLAG_CARRY)),
	"FLAG_ZERO":      fmt.Sprintf("%#x", uint8(FLAG_ZERO)),
	"FLAG_INTERRUPT": fmt.Sprintf("%#x", uint8(FLAG_INTERRUPT)),
	"FLAG_DECIMAL":   fmt.Sprintf("%#x", uint8(FLAG_DECIMAL)),
	"FLAG_BREAK":     fmt.Sprintf("%#x", uint8(FLAG_BREAK)),
	"FLAG_OVERFLOW":  fmt.Sprintf("%#x", uint8(FLAG_OVERFLOW)),
	"FLAG_NEGATIVE":  fmt.Sprintf("%#x", uint8(FLAG_NEGATIVE)),
}

// Cpu is the simulation context for the processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Registers                // Register file.
	Memory    *memory.Memory // Attached address space.

	Cycles int // Cycles consumed since reset.
	Ticks  int // Instructions executed since reset.

	table *InstructionTable
}

// NewCpu creates a new CPU with its own memory, in the reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Memory: memory.NewMemory(),
		table:  Instructions(),
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"pc", "a", "x", "y", "sp", "p", "flags", "stack", "cycles"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("$%04X", cpu.PC)
		case "a":
			strval = fmt.Sprintf("$%02X", cpu.A)
		case "x":
			strval = fmt.Sprintf("$%02X", cpu.X)
		case "y":
			strval = fmt.Sprintf("$%02X", cpu.Y)
		case "sp":
			strval = fmt.Sprintf("$%02X", cpu.SP)
		case "p":
			strval = fmt.Sprintf("$%02X", cpu.P)
		case "flags":
			strval = cpu.Flags()
		case "stack":
			strval = fmt.Sprintf("next $%04X, %d used", STACK_BASE+int(cpu.SP), cpu.StackDepth())
		case "cycles":
			strval = fmt.Sprintf("%d in %d steps", cpu.Cycles, cpu.Ticks)
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

// Reset the CPU state.
// - Clears A, X, Y and PC.
// - Sets SP to $FF, and P to $24 (interrupts disabled).
// - Zeros the stack page.
// - Zeros statistics counters.
//
// Memory outside of the stack page is untouched.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers = Registers{
		SP: RESET_SP,
		P:  RESET_P,
	}
	cpu.Memory.ClearRange(STACK_BASE, memory.PAGE_SIZE)

	cpu.Cycles = 0
	cpu.Ticks = 0
}

// Step executes a single instruction, returning the cycles it consumed.
//
// An unknown opcode returns zero cycles and ErrOpcodeUnknown, and leaves PC
// pointing at the opcode, so stepping again reports the same opcode.
func (cpu *Cpu) Step() (cycles int, err error) {
	opcode := cpu.Memory.ReadByte(int(cpu.PC))
	ins, ok := cpu.table.Lookup(opcode)
	if !ok {
		err = ErrOpcodeUnknown(opcode)
		if cpu.Verbose {
			log.Printf("cpu: $%04X: %v", cpu.PC, err)
		}
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: $%04X: %v", cpu.PC, cpu.Disassemble(int(cpu.PC)))
	}

	cpu.PC++
	ins.Execute(cpu, ins.Mode)

	cycles = ins.Cycles
	cpu.Cycles += cycles
	cpu.Ticks++

	return
}

// fetch reads the byte at PC, and advances PC.
func (cpu *Cpu) fetch() (value uint8) {
	value = cpu.Memory.ReadByte(int(cpu.PC))
	cpu.PC++
	return
}

// fetchWord reads the little-endian word at PC, and advances PC past it.
func (cpu *Cpu) fetchWord() (value uint16) {
	value = cpu.Memory.ReadWord(int(cpu.PC))
	cpu.PC += 2
	return
}

// address consumes the operand bytes of mode, and returns the effective
// address. Absolute indexed addresses are not wrapped here; memory
// accesses wrap them.
func (cpu *Cpu) address(mode Mode) (addr int) {
	switch mode {
	case MODE_IMM:
		addr = int(cpu.PC)
		cpu.PC++
	case MODE_ZP:
		addr = int(cpu.fetch())
	case MODE_ZPX:
		addr = (int(cpu.fetch()) + int(cpu.X)) & 0xff
	case MODE_ZPY:
		addr = (int(cpu.fetch()) + int(cpu.Y)) & 0xff
	case MODE_ABS:
		addr = int(cpu.fetchWord())
	case MODE_ABX:
		addr = int(cpu.fetchWord()) + int(cpu.X)
	case MODE_ABY:
		addr = int(cpu.fetchWord()) + int(cpu.Y)
	case MODE_IMP:
		panic("implied mode has no operand")
	default:
		panic("unknown mode")
	}

	return
}

// operand consumes the operand bytes of mode, and returns the operand value.
func (cpu *Cpu) operand(mode Mode) uint8 {
	return cpu.Memory.ReadByte(cpu.address(mode))
}

func opLDA(cpu *Cpu, mode Mode) {
	cpu.A = cpu.operand(mode)
	cpu.UpdateNZ(cpu.A)
}

func opLDX(cpu *Cpu, mode Mode) {
	cpu.X = cpu.operand(mode)
	cpu.UpdateNZ(cpu.X)
}

func opLDY(cpu *Cpu, mode Mode) {
	cpu.Y = cpu.operand(mode)
	cpu.UpdateNZ(cpu.Y)
}

func opSTA(cpu *Cpu, mode Mode) {
	cpu.Memory.WriteByte(cpu.address(mode), cpu.A)
}

func opSTX(cpu *Cpu, mode Mode) {
	cpu.Memory.WriteByte(cpu.address(mode), cpu.X)
}

func opSTY(cpu *Cpu, mode Mode) {
	cpu.Memory.WriteByte(cpu.address(mode), cpu.Y)
}

// opADC adds with carry. The overflow bit is taken from bit 7 of the raw
// sum, not from the signed overflow of the addition.
func opADC(cpu *Cpu, mode Mode) {
	sum := int(cpu.A) + int(cpu.operand(mode))
	if cpu.GetFlag(FLAG_CARRY) {
		sum++
	}

	cpu.SetFlag(FLAG_CARRY, sum > 0xff)
	cpu.SetFlag(FLAG_OVERFLOW, (sum&0x80) != 0)
	cpu.UpdateNZ(uint8(sum & 0xff))
	cpu.A = uint8(sum & 0xff)
}

func opAND(cpu *Cpu, mode Mode) {
	cpu.A &= cpu.operand(mode)
	cpu.UpdateNZ(cpu.A)
}

func opTAX(cpu *Cpu, mode Mode) {
	cpu.X = cpu.A
	cpu.UpdateNZ(cpu.X)
}

func opTAY(cpu *Cpu, mode Mode) {
	cpu.Y = cpu.A
	cpu.UpdateNZ(cpu.Y)
}

func opTXA(cpu *Cpu, mode Mode) {
	cpu.A = cpu.X
	cpu.UpdateNZ(cpu.A)
}

func opTYA(cpu *Cpu, mode Mode) {
	cpu.A = cpu.Y
	cpu.UpdateNZ(cpu.A)
}

func opINX(cpu *Cpu, mode Mode) {
	cpu.X++
	cpu.UpdateNZ(cpu.X)
}

func opINY(cpu *Cpu, mode Mode) {
	cpu.Y++
	cpu.UpdateNZ(cpu.Y)
}

func opDEX(cpu *Cpu, mode Mode) {
	cpu.X--
	cpu.UpdateNZ(cpu.X)
}

func opDEY(cpu *Cpu, mode Mode) {
	cpu.Y--
	cpu.UpdateNZ(cpu.Y)
}

func opJMP(cpu *Cpu, mode Mode) {
	cpu.PC = uint16(cpu.address(mode))
}

// opJSR pushes the address of the last byte of the JSR, high byte first.
func opJSR(cpu *Cpu, mode Mode) {
	target := uint16(cpu.address(mode))
	ret := cpu.PC - 1
	cpu.Push(uint8(ret >> 8))
	cpu.Push(uint8(ret & 0xff))
	cpu.PC = target
}

func opRTS(cpu *Cpu, mode Mode) {
	lo := cpu.Pop()
	hi := cpu.Pop()
	cpu.PC = (uint16(hi) << 8) | uint16(lo)
	cpu.PC++
}

func opPHA(cpu *Cpu, mode Mode) {
	cpu.Push(cpu.A)
}

func opPLA(cpu *Cpu, mode Mode) {
	cpu.A = cpu.Pop()
	cpu.UpdateNZ(cpu.A)
}

// opBRK pushes PC+1 and the status (with B and bit 5 forced on in the
// pushed copy), disables interrupts, and jumps through the BRK vector.
func opBRK(cpu *Cpu, mode Mode) {
	ret := cpu.PC + 1
	cpu.Push(uint8(ret >> 8))
	cpu.Push(uint8(ret & 0xff))
	cpu.Push(cpu.P | BRK_P_FORCE)
	cpu.SetFlag(FLAG_INTERRUPT, true)
	cpu.PC = cpu.Memory.ReadWord(VECTOR_BRK)
}
