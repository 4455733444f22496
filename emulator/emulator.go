// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/sim6502/cpu"
	"github.com/ezrec/sim6502/internal"
	"github.com/ezrec/sim6502/loader"
	"github.com/ezrec/sim6502/memory"
)

const (
	LISTING_BACK = 0x20 // Bytes before PC shown in a listing.
)

var _emulator_defines = map[string]string{
	"LISTING_BACK": fmt.Sprintf("%#x", LISTING_BACK),
}

// Emulator state. CPU + loaded image + breakpoints.
type Emulator struct {
	Verbose  bool          // If set, enables verbose logging.
	*cpu.Cpu               // Reference to the CPU simulation.
	Image    *loader.Image // Currently loaded image.
	Program  *cpu.Program  // Listing of the loaded image, if assembled.

	Breakpoint map[int]bool // Addresses that stop Run.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:        cpu.NewCpu(),
		Program:    &cpu.Program{},
		Breakpoint: map[int]bool{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Cpu.Memory.Defines(),
	)
}

// Origin returns the address the loaded image starts at.
func (emu *Emulator) Origin() int {
	if emu.Image == nil {
		return 0
	}
	return emu.Image.Origin
}

// Load places an image into memory, clears the stack, and moves PC to the
// image origin. Other registers and memory are left as they were.
func (emu *Emulator) Load(img *loader.Image) (n int) {
	emu.Image = img
	emu.Program = img.Program
	if emu.Program == nil {
		emu.Program = &cpu.Program{}
	}

	n = emu.Cpu.Memory.LoadProgram(img.Data, img.Origin)
	emu.Cpu.Memory.ClearRange(cpu.STACK_BASE, memory.PAGE_SIZE)
	emu.Cpu.SP = cpu.RESET_SP
	emu.Cpu.PC = uint16(img.Origin)

	if emu.Verbose {
		log.Printf("emulator: %v: %d bytes at $%04X", img.Name, n, img.Origin)
	}

	return
}

// Reset the CPU, with PC at the loaded image origin.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.Cpu.PC = uint16(emu.Origin())
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int {
	return int(emu.Cpu.PC)
}

// LineNo returns the current line number for the executing opcode,
// or 0 if the image was not assembled.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Pc())
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Listing disassembles up to count instructions, starting shortly before PC.
func (emu *Emulator) Listing(count int) []cpu.Disassembled {
	return emu.Cpu.Listing(max(0, emu.Pc()-LISTING_BACK), count)
}

// Tick performs a single instruction of the emulator.
// done is set once a BRK instruction has executed.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Pc()
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: pc, LineNo: lineno, Err: err}
		}
	}()

	opcode := emu.Cpu.Memory.ReadByte(pc)

	_, err = emu.Cpu.Step()
	if err != nil {
		return
	}

	ins, _ := cpu.Instructions().Lookup(opcode)
	done = ins.Mnemonic == "BRK"

	return
}

// Run ticks the emulator until a BRK executes, an error occurs, a
// breakpoint is reached, or limit instructions have executed. A limit of
// zero or less runs without limit. The instruction at PC when Run is called
// always executes, so Run can resume from a breakpoint.
func (emu *Emulator) Run(limit int) (steps int, done bool, err error) {
	for limit <= 0 || steps < limit {
		if steps > 0 && emu.Breakpoint[emu.Pc()] {
			err = &ErrRuntime{Address: emu.Pc(), LineNo: emu.LineNo(), Err: ErrBreakpoint}
			return
		}

		done, err = emu.Tick()
		if err != nil {
			return
		}
		steps++

		if done {
			return
		}
	}

	return
}
