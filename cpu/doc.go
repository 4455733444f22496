// Package cpu implements the processor and assembler for the sim6502 system.
//
// The CPU is a reduced 6502: an accumulator (A), two index registers (X, Y),
// an 8-bit stack pointer (SP) into the stack page at $0100, a 16-bit program
// counter (PC), and a packed status register (P). It executes a fixed subset
// of the 6502 instruction set (loads, stores, ADC, AND, register transfers,
// increments and decrements, JMP, JSR, RTS, PHA, PLA and BRK) against a flat
// 64KiB memory.
//
// The assembler accepts the same subset in a conventional 6502 syntax,
// supporting labels, equates, .org/.byte/.word directives, and compile-time
// $(...) expression evaluation.
package cpu
