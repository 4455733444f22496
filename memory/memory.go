// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memory implements the flat 64KiB address space of the simulator.
//
// Every address is valid: accesses are wrapped modulo 65536, and values are
// bytes, so no operation on Memory can fail.
package memory

import (
	"fmt"
	"iter"
	"maps"
)

const (
	MEMORY_SIZE = 0x10000 // Size of the address space.
	MEMORY_MASK = 0xffff  // Address wrap mask.
	STACK_PAGE  = 0x0100  // Base of the stack page.
	PAGE_SIZE   = 0x100   // Size of a page.
)

var _memory_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%#x", MEMORY_SIZE),
	"STACK_PAGE":  fmt.Sprintf("%#x", STACK_PAGE),
	"PAGE_SIZE":   fmt.Sprintf("%#x", PAGE_SIZE),
}

// Memory is the 64KiB byte store.
type Memory struct {
	Data [MEMORY_SIZE]uint8
}

// NewMemory creates a zeroed address space.
func NewMemory() *Memory {
	return &Memory{}
}

// Defines for the memory layout.
func (mem *Memory) Defines() iter.Seq2[string, string] {
	return maps.All(_memory_defines)
}

// ReadByte reads the byte at addr, wrapped to 16 bits.
func (mem *Memory) ReadByte(addr int) uint8 {
	return mem.Data[addr&MEMORY_MASK]
}

// WriteByte writes value at addr, wrapped to 16 bits.
func (mem *Memory) WriteByte(addr int, value uint8) {
	mem.Data[addr&MEMORY_MASK] = value
}

// ReadWord reads a little-endian word. The high byte comes from addr+1,
// with no zero page wraparound.
func (mem *Memory) ReadWord(addr int) uint16 {
	return uint16(mem.ReadByte(addr)) | (uint16(mem.ReadByte(addr+1)) << 8)
}

// WriteWord writes a little-endian word, low byte first.
func (mem *Memory) WriteWord(addr int, value uint16) {
	mem.WriteByte(addr, uint8(value&0xff))
	mem.WriteByte(addr+1, uint8(value>>8))
}

// LoadProgram copies data into memory starting at origin.
// Bytes that would land past the end of the address space are dropped.
func (mem *Memory) LoadProgram(data []uint8, origin int) (n int) {
	origin &= MEMORY_MASK
	n = copy(mem.Data[origin:], data)
	return
}

// Dump returns a copy of the memory range [start, start+length), clipped
// to the end of the address space.
func (mem *Memory) Dump(start int, length int) (data []uint8) {
	start &= MEMORY_MASK
	if length <= 0 {
		return []uint8{}
	}

	end := min(start+length, MEMORY_SIZE)
	data = make([]uint8, end-start)
	copy(data, mem.Data[start:end])
	return
}

// Clear zeroes the entire address space.
func (mem *Memory) Clear() {
	clear(mem.Data[:])
}

// ClearRange zeroes [start, start+length), clipped to the address space.
func (mem *Memory) ClearRange(start int, length int) {
	start &= MEMORY_MASK
	if length <= 0 {
		return
	}
	end := min(start+length, MEMORY_SIZE)
	clear(mem.Data[start:end])
}
