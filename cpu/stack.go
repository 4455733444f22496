package cpu

// Push writes value at the next free stack address, then decrements SP.
// SP wraps within the stack page; there is no overflow detection.
func (cpu *Cpu) Push(value uint8) {
	cpu.Memory.WriteByte(STACK_BASE+int(cpu.SP), value)
	cpu.SP--
}

// Pop increments SP, then reads the stack at SP.
// SP wraps within the stack page; there is no underflow detection.
func (cpu *Cpu) Pop() (value uint8) {
	cpu.SP++
	value = cpu.Memory.ReadByte(STACK_BASE + int(cpu.SP))
	return
}

// Peek returns the byte Pop would return, without changing SP.
func (cpu *Cpu) Peek() (value uint8) {
	return cpu.Memory.ReadByte(STACK_BASE + int(cpu.SP+1))
}

// StackDepth returns the number of bytes pushed since SP was $FF.
func (cpu *Cpu) StackDepth() int {
	return RESET_SP - int(cpu.SP)
}
