package chip8

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// OpcodeSize is the size of CHIP-8 instructions in bytes.
const OpcodeSize = 2

// Opcode represents a CHIP-8 opcode table entry with its matching information.
type Opcode struct {
	op chip8.Opcode
}

// Lookup returns the opcode table entry that matches the opcode word.
// It returns false for words that are not part of the instruction set.
func Lookup(word uint16) (Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			return Opcode{op: op}, true
		}
	}
	return Opcode{}, false
}

// Instruction returns the instruction associated with this opcode.
func (o Opcode) Instruction() Instruction {
	return Instruction{ins: o.op.Instruction}
}

// ReadsMemory returns true if this CHIP-8 instruction reads from memory.
func (o Opcode) ReadsMemory() bool {
	if o.op.Instruction == nil {
		return false
	}
	return chip8.MemoryReadInstructions.Contains(o.op.Instruction.Name)
}

// WritesMemory returns true if this CHIP-8 instruction writes to memory.
func (o Opcode) WritesMemory() bool {
	if o.op.Instruction == nil {
		return false
	}
	return chip8.MemoryWriteInstructions.Contains(o.op.Instruction.Name)
}
