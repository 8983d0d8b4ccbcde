// Package chip8 renders CHIP-8 opcode words as assembly text.
//
// The instruction set tables of retrogolib are used to identify opcodes, the
// package adds operand formatting on top of them so that the interpreter can
// trace executed instructions and the monitor can list memory.
//
// # Instruction Set
//
// CHIP-8 has 35 opcodes:
//   - All instructions are 2 bytes (16 bits), stored big-endian
//   - Instructions use direct addressing with 12-bit addresses
//   - 16 general-purpose 8-bit registers (V0-VF)
//   - Special-purpose registers: I (16-bit), PC, SP, DT and ST
//
// # Usage Example
//
//	code, ok := chip8.Format(0xD125)
//	// code == "drw V1, V2, $5", ok == true
//
//	err := chip8.List(os.Stdout, memory, chip8.ProgramStart, chip8.ProgramStart+0x1E)
//
// Opcode words that do not belong to the instruction set are rendered as
// ".word $XXXX" data directives.
package chip8
