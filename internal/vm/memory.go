package vm

import "fmt"

// CHIP-8 memory layout constants.
//
//	0x000-0x04F: font glyphs for the hex digits 0-F
//	0x050-0x1FF: unused interpreter area
//	0x200-0xFFF: program space
const (
	// MemorySize is the size of the address space in bytes.
	MemorySize = 4096

	// AddressMask wraps addresses into the address space.
	AddressMask = MemorySize - 1

	// ProgramStart is the default load address and the initial program counter.
	ProgramStart = 0x200

	// FontOffset is the address of the first font glyph.
	FontOffset = 0

	// FontHeight is the number of bytes of a single font glyph.
	FontHeight = 5
)

var font = [16 * FontHeight]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Load copies data into memory starting at address. Nothing is written if
// the data does not fit.
func (vm *VM) Load(data []byte, address uint16) error {
	if int(address)+len(data) > MemorySize {
		return fmt.Errorf("%w: %d bytes at address %03x exceed %d bytes of memory",
			ErrLoadOverflow, len(data), address, MemorySize)
	}
	copy(vm.memory[address:], data)
	return nil
}

// LoadProgram copies a program into memory at the program start address.
func (vm *VM) LoadProgram(data []byte) error {
	return vm.Load(data, ProgramStart)
}

// ReadByte returns the byte at the wrapped address.
func (vm *VM) ReadByte(address uint16) byte {
	return vm.memory[address&AddressMask]
}

// Memory returns a copy of the whole address space.
func (vm *VM) Memory() [MemorySize]byte {
	return vm.memory
}

// Opcode returns the opcode word at the program counter.
func (vm *VM) Opcode() uint16 {
	return vm.readWord(vm.pc)
}

func (vm *VM) readWord(address uint16) uint16 {
	return uint16(vm.ReadByte(address))<<8 | uint16(vm.ReadByte(address+1))
}

func (vm *VM) writeByte(address uint16, value byte) {
	vm.memory[address&AddressMask] = value
}
