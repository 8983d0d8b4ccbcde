package vm

const (
	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the index of VF, overwritten by arithmetic, shift and draw instructions.
	FlagRegister = 0xF

	// StackSize is the number of return addresses the call stack holds.
	StackSize = 16
)

// V returns the value of the general purpose register x.
func (vm *VM) V(x uint8) byte {
	return vm.v[x&0xF]
}

// Registers returns a copy of the general purpose registers.
func (vm *VM) Registers() [RegisterCount]byte {
	return vm.v
}

// I returns the index register.
func (vm *VM) I() uint16 {
	return vm.i
}

// PC returns the program counter.
func (vm *VM) PC() uint16 {
	return vm.pc
}

// SP returns the stack pointer. The stack grows downwards from StackSize-1
// and the pointer wraps around in both directions.
func (vm *VM) SP() uint8 {
	return vm.sp
}

// Stack returns a copy of the call stack.
func (vm *VM) Stack() [StackSize]uint16 {
	return vm.stack
}

// DT returns the delay timer.
func (vm *VM) DT() byte {
	return vm.dt
}

// ST returns the sound timer.
func (vm *VM) ST() byte {
	return vm.st
}

// SoundActive returns whether the sound timer is running and a tone should play.
func (vm *VM) SoundActive() bool {
	return vm.st > 0
}

func (vm *VM) push(address uint16) {
	vm.stack[vm.sp] = address
	vm.sp = (vm.sp - 1) & (StackSize - 1)
}

func (vm *VM) pop() uint16 {
	vm.sp = (vm.sp + 1) & (StackSize - 1)
	return vm.stack[vm.sp]
}
