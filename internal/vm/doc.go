// Package vm implements the CHIP-8 virtual machine.
//
// # Machine State
//
// A VM owns all of its state:
//   - 4KB of memory, the font glyphs at FontOffset and programs from ProgramStart
//   - 16 general purpose 8-bit registers V0-VF, VF doubles as flag register
//   - the 12-bit index register I, the program counter and the stack pointer
//   - a call stack of 16 return addresses, growing downwards and wrapping around
//   - the delay and sound timers
//   - a 64x32 monochrome display and the latch of the 16 hex keys
//
// # Execution
//
// Step executes exactly one instruction. Opcode words are resolved by Decode
// to a Kind out of a closed set and executed by a single switch over that
// set. The program counter and index register arithmetic wraps at 4KB,
// register arithmetic wraps at 8 bits.
//
// The VM never blocks. LD Vx, K leaves the program counter in place until
// the host latched a key with SetKey, so the host keeps calling Step while
// it updates the keys. The timers count down when the host calls TickTimers
// with the current time, independent of the instruction rate.
//
// # Usage Example
//
//	machine := vm.New(vm.WithSeed(1))
//	if err := machine.LoadProgram(rom); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		if err := machine.Step(); err != nil {
//			return fmt.Errorf("executing instruction: %w", err)
//		}
//		machine.TickTimers(time.Now())
//	}
//
// # Errors
//
// Loading fails with ErrLoadOverflow before any byte is written, stepping
// fails with an *IllegalOpcodeError that wraps ErrIllegalOpcode and carries
// the opcode word and its address. The legacy SYS instruction decodes but is
// not executed and reported as illegal opcode as well.
package vm
