package vm

import (
	"errors"
	"fmt"
)

var (
	// ErrLoadOverflow is returned when program data does not fit into memory at the requested address.
	ErrLoadOverflow = errors.New("loading data is too large")

	// ErrIllegalOpcode is returned when an opcode word does not resolve to a single instruction.
	ErrIllegalOpcode = errors.New("illegal opcode")
)

// IllegalOpcodeError carries the offending opcode word and the program counter it was fetched from.
type IllegalOpcodeError struct {
	Opcode uint16
	PC     uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("illegal opcode %04x at address %03x", e.Opcode, e.PC)
}

// Unwrap allows errors.Is(err, ErrIllegalOpcode).
func (e *IllegalOpcodeError) Unwrap() error {
	return ErrIllegalOpcode
}
