package vm

import "errors"

// opcodeSize is the size of a CHIP-8 instruction in bytes.
const opcodeSize = 2

// Step fetches, decodes and executes the instruction at the program counter.
// On an illegal opcode the state is left unchanged.
func (vm *VM) Step() error {
	ins, err := vm.Fetch()
	if err != nil {
		return err
	}
	return vm.Execute(ins)
}

// Fetch decodes the instruction at the program counter without executing it.
func (vm *VM) Fetch() (Instruction, error) {
	ins, err := Decode(vm.Opcode())
	if err != nil {
		var illegal *IllegalOpcodeError
		if errors.As(err, &illegal) {
			illegal.PC = vm.pc
		}
		return ins, err
	}
	return ins, nil
}

// Execute runs a decoded instruction against the machine state.
func (vm *VM) Execute(ins Instruction) error {
	ins.X &= 0xF
	ins.Y &= 0xF

	switch ins.Kind {
	case KindSys:
		return &IllegalOpcodeError{Opcode: ins.Opcode, PC: vm.pc}
	case KindClearDisplay:
		vm.display.clear()
		vm.next()
	case KindReturn:
		vm.pc = vm.pop()
		vm.next()
	case KindJump:
		vm.pc = ins.NNN
	case KindCall:
		vm.push(vm.pc)
		vm.pc = ins.NNN
	case KindSkipEqualByte:
		vm.skipIf(vm.v[ins.X] == ins.KK)
	case KindSkipNotEqualByte:
		vm.skipIf(vm.v[ins.X] != ins.KK)
	case KindSkipEqualRegisters:
		vm.skipIf(vm.v[ins.X] == vm.v[ins.Y])
	case KindLoadByte:
		vm.v[ins.X] = ins.KK
		vm.next()
	case KindAddByte:
		vm.add(ins.X, ins.KK)
	case KindLoadRegister:
		vm.v[ins.X] = vm.v[ins.Y]
		vm.next()
	case KindOr:
		vm.v[ins.X] |= vm.v[ins.Y]
		vm.next()
	case KindAnd:
		vm.v[ins.X] &= vm.v[ins.Y]
		vm.next()
	case KindXor:
		vm.v[ins.X] ^= vm.v[ins.Y]
		vm.next()
	case KindAddCarry:
		vm.add(ins.X, vm.v[ins.Y])
	case KindSubBorrow:
		vm.sub(ins.X, vm.v[ins.X], vm.v[ins.Y])
	case KindShiftRight:
		vm.setFlag(vm.v[ins.X]&1 == 1)
		vm.v[ins.X] >>= 1
		vm.next()
	case KindSubnBorrow:
		vm.sub(ins.X, vm.v[ins.Y], vm.v[ins.X])
	case KindShiftLeft:
		vm.setFlag(vm.v[ins.X]>>7 == 1)
		vm.v[ins.X] <<= 1
		vm.next()
	case KindSkipNotEqualRegisters:
		vm.skipIf(vm.v[ins.X] != vm.v[ins.Y])
	case KindLoadIndex:
		vm.i = ins.NNN & AddressMask
		vm.next()
	case KindJumpRegister:
		vm.pc = (uint16(vm.v[0]) + ins.NNN) & AddressMask
	case KindRandom:
		vm.v[ins.X] = uint8(vm.rng.IntN(256)) & ins.KK
		vm.next()
	case KindDraw:
		vm.draw(ins)
	case KindSkipKeyPressed:
		vm.skipKeyPressed(ins.X)
	case KindSkipKeyNotPressed:
		vm.skipIf(!vm.keyPressed(ins.X))
	case KindLoadDelayTimer:
		vm.v[ins.X] = vm.dt
		vm.next()
	case KindWaitKey:
		vm.waitKey(ins.X)
	case KindSetDelayTimer:
		vm.dt = vm.v[ins.X]
		vm.next()
	case KindSetSoundTimer:
		vm.st = vm.v[ins.X]
		vm.next()
	case KindAddIndex:
		vm.i = (vm.i + uint16(vm.v[ins.X])) & AddressMask
		vm.next()
	case KindLoadFont:
		vm.i = (FontOffset + FontHeight*uint16(vm.v[ins.X])) & AddressMask
		vm.next()
	case KindLoadBCD:
		value := vm.v[ins.X]
		vm.writeByte(vm.i, value/100)
		vm.writeByte(vm.i+1, value/10%10)
		vm.writeByte(vm.i+2, value%10)
		vm.next()
	case KindStoreRegisters:
		for k := uint16(0); k <= uint16(ins.X); k++ {
			vm.writeByte(vm.i+k, vm.v[k])
		}
		vm.next()
	case KindLoadRegistersIndex:
		for k := uint16(0); k <= uint16(ins.X); k++ {
			vm.v[k] = vm.ReadByte(vm.i + k)
		}
		vm.next()
	}
	return nil
}

// next advances the program counter to the following instruction.
func (vm *VM) next() {
	vm.pc = (vm.pc + opcodeSize) & AddressMask
}

// skipIf advances past the following instruction if the condition holds.
func (vm *VM) skipIf(condition bool) {
	if condition {
		vm.next()
	}
	vm.next()
}

// setFlag overwrites VF with 1 or 0.
func (vm *VM) setFlag(set bool) {
	if set {
		vm.v[FlagRegister] = 1
	} else {
		vm.v[FlagRegister] = 0
	}
}

// add stores Vx+value wrapped to 8 bits with VF set on overflow. The flag is
// written first so that the result wins when x is VF.
func (vm *VM) add(x, value uint8) {
	sum := uint16(vm.v[x]) + uint16(value)
	vm.setFlag(sum > 0xFF)
	vm.v[x] = uint8(sum)
	vm.next()
}

// sub stores minuend-subtrahend wrapped to 8 bits in Vx, VF is 1 when no borrow occurred.
func (vm *VM) sub(x, minuend, subtrahend uint8) {
	vm.setFlag(minuend >= subtrahend)
	vm.v[x] = minuend - subtrahend
	vm.next()
}

func (vm *VM) draw(ins Instruction) {
	rows := make([]byte, ins.N)
	for row := range rows {
		rows[row] = vm.ReadByte(vm.i + uint16(row))
	}
	x, y := int(vm.v[ins.X]), int(vm.v[ins.Y])
	vm.setFlag(vm.display.drawSprite(x, y, rows))
	vm.next()
}

func (vm *VM) skipKeyPressed(x uint8) {
	pressed := vm.keyPressed(x)
	if pressed {
		vm.keys[vm.v[x]] = false
	}
	vm.skipIf(pressed)
}

// waitKey leaves the program counter in place until a key is latched, so the
// instruction is executed again by the next step.
func (vm *VM) waitKey(x uint8) {
	key, ok := vm.firstPressed()
	if !ok {
		return
	}
	vm.keys[key] = false
	vm.v[x] = key
	vm.next()
}
