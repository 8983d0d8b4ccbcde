package vm

// KeyCount is the number of keys of the hex keypad.
const KeyCount = 16

// SetKey latches the state of a key, called by the host between steps.
func (vm *VM) SetKey(key uint8, pressed bool) {
	vm.keys[key&0xF] = pressed
}

// Key returns whether a key is latched as pressed.
func (vm *VM) Key(key uint8) bool {
	return vm.keys[key&0xF]
}

// firstPressed returns the lowest latched key.
func (vm *VM) firstPressed() (uint8, bool) {
	for k, pressed := range vm.keys {
		if pressed {
			return uint8(k), true
		}
	}
	return 0, false
}

// keyPressed reports whether the key named by register Vx is latched.
// Values outside the keypad never match a key.
func (vm *VM) keyPressed(x uint8) bool {
	key := vm.v[x]
	return key < KeyCount && vm.keys[key]
}
