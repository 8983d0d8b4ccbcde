package vm

import (
	"math/rand/v2"
	"time"
)

// VM is the state of a single CHIP-8 virtual machine. It is not safe for
// concurrent use, the host serializes access.
type VM struct {
	memory [MemorySize]byte

	v     [RegisterCount]byte
	i     uint16
	pc    uint16
	sp    uint8
	stack [StackSize]uint16
	dt    byte
	st    byte

	display Frame
	keys    [KeyCount]bool

	rng  *rand.Rand
	seed uint64

	timerInterval time.Duration
	lastTimerTick time.Time
}

// Option configures a VM at construction.
type Option func(*VM)

// WithSeed sets the seed of the random number generator used by RND,
// making the generated sequence reproducible.
func WithSeed(seed uint64) Option {
	return func(vm *VM) {
		vm.seed = seed
	}
}

// WithTimerInterval sets the minimum time between two timer decrements.
func WithTimerInterval(interval time.Duration) Option {
	return func(vm *VM) {
		vm.timerInterval = interval
	}
}

// New returns a new VM in its reset state.
func New(options ...Option) *VM {
	vm := &VM{
		seed:          uint64(time.Now().UnixNano()),
		timerInterval: DefaultTimerInterval,
	}
	for _, option := range options {
		option(vm)
	}

	vm.rng = rand.New(rand.NewPCG(vm.seed, vm.seed^seedMix))
	vm.Reset()
	return vm
}

// seedMix derives the second PCG state word from the seed.
const seedMix = 0x9E3779B97F4A7C15

// Seed returns the seed of the random number generator.
func (vm *VM) Seed() uint64 {
	return vm.seed
}

// Reset reinitializes registers, memory, display, stack, timers and keys.
// The font table is restored, program data is not reloaded.
func (vm *VM) Reset() {
	vm.memory = [MemorySize]byte{}
	copy(vm.memory[FontOffset:], font[:])

	vm.v = [RegisterCount]byte{}
	vm.i = 0
	vm.pc = ProgramStart
	vm.sp = StackSize - 1
	vm.stack = [StackSize]uint16{}
	vm.dt = 0
	vm.st = 0

	vm.display = Frame{}
	vm.keys = [KeyCount]bool{}
	vm.lastTimerTick = time.Time{}
}
