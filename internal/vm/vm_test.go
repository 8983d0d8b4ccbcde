package vm

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

func TestNew_ResetState(t *testing.T) {
	vm := New()

	assert.Equal(t, [RegisterCount]byte{}, vm.Registers())
	assert.Equal(t, uint16(0), vm.I())
	assert.Equal(t, uint16(ProgramStart), vm.PC())
	assert.Equal(t, uint8(StackSize-1), vm.SP())
	assert.Equal(t, [StackSize]uint16{}, vm.Stack())
	assert.Equal(t, byte(0), vm.DT())
	assert.Equal(t, byte(0), vm.ST())
	assert.False(t, vm.SoundActive())
	assert.Equal(t, 0, vm.Frame().Lit())
	assert.Equal(t, DefaultTimerInterval, vm.TimerInterval())

	memory := vm.Memory()
	if diff := cmp.Diff(font[:], memory[FontOffset:FontOffset+len(font)]); diff != "" {
		t.Errorf("font table mismatch (-want +got):\n%s", diff)
	}
	for _, b := range memory[ProgramStart:] {
		assert.Equal(t, byte(0), b)
	}
}

func TestReset(t *testing.T) {
	vm := newTestVM(t, 0x60, 0x01, 0xF0, 0x15)
	runSteps(t, vm, 2)
	vm.SetKey(3, true)
	vm.writeByte(0x10, 0xAA)
	vm.display[5] = 1

	vm.Reset()
	assert.Equal(t, byte(0), vm.V(0))
	assert.Equal(t, byte(0), vm.DT())
	assert.Equal(t, uint16(ProgramStart), vm.PC())
	assert.False(t, vm.Key(3))
	assert.Equal(t, font[0x10], vm.ReadByte(0x10))
	assert.Equal(t, byte(0), vm.ReadByte(ProgramStart))
	assert.Equal(t, 0, vm.Frame().Lit())
}

func TestLoad(t *testing.T) {
	vm := New()
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F}
	assert.NoError(t, vm.LoadProgram(data))
	memory := vm.Memory()
	if diff := cmp.Diff(data, memory[ProgramStart:ProgramStart+len(data)]); diff != "" {
		t.Errorf("loaded program mismatch (-want +got):\n%s", diff)
	}

	assert.NoError(t, vm.Load([]byte{0xAB}, MemorySize-1))
	assert.Equal(t, byte(0xAB), vm.ReadByte(MemorySize-1))
}

func TestLoad_Overflow(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		address uint16
	}{
		{"full memory at program start", MemorySize, ProgramStart},
		{"one byte too many", MemorySize - ProgramStart + 1, ProgramStart},
		{"two bytes at last address", 2, MemorySize - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := New()
			before := vm.Memory()

			err := vm.Load([]byte(strings.Repeat("\xf0", tt.size)), tt.address)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrLoadOverflow))
			assert.Equal(t, before, vm.Memory())
		})
	}
}

func TestReadByte_Wraps(t *testing.T) {
	vm := New()
	assert.Equal(t, vm.ReadByte(0), vm.ReadByte(MemorySize))
	assert.Equal(t, font[1], vm.ReadByte(MemorySize+1))
}

func TestOpcode_WrapsAtEndOfMemory(t *testing.T) {
	vm := New()
	assert.NoError(t, vm.Load([]byte{0x12}, MemorySize-1))
	vm.pc = MemorySize - 1
	assert.Equal(t, uint16(0x12)<<8|uint16(font[0]), vm.Opcode())
}

func TestTickTimers(t *testing.T) {
	vm := New(WithTimerInterval(10 * time.Millisecond))
	vm.dt = 2
	vm.st = 1
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, vm.TickTimers(start))
	assert.Equal(t, byte(1), vm.DT())
	assert.Equal(t, byte(0), vm.ST())

	// same sample and samples within the interval are not due
	assert.False(t, vm.TickTimers(start))
	assert.False(t, vm.TickTimers(start.Add(9*time.Millisecond)))
	assert.Equal(t, byte(1), vm.DT())

	assert.True(t, vm.TickTimers(start.Add(10*time.Millisecond)))
	assert.Equal(t, byte(0), vm.DT())

	// timers stay at zero
	assert.True(t, vm.TickTimers(start.Add(20*time.Millisecond)))
	assert.Equal(t, byte(0), vm.DT())
	assert.Equal(t, byte(0), vm.ST())
}

func TestKeys(t *testing.T) {
	vm := New()
	_, ok := vm.firstPressed()
	assert.False(t, ok)

	vm.SetKey(0x1C, true) // masked to key C
	assert.True(t, vm.Key(0xC))

	vm.SetKey(0x4, true)
	key, ok := vm.firstPressed()
	assert.True(t, ok)
	assert.Equal(t, uint8(0x4), key)

	vm.SetKey(0x4, false)
	assert.False(t, vm.Key(0x4))
}

func TestFrame_String(t *testing.T) {
	var frame Frame
	frame.drawSprite(0, 0, []byte{0xC0})
	frame.drawSprite(-1, -1, []byte{0x80})

	lines := strings.Split(strings.TrimSuffix(frame.String(), "\n"), "\n")
	assert.Equal(t, DisplayHeight, len(lines))
	assert.Equal(t, "##"+strings.Repeat(".", DisplayWidth-2), lines[0])
	assert.Equal(t, strings.Repeat(".", DisplayWidth-1)+"#", lines[DisplayHeight-1])
	assert.True(t, frame.Pixel(-1, -1))
	assert.True(t, frame.Pixel(DisplayWidth, DisplayHeight))
}
