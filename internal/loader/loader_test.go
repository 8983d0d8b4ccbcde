package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load ROM file", func(t *testing.T) {
		rom := []byte{0x60, 0x12, 0xA2, 0x0A, 0xD0, 0x05}
		tmpFile := createTempFile(t, rom)

		machine := vm.New()
		data, err := New().Load(tmpFile, machine)
		assert.NoError(t, err)
		assert.Equal(t, len(rom), len(data))

		memory := machine.Memory()
		if diff := cmp.Diff(rom, memory[vm.ProgramStart:vm.ProgramStart+len(rom)]); diff != "" {
			t.Errorf("loaded memory mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("load ROM filling program space", func(t *testing.T) {
		rom := bytes.Repeat([]byte{0xF0}, MaxProgramSize)
		tmpFile := createTempFile(t, rom)

		machine := vm.New()
		_, err := New().Load(tmpFile, machine)
		assert.NoError(t, err)
		assert.Equal(t, byte(0xF0), machine.ReadByte(vm.MemorySize-1))
	})

	t.Run("error on oversized ROM", func(t *testing.T) {
		tmpFile := createTempFile(t, bytes.Repeat([]byte{0xF0}, MaxProgramSize+1))

		machine := vm.New()
		before := machine.Memory()
		_, err := New().Load(tmpFile, machine)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, vm.ErrLoadOverflow))
		assert.Equal(t, before, machine.Memory())
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New().Load("/nonexistent/file.ch8", vm.New())
		assert.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestLoadReader_Empty(t *testing.T) {
	machine := vm.New()
	data, err := New().LoadReader(bytes.NewReader(nil), machine)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(data))
	assert.Equal(t, byte(0), machine.ReadByte(vm.ProgramStart))
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
