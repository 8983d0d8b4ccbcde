// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/vm"
)

// MaxProgramSize is the largest ROM that fits between the program start
// address and the end of memory.
const MaxProgramSize = vm.MemorySize - vm.ProgramStart

// Loader handles loading raw CHIP-8 ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file at path and loads it into the machine at the
// program start address. It returns the ROM data.
func (l *Loader) Load(path string, machine *vm.VM) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadReader(file, machine)
	if err != nil {
		return nil, fmt.Errorf("loading ROM %s: %w", path, err)
	}
	return data, nil
}

// LoadReader reads a raw ROM image without header and loads it into the
// machine at the program start address. Images larger than the program space
// fail with vm.ErrLoadOverflow and leave the machine memory untouched.
func (l *Loader) LoadReader(r io.Reader, machine *vm.VM) ([]byte, error) {
	// one extra byte is enough to detect an oversized image
	data, err := io.ReadAll(io.LimitReader(r, MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading ROM data: %w", err)
	}

	if err := machine.LoadProgram(data); err != nil {
		return nil, fmt.Errorf("loading program of %d bytes: %w", len(data), err)
	}
	return data, nil
}
