package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func writeROM(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("Failed to create ROM file: %v", err)
	}
	return path
}

func testOptions(path string) options.Program {
	return options.Program{
		Parameters: options.Parameters{Input: path},
		Flags: options.Flags{
			Cycles: options.DefaultCycles,
			Seed:   1,
		},
		TimerInterval: time.Millisecond,
	}
}

func TestProcessFile_List(t *testing.T) {
	opts := testOptions(writeROM(t, []byte{0x60, 0x05, 0xA2, 0x0A, 0x80, 0x0F}))
	opts.List = true

	var out bytes.Buffer
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, strings.NewReader(""), &out)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Equal(t, 3, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "$200: 60 05"))
	assert.True(t, strings.HasPrefix(lines[2], "$204: 80 0F  .word $800F"))
}

func TestProcessFile_RunWithFrame(t *testing.T) {
	opts := testOptions(writeROM(t, []byte{
		0xF0, 0x29, // LD F, V0
		0xD0, 0x05, // DRW V0, V0, 5
		0x12, 0x04, // JP 204
	}))
	opts.Frame = true
	opts.Trace = true

	var out bytes.Buffer
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, strings.NewReader(""), &out)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Equal(t, vm.DisplayHeight, len(lines))
	assert.Equal(t, "####", lines[0][:4])
	assert.Equal(t, "#..#", lines[1][:4])
}

func TestProcessFile_StepLimit(t *testing.T) {
	opts := testOptions(writeROM(t, []byte{0x70, 0x01, 0x12, 0x00}))
	opts.Steps = 20

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, strings.NewReader(""), &bytes.Buffer{})
	assert.NoError(t, err)
}

func TestProcessFile_Monitor(t *testing.T) {
	opts := testOptions(writeROM(t, []byte{0x60, 0x05, 0x12, 0x02}))
	opts.Monitor = true

	var out bytes.Buffer
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, strings.NewReader("step\ndump\nquit\n"), &out)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Step [PC 200]")
	assert.Contains(t, out.String(), "V0: 05")
}

func TestProcessFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		opts := testOptions(filepath.Join(t.TempDir(), "missing.ch8"))
		err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, strings.NewReader(""), &bytes.Buffer{})
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("oversized ROM", func(t *testing.T) {
		opts := testOptions(writeROM(t, make([]byte, vm.MemorySize)))
		err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, strings.NewReader(""), &bytes.Buffer{})
		assert.True(t, errors.Is(err, vm.ErrLoadOverflow))
	})

	t.Run("illegal opcode", func(t *testing.T) {
		opts := testOptions(writeROM(t, []byte{0x00, 0x00}))
		err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, strings.NewReader(""), &bytes.Buffer{})
		assert.True(t, errors.Is(err, vm.ErrIllegalOpcode))
	})
}

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)
	PrintBanner(logger, options.Program{}, "1.0.0", "0123456789abcdef", "2026-01-01")
	PrintBanner(logger, options.Program{Flags: options.Flags{Quiet: true}}, "dev", "", "")
}
