// Package monitor implements an interactive, line oriented command interpreter
// to load, run, single step and inspect a CHIP-8 machine.
package monitor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Prompt is printed before every command.
const Prompt = "CHIP-8> "

const (
	defaultRunLimit  = 1_000_000
	defaultCycles    = 10
	defaultListCount = 16
)

var (
	errNotLoaded      = errors.New("VM not loaded")
	errNoProgram      = errors.New("no ROM file given")
	errInvalidAddress = errors.New("invalid address")
	errInvalidNumber  = errors.New("invalid number")
	errUnknownCommand = errors.New("unknown command")
)

// LoadFunc reads the ROM file at path and loads it into the machine.
type LoadFunc func(path string, machine *vm.VM) ([]byte, error)

// Monitor executes monitor commands against a machine.
type Monitor struct {
	logger  *log.Logger
	machine *vm.VM
	out     io.Writer
	load    LoadFunc

	path   string
	rom    []byte
	loaded bool

	breakpoints    set.Set[uint16]
	cyclesPerFrame int
	now            time.Time // virtual time of the timers
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithLoader replaces the ROM file loader used by the load command.
func WithLoader(load LoadFunc) Option {
	return func(m *Monitor) {
		m.load = load
	}
}

// WithProgram marks the machine as loaded with the ROM from path, so that
// init can restore it and load can read it again.
func WithProgram(path string, rom []byte) Option {
	return func(m *Monitor) {
		m.path = path
		m.rom = rom
		m.loaded = true
	}
}

// WithCyclesPerFrame sets the number of instructions between two timer ticks
// of the run command.
func WithCyclesPerFrame(cycles int) Option {
	return func(m *Monitor) {
		m.cyclesPerFrame = max(cycles, 1)
	}
}

// New returns a monitor for the machine that writes its output to out.
func New(logger *log.Logger, machine *vm.VM, out io.Writer, options ...Option) *Monitor {
	m := &Monitor{
		logger:         logger,
		machine:        machine,
		out:            out,
		load:           loader.New().Load,
		breakpoints:    set.New[uint16](),
		cyclesPerFrame: defaultCycles,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Run reads commands line by line until quit, end of input or context
// cancellation. Command errors are printed and do not end the session.
func (m *Monitor) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	m.printf("%s", Prompt)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("reading commands: %w", err)
		}

		quit, err := m.Execute(scanner.Text())
		if err != nil {
			m.printf("%s\n", err)
		}
		if quit {
			return nil
		}
		m.printf("%s", Prompt)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading commands: %w", err)
	}
	return nil
}

// Execute runs a single command line and returns whether the session ends.
func (m *Monitor) Execute(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	if full, ok := abbreviations[name]; ok {
		name = full
	}

	cmd, ok := commands[name]
	if !ok {
		return false, fmt.Errorf("%w '%s', type help for a list of commands", errUnknownCommand, name)
	}
	if cmd.needsProgram && !m.loaded {
		return false, errNotLoaded
	}
	if cmd.quit {
		return true, nil
	}

	m.logger.Debug("Executing monitor command", log.String("command", name))
	return false, cmd.run(m, args)
}

// Breakpoint returns whether execution stops at the address.
func (m *Monitor) Breakpoint(address uint16) bool {
	return m.breakpoints.Contains(address & vm.AddressMask)
}

func (m *Monitor) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(m.out, format, args...)
}

// tick advances the virtual time by one timer interval and ticks the timers.
func (m *Monitor) tick() {
	m.now = m.now.Add(m.machine.TimerInterval())
	m.machine.TickTimers(m.now)
}
