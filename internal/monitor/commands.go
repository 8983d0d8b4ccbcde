package monitor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

type command struct {
	run          func(m *Monitor, args []string) error
	needsProgram bool
	quit         bool
}

var commands = map[string]command{
	"help":  {run: (*Monitor).help},
	"quit":  {quit: true},
	"load":  {run: (*Monitor).loadProgram},
	"init":  {run: (*Monitor).reset, needsProgram: true},
	"step":  {run: (*Monitor).step, needsProgram: true},
	"next":  {run: (*Monitor).stepOver, needsProgram: true},
	"run":   {run: (*Monitor).run, needsProgram: true},
	"dump":  {run: (*Monitor).dump, needsProgram: true},
	"list":  {run: (*Monitor).list, needsProgram: true},
	"break": {run: (*Monitor).setBreakpoint, needsProgram: true},
	"clear": {run: (*Monitor).clearBreakpoints, needsProgram: true},
	"key":   {run: (*Monitor).setKey, needsProgram: true},
	"tick":  {run: (*Monitor).tickTimers, needsProgram: true},
	"frame": {run: (*Monitor).printFrame, needsProgram: true},
}

var abbreviations = map[string]string{
	"l": "load",
	"i": "init",
	"s": "step",
	"r": "run",
	"d": "dump",
	"q": "quit",
}

var helpText = []string{
	"load [file]        load the ROM file into a reset machine",
	"init               reset the machine and reload the ROM",
	"step [n]           execute n instructions",
	"next               step over a subroutine call",
	"run [n]            run until a breakpoint, halt or n instructions",
	"dump [addr]        print registers and 256 bytes of memory",
	"list [addr] [n]    disassemble n instructions",
	"break [addr]       set a breakpoint or list all breakpoints",
	"clear              remove all breakpoints",
	"key <k> <0|1>      release or press a key",
	"tick               advance the timers by one tick",
	"frame              print the display",
	"quit               leave the monitor",
}

func (m *Monitor) help(_ []string) error {
	for _, line := range helpText {
		m.printf("%s\n", line)
	}
	return nil
}

func (m *Monitor) loadProgram(args []string) error {
	path := m.path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return errNoProgram
	}

	m.machine.Reset()
	m.loaded = false
	rom, err := m.load(path, m.machine)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	m.path = path
	m.rom = rom
	m.loaded = true
	m.logger.Info("ROM loaded", log.String("file", path), log.Int("size", len(rom)))
	m.printf("VM loaded\n")
	return nil
}

func (m *Monitor) reset(_ []string) error {
	m.machine.Reset()
	if err := m.machine.LoadProgram(m.rom); err != nil {
		return fmt.Errorf("reloading ROM: %w", err)
	}
	m.printf("VM reset\n")
	return nil
}

func (m *Monitor) step(args []string) error {
	count, err := parseCount(args, 0, 1)
	if err != nil {
		return err
	}

	for range count {
		pc := m.machine.PC()
		code, _ := chip8.Format(m.machine.Opcode())
		m.printf("Step [PC %03X] %s\n", pc, code)
		if err := m.machine.Step(); err != nil {
			return fmt.Errorf("step failed: %w", err)
		}
	}
	return nil
}

// stepOver executes a subroutine call until it returns, other instructions
// are single stepped.
func (m *Monitor) stepOver(_ []string) error {
	op, ok := chip8.Lookup(m.machine.Opcode())
	if !ok || !op.Instruction().IsCall() {
		return m.step(nil)
	}

	returnAddress := (m.machine.PC() + chip8.OpcodeSize) & vm.AddressMask
	sp := m.machine.SP()
	returned := func() bool {
		return m.machine.PC() == returnAddress && m.machine.SP() == sp
	}
	return m.runUntil(defaultRunLimit, returned)
}

func (m *Monitor) run(args []string) error {
	limit, err := parseCount(args, 0, defaultRunLimit)
	if err != nil {
		return err
	}
	return m.runUntil(limit, func() bool { return false })
}

// runUntil executes up to limit instructions. It stops when done returns
// true, at a breakpoint, or when the program can not make progress anymore.
// Breakpoints are checked after an instruction was executed, so that a run
// can continue from a breakpoint.
func (m *Monitor) runUntil(limit int, done func() bool) error {
	steps := 0
	reason := "step limit"

	for steps < limit {
		pc := m.machine.PC()
		ins, err := m.machine.Fetch()
		if err == nil {
			err = m.machine.Execute(ins)
		}
		if err != nil {
			m.printf("Stopped after %d steps [PC %03X]: error\n", steps, pc)
			return fmt.Errorf("run failed: %w", err)
		}

		steps++
		if steps%m.cyclesPerFrame == 0 {
			m.tick()
		}

		if r, stop := m.stopReason(pc, ins, done); stop {
			reason = r
			break
		}
	}

	m.printf("Stopped after %d steps [PC %03X]: %s\n", steps, m.machine.PC(), reason)
	return nil
}

func (m *Monitor) stopReason(pc uint16, ins vm.Instruction, done func() bool) (string, bool) {
	next := m.machine.PC()
	switch {
	case done():
		return "returned", true
	case next == pc && ins.Kind == vm.KindWaitKey:
		return "waiting for key", true
	case next == pc:
		return "halted", true
	case m.Breakpoint(next):
		return "breakpoint", true
	default:
		return "", false
	}
}

func (m *Monitor) dump(args []string) error {
	address := uint16(vm.ProgramStart)
	if len(args) > 0 {
		var err error
		if address, err = parseAddress(args[0]); err != nil {
			return err
		}
	}

	m.printf("PC: %03X SP: %02X I: %03X DT: %02X ST: %02X\n\n",
		m.machine.PC(), m.machine.SP(), m.machine.I(), m.machine.DT(), m.machine.ST())

	for i, value := range m.machine.Registers() {
		separator := " "
		if (i+1)%8 == 0 {
			separator = "\n"
		}
		m.printf("V%X: %02X%s", i, value, separator)
	}
	m.printf("\n")

	var sb strings.Builder
	for row := range uint16(16) {
		rowAddress := (address + row*16) & vm.AddressMask
		fmt.Fprintf(&sb, "%03X |", rowAddress)
		for col := range uint16(16) {
			if col == 8 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, " %02X", m.machine.ReadByte(rowAddress+col))
		}
		sb.WriteByte('\n')
	}
	m.printf("%s", sb.String())
	return nil
}

func (m *Monitor) list(args []string) error {
	address := m.machine.PC()
	if len(args) > 0 {
		var err error
		if address, err = parseAddress(args[0]); err != nil {
			return err
		}
	}
	count, err := parseCount(args, 1, defaultListCount)
	if err != nil {
		return err
	}
	count = min(count, vm.MemorySize/chip8.OpcodeSize)

	memory := m.machine.Memory()
	last := address + uint16(chip8.OpcodeSize*(count-1))
	if err := chip8.List(m.out, memory[:], address, last); err != nil {
		return fmt.Errorf("listing memory: %w", err)
	}
	return nil
}

func (m *Monitor) setBreakpoint(args []string) error {
	if len(args) == 0 {
		m.printBreakpoints()
		return nil
	}

	address, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	m.breakpoints.Add(address)
	m.printf("Breakpoint set at %03X\n", address)
	return nil
}

func (m *Monitor) printBreakpoints() {
	var addresses []string
	for _, address := range set.Sorted(m.breakpoints) {
		addresses = append(addresses, fmt.Sprintf("%03X", address))
	}

	if len(addresses) == 0 {
		m.printf("No breakpoints\n")
		return
	}
	m.printf("Breakpoints: %s\n", strings.Join(addresses, " "))
}

func (m *Monitor) clearBreakpoints(_ []string) error {
	m.breakpoints.Clear()
	m.printf("Breakpoints cleared\n")
	return nil
}

func (m *Monitor) setKey(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: usage key <k> <0|1>", errInvalidNumber)
	}

	key, err := strconv.ParseUint(args[0], 16, 8)
	if err != nil || key >= vm.KeyCount {
		return fmt.Errorf("%w: key '%s'", errInvalidNumber, args[0])
	}
	pressed, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("%w: key state '%s'", errInvalidNumber, args[1])
	}

	m.machine.SetKey(uint8(key), pressed)
	return nil
}

func (m *Monitor) tickTimers(_ []string) error {
	m.tick()
	m.printf("DT: %02X ST: %02X\n", m.machine.DT(), m.machine.ST())
	return nil
}

func (m *Monitor) printFrame(_ []string) error {
	m.printf("%s", m.machine.Frame().String())
	return nil
}

// parseAddress parses a hexadecimal address with an optional $ or 0x prefix.
func parseAddress(s string) (uint16, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "$"), "0x")
	value, err := strconv.ParseUint(trimmed, 16, 16)
	if err != nil || value >= vm.MemorySize {
		return 0, fmt.Errorf("%w '%s'", errInvalidAddress, s)
	}
	return uint16(value), nil
}

// parseCount parses the positive decimal argument at index, or returns the
// default value if the argument is missing.
func parseCount(args []string, index, defaultValue int) (int, error) {
	if len(args) <= index {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(args[index])
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w '%s'", errInvalidNumber, args[index])
	}
	return value, nil
}
