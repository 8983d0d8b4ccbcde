// Package runner drives a CHIP-8 machine as a host: it executes a number of
// instructions per frame, ticks the timers and paces the frames.
package runner

import (
	"context"
	"fmt"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Reason describes why a run stopped without an error.
type Reason int

const (
	// ReasonHalted means the program jumped to its own address.
	ReasonHalted Reason = iota + 1
	// ReasonStepLimit means the configured number of instructions was executed.
	ReasonStepLimit
	// ReasonKeyWait means the program waits for a key press that can not happen
	// since the runner has no keyboard.
	ReasonKeyWait
)

func (r Reason) String() string {
	switch r {
	case ReasonHalted:
		return "halted"
	case ReasonStepLimit:
		return "step limit"
	case ReasonKeyWait:
		return "waiting for key"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Result of a run.
type Result struct {
	Steps  int
	Reason Reason
}

// Runner executes a program loaded into a machine.
type Runner struct {
	logger  *log.Logger
	machine *vm.VM
	clock   Clock

	cyclesPerFrame int
	stepLimit      int
	trace          bool

	steps int
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock sets the clock used for timer ticks and frame pacing.
func WithClock(clock Clock) Option {
	return func(r *Runner) {
		r.clock = clock
	}
}

// WithCyclesPerFrame sets the number of instructions executed per frame.
func WithCyclesPerFrame(cycles int) Option {
	return func(r *Runner) {
		r.cyclesPerFrame = max(cycles, 1)
	}
}

// WithStepLimit stops the run after the given number of instructions, 0 disables the limit.
func WithStepLimit(steps int) Option {
	return func(r *Runner) {
		r.stepLimit = max(steps, 0)
	}
}

// WithTrace enables debug logging of every executed instruction.
func WithTrace(trace bool) Option {
	return func(r *Runner) {
		r.trace = trace
	}
}

// New returns a runner for the machine.
func New(logger *log.Logger, machine *vm.VM, options ...Option) *Runner {
	r := &Runner{
		logger:         logger,
		machine:        machine,
		clock:          WallClock(),
		cyclesPerFrame: 10,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Steps returns the number of instructions executed so far.
func (r *Runner) Steps() int {
	return r.steps
}

// Run executes frames until the program halts, the step limit is reached,
// an instruction fails or the context is cancelled. The frame length is the
// timer interval of the machine.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	interval := r.machine.TimerInterval()
	r.logger.Debug("Starting program",
		log.Hex("pc", r.machine.PC()),
		log.Int("cycles_per_frame", r.cyclesPerFrame),
		log.Int("step_limit", r.stepLimit))

	for {
		if err := ctx.Err(); err != nil {
			return r.result(0), fmt.Errorf("program interrupted after %d steps: %w", r.steps, err)
		}

		frameStart := r.clock.Now()
		for range r.cyclesPerFrame {
			if r.stepLimit > 0 && r.steps >= r.stepLimit {
				return r.result(ReasonStepLimit), nil
			}

			reason, err := r.step()
			if err != nil {
				return r.result(0), err
			}
			if reason != 0 {
				return r.result(reason), nil
			}
		}

		r.machine.TickTimers(r.clock.Now())

		elapsed := r.clock.Now().Sub(frameStart)
		if err := r.clock.Sleep(ctx, interval-elapsed); err != nil {
			return r.result(0), fmt.Errorf("waiting for next frame: %w", err)
		}
	}
}

func (r *Runner) result(reason Reason) Result {
	return Result{
		Steps:  r.steps,
		Reason: reason,
	}
}

// step executes a single instruction and reports whether the program can
// not make any further progress.
func (r *Runner) step() (Reason, error) {
	pc := r.machine.PC()
	ins, err := r.machine.Fetch()
	if err != nil {
		return 0, fmt.Errorf("executing step %d: %w", r.steps+1, err)
	}

	if r.trace {
		r.traceInstruction(pc, ins)
	}

	if err := r.machine.Execute(ins); err != nil {
		return 0, fmt.Errorf("executing step %d: %w", r.steps+1, err)
	}
	r.steps++

	if r.machine.PC() != pc {
		return 0, nil
	}
	switch ins.Kind {
	case vm.KindJump, vm.KindJumpRegister:
		return ReasonHalted, nil
	case vm.KindWaitKey:
		return ReasonKeyWait, nil
	default:
		return 0, nil
	}
}

func (r *Runner) traceInstruction(pc uint16, ins vm.Instruction) {
	code, _ := chip8.Format(ins.Opcode)

	var target, access, flow string
	if address, ok := chip8.Target(ins.Opcode); ok {
		target = fmt.Sprintf("$%03X", address)
	}
	if op, ok := chip8.Lookup(ins.Opcode); ok {
		access = memoryAccess(op)
		flow = controlFlow(op.Instruction())
	}

	r.logger.Debug("Executing instruction",
		log.Hex("pc", pc),
		log.Hex("opcode", ins.Opcode),
		log.String("code", code),
		log.String("target", target),
		log.String("memory", access),
		log.String("flow", flow),
		log.Hex("i", r.machine.I()),
	)
}

// memoryAccess describes how an instruction accesses the memory at I.
func memoryAccess(op chip8.Opcode) string {
	switch {
	case op.ReadsMemory() && op.WritesMemory():
		return "read/write"
	case op.ReadsMemory():
		return "read"
	case op.WritesMemory():
		return "write"
	default:
		return ""
	}
}

// controlFlow describes how an instruction changes the program counter
// other than advancing to the next instruction.
func controlFlow(ins chip8.Instruction) string {
	switch {
	case ins.IsCall():
		return "call"
	case ins.IsReturn():
		return "return"
	case ins.IsJump():
		return "jump"
	case ins.IsSkip():
		return "skip"
	default:
		return ""
	}
}

// LogState logs the register state of the machine.
func LogState(logger *log.Logger, machine *vm.VM) {
	registers := machine.Registers()
	logger.Info("Machine state",
		log.Hex("pc", machine.PC()),
		log.Hex("i", machine.I()),
		log.Uint8("sp", machine.SP()),
		log.Uint8("dt", machine.DT()),
		log.Uint8("st", machine.ST()),
		log.String("v", fmt.Sprintf("% 02X", registers[:])),
		log.Int("lit_pixels", machine.Frame().Lit()),
	)
}

