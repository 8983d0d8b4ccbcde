package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/monitor"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete workflow for a ROM file: it loads the file
// and then lists, monitors or runs it depending on the options. Monitor
// commands are read from in, listings, monitor output and the final frame are
// written to out.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, in io.Reader, out io.Writer) error {
	machine := newMachine(opts)

	rom, err := loader.New().Load(opts.Input, machine)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if !opts.Quiet {
		logger.Info("Processing CHIP-8 ROM",
			log.String("file", opts.Input),
			log.Int("size", len(rom)),
			log.Hex("seed", machine.Seed()),
		)
	}

	switch {
	case opts.List:
		return listProgram(machine, len(rom), out)

	case opts.Monitor:
		mon := monitor.New(logger, machine, out,
			monitor.WithProgram(opts.Input, rom),
			monitor.WithCyclesPerFrame(opts.Cycles),
		)
		if err := mon.Run(ctx, in); err != nil {
			return fmt.Errorf("running monitor: %w", err)
		}
		return nil

	default:
		return runProgram(ctx, logger, opts, machine, out)
	}
}

func newMachine(opts options.Program) *vm.VM {
	var vmOptions []vm.Option
	if opts.Seed != 0 {
		vmOptions = append(vmOptions, vm.WithSeed(opts.Seed))
	}
	if opts.TimerInterval > 0 {
		vmOptions = append(vmOptions, vm.WithTimerInterval(opts.TimerInterval))
	}
	return vm.New(vmOptions...)
}

func listProgram(machine *vm.VM, size int, out io.Writer) error {
	if size == 0 {
		return nil
	}
	memory := machine.Memory()
	last := uint16(vm.ProgramStart + size - 1)
	if err := chip8.List(out, memory[:], vm.ProgramStart, last); err != nil {
		return fmt.Errorf("listing program: %w", err)
	}
	return nil
}

func runProgram(ctx context.Context, logger *log.Logger, opts options.Program, machine *vm.VM, out io.Writer) error {
	r := New(logger, machine,
		WithCyclesPerFrame(opts.Cycles),
		WithStepLimit(opts.Steps),
		WithTrace(opts.Trace),
	)

	result, runErr := r.Run(ctx)
	if runErr == nil {
		logger.Info("Program stopped",
			log.Stringer("reason", result.Reason),
			log.Int("steps", result.Steps))
	}
	LogState(logger, machine)

	if opts.Frame {
		if _, err := io.WriteString(out, machine.Frame().String()); err != nil {
			return fmt.Errorf("writing frame: %w", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("running program: %w", runErr)
	}
	return nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("chip8vm", log.String("version", buildinfo.Version(version, commit, date)))
}
