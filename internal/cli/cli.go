// Package cli handles command line interface logic
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/cli"
)

var (
	errInvalidCycles = errors.New("cycles per frame must be positive")
	errInvalidSteps  = errors.New("step limit must not be negative")
	errInvalidTimer  = errors.New("timer interval must be positive")
)

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	return parseArgs("chip8vm", os.Args[1:])
}

func parseArgs(name string, arguments []string) (options.Program, error) {
	flags := cli.NewFlagSet(name)
	var opts options.Program
	flags.AddSection("Parameters", &opts.Parameters)
	flags.AddSection("Flags", &opts.Flags)

	args, err := flags.Parse(arguments)
	if err != nil {
		// the flag set already printed its usage
		return opts, &UsageError{err: err}
	}
	if len(args) == 0 && opts.Input == "" {
		return opts, &UsageError{flags: flags}
	}

	if usageErr := validateArgs(args); usageErr != nil {
		usageErr.flags = flags
		return opts, usageErr
	}

	if err := validateOptions(&opts); err != nil {
		return opts, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *cli.FlagSet
	msg   string
	err   error
}

func (e *UsageError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.msg
}

func (e *UsageError) Unwrap() error {
	return e.err
}

// ShowUsage prints the message and the flag sections.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	if e.flags != nil {
		e.flags.ShowUsage()
	}
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) *UsageError {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{
			msg: fmt.Sprintf("Only one ROM file can be run, got %d", len(args)),
		}
	}
	return nil
}

// validateOptions checks the numeric option values and parses the timer interval.
func validateOptions(opts *options.Program) error {
	interval, err := time.ParseDuration(opts.Timer)
	if err != nil {
		return fmt.Errorf("parsing timer interval: %w", err)
	}

	switch {
	case opts.Cycles <= 0:
		return fmt.Errorf("%w: %d", errInvalidCycles, opts.Cycles)
	case opts.Steps < 0:
		return fmt.Errorf("%w: %d", errInvalidSteps, opts.Steps)
	case interval <= 0:
		return fmt.Errorf("%w: %s", errInvalidTimer, interval)
	}

	opts.TimerInterval = interval
	return nil
}
