// Package options contains the program options.
package options

import "time"

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"CHIP-8 ROM file to run"`
}

// Flags contains behavior options.
type Flags struct {
	Steps   int    `flag:"steps" usage:"stop after executing this many instructions, 0 runs until halted"`
	Cycles  int    `flag:"cycles" usage:"instructions executed per 60 Hz frame" default:"10"`
	Seed    uint64 `flag:"seed" usage:"seed of the random number generator, 0 picks a time based seed"`
	Timer   string `flag:"timer" usage:"delay and sound timer tick interval" default:"16.666666ms"`
	Trace   bool   `flag:"trace" usage:"log every executed instruction"`
	List    bool   `flag:"list" usage:"print a disassembly listing of the ROM and exit"`
	Monitor bool   `flag:"monitor" usage:"start the interactive monitor reading commands from stdin"`
	Frame   bool   `flag:"frame" usage:"print the display after the program stopped"`
	Debug   bool   `flag:"debug" usage:"enable debug logging"`
	Quiet   bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags

	// TimerInterval is the parsed Timer flag.
	TimerInterval time.Duration
}

// Default values of the behavior options.
const (
	DefaultCycles = 10
	DefaultTimer  = time.Second / 60
)
