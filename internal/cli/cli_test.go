package cli

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/cli"
)

// defaultTimer is the default of the timer flag tag.
const defaultTimer = "16.666666ms"

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"prog", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Flags:         options.Flags{Cycles: options.DefaultCycles, Timer: defaultTimer},
				TimerInterval: options.DefaultTimer,
			},
		},
		{
			name: "input flag",
			args: []string{"prog", "-i", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Flags:         options.Flags{Cycles: options.DefaultCycles, Timer: defaultTimer},
				TimerInterval: options.DefaultTimer,
			},
		},
		{
			name: "run flags",
			args: []string{"prog", "-steps", "500", "-cycles", "20", "-seed", "42", "-timer", "10ms", "-trace", "-frame", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Flags: options.Flags{
					Steps:  500,
					Cycles: 20,
					Seed:   42,
					Timer:  "10ms",
					Trace:  true,
					Frame:  true,
				},
				TimerInterval: 10 * time.Millisecond,
			},
		},
		{
			name: "mode flags",
			args: []string{"prog", "-list", "-monitor", "-debug", "-q", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Flags: options.Flags{
					Cycles:  options.DefaultCycles,
					Timer:   defaultTimer,
					List:    true,
					Monitor: true,
					Debug:   true,
					Quiet:   true,
				},
				TimerInterval: options.DefaultTimer,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no ROM file", []string{}},
		{"unknown flag", []string{"-unknown", "pong.ch8"}},
		{"flag after ROM file", []string{"pong.ch8", "-trace"}},
		{"two ROM files", []string{"pong.ch8", "tetris.ch8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs("prog", tt.args)
			assert.Error(t, err)
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}

func TestParseFlags_InvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected error
	}{
		{"zero cycles", []string{"-cycles", "0", "pong.ch8"}, errInvalidCycles},
		{"negative steps", []string{"-steps", "-1", "pong.ch8"}, errInvalidSteps},
		{"zero timer", []string{"-timer", "0s", "pong.ch8"}, errInvalidTimer},
		{"negative timer", []string{"-timer", "-5ms", "pong.ch8"}, errInvalidTimer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs("prog", tt.args)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected))
		})
	}
}

func TestParseFlags_TagDefaults(t *testing.T) {
	// defaults come from the struct tags of the options
	opts, err := parseArgs("prog", []string{"pong.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, options.DefaultCycles, opts.Cycles)
	assert.Equal(t, defaultTimer, opts.Timer)
	assert.Equal(t, options.DefaultTimer, opts.TimerInterval)
	assert.Equal(t, uint64(0), opts.Seed)
}

func TestParseFlags_HelpRequested(t *testing.T) {
	_, err := parseArgs("prog", []string{"-h"})
	assert.True(t, errors.Is(err, cli.ErrHelpRequested))
}

func TestParseFlags_InvalidTimerFormat(t *testing.T) {
	tests := []struct {
		name  string
		timer string
	}{
		{"missing unit", "16"},
		{"not a duration", "fast"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs("prog", []string{"-timer", tt.timer, "pong.ch8"})
			assert.Error(t, err)
			var usageErr *UsageError
			assert.False(t, errors.As(err, &usageErr))
		})
	}
}
