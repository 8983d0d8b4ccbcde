package config

import (
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestDebugLogging(t *testing.T) {
	tests := []struct {
		name     string
		flags    options.Flags
		expected bool
	}{
		{"default", options.Flags{}, false},
		{"debug", options.Flags{Debug: true}, true},
		{"trace", options.Flags{Trace: true}, true},
		{"quiet", options.Flags{Quiet: true}, false},
		{"debug and quiet", options.Flags{Debug: true, Quiet: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, debugLogging(tt.flags))
		})
	}
}

func TestCreateLogger(t *testing.T) {
	for _, flags := range []options.Flags{{}, {Debug: true}, {Quiet: true}} {
		assert.NotNil(t, CreateLogger(flags))
	}
}
