// Package options contains the program options.
package options

import (
	"github.com/retroenv/retrochip8/internal/frontend"
)

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend string `flag:"frontend" usage:"frontend: gui, tui, headless (default: auto-detect)"`
	System   string `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}

// EmulationFlags contains options of the emulated machine.
type EmulationFlags struct {
	Speed  int  `flag:"speed" usage:"instructions executed per second" default:"700"`
	Frames int  `flag:"frames" usage:"number of frames to run in headless mode" default:"600"`
	Scale  int  `flag:"scale" usage:"window pixels per display pixel" default:"10"`
	Mute   bool `flag:"mute" usage:"disable the tone output"`
	Trace  bool `flag:"trace" usage:"log every executed instruction"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	EmulationFlags
}

// Emulator defines options to control an emulation session.
type Emulator struct {
	Frontend frontend.Kind // requested frontend, Auto selects one based on the environment

	Speed  int // instructions per second
	Frames int // frame limit of the headless frontend
	Scale  int // window scale of the gui frontend
	Mute   bool
	Trace  bool
}

// NewEmulator returns the emulator options for the given program options.
func NewEmulator(opts Program, kind frontend.Kind) Emulator {
	return Emulator{
		Frontend: kind,
		Speed:    opts.Speed,
		Frames:   opts.Frames,
		Scale:    opts.Scale,
		Mute:     opts.Mute,
		Trace:    opts.Trace,
	}
}
