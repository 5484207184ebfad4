// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/options"
)

const maxScale = 40

// ParseFlags parses command line flags and returns program and emulator options
func ParseFlags() (options.Program, options.Emulator, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, options.Emulator{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Emulator{}, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}

	kind, err := normalizeOptions(&opts)
	if err != nil {
		return opts, options.Emulator{}, err
	}

	return opts, options.NewEmulator(opts, kind), nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	if e.flags != nil {
		e.flags.PrintDefaults()
		fmt.Println()
	}
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions validates option values and returns the requested frontend
func normalizeOptions(opts *options.Program) (frontend.Kind, error) {
	kind, err := frontend.ParseKind(opts.Frontend)
	if err != nil {
		return "", fmt.Errorf("%w. Valid options: gui, tui, headless", err)
	}

	if opts.Speed <= 0 {
		return "", fmt.Errorf("invalid speed %d, the instruction rate has to be positive", opts.Speed)
	}
	if opts.Frames <= 0 {
		return "", fmt.Errorf("invalid frame count %d, it has to be positive", opts.Frames)
	}
	if opts.Scale < 1 || opts.Scale > maxScale {
		return "", fmt.Errorf("invalid scale %d, valid range is 1-%d", opts.Scale, maxScale)
	}

	return kind, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Frontend, "frontend", "", "frontend to use (gui/tui/headless) - auto-detected if not given")
	flags.StringVar(&opts.System, "s", "", "system of the ROM (chip8) - if not auto-detected from file extension")
	flags.IntVar(&opts.Speed, "speed", clock.DefaultSpeed, "number of instructions executed per second")
	flags.IntVar(&opts.Frames, "frames", 600, "number of frames to run in headless mode before printing the display")
	flags.IntVar(&opts.Scale, "scale", 10, "size of a display pixel in window pixels")
	flags.BoolVar(&opts.Mute, "mute", false, "do not play the tone of the sound timer")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
