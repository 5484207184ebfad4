// Package pipeline orchestrates the emulation workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/gui"
	"github.com/retroenv/retrochip8/internal/frontend/tui"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new emulation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(logger),
	}
}

// Execute runs the complete emulation pipeline. The headless frontend writes
// its result to output.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, emuOpts options.Emulator, output io.Writer) error {
	system := p.detector.Detect(opts)
	if system != arch.CHIP8System {
		return fmt.Errorf("unsupported system '%s'", system)
	}

	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	return p.ExecuteWithProgram(ctx, program, opts, emuOpts, output)
}

// ExecuteWithProgram runs the emulation pipeline with a pre-loaded program.
// This is useful for testing and programmatic usage where the program is already in memory.
func (p *Pipeline) ExecuteWithProgram(ctx context.Context, program []byte, opts options.Program,
	emuOpts options.Emulator, output io.Writer) error {

	kind, err := p.detector.DetectFrontend(emuOpts.Frontend, gui.Available)
	if err != nil {
		return fmt.Errorf("selecting frontend: %w", err)
	}

	machine := chip8.New(p.logger, chip8.WithTrace(emuOpts.Trace))
	if err := machine.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	var tone clock.Tone
	if !emuOpts.Mute && kind != frontend.Headless {
		beeper, err := audio.NewBeeper(p.logger)
		if err != nil {
			p.logger.Warn("Audio output disabled", log.Err(err))
		} else {
			defer beeper.Close()
			tone = beeper
		}
	}

	driver, err := clock.New(p.logger, machine, emuOpts.Speed, tone)
	if err != nil {
		return fmt.Errorf("creating clock driver: %w", err)
	}

	p.printInfo(opts, len(program), kind, emuOpts)

	session := frontend.Session{
		Title:   "retrochip8 - " + filepath.Base(opts.Input),
		Machine: machine,
		Driver:  driver,
	}
	if err := p.createFrontend(kind, emuOpts, output).Run(ctx, session); err != nil {
		return fmt.Errorf("emulating: %w", err)
	}
	return nil
}

// createFrontend creates the frontend of the given kind.
func (p *Pipeline) createFrontend(kind frontend.Kind, emuOpts options.Emulator, output io.Writer) frontend.Frontend {
	switch kind {
	case frontend.GUI:
		return gui.New(p.logger, emuOpts.Scale)
	case frontend.TUI:
		return tui.New(p.logger)
	default:
		return frontend.NewHeadless(p.logger, emuOpts.Frames, output)
	}
}

// printInfo prints information about the ROM being run.
func (p *Pipeline) printInfo(opts options.Program, size int, kind frontend.Kind, emuOpts options.Emulator) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running Chip-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.String("frontend", string(kind)),
		log.Int("speed", emuOpts.Speed),
	)
	if emuOpts.Trace {
		p.logger.Warn("Instruction tracing is enabled, emulation will be slow")
	}
}
