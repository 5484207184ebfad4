package frontend

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// HeadlessFrontend runs a fixed number of frames as fast as possible without
// user input and then writes the display and the machine registers to a
// writer. It ends early when the program counter reaches the end of the
// program.
type HeadlessFrontend struct {
	logger *log.Logger
	frames int
	output io.Writer
}

// NewHeadless returns a headless frontend running the given number of frames.
func NewHeadless(logger *log.Logger, frames int, output io.Writer) *HeadlessFrontend {
	return &HeadlessFrontend{
		logger: logger,
		frames: frames,
		output: output,
	}
}

// Run implements Frontend.
func (h *HeadlessFrontend) Run(ctx context.Context, session Session) error {
	var (
		executed int
		waiting  bool
		ended    bool
	)

	for range h.frames {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running headless: %w", err)
		}

		frame, err := session.Driver.RunFrame()
		if err != nil {
			if dumpErr := h.dump(session.Machine); dumpErr != nil {
				h.logger.Error("Writing machine state failed", log.Err(dumpErr))
			}
			return err
		}
		executed++

		if frame.WaitingForKey && !waiting {
			h.logger.Debug("Program waits for a key", log.Hex("pc", session.Machine.PC))
		}
		waiting = frame.WaitingForKey

		if frame.Ended {
			ended = true
			break
		}
	}
	session.Driver.Silence()

	h.logger.Info("Emulation finished",
		log.Int("frames", executed),
		log.Int("lit_pixels", session.Machine.Display.Lit()))
	if ended {
		h.logger.Info("Program reached its end", log.Hex("pc", session.Machine.PC))
	}

	return h.dump(session.Machine)
}

func (h *HeadlessFrontend) dump(m *chip8.Machine) error {
	if h.output == nil {
		return nil
	}

	if _, err := io.WriteString(h.output, m.Display.String()); err != nil {
		return fmt.Errorf("writing display: %w", err)
	}
	if _, err := fmt.Fprintln(h.output, State(m)); err != nil {
		return fmt.Errorf("writing registers: %w", err)
	}
	return nil
}

// State formats the registers of the machine on a single line.
func State(m *chip8.Machine) string {
	return fmt.Sprintf("PC=%04X I=%04X SP=%d DT=%02X ST=%02X V=% X",
		m.PC, m.I, m.SP, m.DelayTimer, m.SoundTimer, m.V[:])
}
