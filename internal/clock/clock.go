// Package clock drives a CHIP-8 machine in frames of 1/60 second. Every
// frame executes the share of instructions that the configured instruction
// rate allots to it and then ticks the timers once.
package clock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the number of frames per second, equal to the timer frequency.
const FrameRate = chip8.TimerFrequency

// DefaultSpeed is the default number of instructions executed per second.
const DefaultSpeed = 700

// ErrStop can be returned by a frame callback to end Run without an error.
var ErrStop = errors.New("stop")

// Machine is the interpreter interface that the driver schedules.
type Machine interface {
	Step() (chip8.StepResult, error)
	TickTimers()
	SoundActive() bool
}

// Tone is notified when the sound timer starts or stops running.
type Tone interface {
	SetActive(active bool)
}

// Frame is the summary of a single executed frame.
type Frame struct {
	Number        uint64
	Steps         int  // instructions executed
	Redraw        bool // the display changed
	WaitingForKey bool // the frame ended on a pending key wait
	Ended         bool // the program counter reached the end of the program
}

// Driver schedules instruction steps and timer ticks of a machine.
type Driver struct {
	logger  *log.Logger
	machine Machine
	tone    Tone

	speed  int // instructions per second
	carry  int // instruction budget remainder, in 1/FrameRate instructions
	frames uint64
	sound  bool
}

// New returns a driver that executes speed instructions per second.
// A nil tone disables sound notifications.
func New(logger *log.Logger, machine Machine, speed int, tone Tone) (*Driver, error) {
	if speed <= 0 {
		return nil, fmt.Errorf("invalid instruction rate %d", speed)
	}
	if tone == nil {
		tone = silence{}
	}

	return &Driver{
		logger:  logger,
		machine: machine,
		tone:    tone,
		speed:   speed,
	}, nil
}

// Speed returns the number of instructions executed per second.
func (d *Driver) Speed() int {
	return d.speed
}

// Frames returns the number of executed frames.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// RunFrame executes the instructions of one frame and ticks the timers once.
// A pending key wait or the end of the program stop the instruction part of
// the frame early, the timers keep running. Errors of the machine are
// returned wrapped.
func (d *Driver) RunFrame() (Frame, error) {
	d.frames++
	frame := Frame{Number: d.frames}

	d.carry += d.speed
	budget := d.carry / FrameRate
	d.carry %= FrameRate

	for range budget {
		result, err := d.machine.Step()
		if err != nil {
			return frame, fmt.Errorf("executing frame %d: %w", frame.Number, err)
		}

		stop := false
		switch result {
		case chip8.StepExecuted:
			frame.Steps++
		case chip8.StepDraw:
			frame.Steps++
			frame.Redraw = true
		case chip8.StepWaitKey:
			frame.WaitingForKey = true
			stop = true
		case chip8.StepEnd:
			frame.Ended = true
			stop = true
		}
		if stop {
			break
		}
	}

	d.updateTone(d.machine.SoundActive())
	d.machine.TickTimers()
	return frame, nil
}

// Run executes frames at FrameRate until the context is canceled, a frame
// fails or onFrame returns an error. ErrStop returned by onFrame ends Run
// with a nil error. The tone is silenced on return.
func (d *Driver) Run(ctx context.Context, onFrame func(Frame) error) error {
	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()
	defer d.Silence()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running machine: %w", ctx.Err())
		case <-ticker.C:
		}

		frame, err := d.RunFrame()
		if err != nil {
			return err
		}
		if onFrame == nil {
			continue
		}

		if err := onFrame(frame); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
}

// Silence stops a running tone, for example while the emulation is paused.
func (d *Driver) Silence() {
	d.updateTone(false)
}

func (d *Driver) updateTone(active bool) {
	if active == d.sound {
		return
	}

	d.sound = active
	d.tone.SetActive(active)
	state := "off"
	if active {
		state = "on"
	}
	d.logger.Debug("Tone changed", log.String("state", state))
}

type silence struct{}

func (silence) SetActive(bool) {}
