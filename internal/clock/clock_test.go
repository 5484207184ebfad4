package clock

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fakeMachine struct {
	results []chip8.StepResult // returned in order, StepExecuted afterwards
	err     error
	steps   int
	ticks   int
	sound   int // frames with an active sound timer
}

func (m *fakeMachine) Step() (chip8.StepResult, error) {
	if m.err != nil {
		return chip8.StepExecuted, m.err
	}

	m.steps++
	if len(m.results) == 0 {
		return chip8.StepExecuted, nil
	}
	result := m.results[0]
	m.results = m.results[1:]
	return result, nil
}

func (m *fakeMachine) TickTimers() {
	m.ticks++
	if m.sound > 0 {
		m.sound--
	}
}

func (m *fakeMachine) SoundActive() bool {
	return m.sound > 0
}

type recordingTone struct {
	changes []bool
}

func (r *recordingTone) SetActive(active bool) {
	r.changes = append(r.changes, active)
}

func TestNew_InvalidSpeed(t *testing.T) {
	_, err := New(log.NewTestLogger(t), &fakeMachine{}, 0, nil)
	assert.Error(t, err)
}

func TestDriver_RunFrame_Budget(t *testing.T) {
	tests := []struct {
		name   string
		speed  int
		frames int
		steps  int
	}{
		{"even rate", 600, 1, 10},
		{"default rate over a second", DefaultSpeed, FrameRate, DefaultSpeed},
		{"fractional rate", DefaultSpeed, 3, 35},
		{"slower than the frame rate", 30, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine := &fakeMachine{}
			driver, err := New(log.NewTestLogger(t), machine, tt.speed, nil)
			assert.NoError(t, err)

			for range tt.frames {
				_, err := driver.RunFrame()
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.steps, machine.steps)
			assert.Equal(t, tt.frames, machine.ticks)
			assert.Equal(t, uint64(tt.frames), driver.Frames())
		})
	}
}

func TestDriver_RunFrame_Results(t *testing.T) {
	machine := &fakeMachine{
		results: []chip8.StepResult{chip8.StepExecuted, chip8.StepDraw, chip8.StepWaitKey},
	}
	driver, err := New(log.NewTestLogger(t), machine, 600, nil)
	assert.NoError(t, err)

	frame, err := driver.RunFrame()
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), frame.Number)
	assert.Equal(t, 2, frame.Steps)
	assert.True(t, frame.Redraw)
	assert.True(t, frame.WaitingForKey)
	assert.False(t, frame.Ended)
	assert.Equal(t, 1, machine.ticks, "timers keep running during a key wait")

	machine.results = []chip8.StepResult{chip8.StepEnd}
	frame, err = driver.RunFrame()
	assert.NoError(t, err)
	assert.True(t, frame.Ended)
	assert.Equal(t, 0, frame.Steps)
}

func TestDriver_RunFrame_Error(t *testing.T) {
	machine := &fakeMachine{err: chip8.ErrStackUnderflow}
	driver, err := New(log.NewTestLogger(t), machine, 600, nil)
	assert.NoError(t, err)

	_, err = driver.RunFrame()
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
	assert.ErrorContains(t, err, "executing frame 1")
	assert.Equal(t, 0, machine.ticks)
}

func TestDriver_Tone(t *testing.T) {
	machine := &fakeMachine{sound: 2}
	tone := &recordingTone{}
	driver, err := New(log.NewTestLogger(t), machine, 60, tone)
	assert.NoError(t, err)

	for range 4 {
		_, err := driver.RunFrame()
		assert.NoError(t, err)
	}
	assert.Equal(t, []bool{true, false}, tone.changes)

	machine.sound = 5
	_, err = driver.RunFrame()
	assert.NoError(t, err)
	driver.Silence()
	driver.Silence()
	assert.Equal(t, []bool{true, false, true, false}, tone.changes)
}

func TestDriver_Run(t *testing.T) {
	machine := &fakeMachine{}
	driver, err := New(log.NewTestLogger(t), machine, 120, nil)
	assert.NoError(t, err)

	var frames []Frame
	err = driver.Run(context.Background(), func(frame Frame) error {
		frames = append(frames, frame)
		if len(frames) == 3 {
			return ErrStop
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Len(t, frames, 3)
	assert.Equal(t, 6, machine.steps)
}

func TestDriver_Run_Canceled(t *testing.T) {
	driver, err := New(log.NewTestLogger(t), &fakeMachine{}, 60, nil)
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = driver.Run(ctx, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDriver_Machine(t *testing.T) {
	machine := chip8.New(log.NewTestLogger(t))
	// LD V0, 1; ADD V0, 1; JP 202
	assert.NoError(t, machine.LoadProgram([]byte{0x60, 0x01, 0x70, 0x01, 0x12, 0x02}))

	driver, err := New(log.NewTestLogger(t), machine, 600, nil)
	assert.NoError(t, err)

	frame, err := driver.RunFrame()
	assert.NoError(t, err)
	assert.Equal(t, 10, frame.Steps)
	assert.Equal(t, byte(1+5), machine.V[0])
}
