package frontend

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newSession(t *testing.T, program ...byte) Session {
	t.Helper()

	logger := log.NewTestLogger(t)
	machine := chip8.New(logger)
	assert.NoError(t, machine.LoadProgram(program))

	driver, err := clock.New(logger, machine, 600, nil)
	assert.NoError(t, err)

	return Session{
		Title:   "test",
		Machine: machine,
		Driver:  driver,
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Kind
		wantErr  bool
	}{
		{"empty selects auto", "", Auto, false},
		{"gui", "gui", GUI, false},
		{"mixed case", " TUI ", TUI, false},
		{"headless", "headless", Headless, false},
		{"unknown", "vga", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ParseKind(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestHeadless_Run(t *testing.T) {
	// LD I, font 0; DRW V0, V0, 5; JP 204
	session := newSession(t, 0xA0, 0x50, 0xD0, 0x05, 0x12, 0x04)
	var out bytes.Buffer

	err := NewHeadless(log.NewTestLogger(t), 3, &out).Run(context.Background(), session)
	assert.NoError(t, err)
	assert.Equal(t, uint64(3), session.Driver.Frames())

	lines := strings.Split(out.String(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "████·"))
	assert.True(t, strings.HasPrefix(lines[1], "█··█·"))
	assert.Equal(t, "PC=0204 I=0050 SP=0 DT=00 ST=00 V=00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00", lines[chip8.Height])
}

func TestHeadless_Run_ProgramEnd(t *testing.T) {
	session := newSession(t, 0x60, 0x01)

	err := NewHeadless(log.NewTestLogger(t), 100, nil).Run(context.Background(), session)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), session.Driver.Frames())
	assert.Equal(t, byte(1), session.Machine.V[0])
}

func TestHeadless_Run_Error(t *testing.T) {
	session := newSession(t, 0x00, 0xEE)
	var out bytes.Buffer

	err := NewHeadless(log.NewTestLogger(t), 10, &out).Run(context.Background(), session)
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
	assert.Contains(t, out.String(), "PC=0200")
}

func TestHeadless_Run_Canceled(t *testing.T) {
	session := newSession(t, 0x12, 0x00)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewHeadless(log.NewTestLogger(t), 10, nil).Run(ctx, session)
	assert.True(t, errors.Is(err, context.Canceled))
}
