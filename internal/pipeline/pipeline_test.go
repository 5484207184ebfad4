package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// drawProgram draws the font glyph of digit 0 at (0,0) and loops forever.
var drawProgram = []byte{0xA0, 0x50, 0xD0, 0x05, 0x12, 0x04}

func headlessOptions() options.Emulator {
	return options.Emulator{
		Frontend: frontend.Headless,
		Speed:    700,
		Frames:   5,
		Scale:    10,
	}
}

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
}

func TestExecute(t *testing.T) {
	tmpFile := createTempFile(t, "draw.ch8", drawProgram)
	p := New(log.NewTestLogger(t))
	var out bytes.Buffer

	opts := options.Program{
		Parameters: options.Parameters{Input: tmpFile},
	}
	err := p.Execute(context.Background(), opts, headlessOptions(), &out)
	assert.NoError(t, err)

	lines := strings.Split(out.String(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "████·"))
	assert.True(t, strings.HasPrefix(lines[chip8.Height], "PC=0204"))
}

func TestExecute_Errors(t *testing.T) {
	p := New(log.NewTestLogger(t))

	t.Run("unsupported system", func(t *testing.T) {
		tmpFile := createTempFile(t, "game.nes", drawProgram)
		opts := options.Program{Parameters: options.Parameters{Input: tmpFile}}

		err := p.Execute(context.Background(), opts, headlessOptions(), nil)
		assert.ErrorContains(t, err, "unsupported system")
	})

	t.Run("missing file", func(t *testing.T) {
		opts := options.Program{Parameters: options.Parameters{Input: "/nonexistent/game.ch8"}}

		err := p.Execute(context.Background(), opts, headlessOptions(), nil)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("invalid instruction", func(t *testing.T) {
		err := p.ExecuteWithProgram(context.Background(), []byte{0x00, 0xEE}, options.Program{}, headlessOptions(), nil)
		assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
	})

	t.Run("program too large", func(t *testing.T) {
		program := make([]byte, chip8.MaxProgramSize+2)
		err := p.ExecuteWithProgram(context.Background(), program, options.Program{}, headlessOptions(), nil)
		assert.True(t, errors.Is(err, chip8.ErrCapacity))
	})

	t.Run("invalid speed", func(t *testing.T) {
		emuOpts := headlessOptions()
		emuOpts.Speed = 0
		err := p.ExecuteWithProgram(context.Background(), drawProgram, options.Program{}, emuOpts, nil)
		assert.ErrorContains(t, err, "invalid instruction rate")
	})
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
