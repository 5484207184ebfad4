package tui

import (
	"context"
	"testing"

	"github.com/gdamore/tcell"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	assert.NoError(t, screen.Init())
	screen.SetSize(80, 25)
	return screen
}

func newTestSession(t *testing.T, program ...byte) frontend.Session {
	t.Helper()

	logger := log.NewTestLogger(t)
	machine := chip8.New(logger)
	assert.NoError(t, machine.LoadProgram(program))

	driver, err := clock.New(logger, machine, 600, nil)
	assert.NoError(t, err)

	return frontend.Session{
		Title:   "test",
		Machine: machine,
		Driver:  driver,
	}
}

func cellRune(t *testing.T, screen tcell.SimulationScreen, x, y int) rune {
	t.Helper()

	cells, width, _ := screen.GetContents()
	cell := cells[y*width+x]
	assert.NotEmpty(t, cell.Runes)
	return cell.Runes[0]
}

func TestHalfBlock(t *testing.T) {
	assert.Equal(t, '█', halfBlock(true, true))
	assert.Equal(t, '▀', halfBlock(true, false))
	assert.Equal(t, '▄', halfBlock(false, true))
	assert.Equal(t, ' ', halfBlock(false, false))
}

func TestView_Render(t *testing.T) {
	screen := newTestScreen(t)
	defer screen.Fini()

	session := newTestSession(t)
	session.Machine.Display.DrawSprite(0, 0, []byte{0x80, 0x00, 0xC0, 0xC0})

	v := &view{screen: screen, session: session, title: "demo"}
	v.render(true)

	assert.Equal(t, '▀', cellRune(t, screen, originX, originY))
	assert.Equal(t, '█', cellRune(t, screen, originX, originY+1))
	assert.Equal(t, '█', cellRune(t, screen, originX+1, originY+1))
	assert.Equal(t, ' ', cellRune(t, screen, originX+1, originY))
	assert.Equal(t, tcell.RuneULCorner, cellRune(t, screen, originX-1, originY-1))
	assert.Equal(t, 'd', cellRune(t, screen, originX+2, originY-1))
}

func TestView_HandleEvent(t *testing.T) {
	screen := newTestScreen(t)
	defer screen.Fini()

	session := newTestSession(t)
	v := &view{screen: screen, session: session}

	assert.True(t, v.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModNone)))
	assert.True(t, session.Machine.Keypad.IsDown(chip8.Key5))

	// unbound keys are ignored
	assert.True(t, v.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)))

	for range HoldFrames - 1 {
		v.releaseKeys()
	}
	assert.True(t, session.Machine.Keypad.IsDown(chip8.Key5))
	v.releaseKeys()
	assert.False(t, session.Machine.Keypad.IsDown(chip8.Key5))

	assert.False(t, v.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, v.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)))
}

func TestFrontend_Run_Quit(t *testing.T) {
	screen := newTestScreen(t)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	// LD I, font 0; DRW V0, V0, 5; JP 204
	session := newTestSession(t, 0xA0, 0x50, 0xD0, 0x05, 0x12, 0x04)

	err := New(log.NewTestLogger(t), WithScreen(screen)).Run(context.Background(), session)
	assert.NoError(t, err)
	assert.True(t, session.Driver.Frames() >= 1)
	assert.Equal(t, 14, session.Machine.Display.Lit())
}
