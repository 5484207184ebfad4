// Package tui presents the machine in a terminal. Two display rows share one
// character cell using half block characters, so the display needs 64x16
// cells plus a frame and a status line.
//
// Terminals only report key presses, a pressed key is held down for a few
// frames and released automatically unless the terminal repeats the key.
package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrogolib/log"
)

// HoldFrames is the number of frames a key stays down after a key press event.
const HoldFrames = 6

const (
	originX = 1
	originY = 1
)

// Frontend runs the machine in a terminal screen.
type Frontend struct {
	logger    *log.Logger
	newScreen func() (tcell.Screen, error)
}

// Option configures a Frontend.
type Option func(*Frontend)

// WithScreen uses the given initialized screen instead of the terminal.
func WithScreen(screen tcell.Screen) Option {
	return func(f *Frontend) {
		f.newScreen = func() (tcell.Screen, error) {
			return screen, nil
		}
	}
}

// New returns a terminal frontend.
func New(logger *log.Logger, options ...Option) *Frontend {
	f := &Frontend{
		logger:    logger,
		newScreen: terminalScreen,
	}
	for _, option := range options {
		option(f)
	}
	return f
}

// Run implements frontend.Frontend.
func (f *Frontend) Run(ctx context.Context, session frontend.Session) error {
	screen, err := f.newScreen()
	if err != nil {
		return err
	}
	defer screen.Fini()

	done := make(chan struct{})
	defer close(done)
	events := pollEvents(screen, done)

	v := &view{
		screen:  screen,
		session: session,
		title:   session.Title,
	}
	v.render(true)

	err = session.Driver.Run(ctx, func(frame clock.Frame) error {
		v.update(frame)
		for {
			select {
			case ev := <-events:
				if !v.handleEvent(ev) {
					return clock.ErrStop
				}
			default:
				v.releaseKeys()
				return nil
			}
		}
	})
	if err != nil {
		return fmt.Errorf("running terminal: %w", err)
	}

	f.logger.Debug("Terminal frontend stopped", log.Hex("pc", session.Machine.PC))
	return nil
}

func terminalScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	return screen, nil
}

// pollEvents forwards screen events to a channel until done is closed.
func pollEvents(screen tcell.Screen, done <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

// view holds the terminal presentation state. It is only accessed from the
// frame loop goroutine.
type view struct {
	screen  tcell.Screen
	session frontend.Session
	title   string

	held    [chip8.KeyCount]int // remaining frames a key is held down
	waiting bool
	ended   bool
}

func (v *view) update(frame clock.Frame) {
	status := frame.WaitingForKey != v.waiting || frame.Ended != v.ended
	v.waiting = frame.WaitingForKey
	v.ended = frame.Ended

	if frame.Redraw || status {
		v.render(false)
	}
}

// handleEvent applies a terminal event and returns false if the user quits.
func (v *view) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			if key, ok := keymap.FromRune(ev.Rune()); ok {
				v.held[key] = HoldFrames
				v.session.Machine.KeyDown(key)
			}
		}

	case *tcell.EventResize:
		v.screen.Sync()
		v.render(true)
	}
	return true
}

// releaseKeys counts down the hold time of all pressed keys.
func (v *view) releaseKeys() {
	for i := range v.held {
		if v.held[i] == 0 {
			continue
		}
		v.held[i]--
		if v.held[i] == 0 {
			v.session.Machine.KeyUp(chip8.Key(i))
		}
	}
}

func (v *view) render(full bool) {
	if full {
		v.screen.Clear()
		box(v.screen, originX-1, originY-1, chip8.Width+1, chip8.Height/2+1)
		drawString(v.screen, originX+1, originY-1, tcell.StyleDefault.Bold(true), " "+v.title+" ")
	}

	drawPixels(v.screen, originX, originY, v.session.Machine.Display.Snapshot())
	v.drawStatus()
	v.screen.Show()
}

func (v *view) drawStatus() {
	y := originY + chip8.Height/2 + 1
	status := "Esc: quit"
	switch {
	case v.ended:
		status = "program ended, Esc: quit"
	case v.waiting:
		status = "waiting for a key, Esc: quit"
	}

	clearLine(v.screen, originX-1, y, chip8.Width+2)
	drawString(v.screen, originX-1, y, tcell.StyleDefault.Foreground(tcell.ColorGray), status)
}

// drawPixels renders the display with two pixel rows per terminal row.
func drawPixels(s tcell.Screen, x, y int, pixels chip8.Pixels) {
	for row := 0; row < chip8.Height; row += 2 {
		for col := range chip8.Width {
			s.SetContent(x+col, y+row/2, halfBlock(pixels[row][col], pixels[row+1][col]), nil, tcell.StyleDefault)
		}
	}
}

func halfBlock(upper, lower bool) rune {
	switch {
	case upper && lower:
		return '█'
	case upper:
		return '▀'
	case lower:
		return '▄'
	default:
		return ' '
	}
}

func drawString(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for _, c := range str {
		s.SetContent(x, y, c, nil, style)
		x++
	}
}

func clearLine(s tcell.Screen, x, y, width int) {
	for col := x; col < x+width; col++ {
		s.SetContent(col, y, ' ', nil, tcell.StyleDefault)
	}
}

func box(s tcell.Screen, x, y, w, h int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)

	s.SetContent(x, y, tcell.RuneULCorner, nil, style)
	s.SetContent(x+w, y, tcell.RuneURCorner, nil, style)
	s.SetContent(x, y+h, tcell.RuneLLCorner, nil, style)
	s.SetContent(x+w, y+h, tcell.RuneLRCorner, nil, style)

	for col := x + 1; col < x+w; col++ {
		s.SetContent(col, y, tcell.RuneHLine, nil, style)
		s.SetContent(col, y+h, tcell.RuneHLine, nil, style)
	}
	for row := y + 1; row < y+h; row++ {
		s.SetContent(x, row, tcell.RuneVLine, nil, style)
		s.SetContent(x+w, row, tcell.RuneVLine, nil, style)
	}
}
