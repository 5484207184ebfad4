//go:build !headless

// Package gui presents the machine in a window. The window shows the scaled
// display, the keyboard is mapped to the keypad by the keymap package.
//
// Controls: Escape quits, P pauses and resumes the emulation.
package gui

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/font/basicfont"
)

// Available reports whether the binary was built with window support.
const Available = true

var (
	colorOn      = color.RGBA{R: 0xE0, G: 0xF0, B: 0xD0, A: 0xFF}
	colorOff     = color.RGBA{R: 0x10, G: 0x18, B: 0x10, A: 0xFF}
	colorOverlay = color.RGBA{R: 0xFF, G: 0xC0, B: 0x40, A: 0xFF}
)

// hostKeys maps the host characters of the key bindings to window keys.
var hostKeys = map[rune]ebiten.Key{
	'1': ebiten.KeyDigit1, '2': ebiten.KeyDigit2, '3': ebiten.KeyDigit3, '4': ebiten.KeyDigit4,
	'q': ebiten.KeyQ, 'w': ebiten.KeyW, 'e': ebiten.KeyE, 'r': ebiten.KeyR,
	'a': ebiten.KeyA, 's': ebiten.KeyS, 'd': ebiten.KeyD, 'f': ebiten.KeyF,
	'z': ebiten.KeyZ, 'x': ebiten.KeyX, 'c': ebiten.KeyC, 'v': ebiten.KeyV,
}

// Frontend runs the machine in a window.
type Frontend struct {
	logger *log.Logger
	scale  int
}

// New returns a window frontend. Every display pixel is drawn as a square
// of scale by scale window pixels.
func New(logger *log.Logger, scale int) *Frontend {
	return &Frontend{
		logger: logger,
		scale:  max(scale, 1),
	}
}

// Run implements frontend.Frontend. It has to be called from the main goroutine.
func (f *Frontend) Run(ctx context.Context, session frontend.Session) error {
	g := &game{
		ctx:     ctx,
		logger:  f.logger,
		session: session,
		scale:   f.scale,
		pixels:  make([]byte, chip8.Width*chip8.Height*4),
		dirty:   true,
	}

	ebiten.SetWindowSize(chip8.Width*f.scale, chip8.Height*f.scale)
	ebiten.SetWindowTitle(session.Title)
	ebiten.SetTPS(clock.FrameRate)

	err := ebiten.RunGame(g)
	session.Driver.Silence()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running window: %w", err)
	}
	if g.ctx.Err() != nil {
		return fmt.Errorf("running window: %w", g.ctx.Err())
	}
	return nil
}

// game implements ebiten.Game. Update and Draw are called from the same
// goroutine, the machine is only accessed from there.
type game struct {
	ctx     context.Context
	logger  *log.Logger
	session frontend.Session
	scale   int

	canvas *ebiten.Image
	pixels []byte // RGBA buffer of the display
	dirty  bool

	paused  bool
	waiting bool
	ended   bool
}

func (g *game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		if g.paused {
			g.session.Driver.Silence()
		}
		g.logger.Debug("Pause toggled", log.String("state", pauseState(g.paused)))
	}
	if g.paused || g.ended {
		return nil
	}

	machine := g.session.Machine
	for _, binding := range keymap.Bindings {
		machine.Keypad.Set(binding.Key, ebiten.IsKeyPressed(hostKeys[binding.Host]))
	}

	frame, err := g.session.Driver.RunFrame()
	if err != nil {
		return err
	}

	if frame.Redraw {
		g.dirty = true
	}
	g.waiting = frame.WaitingForKey
	if frame.Ended {
		g.ended = true
		g.session.Driver.Silence()
		g.logger.Info("Program reached its end", log.Hex("pc", machine.PC))
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		g.canvas = ebiten.NewImage(chip8.Width, chip8.Height)
	}
	if g.dirty {
		fillPixels(g.pixels, g.session.Machine.Display.Snapshot())
		g.canvas.WritePixels(g.pixels)
		g.dirty = false
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.canvas, op)

	if label := g.overlay(); label != "" {
		text.Draw(screen, label, basicfont.Face7x13, 8, 8+basicfont.Face7x13.Ascent, colorOverlay)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return chip8.Width * g.scale, chip8.Height * g.scale
}

func (g *game) overlay() string {
	switch {
	case g.paused:
		return "PAUSED - press P to resume"
	case g.ended:
		return "Program ended - press Esc to quit"
	default:
		return ""
	}
}

// fillPixels converts the display content to an RGBA buffer.
func fillPixels(buf []byte, pixels chip8.Pixels) {
	for y := range chip8.Height {
		for x := range chip8.Width {
			c := colorOff
			if pixels[y][x] {
				c = colorOn
			}
			offset := (y*chip8.Width + x) * 4
			buf[offset] = c.R
			buf[offset+1] = c.G
			buf[offset+2] = c.B
			buf[offset+3] = c.A
		}
	}
}

func pauseState(paused bool) string {
	if paused {
		return "paused"
	}
	return "running"
}
