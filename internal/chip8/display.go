package chip8

import "strings"

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32

	// SpriteWidth is the fixed width of a sprite row, one bit per pixel.
	SpriteWidth = 8
)

// Pixels is a copy of the display content, indexed as [y][x].
type Pixels [Height][Width]bool

// Display is the 64x32 monochrome frame buffer. Coordinates wrap on both axes.
type Display struct {
	pixels Pixels
}

// Clear turns all pixels off.
func (d *Display) Clear() {
	d.pixels = Pixels{}
}

// Pixel returns whether the pixel at the wrapped coordinate is on.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[wrap(y, Height)][wrap(x, Width)]
}

// DrawSprite XORs the sprite rows onto the display with the top left corner at
// (x mod Width, y mod Height). Every pixel wraps around both edges. It returns
// true if any pixel that was on got turned off.
func (d *Display) DrawSprite(x, y byte, sprite []byte) bool {
	originX := int(x) % Width
	originY := int(y) % Height

	collision := false
	for row, bits := range sprite {
		py := (originY + row) % Height
		for col := range SpriteWidth {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := (originX + col) % Width
			if d.pixels[py][px] {
				collision = true
			}
			d.pixels[py][px] = !d.pixels[py][px]
		}
	}
	return collision
}

// Snapshot returns a copy of the display content that a renderer can read
// without holding on to the machine.
func (d *Display) Snapshot() Pixels {
	return d.pixels
}

// Lit returns the number of pixels that are on.
func (d *Display) Lit() int {
	count := 0
	for y := range Height {
		for x := range Width {
			if d.pixels[y][x] {
				count++
			}
		}
	}
	return count
}

// String renders the display as text rows, one rune per pixel.
func (d *Display) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width*3 + 1))
	for y := range Height {
		for x := range Width {
			if d.pixels[y][x] {
				sb.WriteRune('█')
			} else {
				sb.WriteRune('·')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func wrap(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}
