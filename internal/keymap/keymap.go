// Package keymap maps the left hand block of a QWERTY keyboard to the
// CHIP-8 hex keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
package keymap

import (
	"unicode"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Binding connects a host keyboard key to a keypad key.
type Binding struct {
	Host rune // lower case character printed on the host key
	Key  chip8.Key
}

// Bindings lists all keypad keys in layout order, row by row.
var Bindings = [chip8.KeyCount]Binding{
	{'1', chip8.Key1}, {'2', chip8.Key2}, {'3', chip8.Key3}, {'4', chip8.KeyC},
	{'q', chip8.Key4}, {'w', chip8.Key5}, {'e', chip8.Key6}, {'r', chip8.KeyD},
	{'a', chip8.Key7}, {'s', chip8.Key8}, {'d', chip8.Key9}, {'f', chip8.KeyE},
	{'z', chip8.KeyA}, {'x', chip8.Key0}, {'c', chip8.KeyB}, {'v', chip8.KeyF},
}

// FromRune returns the keypad key bound to the host character, ignoring case.
func FromRune(r rune) (chip8.Key, bool) {
	r = unicode.ToLower(r)
	for _, binding := range Bindings {
		if binding.Host == r {
			return binding.Key, true
		}
	}
	return 0, false
}

// HostRune returns the host character bound to the keypad key.
func HostRune(key chip8.Key) rune {
	key &= 0x0F
	for _, binding := range Bindings {
		if binding.Key == key {
			return binding.Host
		}
	}
	return 0
}
