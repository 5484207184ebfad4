package chip8

import "fmt"

// KeyCount is the number of keys on the hex keypad.
const KeyCount = 16

// Key is a hex keypad key. The original layout is:
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
type Key uint8

// Keypad keys.
const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

func (k Key) String() string {
	return fmt.Sprintf("%X", uint8(k)&0x0F)
}

// Keypad holds the key down state of all 16 keys. It is written by the input
// collaborator of the host and read by the interpreter.
type Keypad struct {
	keys [KeyCount]bool
}

// Set sets the down state of a key. Only the low nibble of key is used.
func (p *Keypad) Set(key Key, down bool) {
	p.keys[key&0x0F] = down
}

// Press marks a key as down.
func (p *Keypad) Press(key Key) {
	p.Set(key, true)
}

// Release marks a key as up.
func (p *Keypad) Release(key Key) {
	p.Set(key, false)
}

// IsDown returns whether the key is currently down.
func (p *Keypad) IsDown(key Key) bool {
	return p.keys[key&0x0F]
}

// ReleaseAll marks all keys as up.
func (p *Keypad) ReleaseAll() {
	p.keys = [KeyCount]bool{}
}
