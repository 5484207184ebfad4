package keymap

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestFromRune(t *testing.T) {
	tests := []struct {
		name  string
		host  rune
		key   chip8.Key
		bound bool
	}{
		{"digit", '1', chip8.Key1, true},
		{"fourth column", '4', chip8.KeyC, true},
		{"lower case letter", 'x', chip8.Key0, true},
		{"upper case letter", 'V', chip8.KeyF, true},
		{"unbound digit", '5', 0, false},
		{"unbound letter", 'p', 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, bound := FromRune(tt.host)
			assert.Equal(t, tt.bound, bound)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestBindings_CoverKeypad(t *testing.T) {
	var seen [chip8.KeyCount]bool
	for _, binding := range Bindings {
		assert.False(t, seen[binding.Key], "key %s bound twice", binding.Key)
		seen[binding.Key] = true
		assert.Equal(t, binding.Host, HostRune(binding.Key))
	}
}
