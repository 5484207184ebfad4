//go:build headless

package audio

import (
	"errors"

	"github.com/retroenv/retrogolib/log"
)

// Available reports whether the binary was built with audio output.
const Available = false

var errNoAudio = errors.New("audio output is not available in headless builds")

// Beeper is a placeholder in builds without audio output.
type Beeper struct {
	wave squareWave
}

// NewBeeper always fails in headless builds.
func NewBeeper(*log.Logger) (*Beeper, error) {
	return nil, errNoAudio
}

// SetActive records the tone state.
func (b *Beeper) SetActive(active bool) {
	b.wave.active.Store(active)
}

// Close does nothing.
func (b *Beeper) Close() {}
