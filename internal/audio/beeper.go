//go:build !headless

package audio

import (
	"fmt"

	"github.com/ebitengine/oto/v3"
	"github.com/retroenv/retrogolib/log"
)

// Available reports whether the binary was built with audio output.
const Available = true

// Beeper outputs a square wave tone on the default audio device.
type Beeper struct {
	logger *log.Logger
	ctx    *oto.Context
	player *oto.Player
	wave   *squareWave
}

// NewBeeper opens the audio device and starts a silent player.
func NewBeeper(logger *log.Logger) (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	b := &Beeper{
		logger: logger,
		ctx:    ctx,
		wave:   &squareWave{},
	}
	b.player = ctx.NewPlayer(b.wave)
	b.player.Play()

	logger.Debug("Audio output opened",
		log.Int("sample_rate", SampleRate),
		log.Int("frequency", Frequency))
	return b, nil
}

// SetActive starts or stops the tone.
func (b *Beeper) SetActive(active bool) {
	b.wave.active.Store(active)
}

// Close stops the player.
func (b *Beeper) Close() {
	b.wave.active.Store(false)
	b.player.Pause()
	b.player.Close()
}
