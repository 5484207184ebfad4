// Package audio plays the CHIP-8 tone while the sound timer is running.
package audio

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

// Tone parameters.
const (
	SampleRate = 44100
	Frequency  = 440
	Volume     = 0.15

	sampleSize = 4 // mono float32
	period     = SampleRate / Frequency
)

// squareWave is an io.Reader producing float32 little endian samples of a
// square wave that is silent while inactive. Read is called from the audio
// driver goroutine, the active flag is set from the emulation goroutine.
type squareWave struct {
	active atomic.Bool
	phase  int
}

func (w *squareWave) Read(p []byte) (int, error) {
	samples := len(p) / sampleSize
	active := w.active.Load()

	for i := range samples {
		var value float32
		if active {
			value = Volume
			if w.phase >= period/2 {
				value = -Volume
			}
		}
		w.phase = (w.phase + 1) % period

		binary.LittleEndian.PutUint32(p[i*sampleSize:], math.Float32bits(value))
	}
	return samples * sampleSize, nil
}
