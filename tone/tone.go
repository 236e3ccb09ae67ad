// Package tone synthesizes the short beeps the games play: a single
// oscillator whose gain starts at 0.3 and decays exponentially to 0.01.
//
// Samples are signed 16 bit little endian stereo, the format ebiten's audio
// context plays.
package tone

import (
	"math"
	"time"
)

// SampleRate used by the frontends.
const SampleRate = 44100

const (
	startGain = 0.3
	endGain   = 0.01
	// bytes per stereo frame
	frameSize = 4
)

// Wave is an oscillator shape.
type Wave string

// Waves.
const (
	Sine     Wave = "sine"
	Sawtooth Wave = "sawtooth"
)

func (w Wave) sample(phase float64) float64 {
	switch w {
	case Sawtooth:
		return 2 * (phase - math.Floor(phase+0.5))
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Gain is the envelope value at t into a tone lasting dur.
func Gain(t, dur time.Duration) float64 {
	if dur <= 0 {
		return 0
	}
	return startGain * math.Pow(endGain/startGain, t.Seconds()/dur.Seconds())
}

// Generate renders a single tone.
func Generate(freq float64, dur time.Duration, wave Wave, sampleRate int) []byte {
	n := int(dur.Seconds() * float64(sampleRate))
	buf := make([]byte, n*frameSize)
	for i := 0; i < n; i++ {
		mixInto(buf, i, sampleValue(freq, dur, wave, sampleRate, i))
	}
	return buf
}

func sampleValue(freq float64, dur time.Duration, wave Wave, sampleRate, i int) float64 {
	t := float64(i) / float64(sampleRate)
	g := Gain(time.Duration(t*float64(time.Second)), dur)
	return wave.sample(freq*t) * g * math.MaxInt16
}

// mixInto adds v to both channels of frame i, clipping at the int16 range.
func mixInto(buf []byte, i int, v float64) {
	for ch := 0; ch < 2; ch++ {
		idx := i*frameSize + ch*2
		cur := float64(int16(uint16(buf[idx]) | uint16(buf[idx+1])<<8))
		s := clip(cur + v)
		buf[idx] = byte(s)
		buf[idx+1] = byte(s >> 8)
	}
}

func clip(v float64) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}
