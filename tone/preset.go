package tone

import "time"

// Note is one tone of a sound, starting At after the sound begins.
type Note struct {
	Freq     float64
	Duration time.Duration
	Wave     Wave
	At       time.Duration
}

// Sound is a short sequence of notes.
type Sound []Note

// Sounds the games play.
var (
	Eat      = Sound{{Freq: 880, Duration: 100 * time.Millisecond, Wave: Sine}}
	Turn     = Sound{{Freq: 440, Duration: 50 * time.Millisecond, Wave: Sine}}
	GameOver = Sound{{Freq: 220, Duration: 500 * time.Millisecond, Wave: Sawtooth}}
	Win      = Sound{
		{Freq: 660, Duration: 300 * time.Millisecond, Wave: Sine},
		{Freq: 880, Duration: 300 * time.Millisecond, Wave: Sine, At: 150 * time.Millisecond},
		{Freq: 1100, Duration: 500 * time.Millisecond, Wave: Sine, At: 300 * time.Millisecond},
	}
)

// Length is when the last note of s ends.
func (s Sound) Length() time.Duration {
	var end time.Duration
	for _, n := range s {
		if e := n.At + n.Duration; e > end {
			end = e
		}
	}
	return end
}

// Render mixes every note of s into one buffer.
func (s Sound) Render(sampleRate int) []byte {
	frames := int(s.Length().Seconds() * float64(sampleRate))
	buf := make([]byte, frames*frameSize)
	for _, n := range s {
		offset := int(n.At.Seconds() * float64(sampleRate))
		count := int(n.Duration.Seconds() * float64(sampleRate))
		for i := 0; i < count && offset+i < frames; i++ {
			mixInto(buf, offset+i, sampleValue(n.Freq, n.Duration, n.Wave, sampleRate, i))
		}
	}
	return buf
}
