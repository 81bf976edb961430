// Package audio turns melody cues into sound. The terminal is the only
// required output, so every failure here degrades to silence.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// baseFrequency is C3 in Hz; semitone 0 of the instrument.
	baseFrequency = 130.8128

	// fade is the attack and release applied to every voice to avoid clicks.
	fade = 12 * time.Millisecond
)

// Player plays single notes.
type Player interface {
	Play(semitone int, seconds float64)
	Close()
}

// Silent is a Player that discards every note.
type Silent struct{}

// Play does nothing.
func (Silent) Play(int, float64) {}

// Close does nothing.
func (Silent) Close() {}

// Synth plays sine voices through the system speaker.
type Synth struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	open   bool
}

// Open initializes the speaker. volume is linear in [0, 1].
func Open(volume float64) (*Synth, error) {
	s := &Synth{mixer: &beep.Mixer{}, volume: clampVolume(volume)}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(s.mixer)
	s.open = true
	return s, nil
}

// Play queues a note on the mixer; it returns without waiting for it.
func (s *Synth) Play(semitone int, seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return
	}
	v, err := Voice(semitone, seconds, s.volume)
	if err != nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(v)
	speaker.Unlock()
}

// SetVolume changes the volume of future notes.
func (s *Synth) SetVolume(volume float64) {
	s.mu.Lock()
	s.volume = clampVolume(volume)
	s.mu.Unlock()
}

// Close silences the mixer and releases the speaker.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.open = false
}

// OpenOrSilent returns a Synth, or Silent plus the reason when no audio
// device is available.
func OpenOrSilent(enabled bool, volume float64) (Player, error) {
	if !enabled {
		return Silent{}, nil
	}
	s, err := Open(volume)
	if err != nil {
		return Silent{}, err
	}
	return s, nil
}

// Frequency returns the pitch in Hz of a semitone offset from C3.
func Frequency(semitone int) float64 {
	return baseFrequency * math.Pow(2, float64(semitone)/12)
}

// Voice builds a finite streamer for one note.
func Voice(semitone int, seconds, volume float64) (beep.Streamer, error) {
	if seconds <= 0 {
		return nil, fmt.Errorf("audio: note length %v", seconds)
	}
	tone, err := generators.SineTone(sampleRate, Frequency(semitone))
	if err != nil {
		return nil, fmt.Errorf("audio: tone: %w", err)
	}
	n := sampleRate.N(time.Duration(seconds * float64(time.Second)))
	shaped := newEnvelope(beep.Take(n, tone), n, sampleRate.N(fade))
	return newVolume(shaped, volume), nil
}

// envelope ramps the first and last samples of a finite stream.
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	ramp     int
}

func newEnvelope(s beep.Streamer, total, ramp int) *envelope {
	if ramp*2 > total {
		ramp = total / 2
	}
	return &envelope{streamer: s, total: total, ramp: ramp}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.ramp > 0 {
			if e.pos < e.ramp {
				gain = float64(e.pos) / float64(e.ramp)
			} else if left := e.total - e.pos; left < e.ramp {
				gain = float64(left) / float64(e.ramp)
			}
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume maps linear volume onto beep's log scale; zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func clampVolume(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
