package audio

import (
	"math"
	"testing"
	"time"
)

func TestFrequency(t *testing.T) {
	tests := []struct {
		semitone int
		want     float64
	}{
		{0, 130.8128},
		{9, 220.0},
		{12, 261.6256},
	}
	for _, tc := range tests {
		if got := Frequency(tc.semitone); math.Abs(got-tc.want) > 0.01 {
			t.Errorf("Frequency(%d) = %.4f, expected %.4f", tc.semitone, got, tc.want)
		}
	}
}

func TestVoiceLength(t *testing.T) {
	v, err := Voice(2, 0.1, 0.5)
	if err != nil {
		t.Fatalf("Voice() error: %v", err)
	}

	want := sampleRate.N(100 * time.Millisecond)
	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := v.Stream(buf)
		total += n
		for i := 0; i < n; i++ {
			if math.Abs(buf[i][0]) > 1 || math.Abs(buf[i][1]) > 1 {
				t.Fatalf("sample out of range: %v", buf[i])
			}
		}
		if !ok || n == 0 {
			break
		}
	}
	if total != want {
		t.Errorf("voice streamed %d samples, expected %d", total, want)
	}
}

func TestVoiceRejectsEmptyNote(t *testing.T) {
	if _, err := Voice(0, 0, 1); err == nil {
		t.Error("expected an error for a zero-length note")
	}
}

func TestEnvelopeRamps(t *testing.T) {
	v, err := Voice(9, 0.05, 1)
	if err != nil {
		t.Fatalf("Voice() error: %v", err)
	}
	buf := make([][2]float64, 4)
	v.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first sample = %v, expected silence at the start of the ramp", buf[0][0])
	}
}

func TestSilentVolume(t *testing.T) {
	v, err := Voice(4, 0.02, 0)
	if err != nil {
		t.Fatalf("Voice() error: %v", err)
	}
	buf := make([][2]float64, 256)
	n, _ := v.Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] != 0 {
			t.Fatalf("sample %d = %v, expected silence", i, buf[i][0])
		}
	}
}

func TestSilentPlayer(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Silent panicked: %v", r)
		}
	}()

	p, err := OpenOrSilent(false, 1)
	if err != nil {
		t.Fatalf("OpenOrSilent(false) error: %v", err)
	}
	if _, ok := p.(Silent); !ok {
		t.Errorf("OpenOrSilent(false) = %T, expected Silent", p)
	}
	p.Play(0, 1)
	p.Close()
}

func TestClosedSynthIgnoresPlay(t *testing.T) {
	var s Synth
	s.Play(3, 0.5)
	s.Close()
}

func TestClampVolume(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0},
		{0.4, 0.4},
		{3, 1},
	}
	for _, tc := range tests {
		if got := clampVolume(tc.in); got != tc.want {
			t.Errorf("clampVolume(%v) = %v, expected %v", tc.in, got, tc.want)
		}
	}
}
