// Package melody holds the song the player performs and the cursor that
// walks it while the player is on the move.
package melody

import (
	"fmt"
	"sort"
)

// BPM is the tempo of the theme.
const BPM = 80.0

// EighthNote is the length of an eighth note at BPM, in seconds.
const EighthNote = 60.0 / BPM / 2.0

// Note is a pitch as a semitone offset from C3. The instrument covers C3..D4.
type Note int

// noteNames lists the playable pitches, indexed by Note.
var noteNames = []string{
	"C3", "C#3", "D3", "D#3", "E3", "F3", "F#3", "G3",
	"G#3", "A3", "A#3", "B3", "C4", "C#4", "D4",
}

// NoteCount is the number of playable pitches.
var NoteCount = len(noteNames)

// String returns the scientific pitch name.
func (n Note) String() string {
	if n < 0 || int(n) >= len(noteNames) {
		return fmt.Sprintf("Note(%d)", int(n))
	}
	return noteNames[n]
}

// Valid reports whether n is a playable pitch.
func (n Note) Valid() bool {
	return n >= 0 && int(n) < len(noteNames)
}

// Beat is one entry of a song: a note held for Seconds.
type Beat struct {
	Note    Note
	Seconds float64
}

// Song is an ordered list of beats.
type Song []Beat

// NewSong builds a song from (note, length in eighth notes) pairs.
func NewSong(pairs [][2]float64, eighth float64) Song {
	s := make(Song, len(pairs))
	for i, p := range pairs {
		s[i] = Beat{Note: Note(int(p[0])), Seconds: p[1] * eighth}
	}
	return s
}

// DistinctNotes returns every pitch used by the song, lowest first.
func (s Song) DistinctNotes() []Note {
	seen := make(map[Note]bool)
	var out []Note
	for _, b := range s {
		if !seen[b.Note] {
			seen[b.Note] = true
			out = append(out, b.Note)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Duration returns the total length of the song in seconds.
func (s Song) Duration() float64 {
	total := 0.0
	for _, b := range s {
		total += b.Seconds
	}
	return total
}

// themePairs is the fixed melody as (semitone, eighth notes).
var themePairs = [][2]float64{
	{2, 1}, {6, 1}, {9, 3}, {11, 1}, {9, 1}, {6, 1}, {2, 4}, {2, 2},
	{4, 3}, {4, 1}, {2, 1}, {4, 1}, {6, 4}, {2, 1}, {6, 1}, {9, 3},
	{11, 1}, {9, 1}, {6, 1}, {2, 4}, {2, 1}, {4, 1}, {6, 3}, {7, 1},
	{6, 1}, {4, 1}, {2, 6}, {9, 3}, {11, 1}, {9, 1}, {6, 1}, {14, 6},
	{9, 3}, {11, 1}, {9, 1}, {6, 1}, {4, 6}, {9, 3}, {11, 1}, {9, 1},
	{6, 1}, {14, 1}, {13, 1}, {11, 2}, {14, 2}, {6, 3}, {7, 1}, {6, 1},
	{4, 1}, {2, 4},
}

// Theme returns the game's melody at the given eighth-note length.
func Theme(eighth float64) Song {
	return NewSong(themePairs, eighth)
}
