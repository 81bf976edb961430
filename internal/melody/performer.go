package melody

// Performer walks a song while the player moves. Notes the player has not
// collected yet are skipped; the walk loops back to the start.
type Performer struct {
	song      Song
	collected map[Note]bool
	index     int
	interval  float64 // current timer length
	remaining float64
}

// NewPerformer creates a performer whose timer starts at one eighth note.
func NewPerformer(song Song, eighth float64) *Performer {
	return &Performer{
		song:      song,
		collected: make(map[Note]bool),
		interval:  eighth,
		remaining: eighth,
	}
}

// Collect marks n as available. It returns false if n was already held.
func (p *Performer) Collect(n Note) bool {
	if p.collected[n] {
		return false
	}
	p.collected[n] = true
	return true
}

// Has reports whether n has been collected.
func (p *Performer) Has(n Note) bool {
	return p.collected[n]
}

// Collected returns how many distinct notes are held.
func (p *Performer) Collected() int {
	return len(p.collected)
}

// Index returns the position of the next beat to consider.
func (p *Performer) Index() int {
	return p.index
}

// Tick advances the performance by dt seconds. While the player is idle
// the timer restarts instead of counting down. When the timer expires the
// walk moves to the next collected note, plays it, and holds for its length.
func (p *Performer) Tick(dt float64, moving bool) (Beat, bool) {
	if !moving {
		p.remaining = p.interval
		return Beat{}, false
	}

	p.remaining -= dt
	if p.remaining > 0 {
		return Beat{}, false
	}
	p.remaining += p.interval

	var played Beat
	found := false
	for p.index < len(p.song) {
		beat := p.song[p.index]
		p.index++
		if p.collected[beat.Note] {
			played = beat
			found = true
			p.interval = beat.Seconds
			p.remaining = beat.Seconds
			break
		}
	}
	if p.index >= len(p.song) {
		p.index = 0
	}
	return played, found
}
