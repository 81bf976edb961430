package corruption

// Spreader drives a Field from a Clock: every fire runs one Step, and only
// successful steps accelerate the clock.
type Spreader struct {
	field  *Field
	clock  *Clock
	events []Event
}

// NewSpreader binds a field to a clock.
func NewSpreader(field *Field, clock *Clock) *Spreader {
	return &Spreader{field: field, clock: clock}
}

// Field returns the driven field.
func (s *Spreader) Field() *Field { return s.field }

// Clock returns the driving clock.
func (s *Spreader) Clock() *Clock { return s.clock }

// Advance moves time forward by dt seconds and returns the corruption
// events that happened. The returned slice is reused by the next call.
func (s *Spreader) Advance(dt float64) []Event {
	s.events = s.events[:0]
	s.clock.Advance(dt, func() bool {
		ev, ok := s.field.Step()
		if ok {
			s.events = append(s.events, ev)
		}
		return ok
	})
	return s.events
}
