package model

// MaxID is the largest id accepted from a data file: the largest integer a
// JSON number holds exactly.
const MaxID = 1 << 53

// Sequence hands out monotonically increasing ids for one entity type.
// The zero value starts at 1.
type Sequence struct {
	next int
}

// Next returns the next unused id and advances the sequence.
func (s *Sequence) Next() int {
	if s.next < 1 {
		s.next = 1
	}
	id := s.next
	s.next++
	return id
}

// Observe records an explicitly assigned id so it is never handed out again.
// Ids outside 1..MaxID are ignored.
func (s *Sequence) Observe(id int) {
	if s.next < 1 {
		s.next = 1
	}
	if id >= s.next && int64(id) <= MaxID {
		s.next = id + 1
	}
}

// Peek returns the id Next would return, without advancing.
func (s *Sequence) Peek() int {
	if s.next < 1 {
		return 1
	}
	return s.next
}

// Counters groups the per-type sequences of one dataset.
type Counters struct {
	Users    Sequence
	Projects Sequence
	Tasks    Sequence
}

// Reset rewinds all sequences to their initial state.
func (c *Counters) Reset() {
	*c = Counters{}
}
