package blocks

// DragState tracks one drag gesture over the block list. The counter only
// drives the drop-zone highlight; the sequence changes on Drop alone.
type DragState struct {
	source  int
	active  bool
	counter int
}

func (s *DragState) Start(source int) {
	s.source = source
	s.active = true
	s.counter = 0
}

func (s *DragState) Enter() {
	if s.active {
		s.counter++
	}
}

func (s *DragState) Leave() {
	if s.active && s.counter > 0 {
		s.counter--
	}
}

// Highlighted reports whether a drop zone is currently hovered.
func (s *DragState) Highlighted() bool { return s.active && s.counter > 0 }

func (s *DragState) Active() bool { return s.active }

func (s *DragState) Source() int { return s.source }

// finish resets the state and returns the recorded source.
func (s *DragState) finish() (int, bool) {
	source, active := s.source, s.active
	*s = DragState{}
	return source, active
}
