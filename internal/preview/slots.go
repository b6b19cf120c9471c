package preview

// Slots holds the current preview and exactly one previous generation.
// It is not safe for concurrent use; the coordinator's tick owns it.
type Slots struct {
	current  *Preview
	previous *Preview
}

// Install makes p current, demotes the old current to previous and
// releases whatever was previous before. Buffers are only ever released
// on the oldest generation, never on one that is or was just displayed.
func (s *Slots) Install(p *Preview) {
	evicted := s.previous
	s.previous = s.current
	s.current = p

	if evicted != nil && evicted != s.previous && evicted != s.current {
		evicted.Release()
	}
}

// Current returns the newest preview, or nil
func (s *Slots) Current() *Preview {
	return s.current
}

// Previous returns the preview displayed before Current, or nil
func (s *Slots) Previous() *Preview {
	return s.previous
}

// CurrentPath returns the path of the current preview, or "" if none
func (s *Slots) CurrentPath() (string, bool) {
	if s.current == nil {
		return "", false
	}
	return s.current.Path, true
}
