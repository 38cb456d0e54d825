// Package selection provides the checked-rows set shared by every list view.
package selection

// Set is an insertion-ordered set of row ids. The zero value is not usable;
// create one with New.
type Set[ID comparable] struct {
	order []ID
	index map[ID]struct{}
}

// New returns a set pre-populated with ids (duplicates are ignored).
func New[ID comparable](ids ...ID) *Set[ID] {
	s := &Set[ID]{index: make(map[ID]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Has reports whether id is selected.
func (s *Set[ID]) Has(id ID) bool {
	_, ok := s.index[id]
	return ok
}

// Add selects id. It returns false when id was already selected.
func (s *Set[ID]) Add(id ID) bool {
	if s.Has(id) {
		return false
	}
	s.index[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// Remove deselects id. It returns false when id was not selected.
func (s *Set[ID]) Remove(id ID) bool {
	if !s.Has(id) {
		return false
	}
	delete(s.index, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Toggle flips the selection of id and returns the new state.
func (s *Set[ID]) Toggle(id ID) bool {
	if s.Remove(id) {
		return false
	}
	s.Add(id)
	return true
}

// SetAll selects or deselects every id in ids, leaving other rows untouched.
// This is the header checkbox applied to the currently filtered rows.
func (s *Set[ID]) SetAll(ids []ID, checked bool) {
	for _, id := range ids {
		if checked {
			s.Add(id)
		} else {
			s.Remove(id)
		}
	}
}

// AllSelected reports whether every id in ids is selected. An empty ids
// slice is never "all selected".
func (s *Set[ID]) AllSelected(ids []ID) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// Len returns the number of selected ids.
func (s *Set[ID]) Len() int { return len(s.order) }

// Clear deselects everything.
func (s *Set[ID]) Clear() {
	s.order = nil
	s.index = make(map[ID]struct{})
}

// IDs returns the selected ids in selection order.
func (s *Set[ID]) IDs() []ID {
	out := make([]ID, len(s.order))
	copy(out, s.order)
	return out
}
