package ecs

// store is the dense component storage for one kind, keyed by entity id with
// a sparse index slice. Swap-remove keeps iteration dense.
type store[T any] struct {
	ids    []entityID
	values []*T
	sparse []int
}

// eraser lets the world clear a destroyed entity's component without knowing
// the value type.
type eraser interface {
	erase(id entityID)
	has(id entityID) bool
}

func (s *store[T]) index(id entityID) (int, bool) {
	if id == 0 || int(id) > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.ids) || s.ids[idx] != id {
		return 0, false
	}
	return idx, true
}

func (s *store[T]) has(id entityID) bool {
	_, ok := s.index(id)
	return ok
}

func (s *store[T]) get(id entityID) (*T, bool) {
	idx, ok := s.index(id)
	if !ok {
		return nil, false
	}
	return s.values[idx], true
}

func (s *store[T]) set(id entityID, v *T) {
	for int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx, ok := s.index(id); ok {
		s.values[idx] = v
		return
	}
	s.ids = append(s.ids, id)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.ids) - 1
}

func (s *store[T]) erase(id entityID) {
	idx, ok := s.index(id)
	if !ok {
		return
	}
	last := len(s.ids) - 1
	lastID := s.ids[last]

	s.ids[idx] = lastID
	s.values[idx] = s.values[last]
	s.sparse[lastID-1] = idx

	s.ids = s.ids[:last]
	s.values = s.values[:last]
	s.sparse[id-1] = -1
}
