package bounded

// Stack is a LIFO container holding at most Cap elements.
type Stack[T any] struct {
	items []T
	cap   int
}

// NewStack creates an empty stack. A negative capacity is treated as 0.
func NewStack[T any](capacity int) *Stack[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Stack[T]{cap: capacity}
}

// Push adds v on top. Returns false, leaving the stack unchanged, if full.
func (s *Stack[T]) Push(v T) bool {
	if len(s.items) >= s.cap {
		return false
	}
	s.items = append(s.items, v)
	return true
}

// Pop removes and returns the top element.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	n := len(s.items)
	if n == 0 {
		return zero, false
	}
	v := s.items[n-1]
	// Release the slot so the backing array does not pin v.
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	return v, true
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the number of elements.
func (s *Stack[T]) Len() int { return len(s.items) }

// Cap returns the capacity.
func (s *Stack[T]) Cap() int { return s.cap }

// Empty reports whether the stack holds no elements.
func (s *Stack[T]) Empty() bool { return len(s.items) == 0 }

// Full reports whether Push would be rejected.
func (s *Stack[T]) Full() bool { return len(s.items) >= s.cap }

// At returns the element at position i counted from the bottom (0 is the
// oldest push).
func (s *Stack[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(s.items) {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// Clear removes every element.
func (s *Stack[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}
