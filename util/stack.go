package util

// Stack is a LIFO stack. The zero value is ready to use.
type Stack[T any] struct {
	items []T
}

// Push adds items in order, so the last one is popped first.
func (s *Stack[T]) Push(items ...T) {
	s.items = append(s.items, items...)
}

// Pop removes the top item. ok is false when the stack is empty.
func (s *Stack[T]) Pop() (item T, ok bool) {
	n := len(s.items)
	if n == 0 {
		return item, false
	}

	item = s.items[n-1]
	var zero T
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	return item, true
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Clear drops every item.
func (s *Stack[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}
