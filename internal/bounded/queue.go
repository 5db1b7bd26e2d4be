package bounded

import "iter"

// Queue is a circular FIFO holding at most Cap elements.
//
// The ring grows by doubling up to the ceiling, so a queue with a large
// capacity costs little until it is used.
type Queue[T any] struct {
	buf   []T
	head  int
	count int
	limit int
}

// NewQueue creates an empty queue. A negative capacity is treated as 0.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Queue[T]{limit: capacity}
}

// Append adds v at the tail. Returns false, leaving the queue unchanged,
// if full.
func (q *Queue[T]) Append(v T) bool {
	if q.count >= q.limit {
		return false
	}
	if q.count == len(q.buf) {
		q.resize()
	}
	q.buf[(q.head+q.count)%len(q.buf)] = v
	q.count++
	return true
}

// resize doubles the ring (bounded by limit) and unwraps it so head is 0.
func (q *Queue[T]) resize() {
	n := max(2*len(q.buf), 4)
	n = min(n, q.limit)
	next := make([]T, n)
	for i := 0; i < q.count; i++ {
		next[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = next
	q.head = 0
}

// Serve removes and returns the head element.
func (q *Queue[T]) Serve() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	v := q.buf[q.head]
	// Release the slot so the ring does not pin v.
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	if q.count == 0 {
		q.head = 0
	}
	return v, true
}

// Peek returns the head element without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if q.count == 0 {
		var zero T
		return zero, false
	}
	return q.buf[q.head], true
}

// All iterates head to tail without modifying the queue.
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < q.count; i++ {
			if !yield(q.buf[(q.head+i)%len(q.buf)]) {
				return
			}
		}
	}
}

// Len returns the number of elements.
func (q *Queue[T]) Len() int { return q.count }

// Cap returns the capacity.
func (q *Queue[T]) Cap() int { return q.limit }

// Empty reports whether the queue holds no elements.
func (q *Queue[T]) Empty() bool { return q.count == 0 }

// Full reports whether Append would be rejected.
func (q *Queue[T]) Full() bool { return q.count >= q.limit }

// Clear removes every element.
func (q *Queue[T]) Clear() {
	clear(q.buf)
	q.head = 0
	q.count = 0
}
