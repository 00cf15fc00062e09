package ecs

// Queue is a FIFO of values produced during a tick and drained by whoever
// consumes them.
type Queue[T any] struct {
	items []T
}

func (q *Queue[T]) Push(v T) {
	if q == nil {
		return
	}
	q.items = append(q.items, v)
}

func (q *Queue[T]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns every queued value in push order and empties the queue. The
// returned slice is owned by the caller.
func (q *Queue[T]) Drain() []T {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *Queue[T]) Clear() {
	if q == nil {
		return
	}
	q.items = nil
}
