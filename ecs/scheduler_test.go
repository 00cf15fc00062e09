package ecs

import (
	"slices"
	"testing"
)

func TestSchedulerRunsInOrder(t *testing.T) {
	var calls []string
	step := func(name string) System {
		return SystemFunc(func(*World) { calls = append(calls, name) })
	}

	s := NewScheduler(step("input"), nil, step("physics"))
	s.Add(step("resolve"))
	s.Add(nil)
	if s.Len() != 3 {
		t.Fatalf("nil systems should be skipped, got %d", s.Len())
	}

	s.Update(NewWorld())
	if want := []string{"input", "physics", "resolve"}; !slices.Equal(calls, want) {
		t.Fatalf("expected %v, got %v", want, calls)
	}
}

func TestQueueDrain(t *testing.T) {
	var q Queue[int]
	if q.Drain() != nil {
		t.Fatalf("empty queue should drain to nil")
	}
	q.Push(1)
	q.Push(2)
	if q.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", q.Len())
	}
	got := q.Drain()
	q.Push(3)
	if !slices.Equal(got, []int{1, 2}) {
		t.Fatalf("expected [1 2], got %v", got)
	}
	if q.Len() != 1 {
		t.Fatalf("drain should empty the queue")
	}
	q.Clear()
	if q.Len() != 0 {
		t.Fatalf("clear should empty the queue")
	}
}
