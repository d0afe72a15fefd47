package scope

import (
	"testing"

	"github.com/cwbudde/goexpr/internal/value"
)

func TestPushPopTop(t *testing.T) {
	s := New()
	s.Push(value.Integer(1))
	s.Push(value.Integer(2))

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if got := s.Top(); got.AsInt() != 2 {
		t.Errorf("Top() = %v, want 2", got)
	}
	if got := s.Pop(); got.AsInt() != 2 {
		t.Errorf("Pop() = %v, want 2", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() after Pop = %d, want 1", s.Len())
	}
}

func TestEnterLeaveDetectsCycle(t *testing.T) {
	s := New()
	progA := new(int)
	progB := new(int)

	if !s.Enter(progA) {
		t.Fatalf("Enter(progA) = false on first entry, want true")
	}
	if !s.Enter(progB) {
		t.Fatalf("Enter(progB) = false on first entry, want true")
	}
	if s.Enter(progA) {
		t.Errorf("Enter(progA) = true on re-entry, want false (cycle)")
	}

	s.Leave()
	s.Leave()
	if !s.Enter(progA) {
		t.Errorf("Enter(progA) after both Leave = false, want true")
	}
}

func TestActivePathOrder(t *testing.T) {
	s := New()
	a, b := new(int), new(int)
	s.Enter(a)
	s.Enter(b)
	path := s.ActivePath()
	if len(path) != 2 || path[0] != any(a) || path[1] != any(b) {
		t.Errorf("ActivePath() = %v, want [a, b]", path)
	}
}
