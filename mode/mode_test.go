package mode

import "testing"

func TestStackStartsNonEmpty(t *testing.T) {
	s := NewStack()
	if s.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", s.Depth())
	}
	if s.Peek() != Normal {
		t.Errorf("expected Normal, got %v", s.Peek())
	}
}

func TestPushPop(t *testing.T) {
	s := NewStack(Normal, Paused)
	if s.Peek() != Paused {
		t.Fatalf("expected Paused on top, got %v", s.Peek())
	}

	got := s.Pop()
	if got != Paused {
		t.Errorf("Pop returned %v, want Paused", got)
	}
	if s.Peek() != Normal {
		t.Errorf("expected Normal after pop, got %v", s.Peek())
	}

	s.Push(Table)
	s.Push(Paused)
	if s.Depth() != 3 {
		t.Errorf("expected depth 3, got %d", s.Depth())
	}
	if s.Pop() != Paused || s.Pop() != Table {
		t.Error("pops did not unwind in order")
	}
}

func TestPopLastEntryIsNoOp(t *testing.T) {
	s := NewStack(Table)
	for i := 0; i < 5; i++ {
		got := s.Pop()
		if got != Table {
			t.Fatalf("pop %d returned %v, want Table", i, got)
		}
		if s.Depth() != 1 {
			t.Fatalf("pop %d left depth %d, want 1", i, s.Depth())
		}
	}
}

func TestDepthNeverBelowOne(t *testing.T) {
	s := NewStack(Normal, Paused)
	ops := []func(){
		func() { s.Push(Table) },
		func() { s.Pop() },
		func() { s.Pop() },
		func() { s.Pop() },
		func() { s.Push(Edit) },
		func() { s.Pop() },
		func() { s.Pop() },
		func() { s.Pop() },
	}
	for i, op := range ops {
		op()
		if s.Depth() < 1 {
			t.Fatalf("after op %d depth fell to %d", i, s.Depth())
		}
	}
}

func TestModeString(t *testing.T) {
	cases := []struct {
		m    Mode
		want string
	}{
		{Normal, "Normal"},
		{Edit, "Edit"},
		{Table, "Table"},
		{Paused, "Paused"},
		{Mode(99), "Unknown"},
	}
	for _, c := range cases {
		if got := c.m.String(); got != c.want {
			t.Errorf("%d.String() = %q, want %q", int(c.m), got, c.want)
		}
	}
}
