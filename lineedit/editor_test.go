package lineedit

import "testing"

func TestInsertAndDelete(t *testing.T) {
	e := New()
	for _, ch := range "got" {
		e.Insert(ch)
	}
	if e.Text() != "got" || e.Cursor() != 3 {
		t.Fatalf("text = %q cursor = %d", e.Text(), e.Cursor())
	}

	e.Left()
	e.Insert('a')
	if e.Text() != "goat" {
		t.Errorf("insert mid-line = %q, want goat", e.Text())
	}

	e.DeleteBackward()
	if e.Text() != "got" || e.Cursor() != 2 {
		t.Errorf("after delete: text = %q cursor = %d", e.Text(), e.Cursor())
	}
}

func TestDeleteAtStartIsNoop(t *testing.T) {
	e := New()
	e.Set("x")
	e.Home()
	if e.DeleteBackward() {
		t.Error("DeleteBackward at start should report false")
	}
	if e.Text() != "x" {
		t.Errorf("text = %q, want x", e.Text())
	}
}

func TestCursorBounds(t *testing.T) {
	e := New()
	e.Set("ab")
	if e.Right() {
		t.Error("Right at end should report false")
	}
	e.Home()
	if e.Left() {
		t.Error("Left at start should report false")
	}
}

func TestCursorSplit(t *testing.T) {
	e := New()
	e.Set("go.dev")
	e.Left()
	e.Left()
	if got := e.BeforeCursor(); got != "go.d" {
		t.Errorf("BeforeCursor = %q", got)
	}
	if got := e.AfterCursor(); got != "ev" {
		t.Errorf("AfterCursor = %q", got)
	}
}

func TestUnicode(t *testing.T) {
	e := New()
	e.Set("héllo")
	e.Home()
	e.Right()
	e.Right()
	e.DeleteBackward()
	if e.Text() != "hllo" {
		t.Errorf("text = %q, want hllo", e.Text())
	}
}
