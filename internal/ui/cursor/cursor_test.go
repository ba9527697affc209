package cursor

import "testing"

func TestMoveClampsToBounds(t *testing.T) {
	c := New(0)

	c.Move(-3, 10, 5)
	if c.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0", c.Pos())
	}

	c.Move(100, 10, 5)
	if c.Pos() != 9 {
		t.Errorf("Pos() = %d, want 9", c.Pos())
	}
}

func TestMoveWrapAround(t *testing.T) {
	c := New(0)

	// Up from the first item lands on the last.
	c.MoveWrap(-1, 10, 5)
	if c.Pos() != 9 {
		t.Errorf("Pos() = %d, want 9", c.Pos())
	}

	// Down from the last wraps back to the first.
	c.MoveWrap(1, 10, 5)
	if c.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0", c.Pos())
	}
}

func TestMoveWrapAdjustsOffset(t *testing.T) {
	c := New(0)

	c.MoveWrap(-1, 20, 5)
	if c.Pos() != 19 {
		t.Fatalf("Pos() = %d, want 19", c.Pos())
	}
	start, end := c.VisibleRange(20, 5)
	if c.Pos() < start || c.Pos() >= end {
		t.Errorf("cursor %d not in visible range [%d, %d)", c.Pos(), start, end)
	}
}

func TestMoveEmptyListIsNoop(t *testing.T) {
	c := New(0)
	c.Move(1, 0, 5)
	c.MoveWrap(-1, 0, 5)
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("cursor moved on empty list: pos=%d offset=%d", c.Pos(), c.Offset())
	}
}

func TestJumpAndJumpEnd(t *testing.T) {
	c := New(2)

	c.Jump(7, 10, 4)
	if c.Pos() != 7 {
		t.Errorf("Pos() = %d, want 7", c.Pos())
	}

	c.JumpEnd(10, 4)
	if c.Pos() != 9 {
		t.Errorf("Pos() = %d, want 9", c.Pos())
	}
	if c.Offset() != 6 {
		t.Errorf("Offset() = %d, want 6", c.Offset())
	}

	c.JumpStart()
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("JumpStart: pos=%d offset=%d", c.Pos(), c.Offset())
	}
}

func TestScrollMarginKeepsContext(t *testing.T) {
	c := New(2)

	// Move down past the viewport edge; offset should keep margin rows below.
	for i := 0; i < 6; i++ {
		c.Move(1, 20, 8)
	}
	if c.Pos() != 6 {
		t.Fatalf("Pos() = %d, want 6", c.Pos())
	}
	if c.Offset() != 1 {
		t.Errorf("Offset() = %d, want 1", c.Offset())
	}
}

func TestClampToBounds(t *testing.T) {
	c := New(0)
	c.Jump(9, 10, 5)

	if !c.ClampToBounds(4) {
		t.Error("ClampToBounds(4) = false, want true")
	}
	if c.Pos() != 3 {
		t.Errorf("Pos() = %d, want 3", c.Pos())
	}

	if c.ClampToBounds(4) {
		t.Error("second ClampToBounds(4) = true, want false")
	}

	c.ClampToBounds(0)
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("ClampToBounds(0): pos=%d offset=%d", c.Pos(), c.Offset())
	}
}

func TestVisibleRange(t *testing.T) {
	c := New(0)

	start, end := c.VisibleRange(3, 10)
	if start != 0 || end != 3 {
		t.Errorf("VisibleRange = [%d, %d), want [0, 3)", start, end)
	}

	c.Jump(15, 20, 5)
	start, end = c.VisibleRange(20, 5)
	if end-start != 5 {
		t.Errorf("visible window size = %d, want 5", end-start)
	}
	if c.Pos() < start || c.Pos() >= end {
		t.Errorf("cursor %d outside [%d, %d)", c.Pos(), start, end)
	}
}

func TestHandleKey(t *testing.T) {
	tests := []struct {
		key     string
		wantPos int
		handled bool
	}{
		{"j", 1, true},
		{"down", 2, true},
		{"k", 1, true},
		{"up", 0, true},
		{"k", 9, true}, // wraps
		{"g", 0, true},
		{"G", 9, true},
		{"x", 9, false},
	}

	c := New(0)
	for _, tt := range tests {
		handled := c.HandleKey(tt.key, 10, 5)
		if handled != tt.handled {
			t.Errorf("HandleKey(%q) = %v, want %v", tt.key, handled, tt.handled)
		}
		if c.Pos() != tt.wantPos {
			t.Errorf("after %q: Pos() = %d, want %d", tt.key, c.Pos(), tt.wantPos)
		}
	}
}
