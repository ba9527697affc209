package imgproto

import (
	"strings"
	"testing"
)

func TestSixelPrepareAndPlace(t *testing.T) {
	s := &Sixel{images: make(map[uint32]string), cellW: 8, cellH: 16}

	cmd, err := s.Prepare(createTestImage(16, 16), 1)
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	if cmd != "" {
		t.Errorf("sixel Prepare should return no transmit command, got %q", cmd)
	}

	place := s.Place(1, 2, 3, 4, 4)
	if place == "" {
		t.Fatal("Place() returned empty string for prepared image")
	}
	if !strings.Contains(place, "\x1b[2;3H") {
		t.Errorf("placement should move cursor to row 2 col 3, got %q", place)
	}
	if !strings.HasPrefix(place, "\x1b[s") {
		t.Error("placement should save the cursor first")
	}
}

func TestSixelPlace_UnknownID(t *testing.T) {
	s := &Sixel{images: make(map[uint32]string), cellW: 8, cellH: 16}

	if got := s.Place(99, 1, 1, 4, 4); got != "" {
		t.Errorf("Place() for unknown ID = %q, want empty", got)
	}
}

func TestSixelPlace_OutputAlwaysUnique(t *testing.T) {
	s := &Sixel{images: make(map[uint32]string), cellW: 8, cellH: 16}
	if _, err := s.Prepare(createTestImage(8, 8), 1); err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}

	// Identical placements must differ so Bubble Tea's diff renderer
	// never skips re-emitting the sixel data.
	a := s.Place(1, 1, 1, 4, 4)
	b := s.Place(1, 1, 1, 4, 4)
	if a == b {
		t.Error("consecutive Place() calls should produce distinct output")
	}
}

func TestSixelDelete_DropsCachedEncoding(t *testing.T) {
	s := &Sixel{images: make(map[uint32]string), cellW: 8, cellH: 16}
	if _, err := s.Prepare(createTestImage(8, 8), 5); err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}

	if cmd := s.Delete(5); cmd != "" {
		t.Errorf("sixel Delete should return no command, got %q", cmd)
	}
	if got := s.Place(5, 1, 1, 4, 4); got != "" {
		t.Error("Place() after Delete should return empty string")
	}
}

func TestSixelTargetPixelSize_LeavesScrollMargin(t *testing.T) {
	s := &Sixel{cellW: 10, cellH: 20}

	w, h := s.TargetPixelSize(8, 4)
	if w != 80 {
		t.Errorf("pixel width = %d, want 80", w)
	}
	// One row of vertical margin keeps the terminal from scrolling.
	if h != 60 {
		t.Errorf("pixel height = %d, want 60", h)
	}
}
