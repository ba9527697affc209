package anim

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeProto records protocol calls and produces tag strings instead of
// escape sequences so tests can assert on structure.
type fakeProto struct {
	mu       sync.Mutex
	prepared map[uint32]image.Point
	deleted  []uint32
	fail     bool
}

func newFakeProto() *fakeProto {
	return &fakeProto{prepared: make(map[uint32]image.Point)}
}

func (p *fakeProto) Prepare(img image.Image, id uint32) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return "", errors.New("prepare failed")
	}
	b := img.Bounds()
	p.prepared[id] = image.Pt(b.Dx(), b.Dy())
	return fmt.Sprintf("T%d;", id), nil
}

func (p *fakeProto) Place(id uint32, row, col, _, _ int) string {
	return fmt.Sprintf("P%d@%d,%d;", id, row, col)
}

func (p *fakeProto) Delete(id uint32) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, id)
	return fmt.Sprintf("D%d;", id)
}

func (p *fakeProto) Placeholder(width, height int) string {
	return strings.Repeat(" ", width*height)
}

func (p *fakeProto) TargetPixelSize(widthCells, heightCells int) (int, int) {
	return widthCells * 8, heightCells * 16
}

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func TestNormalizeDelay(t *testing.T) {
	tests := []struct {
		name     string
		num, den int
		want     time.Duration
	}{
		{name: "gif hundredths", num: 5, den: 100, want: 50 * time.Millisecond},
		{name: "apng tenths", num: 1, den: 10, want: 100 * time.Millisecond},
		{name: "whole second", num: 1, den: 1, want: time.Second},
		{name: "zero numerator gets default", num: 0, den: 100, want: defaultFrameDelay},
		{name: "zero denominator means hundredths", num: 7, den: 0, want: 70 * time.Millisecond},
		{name: "zero over zero gets default", num: 0, den: 0, want: defaultFrameDelay},
		{name: "negative gets default", num: -3, den: 100, want: defaultFrameDelay},
		{name: "sub-millisecond rounds to default", num: 1, den: 2000, want: defaultFrameDelay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeDelay(tt.num, tt.den); got != tt.want {
				t.Errorf("normalizeDelay(%d, %d) = %v, want %v", tt.num, tt.den, got, tt.want)
			}
		})
	}
}

func TestFrameEncodeFor_FitsAndTracksArea(t *testing.T) {
	proto := newFakeProto()
	// 160x80 source into a 10x10-cell area (80x160 px target).
	f := newFrame(solidImage(160, 80, color.RGBA{R: 255, A: 255}), proto)

	area := Area{Width: 10, Height: 10}
	if err := f.encodeFor(area); err != nil {
		t.Fatalf("encodeFor() error: %v", err)
	}

	size, ok := proto.prepared[f.id]
	if !ok {
		t.Fatal("frame was not prepared with the protocol")
	}
	// Aspect-preserving fit: width-bound, 80x40 px.
	if size.X != 80 || size.Y != 40 {
		t.Errorf("prepared size = %dx%d, want 80x40", size.X, size.Y)
	}
	if f.cols != 10 {
		t.Errorf("cols = %d, want 10", f.cols)
	}
	if f.rows != 3 {
		t.Errorf("rows = %d, want 3 (40px over 16px cells, rounded up)", f.rows)
	}

	if f.needsResize(area) {
		t.Error("needsResize for the encoded area should be false")
	}
	if !f.needsResize(Area{Width: 5, Height: 5}) {
		t.Error("needsResize for a different area should be true")
	}
}

func TestFrameRender_TransmitsOnce(t *testing.T) {
	proto := newFakeProto()
	f := newFrame(solidImage(8, 8, color.RGBA{A: 255}), proto)
	if err := f.encodeFor(Area{Width: 4, Height: 4}); err != nil {
		t.Fatalf("encodeFor() error: %v", err)
	}

	first := f.Render(2, 3)
	if !strings.HasPrefix(first, fmt.Sprintf("T%d;", f.id)) {
		t.Errorf("first render should carry the transmit command, got %q", first)
	}
	if !strings.Contains(first, fmt.Sprintf("P%d@2,3;", f.id)) {
		t.Errorf("first render should place the frame, got %q", first)
	}

	second := f.Render(2, 3)
	if strings.Contains(second, "T") {
		t.Errorf("second render should not re-transmit, got %q", second)
	}
}

func TestEncodeAll_PreservesFrameOrder(t *testing.T) {
	proto := newFakeProto()

	// Distinctly sized sources so each slot is distinguishable afterwards.
	frames := make([]*Frame, 16)
	for i := range frames {
		frames[i] = newFrame(solidImage(8*(i+1), 8, color.RGBA{A: 255}), proto)
	}

	area := Area{Width: 100, Height: 100}
	if err := encodeAll(frames, area); err != nil {
		t.Fatalf("encodeAll() error: %v", err)
	}

	for i, f := range frames {
		size := proto.prepared[f.id]
		want := 8 * (i + 1)
		if size.X != want {
			t.Errorf("slot %d holds a frame of width %d, want %d", i, size.X, want)
		}
		if f.needsResize(area) {
			t.Errorf("frame %d not encoded for the target area", i)
		}
	}
}

func TestEncodeAll_FirstErrorFailsBatch(t *testing.T) {
	proto := newFakeProto()
	proto.fail = true

	frames := []*Frame{
		newFrame(solidImage(8, 8, color.RGBA{A: 255}), proto),
		newFrame(solidImage(8, 8, color.RGBA{A: 255}), proto),
	}

	err := encodeAll(frames, Area{Width: 4, Height: 4})
	if err == nil {
		t.Fatal("encodeAll() should fail when a frame cannot encode")
	}
	if !errors.Is(err, ErrEncode) {
		t.Errorf("error %v should wrap ErrEncode", err)
	}
}
