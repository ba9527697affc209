package anim

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"testing"

	"github.com/kettek/apng"
)

func animatedGIFBytes(t *testing.T, delays []int) []byte {
	t.Helper()

	g := &gif.GIF{}
	for i, d := range delays {
		pm := image.NewPaletted(image.Rect(0, 0, 8, 8), palette.Plan9)
		for p := range pm.Pix {
			pm.Pix[p] = uint8(i*20 + 1)
		}
		g.Image = append(g.Image, pm)
		g.Delay = append(g.Delay, d)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	return buf.Bytes()
}

func animatedAPNGBytes(t *testing.T, n int) []byte {
	t.Helper()

	a := apng.APNG{}
	for i := 0; i < n; i++ {
		a.Frames = append(a.Frames, apng.Frame{
			Image:            solidImage(8, 8, color.RGBA{R: uint8(i * 50), A: 255}),
			DelayNumerator:   5,
			DelayDenominator: 100,
		})
	}

	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		t.Fatalf("encode apng: %v", err)
	}
	return buf.Bytes()
}

func stillPNGBytes(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(8, 8, color.RGBA{G: 255, A: 255})); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDecode_AnimatedGIF(t *testing.T) {
	still, frames, err := decode(animatedGIFBytes(t, []int{5, 0, 7}))
	if err != nil {
		t.Fatalf("decode() error: %v", err)
	}
	if still != nil {
		t.Error("animated gif should not decode as a still")
	}
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}

	// GIF delays are hundredths of a second, preserved as rationals.
	wantNums := []int{5, 0, 7}
	for i, f := range frames {
		if f.delayNum != wantNums[i] || f.delayDen != 100 {
			t.Errorf("frame %d delay = %d/%d, want %d/100", i, f.delayNum, f.delayDen, wantNums[i])
		}
		b := f.img.Bounds()
		if b.Dx() != 8 || b.Dy() != 8 {
			t.Errorf("frame %d composited to %dx%d, want 8x8 canvas", i, b.Dx(), b.Dy())
		}
	}
}

func TestDecode_AnimatedAPNG(t *testing.T) {
	still, frames, err := decode(animatedAPNGBytes(t, 3))
	if err != nil {
		t.Fatalf("decode() error: %v", err)
	}
	if still != nil {
		t.Error("animated png should not decode as a still")
	}
	if len(frames) < 2 {
		t.Fatalf("got %d frames, want at least 2", len(frames))
	}
	for i, f := range frames {
		if f.delayNum != 5 || f.delayDen != 100 {
			t.Errorf("frame %d delay = %d/%d, want 5/100", i, f.delayNum, f.delayDen)
		}
	}
}

func TestDecode_SingleFrameGIFIsStill(t *testing.T) {
	still, frames, err := decode(animatedGIFBytes(t, []int{10}))
	if err != nil {
		t.Fatalf("decode() error: %v", err)
	}
	if frames != nil {
		t.Errorf("single-frame gif should carry no animation frames, got %d", len(frames))
	}
	if still == nil {
		t.Error("single-frame gif should decode as a still")
	}
}

func TestDecode_StillPNG(t *testing.T) {
	still, frames, err := decode(stillPNGBytes(t))
	if err != nil {
		t.Fatalf("decode() error: %v", err)
	}
	if frames != nil {
		t.Error("plain png should carry no animation frames")
	}
	if still == nil {
		t.Fatal("plain png should decode as a still")
	}
}

func TestDecode_UnrecognizedBytes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "garbage", data: []byte("definitely not an image")},
		{name: "truncated gif header", data: []byte("GIF89a\x08\x00")},
		{name: "empty", data: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			still, frames, err := decode(tt.data)
			if !errors.Is(err, ErrDecode) {
				t.Errorf("decode() error = %v, want ErrDecode", err)
			}
			if still != nil || frames != nil {
				t.Error("failed decode must not return partial results")
			}
		})
	}
}

func TestCompositeGIF_DisposalBackground(t *testing.T) {
	// Second frame only covers the top half with background disposal in
	// between; the composited second frame must still be a full canvas.
	g := &gif.GIF{
		Config: image.Config{Width: 8, Height: 8},
	}
	full := image.NewPaletted(image.Rect(0, 0, 8, 8), palette.Plan9)
	for p := range full.Pix {
		full.Pix[p] = 5
	}
	half := image.NewPaletted(image.Rect(0, 0, 8, 4), palette.Plan9)
	for p := range half.Pix {
		half.Pix[p] = 9
	}
	g.Image = []*image.Paletted{full, half}
	g.Delay = []int{5, 5}
	g.Disposal = []byte{gif.DisposalBackground, gif.DisposalNone}

	frames := compositeGIF(g)
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	for i, f := range frames {
		b := f.img.Bounds()
		if b.Dx() != 8 || b.Dy() != 8 {
			t.Errorf("frame %d bounds %v, want full 8x8 canvas", i, b)
		}
	}
}
