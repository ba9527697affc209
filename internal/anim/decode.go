// Package anim turns raw compressed image bytes into a display-ready
// terminal image handle, either a single still frame or a multi-frame
// animation with per-frame timing.
package anim

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"

	_ "image/jpeg" // still-image decoders for the fallback path
	_ "image/png"

	"github.com/kettek/apng"
	_ "golang.org/x/image/webp" // WebP stills
)

// ErrDecode reports bytes that no registered decoder recognizes, or that
// a decoder rejected as corrupt. Retrying with the same bytes cannot
// succeed; callers must fetch different bytes instead.
var ErrDecode = errors.New("unrecognized or corrupt image data")

// decodedFrame is one raw frame plus its display duration as emitted by
// the source container: a rational number of seconds (num/den). Frames
// are consumed by preprocessing and not retained.
type decodedFrame struct {
	img      image.Image
	delayNum int
	delayDen int
}

// decode sniffs the container format. Animated containers are tried
// first, in a fixed order, because only they expose per-frame timing; a
// generic still decode is the fallback. An animated container that yields
// at most one usable frame is re-read as a still so single-frame
// "animations" carry no playback bookkeeping.
func decode(data []byte) (image.Image, []decodedFrame, error) {
	if g, err := gif.DecodeAll(bytes.NewReader(data)); err == nil {
		if frames := compositeGIF(g); len(frames) > 1 {
			return nil, frames, nil
		}
	} else if a, err := apng.DecodeAll(bytes.NewReader(data)); err == nil {
		if frames := compositeAPNG(a); len(frames) > 1 {
			return nil, frames, nil
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil, nil
}

// compositeGIF renders GIF frames onto a full-size canvas, respecting
// disposal modes, so partial-update frames become complete images.
// GIF delays are in hundredths of a second.
func compositeGIF(g *gif.GIF) []decodedFrame {
	if len(g.Image) == 0 {
		return nil
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Dx(), b.Dy()
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	frames := make([]decodedFrame, 0, len(g.Image))

	for i, frame := range g.Image {
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		var prev *image.RGBA
		if disposal == gif.DisposalPrevious {
			prev = cloneRGBA(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		delay := 0
		if i < len(g.Delay) {
			delay = g.Delay[i]
		}
		frames = append(frames, decodedFrame{
			img:      cloneRGBA(canvas),
			delayNum: delay,
			delayDen: 100,
		})

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			if prev != nil {
				canvas = prev
			}
		}
	}

	return frames
}

// compositeAPNG renders APNG frames onto a full-size canvas, respecting
// dispose and blend operations. The default image, when marked as such,
// is not part of the animation and is skipped. APNG delays are rational
// seconds; a zero denominator means hundredths per the format.
func compositeAPNG(a apng.APNG) []decodedFrame {
	if len(a.Frames) == 0 {
		return nil
	}

	first := a.Frames[0].Image.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, first.Dx(), first.Dy()))
	frames := make([]decodedFrame, 0, len(a.Frames))

	for _, frame := range a.Frames {
		if frame.IsDefault {
			continue
		}

		fb := frame.Image.Bounds()
		target := image.Rect(
			frame.XOffset,
			frame.YOffset,
			frame.XOffset+fb.Dx(),
			frame.YOffset+fb.Dy(),
		)

		var prev *image.RGBA
		if frame.DisposeOp == apng.DISPOSE_OP_PREVIOUS {
			prev = cloneRGBA(canvas)
		}

		op := draw.Over
		if frame.BlendOp == apng.BLEND_OP_SOURCE {
			op = draw.Src
		}
		draw.Draw(canvas, target, frame.Image, fb.Min, op)

		frames = append(frames, decodedFrame{
			img:      cloneRGBA(canvas),
			delayNum: int(frame.DelayNumerator),
			delayDen: int(frame.DelayDenominator),
		})

		switch frame.DisposeOp {
		case apng.DISPOSE_OP_BACKGROUND:
			draw.Draw(canvas, target, image.Transparent, image.Point{}, draw.Src)
		case apng.DISPOSE_OP_PREVIOUS:
			if prev != nil {
				canvas = prev
			}
		}
	}

	return frames
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
