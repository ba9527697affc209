package anim

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nfnt/resize"

	"github.com/tlecomte/glimpse/internal/imgproto"
)

// ErrEncode reports a frame that failed to resize or encode for the
// terminal. Preprocessing aborts on the first such failure; a gapped
// animation is never constructed.
var ErrEncode = errors.New("encode frame")

// defaultFrameDelay replaces zero-valued source durations. Many encoders
// write 0 to mean "decoder default".
const defaultFrameDelay = 100 * time.Millisecond

// Global image ID counter, shared with whatever else talks to the
// terminal graphics protocol in this process.
var nextFrameID uint32

func nextID() uint32 {
	return atomic.AddUint32(&nextFrameID, 1)
}

// Frame is one display-ready image: resized to fit a cell area and
// prepared for the terminal graphics protocol. The full-resolution source
// pixels are retained so the frame can be re-encoded when the target area
// changes.
type Frame struct {
	src   image.Image
	proto imgproto.Protocol
	id    uint32

	area       Area   // cell area the current encoding was produced for
	cols, rows int    // cells actually covered after aspect-preserving fit
	transmit   string // one-time transmit command (Kitty); empty for Sixel
	sent       bool
}

// Area is a rectangle of terminal cells an image may occupy.
type Area struct {
	Width  int
	Height int
}

func newFrame(img image.Image, proto imgproto.Protocol) *Frame {
	return &Frame{src: img, proto: proto, id: nextID()}
}

// encodeFor resizes the source to fit the area, preserving aspect ratio,
// and prepares the protocol encoding.
func (f *Frame) encodeFor(area Area) error {
	pixelW, pixelH := f.proto.TargetPixelSize(area.Width, area.Height)
	if pixelW < 1 || pixelH < 1 {
		return fmt.Errorf("%w: target area %dx%d cells too small", ErrEncode, area.Width, area.Height)
	}

	resized := resize.Thumbnail(uint(pixelW), uint(pixelH), f.src, resize.Lanczos3)

	transmit, err := f.proto.Prepare(resized, f.id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	b := resized.Bounds()
	f.cols = ceilDiv(b.Dx()*area.Width, pixelW)
	f.rows = ceilDiv(b.Dy()*area.Height, pixelH)
	f.area = area
	f.transmit = transmit
	f.sent = false
	return nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// needsResize reports whether the current encoding was produced for a
// different cell area than the given one.
func (f *Frame) needsResize(area Area) bool {
	return f.area != area
}

// Render returns the escape sequence that places this frame at (row, col),
// 1-based terminal coordinates. The one-time transmit command is prefixed
// on the first render after an encode.
func (f *Frame) Render(row, col int) string {
	place := f.proto.Place(f.id, row, col, f.cols, f.rows)
	if !f.sent && f.transmit != "" {
		f.sent = true
		return f.transmit + place
	}
	return place
}

func (f *Frame) delete() string {
	return f.proto.Delete(f.id)
}

// encodeAll prepares every frame for the target area using a bounded pool
// of workers. Frames are independent, and each worker writes into the
// frame's own slot, so display order never depends on completion order.
// The pool joins before return; any failure fails the whole batch.
func encodeAll(frames []*Frame, area Area) error {
	workers := min(runtime.NumCPU(), len(frames))
	if workers < 1 {
		workers = 1
	}

	workCh := make(chan int, len(frames))
	errCh := make(chan error, len(frames))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workCh {
				if err := frames[i].encodeFor(area); err != nil {
					errCh <- fmt.Errorf("frame %d: %w", i, err)
				}
			}
		}()
	}

	for i := range frames {
		workCh <- i
	}
	close(workCh)
	wg.Wait()
	close(errCh)

	return <-errCh
}

// normalizeDelay converts a container's rational duration (num/den
// seconds) to whole-millisecond resolution. A zero denominator means
// hundredths of a second; a computed duration of zero or less becomes the
// fixed default so a non-positive dwell time never reaches playback.
func normalizeDelay(num, den int) time.Duration {
	if den <= 0 {
		den = 100
	}
	ms := num * 1000 / den
	if ms <= 0 {
		return defaultFrameDelay
	}
	return time.Duration(ms) * time.Millisecond
}
