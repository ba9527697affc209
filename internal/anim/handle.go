package anim

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tlecomte/glimpse/internal/imgproto"
)

// ErrNoProtocol reports that the terminal offers no usable graphics
// protocol, so no image handle can be built.
var ErrNoProtocol = errors.New("terminal image protocol unavailable")

// Handle is a drawable image: a single still frame or an animation whose
// visible frame advances over time. Advancing time and drawing are
// deliberately decoupled: the host calls TryAdvance exactly once per
// refresh tick, then Render. Render never mutates, which keeps playback
// frozen for free while the host withholds ticks (e.g. behind a modal)
// and makes frame selection deterministic in tests.
type Handle interface {
	// TryAdvance reports whether the visible frame changed. Always false
	// for stills.
	TryAdvance(now time.Time) bool

	// Render returns the escape sequence placing the current frame at
	// (row, col), 1-based terminal coordinates.
	Render(row, col int) string

	// ResizeFit re-encodes for a new cell area. On animations every frame
	// is re-encoded, since a changed area invalidates every cached
	// encoding, not just the current one.
	ResizeFit(area Area) error

	// NeedsResize reports whether the handle's encoding was produced for
	// a different area than the given one, returning the area to encode
	// for when it was.
	NeedsResize(area Area) (Area, bool)

	// Size returns the cells the encoded image actually covers.
	Size() (cols, rows int)

	// Placeholder returns blank cells for layout measurement.
	Placeholder() string

	// Close returns the escape sequence releasing terminal-side resources.
	// The handle must not be rendered afterwards.
	Close() string
}

// Static is a single still frame.
type Static struct {
	frame *Frame
}

func (s *Static) TryAdvance(time.Time) bool { return false }

func (s *Static) Render(row, col int) string { return s.frame.Render(row, col) }

func (s *Static) ResizeFit(area Area) error { return s.frame.encodeFor(area) }

func (s *Static) NeedsResize(area Area) (Area, bool) {
	if s.frame.needsResize(area) {
		return area, true
	}
	return Area{}, false
}

func (s *Static) Size() (cols, rows int) { return s.frame.cols, s.frame.rows }

func (s *Static) Placeholder() string {
	return s.frame.proto.Placeholder(s.frame.cols, s.frame.rows)
}

func (s *Static) Close() string { return s.frame.delete() }

// Animated is an ordered frame sequence with per-frame dwell times.
// Invariants: as many delays as frames, at least two of each, and every
// delay strictly positive.
type Animated struct {
	playback Playback
}

func (a *Animated) TryAdvance(now time.Time) bool { return a.playback.TryAdvance(now) }

func (a *Animated) Render(row, col int) string { return a.playback.Current().Render(row, col) }

func (a *Animated) ResizeFit(area Area) error {
	return encodeAll(a.playback.frames, area)
}

// NeedsResize checks only the first frame: all frames share the same
// source resolution and are resized uniformly by construction.
func (a *Animated) NeedsResize(area Area) (Area, bool) {
	if a.playback.frames[0].needsResize(area) {
		return area, true
	}
	return Area{}, false
}

func (a *Animated) Size() (cols, rows int) {
	f := a.playback.frames[0]
	return f.cols, f.rows
}

func (a *Animated) Placeholder() string {
	f := a.playback.frames[0]
	return f.proto.Placeholder(f.cols, f.rows)
}

func (a *Animated) Close() string {
	var sb strings.Builder
	for _, f := range a.playback.frames {
		sb.WriteString(f.delete())
	}
	return sb.String()
}

// Load builds a Handle from raw compressed image bytes, sized to fit the
// given cell area. It is constructed exactly once per opened post; the
// caller owns the handle, mutates it only through TryAdvance, and Closes
// it when navigating away.
//
// Decode failures wrap ErrDecode. A frame that fails to encode aborts the
// entire load wrapping ErrEncode; no partial animation is ever returned.
func Load(data []byte, proto imgproto.Protocol, area Area) (Handle, error) {
	if proto == nil {
		return nil, ErrNoProtocol
	}

	still, decoded, err := decode(data)
	if err != nil {
		return nil, err
	}

	if decoded == nil {
		frame := newFrame(still, proto)
		if err := frame.encodeFor(area); err != nil {
			return nil, err
		}
		return &Static{frame: frame}, nil
	}

	frames := make([]*Frame, len(decoded))
	delays := make([]time.Duration, len(decoded))
	for i, d := range decoded {
		frames[i] = newFrame(d.img, proto)
		delays[i] = normalizeDelay(d.delayNum, d.delayDen)
	}

	if err := encodeAll(frames, area); err != nil {
		// Release anything a Sixel protocol may have cached.
		for _, f := range frames {
			f.delete()
		}
		return nil, fmt.Errorf("preprocess animation: %w", err)
	}

	return &Animated{playback: Playback{
		frames:         frames,
		delays:         delays,
		lastTransition: time.Now(),
	}}, nil
}
