package anim

import "time"

// Playback tracks which frame of an animation is visible and when it last
// changed. It has exactly one mutator, TryAdvance, which the UI thread
// calls once per refresh tick; nothing else touches it after construction.
type Playback struct {
	frames         []*Frame
	delays         []time.Duration
	current        int
	lastTransition time.Time
}

// TryAdvance moves to the next frame when the active frame's own dwell
// time has elapsed, and reports whether the visible frame changed.
//
// Advancement is single-step per call, never a catch-up jump: if the host
// was not invoked for a long interval, the next call advances exactly one
// frame rather than the number of periods wall-clock time would imply.
// The sequence stays watchable from wherever it left off, at the cost of
// lagging behind wall clock after a stall.
func (p *Playback) TryAdvance(now time.Time) bool {
	if len(p.frames) == 0 {
		return false
	}

	if now.Sub(p.lastTransition) < p.delays[p.current] {
		return false
	}

	p.current = (p.current + 1) % len(p.frames)
	p.lastTransition = now
	return true
}

// Current returns the frame that should be drawn right now.
func (p *Playback) Current() *Frame {
	return p.frames[p.current]
}

// Len returns the number of frames in the animation.
func (p *Playback) Len() int {
	return len(p.frames)
}
