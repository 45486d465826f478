package engine

import "time"

// Interval accumulates elapsed time and fires once per full period. It is
// how every timer in the engine works: bombs, animations, AI turns.
type Interval struct {
	period  time.Duration
	elapsed time.Duration
}

// NewInterval creates an interval with the given period.
func NewInterval(period time.Duration) Interval {
	return Interval{period: period}
}

// Advance adds dt and returns how many periods completed. The remainder
// carries over, so long and short ticks add up the same way.
func (iv *Interval) Advance(dt time.Duration) int {
	if iv.period <= 0 || dt <= 0 {
		return 0
	}
	iv.elapsed += dt
	n := int(iv.elapsed / iv.period)
	iv.elapsed -= time.Duration(n) * iv.period
	return n
}

// Reset drops the accumulated time.
func (iv *Interval) Reset() {
	iv.elapsed = 0
}

// Animation is a fixed sequence of frames driven by an Interval.
type Animation struct {
	tick   Interval
	frames int
	frame  int
	loop   bool
	done   bool
}

// NewAnimation creates a one-shot animation.
func NewAnimation(frames int, frameTime time.Duration) Animation {
	return Animation{tick: NewInterval(frameTime), frames: frames}
}

// NewLoop creates an animation that wraps around.
func NewLoop(frames int, frameTime time.Duration) Animation {
	a := NewAnimation(frames, frameTime)
	a.loop = true
	return a
}

// Advance moves the animation forward and reports whether a one-shot
// sequence has finished. It reports true only on the call that finishes it.
func (a *Animation) Advance(dt time.Duration) bool {
	if a.done {
		return false
	}
	for n := a.tick.Advance(dt); n > 0; n-- {
		a.frame++
		if a.frame < a.frames {
			continue
		}
		if a.loop {
			a.frame = 0
			continue
		}
		a.frame = a.frames - 1
		a.done = true
		return true
	}
	return false
}

// Frame returns the current frame index.
func (a Animation) Frame() int {
	return a.frame
}

// Done reports whether a one-shot animation has completed.
func (a Animation) Done() bool {
	return a.done
}
