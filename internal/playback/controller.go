// Package playback drives a cursor over a materialized step sequence.
//
// A Controller owns one visualization session: the algorithm, its input,
// the generated step.Sequence, and the cursor into it. Autoplay advances the
// cursor on timers armed through a Scheduler. Every armed timer carries the
// generation token current when it was scheduled; any mutation that
// invalidates pending ticks (pause, reset, new input, close) bumps the token
// so a tick that fires late is discarded instead of moving a stale cursor.
//
// Completion fires at most once per traversal of a sequence and only from
// autoplay. Stepping manually onto the final step never fires it.
package playback

import (
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/step"
)

// Completion describes a finished autoplay traversal.
type Completion struct {
	Traversal uuid.UUID
	Algorithm algorithms.ID
	Steps     int
}

// View is a read-only snapshot for rendering.
type View struct {
	Traversal uuid.UUID
	Algorithm *algorithms.Algorithm
	Sequence  *step.Sequence
	Cursor    int
	State     State
	Speed     Speed
	Manual    bool
}

// Step returns the step under the cursor.
func (v View) Step() step.Step { return v.Sequence.At(v.Cursor) }

// Total returns the sequence length.
func (v View) Total() int { return v.Sequence.Len() }

// AtEnd reports whether the cursor is on the final step.
func (v View) AtEnd() bool { return v.Cursor == v.Sequence.Len()-1 }

// Options configures a Controller.
type Options struct {
	// Scheduler defaults to WallClock.
	Scheduler Scheduler
	Speed     Speed

	// OnComplete is called once per autoplay traversal that reaches the
	// final step.
	OnComplete func(Completion)

	// OnChange is called after every mutation with the new view.
	OnChange func(View)

	// Generate produces sequences; defaults to algorithms.Generate.
	Generate func(algorithms.ID, algorithms.Input) *step.Sequence
}

// Controller is safe for concurrent use. Callbacks run outside its lock on
// the goroutine that caused the change (the timer goroutine for autoplay).
type Controller struct {
	mu sync.Mutex

	sched      Scheduler
	generate   func(algorithms.ID, algorithms.Input) *step.Sequence
	onComplete func(Completion)
	onChange   func(View)

	algorithm *algorithms.Algorithm
	input     algorithms.Input
	seq       *step.Sequence
	traversal uuid.UUID
	cursor    int
	state     State
	speed     Speed
	manual    bool
	fired     bool
	closed    bool

	token uint64
	timer Timer
}

// New creates a controller for id and in and generates the first sequence.
func New(id algorithms.ID, in algorithms.Input, opts Options) *Controller {
	c := &Controller{
		sched:      opts.Scheduler,
		generate:   opts.Generate,
		onComplete: opts.OnComplete,
		onChange:   opts.OnChange,
		speed:      opts.Speed,
		algorithm:  algorithms.Resolve(id),
		input:      in,
	}
	if c.sched == nil {
		c.sched = WallClock{}
	}
	if c.generate == nil {
		c.generate = algorithms.Generate
	}
	c.regenerate()
	return c
}

// Snapshot returns the current view.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Play starts autoplay from idle or paused. On the final step it regenerates
// the sequence and starts over. It does nothing in manual mode.
func (c *Controller) Play() {
	c.mutate(func() (fire bool) {
		if c.closed || c.manual || c.state == StatePlaying {
			return false
		}
		if c.cursor == c.seq.Len()-1 {
			c.regenerate()
		}
		if c.seq.Len() == 1 {
			return c.completeLocked()
		}
		c.state = StatePlaying
		c.scheduleLocked()
		return false
	})
}

// Pause stops autoplay and keeps the cursor.
func (c *Controller) Pause() {
	c.mutate(func() bool {
		if c.state != StatePlaying {
			return false
		}
		c.stopLocked()
		c.state = StatePaused
		return false
	})
}

// Toggle plays when stopped and pauses when playing.
func (c *Controller) Toggle() {
	if c.Snapshot().State == StatePlaying {
		c.Pause()
		return
	}
	c.Play()
}

// StepForward moves the cursor one step forward and stops autoplay. It is a
// no-op on the final step.
func (c *Controller) StepForward() { c.move(1) }

// StepBackward moves the cursor one step back and stops autoplay. It is a
// no-op on the first step.
func (c *Controller) StepBackward() { c.move(-1) }

func (c *Controller) move(delta int) {
	c.mutate(func() bool {
		if c.closed {
			return false
		}
		c.stopLocked()
		next := c.cursor + delta
		if next < 0 || next >= c.seq.Len() {
			if c.state == StatePlaying {
				c.state = StatePaused
			}
			return false
		}
		c.cursor = next
		c.state = StatePaused
		return false
	})
}

// Reset regenerates the sequence for the current input and rewinds.
func (c *Controller) Reset() {
	c.mutate(func() bool {
		if c.closed {
			return false
		}
		c.regenerate()
		return false
	})
}

// SetInput replaces the input and resets.
func (c *Controller) SetInput(in algorithms.Input) {
	c.mutate(func() bool {
		if c.closed {
			return false
		}
		c.input = in
		c.regenerate()
		return false
	})
}

// SetAlgorithm switches algorithm, keeping the input, and resets.
func (c *Controller) SetAlgorithm(id algorithms.ID) {
	c.mutate(func() bool {
		if c.closed {
			return false
		}
		c.algorithm = algorithms.Resolve(id)
		c.regenerate()
		return false
	})
}

// SetSpeed changes the tier. A playing controller reschedules its pending
// step with the new delay.
func (c *Controller) SetSpeed(s Speed) {
	c.mutate(func() bool {
		c.speed = s
		if c.state == StatePlaying && !c.closed {
			c.stopLocked()
			c.scheduleLocked()
		}
		return false
	})
}

// SetManual toggles manual mode. Entering it stops autoplay.
func (c *Controller) SetManual(manual bool) {
	c.mutate(func() bool {
		c.manual = manual
		if manual && c.state == StatePlaying {
			c.stopLocked()
			c.state = StatePaused
		}
		return false
	})
}

// Close cancels any pending step. Later calls are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.closed = true
	if c.state == StatePlaying {
		c.state = StatePaused
	}
}

func (c *Controller) tick(token uint64) {
	c.mutate(func() bool {
		if c.closed || token != c.token || c.state != StatePlaying {
			return false
		}
		c.timer = nil
		c.cursor++
		if c.cursor >= c.seq.Len()-1 {
			c.cursor = c.seq.Len() - 1
			return c.completeLocked()
		}
		c.scheduleLocked()
		return false
	})
}

// mutate runs fn under the lock, then notifies listeners outside it.
func (c *Controller) mutate(fn func() (fire bool)) {
	c.mu.Lock()
	before := c.viewLocked()
	fire := fn()
	view := c.viewLocked()
	changed := fire || view != before
	completion := Completion{Traversal: c.traversal, Algorithm: c.algorithm.ID, Steps: c.seq.Len()}
	onChange, onComplete := c.onChange, c.onComplete
	c.mu.Unlock()

	if changed && onChange != nil {
		onChange(view)
	}
	if fire && onComplete != nil {
		onComplete(completion)
	}
}

func (c *Controller) completeLocked() bool {
	c.state = StateCompleted
	if c.fired {
		return false
	}
	c.fired = true
	return true
}

func (c *Controller) regenerate() {
	c.stopLocked()
	c.seq = c.generate(c.algorithm.ID, c.input)
	c.traversal = uuid.New()
	c.cursor = 0
	c.state = StateIdle
	c.fired = false
}

func (c *Controller) scheduleLocked() {
	c.token++
	token := c.token
	c.timer = c.sched.AfterFunc(c.speed.Delay(), func() { c.tick(token) })
}

func (c *Controller) stopLocked() {
	c.token++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) viewLocked() View {
	return View{
		Traversal: c.traversal,
		Algorithm: c.algorithm,
		Sequence:  c.seq,
		Cursor:    c.cursor,
		State:     c.state,
		Speed:     c.speed,
		Manual:    c.manual,
	}
}
