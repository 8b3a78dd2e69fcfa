package playback

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/step"
)

type completions struct {
	mu  sync.Mutex
	got []Completion
}

func (c *completions) record(e Completion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, e)
}

func (c *completions) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.got)
}

func newTestController(t *testing.T, speed Speed) (*Controller, *ManualClock, *completions) {
	t.Helper()
	clock := NewManualClock()
	done := &completions{}
	c := New(algorithms.BubbleSort, algorithms.Input{Array: []int{5, 3, 1, 4}}, Options{
		Scheduler:  clock,
		Speed:      speed,
		OnComplete: done.record,
	})
	t.Cleanup(c.Close)
	return c, clock, done
}

func TestAutoplay_CompletesOnceForEveryTier(t *testing.T) {
	for _, speed := range Speeds() {
		t.Run(speed.String(), func(t *testing.T) {
			c, clock, done := newTestController(t, speed)
			n := c.Snapshot().Total()
			require.Greater(t, n, 2)

			c.Play()
			assert.Equal(t, StatePlaying, c.Snapshot().State)

			// One tick short of the end: no completion yet.
			clock.Advance(time.Duration(n-2) * speed.Delay())
			assert.Equal(t, n-2, c.Snapshot().Cursor)
			assert.Equal(t, 0, done.count())

			clock.Advance(speed.Delay())
			v := c.Snapshot()
			assert.Equal(t, n-1, v.Cursor)
			assert.Equal(t, StateCompleted, v.State)
			assert.Equal(t, 1, done.count())
			assert.Equal(t, 0, clock.Pending())

			clock.Advance(10 * speed.Delay())
			assert.Equal(t, 1, done.count())
		})
	}
}

func TestCompletion_NotRefiredByManualNavigation(t *testing.T) {
	c, clock, done := newTestController(t, SpeedFast)
	n := c.Snapshot().Total()
	c.Play()
	clock.Advance(time.Duration(n) * SpeedFast.Delay())
	require.Equal(t, 1, done.count())

	c.StepBackward()
	c.StepForward()
	assert.Equal(t, n-1, c.Snapshot().Cursor)
	assert.Equal(t, 1, done.count())
}

func TestManualStepToEnd_DoesNotComplete(t *testing.T) {
	c, _, done := newTestController(t, SpeedNormal)
	c.SetManual(true)
	for range c.Snapshot().Total() + 3 {
		c.StepForward()
	}
	v := c.Snapshot()
	assert.True(t, v.AtEnd())
	assert.Equal(t, StatePaused, v.State)
	assert.Equal(t, 0, done.count())

	c.Play()
	assert.NotEqual(t, StatePlaying, c.Snapshot().State, "play is disabled in manual mode")
}

func TestPlayAtEnd_RestartsAndCompletesAgain(t *testing.T) {
	c, clock, done := newTestController(t, SpeedTurbo)
	n := c.Snapshot().Total()
	c.Play()
	clock.Advance(time.Duration(n) * SpeedTurbo.Delay())
	first := c.Snapshot().Traversal
	require.Equal(t, 1, done.count())

	c.Play()
	v := c.Snapshot()
	assert.Equal(t, 0, v.Cursor)
	assert.Equal(t, StatePlaying, v.State)
	assert.NotEqual(t, first, v.Traversal)

	clock.Advance(time.Duration(n) * SpeedTurbo.Delay())
	assert.Equal(t, 2, done.count())
	assert.NotEqual(t, done.got[0].Traversal, done.got[1].Traversal)
}

func TestStepRoundTrip(t *testing.T) {
	c, _, _ := newTestController(t, SpeedNormal)
	n := c.Snapshot().Total()
	for i := 1; i < n-1; i++ {
		c.Reset()
		for range i {
			c.StepForward()
		}
		before := c.Snapshot()
		require.Equal(t, i, before.Cursor)

		c.StepForward()
		c.StepBackward()
		after := c.Snapshot()
		assert.Equal(t, before.Cursor, after.Cursor)
		assert.Equal(t, before.Step(), after.Step())
	}
}

func TestStepBoundariesAreNoOps(t *testing.T) {
	c, _, _ := newTestController(t, SpeedNormal)
	c.StepBackward()
	assert.Equal(t, 0, c.Snapshot().Cursor)
}

func TestPause_RetainsCursorAndDiscardsTimer(t *testing.T) {
	c, clock, _ := newTestController(t, SpeedNormal)
	c.Play()
	clock.Advance(2 * SpeedNormal.Delay())
	c.Pause()
	assert.Equal(t, StatePaused, c.Snapshot().State)
	assert.Equal(t, 2, c.Snapshot().Cursor)

	clock.Advance(5 * SpeedNormal.Delay())
	assert.Equal(t, 2, c.Snapshot().Cursor)

	c.Play()
	clock.Advance(SpeedNormal.Delay())
	assert.Equal(t, 3, c.Snapshot().Cursor)
}

func TestReset_RewindsToRawInput(t *testing.T) {
	c, clock, _ := newTestController(t, SpeedFast)
	c.Play()
	clock.Advance(3 * SpeedFast.Delay())
	c.Reset()

	v := c.Snapshot()
	assert.Equal(t, 0, v.Cursor)
	assert.Equal(t, StateIdle, v.State)
	assert.Equal(t, []int{5, 3, 1, 4}, v.Step().Array)
	assert.Equal(t, 0, clock.Pending())
}

func TestSetInput_CancelsPendingTick(t *testing.T) {
	c, clock, done := newTestController(t, SpeedFast)
	c.Play()
	clock.Advance(SpeedFast.Delay())
	c.SetInput(algorithms.Input{Array: []int{9, 8, 7}})

	clock.Advance(time.Minute)
	v := c.Snapshot()
	assert.Equal(t, 0, v.Cursor)
	assert.Equal(t, StateIdle, v.State)
	assert.Equal(t, []int{9, 8, 7}, v.Sequence.Input)
	assert.Equal(t, 0, done.count())
}

func TestSetSpeed_ReschedulesWhilePlaying(t *testing.T) {
	c, clock, _ := newTestController(t, SpeedSlow)
	c.Play()
	clock.Advance(SpeedTurbo.Delay())
	c.SetSpeed(SpeedTurbo)
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(SpeedTurbo.Delay())
	assert.Equal(t, 1, c.Snapshot().Cursor)
}

// leakyScheduler ignores Stop, so stale callbacks still fire and must be
// rejected by the controller itself.
type leakyScheduler struct {
	fns []func()
}

type leakyTimer struct{}

func (leakyTimer) Stop() bool { return true }

func (s *leakyScheduler) AfterFunc(_ time.Duration, f func()) Timer {
	s.fns = append(s.fns, f)
	return leakyTimer{}
}

func TestStaleTicksAreDiscarded(t *testing.T) {
	sched := &leakyScheduler{}
	done := &completions{}
	c := New(algorithms.BubbleSort, algorithms.Input{Array: []int{3, 2, 1}}, Options{
		Scheduler:  sched,
		OnComplete: done.record,
	})
	c.Play()
	require.Len(t, sched.fns, 1)
	stale := sched.fns[0]

	c.Reset()
	stale()
	assert.Equal(t, 0, c.Snapshot().Cursor)

	c.Play()
	c.Close()
	sched.fns[len(sched.fns)-1]()
	assert.Equal(t, 0, c.Snapshot().Cursor)
	assert.Equal(t, 0, done.count())
}

func singleStep(id algorithms.ID, _ algorithms.Input) *step.Sequence {
	return step.NewRecorder(string(id), nil).Finish(nil, "done")
}

func TestSingleStepSequence_CompletesImmediately(t *testing.T) {
	done := &completions{}
	c := New(algorithms.BubbleSort, algorithms.Input{}, Options{
		Scheduler:  NewManualClock(),
		OnComplete: done.record,
	})
	require.Equal(t, 2, c.Snapshot().Total(), "empty sort emits start and finish")

	one := New(algorithms.BubbleSort, algorithms.Input{}, Options{
		Scheduler:  NewManualClock(),
		OnComplete: done.record,
		Generate:   singleStep,
	})
	one.Play()
	assert.Equal(t, StateCompleted, one.Snapshot().State)
	assert.Equal(t, 1, done.count())
	c.Close()
	one.Close()
}

func TestOnChange_ReceivesViews(t *testing.T) {
	clock := NewManualClock()
	var views []View
	c := New(algorithms.InsertionSort, algorithms.Input{Array: []int{2, 1, 3}}, Options{
		Scheduler: clock,
		OnChange:  func(v View) { views = append(views, v) },
	})
	c.StepForward()
	c.StepForward()
	require.Len(t, views, 2)
	assert.Equal(t, 2, views[1].Cursor)
	assert.Equal(t, algorithms.InsertionSort, views[1].Algorithm.ID)
}

func TestParseSpeed(t *testing.T) {
	s, err := ParseSpeed(" Fast ")
	require.NoError(t, err)
	assert.Equal(t, SpeedFast, s)

	_, err = ParseSpeed("warp")
	assert.Error(t, err)

	assert.Equal(t, SpeedTurbo, SpeedTurbo.Faster())
	assert.Equal(t, SpeedSlow, SpeedSlow.Slower())
	assert.Equal(t, SpeedNormal.Delay(), Speed(42).Delay())
}
