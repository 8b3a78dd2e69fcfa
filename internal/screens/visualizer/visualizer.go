// Package visualizer is the step playback screen: a bar chart of the current
// step, the algorithm's pseudocode with the active line highlighted, and the
// playback controls.
package visualizer

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/playback"
	"github.com/abhisek/algolab/internal/router"
	"github.com/abhisek/algolab/internal/screen"
	quizscreen "github.com/abhisek/algolab/internal/screens/quiz"
	"github.com/abhisek/algolab/internal/session"
	"github.com/abhisek/algolab/internal/ui/components"
	"github.com/abhisek/algolab/internal/ui/layout"
)

// DefaultInputSize is the length of generated random inputs.
const DefaultInputSize = 8

// VisualizerScreen plays one algorithm at a time. The controller's callbacks
// run on timer goroutines; they only signal the channels below, and a single
// listen command turns those signals into messages. Completions are credited
// by the listener itself, so a covering screen that drops the message cannot
// lose the XP.
type VisualizerScreen struct {
	sess *session.Session
	ctrl *playback.Controller
	rng  *rand.Rand

	changes     chan struct{}
	completions chan playback.Completion
	done        chan struct{}
	closed      bool
	listening   atomic.Bool

	in      algorithms.Input
	view    playback.View
	editing bool
	editor  components.ArrayInput
	banner  banner
}

var _ screen.Screen = (*VisualizerScreen)(nil)
var _ screen.KeyHintProvider = (*VisualizerScreen)(nil)
var _ screen.Closer = (*VisualizerScreen)(nil)
var _ screen.EscCapturer = (*VisualizerScreen)(nil)
var _ screen.Resumer = (*VisualizerScreen)(nil)

// Options configures a VisualizerScreen.
type Options struct {
	Speed playback.Speed
	// Scheduler defaults to the wall clock.
	Scheduler playback.Scheduler
	// Rand seeds random inputs; defaults to a time-seeded source.
	Rand *rand.Rand
}

// New creates a visualizer for id with a random input.
func New(sess *session.Session, id algorithms.ID, opts Options) *VisualizerScreen {
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	s := &VisualizerScreen{
		sess:        sess,
		rng:         rng,
		changes:     make(chan struct{}, 1),
		completions: make(chan playback.Completion, 4),
		done:        make(chan struct{}),
	}
	s.in = algorithms.RandomInput(id, DefaultInputSize, rng)
	s.ctrl = playback.New(id, s.in, playback.Options{
		Scheduler:  opts.Scheduler,
		Speed:      opts.Speed,
		OnChange:   s.notifyChange,
		OnComplete: s.notifyComplete,
	})
	s.view = s.ctrl.Snapshot()
	return s
}

func (s *VisualizerScreen) notifyChange(playback.View) {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

func (s *VisualizerScreen) notifyComplete(c playback.Completion) {
	select {
	case s.completions <- c:
	case <-s.done:
	}
}

// listen waits for the next controller signal. At most one listener is in
// flight at a time.
func (s *VisualizerScreen) listen() tea.Cmd {
	s.listening.Store(true)
	return func() tea.Msg {
		defer s.listening.Store(false)
		select {
		case c := <-s.completions:
			return s.credit(c, s.ctrl.Snapshot().Speed)
		case <-s.changes:
			return changedMsg{}
		case <-s.done:
			return nil
		}
	}
}

func (s *VisualizerScreen) Init() tea.Cmd {
	return s.listen()
}

// Resume refreshes the view after a covering screen is popped and re-arms
// the listener if its last message went to that screen.
func (s *VisualizerScreen) Resume() tea.Cmd {
	s.view = s.ctrl.Snapshot()
	if s.closed || s.listening.Load() {
		return nil
	}
	return s.listen()
}

func (s *VisualizerScreen) Title() string {
	return s.view.Algorithm.Name
}

// Close stops playback and releases the listener.
func (s *VisualizerScreen) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.ctrl.Close()
	close(s.done)
}

// CapturesEsc reports whether Esc cancels the input editor instead of
// leaving the screen.
func (s *VisualizerScreen) CapturesEsc() bool {
	return s.editing
}

func (s *VisualizerScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Play/Pause"},
		{Key: "←→", Description: "Step"},
		{Key: "+/-", Description: "Speed"},
		{Key: "Tab", Description: "Next algorithm"},
		{Key: "Q", Description: "Quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *VisualizerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		s.view = s.ctrl.Snapshot()
		cmds := []tea.Cmd{s.listen()}
		if s.view.State == playback.StatePlaying {
			cmds = append(cmds, s.recordStart(s.view))
		}
		return s, tea.Batch(cmds...)

	case creditedMsg:
		s.view = s.ctrl.Snapshot()
		s.banner = creditBanner(msg)
		return s, s.listen()

	case tea.KeyMsg:
		if s.editing {
			return s.handleEditKey(msg)
		}
		return s.handleKey(msg)
	}

	if s.editing {
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *VisualizerScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.String() {
	case "space", " ", "p":
		s.ctrl.Toggle()
	case "right", "l":
		s.ctrl.StepForward()
	case "left", "h":
		s.ctrl.StepBackward()
	case "r":
		s.ctrl.Reset()
	case "n":
		s.in = algorithms.RandomInput(s.view.Algorithm.ID, DefaultInputSize, s.rng)
		s.ctrl.SetInput(s.in)
	case "e":
		s.editing = true
		s.editor = components.NewArrayInput(s.view.Sequence.Input)
	case "+", "=":
		s.ctrl.SetSpeed(s.view.Speed.Faster())
	case "-", "_":
		s.ctrl.SetSpeed(s.view.Speed.Slower())
	case "m":
		s.ctrl.SetManual(!s.view.Manual)
	case "tab":
		s.switchAlgorithm(1)
	case "shift+tab":
		s.switchAlgorithm(-1)
	case "q":
		// Leaving the screen stops autoplay.
		s.ctrl.Pause()
		cmd = router.Push(quizscreen.New(s.sess, s.view.Algorithm.ID))
	default:
		return s, nil
	}
	s.view = s.ctrl.Snapshot()
	return s, cmd
}

func (s *VisualizerScreen) handleEditKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.editing = false
		return s, nil
	case "enter":
		vals, err := s.editor.Submit()
		if err != nil {
			return s, nil
		}
		s.editing = false
		s.in.Array = vals
		s.in.Graph = nil
		if len(s.in.Values) > 0 {
			s.in.Values = nil
		}
		s.ctrl.SetInput(s.in)
		s.view = s.ctrl.Snapshot()
		return s, nil
	}
	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	return s, cmd
}

// switchAlgorithm moves to the next or previous algorithm of the same family.
// Dynamic programming algorithms read their inputs differently, so they get a
// fresh random input.
func (s *VisualizerScreen) switchAlgorithm(dir int) {
	cur := s.view.Algorithm
	family := algorithms.ByFamily(cur.Family)
	if len(family) < 2 {
		return
	}
	idx := 0
	for i, a := range family {
		if a.ID == cur.ID {
			idx = i
		}
	}
	next := family[(idx+dir+len(family))%len(family)]
	if cur.Family == algorithms.FamilyDynamic {
		s.in = algorithms.RandomInput(next.ID, DefaultInputSize, s.rng)
		s.ctrl.SetAlgorithm(next.ID)
		s.ctrl.SetInput(s.in)
		return
	}
	s.ctrl.SetAlgorithm(next.ID)
}

func (s *VisualizerScreen) recordStart(v playback.View) tea.Cmd {
	if s.sess == nil {
		return nil
	}
	return func() tea.Msg {
		s.sess.TraversalStarted(context.Background(), v)
		return nil
	}
}

// credit records a finished traversal with the session.
func (s *VisualizerScreen) credit(c playback.Completion, speed playback.Speed) tea.Msg {
	if s.sess == nil {
		return changedMsg{}
	}
	change, err := s.sess.TraversalCompleted(context.Background(), c, speed)
	return creditedMsg{Change: change, Err: err}
}

type banner struct {
	text string
	ok   bool
}

func creditBanner(msg creditedMsg) banner {
	if msg.Err != nil {
		return banner{text: fmt.Sprintf("Could not record completion: %v", msg.Err)}
	}
	c := msg.Change
	text := fmt.Sprintf("+%d XP", c.XPDelta)
	if c.FirstCompletion {
		text += " · first completion!"
	}
	if c.LevelUp() {
		text += fmt.Sprintf(" · Level %d reached", c.After.Level())
	}
	return banner{text: text, ok: true}
}
