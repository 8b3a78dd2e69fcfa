// Package home is the main menu.
package home

import (
	"math/rand/v2"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/algolab/internal/algorithms"
	"github.com/abhisek/algolab/internal/playback"
	"github.com/abhisek/algolab/internal/progress"
	"github.com/abhisek/algolab/internal/router"
	"github.com/abhisek/algolab/internal/screen"
	badgescreen "github.com/abhisek/algolab/internal/screens/badges"
	"github.com/abhisek/algolab/internal/screens/catalog"
	"github.com/abhisek/algolab/internal/screens/history"
	"github.com/abhisek/algolab/internal/screens/placeholder"
	progressscreen "github.com/abhisek/algolab/internal/screens/progress"
	quizscreen "github.com/abhisek/algolab/internal/screens/quiz"
	"github.com/abhisek/algolab/internal/screens/visualizer"
	"github.com/abhisek/algolab/internal/session"
	"github.com/abhisek/algolab/internal/store"
	"github.com/abhisek/algolab/internal/ui/components"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	sess      *session.Session
	eventRepo store.EventRepo
	speed     playback.Speed
	rng       *rand.Rand
	menu      components.Menu
	progress  progress.Progress
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen. eventRepo may be nil, in which case the
// screens that read the event log are unavailable.
func New(sess *session.Session, eventRepo store.EventRepo, speed playback.Speed) *HomeScreen {
	seed := uint64(time.Now().UnixNano())
	h := &HomeScreen{
		sess:      sess,
		eventRepo: eventRepo,
		speed:     speed,
		rng:       rand.New(rand.NewPCG(seed, seed>>1)),
	}
	h.progress = sess.Ledger.Progress()

	items := []components.MenuItem{
		{Label: "ALGORITHMS", Description: "Browse the catalog by family", Action: func() tea.Cmd {
			return router.Push(catalog.New(h.sess, h.speed))
		}},
		{Label: "RANDOM REPLAY", Description: "Watch a random algorithm on a random input", Action: func() tea.Cmd {
			all := algorithms.All()
			a := all[h.rng.IntN(len(all))]
			return router.Push(visualizer.New(h.sess, a.ID, visualizer.Options{Speed: h.speed, Rand: h.rng}))
		}},
		{Label: "QUIZ ME", Description: "Quiz on the algorithm you know least", Action: func() tea.Cmd {
			return router.Push(quizscreen.New(h.sess, SuggestQuiz(h.progress)))
		}},
		{Label: "PROGRESS", Description: "Level, streak and mastery", Action: func() tea.Cmd {
			return router.Push(progressscreen.New(h.sess))
		}},
		{Label: "BADGES", Description: "Every badge you have earned", Action: func() tea.Cmd {
			if h.eventRepo == nil {
				return router.Push(placeholder.New("Badges", "earned badges"))
			}
			return router.Push(badgescreen.New(h.eventRepo))
		}},
		{Label: "HISTORY", Description: "XP awards and flagged anomalies", Action: func() tea.Cmd {
			if h.eventRepo == nil {
				return router.Push(placeholder.New("History", "the XP and anomaly history"))
			}
			return router.Push(history.New(h.eventRepo))
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes the dashboard after returning from another screen.
func (h *HomeScreen) Resume() tea.Cmd {
	h.progress = h.sess.Ledger.Progress()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height+8 < 30 || width < 100
	cw := contentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.progress, cw),
		renderMenu(h.menu, cw),
	}
	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// SuggestQuiz picks the algorithm to quiz next: the completed algorithm
// with the lowest quiz average below gold, else the first algorithm not yet
// completed, else the lowest average overall.
func SuggestQuiz(p progress.Progress) algorithms.ID {
	var (
		best    algorithms.ID
		bestAvg = 101.0
	)
	for _, a := range algorithms.All() {
		if !p.Completed[string(a.ID)] {
			continue
		}
		m := p.Mastery[string(a.ID)]
		if m.Level() == progress.MasteryGold {
			continue
		}
		if avg := m.Average(); avg < bestAvg {
			best, bestAvg = a.ID, avg
		}
	}
	if best != "" {
		return best
	}
	for _, a := range algorithms.All() {
		if !p.Completed[string(a.ID)] {
			return a.ID
		}
	}
	for _, a := range algorithms.All() {
		if avg := p.Mastery[string(a.ID)].Average(); avg < bestAvg {
			best, bestAvg = a.ID, avg
		}
	}
	return best
}
