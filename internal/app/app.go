// Package app hosts the root Bubble Tea model: the screen router framed by
// the header and footer.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/algolab/internal/playback"
	"github.com/abhisek/algolab/internal/router"
	"github.com/abhisek/algolab/internal/screen"
	"github.com/abhisek/algolab/internal/screens/home"
	"github.com/abhisek/algolab/internal/screens/welcome"
	"github.com/abhisek/algolab/internal/session"
	"github.com/abhisek/algolab/internal/store"
	"github.com/abhisek/algolab/internal/ui/layout"
)

// Options holds the dependencies the TUI needs.
type Options struct {
	Session *session.Session
	// EventRepo backs the badge and history screens. Nil shows placeholders.
	EventRepo store.EventRepo
	Speed     playback.Speed
	// SkipWelcome starts on the home screen.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	sess   *session.Session
	width  int
	height int
}

// newAppModel creates a new AppModel starting on the splash screen.
func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(opts.Session, opts.EventRepo, opts.Speed)
	}
	var first screen.Screen = welcome.New(homeFactory)
	if opts.SkipWelcome {
		first = homeFactory()
	}
	return AppModel{
		router: router.New(first),
		sess:   opts.Session,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscCapturer); ok && c.CapturesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) stats() layout.Stats {
	if m.sess == nil {
		return layout.Stats{}
	}
	p := m.sess.Ledger.Progress()
	return layout.Stats{Level: p.Level(), XP: p.TotalXP, Streak: p.CurrentStreak}
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.stats(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until it exits. Screens still
// on the stack are closed before returning.
func Run(opts Options) error {
	if opts.Session == nil {
		return fmt.Errorf("app: session is required")
	}
	model := newAppModel(opts)
	p := tea.NewProgram(model)
	_, err := p.Run()
	model.router.CloseAll()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
