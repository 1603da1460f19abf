package ui

import (
	"time"

	"droplet/internal/breath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// snapshotMsg carries a controller change into the Update loop.
type snapshotMsg breath.Snapshot

// eventsClosedMsg signals the controller was closed.
type eventsClosedMsg struct{}

// frameMsg advances the droplet animation.
type frameMsg time.Time

// Model is the bubbletea model for the exercise screen. It owns no exercise
// state of its own; everything comes from the controller's snapshots.
type Model struct {
	ctrl   *breath.Controller
	logger *zap.Logger

	snap          breath.Snapshot
	frame         int
	frameInterval time.Duration

	styles   Styles
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	progress progress.Model

	width    int
	height   int
	quitting bool
}

// NewModel creates the exercise screen around ctrl.
func NewModel(ctrl *breath.Controller, frameInterval time.Duration, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	if frameInterval <= 0 {
		frameInterval = 80 * time.Millisecond
	}

	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = styles.Muted

	return Model{
		ctrl:          ctrl,
		logger:        logger,
		snap:          ctrl.Snapshot(),
		frameInterval: frameInterval,
		styles:        styles,
		keys:          defaultKeyMap(),
		help:          help.New(),
		spinner:       sp,
		progress: progress.New(
			progress.WithSolidFill(string(Breath)),
			progress.WithoutPercentage(),
			progress.WithWidth(32),
		),
	}
}

// Init starts the controller (issuing the first fetch) and the animation.
func (m Model) Init() tea.Cmd {
	m.ctrl.Start()
	return tea.Batch(
		waitForSnapshot(m.ctrl.Events()),
		m.spinner.Tick,
		frameTick(m.frameInterval),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Advance):
			if m.ctrl.Advance() {
				m.logger.Debug("Advanced", zap.Stringer("state", m.ctrl.Snapshot().State))
			}
			m.snap = m.ctrl.Snapshot()
		case key.Matches(msg, m.keys.Reset):
			m.ctrl.Reset()
			m.logger.Debug("Reset")
			m.snap = m.ctrl.Snapshot()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(40, max(10, msg.Width-8))
		return m, nil

	case snapshotMsg:
		m.snap = breath.Snapshot(msg)
		return m, waitForSnapshot(m.ctrl.Events())

	case eventsClosedMsg:
		return m, nil

	case frameMsg:
		m.frame++
		return m, frameTick(m.frameInterval)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.snap
	elapsed := time.Duration(m.frame) * m.frameInterval

	sections := []string{
		m.styles.Title.Render("呼吸水滴"),
		m.styles.Subtitle.Render("從焦慮到安定"),
		"",
		RenderDroplet(s.Config, elapsed, m.frame),
		"",
		m.reflectionLine(),
		m.styles.Label.Render(s.Config.Label),
		"",
	}
	if s.State != breath.Anxious {
		sections = append(sections, m.progress.ViewAs(float64(s.Progress)/100), "")
	}
	sections = append(sections, m.controls(), m.styles.Help.Render(m.help.View(m.keys)))

	body := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (m Model) reflectionLine() string {
	switch {
	case m.snap.Loading:
		return m.spinner.View() + m.styles.Reflection.Render("...")
	case m.snap.Reflection != "":
		return m.styles.Reflection.Render(m.snap.Reflection)
	default:
		return m.styles.Reflection.Render("感受當下的呼吸")
	}
}

func (m Model) controls() string {
	switch m.snap.State {
	case breath.Anxious:
		return m.styles.Button.Render("開始引導")
	case breath.Transition:
		return m.styles.Button.Render("再緩一點")
	default:
		return lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Done.Render("身心已回歸平靜"),
			m.styles.Muted.Render("重新開始"),
		)
	}
}

func waitForSnapshot(ch <-chan breath.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return snapshotMsg(s)
	}
}

func frameTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
