package tui

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hersh/blockfall/internal/game"
)

const publishInterval = 100 * time.Millisecond

// FrameMsg drives one Controller update.
type FrameMsg time.Time

type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenPlaying
	ScreenGameOver
)

// Publisher receives session snapshots, e.g. a spectator hub.
type Publisher interface {
	PublishSnapshot(game.Snapshot) error
}

type Options struct {
	Source        game.ShapeSource
	FrameInterval time.Duration
	HoldWindow    time.Duration
	// Publisher is optional.
	Publisher Publisher
	// Broadcast is shown in the side panel when the session is published.
	Broadcast string
}

// Model is the single-player bubbletea model.
type Model struct {
	screen        Screen
	ctrl          *game.Controller
	input         *InputTracker
	frameInterval time.Duration
	lastFrame     time.Time
	now           func() time.Time

	publisher   Publisher
	broadcast   string
	lastPublish time.Time
	published   game.Snapshot

	width    int
	height   int
	showHelp bool
}

func NewModel(opts Options) Model {
	return Model{
		screen:        ScreenWelcome,
		ctrl:          game.New(opts.Source),
		input:         NewInputTracker(opts.HoldWindow),
		frameInterval: opts.FrameInterval,
		now:           time.Now,
		publisher:     opts.Publisher,
		broadcast:     opts.Broadcast,
		showHelp:      true,
	}
}

func (m Model) Init() tea.Cmd {
	return frameCmd(m.frameInterval)
}

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func (m Model) Screen() Screen { return m.screen }

// Snapshot returns the state of the running session.
func (m Model) Snapshot() game.Snapshot { return m.ctrl.Snapshot() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.screen != ScreenPlaying {
			return m, tea.Quit
		}
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	switch m.screen {
	case ScreenWelcome:
		switch msg.String() {
		case "enter", "s":
			m.start()
		}
	case ScreenPlaying, ScreenGameOver:
		if a, ok := ActionForKey(msg.String()); ok {
			m.input.Press(a, m.now())
		}
	}
	return m, nil
}

func (m *Model) start() {
	m.ctrl.Restart()
	m.input.Reset()
	m.lastFrame = time.Time{}
	m.screen = ScreenPlaying
}

func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	if m.screen == ScreenWelcome {
		return m, frameCmd(m.frameInterval)
	}

	var dt time.Duration
	if !m.lastFrame.IsZero() {
		dt = now.Sub(m.lastFrame)
	}
	m.lastFrame = now

	m.ctrl.Update(dt, m.input.Frame(now))
	if m.ctrl.GameOver() {
		m.screen = ScreenGameOver
	} else {
		m.screen = ScreenPlaying
	}

	m.publish(now)
	return m, frameCmd(m.frameInterval)
}

// publish forwards the snapshot at most every publishInterval, except that
// a change to the game-over flag goes out at once.
func (m *Model) publish(now time.Time) {
	if m.publisher == nil {
		return
	}
	s := m.ctrl.Snapshot()
	if now.Sub(m.lastPublish) < publishInterval && s.GameOver == m.published.GameOver {
		return
	}
	if err := m.publisher.PublishSnapshot(s); err != nil {
		log.Printf("publish snapshot: %v", err)
		return
	}
	m.lastPublish = now
	m.published = s
}

func (m Model) View() string {
	var content string
	switch m.screen {
	case ScreenWelcome:
		content = RenderWelcome()
	default:
		content = RenderGame("BLOCKFALL", m.ctrl.Snapshot(), m.footer())
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (m Model) footer() string {
	var footer string
	if m.screen == ScreenGameOver {
		footer += RenderRestartHint() + "\n"
	}
	if m.broadcast != "" {
		footer += dimStyle.Render("Broadcasting on "+m.broadcast) + "\n"
	}
	if m.showHelp {
		footer += "\n" + RenderControls()
	}
	return footer
}
