package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hersh/blockfall/internal/game"
	"github.com/hersh/blockfall/internal/netclient"
)

// WatchModel renders a session received from a broadcasting game.
type WatchModel struct {
	server      string
	closer      interface{ Close() }
	spectatorID string
	snapshot    *game.Snapshot

	width        int
	height       int
	disconnected bool
	err          error
}

// NewWatchModel creates a spectator view. closer is closed on quit and may be nil.
func NewWatchModel(server string, closer interface{ Close() }) WatchModel {
	return WatchModel{
		server: server,
		closer: closer,
	}
}

func (m WatchModel) Init() tea.Cmd {
	return nil
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.closer != nil {
				m.closer.Close()
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case netclient.ConnectedMsg:
		m.spectatorID = msg.SpectatorID
	case netclient.SnapshotMsg:
		s := msg.Snapshot
		m.snapshot = &s
	case netclient.DisconnectedMsg:
		m.disconnected = true
		m.err = msg.Err
	}
	return m, nil
}

func (m WatchModel) View() string {
	var content string
	switch {
	case m.disconnected && m.snapshot == nil:
		content = "Disconnected from server.\nPress Q to exit."
		if m.err != nil {
			content = fmt.Sprintf("Disconnected from server: %v\nPress Q to exit.", m.err)
		}
	case m.snapshot == nil:
		content = fmt.Sprintf("Watching %s\nWaiting for the game to start...", m.server)
	default:
		footer := dimStyle.Render("Watching "+m.server) + "\n" + infoStyle.Render("Press Q to quit")
		if m.disconnected {
			footer = gameOverStyle.Render("Disconnected") + "\n" + footer
		}
		content = RenderGame("SPECTATING", *m.snapshot, footer)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
