package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hersh/blockfall/internal/game"
)

var (
	colors = map[game.Color]string{
		game.ColorNone:   "0",
		game.ColorCyan:   "51",
		game.ColorYellow: "226",
		game.ColorPurple: "129",
		game.ColorGreen:  "46",
		game.ColorRed:    "196",
		game.ColorBlue:   "21",
		game.ColorOrange: "214",
	}

	ghostColor = "244"

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("15"))

	infoStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("15"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	gameOverStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

func colorOf(c game.Color) string {
	if s, ok := colors[c]; ok {
		return s
	}
	return "248"
}

// RenderBoard draws the stack, the ghost and the active piece.
func RenderBoard(s game.Snapshot) string {
	type cell struct {
		char, color string
	}
	var grid [game.BoardHeight][game.BoardWidth]cell

	for y := 0; y < game.BoardHeight; y++ {
		for x := 0; x < game.BoardWidth; x++ {
			grid[y][x] = cell{"  ", colorOf(game.ColorNone)}
			if c := s.Board.Cells[y][x]; c.Filled {
				grid[y][x] = cell{"██", colorOf(c.Color)}
			}
		}
	}

	if ghost, ok := s.Ghost(); ok {
		for _, p := range ghost.Cells() {
			if inBoard(p) && !s.Board.Cells[p.Y][p.X].Filled {
				grid[p.Y][p.X] = cell{"[]", ghostColor}
			}
		}
	}
	if s.Active != nil {
		color := colorOf(s.Active.Color())
		for _, p := range s.Active.Cells() {
			if inBoard(p) {
				grid[p.Y][p.X] = cell{"██", color}
			}
		}
	}

	var sb strings.Builder
	for y := 0; y < game.BoardHeight; y++ {
		for x := 0; x < game.BoardWidth; x++ {
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(grid[y][x].color)).
				Render(grid[y][x].char))
		}
		if y < game.BoardHeight-1 {
			sb.WriteString("\n")
		}
	}

	return boardStyle.Render(sb.String())
}

func inBoard(p game.Point) bool {
	return p.X >= 0 && p.X < game.BoardWidth && p.Y >= 0 && p.Y < game.BoardHeight
}

// RenderPiece draws a piece preview cropped to its occupied rows and columns.
func RenderPiece(p game.Piece) string {
	minX, minY, maxX, maxY := game.FrameSize, game.FrameSize, -1, -1
	for y := 0; y < game.FrameSize; y++ {
		for x := 0; x < game.FrameSize; x++ {
			if p.Mask(x, y) {
				minX, maxX = min(minX, x), max(maxX, x)
				minY, maxY = min(minY, y), max(maxY, y)
			}
		}
	}
	if maxX < 0 {
		return ""
	}

	var sb strings.Builder
	pieceStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorOf(p.Color())))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if p.Mask(x, y) {
				sb.WriteString(pieceStyle.Render("██"))
			} else {
				sb.WriteString("  ")
			}
		}
		if y < maxY {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func RenderInfo(title string, s game.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(title) + "\n\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Score: %d", s.Score)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Level: %d", s.Level)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Lines: %d", s.Lines)) + "\n\n")

	sb.WriteString(titleStyle.Render("NEXT") + "\n")
	sb.WriteString(RenderPiece(s.Next) + "\n")

	if s.GameOver {
		sb.WriteString("\n" + gameOverStyle.Render("GAME OVER") + "\n")
	}

	return sb.String()
}

func RenderWelcome() string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("51")).
		Align(lipgloss.Center).
		Render(`
╔══════════════════════════════╗
║      B L O C K F A L L       ║
╚══════════════════════════════╝

   Press ENTER or S to start
   Press Q to quit
`)
}

func RenderRestartHint() string {
	return infoStyle.Render("Press R to restart")
}

func RenderControls() string {
	return infoStyle.Render(`Controls:
  ← → / A D  Move
  ↑ / W      Rotate
  ↓ / S      Soft drop
  Space      Hard drop
  R          Restart
  Q          Quit`)
}

// RenderGame lays out the info panel next to the board.
func RenderGame(title string, s game.Snapshot, footer string) string {
	leftPanel := lipgloss.NewStyle().
		Width(24).
		Render(RenderInfo(title, s) + "\n" + footer)

	centerPanel := lipgloss.NewStyle().
		Padding(1, 2).
		Render(RenderBoard(s))

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, centerPanel)
}
