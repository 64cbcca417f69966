package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	cubegame "github.com/trollgameskr/cube-game"
	"github.com/trollgameskr/cube-game/internal/netview"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// View renders the net, status and prompts.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	size := m.engine.Size()

	b.WriteString(titleStyle.Render(fmt.Sprintf("Cube %d×%d×%d", size, size, size)))
	b.WriteString("\n\n")
	b.WriteString(m.renderNet())
	b.WriteString("\n")

	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	if m.message != "" {
		if m.isError {
			b.WriteString(errorStyle.Render(m.message))
		} else {
			b.WriteString(phaseStyle.Render(m.message))
		}
		b.WriteString("\n")
	}

	if m.victory {
		b.WriteString("\n")
		b.WriteString(m.renderVictory())
		b.WriteString("\n")
	} else if m.showBoard {
		b.WriteString("\n")
		b.WriteString(m.renderBoard())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))
	b.WriteString("\n")
	return b.String()
}

// renderNet draws the net rows starting at column netLeft. Each line must
// line up with m.layout so mouse hits land on the drawn sticker.
func (m *Model) renderNet() string {
	cube := m.engine.Snapshot()
	grid := netview.Grid(cube)
	size := cube.Size()

	turning := map[int]float64{}
	if anim, ok := m.engine.Animation(); ok {
		for _, id := range anim.PieceIDs {
			turning[id] = anim.Progress
		}
	}

	rows := [3][4]cubegame.Face{
		{"", cubegame.FaceU, "", ""},
		{cubegame.FaceL, cubegame.FaceF, cubegame.FaceR, cubegame.FaceB},
		{"", cubegame.FaceD, "", ""},
	}
	blank := strings.Repeat(" ", size*netview.CellWidth)
	gap := strings.Repeat(" ", m.layout.Gap)

	var b strings.Builder
	for band := 0; band < 3; band++ {
		for r := 0; r < size; r++ {
			line := strings.Repeat(" ", m.layout.Left)
			for slot, f := range rows[band] {
				if slot > 0 {
					line += gap
				}
				if f == "" {
					line += blank
					continue
				}
				for c := 0; c < size; c++ {
					line += m.renderSticker(cube, f, r, c, grid[f][r][c], turning)
				}
			}
			b.WriteString(strings.TrimRight(line, " "))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) renderSticker(cube *cubegame.Cube, f cubegame.Face, r, c int, color cubegame.Face, turning map[int]float64) string {
	hex := netview.Hex(color)
	switch {
	case m.dragging && f == m.dragFace && r == m.dragR && c == m.dragC:
		hex = netview.Highlight(color, 0.5)
	case len(turning) > 0:
		if p, ok := cube.PieceAt(m.layout.Hit(f, r, c).Piece); ok {
			if progress, ok := turning[p.ID]; ok {
				hex = netview.Dim(color, 0.4*(1-progress))
			}
		}
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(strings.Repeat(" ", netview.CellWidth))
}

func (m *Model) renderStatus() string {
	progress := m.engine.Progress()
	last := "-"
	if h := m.engine.History(); len(h) > 0 {
		last = h[len(h)-1].Notation
	}

	status := fmt.Sprintf("Moves: %d  Time: %s  Last: %s  Drag: %s",
		m.engine.MoveCount(),
		formatElapsed(m.tracker.Elapsed()),
		moveStyle.Render(last),
		m.engine.Resolver().Mode)
	if m.depth > 1 {
		status += fmt.Sprintf("  Layer: %d", m.depth)
	}

	phase := fmt.Sprintf("Phase: %s (%.0f%% home)",
		phaseStyle.Render(progress.Phase.DisplayName()), progress.Percent())
	return statusStyle.Render(status) + "\n" + statusStyle.Render(phase)
}

func (m *Model) renderVictory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Solved!"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Moves: %d  Time: %s\n", m.result.Moves, formatElapsed(m.result.Elapsed)))
	b.WriteString(fmt.Sprintf("Nickname: %s_\n", m.nickname))
	b.WriteString(helpStyle.Render("enter=save  esc=skip"))
	return boxStyle.Render(b.String())
}

func (m *Model) renderBoard() string {
	size := m.engine.Size()
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Leaderboard %d×%d×%d", size, size, size)))
	b.WriteString("\n")
	if len(m.board) == 0 {
		b.WriteString(statusStyle.Render("No scores yet. Set the first record!"))
		return boxStyle.Render(b.String())
	}
	for i, s := range m.board {
		b.WriteString(fmt.Sprintf("%2d. %-20s %4d moves  %s\n", i+1, s.Nickname, s.Moves, formatElapsed(s.Time)))
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) help() string {
	k := m.keys.Keys
	return fmt.Sprintf("%s%s%s%s%s%s turn (shift = prime, 1-9 = layer)  %s=undo  enter=scramble  backspace=reset  +/-=size  tab=drag mode  ?=scores  esc=quit",
		k["U"], k["D"], k["L"], k["R"], k["F"], k["B"], k["undo"])
}
