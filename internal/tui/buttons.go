package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
)

type buttonID int

const (
	btnNone buttonID = iota - 1
	btnShuffle
	btnUndo
	btnPause
)

type button struct {
	id    buttonID
	label string
	col   int
	width int
}

// buttonBar is the single row of buttons under the cube. It doubles as the
// gesture overlay so presses on a button never start a drag.
type buttonBar struct {
	buttons []button
	row     int // terminal row
	top     int // terminal row of the first viewport line
}

func newButtonBar() *buttonBar {
	b := &buttonBar{}
	col := 1
	for _, def := range []struct {
		id    buttonID
		label string
	}{
		{btnShuffle, "Shuffle"},
		{btnUndo, "Undo"},
		{btnPause, "Pause"},
	} {
		w := len(def.label) + 4
		b.buttons = append(b.buttons, button{id: def.id, label: def.label, col: col, width: w})
		col += w + 1
	}
	return b
}

func (b *buttonBar) layout(top, row int) {
	b.top, b.row = top, row
}

// at returns the button under a terminal cell.
func (b *buttonBar) at(col, row int) buttonID {
	if row != b.row {
		return btnNone
	}
	for _, btn := range b.buttons {
		if col >= btn.col && col < btn.col+btn.width {
			return btn.id
		}
	}
	return btnNone
}

// Contains takes a point in viewport pixels, two per terminal row.
func (b *buttonBar) Contains(p mgl64.Vec2) bool {
	col := int(math.Floor(p.X()))
	row := b.top + int(math.Floor(p.Y()/2))
	return b.at(col, row) != btnNone
}

func (b *buttonBar) render(active func(buttonID) bool) string {
	var sb strings.Builder
	col := 0
	for _, btn := range b.buttons {
		sb.WriteString(strings.Repeat(" ", btn.col-col))
		style := buttonStyle
		if active(btn.id) {
			style = activeButtonStyle
		}
		sb.WriteString(style.Width(btn.width).Render(btn.label))
		col = btn.col + btn.width
	}
	return sb.String()
}

var (
	buttonStyle = lipgloss.NewStyle().
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238"))

	activeButtonStyle = lipgloss.NewStyle().
				Align(lipgloss.Center).
				Bold(true).
				Foreground(lipgloss.Color("232")).
				Background(lipgloss.Color("39"))
)
