package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/gocube3d"
)

// Sticker colors (ANSI 256)
var stickerColors = map[gocube3d.FaceColor]lipgloss.TerminalColor{
	gocube3d.White:  lipgloss.Color("255"),
	gocube3d.Yellow: lipgloss.Color("226"),
	gocube3d.Red:    lipgloss.Color("196"),
	gocube3d.Orange: lipgloss.Color("208"),
	gocube3d.Green:  lipgloss.Color("40"),
	gocube3d.Blue:   lipgloss.Color("27"),
}

var (
	borderColor lipgloss.TerminalColor = lipgloss.Color("233")
	emptyColor  lipgloss.TerminalColor = lipgloss.NoColor{}
)

const (
	halfBlock     = "▀"
	stickerMargin = 0.06
)

// renderer draws the cube with one upper half block per cell: the glyph
// takes the top sample's color and the cell background the bottom one's.
type renderer struct {
	styles map[[2]lipgloss.TerminalColor]lipgloss.Style
}

func newRenderer() *renderer {
	return &renderer{styles: make(map[[2]lipgloss.TerminalColor]lipgloss.Style)}
}

func (r *renderer) style(top, bottom lipgloss.TerminalColor) lipgloss.Style {
	key := [2]lipgloss.TerminalColor{top, bottom}
	s, ok := r.styles[key]
	if !ok {
		s = lipgloss.NewStyle().Foreground(top).Background(bottom)
		r.styles[key] = s
	}
	return s
}

func (r *renderer) render(cube *gocube3d.Cube, cam *gocube3d.Camera, cols, rows int) string {
	lines := make([]string, rows)
	var sb strings.Builder
	for row := 0; row < rows; row++ {
		sb.Reset()
		for col := 0; col < cols; col++ {
			top := sample(cube, cam, col, 2*row)
			bottom := sample(cube, cam, col, 2*row+1)
			if top == emptyColor && bottom == emptyColor {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(r.style(top, bottom).Render(halfBlock))
		}
		lines[row] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func sample(cube *gocube3d.Cube, cam *gocube3d.Camera, x, y int) lipgloss.TerminalColor {
	hit, ok := cube.Raycast(cam.ScreenPointToRay(mgl64.Vec2{float64(x) + 0.5, float64(y) + 0.5}))
	if !ok {
		return emptyColor
	}
	if cube.OnBorder(hit, stickerMargin) {
		return borderColor
	}
	if c, ok := stickerColors[hit.Color]; ok {
		return c
	}
	return borderColor
}

// cellPoint maps a terminal cell inside the viewport to viewport pixels.
func cellPoint(col, row, top int) mgl64.Vec2 {
	return mgl64.Vec2{float64(col) + 0.5, float64(2*(row-top)) + 1}
}
