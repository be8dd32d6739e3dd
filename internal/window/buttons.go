// Package window runs the cube in a desktop window with ebiten. The window
// itself needs the ebiten build tag; the button layout builds everywhere.
package window

import "github.com/go-gl/mathgl/mgl64"

// Action is what a button does.
type Action int

const (
	ActionNone Action = iota
	ActionShuffle
	ActionUndo
	ActionPause
)

func (a Action) String() string {
	switch a {
	case ActionShuffle:
		return "Shuffle"
	case ActionUndo:
		return "Undo"
	case ActionPause:
		return "Pause"
	default:
		return ""
	}
}

// Button is a screen rectangle with an action.
type Button struct {
	Action Action
	Min    mgl64.Vec2
	Max    mgl64.Vec2
}

func (b Button) contains(p mgl64.Vec2) bool {
	return p.X() >= b.Min.X() && p.X() < b.Max.X() && p.Y() >= b.Min.Y() && p.Y() < b.Max.Y()
}

const (
	buttonWidth  = 96
	buttonHeight = 32
	buttonMargin = 12
)

// Bar is the row of buttons along the bottom edge of the window.
type Bar struct {
	Buttons []Button
}

// NewBar lays out the buttons for a screen of the given size.
func NewBar(width, height int) *Bar {
	b := &Bar{}
	b.Layout(width, height)
	return b
}

// Layout positions the buttons for a new screen size.
func (b *Bar) Layout(width, height int) {
	actions := []Action{ActionShuffle, ActionUndo, ActionPause}
	b.Buttons = b.Buttons[:0]
	y := float64(height - buttonMargin - buttonHeight)
	for i, a := range actions {
		x := float64(buttonMargin + i*(buttonWidth+buttonMargin))
		b.Buttons = append(b.Buttons, Button{
			Action: a,
			Min:    mgl64.Vec2{x, y},
			Max:    mgl64.Vec2{x + buttonWidth, y + buttonHeight},
		})
	}
}

// At returns the action of the button under p.
func (b *Bar) At(p mgl64.Vec2) Action {
	for _, btn := range b.Buttons {
		if btn.contains(p) {
			return btn.Action
		}
	}
	return ActionNone
}

// Contains implements gocube3d.Overlay.
func (b *Bar) Contains(p mgl64.Vec2) bool {
	return b.At(p) != ActionNone
}
