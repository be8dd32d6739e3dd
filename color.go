package gocube3d

import "github.com/go-gl/mathgl/mgl64"

// FaceColor is the color of one side of a piece.
// None marks a hidden, internal side.
type FaceColor byte

const (
	None FaceColor = iota
	Red
	Green
	Blue
	Orange
	Yellow
	White
)

func (c FaceColor) String() string {
	switch c {
	case None:
		return "-"
	case Red:
		return "R"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Orange:
		return "O"
	case Yellow:
		return "Y"
	case White:
		return "W"
	default:
		return "?"
	}
}

// Name returns the lowercase color name.
func (c FaceColor) Name() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Orange:
		return "orange"
	case Yellow:
		return "yellow"
	case White:
		return "white"
	default:
		return "none"
	}
}

// ParseFaceColor maps a color name back to a FaceColor.
func ParseFaceColor(name string) (FaceColor, bool) {
	switch name {
	case "red":
		return Red, true
	case "green":
		return Green, true
	case "blue":
		return Blue, true
	case "orange":
		return Orange, true
	case "yellow":
		return Yellow, true
	case "white":
		return White, true
	}
	return None, false
}

// Side indexes the six sides of a piece in its own frame.
type Side int

const (
	SidePosX Side = iota // right
	SideNegX             // left
	SidePosY             // up
	SideNegY             // down
	SidePosZ             // front
	SideNegZ             // back
)

// Normal returns the unit normal of the side in the piece frame.
func (s Side) Normal() mgl64.Vec3 {
	switch s {
	case SidePosX:
		return mgl64.Vec3{1, 0, 0}
	case SideNegX:
		return mgl64.Vec3{-1, 0, 0}
	case SidePosY:
		return mgl64.Vec3{0, 1, 0}
	case SideNegY:
		return mgl64.Vec3{0, -1, 0}
	case SidePosZ:
		return mgl64.Vec3{0, 0, 1}
	default:
		return mgl64.Vec3{0, 0, -1}
	}
}

// solvedColor is the color scheme of an assembled cube:
// white up, green front, red right.
func solvedColor(s Side) FaceColor {
	switch s {
	case SidePosX:
		return Red
	case SideNegX:
		return Orange
	case SidePosY:
		return White
	case SideNegY:
		return Yellow
	case SidePosZ:
		return Green
	default:
		return Blue
	}
}
