package gocube3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind classifies a piece by its home position.
type Kind int

const (
	KindCore   Kind = iota // hidden pivot of the middle slices
	KindCenter             // one colored side
	KindEdge               // two colored sides
	KindCorner             // three colored sides
)

func (k Kind) String() string {
	switch k {
	case KindCore:
		return "core"
	case KindCenter:
		return "center"
	case KindEdge:
		return "edge"
	case KindCorner:
		return "corner"
	default:
		return "unknown"
	}
}

// Piece is one sub-cube of the puzzle.
//
// Colors are indexed by Side in the piece's own frame and never change.
// Position and Orientation place the piece in cube-local space; turns move
// the pose and the colors travel with it.
type Piece struct {
	Colors      [6]FaceColor
	Position    mgl64.Vec3
	Orientation mgl64.Quat

	home mgl64.Vec3
}

func newPiece(home mgl64.Vec3) Piece {
	p := Piece{
		Position:    home,
		Orientation: mgl64.QuatIdent(),
		home:        home,
	}
	for s := SidePosX; s <= SideNegZ; s++ {
		if home.Dot(s.Normal()) > 0.5 {
			p.Colors[s] = solvedColor(s)
		}
	}
	return p
}

// Home returns the lattice position the piece occupies on an assembled cube.
func (p Piece) Home() mgl64.Vec3 {
	return p.home
}

// Kind reports whether the piece is a center, edge, corner or the core.
func (p Piece) Kind() Kind {
	n := 0
	for _, v := range p.home {
		if math.Abs(v) > 0.5 {
			n++
		}
	}
	return Kind(n)
}

// Visible reports whether any side carries a color.
func (p Piece) Visible() bool {
	for _, c := range p.Colors {
		if c != None {
			return true
		}
	}
	return false
}

// HasColor reports whether c is one of the piece's face colors.
func (p Piece) HasColor(c FaceColor) bool {
	for _, pc := range p.Colors {
		if pc == c {
			return true
		}
	}
	return false
}

// ColorFacing returns the color of the side pointing along dir, a direction
// in cube-local space.
func (p Piece) ColorFacing(dir mgl64.Vec3) FaceColor {
	local := p.Orientation.Conjugate().Rotate(dir)
	return p.Colors[sideForNormal(local)]
}
