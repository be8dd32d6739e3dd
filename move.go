package gocube3d

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Face names a layer in standard notation. M, E and S are the middle slices.
type Face string

const (
	FaceR Face = "R" // Right
	FaceL Face = "L" // Left
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back
	FaceM Face = "M" // Middle, turns like L
	FaceE Face = "E" // Equator, turns like D
	FaceS Face = "S" // Standing, turns like F
)

// direction returns the cube-local direction a clockwise turn of the face
// is viewed from.
func (f Face) direction() (mgl64.Vec3, bool) {
	switch f {
	case FaceR:
		return mgl64.Vec3{1, 0, 0}, true
	case FaceL, FaceM:
		return mgl64.Vec3{-1, 0, 0}, true
	case FaceU:
		return mgl64.Vec3{0, 1, 0}, true
	case FaceD, FaceE:
		return mgl64.Vec3{0, -1, 0}, true
	case FaceF, FaceS:
		return mgl64.Vec3{0, 0, 1}, true
	case FaceB:
		return mgl64.Vec3{0, 0, -1}, true
	}
	return mgl64.Vec3{}, false
}

func (f Face) isSlice() bool {
	return f == FaceM || f == FaceE || f == FaceS
}

// Turn is the direction and magnitude of a layer turn.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// angle returns the signed rotation about the face direction.
// Clockwise seen from outside is negative.
func (t Turn) angle() float64 {
	switch t {
	case CCW:
		return QuarterTurn
	case Double:
		return -math.Pi
	default:
		return -QuarterTurn
	}
}

// Move is one layer turn in notation.
type Move struct {
	Face Face
	Turn Turn
}

// Notation returns the standard notation string for this move.
// Examples: R, R', R2, M'
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return string(m.Face) + suffix
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
	}
	return inv
}

func (m Move) String() string {
	return m.Notation()
}

// ParseMove parses a standard notation string into a Move.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	var face Face
	switch s[0] {
	case 'R', 'r':
		face = FaceR
	case 'L', 'l':
		face = FaceL
	case 'U', 'u':
		face = FaceU
	case 'D', 'd':
		face = FaceD
	case 'F', 'f':
		face = FaceF
	case 'B', 'b':
		face = FaceB
	case 'M', 'm':
		face = FaceM
	case 'E', 'e':
		face = FaceE
	case 'S', 's':
		face = FaceS
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	turn := CW
	switch s[1:] {
	case "":
	case "'", "`":
		turn = CCW
	case "2", "2'", "2`":
		turn = Double
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	return Move{Face: face, Turn: turn}, nil
}

// ParseMoves parses a space-separated sequence of moves such as "R U R' U'".
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))
	for _, part := range parts {
		m, err := ParseMove(part)
		if err != nil {
			return moves, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// FormatMoves formats moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}
	return strings.Join(parts, " ")
}

// InverseMoves returns the sequence that undoes moves.
func InverseMoves(moves []Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[len(moves)-1-i] = m.Inverse()
	}
	return out
}

// ResolveMove returns the layer currently in the position the move names and
// the cube-local rotation that performs it.
func (c *Cube) ResolveMove(m Move) (*Layer, mgl64.Quat, bool) {
	dir, ok := m.Face.direction()
	if !ok {
		return nil, mgl64.QuatIdent(), false
	}
	var l *Layer
	if m.Face.isSlice() {
		l = c.Layer("core")
	} else {
		l = c.faceLayerAt(dir)
	}
	if l == nil {
		return nil, mgl64.QuatIdent(), false
	}
	return l, mgl64.QuatRotate(m.Turn.angle(), dir), true
}

// MoveFor names a cube-local quarter or half turn of layer l in notation.
func (c *Cube) MoveFor(l *Layer, rotation mgl64.Quat) (Move, bool) {
	angle, axis := AngleAxis(rotation)
	k, ok := latticeAxis(axis, 1e-3)
	if !ok {
		return Move{}, false
	}

	center := c.pieces[l.pivot].Position
	face := faceAt(center)
	if center.Len() < 0.5 {
		face = [3]Face{FaceM, FaceE, FaceS}[k]
	}

	dir, _ := face.direction()
	signed := angle * axis.Dot(dir)
	switch {
	case math.Abs(math.Abs(signed)-math.Pi) < 1e-3:
		return Move{Face: face, Turn: Double}, true
	case math.Abs(signed+QuarterTurn) < 1e-3:
		return Move{Face: face, Turn: CW}, true
	case math.Abs(signed-QuarterTurn) < 1e-3:
		return Move{Face: face, Turn: CCW}, true
	}
	return Move{}, false
}

// FaceOf returns the outer face where the center of color currently sits.
func (c *Cube) FaceOf(color FaceColor) (Face, bool) {
	l := c.LayerByColor(color)
	if l == nil {
		return "", false
	}
	return faceAt(c.pieces[l.pivot].Position), true
}

// faceAt names the outer face a face-center lattice position belongs to.
func faceAt(p mgl64.Vec3) Face {
	switch {
	case p.X() > 0.5:
		return FaceR
	case p.X() < -0.5:
		return FaceL
	case p.Y() > 0.5:
		return FaceU
	case p.Y() < -0.5:
		return FaceD
	case p.Z() > 0.5:
		return FaceF
	default:
		return FaceB
	}
}
