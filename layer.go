package gocube3d

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// QuarterTurn is the angle of a single layer turn in radians.
const QuarterTurn = math.Pi / 2

// Layer is a turnable slab of 9 pieces: a pivot and its 8 coplanar
// neighbors. Face layers pivot on a face center and turn about one axis;
// the core layer pivots on the hidden center and turns the M, E and S
// slices about any of the three cube axes.
type Layer struct {
	name  string
	cube  *Cube
	pivot int
	axes  []mgl64.Vec3 // in the pivot's frame
	color FaceColor
}

// Name returns R, L, U, D, F, B or core.
func (l *Layer) Name() string {
	return l.name
}

// Pivot returns the arena index of the pivot piece.
func (l *Layer) Pivot() int {
	return l.pivot
}

// Color returns the face color of the layer, None for the core.
func (l *Layer) Color() FaceColor {
	return l.color
}

// Center returns the world position of the pivot.
func (l *Layer) Center() mgl64.Vec3 {
	return l.cube.WorldPosition(l.pivot)
}

// LocalCenter returns the pivot position in cube-local space.
func (l *Layer) LocalCenter() mgl64.Vec3 {
	return l.cube.pieces[l.pivot].Position
}

func (l *Layer) orientation() mgl64.Quat {
	return l.cube.orientation.Mul(l.cube.pieces[l.pivot].Orientation)
}

// WorldAxes returns the candidate axes mapped into world space.
func (l *Layer) WorldAxes() []mgl64.Vec3 {
	q := l.orientation()
	out := make([]mgl64.Vec3, len(l.axes))
	for i, a := range l.axes {
		out[i] = DirectionForLocalAxis(a, q)
	}
	return out
}

// FindNeighbors returns the arena indices of the pieces coplanar with the
// pivot on the plane with normal worldAxis, excluding the pivot and the
// hidden core. It fails unless exactly 8 pieces qualify.
func (l *Layer) FindNeighbors(worldAxis mgl64.Vec3) ([]int, bool) {
	center := l.Center()
	out := make([]int, 0, 8)
	for i := range l.cube.pieces {
		if i == l.pivot || !l.cube.pieces[i].Visible() {
			continue
		}
		if math.Abs(PlaneDistance(l.cube.WorldPosition(i), worldAxis, center)) < l.cube.eps {
			out = append(out, i)
		}
	}
	if len(out) != 8 {
		return nil, false
	}
	return out, true
}

// mustNeighbors is FindNeighbors for callers that are about to move pieces.
func (l *Layer) mustNeighbors(worldAxis mgl64.Vec3) []int {
	n, ok := l.FindNeighbors(worldAxis)
	if !ok {
		panic(fmt.Errorf("%w: layer %s axis %v", ErrNeighborCount, l.name, worldAxis))
	}
	return n
}

// ComputeRotation returns the world quarter turn that carries piece from
// toward piece to, if some axis of the layer puts both in one neighbor set.
func (l *Layer) ComputeRotation(from, to int) (mgl64.Quat, bool) {
	center := l.Center()
	for _, axis := range l.WorldAxes() {
		n, ok := l.FindNeighbors(axis)
		if !ok {
			continue
		}
		if !slices.Contains(n, from) || !slices.Contains(n, to) {
			continue
		}
		a := l.cube.WorldPosition(from).Sub(center)
		b := l.cube.WorldPosition(to).Sub(center)
		d := a.Cross(b).Dot(axis)
		if math.Abs(d) < l.cube.eps {
			continue
		}
		angle := QuarterTurn
		if d < 0 {
			angle = -angle
		}
		return mgl64.QuatRotate(angle, axis), true
	}
	return mgl64.QuatIdent(), false
}

// RandomQuarterTurn returns a +90 degree world rotation about one of the
// layer's axes chosen uniformly.
func (l *Layer) RandomQuarterTurn(rng *rand.Rand) mgl64.Quat {
	axes := l.WorldAxes()
	return mgl64.QuatRotate(QuarterTurn, axes[rng.IntN(len(axes))])
}

// IsFaceSolved reports whether every neighbor on the face-forming axis
// carries color.
func (l *Layer) IsFaceSolved(color FaceColor) bool {
	for _, i := range l.mustNeighbors(l.WorldAxes()[0]) {
		if !l.cube.pieces[i].HasColor(color) {
			return false
		}
	}
	return true
}

func (l *Layer) String() string {
	return l.name
}
