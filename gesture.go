package gocube3d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// GestureType classifies a drag.
type GestureType int

const (
	GestureNone  GestureType = iota // resolved or ignored
	GestureCube                     // orbit the whole puzzle
	GestureLayer                    // turn one layer
)

func (g GestureType) String() string {
	switch g {
	case GestureCube:
		return "cube"
	case GestureLayer:
		return "layer"
	default:
		return "none"
	}
}

// PieceTouch is a ray hit on a piece.
type PieceTouch struct {
	Piece int
	Point mgl64.Vec3 // world space
}

// RotationInfo is the state of one drag from Begin to End.
type RotationInfo struct {
	Type     GestureType
	Start    mgl64.Vec2
	Previous mgl64.Vec2
	Current  mgl64.Vec2
	From     *PieceTouch
	To       *PieceTouch
}

// touch casts a ray through p and returns the piece under it.
func (c *Controller) touch(p mgl64.Vec2) (*PieceTouch, bool) {
	hit, ok := c.raycaster.Raycast(c.projector.ScreenPointToRay(p))
	if !ok {
		return nil, false
	}
	return &PieceTouch{Piece: hit.Piece, Point: hit.Point}, true
}

// orbitRotation returns the rotation carrying the near plane point under
// from onto the one under to, both taken relative to the cube center.
func (c *Controller) orbitRotation(from, to mgl64.Vec2) mgl64.Quat {
	depth := c.projector.NearClip()
	center := c.cube.Position()
	a := c.projector.ScreenToWorldPoint(from, depth).Sub(center)
	b := c.projector.ScreenToWorldPoint(to, depth).Sub(center)
	if a.Len() < c.cfg.epsilon || b.Len() < c.cfg.epsilon {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatBetweenVectors(a.Normalize(), b.Normalize())
}

// findTurn searches every layer for a rotation joining the two touches that
// survives the boundary test.
func (c *Controller) findTurn(from, to PieceTouch) (*Layer, mgl64.Quat, bool) {
	for _, l := range c.cube.layers {
		rot, ok := l.ComputeRotation(from.Piece, to.Piece)
		if !ok {
			continue
		}
		if c.validForSwipe(rot, from.Point, to.Point) {
			return l, rot, true
		}
	}
	return nil, mgl64.QuatIdent(), false
}

// validForSwipe rejects a rotation when a touch point lies on a boundary
// plane of the cube perpendicular to the rotation axis. Such a swipe runs
// along the face being turned rather than across it.
func (c *Controller) validForSwipe(rot mgl64.Quat, a, b mgl64.Vec3) bool {
	_, axis := AngleAxis(rot)
	k, ok := latticeAxis(c.cube.ToLocalDir(axis), 1e-3)
	if !ok {
		panic(fmt.Errorf("%w: %v", ErrUnresolvedAxis, axis))
	}
	return !c.cube.onBoundary(a, k) && !c.cube.onBoundary(b, k)
}
