package gocube3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// HalfExtent is the distance from the cube center to any outer face.
// Pieces are unit cubes on an integer lattice.
const HalfExtent = 1.5

const pieceHalfExtent = 0.5

// Cube is the pose arena of a 3x3x3 puzzle.
//
// It holds the 27 piece poses (26 visible pieces plus the hidden core) in
// cube-local space, the layers that turn them and the whole-puzzle
// transform. Layer turns rewrite piece poses in place; nothing is
// reparented.
type Cube struct {
	pieces      []Piece
	layers      []*Layer
	orientation mgl64.Quat
	position    mgl64.Vec3
	eps         float64
}

// NewCube creates an assembled cube centered at the origin with white up,
// green front and red right.
func NewCube() *Cube {
	return newCube(defaultConfig().epsilon)
}

func newCube(eps float64) *Cube {
	c := &Cube{
		orientation: mgl64.QuatIdent(),
		eps:         eps,
	}
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				c.pieces = append(c.pieces, newPiece(mgl64.Vec3{float64(x), float64(y), float64(z)}))
			}
		}
	}
	c.layers = c.buildLayers()
	return c
}

// buildLayers creates one layer per face center plus the core layer that
// turns the three middle slices.
func (c *Cube) buildLayers() []*Layer {
	faces := []struct {
		name string
		side Side
	}{
		{"R", SidePosX},
		{"L", SideNegX},
		{"U", SidePosY},
		{"D", SideNegY},
		{"F", SidePosZ},
		{"B", SideNegZ},
	}

	layers := make([]*Layer, 0, len(faces)+1)
	for _, f := range faces {
		n := f.side.Normal()
		layers = append(layers, &Layer{
			name:  f.name,
			cube:  c,
			pivot: c.indexAt(n),
			axes:  []mgl64.Vec3{n},
			color: solvedColor(f.side),
		})
	}
	layers = append(layers, &Layer{
		name:  "core",
		cube:  c,
		pivot: c.indexAt(mgl64.Vec3{}),
		axes: []mgl64.Vec3{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
		color: None,
	})
	return layers
}

// indexAt returns the index of the piece currently at the lattice position,
// or -1.
func (c *Cube) indexAt(pos mgl64.Vec3) int {
	for i := range c.pieces {
		if nearVec(c.pieces[i].Position, pos, 1e-3) {
			return i
		}
	}
	return -1
}

// Len returns the number of pieces including the hidden core.
func (c *Cube) Len() int {
	return len(c.pieces)
}

// Piece returns a copy of the piece at index i.
func (c *Cube) Piece(i int) Piece {
	return c.pieces[i]
}

// Pieces returns a copy of all pieces.
func (c *Cube) Pieces() []Piece {
	out := make([]Piece, len(c.pieces))
	copy(out, c.pieces)
	return out
}

// Layers returns the turnable layers: R, L, U, D, F, B and the core.
func (c *Cube) Layers() []*Layer {
	return c.layers
}

// Layer looks a layer up by name.
func (c *Cube) Layer(name string) *Layer {
	for _, l := range c.layers {
		if l.name == name {
			return l
		}
	}
	return nil
}

// LayerByColor returns the face layer whose center carries color.
func (c *Cube) LayerByColor(color FaceColor) *Layer {
	for _, l := range c.layers {
		if color != None && l.color == color {
			return l
		}
	}
	return nil
}

// faceLayerAt returns the face layer whose pivot currently sits at pos.
func (c *Cube) faceLayerAt(pos mgl64.Vec3) *Layer {
	for _, l := range c.layers {
		if l.color == None {
			continue
		}
		if nearVec(c.pieces[l.pivot].Position, pos, 1e-3) {
			return l
		}
	}
	return nil
}

// Orientation returns the world rotation of the whole puzzle.
func (c *Cube) Orientation() mgl64.Quat {
	return c.orientation
}

// SetOrientation replaces the world rotation of the whole puzzle.
func (c *Cube) SetOrientation(q mgl64.Quat) {
	c.orientation = q.Normalize()
}

// Position returns the world position of the cube center.
func (c *Cube) Position() mgl64.Vec3 {
	return c.position
}

// SetPosition moves the cube center.
func (c *Cube) SetPosition(p mgl64.Vec3) {
	c.position = p
}

// Orbit pre-multiplies rot onto the puzzle orientation so the rotation is
// relative to the view, not to the cube's own axes.
func (c *Cube) Orbit(rot mgl64.Quat) {
	c.orientation = rot.Mul(c.orientation).Normalize()
}

// WorldPosition returns the world position of piece i.
func (c *Cube) WorldPosition(i int) mgl64.Vec3 {
	return c.position.Add(c.orientation.Rotate(c.pieces[i].Position))
}

// ToLocal maps a world point into cube-local space.
func (c *Cube) ToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return c.orientation.Conjugate().Rotate(p.Sub(c.position))
}

// ToLocalDir maps a world direction into cube-local space.
func (c *Cube) ToLocalDir(d mgl64.Vec3) mgl64.Vec3 {
	return c.orientation.Conjugate().Rotate(d)
}

// ToWorldDir maps a cube-local direction into world space.
func (c *Cube) ToWorldDir(d mgl64.Vec3) mgl64.Vec3 {
	return c.orientation.Rotate(d)
}

// ToWorldRotation expresses a cube-local rotation in world space.
func (c *Cube) ToWorldRotation(q mgl64.Quat) mgl64.Quat {
	return c.orientation.Mul(q).Mul(c.orientation.Conjugate()).Normalize()
}

// ToLocalRotation expresses a world rotation in cube-local space.
func (c *Cube) ToLocalRotation(q mgl64.Quat) mgl64.Quat {
	return c.orientation.Conjugate().Mul(q).Mul(c.orientation).Normalize()
}

// onBoundary reports whether a world point lies on one of the two outer
// planes perpendicular to cube axis k.
func (c *Cube) onBoundary(p mgl64.Vec3, k int) bool {
	v := c.ToLocal(p)[k]
	return math.Abs(v-HalfExtent) < c.eps || math.Abs(v+HalfExtent) < c.eps
}

// IsAssembled reports whether every piece is back at its home pose.
func (c *Cube) IsAssembled() bool {
	for i := range c.pieces {
		p := &c.pieces[i]
		if !nearVec(p.Position, p.home, c.eps) {
			return false
		}
		if !p.Orientation.OrientationEqualThreshold(mgl64.QuatIdent(), c.eps) {
			return false
		}
	}
	return true
}

// Reset puts every piece back at its home pose. The puzzle orientation is
// kept.
func (c *Cube) Reset() {
	for i := range c.pieces {
		c.pieces[i].Position = c.pieces[i].home
		c.pieces[i].Orientation = mgl64.QuatIdent()
	}
}
