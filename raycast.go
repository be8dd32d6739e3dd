package gocube3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Hit is the nearest piece struck by a ray.
type Hit struct {
	Piece    int
	Point    mgl64.Vec3 // world space
	Side     Side       // in the piece frame
	Color    FaceColor
	Distance float64
}

// Raycaster answers ray queries against the puzzle.
type Raycaster interface {
	Raycast(ray Ray) (Hit, bool)
}

// Raycast returns the closest visible piece hit by ray. The hidden core is
// never hit.
func (c *Cube) Raycast(ray Ray) (Hit, bool) {
	best := Hit{Piece: -1, Distance: math.Inf(1)}
	for i := range c.pieces {
		p := &c.pieces[i]
		if !p.Visible() {
			continue
		}
		inv := c.orientation.Mul(p.Orientation).Conjugate()
		o := inv.Rotate(ray.Origin.Sub(c.WorldPosition(i)))
		d := inv.Rotate(ray.Direction)
		t, n, ok := slab(o, d, pieceHalfExtent)
		if !ok || t >= best.Distance {
			continue
		}
		side := sideForNormal(n)
		best = Hit{
			Piece:    i,
			Point:    ray.At(t),
			Side:     side,
			Color:    p.Colors[side],
			Distance: t,
		}
	}
	return best, best.Piece >= 0
}

// slab intersects a ray with the axis aligned box [-h, h]^3 and returns the
// entry distance and the outward normal of the entry face.
func slab(o, d mgl64.Vec3, h float64) (float64, mgl64.Vec3, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	var normal mgl64.Vec3
	for a := 0; a < 3; a++ {
		if math.Abs(d[a]) < 1e-12 {
			if o[a] < -h || o[a] > h {
				return 0, normal, false
			}
			continue
		}
		t1 := (-h - o[a]) / d[a]
		t2 := (h - o[a]) / d[a]
		var n mgl64.Vec3
		n[a] = -1
		if t1 > t2 {
			t1, t2 = t2, t1
			n[a] = 1
		}
		if t1 > tmin {
			tmin, normal = t1, n
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, normal, false
		}
	}
	if tmin < 0 {
		return 0, normal, false
	}
	return tmin, normal, true
}

// OnBorder reports whether the hit lies within margin of an edge of the
// struck sticker. Frontends draw these points as the gap between stickers.
func (c *Cube) OnBorder(h Hit, margin float64) bool {
	p := &c.pieces[h.Piece]
	q := c.orientation.Mul(p.Orientation)
	local := q.Conjugate().Rotate(h.Point.Sub(c.WorldPosition(h.Piece)))
	normal := int(h.Side) / 2
	for a := 0; a < 3; a++ {
		if a != normal && math.Abs(local[a]) > pieceHalfExtent-margin {
			return true
		}
	}
	return false
}
