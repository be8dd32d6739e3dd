package gocube3d

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// netFaces lists the outer faces with the lattice position of each facelet
// (row-major, as seen from outside with U on top, or F on top for D).
var netFaces = map[Face]func(row, col float64) mgl64.Vec3{
	FaceU: func(r, c float64) mgl64.Vec3 { return mgl64.Vec3{c - 1, 1, r - 1} },
	FaceL: func(r, c float64) mgl64.Vec3 { return mgl64.Vec3{-1, 1 - r, c - 1} },
	FaceF: func(r, c float64) mgl64.Vec3 { return mgl64.Vec3{c - 1, 1 - r, 1} },
	FaceR: func(r, c float64) mgl64.Vec3 { return mgl64.Vec3{1, 1 - r, 1 - c} },
	FaceB: func(r, c float64) mgl64.Vec3 { return mgl64.Vec3{1 - c, 1 - r, -1} },
	FaceD: func(r, c float64) mgl64.Vec3 { return mgl64.Vec3{c - 1, -1, 1 - r} },
}

// Facelets returns the nine sticker colors of an outer face derived from the
// current piece poses. Slice faces return nil.
func (c *Cube) Facelets(face Face) []FaceColor {
	pos, ok := netFaces[face]
	if !ok {
		return nil
	}
	dir, _ := face.direction()
	out := make([]FaceColor, 0, 9)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			i := c.indexAt(pos(float64(row), float64(col)))
			if i < 0 {
				out = append(out, None)
				continue
			}
			out = append(out, c.pieces[i].ColorFacing(dir))
		}
	}
	return out
}

// Net returns the cube unfolded as text:
//
//	      U
//	L  F  R  B
//	      D
func (c *Cube) Net() string {
	var b strings.Builder
	row := func(f []FaceColor, r int) {
		for col := 0; col < 3; col++ {
			b.WriteString(f[r*3+col].String())
			b.WriteByte(' ')
		}
	}

	u := c.Facelets(FaceU)
	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(u, r)
		b.WriteByte('\n')
	}

	middle := [][]FaceColor{c.Facelets(FaceL), c.Facelets(FaceF), c.Facelets(FaceR), c.Facelets(FaceB)}
	for r := 0; r < 3; r++ {
		for _, f := range middle {
			row(f, r)
		}
		b.WriteByte('\n')
	}

	d := c.Facelets(FaceD)
	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(d, r)
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Cube) String() string {
	return c.Net()
}
