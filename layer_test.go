package gocube3d

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func TestFindNeighbors_AllLayersAllAxes(t *testing.T) {
	c := newHeadless(t)
	rng := rand.New(rand.NewPCG(3, 4))

	check := func(stage string) {
		for _, l := range c.Cube().Layers() {
			for _, axis := range l.WorldAxes() {
				n, ok := l.FindNeighbors(axis)
				if !ok || len(n) != 8 {
					t.Errorf("%s: layer %s axis %v: got %d neighbors", stage, l.Name(), axis, len(n))
				}
				for _, i := range n {
					if i == l.Pivot() {
						t.Errorf("%s: layer %s lists its pivot as a neighbor", stage, l.Name())
					}
				}
			}
		}
	}

	check("assembled")
	for i := 0; i < 10; i++ {
		c.Cube().Orbit(mgl64.QuatRotate(rng.Float64()*math.Pi, mgl64.Vec3{rng.Float64(), rng.Float64(), 1}.Normalize()))
		c.Shuffle()
		settle(t, c)
		check("shuffled")
	}
}

func TestFindNeighbors_WrongAxisFails(t *testing.T) {
	c := NewCube()
	u := c.Layer("U")
	if _, ok := u.FindNeighbors(mgl64.Vec3{1, 0, 0}); ok {
		t.Error("U layer should have no neighbor set about X")
	}
	if _, ok := u.FindNeighbors(mgl64.Vec3{1, 1, 0}.Normalize()); ok {
		t.Error("diagonal axis should not yield 8 neighbors")
	}
}

func TestComputeRotation_SamePieceNotFound(t *testing.T) {
	c := NewCube()
	for _, l := range c.Layers() {
		for i := 0; i < c.Len(); i++ {
			if _, ok := l.ComputeRotation(i, i); ok {
				t.Errorf("layer %s: ComputeRotation(%d, %d) should not be found", l.Name(), i, i)
			}
		}
	}
}

func TestComputeRotation_Direction(t *testing.T) {
	c := NewCube()
	u := c.Layer("U")
	from := c.indexAt(mgl64.Vec3{-1, 1, 1})
	to := c.indexAt(mgl64.Vec3{0, 1, 1})

	rot, ok := u.ComputeRotation(from, to)
	if !ok {
		t.Fatal("U layer should contain both pieces")
	}
	got := rot.Rotate(mgl64.Vec3{-1, 0, 1})
	if !nearVec(got, mgl64.Vec3{1, 0, 1}, 1e-9) {
		t.Errorf("rotation carries front-left to %v, want front-right", got)
	}

	back, ok := u.ComputeRotation(to, from)
	if !ok {
		t.Fatal("reverse swipe should also be found")
	}
	if !back.Mul(rot).OrientationEqualThreshold(mgl64.QuatIdent(), 1e-9) {
		t.Error("reverse swipe should give the inverse rotation")
	}

	if _, ok := c.Layer("R").ComputeRotation(from, to); ok {
		t.Error("R layer should not contain the front-left piece")
	}
}

func TestComputeRotation_CoreSlices(t *testing.T) {
	c := NewCube()
	core := c.Layer("core")
	from := c.indexAt(mgl64.Vec3{0, 1, 1})
	to := c.indexAt(mgl64.Vec3{0, 1, 0})
	rot, ok := core.ComputeRotation(from, to)
	if !ok {
		t.Fatal("core should turn the M slice")
	}
	_, axis := AngleAxis(rot)
	if k, ok := latticeAxis(axis, 1e-6); !ok || k != 0 {
		t.Errorf("M slice axis = %v, want X", axis)
	}
}

func TestRoundTrip(t *testing.T) {
	c := NewCube()
	for _, l := range c.Layers() {
		for _, axis := range l.WorldAxes() {
			before := c.Pieces()
			rot := mgl64.QuatRotate(QuarterTurn, axis)

			turn := l.AnimateTurn(rot, time.Second)
			turn.Tick(2 * time.Second)
			turn = l.AnimateTurn(rot.Conjugate(), time.Second)
			turn.Tick(2 * time.Second)

			after := c.Pieces()
			for i := range before {
				if !nearVec(after[i].Position, before[i].Position, 1e-9) ||
					!after[i].Orientation.OrientationEqualThreshold(before[i].Orientation, 1e-9) {
					t.Errorf("layer %s axis %v: piece %d not restored", l.Name(), axis, i)
				}
			}
		}
	}
}

func TestRandomQuarterTurn(t *testing.T) {
	c := NewCube()
	rng := rand.New(rand.NewPCG(1, 2))
	core := c.Layer("core")
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		angle, axis := AngleAxis(core.RandomQuarterTurn(rng))
		if math.Abs(angle-QuarterTurn) > 1e-9 {
			t.Fatalf("angle = %v, want pi/2", angle)
		}
		k, ok := latticeAxis(axis, 1e-9)
		if !ok {
			t.Fatalf("axis %v is not a cube axis", axis)
		}
		seen[k] = true
	}
	if len(seen) != 3 {
		t.Errorf("core axes used = %d, want 3", len(seen))
	}
}

func TestIsFaceSolved(t *testing.T) {
	c := NewCube()
	for _, l := range c.Layers() {
		if l.Color() == None {
			continue
		}
		if !l.IsFaceSolved(l.Color()) {
			t.Errorf("%s face should be solved on a new cube", l.Name())
		}
	}
	if c.Layer("U").IsFaceSolved(Red) {
		t.Error("U face is not red")
	}
}

func TestIsFaceSolved_CorruptPanics(t *testing.T) {
	c := NewCube()
	c.pieces[c.indexAt(mgl64.Vec3{1, 1, 1})].Position = mgl64.Vec3{5, 5, 5}
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNeighborCount) {
			t.Errorf("recover() = %v, want ErrNeighborCount", r)
		}
	}()
	c.Layer("U").IsFaceSolved(White)
}

func TestLayerColors(t *testing.T) {
	c := NewCube()
	want := map[FaceColor]string{White: "U", Yellow: "D", Green: "F", Blue: "B", Red: "R", Orange: "L"}
	for col, name := range want {
		l := c.LayerByColor(col)
		if l == nil || l.Name() != name {
			t.Errorf("LayerByColor(%s) = %v, want %s", col.Name(), l, name)
		}
	}
	if c.LayerByColor(None) != nil {
		t.Error("no layer should have color None")
	}
}
