package gocube3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCameraProjection(t *testing.T) {
	cam := NewCamera(800, 600)

	center := cam.WorldToScreenPoint(mgl64.Vec3{})
	if !center.ApproxEqualThreshold(mgl64.Vec2{400, 300}, 1e-6) {
		t.Errorf("origin projects to %v, want screen center", center)
	}

	up := cam.WorldToScreenPoint(mgl64.Vec3{0, 1, 0})
	if up.Y() >= center.Y() {
		t.Errorf("world up should be screen up, got %v", up)
	}

	ray := cam.ScreenPointToRay(mgl64.Vec2{400, 300})
	if !nearVec(ray.Direction, mgl64.Vec3{0, 0, -1}, 1e-6) {
		t.Errorf("center ray direction = %v", ray.Direction)
	}
	if math.Abs(ray.Origin.Z()-(cam.Eye.Z()-cam.Near)) > 1e-6 {
		t.Errorf("center ray origin = %v, want on the near plane", ray.Origin)
	}
}

func TestCameraRayThroughProjectedPoint(t *testing.T) {
	cam := NewCamera(640, 480)
	target := mgl64.Vec3{0.7, -1.1, 1.5}
	ray := cam.ScreenPointToRay(cam.WorldToScreenPoint(target))

	// distance from target to the ray line
	v := target.Sub(ray.Origin)
	d := v.Sub(ray.Direction.Mul(v.Dot(ray.Direction))).Len()
	if d > 1e-6 {
		t.Errorf("ray misses projected point by %v", d)
	}
}

func TestScreenToWorldPoint(t *testing.T) {
	cam := NewCamera(800, 600)
	p := cam.ScreenToWorldPoint(mgl64.Vec2{400, 300}, 2)
	if !nearVec(p, mgl64.Vec3{0, 0, 7}, 1e-6) {
		t.Errorf("ScreenToWorldPoint = %v, want (0,0,7)", p)
	}
	q := cam.ScreenToWorldPoint(mgl64.Vec2{100, 300}, 2)
	if q.X() >= 0 || math.Abs(q.Z()-7) > 1e-6 {
		t.Errorf("left point = %v", q)
	}
}

func TestRaycast(t *testing.T) {
	c := NewCube()
	hit, ok := c.Raycast(Ray{Origin: mgl64.Vec3{0, 0, 9}, Direction: mgl64.Vec3{0, 0, -1}})
	if !ok {
		t.Fatal("ray at the front center should hit")
	}
	if c.Piece(hit.Piece).Home() != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("hit piece %v", c.Piece(hit.Piece).Home())
	}
	if !nearVec(hit.Point, mgl64.Vec3{0, 0, 1.5}, 1e-9) || hit.Side != SidePosZ || hit.Color != Green {
		t.Errorf("hit = %+v", hit)
	}

	if _, ok := c.Raycast(Ray{Origin: mgl64.Vec3{5, 5, 9}, Direction: mgl64.Vec3{0, 0, -1}}); ok {
		t.Error("ray beside the cube should miss")
	}

	c.Orbit(mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}))
	hit, ok = c.Raycast(Ray{Origin: mgl64.Vec3{0, 0, 9}, Direction: mgl64.Vec3{0, 0, -1}})
	if !ok || hit.Color != Orange {
		t.Errorf("after a quarter orbit the left face should face the camera, got %+v", hit)
	}
}

func TestOnBorder(t *testing.T) {
	c := NewCube()
	shoot := func(x, y float64) Hit {
		t.Helper()
		hit, ok := c.Raycast(Ray{Origin: mgl64.Vec3{x, y, 9}, Direction: mgl64.Vec3{0, 0, -1}})
		if !ok {
			t.Fatalf("ray at (%v, %v) missed", x, y)
		}
		return hit
	}

	if c.OnBorder(shoot(0, 0), 0.05) {
		t.Error("sticker center is not on the border")
	}
	if !c.OnBorder(shoot(0.48, 0), 0.05) {
		t.Error("point near the sticker edge should be on the border")
	}
	if !c.OnBorder(shoot(1, 1.47), 0.05) {
		t.Error("point near the cube edge should be on the border")
	}
}

func TestViewRotation(t *testing.T) {
	q := ViewRotation(0, 90)
	if got := q.Rotate(mgl64.Vec3{0, 1, 0}); !nearVec(got, mgl64.Vec3{0, 0, 1}, 1e-9) {
		t.Errorf("pitch 90 should turn up toward the viewer, got %v", got)
	}
	q = ViewRotation(-90, 0)
	if got := q.Rotate(mgl64.Vec3{1, 0, 0}); !nearVec(got, mgl64.Vec3{0, 0, 1}, 1e-9) {
		t.Errorf("yaw -90 should turn right toward the viewer, got %v", got)
	}
}
