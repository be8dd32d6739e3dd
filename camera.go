package gocube3d

import "github.com/go-gl/mathgl/mgl64"

// Projector maps screen points into the world. Screen coordinates have
// their origin at the top left corner and grow right and down.
type Projector interface {
	// ScreenPointToRay returns the ray from the near plane through p.
	ScreenPointToRay(p mgl64.Vec2) Ray
	// ScreenToWorldPoint returns the world point under p at the given
	// distance in front of the camera.
	ScreenToWorldPoint(p mgl64.Vec2, depth float64) mgl64.Vec3
	// NearClip returns the distance of the near plane.
	NearClip() float64
}

// Camera is a perspective camera looking at Target.
type Camera struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3
	FovY   float64 // degrees
	Near   float64
	Far    float64
	Width  int
	Height int
}

// NewCamera returns a camera on the +Z axis looking at the origin from far
// enough away to frame the whole puzzle.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Eye:    mgl64.Vec3{0, 0, 9},
		Target: mgl64.Vec3{},
		Up:     mgl64.Vec3{0, 1, 0},
		FovY:   35,
		Near:   0.3,
		Far:    100,
		Width:  width,
		Height: height,
	}
}

// SetViewport resizes the screen the camera projects onto.
func (c *Camera) SetViewport(width, height int) {
	c.Width, c.Height = width, height
}

// SetDistance moves the eye along its current line of sight.
func (c *Camera) SetDistance(d float64) {
	dir := c.Eye.Sub(c.Target)
	if dir.Len() == 0 {
		dir = mgl64.Vec3{0, 0, 1}
	}
	c.Eye = c.Target.Add(dir.Normalize().Mul(d))
}

func (c *Camera) aspect() float64 {
	if c.Height == 0 {
		return 1
	}
	return float64(c.Width) / float64(c.Height)
}

// View returns the view matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye, c.Target, c.Up)
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), c.aspect(), c.Near, c.Far)
}

func (c *Camera) unproject(p mgl64.Vec2, z float64) mgl64.Vec3 {
	win := mgl64.Vec3{p.X(), float64(c.Height) - p.Y(), z}
	obj, err := mgl64.UnProject(win, c.View(), c.Projection(), 0, 0, c.Width, c.Height)
	if err != nil {
		return c.Eye
	}
	return obj
}

// ScreenPointToRay implements Projector.
func (c *Camera) ScreenPointToRay(p mgl64.Vec2) Ray {
	near := c.unproject(p, 0)
	far := c.unproject(p, 1)
	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// ScreenToWorldPoint implements Projector.
func (c *Camera) ScreenToWorldPoint(p mgl64.Vec2, depth float64) mgl64.Vec3 {
	dir := c.unproject(p, 0).Sub(c.Eye).Normalize()
	forward := c.Target.Sub(c.Eye).Normalize()
	cos := dir.Dot(forward)
	if cos <= 0 {
		return c.Eye
	}
	return c.Eye.Add(dir.Mul(depth / cos))
}

// NearClip implements Projector.
func (c *Camera) NearClip() float64 {
	return c.Near
}

// WorldToScreenPoint projects a world point onto the screen.
func (c *Camera) WorldToScreenPoint(v mgl64.Vec3) mgl64.Vec2 {
	win := mgl64.Project(v, c.View(), c.Projection(), 0, 0, c.Width, c.Height)
	return mgl64.Vec2{win.X(), float64(c.Height) - win.Y()}
}

// ViewRotation returns the cube orientation for a yaw about world up
// followed by a pitch toward the viewer, both in degrees.
func ViewRotation(yaw, pitch float64) mgl64.Quat {
	y := mgl64.QuatRotate(mgl64.DegToRad(yaw), mgl64.Vec3{0, 1, 0})
	p := mgl64.QuatRotate(mgl64.DegToRad(pitch), mgl64.Vec3{1, 0, 0})
	return p.Mul(y)
}
