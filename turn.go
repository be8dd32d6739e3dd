package gocube3d

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// TurnPhase is the stage of a layer animation.
type TurnPhase int

const (
	TurnPrepare TurnPhase = iota
	TurnRun
	TurnRelease
	TurnDone
)

func (p TurnPhase) String() string {
	switch p {
	case TurnPrepare:
		return "prepare"
	case TurnRun:
		return "run"
	case TurnRelease:
		return "release"
	case TurnDone:
		return "done"
	default:
		return "unknown"
	}
}

type pose struct {
	position    mgl64.Vec3
	orientation mgl64.Quat
}

// LayerTurn is an in-flight layer animation. It is created prepared, advanced by
// Tick and released on the tick that completes the angle.
//
// The axis is kept in cube-local space so orbiting the puzzle while a turn
// runs does not disturb it.
type LayerTurn struct {
	layer    *Layer
	axis     mgl64.Vec3
	total    float64
	rotated  float64
	velocity float64 // rad/s
	group    []int
	start    []pose
	center   mgl64.Vec3
	phase    TurnPhase
}

// AnimateTurn prepares a turn of the layer by a world rotation lasting
// duration. It panics when duration is not positive or the layer has no
// neighbor set for the rotation axis.
func (l *Layer) AnimateTurn(rotation mgl64.Quat, duration time.Duration) *LayerTurn {
	if duration <= 0 {
		panic(fmt.Errorf("%w: got %s", ErrInvalidDuration, duration))
	}
	t := &LayerTurn{layer: l, phase: TurnPrepare}
	t.prepare(rotation, duration)
	return t
}

func (t *LayerTurn) prepare(rotation mgl64.Quat, duration time.Duration) {
	c := t.layer.cube
	angle, worldAxis := AngleAxis(rotation)
	neighbors := t.layer.mustNeighbors(worldAxis)

	t.axis = c.ToLocalDir(worldAxis).Normalize()
	t.total = angle
	t.velocity = angle / duration.Seconds()
	t.center = c.pieces[t.layer.pivot].Position
	t.group = append([]int{t.layer.pivot}, neighbors...)
	t.start = make([]pose, len(t.group))
	for k, i := range t.group {
		t.start[k] = pose{c.pieces[i].Position, c.pieces[i].Orientation}
	}
	t.phase = TurnRun
}

// Tick advances the turn by dt and reports whether it has finished.
func (t *LayerTurn) Tick(dt time.Duration) bool {
	if t.phase != TurnRun {
		return t.phase == TurnDone
	}
	if dt > 0 {
		step := t.velocity * dt.Seconds()
		if t.total-t.rotated <= step {
			t.rotated = t.total
		} else {
			t.rotated += step
		}
	}
	t.apply(t.rotated)
	if t.rotated >= t.total {
		t.release()
	}
	return t.phase == TurnDone
}

// apply poses the group at angle from its starting poses.
func (t *LayerTurn) apply(angle float64) {
	r := mgl64.QuatRotate(angle, t.axis)
	pieces := t.layer.cube.pieces
	for k, i := range t.group {
		s := t.start[k]
		pieces[i].Position = t.center.Add(r.Rotate(s.position.Sub(t.center)))
		pieces[i].Orientation = r.Mul(s.orientation).Normalize()
	}
}

func (t *LayerTurn) release() {
	t.phase = TurnRelease
	c := t.layer.cube
	for _, i := range t.group {
		c.pieces[i].Position = SnapPosition(c.pieces[i].Position)
		c.pieces[i].Orientation = SnapOrientation(c.pieces[i].Orientation)
	}
	t.layer.mustNeighbors(c.ToWorldDir(t.axis))
	t.phase = TurnDone
}

// Layer returns the layer being turned.
func (t *LayerTurn) Layer() *Layer {
	return t.layer
}

// Axis returns the turn axis in cube-local space.
func (t *LayerTurn) Axis() mgl64.Vec3 {
	return t.axis
}

// Angle returns the total angle of the turn in radians.
func (t *LayerTurn) Angle() float64 {
	return t.total
}

// Rotated returns the angle applied so far.
func (t *LayerTurn) Rotated() float64 {
	return t.rotated
}

// Phase returns the current stage.
func (t *LayerTurn) Phase() TurnPhase {
	return t.phase
}

// Done reports whether the turn has been released.
func (t *LayerTurn) Done() bool {
	return t.phase == TurnDone
}

// Rotation returns the full turn in cube-local space.
func (t *LayerTurn) Rotation() mgl64.Quat {
	return mgl64.QuatRotate(t.total, t.axis)
}

// Pieces returns the arena indices moved by the turn, pivot first.
func (t *LayerTurn) Pieces() []int {
	return append([]int(nil), t.group...)
}
