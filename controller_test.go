package gocube3d

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func newInteractive(t *testing.T, opts ...Option) (*Controller, *Camera) {
	t.Helper()
	cam := NewCamera(800, 600)
	c, err := NewController(cam, append([]Option{WithSeed(11), WithTurnDuration(100 * time.Millisecond)}, opts...)...)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c, cam
}

// sticker returns the screen point over the center of the sticker of the
// piece at local lattice position pos facing local direction dir.
func sticker(c *Controller, cam *Camera, pos, dir mgl64.Vec3) mgl64.Vec2 {
	local := pos.Add(dir.Mul(0.5))
	world := c.Cube().Position().Add(c.Cube().Orientation().Rotate(local))
	return cam.WorldToScreenPoint(world)
}

var front = mgl64.Vec3{0, 0, 1}

func swipe(c *Controller, from, to mgl64.Vec2) {
	c.Begin(from)
	c.Continue(from.Add(to).Mul(0.5))
	c.End(to)
}

func TestNewController_InvalidOptions(t *testing.T) {
	if _, err := NewController(nil, WithTurnDuration(0)); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("zero duration: err = %v, want ErrInvalidDuration", err)
	}
	if _, err := NewController(nil, WithEpsilon(-1)); !errors.Is(err, ErrInvalidEpsilon) {
		t.Errorf("negative epsilon: err = %v, want ErrInvalidEpsilon", err)
	}
}

func TestSwipeTurnsLayer(t *testing.T) {
	c, cam := newInteractive(t)
	var started, ended []TurnEvent
	c.OnTurnStarted(func(e TurnEvent) { started = append(started, e) })
	c.OnTurnEnded(func(e TurnEvent) { ended = append(ended, e) })

	from := sticker(c, cam, mgl64.Vec3{-1, 1, 1}, front)
	to := sticker(c, cam, mgl64.Vec3{0, 1, 1}, front)
	swipe(c, from, to)

	if !c.Busy() {
		t.Fatal("swipe across the top row should start a turn")
	}
	if _, ok := c.Gesture(); ok {
		t.Error("session should be cleared after End")
	}
	settle(t, c)

	h := c.History()
	if len(h) != 1 {
		t.Fatalf("history length = %d, want 1", len(h))
	}
	if h[0].Layer.Name() != "U" || !h[0].Named || h[0].Move != UPrime {
		t.Errorf("recorded %s %v, want U layer U'", h[0].Layer.Name(), h[0].Move)
	}
	if got := c.Cube().Piece(c.Cube().indexAt(mgl64.Vec3{1, 1, 1})).Home(); got != (mgl64.Vec3{-1, 1, 1}) {
		t.Errorf("front-right corner came from %v, want front-left", got)
	}
	if len(started) != 1 || len(ended) != 1 || started[0].Kind != TurnUser {
		t.Errorf("events started=%d ended=%d", len(started), len(ended))
	}
}

func TestSwipeAfterOrbit(t *testing.T) {
	c, cam := newInteractive(t)
	c.Cube().SetOrientation(mgl64.QuatRotate(0.3, mgl64.Vec3{0, 1, 0}).Mul(mgl64.QuatRotate(0.2, mgl64.Vec3{1, 0, 0})))

	from := sticker(c, cam, mgl64.Vec3{1, 1, 1}, front)
	to := sticker(c, cam, mgl64.Vec3{1, 0, 1}, front)
	swipe(c, from, to)
	settle(t, c)

	h := c.History()
	if len(h) != 1 {
		t.Fatalf("history length = %d, want 1", len(h))
	}
	// Dragging the right column down is R'.
	if h[0].Layer.Name() != "R" || h[0].Move != RPrime {
		t.Errorf("recorded %s %v, want R'", h[0].Layer.Name(), h[0].Move)
	}
}

func TestTapDoesNotTurn(t *testing.T) {
	c, cam := newInteractive(t)
	p := sticker(c, cam, mgl64.Vec3{0, 0, 1}, front)
	c.Begin(p)
	c.End(p)
	if c.Busy() || len(c.History()) != 0 {
		t.Error("tap should not start a turn")
	}
}

func TestBoundarySwipeRejected(t *testing.T) {
	c, cam := newInteractive(t)
	// Only F contains both pieces and both touches lie on the front plane.
	from := sticker(c, cam, mgl64.Vec3{0, 1, 1}, front)
	to := sticker(c, cam, mgl64.Vec3{1, 0, 1}, front)
	swipe(c, from, to)
	if c.Busy() || len(c.History()) != 0 {
		t.Error("swipe along the turning face should be rejected")
	}
}

func TestValidForSwipe(t *testing.T) {
	c, _ := newInteractive(t)
	rotZ := mgl64.QuatRotate(QuarterTurn, mgl64.Vec3{0, 0, 1})
	onFront := mgl64.Vec3{0, 1, 1.5}
	onTop := mgl64.Vec3{0, 1.5, 1}
	if c.validForSwipe(rotZ, onFront, mgl64.Vec3{1, 0, 1.5}) {
		t.Error("both points on the front plane should be rejected for a Z turn")
	}
	if c.validForSwipe(rotZ, onFront, onTop) {
		t.Error("one point on the front plane should be rejected for a Z turn")
	}
	if !c.validForSwipe(rotZ, onTop, mgl64.Vec3{1.5, 0, 1}) {
		t.Error("points off the front plane should be accepted for a Z turn")
	}
	expectPanic(t, ErrUnresolvedAxis, func() {
		c.validForSwipe(mgl64.QuatRotate(QuarterTurn, mgl64.Vec3{1, 1, 0}.Normalize()), onTop, onFront)
	})
}

func TestSecondBeginIgnored(t *testing.T) {
	c, cam := newInteractive(t)
	first := sticker(c, cam, mgl64.Vec3{-1, 1, 1}, front)
	second := sticker(c, cam, mgl64.Vec3{1, -1, 1}, front)

	c.Begin(first)
	c.Begin(second)
	s, ok := c.Gesture()
	if !ok {
		t.Fatal("session should be active")
	}
	if s.Start != first || s.From == nil || s.From.Piece != c.Cube().indexAt(mgl64.Vec3{-1, 1, 1}) {
		t.Error("first session should remain authoritative")
	}
}

func TestBeginWhileBusyIgnored(t *testing.T) {
	c, cam := newInteractive(t)
	c.Shuffle()
	c.Begin(sticker(c, cam, mgl64.Vec3{0, 0, 1}, front))
	if _, ok := c.Gesture(); ok {
		t.Error("Begin while busy should be a no-op")
	}
}

func TestOrbit(t *testing.T) {
	c, _ := newInteractive(t)
	before := c.Cube().Orientation()

	c.Begin(mgl64.Vec2{20, 20})
	s, ok := c.Gesture()
	if !ok || s.Type != GestureCube {
		t.Fatalf("press off the cube should start an orbit, got %v", s.Type)
	}
	c.Continue(mgl64.Vec2{120, 20})
	c.End(mgl64.Vec2{220, 40})

	if c.Cube().Orientation().OrientationEqualThreshold(before, 1e-6) {
		t.Error("orbit should rotate the cube")
	}
	if c.Busy() || len(c.History()) != 0 {
		t.Error("orbit should not turn a layer")
	}
	if !c.Cube().IsAssembled() {
		t.Error("orbit should not move pieces in cube space")
	}
}

func TestUndoEmptyIsNoop(t *testing.T) {
	c := newHeadless(t)
	c.Undo()
	if c.Busy() {
		t.Error("Undo on empty history should not start a turn")
	}
}

func TestShuffleUndoFiresSolved(t *testing.T) {
	c := newHeadless(t)
	var solved []SolveEvent
	c.OnSolved(func(e SolveEvent) { solved = append(solved, e) })

	if !c.IsSolved() {
		t.Fatal("fresh cube should be solved")
	}

	c.Shuffle()
	settle(t, c)
	if c.IsSolved() {
		t.Fatal("one shuffle turn should unsolve the cube")
	}
	if len(solved) != 0 {
		t.Fatal("shuffle turns must not report a solve")
	}
	if !c.Shuffled() || len(c.History()) != 1 {
		t.Fatalf("shuffled=%v history=%d", c.Shuffled(), len(c.History()))
	}

	c.Undo()
	settle(t, c)
	if len(solved) != 1 {
		t.Fatalf("solved events = %d, want 1", len(solved))
	}
	if solved[0].AttemptID == "" || solved[0].AttemptID != c.AttemptID() {
		t.Errorf("attempt id = %q", solved[0].AttemptID)
	}
	if len(c.History()) != 0 || c.Shuffled() {
		t.Error("solve should clear history and the shuffled flag")
	}
	if c.Timer().Running() {
		t.Error("solve should stop the timer")
	}
}

func TestNoSolveWithoutShuffle(t *testing.T) {
	c := newHeadless(t)
	fired := 0
	c.OnSolved(func(SolveEvent) { fired++ })
	apply(t, c, R, RPrime)
	if fired != 0 {
		t.Error("solve must not fire before a shuffle")
	}

	c = newHeadless(t, WithRequireShuffle(false))
	c.OnSolved(func(SolveEvent) { fired++ })
	apply(t, c, R, RPrime)
	if fired != 1 {
		t.Errorf("fired = %d, want 1 with the shuffle requirement off", fired)
	}
}

func TestBusyRejectsNewTurns(t *testing.T) {
	c := newHeadless(t)
	c.Shuffle()
	if !c.Busy() {
		t.Fatal("Shuffle should start a turn")
	}
	c.Shuffle()
	c.Undo()
	if c.ApplyMove(R) {
		t.Error("ApplyMove while busy should be rejected")
	}
	if n := len(c.History()); n != 1 {
		t.Errorf("history length = %d, want 1", n)
	}
	settle(t, c)
}

func TestShuffleAndUndoAll(t *testing.T) {
	c := newHeadless(t)
	for i := 0; i < 25; i++ {
		c.Shuffle()
		settle(t, c)
	}
	c.StopShuffle()
	if c.IsSolved() {
		t.Fatal("25 shuffle turns should leave the cube unsolved")
	}
	for i := 0; len(c.History()) > 0; i++ {
		if i > 25 {
			t.Fatal("undo did not drain history")
		}
		c.Undo()
		settle(t, c)
	}
	if !c.IsSolved() {
		t.Error("undoing every shuffle turn should solve the cube")
		t.Log(c.Cube().Net())
	}
}

func TestUndoAfterOrbit(t *testing.T) {
	c := newHeadless(t)
	apply(t, c, F, M)
	c.Cube().Orbit(mgl64.QuatRotate(2, mgl64.Vec3{1, 1, 1}.Normalize()))
	c.Undo()
	settle(t, c)
	c.Undo()
	settle(t, c)
	if !c.Cube().IsAssembled() {
		t.Error("undo should restore the cube regardless of orbit")
		t.Log(c.Cube().Net())
	}
}

func TestShuffleSequence(t *testing.T) {
	c := newHeadless(t)
	var changes []bool
	c.OnShuffleChanged(func(on bool) { changes = append(changes, on) })

	c.StartShuffle()
	first := c.AttemptID()
	for i := 0; i < 3; i++ {
		c.Shuffle()
		settle(t, c)
	}
	if !c.Shuffling() || c.Timer().Running() {
		t.Error("timer should wait until shuffling stops")
	}
	c.StopShuffle()
	if !c.Timer().Running() {
		t.Error("timer should run after shuffling")
	}
	c.Tick(1500 * time.Millisecond)
	if c.Timer().Elapsed() != 1500*time.Millisecond {
		t.Errorf("Elapsed() = %v", c.Timer().Elapsed())
	}

	c.StartShuffle()
	if c.AttemptID() == first {
		t.Error("a new shuffle should start a new attempt")
	}
	if len(c.History()) != 0 || c.Timer().Elapsed() != 0 {
		t.Error("a new shuffle should clear history and reset the timer")
	}
	c.Shuffle()
	settle(t, c)
	apply(t, c, R)
	if c.Shuffling() {
		t.Error("a user turn should close the shuffle sequence")
	}
	if len(changes) != 4 || !changes[0] || changes[1] || !changes[2] || changes[3] {
		t.Errorf("shuffle changes = %v", changes)
	}
}

func TestPause(t *testing.T) {
	c, cam := newInteractive(t)
	var pauses []bool
	c.OnPauseChanged(func(p bool) { pauses = append(pauses, p) })

	c.Shuffle()
	c.Pause()
	rotated := c.ActiveTurn().Rotated()
	c.Tick(time.Second)
	if c.ActiveTurn() == nil || c.ActiveTurn().Rotated() != rotated {
		t.Error("paused controller should not advance the turn")
	}
	c.Resume()
	settle(t, c)

	c.Pause()
	c.Shuffle()
	c.Undo()
	c.Begin(sticker(c, cam, mgl64.Vec3{0, 0, 1}, front))
	if c.Busy() {
		t.Error("paused controller should ignore shuffle and undo")
	}
	if _, ok := c.Gesture(); ok {
		t.Error("paused controller should ignore gestures")
	}
	c.TogglePause()
	if c.Paused() {
		t.Error("TogglePause should resume")
	}
	if len(pauses) != 4 {
		t.Errorf("pause events = %v", pauses)
	}
}

func TestApplyMoveNotation(t *testing.T) {
	c := newHeadless(t)
	var moves []Move
	c.OnTurnEnded(func(e TurnEvent) { moves = append(moves, e.Record.Move) })
	seq, err := ParseMoves("R U2 M' E S'")
	if err != nil {
		t.Fatal(err)
	}
	apply(t, c, seq...)
	if FormatMoves(moves) != "R U2 M' E S'" {
		t.Errorf("recorded %q", FormatMoves(moves))
	}
}

func TestTimerFormat(t *testing.T) {
	var tm Timer
	tm.Tick(time.Second)
	if tm.Elapsed() != 0 {
		t.Error("stopped timer should not advance")
	}
	tm.Start()
	tm.Tick(61*time.Second + 230*time.Millisecond)
	if got := tm.String(); got != "01:01:23" {
		t.Errorf("String() = %q, want 01:01:23", got)
	}
	tm.Reset()
	if tm.String() != "00:00:00" || tm.Running() {
		t.Error("Reset should zero and stop the timer")
	}
}
