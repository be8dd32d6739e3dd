package gocube3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type recordingSink struct {
	calls  []string
	paused bool
}

func (s *recordingSink) Begin(mgl64.Vec2)    { s.calls = append(s.calls, "begin") }
func (s *recordingSink) Continue(mgl64.Vec2) { s.calls = append(s.calls, "continue") }
func (s *recordingSink) End(mgl64.Vec2)      { s.calls = append(s.calls, "end") }
func (s *recordingSink) Paused() bool        { return s.paused }

// rectOverlay covers x < 100.
type rectOverlay struct{}

func (rectOverlay) Contains(p mgl64.Vec2) bool { return p.X() < 100 }

func sameCalls(got []string, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestPointerTracker(t *testing.T) {
	sink := &recordingSink{}
	tr := NewPointerTracker(sink, rectOverlay{})

	tr.Update(PointerState{Position: mgl64.Vec2{200, 200}, Pressed: true, JustPressed: true})
	tr.Update(PointerState{Position: mgl64.Vec2{200, 200}, Pressed: true})
	tr.Update(PointerState{Position: mgl64.Vec2{210, 200}, Pressed: true})
	tr.Update(PointerState{Position: mgl64.Vec2{220, 200}, JustReleased: true})
	tr.Update(PointerState{Position: mgl64.Vec2{220, 200}})

	if !sameCalls(sink.calls, "begin", "continue", "end") {
		t.Errorf("calls = %v", sink.calls)
	}
	if tr.Tracking() {
		t.Error("tracker should be idle after release")
	}
}

func TestPointerTrackerOverlay(t *testing.T) {
	sink := &recordingSink{}
	tr := NewPointerTracker(sink, rectOverlay{})

	tr.Update(PointerState{Position: mgl64.Vec2{50, 50}, Pressed: true, JustPressed: true})
	tr.Update(PointerState{Position: mgl64.Vec2{300, 50}, Pressed: true})
	tr.Update(PointerState{Position: mgl64.Vec2{300, 50}, JustReleased: true})

	if len(sink.calls) != 0 {
		t.Errorf("press on the overlay should not be tracked, got %v", sink.calls)
	}
}

func TestPointerTrackerPaused(t *testing.T) {
	sink := &recordingSink{paused: true}
	tr := NewPointerTracker(sink, nil)
	tr.Update(PointerState{Position: mgl64.Vec2{200, 200}, Pressed: true, JustPressed: true})
	tr.Update(PointerState{Position: mgl64.Vec2{200, 200}, JustReleased: true})
	if len(sink.calls) != 0 {
		t.Errorf("paused sink should receive nothing, got %v", sink.calls)
	}
}

func TestTouchTracker(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTouchTracker(sink, rectOverlay{})

	tr.Update([]TouchPoint{{ID: 3, Position: mgl64.Vec2{200, 200}, Phase: TouchBegan}})
	tr.Update([]TouchPoint{
		{ID: 4, Position: mgl64.Vec2{400, 400}, Phase: TouchBegan},
		{ID: 3, Position: mgl64.Vec2{210, 200}, Phase: TouchMoved},
	})
	tr.Update([]TouchPoint{
		{ID: 4, Position: mgl64.Vec2{400, 400}, Phase: TouchEnded},
		{ID: 3, Position: mgl64.Vec2{210, 200}, Phase: TouchStationary},
	})
	tr.Update([]TouchPoint{{ID: 3, Position: mgl64.Vec2{220, 200}, Phase: TouchEnded}})
	tr.Update(nil)

	if !sameCalls(sink.calls, "begin", "continue", "end") {
		t.Errorf("calls = %v", sink.calls)
	}
}

func TestTouchTrackerOverlayAndPause(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTouchTracker(sink, rectOverlay{})
	tr.Update([]TouchPoint{{ID: 1, Position: mgl64.Vec2{10, 10}, Phase: TouchBegan}})
	tr.Update([]TouchPoint{{ID: 1, Position: mgl64.Vec2{300, 10}, Phase: TouchEnded}})
	if len(sink.calls) != 0 {
		t.Errorf("touch on the overlay should not be tracked, got %v", sink.calls)
	}

	sink.paused = true
	tr.Update([]TouchPoint{{ID: 2, Position: mgl64.Vec2{300, 300}, Phase: TouchBegan}})
	if len(sink.calls) != 0 || tr.Tracking() {
		t.Error("paused sink should receive nothing")
	}
}

func TestPointerTrackerDrivesController(t *testing.T) {
	c, cam := newInteractive(t)
	tr := NewPointerTracker(c, nil)

	from := sticker(c, cam, mgl64.Vec3{-1, 1, 1}, front)
	to := sticker(c, cam, mgl64.Vec3{0, 1, 1}, front)
	tr.Update(PointerState{Position: from, Pressed: true, JustPressed: true})
	tr.Update(PointerState{Position: from.Add(to).Mul(0.5), Pressed: true})
	tr.Update(PointerState{Position: to, JustReleased: true})

	if !c.Busy() {
		t.Error("tracked swipe should start a turn")
	}
	settle(t, c)
	if len(c.History()) != 1 {
		t.Errorf("history length = %d, want 1", len(c.History()))
	}
}

func TestPointerTrackerPauseDropsDrag(t *testing.T) {
	c, cam := newInteractive(t)
	tr := NewPointerTracker(c, nil)

	from := sticker(c, cam, mgl64.Vec3{-1, 1, 1}, front)
	to := sticker(c, cam, mgl64.Vec3{0, 1, 1}, front)

	tr.Update(PointerState{Position: from, Pressed: true, JustPressed: true})
	c.Pause()
	tr.Update(PointerState{Position: from, JustReleased: true})
	c.Resume()

	if tr.Tracking() {
		t.Error("pause should drop the drag in the tracker")
	}
	if _, ok := c.Gesture(); ok {
		t.Error("pause should drop the controller gesture")
	}

	// A fresh drag from the background orbits and never turns a layer.
	bg := mgl64.Vec2{5, 5}
	tr.Update(PointerState{Position: bg, Pressed: true, JustPressed: true})
	tr.Update(PointerState{Position: bg.Add(to).Mul(0.5), Pressed: true})
	tr.Update(PointerState{Position: to, JustReleased: true})

	if c.Busy() || len(c.History()) != 0 {
		t.Errorf("busy=%v history=%d, want no turn", c.Busy(), len(c.History()))
	}
}

func TestTouchTrackerPauseDropsContact(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTouchTracker(sink, nil)

	tr.Update([]TouchPoint{{ID: 1, Position: mgl64.Vec2{200, 200}, Phase: TouchBegan}})
	sink.paused = true
	tr.Update([]TouchPoint{{ID: 1, Position: mgl64.Vec2{210, 200}, Phase: TouchMoved}})
	sink.paused = false
	if tr.Tracking() {
		t.Fatal("pause should drop the contact")
	}

	tr.Update([]TouchPoint{{ID: 1, Position: mgl64.Vec2{220, 200}, Phase: TouchEnded}})
	tr.Update([]TouchPoint{{ID: 2, Position: mgl64.Vec2{300, 300}, Phase: TouchBegan}})
	tr.Update([]TouchPoint{{ID: 2, Position: mgl64.Vec2{310, 300}, Phase: TouchEnded}})

	if !sameCalls(sink.calls, "begin", "begin", "end") {
		t.Errorf("calls = %v", sink.calls)
	}
}
