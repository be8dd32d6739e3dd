package gocube3d

import "github.com/go-gl/mathgl/mgl64"

// GestureSink consumes normalized drags. Controller implements it.
type GestureSink interface {
	Begin(p mgl64.Vec2)
	Continue(p mgl64.Vec2)
	End(p mgl64.Vec2)
	Paused() bool
}

// Overlay reports whether an interactive UI element covers a screen point.
type Overlay interface {
	Contains(p mgl64.Vec2) bool
}

// PointerState is one frame of mouse or pen input.
type PointerState struct {
	Position     mgl64.Vec2
	Pressed      bool
	JustPressed  bool
	JustReleased bool
}

// PointerTracker turns per-frame pointer polling into Begin/Continue/End.
type PointerTracker struct {
	sink     GestureSink
	overlay  Overlay
	tracking bool
	last     mgl64.Vec2
}

// NewPointerTracker feeds sink; overlay may be nil.
func NewPointerTracker(sink GestureSink, overlay Overlay) *PointerTracker {
	return &PointerTracker{sink: sink, overlay: overlay}
}

// Tracking reports whether a drag is being forwarded.
func (t *PointerTracker) Tracking() bool {
	return t.tracking
}

// Update processes one frame of pointer state. Pausing the sink drops the
// drag in progress; the button has to be pressed again after resuming.
func (t *PointerTracker) Update(s PointerState) {
	if t.sink.Paused() {
		t.tracking = false
		return
	}
	switch {
	case s.JustPressed:
		if t.tracking || overlayContains(t.overlay, s.Position) {
			return
		}
		t.tracking = true
		t.last = s.Position
		t.sink.Begin(s.Position)
	case s.JustReleased:
		if !t.tracking {
			return
		}
		t.tracking = false
		t.sink.End(s.Position)
	case s.Pressed && t.tracking:
		if s.Position == t.last {
			return
		}
		t.last = s.Position
		t.sink.Continue(s.Position)
	}
}

// TouchPhase is the lifecycle stage of a touch contact.
type TouchPhase int

const (
	TouchBegan TouchPhase = iota
	TouchMoved
	TouchStationary
	TouchEnded
	TouchCanceled
)

// TouchPoint is one contact reported by a touch screen.
type TouchPoint struct {
	ID       int
	Position mgl64.Vec2
	Phase    TouchPhase
}

// TouchTracker follows the primary contact of a multi-touch screen.
type TouchTracker struct {
	sink     GestureSink
	overlay  Overlay
	tracking bool
	id       int
}

// NewTouchTracker feeds sink; overlay may be nil.
func NewTouchTracker(sink GestureSink, overlay Overlay) *TouchTracker {
	return &TouchTracker{sink: sink, overlay: overlay}
}

// Tracking reports whether a contact is being forwarded.
func (t *TouchTracker) Tracking() bool {
	return t.tracking
}

// Update processes the contacts of one frame. The first contact is primary
// until it lifts. Pausing the sink drops the contact in progress.
func (t *TouchTracker) Update(touches []TouchPoint) {
	if t.sink.Paused() {
		t.tracking = false
		return
	}
	if len(touches) == 0 {
		return
	}

	tp := touches[0]
	if t.tracking {
		found := false
		for _, c := range touches {
			if c.ID == t.id {
				tp, found = c, true
				break
			}
		}
		if !found {
			return
		}
	}

	switch tp.Phase {
	case TouchBegan:
		if t.tracking || overlayContains(t.overlay, tp.Position) {
			return
		}
		t.tracking = true
		t.id = tp.ID
		t.sink.Begin(tp.Position)
	case TouchMoved:
		if t.tracking {
			t.sink.Continue(tp.Position)
		}
	case TouchEnded, TouchCanceled:
		if t.tracking {
			t.tracking = false
			t.sink.End(tp.Position)
		}
	}
}

func overlayContains(o Overlay, p mgl64.Vec2) bool {
	return o != nil && o.Contains(p)
}
