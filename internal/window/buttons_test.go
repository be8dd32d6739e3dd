package window

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/gocube3d"
)

var _ gocube3d.Overlay = (*Bar)(nil)

func TestBarLayout(t *testing.T) {
	b := NewBar(640, 480)
	if len(b.Buttons) != 3 {
		t.Fatalf("got %d buttons, want 3", len(b.Buttons))
	}

	tests := []struct {
		p    mgl64.Vec2
		want Action
	}{
		{mgl64.Vec2{20, 450}, ActionShuffle},
		{mgl64.Vec2{130, 450}, ActionUndo},
		{mgl64.Vec2{240, 450}, ActionPause},
		{mgl64.Vec2{320, 240}, ActionNone},
		{mgl64.Vec2{20, 300}, ActionNone},
	}
	for _, tt := range tests {
		if got := b.At(tt.p); got != tt.want {
			t.Errorf("At(%v) = %v, want %v", tt.p, got, tt.want)
		}
		if got := b.Contains(tt.p); got != (tt.want != ActionNone) {
			t.Errorf("Contains(%v) = %v", tt.p, got)
		}
	}

	b.Layout(640, 800)
	if b.At(mgl64.Vec2{20, 450}) != ActionNone || b.At(mgl64.Vec2{20, 770}) != ActionShuffle {
		t.Error("buttons should follow the bottom edge after Layout")
	}
}

func TestBarShieldsDrags(t *testing.T) {
	ctrl, err := gocube3d.NewController(gocube3d.NewCamera(640, 480))
	if err != nil {
		t.Fatal(err)
	}
	bar := NewBar(640, 480)
	tr := gocube3d.NewPointerTracker(ctrl, bar)

	tr.Update(gocube3d.PointerState{Position: mgl64.Vec2{20, 450}, Pressed: true, JustPressed: true})
	if tr.Tracking() {
		t.Error("a press on a button must not start a drag")
	}
	tr.Update(gocube3d.PointerState{Position: mgl64.Vec2{320, 240}, Pressed: true, JustPressed: true})
	if !tr.Tracking() {
		t.Error("a press on the cube should start a drag")
	}
}
