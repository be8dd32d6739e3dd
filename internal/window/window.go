//go:build ebiten

package window

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/SeamusWaldron/gocube3d"
)

var (
	background   = color.RGBA{0x20, 0x22, 0x28, 0xff}
	stickerGap   = color.RGBA{0x0c, 0x0c, 0x0c, 0xff}
	buttonIdle   = color.RGBA{0x44, 0x47, 0x50, 0xff}
	buttonActive = color.RGBA{0x2a, 0x8c, 0xe0, 0xff}

	stickerRGBA = map[gocube3d.FaceColor]color.RGBA{
		gocube3d.White:  {0xf4, 0xf4, 0xf4, 0xff},
		gocube3d.Yellow: {0xff, 0xd5, 0x00, 0xff},
		gocube3d.Red:    {0xc4, 0x1e, 0x3a, 0xff},
		gocube3d.Orange: {0xff, 0x58, 0x00, 0xff},
		gocube3d.Green:  {0x00, 0x9e, 0x60, 0xff},
		gocube3d.Blue:   {0x00, 0x51, 0xba, 0xff},
	}
)

// faceKeys maps keys to faces; shift turns counter-clockwise.
var faceKeys = map[ebiten.Key]gocube3d.Face{
	ebiten.KeyR: gocube3d.FaceR,
	ebiten.KeyL: gocube3d.FaceL,
	ebiten.KeyU: gocube3d.FaceU,
	ebiten.KeyD: gocube3d.FaceD,
	ebiten.KeyF: gocube3d.FaceF,
	ebiten.KeyB: gocube3d.FaceB,
	ebiten.KeyM: gocube3d.FaceM,
	ebiten.KeyE: gocube3d.FaceE,
	ebiten.KeyS: gocube3d.FaceS,
}

// Game adapts a controller to the ebiten.Game interface.
type Game struct {
	ctrl  *gocube3d.Controller
	cam   *gocube3d.Camera
	log   *log.Logger
	bar   *Bar
	mouse *gocube3d.PointerTracker
	touch *gocube3d.TouchTracker

	// Raycast buffer, one sample per scale x scale block of screen pixels.
	scale int
	img   *ebiten.Image
	buf   []byte

	width, height int
	held          Action
	pending       []gocube3d.Move
	shuffleTurns  int
	shuffleLeft   int
	autoShuffling bool
	solved        *gocube3d.SolveEvent

	touches map[ebiten.TouchID]mgl64.Vec2
	last    time.Time
}

// New constructs a Game for ctrl viewed through cam.
func New(ctrl *gocube3d.Controller, cam *gocube3d.Camera, logger *log.Logger, shuffleTurns, scale int) *Game {
	if scale < 1 {
		scale = 1
	}
	g := &Game{
		ctrl:         ctrl,
		cam:          cam,
		log:          logger,
		bar:          NewBar(cam.Width, cam.Height),
		scale:        scale,
		shuffleTurns: shuffleTurns,
		touches:      make(map[ebiten.TouchID]mgl64.Vec2),
	}
	g.mouse = gocube3d.NewPointerTracker(ctrl, g.bar)
	g.touch = gocube3d.NewTouchTracker(ctrl, g.bar)
	ctrl.SetProjector(cam)
	ctrl.OnSolved(func(ev gocube3d.SolveEvent) {
		g.solved = &ev
	})
	ctrl.OnShuffleChanged(func(shuffling bool) {
		if shuffling {
			g.solved = nil
		}
	})
	g.resize(cam.Width, cam.Height)
	return g
}

// Queue schedules moves to be played when the controller is idle.
func (g *Game) Queue(moves ...gocube3d.Move) {
	g.pending = append(g.pending, moves...)
}

func (g *Game) resize(w, h int) {
	if w == g.width && h == g.height {
		return
	}
	g.width, g.height = w, h
	g.cam.SetViewport(w, h)
	g.bar.Layout(w, h)
	bw, bh := (w+g.scale-1)/g.scale, (h+g.scale-1)/g.scale
	g.img = ebiten.NewImage(bw, bh)
	g.buf = make([]byte, 4*bw*bh)
}

// Update handles per-frame logic and advances the active turn.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	dt := time.Second / time.Duration(ebiten.TPS())
	if !g.last.IsZero() {
		dt = now.Sub(g.last)
	}
	g.last = now

	g.updateKeys()
	g.updateMouse()
	g.updateTouches()

	g.ctrl.Tick(dt)
	g.step()
	return nil
}

func (g *Game) updateKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.ctrl.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.ctrl.Undo()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) && !g.ctrl.Paused() && !g.autoShuffling {
		g.pending = nil
		g.ctrl.StartShuffle()
		g.shuffleLeft = g.shuffleTurns
		g.autoShuffling = true
	}
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	for key, face := range faceKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		mv := gocube3d.Move{Face: face, Turn: gocube3d.CW}
		if shift {
			mv.Turn = gocube3d.CCW
		}
		g.pending = append(g.pending, mv)
	}
}

func (g *Game) updateMouse() {
	x, y := ebiten.CursorPosition()
	p := mgl64.Vec2{float64(x), float64(y)}
	state := gocube3d.PointerState{
		Position:     p,
		Pressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
	if state.JustPressed {
		g.press(g.bar.At(p))
	}
	if state.JustReleased {
		g.release()
	}
	g.mouse.Update(state)
}

// updateTouches derives touch phases from the ids present this frame.
func (g *Game) updateTouches() {
	ids := ebiten.AppendTouchIDs(nil)
	current := make(map[ebiten.TouchID]bool, len(ids))
	var points []gocube3d.TouchPoint
	for _, id := range ids {
		current[id] = true
		x, y := ebiten.TouchPosition(id)
		p := mgl64.Vec2{float64(x), float64(y)}
		prev, seen := g.touches[id]
		phase := gocube3d.TouchStationary
		switch {
		case !seen:
			phase = gocube3d.TouchBegan
			g.press(g.bar.At(p))
		case prev != p:
			phase = gocube3d.TouchMoved
		}
		g.touches[id] = p
		points = append(points, gocube3d.TouchPoint{ID: int(id), Position: p, Phase: phase})
	}
	for id, p := range g.touches {
		if current[id] {
			continue
		}
		delete(g.touches, id)
		g.release()
		points = append(points, gocube3d.TouchPoint{ID: int(id), Position: p, Phase: gocube3d.TouchEnded})
	}
	if len(points) > 0 {
		g.touch.Update(points)
	}
}

func (g *Game) press(a Action) {
	switch a {
	case ActionShuffle:
		g.held = a
		g.autoShuffling = false
		g.ctrl.StartShuffle()
		g.ctrl.Shuffle()
	case ActionUndo:
		g.held = a
		g.ctrl.Undo()
	case ActionPause:
		g.ctrl.TogglePause()
	}
}

func (g *Game) release() {
	if g.held == ActionShuffle {
		g.ctrl.StopShuffle()
	}
	g.held = ActionNone
}

// step runs the per-frame work that needs an idle controller.
func (g *Game) step() {
	switch g.held {
	case ActionShuffle:
		g.ctrl.Shuffle()
	case ActionUndo:
		g.ctrl.Undo()
	}

	if g.autoShuffling && !g.ctrl.Busy() {
		if g.shuffleLeft > 0 {
			g.ctrl.Shuffle()
			g.shuffleLeft--
		} else {
			g.autoShuffling = false
			g.ctrl.StopShuffle()
		}
	}

	if len(g.pending) > 0 && !g.ctrl.Busy() && !g.ctrl.Paused() {
		mv := g.pending[0]
		g.pending = g.pending[1:]
		g.autoShuffling = false
		if !g.ctrl.ApplyMove(mv) {
			g.log.Warn("move could not be applied", "move", mv.Notation())
		}
	}
}

// Draw renders the cube, the buttons and the status line.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.paint()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.img, op)

	for _, btn := range g.bar.Buttons {
		fill := buttonIdle
		if btn.Action == g.held || (btn.Action == ActionPause && g.ctrl.Paused()) {
			fill = buttonActive
		}
		w, h := btn.Max.Sub(btn.Min).Elem()
		vector.DrawFilledRect(screen, float32(btn.Min.X()), float32(btn.Min.Y()), float32(w), float32(h), fill, false)
		ebitenutil.DebugPrintAt(screen, btn.Action.String(), int(btn.Min.X())+10, int(btn.Min.Y())+9)
	}

	status := fmt.Sprintf("%s  moves %d", g.ctrl.Timer(), len(g.ctrl.History()))
	switch {
	case g.ctrl.Paused():
		status += "  paused"
	case g.ctrl.Shuffling():
		status += "  shuffling"
	case g.solved != nil:
		status += fmt.Sprintf("  solved in %s", gocube3d.FormatElapsed(g.solved.Elapsed))
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 8)
}

// paint raycasts the cube into the sample buffer.
func (g *Game) paint() {
	cube := g.ctrl.Cube()
	bw, bh := g.img.Bounds().Dx(), g.img.Bounds().Dy()
	half := float64(g.scale) / 2
	for y := 0; y < bh; y++ {
		for x := 0; x < bw; x++ {
			c := color.RGBA{}
			p := mgl64.Vec2{float64(x*g.scale) + half, float64(y*g.scale) + half}
			if hit, ok := cube.Raycast(g.cam.ScreenPointToRay(p)); ok {
				c = stickerGap
				if !cube.OnBorder(hit, 0.06) {
					if s, ok := stickerRGBA[hit.Color]; ok {
						c = s
					}
				}
			}
			i := 4 * (y*bw + x)
			g.buf[i], g.buf[i+1], g.buf[i+2], g.buf[i+3] = c.R, c.G, c.B, c.A
		}
	}
	g.img.WritePixels(g.buf)
}

// Layout tracks the window size so the camera and buttons follow it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
