// Package tui runs the cube in a terminal with bubbletea.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/gocube3d"
	"github.com/SeamusWaldron/gocube3d/internal/config"
	"github.com/SeamusWaldron/gocube3d/internal/smartcube"
)

const (
	frameInterval = 33 * time.Millisecond
	maxFrame      = 100 * time.Millisecond
	orbitStep     = 15.0 // degrees per arrow key
	historyShown  = 14
	chromeRows    = 5 // title, buttons, status, history, help
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Messages
type tickMsg time.Time
type rotationMsg struct{ events []smartcube.RotationEvent }
type configMsg struct{ cfg *config.Config }
type orientationMsg struct{ ev *smartcube.OrientationEvent }

// Options wires a Model to its controller and optional sources.
type Options struct {
	Controller   *gocube3d.Controller
	Camera       *gocube3d.Camera
	Logger       *log.Logger
	ShuffleTurns int

	// Rotations carries moves from a connected smart cube.
	Rotations  <-chan []smartcube.RotationEvent
	DeviceName string

	// Orientations carries the smart cube's attitude. When set, the view
	// follows the physical cube.
	Orientations <-chan *smartcube.OrientationEvent

	// Configs carries hot-reloaded configuration.
	Configs <-chan *config.Config
}

// Model is the bubbletea model for an interactive session.
type Model struct {
	ctrl    *gocube3d.Controller
	cam     *gocube3d.Camera
	log     *log.Logger
	pointer *gocube3d.PointerTracker
	bar     *buttonBar
	draw    *renderer

	rotations    <-chan []smartcube.RotationEvent
	orientations <-chan *smartcube.OrientationEvent
	configs      <-chan *config.Config
	deviceName   string
	view         mgl64.Quat // orientation the attitude is applied to

	// Shuffle and queued moves
	shuffleTurns  int
	shuffleLeft   int
	autoShuffling bool
	held          buttonID
	pending       []gocube3d.Move

	// Notation entry
	entering bool
	entry    string

	// UI
	width     int
	height    int
	viewRows  int
	lastFrame time.Time
	solved    *gocube3d.SolveEvent
	err       error
	quitting  bool
}

// New returns a model for opts. Controller and Camera are required.
func New(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Model{
		ctrl:         opts.Controller,
		cam:          opts.Camera,
		log:          logger,
		bar:          newButtonBar(),
		draw:         newRenderer(),
		rotations:    opts.Rotations,
		orientations: opts.Orientations,
		configs:      opts.Configs,
		deviceName:   opts.DeviceName,
		shuffleTurns: opts.ShuffleTurns,
		held:         btnNone,
	}
	if m.shuffleTurns <= 0 {
		m.shuffleTurns = 25
	}
	m.view = m.ctrl.Cube().Orientation()
	m.pointer = gocube3d.NewPointerTracker(m.ctrl, m.bar)
	m.ctrl.SetProjector(m.cam)
	m.ctrl.OnSolved(func(ev gocube3d.SolveEvent) {
		m.solved = &ev
	})
	m.ctrl.OnShuffleChanged(func(shuffling bool) {
		if shuffling {
			m.solved = nil
		}
	})
	m.resize(80, 24)
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.listenForRotations(),
		m.listenForOrientations(),
		m.listenForConfig(),
	)
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) listenForRotations() tea.Cmd {
	if m.rotations == nil {
		return nil
	}
	return func() tea.Msg {
		evs, ok := <-m.rotations
		if !ok {
			return nil
		}
		return rotationMsg{events: evs}
	}
}

func (m *Model) listenForOrientations() tea.Cmd {
	if m.orientations == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-m.orientations
		if !ok {
			return nil
		}
		return orientationMsg{ev: ev}
	}
}

func (m *Model) listenForConfig() tea.Cmd {
	if m.configs == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-m.configs
		if !ok {
			return nil
		}
		return configMsg{cfg: cfg}
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.viewRows = height - chromeRows
	if m.viewRows < 4 {
		m.viewRows = 4
	}
	m.cam.SetViewport(width, m.viewRows*2)
	m.bar.layout(1, 1+m.viewRows)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.entering {
			m.updateEntry(msg)
			return m, nil
		}
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tickMsg:
		now := time.Time(msg)
		dt := frameInterval
		if !m.lastFrame.IsZero() {
			dt = now.Sub(m.lastFrame)
		}
		if dt > maxFrame {
			dt = maxFrame
		}
		m.lastFrame = now
		m.ctrl.Tick(dt)
		m.step()
		return m, m.tickCmd()

	case rotationMsg:
		for _, ev := range msg.events {
			mv, ok := ev.Move(m.ctrl.Cube())
			if !ok {
				m.log.Warn("smart cube rotation has no layer", "face", ev.FaceCode)
				continue
			}
			m.pending = append(m.pending, mv)
		}
		return m, m.listenForRotations()

	case orientationMsg:
		m.ctrl.Cube().SetOrientation(m.view.Mul(msg.ev.Rotation))
		return m, m.listenForOrientations()

	case configMsg:
		m.applyConfig(msg.cfg)
		return m, m.listenForConfig()
	}

	return m, nil
}

// step runs the per-frame work that needs an idle controller.
func (m *Model) step() {
	switch m.held {
	case btnShuffle:
		m.ctrl.Shuffle()
	case btnUndo:
		m.ctrl.Undo()
	}

	if m.autoShuffling && !m.ctrl.Busy() {
		if m.shuffleLeft > 0 {
			m.ctrl.Shuffle()
			m.shuffleLeft--
		} else {
			m.autoShuffling = false
			m.ctrl.StopShuffle()
		}
	}

	if len(m.pending) > 0 && !m.ctrl.Busy() && !m.ctrl.Paused() {
		mv := m.pending[0]
		m.pending = m.pending[1:]
		m.autoShuffling = false
		if !m.ctrl.ApplyMove(mv) {
			m.log.Warn("move could not be applied", "move", mv.Notation())
		}
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.err = nil
	switch key := msg.String(); key {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return tea.Quit

	case ":":
		m.entering = true
		m.entry = ""

	case " ", "p":
		m.ctrl.TogglePause()

	case "x":
		m.startAutoShuffle()

	case "z", "backspace":
		m.ctrl.Undo()

	case "left", "right", "up", "down":
		m.orbitKey(key)

	default:
		if mv, ok := keyMove(key); ok {
			m.pending = append(m.pending, mv)
		}
	}
	return nil
}

// keyMove maps an upper case face letter to a clockwise turn and a lower
// case one to a counter-clockwise turn.
func keyMove(key string) (gocube3d.Move, bool) {
	if len(key) != 1 {
		return gocube3d.Move{}, false
	}
	mv, err := gocube3d.ParseMove(strings.ToUpper(key))
	if err != nil {
		return gocube3d.Move{}, false
	}
	if key[0] >= 'a' && key[0] <= 'z' {
		mv.Turn = gocube3d.CCW
	}
	return mv, true
}

func (m *Model) updateEntry(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.entering = false
	case tea.KeyEnter:
		m.entering = false
		moves, err := gocube3d.ParseMoves(m.entry)
		if err != nil {
			m.err = err
			return
		}
		m.pending = append(m.pending, moves...)
	case tea.KeyBackspace:
		if len(m.entry) > 0 {
			m.entry = m.entry[:len(m.entry)-1]
		}
	case tea.KeySpace:
		m.entry += " "
	case tea.KeyRunes:
		m.entry += string(msg.Runes)
	}
}

func (m *Model) orbitKey(key string) {
	if m.ctrl.Paused() {
		return
	}
	angle := mgl64.DegToRad(orbitStep)
	var rot mgl64.Quat
	switch key {
	case "left":
		rot = mgl64.QuatRotate(-angle, mgl64.Vec3{0, 1, 0})
	case "right":
		rot = mgl64.QuatRotate(angle, mgl64.Vec3{0, 1, 0})
	case "up":
		rot = mgl64.QuatRotate(-angle, mgl64.Vec3{1, 0, 0})
	case "down":
		rot = mgl64.QuatRotate(angle, mgl64.Vec3{1, 0, 0})
	}
	m.ctrl.Cube().Orbit(rot)
}

func (m *Model) startAutoShuffle() {
	if m.ctrl.Paused() || m.autoShuffling {
		return
	}
	m.pending = nil
	m.ctrl.StartShuffle()
	m.shuffleLeft = m.shuffleTurns
	m.autoShuffling = true
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	p := cellPoint(msg.X, msg.Y, m.bar.top)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.press(m.bar.at(msg.X, msg.Y))
		m.pointer.Update(gocube3d.PointerState{Position: p, Pressed: true, JustPressed: true})
	case tea.MouseActionMotion:
		if m.pointer.Tracking() {
			m.pointer.Update(gocube3d.PointerState{Position: p, Pressed: true})
		}
	case tea.MouseActionRelease:
		m.release()
		m.pointer.Update(gocube3d.PointerState{Position: p, JustReleased: true})
	}
}

func (m *Model) press(id buttonID) {
	switch id {
	case btnShuffle:
		m.held = id
		m.autoShuffling = false
		m.ctrl.StartShuffle()
		m.ctrl.Shuffle()
	case btnUndo:
		m.held = id
		m.ctrl.Undo()
	case btnPause:
		m.ctrl.TogglePause()
	}
}

func (m *Model) release() {
	if m.held == btnShuffle {
		m.ctrl.StopShuffle()
	}
	m.held = btnNone
}

func (m *Model) applyConfig(cfg *config.Config) {
	if err := cfg.Validate(); err != nil {
		m.log.Warn("ignoring reloaded config", "err", err)
		return
	}
	m.ctrl.SetTurnDuration(cfg.Game.TurnDuration.Duration)
	m.cam.FovY = cfg.Camera.Fov
	m.cam.SetDistance(cfg.Camera.Distance)
	m.shuffleTurns = cfg.Game.ShuffleTurns
	m.log.Info("config reloaded", "turn_duration", cfg.Game.TurnDuration.Duration, "fov", cfg.Camera.Fov)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := titleStyle.Render("gocube3d")
	if m.deviceName != "" {
		title += statusStyle.Render("  mirroring " + m.deviceName)
	}
	b.WriteString(title + "\n")

	b.WriteString(m.draw.render(m.ctrl.Cube(), m.cam, m.width, m.viewRows))
	b.WriteString("\n")

	b.WriteString(m.bar.render(func(id buttonID) bool {
		return id == m.held || (id == btnPause && m.ctrl.Paused())
	}))
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.historyLine())
	b.WriteString("\n")

	switch {
	case m.entering:
		b.WriteString(moveStyle.Render(": " + m.entry + "_"))
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	default:
		b.WriteString(helpStyle.Render("RLUDFBMES turn (lower case: prime)  : notation  x shuffle  z undo  space pause  arrows orbit  q quit"))
	}

	return b.String()
}

func (m *Model) statusLine() string {
	parts := []string{timerStyle.Render(m.ctrl.Timer().String())}
	parts = append(parts, statusStyle.Render(fmt.Sprintf("moves %d", len(m.ctrl.History()))))
	switch {
	case m.ctrl.Paused():
		parts = append(parts, statusStyle.Render("paused"))
	case m.ctrl.Shuffling():
		parts = append(parts, statusStyle.Render("shuffling"))
	case m.solved != nil:
		parts = append(parts, solvedStyle.Render(fmt.Sprintf("solved in %s (%d moves)",
			gocube3d.FormatElapsed(m.solved.Elapsed), m.solved.Moves)))
	}
	if n := len(m.pending); n > 0 {
		parts = append(parts, statusStyle.Render(fmt.Sprintf("queued %d", n)))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) historyLine() string {
	hist := m.ctrl.History()
	if len(hist) > historyShown {
		hist = hist[len(hist)-historyShown:]
	}
	names := make([]string, 0, len(hist))
	for _, rec := range hist {
		if rec.Named {
			names = append(names, rec.Move.Notation())
		} else {
			names = append(names, "?")
		}
	}
	return moveStyle.Render(strings.Join(names, " "))
}
