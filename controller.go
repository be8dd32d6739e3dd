package gocube3d

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Controller owns a cube and turns pointer drags, shuffles, undos and
// notation moves into layer turns.
//
// It is not safe for concurrent use. Call every method from the loop that
// calls Tick.
type Controller struct {
	cube      *Cube
	cfg       *config
	log       *log.Logger
	rng       *rand.Rand
	projector Projector
	raycaster Raycaster

	session *RotationInfo

	turn       *LayerTurn
	turnKind   TurnKind
	turnRecord MoveRecord

	paused    bool
	history   []MoveRecord
	shuffled  bool
	shuffling bool
	attemptID string
	timer     Timer

	onTurnStarted    TurnCallback
	onTurnEnded      TurnCallback
	onSolved         SolveCallback
	onPauseChanged   PauseCallback
	onShuffleChanged ShuffleCallback
}

// NewController creates a controller for a fresh cube. The projector maps
// pointer positions into the world; it may be nil for a controller driven
// only by Shuffle, Undo and ApplyMove.
func NewController(projector Projector, opts ...Option) (*Controller, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.turnDuration <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidDuration, cfg.turnDuration)
	}
	if cfg.epsilon <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidEpsilon, cfg.epsilon)
	}

	seed := uint64(time.Now().UnixNano())
	if cfg.seeded {
		seed = uint64(cfg.seed)
	}

	cube := newCube(cfg.epsilon)
	return &Controller{
		cube:      cube,
		cfg:       cfg,
		log:       cfg.logger,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		projector: projector,
		raycaster: cube,
	}, nil
}

// Cube returns the puzzle being controlled.
func (c *Controller) Cube() *Cube {
	return c.cube
}

// SetProjector replaces the projector, for example after a resize.
func (c *Controller) SetProjector(p Projector) {
	c.projector = p
}

// SetTurnDuration changes the animation length of later turns. Non-positive
// durations are ignored.
func (c *Controller) SetTurnDuration(d time.Duration) {
	if d > 0 {
		c.cfg.turnDuration = d
	}
}

// TurnDuration returns the animation length of a turn.
func (c *Controller) TurnDuration() time.Duration {
	return c.cfg.turnDuration
}

// Busy reports whether a layer turn is animating.
func (c *Controller) Busy() bool {
	return c.turn != nil
}

// ActiveTurn returns the animating turn or nil.
func (c *Controller) ActiveTurn() *LayerTurn {
	return c.turn
}

// Paused reports whether the controller is paused.
func (c *Controller) Paused() bool {
	return c.paused
}

// Gesture returns a copy of the live gesture session.
func (c *Controller) Gesture() (RotationInfo, bool) {
	if c.session == nil {
		return RotationInfo{}, false
	}
	return *c.session, true
}

// History returns a copy of the undo stack, oldest first.
func (c *Controller) History() []MoveRecord {
	return append([]MoveRecord(nil), c.history...)
}

// Shuffled reports whether the puzzle has been shuffled since it was last
// solved.
func (c *Controller) Shuffled() bool {
	return c.shuffled
}

// Shuffling reports whether a shuffle sequence is open.
func (c *Controller) Shuffling() bool {
	return c.shuffling
}

// AttemptID identifies the current solve attempt. It changes every time a
// shuffle sequence starts.
func (c *Controller) AttemptID() string {
	return c.attemptID
}

// Timer returns the solve timer.
func (c *Controller) Timer() *Timer {
	return &c.timer
}

// Begin starts a gesture at screen point p. A hit on a piece starts a layer
// gesture, a miss starts an orbit.
func (c *Controller) Begin(p mgl64.Vec2) {
	if c.Busy() || c.paused || c.session != nil || c.projector == nil {
		return
	}
	s := &RotationInfo{Type: GestureCube, Start: p, Previous: p, Current: p}
	if t, ok := c.touch(p); ok {
		s.Type = GestureLayer
		s.From = t
		s.To = t
	}
	c.session = s
	c.log.Debug("gesture began", "type", s.Type, "x", p.X(), "y", p.Y())
}

// Continue feeds the next pointer position of the live gesture.
func (c *Controller) Continue(p mgl64.Vec2) {
	if c.session == nil {
		return
	}
	c.track(p)
}

// End finishes the live gesture at p and commits a layer turn if the drag
// selected one.
func (c *Controller) End(p mgl64.Vec2) {
	s := c.session
	if s == nil {
		return
	}
	c.track(p)
	c.session = nil
	if s.Type != GestureLayer {
		return
	}
	c.commit(s)
}

func (c *Controller) track(p mgl64.Vec2) {
	s := c.session
	s.Current = p
	switch s.Type {
	case GestureCube:
		c.cube.Orbit(c.orbitRotation(s.Previous, p))
	case GestureLayer:
		s.To, _ = c.touch(p)
	}
	s.Previous = p
}

func (c *Controller) commit(s *RotationInfo) {
	if c.Busy() || c.paused {
		return
	}
	if s.From == nil || s.To == nil || s.From.Piece == s.To.Piece {
		return
	}
	l, rot, ok := c.findTurn(*s.From, *s.To)
	if !ok {
		return
	}
	s.Type = GestureNone
	c.StopShuffle()
	c.startTurn(l, rot, TurnUser)
}

// startTurn launches the animation of a world rotation and records it.
func (c *Controller) startTurn(l *Layer, rot mgl64.Quat, kind TurnKind) {
	turn := l.AnimateTurn(rot, c.cfg.turnDuration)
	rec := MoveRecord{Layer: l, Rotation: turn.Rotation()}
	rec.Move, rec.Named = c.cube.MoveFor(l, rec.Rotation)
	if kind != TurnUndo {
		c.history = append(c.history, rec)
	}
	c.turn, c.turnKind, c.turnRecord = turn, kind, rec

	c.log.Debug("turn started", "layer", l.Name(), "move", rec.Move, "kind", kind)
	if c.onTurnStarted != nil {
		c.onTurnStarted(TurnEvent{Kind: kind, Record: rec, History: len(c.history), Duration: c.cfg.turnDuration})
	}
}

// Tick advances the active turn and the solve timer by dt.
// It does nothing while paused.
func (c *Controller) Tick(dt time.Duration) {
	if c.paused {
		return
	}
	c.timer.Tick(dt)
	if c.turn == nil || !c.turn.Tick(dt) {
		return
	}

	kind, rec := c.turnKind, c.turnRecord
	c.turn = nil
	c.log.Debug("turn ended", "layer", rec.Layer.Name(), "move", rec.Move, "kind", kind)
	if c.onTurnEnded != nil {
		c.onTurnEnded(TurnEvent{Kind: kind, Record: rec, History: len(c.history), Duration: c.cfg.turnDuration})
	}
	if kind != TurnShuffle {
		c.checkSolved()
	}
}

func (c *Controller) checkSolved() {
	if c.cfg.requireShuffle && !c.shuffled {
		return
	}
	if !c.IsSolved() {
		return
	}

	ev := SolveEvent{AttemptID: c.attemptID, Elapsed: c.timer.Elapsed(), Moves: len(c.history)}
	c.history = nil
	c.shuffled = false
	c.timer.Stop()
	c.log.Info("puzzle solved", "attempt", ev.AttemptID, "time", FormatElapsed(ev.Elapsed), "moves", ev.Moves)
	if c.onSolved != nil {
		c.onSolved(ev)
	}
}

// IsSolved reports whether every face shows a single color.
func (c *Controller) IsSolved() bool {
	for _, l := range c.cube.layers {
		if l.color == None {
			continue
		}
		if !l.IsFaceSolved(l.color) {
			return false
		}
	}
	return true
}

// StartShuffle opens a shuffle sequence: history is cleared, the timer is
// reset and a new attempt begins.
func (c *Controller) StartShuffle() {
	if c.paused || c.shuffling {
		return
	}
	c.shuffling = true
	c.history = nil
	c.timer.Reset()
	c.attemptID = uuid.NewString()
	c.log.Info("shuffle started", "attempt", c.attemptID)
	if c.onShuffleChanged != nil {
		c.onShuffleChanged(true)
	}
}

// Shuffle turns one random layer a random quarter turn. It opens a shuffle
// sequence if none is open and does nothing while busy or paused.
func (c *Controller) Shuffle() {
	if c.Busy() || c.paused {
		return
	}
	if !c.shuffling {
		c.StartShuffle()
	}
	l := c.cube.layers[c.rng.IntN(len(c.cube.layers))]
	c.shuffled = true
	c.startTurn(l, l.RandomQuarterTurn(c.rng), TurnShuffle)
}

// StopShuffle closes the open shuffle sequence and starts the solve timer.
func (c *Controller) StopShuffle() {
	if !c.shuffling {
		return
	}
	c.shuffling = false
	if c.shuffled {
		c.timer.Start()
	}
	c.log.Info("shuffle stopped", "attempt", c.attemptID, "moves", len(c.history))
	if c.onShuffleChanged != nil {
		c.onShuffleChanged(false)
	}
}

// Undo animates the inverse of the most recent recorded turn.
func (c *Controller) Undo() {
	if c.Busy() || c.paused || len(c.history) == 0 {
		return
	}
	c.StopShuffle()
	rec := c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	c.startTurn(rec.Layer, c.cube.ToWorldRotation(rec.Rotation.Conjugate()), TurnUndo)
}

// ApplyMove turns the layer named by m. It reports whether the turn started.
func (c *Controller) ApplyMove(m Move) bool {
	if c.Busy() || c.paused {
		return false
	}
	l, rot, ok := c.cube.ResolveMove(m)
	if !ok {
		return false
	}
	c.StopShuffle()
	c.startTurn(l, c.cube.ToWorldRotation(rot), TurnUser)
	return true
}

// Pause freezes animation and the timer and blocks new input. A gesture in
// progress is dropped.
func (c *Controller) Pause() {
	c.setPaused(true)
}

// Resume undoes Pause.
func (c *Controller) Resume() {
	c.setPaused(false)
}

// TogglePause flips the paused state.
func (c *Controller) TogglePause() {
	c.setPaused(!c.paused)
}

func (c *Controller) setPaused(p bool) {
	if c.paused == p {
		return
	}
	c.paused = p
	if p {
		c.session = nil
	}
	c.log.Debug("pause changed", "paused", p)
	if c.onPauseChanged != nil {
		c.onPauseChanged(p)
	}
}
