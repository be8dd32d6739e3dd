package gocube3d

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// TurnKind tells who asked for a turn.
type TurnKind int

const (
	TurnUser TurnKind = iota
	TurnShuffle
	TurnUndo
)

func (k TurnKind) String() string {
	switch k {
	case TurnUser:
		return "user"
	case TurnShuffle:
		return "shuffle"
	case TurnUndo:
		return "undo"
	default:
		return "unknown"
	}
}

// MoveRecord is one entry of the undo history. Rotation is in cube-local
// space.
type MoveRecord struct {
	Layer    *Layer
	Rotation mgl64.Quat
	Move     Move
	Named    bool // Move is valid
}

// TurnEvent describes a turn that started or ended.
type TurnEvent struct {
	Kind     TurnKind
	Record   MoveRecord
	History  int // history depth after the event
	Duration time.Duration
}

// SolveEvent is emitted when a shuffled puzzle is solved.
type SolveEvent struct {
	AttemptID string
	Elapsed   time.Duration
	Moves     int
}

// Callback types.
type (
	TurnCallback    func(TurnEvent)
	SolveCallback   func(SolveEvent)
	PauseCallback   func(paused bool)
	ShuffleCallback func(shuffling bool)
)

// OnTurnStarted registers a callback for turns that begin animating.
func (c *Controller) OnTurnStarted(cb TurnCallback) {
	c.onTurnStarted = cb
}

// OnTurnEnded registers a callback for turns that finish animating.
func (c *Controller) OnTurnEnded(cb TurnCallback) {
	c.onTurnEnded = cb
}

// OnSolved registers a callback for solved puzzles.
func (c *Controller) OnSolved(cb SolveCallback) {
	c.onSolved = cb
}

// OnPauseChanged registers a callback for pause and resume.
func (c *Controller) OnPauseChanged(cb PauseCallback) {
	c.onPauseChanged = cb
}

// OnShuffleChanged registers a callback fired when a shuffle sequence starts
// or stops.
func (c *Controller) OnShuffleChanged(cb ShuffleCallback) {
	c.onShuffleChanged = cb
}
