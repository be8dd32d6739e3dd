package gocube3d

import "errors"

// Sentinel errors for the gocube3d package.
var (
	// Structural errors. These are raised as panics because they mean the
	// pose arena or a layer definition is corrupt.
	ErrNeighborCount   = errors.New("gocube3d: layer does not have exactly 8 neighbors")
	ErrUnresolvedAxis  = errors.New("gocube3d: rotation axis does not match a cube axis")
	ErrInvalidDuration = errors.New("gocube3d: turn duration must be positive")

	// Parsing errors
	ErrInvalidNotation = errors.New("gocube3d: invalid move notation")

	// Configuration errors
	ErrInvalidEpsilon = errors.New("gocube3d: epsilon must be positive")
)
