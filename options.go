package gocube3d

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Option configures a Controller.
type Option func(*config)

type config struct {
	turnDuration   time.Duration
	epsilon        float64
	seed           int64
	seeded         bool
	logger         *log.Logger
	requireShuffle bool
}

func defaultConfig() *config {
	return &config{
		turnDuration:   250 * time.Millisecond,
		epsilon:        1e-5,
		logger:         log.New(io.Discard),
		requireShuffle: true,
	}
}

// WithTurnDuration sets how long a quarter turn takes to animate.
// Half turns requested through notation take the same time.
func WithTurnDuration(d time.Duration) Option {
	return func(c *config) {
		c.turnDuration = d
	}
}

// WithEpsilon sets the tolerance used for coplanarity and lattice tests.
func WithEpsilon(eps float64) Option {
	return func(c *config) {
		c.epsilon = eps
	}
}

// WithSeed makes shuffling deterministic.
// Without it the random source is seeded from the clock.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

// WithLogger routes controller logs to l.
// The default logger discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRequireShuffle controls whether OnSolved only fires after the cube
// has been shuffled at least once (default true). Disabling it makes every
// completed turn that lands on a solved cube report a solve.
func WithRequireShuffle(enabled bool) Option {
	return func(c *config) {
		c.requireShuffle = enabled
	}
}
