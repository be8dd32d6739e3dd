package gocube3d

import (
	"fmt"
	"time"
)

// Timer measures a solve attempt in game time. It only advances through
// Tick, so pausing the controller pauses it too.
type Timer struct {
	elapsed time.Duration
	running bool
}

// Reset stops the timer and zeroes it.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.running = false
}

// Start resumes counting.
func (t *Timer) Start() {
	t.running = true
}

// Stop freezes the current reading.
func (t *Timer) Stop() {
	t.running = false
}

// Tick adds dt while running.
func (t *Timer) Tick(dt time.Duration) {
	if t.running && dt > 0 {
		t.elapsed += dt
	}
}

// Elapsed returns the accumulated time.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Running reports whether the timer is counting.
func (t *Timer) Running() bool {
	return t.running
}

// String formats the reading as minutes:seconds:centiseconds.
func (t *Timer) String() string {
	return FormatElapsed(t.elapsed)
}

// FormatElapsed formats d as mm:ss:cc.
func FormatElapsed(d time.Duration) string {
	cs := d.Milliseconds() / 10
	return fmt.Sprintf("%02d:%02d:%02d", cs/6000, cs/100%60, cs%100)
}
