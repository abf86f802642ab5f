package ui

import "time"

// FPSCounter measures frames presented per second. The rate is refreshed
// once at least a second has passed.
type FPSCounter struct {
	last   time.Time
	frames int
	fps    int
}

// NewFPSCounter starts counting from now.
func NewFPSCounter(now time.Time) *FPSCounter {
	return &FPSCounter{last: now}
}

// Tick records one frame at the given time.
func (c *FPSCounter) Tick(now time.Time) {
	elapsed := now.Sub(c.last)
	if secs := int(elapsed / time.Second); secs > 0 {
		c.fps = c.frames / secs
		c.frames = 0
		c.last = now
	}
	c.frames++
}

// FPS returns the last measured rate.
func (c *FPSCounter) FPS() int { return c.fps }
