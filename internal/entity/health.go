package entity

import "fmt"

// Health tracks current and maximum hit points.
type Health struct {
	current int
	max     int
}

// NewHealth creates full health with the given maximum.
func NewHealth(max int) Health {
	return Health{current: max, max: max}
}

// TakeDamage reduces health and returns actual damage taken.
func (h *Health) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, h.current)
	h.current -= actual
	return actual
}

// Current returns current hit points.
func (h Health) Current() int { return h.current }

// Max returns maximum hit points.
func (h Health) Max() int { return h.max }

// IsAlive returns true if any hit points remain.
func (h Health) IsAlive() bool { return h.current > 0 }

// String formats health as "current/max".
func (h Health) String() string {
	return fmt.Sprintf("%d/%d", h.current, h.max)
}
