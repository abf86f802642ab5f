// Package view projects world space onto the terminal: a camera that
// culls and translates coordinates, and a frame buffer that clips world
// content away from the UI strip.
package view

import "github.com/samdwyer/cavediver/internal/geom"

// UIHeight returns the rows reserved for the UI strip at the bottom of a
// viewport of the given height: one third, rounded up.
func UIHeight(height int) int {
	if height <= 0 {
		return 0
	}
	return (height + 2) / 3
}

// GameHeight returns the rows left for the world above the UI strip.
func GameHeight(height int) int {
	return max(0, height-UIHeight(height))
}

// Camera is a window of Width x Height cells whose top-left corner sits at
// world position (X, Y).
type Camera struct {
	X, Y          int
	Width, Height int
}

// NewCamera creates a camera at the given world position and size.
func NewCamera(x, y, width, height int) *Camera {
	return &Camera{X: x, Y: y, Width: width, Height: height}
}

// View returns the world-space box the camera covers. It is computed from
// the current fields on every call.
func (c *Camera) View() geom.BoundingBox {
	return geom.Rect(c.X, c.Y, c.Width, c.Height)
}

// WorldToScreen converts a world position to camera-relative coordinates.
// ok is false when the position falls outside the camera.
func (c *Camera) WorldToScreen(worldX, worldY int) (x, y int, ok bool) {
	x = worldX - c.X
	y = worldY - c.Y
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return 0, 0, false
	}
	return x, y, true
}

// IsVisible returns true if the world rectangle of w x h cells at
// (worldX, worldY) overlaps the camera. A rectangle starting exactly on
// the camera's right or bottom edge is not visible.
func (c *Camera) IsVisible(worldX, worldY, w, h int) bool {
	right := c.X + c.Width
	bottom := c.Y + c.Height

	return !(worldX+w <= c.X ||
		worldX >= right ||
		worldY+h <= c.Y ||
		worldY >= bottom)
}

// Follow sizes the camera to the game region of a terminal of termW x
// termH cells and centres it on p.
func (c *Camera) Follow(p geom.Point, termW, termH int) {
	c.Width = termW
	c.Height = GameHeight(termH)
	c.X = p.X - c.Width/2
	c.Y = p.Y - c.Height/2
}
