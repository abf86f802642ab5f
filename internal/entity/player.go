package entity

import "github.com/samdwyer/cavediver/internal/geom"

// PlayerMaxHP is the player's starting health.
const PlayerMaxHP = 100

// Player is the character controlled from the keyboard.
type Player struct {
	Pos    geom.Point
	Symbol rune
	Health Health
}

// NewPlayer creates a player at the given position.
func NewPlayer(pos geom.Point) *Player {
	return &Player{
		Pos:    pos,
		Symbol: '@',
		Health: NewHealth(PlayerMaxHP),
	}
}

// AttemptMove moves the player by (dx, dy) if the destination is walkable
// and reports whether it moved.
func (p *Player) AttemptMove(dx, dy int, walkable func(geom.Point) bool) bool {
	next := p.Pos.Add(dx, dy)
	if !walkable(next) {
		return false
	}
	p.Pos = next
	return true
}
