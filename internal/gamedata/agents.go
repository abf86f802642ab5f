package gamedata

import (
	"github.com/gdamore/tcell/v2"
)

// AgentDef defines a hostile agent type loaded from JSON.
type AgentDef struct {
	ID           string `json:"id"`           // Unique identifier (e.g., "goblin")
	Name         string `json:"name"`         // Display name (e.g., "Goblin")
	Glyph        string `json:"glyph"`        // Single character for rendering (e.g., "G")
	Color        string `json:"color"`        // Hex color code (e.g., "#00FF00")
	HP           int    `json:"hp"`           // Base hit points
	Attack       int    `json:"attack"`       // Damage dealt per hit
	MoveCooldown int    `json:"moveCooldown"` // Ticks to wait between steps; 0 uses the game default
	SpawnWeight  int    `json:"spawnWeight"`  // Relative spawn frequency in generated levels
}

// GlyphRune returns the glyph as a rune for rendering.
func (a *AgentDef) GlyphRune() rune {
	for _, r := range a.Glyph {
		return r
	}
	return '?'
}

// TCellColor returns the color as a tcell.Color.
func (a *AgentDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(a.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// AgentsFile represents the structure of agents.json.
type AgentsFile struct {
	Agents []AgentDef `json:"agents"`
}

// LoadAgents loads agent definitions from the embedded agents.json file.
func LoadAgents() ([]AgentDef, error) {
	file, err := Load[AgentsFile]("agents.json")
	if err != nil {
		return nil, err
	}
	return file.Agents, nil
}
