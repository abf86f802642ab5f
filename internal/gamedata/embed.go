// Package gamedata holds the agent and level definitions shipped with the
// game and the helpers that decode them.
package gamedata

import "embed"

// dataFS holds agents.json and levels.json.
//
//go:embed agents.json levels.json
var dataFS embed.FS
