package ui

import (
	_ "embed"

	"github.com/leonelquinteros/gotext"
)

//go:embed locale/en.po
var enPo []byte

// Messages shown by the game. Each message is its own msgid in
// locale/en.po, so the format verbs stay visible at the call site.
const (
	MsgHealth          = "Health: %s"
	MsgWeapon          = "Weapon: %s"
	MsgStartingWeapon  = "Rusty Sword"
	MsgFPS             = "FPS: %d"
	MsgWelcome         = "You enter %s."
	MsgAgentHits       = "The %s hits you for %d."
	MsgPlayerDied      = "You have died. Press q to quit."
	MsgPathsShown      = "Showing agent paths."
	MsgPathsHidden     = "Hiding agent paths."
	MsgFrameCopied     = "Screen copied to clipboard."
	MsgClipboardFailed = "Could not copy screen: %s"
	MsgBlocked         = "Something blocks your way."
)

var catalog = loadCatalog()

func loadCatalog() *gotext.Po {
	po := gotext.NewPo()
	po.Parse(enPo)
	return po
}

// T returns the translation of msgid formatted with vars. Messages missing
// from the catalog are formatted as given.
func T(msgid string, vars ...any) string {
	return catalog.Get(msgid, vars...)
}
