package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/samdwyer/cavediver/internal/view"
)

// separator is drawn across the top of the UI strip.
const separator = '─'

// HUD is the state shown in the UI strip below the game region.
type HUD struct {
	Health string // "current/max"
	Weapon string
	FPS    int
	Log    *ActivityLog
}

// LogWidth returns how wide activity log lines may be on a frame of the
// given width.
func LogWidth(frameWidth int) int {
	return max(1, frameWidth/2-2)
}

// FPSColumn returns where the FPS counter starts on a frame of the given
// width: ten columns from the right edge, but never before minCol.
func FPSColumn(frameWidth, minCol int) int {
	return max(frameWidth-10, minCol)
}

// DrawHUD draws the UI strip: a separator row, the activity log on the
// left half and player stats on the right.
func DrawHUD(f *view.Frame, h HUD) {
	row := f.UIRow()
	if row >= f.Height() {
		return
	}
	for col := 0; col < f.Width(); col++ {
		f.SetRune(col, row, separator)
	}

	middle := f.Width() / 2
	health := T(MsgHealth, h.Health)
	f.DrawText(middle, row+1, health, tcell.ColorDefault, tcell.ColorDefault)
	f.DrawText(middle, row+3, T(MsgWeapon, h.Weapon), tcell.ColorDefault, tcell.ColorDefault)
	f.DrawText(FPSColumn(f.Width(), middle+uniseg.StringWidth(health)+1), row+1,
		T(MsgFPS, h.FPS), tcell.ColorDefault, tcell.ColorDefault)

	if h.Log == nil {
		return
	}
	h.Log.Resize(LogWidth(f.Width()))
	for i, line := range h.Log.Lines(f.Height() - row - 1) {
		f.DrawText(1, row+1+i, line, tcell.ColorWhite, tcell.ColorDefault)
	}
}
