package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/samdwyer/cavediver/internal/view"
)

// Renderer paints frames onto the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Present copies every cell of the frame to the screen and shows it.
// Cells outside the current terminal are clipped by tcell.
func (r *Renderer) Present(f *view.Frame) {
	w := f.Width()
	cells := f.Cells()
	for i := 0; i < len(cells); i++ {
		c := cells[i]
		r.screen.SetContent(i%w, i/w, c.Rune, cellStyle(c))
		// The column after a wide rune belongs to it.
		if i%w < w-1 && uniseg.StringWidth(string(c.Rune)) > 1 {
			i++
		}
	}
	r.screen.Show()
}

// cellStyle converts a cell's colours to a tcell style. The default colour
// leaves the terminal's own colour in place.
func cellStyle(c view.Cell) tcell.Style {
	style := tcell.StyleDefault
	if c.Fg != tcell.ColorDefault {
		style = style.Foreground(c.Fg)
	}
	if c.Bg != tcell.ColorDefault {
		style = style.Background(c.Bg)
	}
	return style
}
