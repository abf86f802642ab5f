package view

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/samdwyer/cavediver/internal/geom"
)

// Cell is one character position of the frame. tcell.ColorDefault for Fg
// or Bg means no colour is applied.
type Cell struct {
	Rune rune
	Fg   tcell.Color
	Bg   tcell.Color
}

// Blank is the content of a cleared cell.
var Blank = Cell{Rune: ' ', Fg: tcell.ColorDefault, Bg: tcell.ColorDefault}

// Frame is a dense, row-major buffer covering the whole terminal.
//
// Screen-space writes may touch any cell. World-space writes are shifted by
// the frame origin and dropped unless they land in the game region, the
// rows above the UI strip.
type Frame struct {
	width, height int
	origin        geom.Point
	cells         []Cell
}

// NewFrame allocates a blank frame of the given size.
func NewFrame(width, height int) *Frame {
	f := &Frame{}
	f.Resize(width, height)
	return f
}

// Resize changes the frame size. The buffer is only reallocated when the
// size actually changes; the contents are blank afterwards either way.
func (f *Frame) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	if width != f.width || height != f.height || f.cells == nil {
		f.width, f.height = width, height
		f.cells = make([]Cell, width*height)
	}
	f.Clear()
}

// Clear resets every cell to Blank in place.
func (f *Frame) Clear() {
	for i := range f.cells {
		f.cells[i] = Blank
	}
}

// Width returns the frame width in cells.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in cells.
func (f *Frame) Height() int { return f.height }

// GameHeight returns the number of rows world content may occupy.
func (f *Frame) GameHeight() int { return GameHeight(f.height) }

// UIRow returns the first row of the UI strip.
func (f *Frame) UIRow() int { return f.GameHeight() }

// SetOrigin sets the world position drawn at the top-left cell, normally
// the camera position.
func (f *Frame) SetOrigin(x, y int) {
	f.origin = geom.Pt(x, y)
}

// Set writes a cell in screen space. Out of range writes are ignored.
func (f *Frame) Set(col, row int, c Cell) {
	if col < 0 || col >= f.width || row < 0 || row >= f.height {
		return
	}
	f.cells[row*f.width+col] = c
}

// SetRune writes an uncoloured rune in screen space.
func (f *Frame) SetRune(col, row int, r rune) {
	f.Set(col, row, Cell{Rune: r})
}

// Get returns the cell at a screen position.
func (f *Frame) Get(col, row int) (Cell, bool) {
	if col < 0 || col >= f.width || row < 0 || row >= f.height {
		return Cell{}, false
	}
	return f.cells[row*f.width+col], true
}

// SetWorld writes a cell at a world position. It returns false, leaving the
// frame unchanged, when the position projects outside the buffer or into
// the UI strip.
func (f *Frame) SetWorld(x, y int, c Cell) bool {
	col := x - f.origin.X
	row := y - f.origin.Y
	if col < 0 || col >= f.width || row < 0 || row >= f.GameHeight() {
		return false
	}
	f.cells[row*f.width+col] = c
	return true
}

// SetWorldRune writes an uncoloured rune at a world position.
func (f *Frame) SetWorldRune(x, y int, r rune) bool {
	return f.SetWorld(x, y, Cell{Rune: r})
}

// DrawText writes text in screen space starting at (col, row). Wide
// characters take two columns. Text is cut off at the right edge.
func (f *Frame) DrawText(col, row int, text string, fg, bg tcell.Color) {
	g := uniseg.NewGraphemes(text)
	for g.Next() && col < f.width {
		runes := g.Runes()
		f.Set(col, row, Cell{Rune: runes[0], Fg: fg, Bg: bg})
		col += max(1, g.Width())
	}
}

// Cells returns the row-major buffer. The slice is owned by the frame and
// is only valid until the next write.
func (f *Frame) Cells() []Cell {
	return f.cells
}

// String renders the frame as plain text, one line per row with trailing
// blanks removed.
func (f *Frame) String() string {
	var sb strings.Builder
	for row := 0; row < f.height; row++ {
		line := make([]rune, f.width)
		for col := range line {
			r := f.cells[row*f.width+col].Rune
			if r == 0 {
				r = ' '
			}
			line[col] = r
		}
		sb.WriteString(strings.TrimRight(string(line), " "))
		if row < f.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
