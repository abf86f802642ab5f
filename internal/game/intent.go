package game

import "github.com/gdamore/tcell/v2"

// IntentKind is what the player asked for with one input event.
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentMove
	IntentQuit
	IntentCopyFrame
	IntentTogglePaths
	IntentResize
)

// Intent is the game's reading of one input event.
type Intent struct {
	Kind   IntentKind
	DX, DY int // for IntentMove
	W, H   int // for IntentResize
}

// Move returns a move intent.
func Move(dx, dy int) Intent {
	return Intent{Kind: IntentMove, DX: dx, DY: dy}
}

// intentFor maps a terminal event to an intent. Unknown events map to
// IntentNone.
func intentFor(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return keyIntent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		return Intent{Kind: IntentResize, W: w, H: h}
	}
	return Intent{}
}

func keyIntent(ev *tcell.EventKey) Intent {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Intent{Kind: IntentQuit}
	case tcell.KeyUp:
		return Move(0, -1)
	case tcell.KeyDown:
		return Move(0, 1)
	case tcell.KeyLeft:
		return Move(-1, 0)
	case tcell.KeyRight:
		return Move(1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return Intent{Kind: IntentQuit}
		case 'c', 'C':
			return Intent{Kind: IntentCopyFrame}
		case 'p', 'P':
			return Intent{Kind: IntentTogglePaths}
		case 'h':
			return Move(-1, 0)
		case 'j':
			return Move(0, 1)
		case 'k':
			return Move(0, -1)
		case 'l':
			return Move(1, 0)
		}
	}
	return Intent{}
}
