// Package ui provides terminal rendering using tcell.
package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// eventBuffer is how many terminal events may queue between ticks.
const eventBuffer = 64

// Screen wraps tcell.Screen with a simplified interface. Events are read
// by a background goroutine so the game loop can wait for input with a
// timeout.
type Screen struct {
	screen tcell.Screen
	events chan tcell.Event
	done   chan struct{}
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewScreenFrom(s)
}

// NewScreenFrom initializes the given tcell screen and starts reading its
// events. Tests pass a simulation screen here.
func NewScreenFrom(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault)
	s.Clear()

	scr := &Screen{
		screen: s,
		events: make(chan tcell.Event, eventBuffer),
		done:   make(chan struct{}),
	}
	go scr.pump()
	return scr, nil
}

// pump forwards events until the screen is finalized.
func (s *Screen) pump() {
	defer close(s.events)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	close(s.done)
	s.screen.Fini()
}

// PollEvent returns the next terminal event, waiting at most timeout.
// It returns nil when no event arrived in time or the screen is closed.
func (s *Screen) PollEvent(timeout time.Duration) tcell.Event {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev := <-s.events:
		return ev
	case <-timer.C:
		return nil
	}
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// Size returns the current terminal dimensions.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync forces a complete redraw of the screen.
func (s *Screen) Sync() {
	s.screen.Sync()
}
