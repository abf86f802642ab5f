package ui

import (
	"strings"

	"github.com/rivo/uniseg"
)

// DefaultLogEntries is how many messages an ActivityLog keeps.
const DefaultLogEntries = 50

// ActivityLog is a scrolling list of gameplay messages. Messages are
// wrapped to the current width; only the newest lines are shown.
type ActivityLog struct {
	entries    []string
	maxEntries int
	width      int
	lines      []string // wrapped entries, oldest first
}

// NewActivityLog creates a log that wraps messages to width.
func NewActivityLog(width, maxEntries int) *ActivityLog {
	if maxEntries <= 0 {
		maxEntries = DefaultLogEntries
	}
	return &ActivityLog{maxEntries: maxEntries, width: max(1, width)}
}

// Add appends a message, dropping the oldest once the log is full.
func (l *ActivityLog) Add(msg string) {
	l.entries = append(l.entries, msg)
	if len(l.entries) > l.maxEntries {
		l.entries = l.entries[len(l.entries)-l.maxEntries:]
		l.rewrap()
		return
	}
	l.lines = append(l.lines, wrap(msg, l.width)...)
}

// Resize rewraps every entry when the width changes.
func (l *ActivityLog) Resize(width int) {
	width = max(1, width)
	if width == l.width {
		return
	}
	l.width = width
	l.rewrap()
}

func (l *ActivityLog) rewrap() {
	l.lines = l.lines[:0]
	for _, e := range l.entries {
		l.lines = append(l.lines, wrap(e, l.width)...)
	}
}

// Lines returns up to n of the newest wrapped lines, oldest first.
func (l *ActivityLog) Lines(n int) []string {
	if n <= 0 {
		return nil
	}
	if len(l.lines) <= n {
		return l.lines
	}
	return l.lines[len(l.lines)-n:]
}

// Len returns the number of stored messages.
func (l *ActivityLog) Len() int { return len(l.entries) }

type cluster struct {
	text  string
	width int
}

// wrap breaks text into lines no wider than width columns. Lines break at
// Unicode line break opportunities; a word longer than a line is split
// between grapheme clusters.
func wrap(text string, width int) []string {
	var (
		lines  []string
		line   strings.Builder
		lineW  int
		word   []cluster
		wordW  int
		trailW int // width of trailing spaces in word
	)
	flush := func() {
		lines = append(lines, strings.TrimRight(line.String(), " "))
		line.Reset()
		lineW = 0
	}
	place := func() {
		if lineW > 0 && lineW+wordW-trailW > width {
			flush()
		}
		for _, c := range word {
			if lineW > 0 && lineW+c.width > width && c.text != " " {
				flush()
			}
			line.WriteString(c.text)
			lineW += c.width
		}
		word, wordW, trailW = word[:0], 0, 0
	}

	state := -1
	rest := text
	for len(rest) > 0 {
		var c string
		var boundaries int
		c, rest, boundaries, state = uniseg.StepString(rest, state)
		w := boundaries >> uniseg.ShiftWidth
		if c == "\n" || c == "\r\n" {
			place()
			flush()
			continue
		}
		word = append(word, cluster{text: c, width: w})
		wordW += w
		if c == " " {
			trailW += w
		} else {
			trailW = 0
		}
		if boundaries&uniseg.MaskLine != uniseg.LineDontBreak {
			place()
		}
	}
	place()
	if lineW > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}
