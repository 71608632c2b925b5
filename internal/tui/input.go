package tui

import (
	"time"

	"github.com/hersh/blockfall/internal/game"
)

type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionDown
	ActionRotate
	ActionHardDrop
	ActionRestart
)

var keyActions = map[string]Action{
	"left":  ActionLeft,
	"a":     ActionLeft,
	"h":     ActionLeft,
	"right": ActionRight,
	"d":     ActionRight,
	"l":     ActionRight,
	"down":  ActionDown,
	"s":     ActionDown,
	"j":     ActionDown,
	"up":    ActionRotate,
	"w":     ActionRotate,
	"x":     ActionRotate,
	" ":     ActionHardDrop,
	"r":     ActionRestart,
}

// ActionForKey maps a bubbletea key string to a game action.
func ActionForKey(key string) (Action, bool) {
	a, ok := keyActions[key]
	return a, ok
}

// InputTracker turns terminal key events into per-frame game input.
//
// Terminals only report presses and auto-repeats, never releases, so a
// direction counts as held while its latest event is younger than the
// hold window. Rotate, hard drop and restart are delivered once, on the
// next frame after the press.
type InputTracker struct {
	window   time.Duration
	lastSeen [ActionDown + 1]time.Time
	pending  game.Input
}

func NewInputTracker(window time.Duration) *InputTracker {
	return &InputTracker{window: window}
}

// Press records a key event for a at the given time.
func (t *InputTracker) Press(a Action, at time.Time) {
	switch a {
	case ActionLeft, ActionRight, ActionDown:
		t.lastSeen[a] = at
	case ActionRotate:
		t.pending.Rotate = true
	case ActionHardDrop:
		t.pending.HardDrop = true
	case ActionRestart:
		t.pending.Restart = true
	}
}

// Frame returns the input for the frame starting at now and clears the
// queued presses.
func (t *InputTracker) Frame(now time.Time) game.Input {
	in := t.pending
	t.pending = game.Input{}

	in.Left = t.held(ActionLeft, now)
	in.Right = t.held(ActionRight, now)
	in.Down = t.held(ActionDown, now)
	return in
}

// Reset forgets every held key and queued press.
func (t *InputTracker) Reset() {
	*t = InputTracker{window: t.window}
}

func (t *InputTracker) held(a Action, now time.Time) bool {
	seen := t.lastSeen[a]
	return !seen.IsZero() && now.Sub(seen) < t.window
}
