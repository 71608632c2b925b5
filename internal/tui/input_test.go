package tui

import (
	"testing"
	"time"

	"github.com/hersh/blockfall/internal/game"
	"github.com/stretchr/testify/assert"
)

func TestActionForKey(t *testing.T) {
	tests := []struct {
		key  string
		want Action
	}{
		{"left", ActionLeft},
		{"a", ActionLeft},
		{"right", ActionRight},
		{"d", ActionRight},
		{"down", ActionDown},
		{"s", ActionDown},
		{"up", ActionRotate},
		{"w", ActionRotate},
		{" ", ActionHardDrop},
		{"r", ActionRestart},
	}
	for _, tt := range tests {
		a, ok := ActionForKey(tt.key)
		assert.True(t, ok, tt.key)
		assert.Equal(t, tt.want, a, tt.key)
	}

	_, ok := ActionForKey("p")
	assert.False(t, ok)
}

func TestHeldKeyExpires(t *testing.T) {
	tr := NewInputTracker(100 * time.Millisecond)
	t0 := time.Unix(100, 0)

	assert.Equal(t, game.Input{}, tr.Frame(t0))

	tr.Press(ActionLeft, t0)
	assert.True(t, tr.Frame(t0).Left)
	assert.True(t, tr.Frame(t0.Add(99*time.Millisecond)).Left)
	assert.False(t, tr.Frame(t0.Add(100*time.Millisecond)).Left)

	// Terminal auto-repeat keeps the key held.
	tr.Press(ActionDown, t0)
	tr.Press(ActionDown, t0.Add(80*time.Millisecond))
	in := tr.Frame(t0.Add(150 * time.Millisecond))
	assert.True(t, in.Down)
	assert.False(t, in.Right)
}

func TestDiscretePressesFireOnce(t *testing.T) {
	tr := NewInputTracker(100 * time.Millisecond)
	t0 := time.Unix(100, 0)

	tr.Press(ActionRotate, t0)
	tr.Press(ActionHardDrop, t0)
	tr.Press(ActionRestart, t0)

	in := tr.Frame(t0)
	assert.True(t, in.Rotate)
	assert.True(t, in.HardDrop)
	assert.True(t, in.Restart)

	assert.Equal(t, game.Input{}, tr.Frame(t0.Add(time.Millisecond)))
}

func TestTrackerReset(t *testing.T) {
	tr := NewInputTracker(100 * time.Millisecond)
	t0 := time.Unix(100, 0)
	tr.Press(ActionRight, t0)
	tr.Press(ActionRotate, t0)

	tr.Reset()

	assert.Equal(t, game.Input{}, tr.Frame(t0))
	tr.Press(ActionRight, t0)
	assert.True(t, tr.Frame(t0.Add(50*time.Millisecond)).Right, "window survives reset")
}
