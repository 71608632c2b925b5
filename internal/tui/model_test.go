package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hersh/blockfall/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	snapshots []game.Snapshot
	err       error
}

func (f *fakePublisher) PublishSnapshot(s game.Snapshot) error {
	if f.err != nil {
		return f.err
	}
	f.snapshots = append(f.snapshots, s)
	return nil
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyQ     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
	keyR     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func newTestModel(t *testing.T, pub Publisher) (Model, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Unix(1000, 0)}
	m := NewModel(Options{
		Source:        game.NewSequenceSource(game.ShapeO),
		FrameInterval: 16 * time.Millisecond,
		HoldWindow:    100 * time.Millisecond,
		Publisher:     pub,
	})
	m.now = clock.Now
	return m, clock
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	require.True(t, ok)
	return mm, cmd
}

// frame advances the clock by d and delivers a frame at the new time.
func frame(t *testing.T, m Model, clock *testClock, d time.Duration) Model {
	t.Helper()
	clock.now = clock.now.Add(d)
	m, cmd := update(t, m, FrameMsg(clock.now))
	require.NotNil(t, cmd, "frames keep ticking")
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestWelcomeScreen(t *testing.T) {
	m, clock := newTestModel(t, nil)
	assert.NotNil(t, m.Init())
	assert.Equal(t, ScreenWelcome, m.Screen())

	m = frame(t, m, clock, time.Second)
	assert.Equal(t, ScreenWelcome, m.Screen())
	assert.Equal(t, 0, m.Snapshot().Active.Y, "no gravity before the game starts")
	assert.Contains(t, m.View(), "B L O C K F A L L")

	m, _ = update(t, m, keyEnter)
	assert.Equal(t, ScreenPlaying, m.Screen())
}

func TestKeysDriveController(t *testing.T) {
	m, clock := newTestModel(t, nil)
	m, _ = update(t, m, keyEnter)
	m = frame(t, m, clock, 0)

	m, _ = update(t, m, keyLeft)
	m = frame(t, m, clock, 16*time.Millisecond)
	assert.Equal(t, game.SpawnX-1, m.Snapshot().Active.X)

	m, _ = update(t, m, keySpace)
	m = frame(t, m, clock, 16*time.Millisecond)
	assert.Equal(t, 16, m.Snapshot().Active.Y)
	assert.Equal(t, 2, m.Snapshot().Score)
	assert.Contains(t, m.View(), "Score: 2")
}

func TestGameOverAndRestart(t *testing.T) {
	m, clock := newTestModel(t, nil)
	m, _ = update(t, m, keyEnter)
	m = frame(t, m, clock, 0)

	for i := 0; i < 100 && m.Screen() != ScreenGameOver; i++ {
		m, _ = update(t, m, keySpace)
		m = frame(t, m, clock, game.LockDelay)
	}
	require.Equal(t, ScreenGameOver, m.Screen())
	assert.Nil(t, m.Snapshot().Active)
	assert.Contains(t, m.View(), "Press R to restart")

	m, cmd := update(t, m, keyQ)
	assert.True(t, isQuit(cmd), "q quits from the game over screen")

	m, _ = update(t, m, keyR)
	m = frame(t, m, clock, 16*time.Millisecond)
	assert.Equal(t, ScreenPlaying, m.Screen())
	assert.Equal(t, 0, m.Snapshot().Score)
	board := m.Snapshot().Board
	assert.True(t, board.Empty())
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t, nil)
	_, cmd := update(t, m, keyQ)
	assert.True(t, isQuit(cmd))

	m, _ = update(t, m, keyEnter)
	_, cmd = update(t, m, keyQ)
	assert.False(t, isQuit(cmd), "q is ignored while playing")

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
}

func TestPublishThrottle(t *testing.T) {
	pub := &fakePublisher{}
	m, clock := newTestModel(t, pub)

	m = frame(t, m, clock, 16*time.Millisecond)
	assert.Empty(t, pub.snapshots, "nothing is published before the game starts")

	m, _ = update(t, m, keyEnter)
	m = frame(t, m, clock, 16*time.Millisecond)
	require.Len(t, pub.snapshots, 1)

	for i := 0; i < 5; i++ {
		m = frame(t, m, clock, 16*time.Millisecond)
	}
	assert.Len(t, pub.snapshots, 1)

	frame(t, m, clock, 30*time.Millisecond)
	assert.Len(t, pub.snapshots, 2)
}

func TestPublishErrorIsNotFatal(t *testing.T) {
	pub := &fakePublisher{err: errors.New("boom")}
	m, clock := newTestModel(t, pub)
	m, _ = update(t, m, keyEnter)

	m = frame(t, m, clock, 16*time.Millisecond)
	assert.Equal(t, ScreenPlaying, m.Screen())
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = update(t, m, keyEnter)
	assert.Contains(t, m.View(), "Controls:")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.NotContains(t, m.View(), "Controls:")
}
