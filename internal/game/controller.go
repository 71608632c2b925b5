package game

import "time"

const (
	MoveRepeat          = 150 * time.Millisecond
	SoftDropRepeat      = 100 * time.Millisecond
	LockDelay           = 500 * time.Millisecond
	InitialFallInterval = 500 * time.Millisecond
	FallIntervalStep    = 50 * time.Millisecond
	MinFallInterval     = 50 * time.Millisecond

	LinesPerLevel = 10

	lineClearPoints = 100
	softDropPoints  = 1
	hardDropPoints  = 2

	// spawnAttempts is the number of upward offsets (0..3) tried before game over.
	spawnAttempts = 4
)

type State int

const (
	StateActive State = iota
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateGameOver:
		return "game over"
	}
	return "unknown"
}

// Input is one frame of player intent. Left, Right and Down are held
// state; Rotate, HardDrop and Restart are true only on the frame of the press.
type Input struct {
	Left, Right, Down bool

	Rotate   bool
	HardDrop bool
	Restart  bool
}

// Controller owns a single game session. It is not safe for concurrent use.
type Controller struct {
	source ShapeSource
	board  Board
	active Piece
	next   Piece
	state  State

	score int
	level int
	lines int

	fallInterval time.Duration
	fallTimer    time.Duration
	moveTimer    time.Duration
	downTimer    time.Duration
	lockTimer    time.Duration

	heldLeft  bool
	heldRight bool
	heldDown  bool
}

// New starts a session drawing shapes from source. A nil source
// falls back to a clock-seeded RandomSource.
func New(source ShapeSource) *Controller {
	if source == nil {
		source = NewTimeSource()
	}
	c := &Controller{source: source}
	c.Restart()
	return c
}

// Restart discards the session and starts over with an empty board.
func (c *Controller) Restart() {
	c.board = Board{}
	c.active = NewPiece(c.source.NextShape())
	c.next = NewPiece(c.source.NextShape())
	c.state = StateActive

	c.score = 0
	c.level = 1
	c.lines = 0

	c.fallInterval = InitialFallInterval
	c.fallTimer = 0
	c.moveTimer = 0
	c.downTimer = 0
	c.lockTimer = 0

	c.heldLeft = false
	c.heldRight = false
	c.heldDown = false

	c.placeSpawned()
}

// Update advances the session by dt. Discrete actions in the input run
// first; Restart is honored only after game over.
func (c *Controller) Update(dt time.Duration, in Input) {
	if in.Restart && c.state == StateGameOver {
		c.Restart()
	}
	if c.state == StateGameOver {
		return
	}
	if in.Rotate {
		c.Rotate()
	}
	if in.HardDrop {
		c.HardDrop()
	}

	c.fallTimer += dt
	c.moveTimer += dt
	c.downTimer += dt
	c.lockTimer += dt

	switch {
	case in.Left && (!c.heldLeft || c.moveTimer >= MoveRepeat):
		if c.shift(-1, 0) {
			c.lockTimer = 0
		}
		c.moveTimer = 0
	case in.Right && (!c.heldRight || c.moveTimer >= MoveRepeat):
		if c.shift(1, 0) {
			c.lockTimer = 0
		}
		c.moveTimer = 0
	case !in.Left && !in.Right:
		c.moveTimer = 0
	}

	if in.Down {
		if !c.heldDown || c.downTimer >= SoftDropRepeat {
			if c.shift(0, 1) {
				c.score += softDropPoints
			}
			c.downTimer = 0
		}
	} else {
		c.downTimer = 0
	}

	c.heldLeft = in.Left
	c.heldRight = in.Right
	c.heldDown = in.Down

	c.applyGravity()
}

func (c *Controller) applyGravity() {
	if c.fallTimer < c.fallInterval {
		return
	}
	c.fallTimer = 0

	if c.shift(0, 1) {
		c.lockTimer = 0
		return
	}
	// Grounded: the lock timer keeps running until it passes LockDelay.
	if c.lockTimer >= LockDelay {
		c.lock()
		c.lockTimer = 0
	}
}

func (c *Controller) lock() {
	c.board.Place(c.active)
	cleared := c.board.ClearFullRows()

	c.score += cleared * lineClearPoints * c.level
	c.lines += cleared
	if c.lines >= c.level*LinesPerLevel {
		c.level++
		c.fallInterval = max(MinFallInterval, c.fallInterval-FallIntervalStep)
	}

	c.spawn()
}

// spawn promotes the next piece and draws a fresh one.
func (c *Controller) spawn() {
	c.active = c.next
	c.active.Rotation = 0
	c.active.X = SpawnX
	c.next = NewPiece(c.source.NextShape())
	c.placeSpawned()
}

// placeSpawned tries the active piece at y = 0, -1, -2, -3 and ends the
// game if none fits. The piece is left at the last offset tried.
func (c *Controller) placeSpawned() {
	for offset := 0; offset < spawnAttempts; offset++ {
		c.active.Y = -offset
		if c.board.Fits(c.active) {
			return
		}
	}
	c.state = StateGameOver
}

func (c *Controller) shift(dx, dy int) bool {
	moved := c.active
	moved.X += dx
	moved.Y += dy
	if !c.board.Fits(moved) {
		return false
	}
	c.active = moved
	return true
}

// Rotate turns the active piece one step forward if the result fits.
// There are no wall kicks.
func (c *Controller) Rotate() {
	if c.state == StateGameOver {
		return
	}
	rotated := c.active
	rotated.Rotation = c.active.Rotated(1)
	if c.board.Fits(rotated) {
		c.active = rotated
	}
}

// HardDrop moves the active piece straight down as far as it fits and
// awards a flat bonus. Locking is left to gravity.
func (c *Controller) HardDrop() {
	if c.state == StateGameOver {
		return
	}
	c.active = c.board.Landing(c.active)
	c.score += hardDropPoints
}

func (c *Controller) State() State                { return c.state }
func (c *Controller) GameOver() bool              { return c.state == StateGameOver }
func (c *Controller) Score() int                  { return c.score }
func (c *Controller) Level() int                  { return c.level }
func (c *Controller) Lines() int                  { return c.lines }
func (c *Controller) FallInterval() time.Duration { return c.fallInterval }
func (c *Controller) Board() Board                { return c.board }
func (c *Controller) Active() Piece               { return c.active }
func (c *Controller) Next() Piece                 { return c.next }

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Board Board
	// Active is nil once the game is over.
	Active   *Piece
	Next     Piece
	Score    int
	Level    int
	Lines    int
	GameOver bool
}

func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Board:    c.board,
		Next:     c.next,
		Score:    c.score,
		Level:    c.level,
		Lines:    c.lines,
		GameOver: c.state == StateGameOver,
	}
	if !s.GameOver {
		active := c.active
		s.Active = &active
	}
	return s
}

// Ghost returns where the active piece would land, if there is one.
func (s Snapshot) Ghost() (Piece, bool) {
	if s.Active == nil {
		return Piece{}, false
	}
	return s.Board.Landing(*s.Active), true
}
