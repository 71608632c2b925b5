package protocol

import "github.com/hersh/blockfall/internal/game"

// MessageType identifies the kind of message sent over the wire.
type MessageType string

const (
	// Server -> Spectator messages
	MsgWelcome  MessageType = "welcome"
	MsgSnapshot MessageType = "snapshot"
)

// Envelope is the top-level wire format for all messages.
type Envelope struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// WelcomePayload is sent when a spectator first connects.
type WelcomePayload struct {
	SpectatorID string `json:"spectator_id"`
}

// PieceState is a piece on the wire.
type PieceState struct {
	Shape    string `json:"shape"`
	Rotation int    `json:"rotation"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// SnapshotPayload is the observable state of a running session.
type SnapshotPayload struct {
	Score    int         `json:"score"`
	Level    int         `json:"level"`
	Lines    int         `json:"lines"`
	GameOver bool        `json:"game_over"`
	Active   *PieceState `json:"active"` // nil once the game is over
	Next     PieceState  `json:"next"`
	// Board is a flat array: BoardHeight * BoardWidth cells.
	// Each value is a color index (0 = empty).
	Board []int `json:"board"`
}

// NewSnapshotPayload converts a controller snapshot for the wire.
func NewSnapshotPayload(s game.Snapshot) SnapshotPayload {
	p := SnapshotPayload{
		Score:    s.Score,
		Level:    s.Level,
		Lines:    s.Lines,
		GameOver: s.GameOver,
		Next:     pieceState(s.Next),
		Board:    s.Board.ToFlat(),
	}
	if s.Active != nil {
		active := pieceState(*s.Active)
		p.Active = &active
	}
	return p
}

// Snapshot converts the payload back. Pieces with an unknown shape are dropped.
func (p SnapshotPayload) Snapshot() game.Snapshot {
	s := game.Snapshot{
		Board:    game.BoardFromFlat(p.Board),
		Score:    p.Score,
		Level:    p.Level,
		Lines:    p.Lines,
		GameOver: p.GameOver,
	}
	if next, ok := p.Next.piece(); ok {
		s.Next = next
	}
	if p.Active != nil {
		if active, ok := p.Active.piece(); ok {
			s.Active = &active
		}
	}
	return s
}

func pieceState(p game.Piece) PieceState {
	return PieceState{
		Shape:    p.Shape.String(),
		Rotation: p.Rotation,
		X:        p.X,
		Y:        p.Y,
	}
}

func (ps PieceState) piece() (game.Piece, bool) {
	shape, ok := game.ParseShape(ps.Shape)
	if !ok {
		return game.Piece{}, false
	}
	return game.Piece{
		Shape:    shape,
		Rotation: ps.Rotation,
		X:        ps.X,
		Y:        ps.Y,
	}, true
}
