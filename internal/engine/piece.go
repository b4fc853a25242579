// Package engine implements the chess rules: board setup, legal move
// enumeration, move application, check/checkmate/stalemate detection and
// validation of externally submitted state transitions.
//
// Every operation is a pure function over value parameters. A GameState is
// never mutated after it has been produced; transitions return fresh values
// so callers may keep references to older snapshots.
package engine

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Valid() bool {
	return c == White || c == Black
}

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the direction of pawn travel along the Y axis.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

type PieceType string

const (
	Pawn   PieceType = "pawn"
	Knight PieceType = "knight"
	Bishop PieceType = "bishop"
	Rook   PieceType = "rook"
	Queen  PieceType = "queen"
	King   PieceType = "king"
)

func (t PieceType) Valid() bool {
	switch t {
	case Pawn, Knight, Bishop, Rook, Queen, King:
		return true
	}
	return false
}

// Coord addresses a board square: X is the file, Y the rank, both in [0,8).
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) InBounds() bool {
	return c.X >= 0 && c.X < 8 && c.Y >= 0 && c.Y < 8
}

func (c Coord) offset(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Piece is identified by ID alone. The ID is assigned at game creation and
// never reused, so a piece keeps its identity across states even after it
// crosses the serialization boundary. MoveCount of zero means the piece has
// never moved, which gates the pawn double-step and castling.
type Piece struct {
	ID        int       `json:"id"`
	Type      PieceType `json:"type"`
	Color     Color     `json:"color"`
	Coord     Coord     `json:"coord"`
	MoveCount int       `json:"moveCount"`
}
