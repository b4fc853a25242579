package engine

import "sort"

// GameState is an immutable snapshot of a game. Prev holds the immediately
// preceding state with its own Prev stripped, which is exactly the one ply of
// history en passant detection needs. Deeper history is deliberately not kept.
type GameState struct {
	Pieces    []Piece    `json:"pieces"`
	MoveCount int        `json:"moveCount"`
	Prev      *GameState `json:"prev,omitempty"`
}

// backRank is the layout of rank 0 and rank 7, left to right. King before
// queen is intentional: it mirrors the board orientation the presentation
// layer renders, not algebraic convention.
var backRank = []PieceType{Rook, Knight, Bishop, King, Queen, Bishop, Knight, Rook}

// MakeGame produces the initial arrangement: rows 0-1 white, rows 6-7 black,
// 32 pieces in total. Each piece's ID is its flattened board index at
// creation, so IDs are unique for the lifetime of the game.
func MakeGame() GameState {
	var pieces []Piece
	for x := 0; x < 8; x++ {
		pieces = append(pieces,
			Piece{ID: x, Type: backRank[x], Color: White, Coord: Coord{X: x, Y: 0}},
			Piece{ID: 8 + x, Type: Pawn, Color: White, Coord: Coord{X: x, Y: 1}},
			Piece{ID: 48 + x, Type: Pawn, Color: Black, Coord: Coord{X: x, Y: 6}},
			Piece{ID: 56 + x, Type: backRank[x], Color: Black, Coord: Coord{X: x, Y: 7}},
		)
	}
	return GameState{Pieces: pieces}
}

// Turn returns the side to move: even half-move counts are white's turn.
func (g GameState) Turn() Color {
	if g.MoveCount%2 == 0 {
		return White
	}
	return Black
}

// PieceByID looks a piece up by its stable identity.
func (g GameState) PieceByID(id int) (Piece, bool) {
	for _, p := range g.Pieces {
		if p.ID == id {
			return p, true
		}
	}
	return Piece{}, false
}

// PieceAt returns the piece occupying a square, if any. At most one piece
// occupies any square; UpdatePiece maintains that invariant.
func (g GameState) PieceAt(c Coord) (Piece, bool) {
	for _, p := range g.Pieces {
		if p.Coord == c {
			return p, true
		}
	}
	return Piece{}, false
}

func (g GameState) kingOf(c Color) (Piece, bool) {
	for _, p := range g.Pieces {
		if p.Type == King && p.Color == c {
			return p, true
		}
	}
	return Piece{}, false
}

// snapshot copies g with its history stripped, suitable for storing as the
// Prev of a successor state. The pieces slice is copied so the snapshot stays
// untouched by whatever the caller builds next.
func (g GameState) snapshot() GameState {
	pieces := make([]Piece, len(g.Pieces))
	copy(pieces, g.Pieces)
	return GameState{Pieces: pieces, MoveCount: g.MoveCount}
}

// Equal reports deep, order-insensitive equality of two states. Pieces are
// compared by ID regardless of slice order, and Prev is compared the same
// way. This is the equality the transition validator relies on, so it must
// treat serialization artifacts (field order, piece order) as irrelevant.
func Equal(a, b GameState) bool {
	if a.MoveCount != b.MoveCount || len(a.Pieces) != len(b.Pieces) {
		return false
	}
	as := sortedByID(a.Pieces)
	bs := sortedByID(b.Pieces)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	switch {
	case a.Prev == nil && b.Prev == nil:
		return true
	case a.Prev == nil || b.Prev == nil:
		return false
	}
	return Equal(*a.Prev, *b.Prev)
}

func sortedByID(pieces []Piece) []Piece {
	out := make([]Piece, len(pieces))
	copy(out, pieces)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
