package engine

import "fmt"

// UpdatePiece applies a move to produce the successor state. The caller
// passes a modified copy of an existing piece: same ID, new coordinate,
// and possibly a new type for promotion. The previous state (with its own
// history stripped) becomes the new state's Prev.
//
// Special moves are recognized in a fixed precedence order: castling (a king
// whose file moved by two), then en passant, then plain move/capture/
// promotion. Each branch removes every piece occupying the destination
// before inserting, so the one-piece-per-square invariant always holds.
//
// delta is the amount added to the game's half-move counter: 1 for a real
// move. The transition validator replays moves with whatever delta makes the
// counters line up, so it is a parameter rather than a constant.
//
// A piece ID that does not exist in g is a caller bug, not a game condition,
// and is reported as an error.
func UpdatePiece(g GameState, p Piece, delta int) (GameState, error) {
	old, ok := g.PieceByID(p.ID)
	if !ok {
		return GameState{}, fmt.Errorf("engine: update of unknown piece id %d", p.ID)
	}

	prev := g.snapshot()
	next := GameState{
		Pieces:    make([]Piece, 0, len(g.Pieces)),
		MoveCount: g.MoveCount + delta,
		Prev:      &prev,
	}

	moved := p
	moved.MoveCount = old.MoveCount + 1

	castle := old.Type == King && abs(p.Coord.X-old.Coord.X) == 2
	var captured Piece
	enPassant := false
	if !castle && old.Type == Pawn {
		captured, enPassant = EnPassantPiece(g, old, p.Coord)
	}

	switch {
	case castle:
		dir := sign(p.Coord.X - old.Coord.X)
		rook, ok := castlingRook(g, old, dir)
		if !ok {
			return GameState{}, fmt.Errorf("engine: no castling rook beside king id %d", p.ID)
		}
		movedRook := rook
		movedRook.Coord = Coord{X: p.Coord.X - dir, Y: p.Coord.Y}
		movedRook.MoveCount = rook.MoveCount + 1
		for _, q := range g.Pieces {
			if q.ID != old.ID && q.ID != rook.ID {
				next.Pieces = append(next.Pieces, q)
			}
		}
		next.Pieces = append(next.Pieces, moved, movedRook)

	case enPassant:
		// The captured pawn is not on the destination square: it sits one
		// rank behind it, where it landed after its double-step.
		for _, q := range g.Pieces {
			if q.ID != old.ID && q.ID != captured.ID {
				next.Pieces = append(next.Pieces, q)
			}
		}
		next.Pieces = append(next.Pieces, moved)

	default:
		for _, q := range g.Pieces {
			if q.ID != old.ID && q.Coord != p.Coord {
				next.Pieces = append(next.Pieces, q)
			}
		}
		next.Pieces = append(next.Pieces, moved)
	}

	return next, nil
}

// EnPassantPiece returns the pawn captured by moving p to the square to, if
// that move is an en passant capture. The conditions: the square one rank
// behind the destination holds a piece right now, the square one rank ahead
// of the destination held an enemy pawn in the previous state, and both are
// the same piece — the pawn that just double-stepped past the destination.
func EnPassantPiece(g GameState, p Piece, to Coord) (Piece, bool) {
	if p.Type != Pawn || g.Prev == nil {
		return Piece{}, false
	}
	dir := p.Color.forward()
	behind, ok := g.PieceAt(Coord{X: to.X, Y: to.Y - dir})
	if !ok {
		return Piece{}, false
	}
	ahead, ok := g.Prev.PieceAt(Coord{X: to.X, Y: to.Y + dir})
	if !ok {
		return Piece{}, false
	}
	if ahead.ID != behind.ID || behind.Type != Pawn || behind.Color == p.Color {
		return Piece{}, false
	}
	return behind, true
}

// castlingRook finds the rook the king castles with: same rank, same color,
// never moved, on the side the king is heading.
func castlingRook(g GameState, king Piece, dir int) (Piece, bool) {
	for _, q := range g.Pieces {
		if q.Type != Rook || q.Color != king.Color || q.MoveCount != 0 {
			continue
		}
		if q.Coord.Y != king.Coord.Y {
			continue
		}
		if sign(q.Coord.X-king.Coord.X) == dir {
			return q, true
		}
	}
	return Piece{}, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
