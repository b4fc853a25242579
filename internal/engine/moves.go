package engine

var (
	orthogonal = []Coord{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal   = []Coord{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	royal      = append(append([]Coord{}, orthogonal...), diagonal...)
	knightwise = []Coord{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
)

// ValidMoves enumerates the destination squares a piece may move to.
//
// With attacksOnly set, the result is the set of squares the piece currently
// threatens: only candidates occupied by an enemy piece are kept, castling is
// never offered, and no self-check filtering happens. This mode exists for
// check detection and is what keeps the recursion finite: ValidMoves →
// simulate → IsInCheck → ValidMoves(attacksOnly) terminates because the
// attacks-only branch never simulates anything.
//
// In the normal mode a candidate survives only if playing it would not leave
// the mover's own king in check, verified by applying the move and running
// check detection on the result. That simulation per candidate square is the
// expensive part of the engine, and the correct one.
func ValidMoves(g GameState, p Piece, attacksOnly bool) []Coord {
	var cands []Coord
	switch p.Type {
	case Queen:
		cands = slide(g, p, royal)
	case Rook:
		cands = slide(g, p, orthogonal)
	case Bishop:
		cands = slide(g, p, diagonal)
	case Knight:
		cands = steps(p, knightwise)
	case King:
		cands = steps(p, royal)
		if !attacksOnly {
			for _, q := range g.Pieces {
				if q.Type == Rook && q.Color == p.Color && CanCastle(g, p, q) {
					dir := sign(q.Coord.X - p.Coord.X)
					cands = append(cands, p.Coord.offset(2*dir, 0))
				}
			}
		}
	case Pawn:
		cands = pawnCandidates(g, p)
	}

	moves := make([]Coord, 0, len(cands))
	for _, to := range cands {
		if !to.InBounds() {
			continue
		}
		occupant, occupied := g.PieceAt(to)
		if occupied && occupant.Color == p.Color {
			continue
		}
		if attacksOnly {
			if occupied {
				moves = append(moves, to)
			}
			continue
		}
		if exposesKing(g, p, to) {
			continue
		}
		moves = append(moves, to)
	}
	return moves
}

// slide projects rays from p in each direction until the board edge or a
// blocking piece. An enemy blocker's square is included as a capture; the
// ray never continues past it.
func slide(g GameState, p Piece, dirs []Coord) []Coord {
	var cands []Coord
	for _, d := range dirs {
		for to := p.Coord.offset(d.X, d.Y); to.InBounds(); to = to.offset(d.X, d.Y) {
			cands = append(cands, to)
			if _, occupied := g.PieceAt(to); occupied {
				break
			}
		}
	}
	return cands
}

func steps(p Piece, offsets []Coord) []Coord {
	cands := make([]Coord, 0, len(offsets))
	for _, d := range offsets {
		cands = append(cands, p.Coord.offset(d.X, d.Y))
	}
	return cands
}

func pawnCandidates(g GameState, p Piece) []Coord {
	var cands []Coord
	dir := p.Color.forward()

	one := p.Coord.offset(0, dir)
	if _, occupied := g.PieceAt(one); !occupied && one.InBounds() {
		cands = append(cands, one)
		two := p.Coord.offset(0, 2*dir)
		if _, occupied := g.PieceAt(two); !occupied && p.MoveCount == 0 {
			cands = append(cands, two)
		}
	}

	for _, dx := range []int{-1, 1} {
		to := p.Coord.offset(dx, dir)
		if occupant, occupied := g.PieceAt(to); occupied && occupant.Color != p.Color {
			cands = append(cands, to)
			continue
		}
		if _, ok := EnPassantPiece(g, p, to); ok {
			cands = append(cands, to)
		}
	}
	return cands
}

// exposesKing simulates the move and reports whether the mover's king ends
// up in check.
func exposesKing(g GameState, p Piece, to Coord) bool {
	moved := p
	moved.Coord = to
	next, err := UpdatePiece(g, moved, 1)
	if err != nil {
		return true
	}
	return IsInCheck(next, p.Color)
}

// CanCastle reports castling eligibility between a king and a rook: neither
// has ever moved, the squares strictly between them are empty, and the king
// is not currently in check. The transit and destination squares are not
// tested for attacks; that matches the behavior this engine has always had
// and changing it is a product decision, not a bug fix to make quietly.
func CanCastle(g GameState, king, rook Piece) bool {
	if king.MoveCount != 0 || rook.MoveCount != 0 {
		return false
	}
	if king.Coord.Y != rook.Coord.Y {
		return false
	}
	lo, hi := king.Coord.X, rook.Coord.X
	if lo > hi {
		lo, hi = hi, lo
	}
	for x := lo + 1; x < hi; x++ {
		if _, occupied := g.PieceAt(Coord{X: x, Y: king.Coord.Y}); occupied {
			return false
		}
	}
	return !IsVulnerable(g, king)
}

// CanPromote reports whether moving p to the square to earns a promotion.
func CanPromote(p Piece, to Coord) bool {
	if p.Type != Pawn {
		return false
	}
	if p.Color == White {
		return to.Y == 7
	}
	return to.Y == 0
}
