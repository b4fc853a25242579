package engine

// ValidateTransition decides whether next is a state the engine itself could
// have produced from prev by one legal move. The server uses it to accept or
// reject client-submitted states without trusting the client.
//
// The strategy is replay-and-compare: find the piece records that changed,
// re-apply the move through UpdatePiece, and require the replayed state to
// equal the submitted one. Legality itself comes from ValidMoves. Nothing
// here duplicates rule logic, so the validator can never accept a transition
// the engine would not produce.
func ValidateTransition(prev, next GameState) bool {
	if !structurallyValid(next) {
		return false
	}

	// Pieces whose coordinate or type changed at the same ID. Pieces that
	// vanished are captures; the replay comparison accounts for them.
	var moved []Piece
	for _, np := range next.Pieces {
		op, ok := prev.PieceByID(np.ID)
		if !ok {
			return false
		}
		if op.Coord != np.Coord || op.Type != np.Type {
			moved = append(moved, np)
		}
	}

	switch len(moved) {
	case 1:
		return replayMatches(prev, next, moved[0])
	case 2:
		// Two pieces may only change together when a king castles; the
		// rook's placement is implied by the deterministic castling branch
		// of UpdatePiece, so replaying the king's move checks both.
		var king Piece
		kings := 0
		for _, m := range moved {
			if m.Type == King {
				king = m
				kings++
			}
		}
		if kings != 1 {
			return false
		}
		return replayMatches(prev, next, king)
	default:
		return false
	}
}

func replayMatches(prev, next GameState, p Piece) bool {
	old, ok := prev.PieceByID(p.ID)
	if !ok {
		return false
	}

	update := old
	update.Coord = p.Coord
	update.Type = p.Type

	// Replay with whatever delta makes the half-move counters line up; the
	// comparison below rejects a dishonest counter along with everything
	// else that differs.
	delta := next.MoveCount - prev.MoveCount
	replayed, err := UpdatePiece(prev, update, delta)
	if err != nil {
		return false
	}
	if !Equal(replayed, next) {
		return false
	}

	for _, to := range ValidMoves(prev, old, false) {
		if to == p.Coord {
			return true
		}
	}
	return false
}

// structurallyValid rejects malformed states before any rule logic runs:
// unknown enum values, out-of-bounds coordinates, negative or duplicate IDs.
func structurallyValid(g GameState) bool {
	if g.Pieces == nil {
		return false
	}
	seen := make(map[int]bool, len(g.Pieces))
	for _, p := range g.Pieces {
		if !p.Type.Valid() || !p.Color.Valid() || !p.Coord.InBounds() {
			return false
		}
		if p.ID < 0 || seen[p.ID] {
			return false
		}
		seen[p.ID] = true
	}
	return true
}
