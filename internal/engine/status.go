package engine

// IsVulnerable reports whether any enemy piece threatens p's square.
func IsVulnerable(g GameState, p Piece) bool {
	for _, q := range g.Pieces {
		if q.Color == p.Color {
			continue
		}
		for _, to := range ValidMoves(g, q, true) {
			if to == p.Coord {
				return true
			}
		}
	}
	return false
}

// IsInCheck reports whether the given color's king is threatened. Behavior
// is only defined for states with exactly one king per color; the engine
// never produces anything else, and externally supplied states go through
// ValidateTransition first.
func IsInCheck(g GameState, c Color) bool {
	king, ok := g.kingOf(c)
	if !ok {
		return false
	}
	return IsVulnerable(g, king)
}

// CanAttack reports whether p currently threatens the square to.
func CanAttack(g GameState, p Piece, to Coord) bool {
	for _, c := range ValidMoves(g, p, true) {
		if c == to {
			return true
		}
	}
	return false
}

// CanMove reports whether the given color has at least one legal move. A
// color that cannot move has lost if it is in check (checkmate) and drawn
// otherwise (stalemate).
func CanMove(g GameState, c Color) bool {
	for _, p := range g.Pieces {
		if p.Color == c && len(ValidMoves(g, p, false)) > 0 {
			return true
		}
	}
	return false
}
