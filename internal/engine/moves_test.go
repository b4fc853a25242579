package engine

import "testing"

// position builds a bare state for rule scenarios. IDs are assigned from the
// slice index so scenarios stay readable.
func position(moveCount int, pieces ...Piece) GameState {
	ps := make([]Piece, len(pieces))
	for i, p := range pieces {
		p.ID = i
		ps[i] = p
	}
	return GameState{Pieces: ps, MoveCount: moveCount}
}

func containsCoord(coords []Coord, c Coord) bool {
	for _, x := range coords {
		if x == c {
			return true
		}
	}
	return false
}

func TestSlidingBlockedByOwnPiece(t *testing.T) {
	g := position(0,
		Piece{Type: King, Color: White, Coord: Coord{X: 0, Y: 0}},
		Piece{Type: King, Color: Black, Coord: Coord{X: 7, Y: 7}},
		Piece{Type: Rook, Color: White, Coord: Coord{X: 3, Y: 3}},
		Piece{Type: Pawn, Color: White, Coord: Coord{X: 3, Y: 5}},
		Piece{Type: Pawn, Color: Black, Coord: Coord{X: 6, Y: 3}},
	)
	rook, _ := g.PieceAt(Coord{X: 3, Y: 3})
	moves := ValidMoves(g, rook, false)

	if containsCoord(moves, Coord{X: 3, Y: 5}) {
		t.Error("rook may not capture its own pawn")
	}
	if containsCoord(moves, Coord{X: 3, Y: 6}) {
		t.Error("ray must stop before a friendly blocker")
	}
	if !containsCoord(moves, Coord{X: 3, Y: 4}) {
		t.Error("square before the blocker is reachable")
	}
	if !containsCoord(moves, Coord{X: 6, Y: 3}) {
		t.Error("enemy blocker square is a capture")
	}
	if containsCoord(moves, Coord{X: 7, Y: 3}) {
		t.Error("ray must not continue past a capture")
	}
}

func TestSelfCheckFiltered(t *testing.T) {
	// White rook pinned on the king's file by the black rook.
	g := position(0,
		Piece{Type: King, Color: White, Coord: Coord{X: 3, Y: 0}},
		Piece{Type: Rook, Color: White, Coord: Coord{X: 3, Y: 2}},
		Piece{Type: Rook, Color: Black, Coord: Coord{X: 3, Y: 7}},
		Piece{Type: King, Color: Black, Coord: Coord{X: 7, Y: 7}},
	)
	rook, _ := g.PieceAt(Coord{X: 3, Y: 2})
	moves := ValidMoves(g, rook, false)

	if containsCoord(moves, Coord{X: 4, Y: 2}) {
		t.Error("leaving the pin would expose the king")
	}
	if !containsCoord(moves, Coord{X: 3, Y: 5}) {
		t.Error("moving along the pin file stays legal")
	}
	if !containsCoord(moves, Coord{X: 3, Y: 7}) {
		t.Error("capturing the pinning rook stays legal")
	}
}

func TestPawnMoves(t *testing.T) {
	g := position(0,
		Piece{Type: King, Color: White, Coord: Coord{X: 0, Y: 0}},
		Piece{Type: King, Color: Black, Coord: Coord{X: 7, Y: 7}},
		Piece{Type: Pawn, Color: White, Coord: Coord{X: 4, Y: 1}},
		Piece{Type: Pawn, Color: Black, Coord: Coord{X: 3, Y: 2}},
		Piece{Type: Knight, Color: Black, Coord: Coord{X: 4, Y: 3}},
	)
	pawn, _ := g.PieceAt(Coord{X: 4, Y: 1})
	moves := ValidMoves(g, pawn, false)

	if !containsCoord(moves, Coord{X: 4, Y: 2}) {
		t.Error("forward one onto an empty square")
	}
	if containsCoord(moves, Coord{X: 4, Y: 3}) {
		t.Error("forward is not a capture")
	}
	if !containsCoord(moves, Coord{X: 3, Y: 2}) {
		t.Error("diagonal capture of the enemy pawn")
	}
	if containsCoord(moves, Coord{X: 5, Y: 2}) {
		t.Error("empty diagonal is not a move")
	}

	// Double-step is gated on the piece's own move count, not its rank.
	g2 := position(0,
		Piece{Type: King, Color: White, Coord: Coord{X: 0, Y: 0}},
		Piece{Type: King, Color: Black, Coord: Coord{X: 7, Y: 7}},
		Piece{Type: Pawn, Color: White, Coord: Coord{X: 6, Y: 1}, MoveCount: 2},
	)
	stepped, _ := g2.PieceAt(Coord{X: 6, Y: 1})
	if containsCoord(ValidMoves(g2, stepped, false), Coord{X: 6, Y: 3}) {
		t.Error("double-step after the pawn has moved")
	}
	if !containsCoord(ValidMoves(g2, stepped, false), Coord{X: 6, Y: 2}) {
		t.Error("single step stays available")
	}
}

func withCoord(p Piece, c Coord) Piece {
	p.Coord = c
	return p
}

func TestEnPassant(t *testing.T) {
	// White pawn double-steps past the black pawn waiting on rank 3.
	g := position(1,
		Piece{Type: King, Color: White, Coord: Coord{X: 0, Y: 0}},
		Piece{Type: King, Color: Black, Coord: Coord{X: 7, Y: 7}},
		Piece{Type: Pawn, Color: White, Coord: Coord{X: 4, Y: 1}},
		Piece{Type: Pawn, Color: Black, Coord: Coord{X: 3, Y: 3}, MoveCount: 2},
	)
	white, _ := g.PieceAt(Coord{X: 4, Y: 1})
	g2, err := UpdatePiece(g, withCoord(white, Coord{X: 4, Y: 3}), 1)
	if err != nil {
		t.Fatal(err)
	}

	black, _ := g2.PieceAt(Coord{X: 3, Y: 3})
	moves := ValidMoves(g2, black, false)
	target := Coord{X: 4, Y: 2}
	if !containsCoord(moves, target) {
		t.Fatalf("en passant capture square %v missing from %v", target, moves)
	}

	g3, err := UpdatePiece(g2, withCoord(black, target), 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g3.PieceByID(white.ID); ok {
		t.Error("double-stepped pawn was not removed")
	}
	capturer, ok := g3.PieceAt(target)
	if !ok || capturer.ID != black.ID {
		t.Error("capturing pawn did not land on the en passant square")
	}
	if _, occupied := g3.PieceAt(Coord{X: 4, Y: 3}); occupied {
		t.Error("the square behind the capture must be vacated")
	}
}

func TestEnPassantExpiresAfterOnePly(t *testing.T) {
	g := position(1,
		Piece{Type: King, Color: White, Coord: Coord{X: 0, Y: 0}},
		Piece{Type: King, Color: Black, Coord: Coord{X: 7, Y: 7}},
		Piece{Type: Pawn, Color: White, Coord: Coord{X: 4, Y: 1}},
		Piece{Type: Pawn, Color: Black, Coord: Coord{X: 3, Y: 3}, MoveCount: 2},
		Piece{Type: Knight, Color: Black, Coord: Coord{X: 0, Y: 5}},
		Piece{Type: Knight, Color: White, Coord: Coord{X: 7, Y: 2}},
	)
	white, _ := g.PieceAt(Coord{X: 4, Y: 1})
	g2, _ := UpdatePiece(g, withCoord(white, Coord{X: 4, Y: 3}), 1)

	// Black plays something else; white shuffles; the window has closed.
	bn, _ := g2.PieceAt(Coord{X: 0, Y: 5})
	g3, _ := UpdatePiece(g2, withCoord(bn, Coord{X: 1, Y: 3}), 1)
	wn, _ := g3.PieceAt(Coord{X: 7, Y: 2})
	g4, _ := UpdatePiece(g3, withCoord(wn, Coord{X: 6, Y: 4}), 1)

	black, _ := g4.PieceAt(Coord{X: 3, Y: 3})
	if containsCoord(ValidMoves(g4, black, false), Coord{X: 4, Y: 2}) {
		t.Error("en passant is only available on the ply after the double-step")
	}
}

func TestCastling(t *testing.T) {
	g := position(0,
		Piece{Type: King, Color: White, Coord: Coord{X: 3, Y: 0}},
		Piece{Type: Rook, Color: White, Coord: Coord{X: 0, Y: 0}},
		Piece{Type: Rook, Color: White, Coord: Coord{X: 7, Y: 0}},
		Piece{Type: King, Color: Black, Coord: Coord{X: 3, Y: 7}},
	)
	king, _ := g.PieceAt(Coord{X: 3, Y: 0})
	moves := ValidMoves(g, king, false)

	for _, dest := range []Coord{{X: 1, Y: 0}, {X: 5, Y: 0}} {
		if !containsCoord(moves, dest) {
			t.Errorf("castling destination %v missing from %v", dest, moves)
		}
	}

	g2, err := UpdatePiece(g, withCoord(king, Coord{X: 1, Y: 0}), 1)
	if err != nil {
		t.Fatal(err)
	}
	movedKing, ok := g2.PieceAt(Coord{X: 1, Y: 0})
	if !ok || movedKing.Type != King {
		t.Fatal("king did not land on the castling square")
	}
	rook, ok := g2.PieceAt(Coord{X: 2, Y: 0})
	if !ok || rook.Type != Rook {
		t.Fatal("rook did not cross to the king's other side")
	}
	if movedKing.MoveCount == 0 || rook.MoveCount == 0 {
		t.Error("both castled pieces must record having moved")
	}
	if _, occupied := g2.PieceAt(Coord{X: 0, Y: 0}); occupied {
		t.Error("rook's origin square must be empty")
	}
}

func TestCastlingBlocked(t *testing.T) {
	base := []Piece{
		{Type: King, Color: White, Coord: Coord{X: 3, Y: 0}},
		{Type: Rook, Color: White, Coord: Coord{X: 0, Y: 0}},
		{Type: King, Color: Black, Coord: Coord{X: 3, Y: 7}},
	}

	t.Run("intervening piece", func(t *testing.T) {
		g := position(0, append(base, Piece{Type: Bishop, Color: White, Coord: Coord{X: 2, Y: 0}})...)
		king, _ := g.PieceAt(Coord{X: 3, Y: 0})
		if containsCoord(ValidMoves(g, king, false), Coord{X: 1, Y: 0}) {
			t.Error("castling through an occupied square")
		}
	})

	t.Run("moved rook", func(t *testing.T) {
		pieces := append([]Piece{}, base...)
		pieces[1].MoveCount = 2
		g := position(0, pieces...)
		king, _ := g.PieceAt(Coord{X: 3, Y: 0})
		if containsCoord(ValidMoves(g, king, false), Coord{X: 1, Y: 0}) {
			t.Error("castling with a rook that has moved")
		}
	})

	t.Run("king in check", func(t *testing.T) {
		g := position(0, append(base, Piece{Type: Rook, Color: Black, Coord: Coord{X: 3, Y: 5}})...)
		king, _ := g.PieceAt(Coord{X: 3, Y: 0})
		if containsCoord(ValidMoves(g, king, false), Coord{X: 1, Y: 0}) {
			t.Error("castling out of check")
		}
	})
}

func TestCheckmateBackRank(t *testing.T) {
	g := position(1,
		Piece{Type: King, Color: Black, Coord: Coord{X: 3, Y: 7}, MoveCount: 1},
		Piece{Type: Pawn, Color: Black, Coord: Coord{X: 2, Y: 6}},
		Piece{Type: Pawn, Color: Black, Coord: Coord{X: 3, Y: 6}},
		Piece{Type: Pawn, Color: Black, Coord: Coord{X: 4, Y: 6}},
		Piece{Type: Rook, Color: White, Coord: Coord{X: 7, Y: 7}, MoveCount: 3},
		Piece{Type: King, Color: White, Coord: Coord{X: 3, Y: 0}},
	)

	if !IsInCheck(g, Black) {
		t.Fatal("black must be in check from the back-rank rook")
	}
	if CanMove(g, Black) {
		t.Fatal("black must have no legal moves")
	}
	if !CanMove(g, White) {
		t.Fatal("white is not the mated side")
	}
}

func TestStalemate(t *testing.T) {
	g := position(1,
		Piece{Type: King, Color: Black, Coord: Coord{X: 0, Y: 7}, MoveCount: 4},
		Piece{Type: Queen, Color: White, Coord: Coord{X: 1, Y: 5}, MoveCount: 5},
		Piece{Type: King, Color: White, Coord: Coord{X: 7, Y: 0}},
	)

	if IsInCheck(g, Black) {
		t.Fatal("stalemated side is not in check")
	}
	if CanMove(g, Black) {
		t.Fatal("stalemated side has no legal moves")
	}
}

func TestCanPromote(t *testing.T) {
	wp := Piece{Type: Pawn, Color: White, Coord: Coord{X: 0, Y: 6}}
	if !CanPromote(wp, Coord{X: 0, Y: 7}) {
		t.Error("white pawn reaching rank 7 promotes")
	}
	if CanPromote(wp, Coord{X: 0, Y: 5}) {
		t.Error("no promotion off the far rank")
	}
	bp := Piece{Type: Pawn, Color: Black, Coord: Coord{X: 0, Y: 1}}
	if !CanPromote(bp, Coord{X: 0, Y: 0}) {
		t.Error("black pawn reaching rank 0 promotes")
	}
	if CanPromote(Piece{Type: Rook, Color: White}, Coord{X: 0, Y: 7}) {
		t.Error("only pawns promote")
	}
}

func TestCanAttackIgnoresEmptySquares(t *testing.T) {
	g := position(0,
		Piece{Type: King, Color: White, Coord: Coord{X: 0, Y: 0}},
		Piece{Type: King, Color: Black, Coord: Coord{X: 7, Y: 7}},
		Piece{Type: Rook, Color: White, Coord: Coord{X: 3, Y: 3}},
		Piece{Type: Knight, Color: Black, Coord: Coord{X: 3, Y: 6}},
	)
	rook, _ := g.PieceAt(Coord{X: 3, Y: 3})
	if !CanAttack(g, rook, Coord{X: 3, Y: 6}) {
		t.Error("rook attacks the knight along the open file")
	}
	if CanAttack(g, rook, Coord{X: 3, Y: 5}) {
		t.Error("attack enumeration only reports occupied squares")
	}
}
