package engine

import "testing"

// Every transition the engine itself produces must pass validation. This
// covers the full opening move set plus a capture line.
func TestValidateAcceptsEngineTransitions(t *testing.T) {
	g := MakeGame()
	for _, p := range g.Pieces {
		if p.Color != White {
			continue
		}
		for _, to := range ValidMoves(g, p, false) {
			next, err := UpdatePiece(g, withCoord(p, to), 1)
			if err != nil {
				t.Fatalf("piece %d to %v: %v", p.ID, to, err)
			}
			if !ValidateTransition(g, next) {
				t.Errorf("engine-produced transition rejected: piece %d to %v", p.ID, to)
			}
		}
	}
}

func TestValidateAcceptsCastling(t *testing.T) {
	g := position(0,
		Piece{Type: King, Color: White, Coord: Coord{X: 3, Y: 0}},
		Piece{Type: Rook, Color: White, Coord: Coord{X: 7, Y: 0}},
		Piece{Type: King, Color: Black, Coord: Coord{X: 3, Y: 7}},
	)
	king, _ := g.PieceAt(Coord{X: 3, Y: 0})
	next, err := UpdatePiece(g, withCoord(king, Coord{X: 5, Y: 0}), 1)
	if err != nil {
		t.Fatal(err)
	}
	if !ValidateTransition(g, next) {
		t.Fatal("castling transition rejected despite moving two pieces")
	}
}

func TestValidateAcceptsEnPassant(t *testing.T) {
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
	g3, err := UpdatePiece(g2, withCoord(black, Coord{X: 4, Y: 2}), 1)
	if err != nil {
		t.Fatal(err)
	}
	if !ValidateTransition(g2, g3) {
		t.Fatal("en passant transition rejected")
	}
}

func TestValidateAcceptsPromotion(t *testing.T) {
	g := position(0,
		Piece{Type: King, Color: White, Coord: Coord{X: 0, Y: 0}},
		Piece{Type: King, Color: Black, Coord: Coord{X: 7, Y: 5}},
		Piece{Type: Pawn, Color: White, Coord: Coord{X: 2, Y: 6}, MoveCount: 4},
	)
	pawn, _ := g.PieceAt(Coord{X: 2, Y: 6})
	promoted := pawn
	promoted.Coord = Coord{X: 2, Y: 7}
	promoted.Type = Queen
	next, err := UpdatePiece(g, promoted, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !ValidateTransition(g, next) {
		t.Fatal("promotion transition rejected")
	}
	if q, ok := next.PieceByID(pawn.ID); !ok || q.Type != Queen {
		t.Fatal("promotion must keep the piece's identity")
	}
}

func TestValidateRejectsTwoLooseMoves(t *testing.T) {
	g := MakeGame()

	// Hand-craft a state where two pawns advanced in one transition.
	next := g.snapshot()
	next.MoveCount = g.MoveCount + 1
	prev := g.snapshot()
	next.Prev = &prev
	for i, p := range next.Pieces {
		if p.Color == White && p.Type == Pawn && (p.Coord.X == 0 || p.Coord.X == 1) {
			next.Pieces[i].Coord.Y = 2
			next.Pieces[i].MoveCount = 1
		}
	}
	if ValidateTransition(g, next) {
		t.Fatal("two moved non-king pieces must be rejected")
	}
}

func TestValidateRejectsIllegalDestination(t *testing.T) {
	g := MakeGame()
	pawn, _ := g.PieceAt(Coord{X: 0, Y: 1})

	// UpdatePiece applies whatever it is told; validation is where an
	// illegal destination must die.
	next, err := UpdatePiece(g, withCoord(pawn, Coord{X: 5, Y: 5}), 1)
	if err != nil {
		t.Fatal(err)
	}
	if ValidateTransition(g, next) {
		t.Fatal("teleporting pawn accepted")
	}
}

func TestValidateRejectsTamperedResult(t *testing.T) {
	g := MakeGame()
	pawn, _ := g.PieceAt(Coord{X: 4, Y: 1})
	next, err := UpdatePiece(g, withCoord(pawn, Coord{X: 4, Y: 3}), 1)
	if err != nil {
		t.Fatal(err)
	}

	tampered := next.snapshot()
	tampered.Prev = next.Prev
	for i, p := range tampered.Pieces {
		if p.ID == pawn.ID {
			tampered.Pieces[i].MoveCount = 0 // hide that the pawn moved
		}
	}
	if ValidateTransition(g, tampered) {
		t.Fatal("state with a falsified piece move count accepted")
	}
}

func TestValidateRejectsStructuralGarbage(t *testing.T) {
	g := MakeGame()

	cases := map[string]func(*GameState){
		"unknown type":      func(s *GameState) { s.Pieces[0].Type = "wizard" },
		"unknown color":     func(s *GameState) { s.Pieces[0].Color = "green" },
		"out of bounds":     func(s *GameState) { s.Pieces[0].Coord = Coord{X: 9, Y: 0} },
		"negative id":       func(s *GameState) { s.Pieces[0].ID = -1 },
		"duplicate id":      func(s *GameState) { s.Pieces[1].ID = s.Pieces[0].ID },
		"missing pieces":    func(s *GameState) { s.Pieces = nil },
		"conjured piece id": func(s *GameState) { s.Pieces[0].ID = 1000; s.Pieces[0].Coord = Coord{X: 4, Y: 4} },
	}
	for name, corrupt := range cases {
		next := g.snapshot()
		next.MoveCount = g.MoveCount + 1
		corrupt(&next)
		if ValidateTransition(g, next) {
			t.Errorf("%s: accepted", name)
		}
	}
}

// The validator deliberately tolerates any half-move delta: it replays with
// whatever delta makes the counters line up, exactly so the server layer can
// own the turn-sequencing policy. This pins that division of labor.
func TestValidateToleratesCounterDelta(t *testing.T) {
	g := MakeGame()
	pawn, _ := g.PieceAt(Coord{X: 4, Y: 1})
	next, err := UpdatePiece(g, withCoord(pawn, Coord{X: 4, Y: 3}), 1)
	if err != nil {
		t.Fatal(err)
	}

	skipped := next.snapshot()
	skipped.Prev = next.Prev
	skipped.MoveCount = next.MoveCount + 1
	if !ValidateTransition(g, skipped) {
		t.Fatal("validator is not responsible for counter sequencing")
	}
}
