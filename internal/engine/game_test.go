package engine

import "testing"

func TestMakeGameLayout(t *testing.T) {
	g := MakeGame()

	if len(g.Pieces) != 32 {
		t.Fatalf("expected 32 pieces, got %d", len(g.Pieces))
	}
	if g.MoveCount != 0 {
		t.Fatalf("expected game move count 0, got %d", g.MoveCount)
	}
	if g.Prev != nil {
		t.Fatal("fresh game should have no previous state")
	}

	counts := map[Color]int{}
	for _, p := range g.Pieces {
		counts[p.Color]++
		if p.MoveCount != 0 {
			t.Errorf("piece %d starts with move count %d", p.ID, p.MoveCount)
		}
	}
	if counts[White] != 16 || counts[Black] != 16 {
		t.Fatalf("expected 16 pieces per color, got white=%d black=%d", counts[White], counts[Black])
	}

	// Back rank left to right, king immediately left of queen.
	want := []PieceType{Rook, Knight, Bishop, King, Queen, Bishop, Knight, Rook}
	for x, typ := range want {
		p, ok := g.PieceAt(Coord{X: x, Y: 0})
		if !ok || p.Type != typ || p.Color != White {
			t.Errorf("square (%d,0): want white %s, got %+v", x, typ, p)
		}
		p, ok = g.PieceAt(Coord{X: x, Y: 7})
		if !ok || p.Type != typ || p.Color != Black {
			t.Errorf("square (%d,7): want black %s, got %+v", x, typ, p)
		}
	}
	for x := 0; x < 8; x++ {
		if p, ok := g.PieceAt(Coord{X: x, Y: 1}); !ok || p.Type != Pawn || p.Color != White {
			t.Errorf("square (%d,1): want white pawn", x)
		}
		if p, ok := g.PieceAt(Coord{X: x, Y: 6}); !ok || p.Type != Pawn || p.Color != Black {
			t.Errorf("square (%d,6): want black pawn", x)
		}
	}

	// IDs are the flattened board index at creation: unique, and the white
	// king sits at its own index.
	seen := map[int]bool{}
	for _, p := range g.Pieces {
		if seen[p.ID] {
			t.Fatalf("duplicate piece id %d", p.ID)
		}
		seen[p.ID] = true
	}
	if king, _ := g.kingOf(White); king.ID != 3 {
		t.Errorf("white king id = %d, want 3", king.ID)
	}
}

func TestTurnParity(t *testing.T) {
	g := MakeGame()
	if g.Turn() != White {
		t.Fatal("white moves first")
	}

	pawn, _ := g.PieceAt(Coord{X: 4, Y: 1})
	moved := pawn
	moved.Coord = Coord{X: 4, Y: 3}
	g2, err := UpdatePiece(g, moved, 1)
	if err != nil {
		t.Fatal(err)
	}

	if g2.MoveCount != g.MoveCount+1 {
		t.Fatalf("move count advanced by %d, want 1", g2.MoveCount-g.MoveCount)
	}
	if g2.Turn() != Black {
		t.Fatal("black to move after white's move")
	}
	if g.MoveCount != 0 {
		t.Fatal("previous snapshot was mutated")
	}
}

func TestSingleOccupancy(t *testing.T) {
	g := MakeGame()

	// A short opening including a capture; the invariant must hold after
	// every transition.
	plies := []struct {
		from, to Coord
	}{
		{Coord{4, 1}, Coord{4, 3}},
		{Coord{3, 6}, Coord{3, 4}},
		{Coord{4, 3}, Coord{3, 4}}, // pawn takes pawn
		{Coord{4, 7}, Coord{3, 6}}, // queen out
	}
	for i, ply := range plies {
		p, ok := g.PieceAt(ply.from)
		if !ok {
			t.Fatalf("ply %d: no piece at %v", i, ply.from)
		}
		moved := p
		moved.Coord = ply.to
		next, err := UpdatePiece(g, moved, 1)
		if err != nil {
			t.Fatalf("ply %d: %v", i, err)
		}
		occupied := map[Coord]int{}
		for _, q := range next.Pieces {
			occupied[q.Coord]++
			if occupied[q.Coord] > 1 {
				t.Fatalf("ply %d: square %v occupied twice", i, q.Coord)
			}
		}
		g = next
	}
}

func TestPrevDepthIsOne(t *testing.T) {
	g := MakeGame()
	for _, ply := range []struct{ from, to Coord }{
		{Coord{4, 1}, Coord{4, 3}},
		{Coord{4, 6}, Coord{4, 4}},
	} {
		p, _ := g.PieceAt(ply.from)
		moved := p
		moved.Coord = ply.to
		var err error
		g, err = UpdatePiece(g, moved, 1)
		if err != nil {
			t.Fatal(err)
		}
	}
	if g.Prev == nil {
		t.Fatal("expected one level of history")
	}
	if g.Prev.Prev != nil {
		t.Fatal("history deeper than one ply")
	}
}

func TestUpdatePieceUnknownID(t *testing.T) {
	g := MakeGame()
	ghost := Piece{ID: 99, Type: Queen, Color: White, Coord: Coord{X: 4, Y: 4}}
	if _, err := UpdatePiece(g, ghost, 1); err == nil {
		t.Fatal("expected error for unknown piece id")
	}
}

func TestEqualIgnoresPieceOrder(t *testing.T) {
	a := MakeGame()
	b := MakeGame()
	// Reverse b's slice; identity equality must be unaffected.
	for i, j := 0, len(b.Pieces)-1; i < j; i, j = i+1, j-1 {
		b.Pieces[i], b.Pieces[j] = b.Pieces[j], b.Pieces[i]
	}
	if !Equal(a, b) {
		t.Fatal("piece order must not affect state equality")
	}

	b.Pieces[0].MoveCount++
	if Equal(a, b) {
		t.Fatal("differing piece records must not compare equal")
	}
}
