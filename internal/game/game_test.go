package game

import (
	"testing"

	"chessroom/internal/core"
	"chessroom/internal/engine"
)

func TestSeatRefusesTakenColor(t *testing.T) {
	g := New(core.NewPlayer("", "alice", engine.White))

	if err := g.Seat(core.NewPlayer("", "bob", engine.White)); err == nil {
		t.Fatal("seated a second player on a taken color")
	}
	if err := g.Seat(core.NewPlayer("", "bob", engine.Black)); err != nil {
		t.Fatalf("seating the open color: %v", err)
	}
	if _, open := g.OpenSeat(); open {
		t.Fatal("game reports an open seat while full")
	}
}

func TestOpenSeatPrefersWhite(t *testing.T) {
	g := New(nil)
	color, open := g.OpenSeat()
	if !open || color != engine.White {
		t.Fatalf("open seat of an empty game: got %s/%v, want white", color, open)
	}

	g = New(core.NewPlayer("", "alice", engine.White))
	color, open = g.OpenSeat()
	if !open || color != engine.Black {
		t.Fatalf("open seat with white taken: got %s/%v, want black", color, open)
	}
}

func TestPlayerByID(t *testing.T) {
	alice := core.NewPlayer("user-1", "alice", engine.White)
	g := New(alice)

	if got := g.PlayerByID("user-1"); got != alice {
		t.Fatal("seated player not found by ID")
	}
	if got := g.PlayerByID("user-2"); got != nil {
		t.Fatal("unknown ID resolved to a player")
	}
}

// position builds a state directly; moveCount sets whose turn it is.
func position(moveCount int, pieces ...engine.Piece) engine.GameState {
	for i := range pieces {
		pieces[i].ID = i
	}
	return engine.GameState{Pieces: pieces, MoveCount: moveCount}
}

func TestApplyDetectsCheckmate(t *testing.T) {
	g := New(nil)

	// Black to move, cornered king, queen adjacent and defended
	mate := position(1,
		engine.Piece{Type: engine.King, Color: engine.Black, Coord: engine.Coord{X: 0, Y: 7}},
		engine.Piece{Type: engine.Queen, Color: engine.White, Coord: engine.Coord{X: 1, Y: 6}},
		engine.Piece{Type: engine.King, Color: engine.White, Coord: engine.Coord{X: 2, Y: 5}},
	)
	g.Apply(mate, nil)
	if g.Status() != core.StateWhiteWins {
		t.Fatalf("status: got %s, want white wins", g.Status())
	}
	if !g.Status().Over() {
		t.Fatal("checkmate not reported as over")
	}
}

func TestApplyDetectsStalemate(t *testing.T) {
	g := New(nil)

	// Black to move, not in check, every king square covered
	stale := position(1,
		engine.Piece{Type: engine.King, Color: engine.Black, Coord: engine.Coord{X: 0, Y: 7}},
		engine.Piece{Type: engine.Queen, Color: engine.White, Coord: engine.Coord{X: 2, Y: 6}},
		engine.Piece{Type: engine.King, Color: engine.White, Coord: engine.Coord{X: 1, Y: 5}},
	)
	g.Apply(stale, nil)
	if g.Status() != core.StateStalemate {
		t.Fatalf("status: got %s, want stalemate", g.Status())
	}
}

func TestApplyKeepsOngoing(t *testing.T) {
	g := New(nil)
	state := g.CurrentState()

	pawn, _ := state.PieceAt(engine.Coord{X: 4, Y: 1})
	moved := pawn
	moved.Coord = engine.Coord{X: 4, Y: 3}
	next, err := engine.UpdatePiece(state, moved, 1)
	if err != nil {
		t.Fatal(err)
	}

	g.Apply(next, &core.MoveInfo{PieceID: pawn.ID})
	if g.Status() != core.StateOngoing {
		t.Fatalf("status: got %s, want ongoing", g.Status())
	}
	if g.LastMove() == nil || g.LastMove().PieceID != pawn.ID {
		t.Fatal("last move metadata not installed")
	}
}

func TestMovedPieceSimpleMove(t *testing.T) {
	prev := engine.MakeGame()
	pawn, _ := prev.PieceAt(engine.Coord{X: 4, Y: 1})
	moved := pawn
	moved.Coord = engine.Coord{X: 4, Y: 3}
	next, err := engine.UpdatePiece(prev, moved, 1)
	if err != nil {
		t.Fatal(err)
	}

	info, ok := MovedPiece(prev, next)
	if !ok {
		t.Fatal("no moved piece found")
	}
	if info.PieceID != pawn.ID {
		t.Errorf("piece ID: got %d, want %d", info.PieceID, pawn.ID)
	}
	if info.From != pawn.Coord || info.To != moved.Coord {
		t.Errorf("squares: got %v-%v", info.From, info.To)
	}
	if info.PlayerColor != engine.White {
		t.Errorf("color: got %s, want white", info.PlayerColor)
	}
}

func TestMovedPieceReportsKingForCastling(t *testing.T) {
	prev := position(0,
		engine.Piece{Type: engine.King, Color: engine.White, Coord: engine.Coord{X: 3, Y: 0}},
		engine.Piece{Type: engine.Rook, Color: engine.White, Coord: engine.Coord{X: 7, Y: 0}},
		engine.Piece{Type: engine.King, Color: engine.Black, Coord: engine.Coord{X: 3, Y: 7}},
	)
	king, _ := prev.PieceAt(engine.Coord{X: 3, Y: 0})
	moved := king
	moved.Coord = engine.Coord{X: 5, Y: 0}
	next, err := engine.UpdatePiece(prev, moved, 1)
	if err != nil {
		t.Fatal(err)
	}

	info, ok := MovedPiece(prev, next)
	if !ok {
		t.Fatal("no moved piece found")
	}
	if info.PieceID != king.ID {
		t.Errorf("castling should report the king, got piece %d", info.PieceID)
	}
	if info.To != (engine.Coord{X: 5, Y: 0}) {
		t.Errorf("king destination: got %v", info.To)
	}
}
