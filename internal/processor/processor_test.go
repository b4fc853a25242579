package processor

import (
	"testing"

	"chessroom/internal/core"
	"chessroom/internal/engine"
	"chessroom/internal/service"
)

func newTestProcessor() *Processor {
	return New(service.New(nil, []byte("test-secret-minimum-32-characters!!")))
}

func createGame(t *testing.T, p *Processor, color string) core.GameResponse {
	t.Helper()
	resp := p.Execute(NewCreateGameCommand(core.CreateGameRequest{Color: color, Name: "alice"}))
	if !resp.Success {
		t.Fatalf("create game failed: %+v", resp.Error)
	}
	return resp.Data.(core.GameResponse)
}

func joinGame(t *testing.T, p *Processor, gameID, color string) core.GameResponse {
	t.Helper()
	resp := p.Execute(NewJoinGameCommand(gameID, core.JoinGameRequest{Color: color, Name: "bob"}))
	if !resp.Success {
		t.Fatalf("join game failed: %+v", resp.Error)
	}
	return resp.Data.(core.GameResponse)
}

func advance(t *testing.T, g engine.GameState, from, to engine.Coord) engine.GameState {
	t.Helper()
	piece, ok := g.PieceAt(from)
	if !ok {
		t.Fatalf("no piece at %v", from)
	}
	moved := piece
	moved.Coord = to
	next, err := engine.UpdatePiece(g, moved, 1)
	if err != nil {
		t.Fatal(err)
	}
	return next
}

func TestCreateGameDefaultsToWhite(t *testing.T) {
	p := newTestProcessor()
	game := createGame(t, p, "")

	if game.Players.White == nil {
		t.Fatal("creator not seated as white")
	}
	if game.Players.Black != nil {
		t.Fatal("black seat should be open")
	}
	if game.Turn != engine.White {
		t.Errorf("turn: got %s, want white", game.Turn)
	}
	if game.Status != "ongoing" {
		t.Errorf("status: got %q, want ongoing", game.Status)
	}
	if game.Check {
		t.Error("fresh game reported as check")
	}
}

func TestCreateGameRejectsInvalidColor(t *testing.T) {
	p := newTestProcessor()
	resp := p.Execute(NewCreateGameCommand(core.CreateGameRequest{Color: "green"}))
	if resp.Success {
		t.Fatal("accepted an invalid color")
	}
	if resp.Error.Code != core.ErrInvalidRequest {
		t.Errorf("code: got %s, want %s", resp.Error.Code, core.ErrInvalidRequest)
	}
}

func TestSubmitStateRoundTrip(t *testing.T) {
	p := newTestProcessor()
	game := createGame(t, p, "white")
	game = joinGame(t, p, game.GameID, "black")

	next := advance(t, game.State, engine.Coord{X: 4, Y: 1}, engine.Coord{X: 4, Y: 3})
	resp := p.Execute(NewSubmitStateCommand(game.GameID, core.SubmitStateRequest{
		State:    next,
		PlayerID: game.Players.White.ID,
	}))
	if !resp.Success {
		t.Fatalf("legal move rejected: %+v", resp.Error)
	}

	updated := resp.Data.(core.GameResponse)
	if updated.State.MoveCount != 1 {
		t.Errorf("move count: got %d, want 1", updated.State.MoveCount)
	}
	if updated.Turn != engine.Black {
		t.Errorf("turn after white's move: got %s, want black", updated.Turn)
	}
	if updated.LastMove == nil || updated.LastMove.PlayerColor != engine.White {
		t.Error("missing or wrong last move metadata")
	}
}

func TestSubmitStateRequiresIdentity(t *testing.T) {
	p := newTestProcessor()
	game := createGame(t, p, "white")

	next := advance(t, game.State, engine.Coord{X: 4, Y: 1}, engine.Coord{X: 4, Y: 2})
	resp := p.Execute(NewSubmitStateCommand(game.GameID, core.SubmitStateRequest{State: next}))
	if resp.Success {
		t.Fatal("accepted a submission with no player identity")
	}
	if resp.Error.Code != core.ErrUnauthorized {
		t.Errorf("code: got %s, want %s", resp.Error.Code, core.ErrUnauthorized)
	}
}

func TestErrorCodeMapping(t *testing.T) {
	p := newTestProcessor()
	game := createGame(t, p, "white")
	joinGame(t, p, game.GameID, "black")

	// Unknown game
	resp := p.Execute(NewGetGameCommand("11111111-1111-1111-1111-111111111111"))
	if resp.Success || resp.Error.Code != core.ErrGameNotFound {
		t.Errorf("unknown game code: got %+v, want %s", resp.Error, core.ErrGameNotFound)
	}

	// Taken seat
	resp = p.Execute(NewJoinGameCommand(game.GameID, core.JoinGameRequest{Color: "white"}))
	if resp.Success || resp.Error.Code != core.ErrSeatTaken {
		t.Errorf("taken seat code: got %+v, want %s", resp.Error, core.ErrSeatTaken)
	}

	// Stale counter
	stale := advance(t, game.State, engine.Coord{X: 4, Y: 1}, engine.Coord{X: 4, Y: 3})
	stale.MoveCount = 7
	resp = p.Execute(NewSubmitStateCommand(game.GameID, core.SubmitStateRequest{
		State:    stale,
		PlayerID: game.Players.White.ID,
	}))
	if resp.Success || resp.Error.Code != core.ErrInvalidState {
		t.Errorf("stale state code: got %+v, want %s", resp.Error, core.ErrInvalidState)
	}

	// Unreachable position
	illegal := advance(t, game.State, engine.Coord{X: 4, Y: 1}, engine.Coord{X: 4, Y: 4})
	resp = p.Execute(NewSubmitStateCommand(game.GameID, core.SubmitStateRequest{
		State:    illegal,
		PlayerID: game.Players.White.ID,
	}))
	if resp.Success || resp.Error.Code != core.ErrInvalidMove {
		t.Errorf("illegal move code: got %+v, want %s", resp.Error, core.ErrInvalidMove)
	}
}

func TestGetMovesShapesResponse(t *testing.T) {
	p := newTestProcessor()
	game := createGame(t, p, "white")

	pawn, _ := game.State.PieceAt(engine.Coord{X: 0, Y: 1})
	resp := p.Execute(NewGetMovesCommand(game.GameID, pawn.ID))
	if !resp.Success {
		t.Fatalf("get moves failed: %+v", resp.Error)
	}

	moves := resp.Data.(core.MovesResponse)
	if moves.PieceID != pawn.ID {
		t.Errorf("piece ID: got %d, want %d", moves.PieceID, pawn.ID)
	}
	if len(moves.Moves) != 2 {
		t.Errorf("opening pawn moves: got %d, want 2", len(moves.Moves))
	}

	// Blocked piece still yields an empty list, not null
	rook, _ := game.State.PieceAt(engine.Coord{X: 0, Y: 0})
	resp = p.Execute(NewGetMovesCommand(game.GameID, rook.ID))
	if !resp.Success {
		t.Fatalf("get moves for blocked piece failed: %+v", resp.Error)
	}
	if resp.Data.(core.MovesResponse).Moves == nil {
		t.Error("blocked piece moves serialized as null")
	}
}

func TestGetBoardRendersASCII(t *testing.T) {
	p := newTestProcessor()
	game := createGame(t, p, "white")

	resp := p.Execute(NewGetBoardCommand(game.GameID))
	if !resp.Success {
		t.Fatalf("get board failed: %+v", resp.Error)
	}
	b := resp.Data.(core.BoardResponse)
	if b.Board == "" {
		t.Fatal("empty board rendering")
	}
}

func TestDeleteGameCommand(t *testing.T) {
	p := newTestProcessor()
	game := createGame(t, p, "white")

	resp := p.Execute(NewDeleteGameCommand(game.GameID))
	if !resp.Success {
		t.Fatalf("delete failed: %+v", resp.Error)
	}

	resp = p.Execute(NewGetGameCommand(game.GameID))
	if resp.Success || resp.Error.Code != core.ErrGameNotFound {
		t.Errorf("deleted game lookup: got %+v, want %s", resp.Error, core.ErrGameNotFound)
	}
}
