package game

import (
	"fmt"

	"chessroom/internal/core"
	"chessroom/internal/engine"
)

// Game is the server-side aggregate for one match: the authoritative engine
// state, the two seats, and the derived lifecycle status. Synchronization is
// the service registry's job; a Game itself is only touched under its lock.
type Game struct {
	state    engine.GameState
	players  map[engine.Color]*core.Player
	status   core.State
	lastMove *core.MoveInfo
}

func New(creator *core.Player) *Game {
	g := &Game{
		state:   engine.MakeGame(),
		players: map[engine.Color]*core.Player{},
		status:  core.StateOngoing,
	}
	if creator != nil {
		g.players[creator.Color] = creator
	}
	return g
}

func (g *Game) CurrentState() engine.GameState {
	return g.state
}

func (g *Game) Status() core.State {
	return g.status
}

func (g *Game) Turn() engine.Color {
	return g.state.Turn()
}

func (g *Game) Player(color engine.Color) *core.Player {
	return g.players[color]
}

func (g *Game) PlayerByID(id string) *core.Player {
	for _, p := range g.players {
		if p != nil && p.ID == id {
			return p
		}
	}
	return nil
}

// Seat claims a color for a player. Both seats may be contested in any
// order; a taken seat is refused rather than reassigned.
func (g *Game) Seat(p *core.Player) error {
	if existing := g.players[p.Color]; existing != nil {
		return fmt.Errorf("seat %s already taken", p.Color)
	}
	g.players[p.Color] = p
	return nil
}

// OpenSeat returns a free color, preferring white, or false when full.
func (g *Game) OpenSeat() (engine.Color, bool) {
	for _, c := range []engine.Color{engine.White, engine.Black} {
		if g.players[c] == nil {
			return c, true
		}
	}
	return "", false
}

func (g *Game) LastMove() *core.MoveInfo {
	return g.lastMove
}

// Apply installs an accepted successor state and recomputes the lifecycle
// status from the engine: a side to move with no legal moves has been mated
// if in check, stalemated otherwise.
func (g *Game) Apply(next engine.GameState, move *core.MoveInfo) {
	g.state = next
	g.lastMove = move

	turn := next.Turn()
	if engine.CanMove(next, turn) {
		g.status = core.StateOngoing
		return
	}
	if engine.IsInCheck(next, turn) {
		if turn == engine.White {
			g.status = core.StateBlackWins
		} else {
			g.status = core.StateWhiteWins
		}
		return
	}
	g.status = core.StateStalemate
}

// MovedPiece identifies the piece a transition moved, for response metadata.
// For castling (two changed records) it reports the king. Validation has
// already happened by the time this runs.
func MovedPiece(prev, next engine.GameState) (core.MoveInfo, bool) {
	var info core.MoveInfo
	found := false
	for _, np := range next.Pieces {
		op, ok := prev.PieceByID(np.ID)
		if !ok || (op.Coord == np.Coord && op.Type == np.Type) {
			continue
		}
		if found && np.Type != engine.King {
			continue
		}
		info = core.MoveInfo{
			PieceID:     np.ID,
			From:        op.Coord,
			To:          np.Coord,
			PlayerColor: np.Color,
		}
		found = true
		if np.Type == engine.King {
			break
		}
	}
	return info, found
}
