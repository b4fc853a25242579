package core

import "chessroom/internal/engine"

// Request types

type CreateGameRequest struct {
	Color string `json:"color,omitempty" validate:"omitempty,oneof=white black"`
	Name  string `json:"name,omitempty" validate:"omitempty,max=40"`
}

type JoinGameRequest struct {
	Color string `json:"color,omitempty" validate:"omitempty,oneof=white black"`
	Name  string `json:"name,omitempty" validate:"omitempty,max=40"`
}

// SubmitStateRequest carries the whole successor state the client computed
// with the engine. The server replays it against the stored state rather
// than trusting it. PlayerID identifies the seat for anonymous players;
// authenticated requests take the ID from the token instead.
type SubmitStateRequest struct {
	State    engine.GameState `json:"state" validate:"required"`
	PlayerID string           `json:"playerId,omitempty" validate:"omitempty,max=64"`
}

// Response types

type GameResponse struct {
	GameID   string           `json:"gameId"`
	State    engine.GameState `json:"state"`
	Turn     engine.Color     `json:"turn"`
	Status   string           `json:"status"` // "ongoing", "white wins", ...
	Check    bool             `json:"check"`  // side to move is in check
	Players  PlayersResponse  `json:"players"`
	LastMove *MoveInfo        `json:"lastMove,omitempty"`
}

type PlayersResponse struct {
	White *Player `json:"white"`
	Black *Player `json:"black"`
}

type MoveInfo struct {
	PieceID     int          `json:"pieceId"`
	From        engine.Coord `json:"from"`
	To          engine.Coord `json:"to"`
	PlayerColor engine.Color `json:"playerColor"`
}

// MovesResponse lists the legal destinations for one piece, plus whether
// reaching any of them would promote it (so the client can offer the menu).
type MovesResponse struct {
	PieceID int            `json:"pieceId"`
	Moves   []engine.Coord `json:"moves"`
	Promote bool           `json:"promote"`
}

type BoardResponse struct {
	Board string `json:"board"` // ASCII representation
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
