package processor

import (
	"chessroom/internal/core"
)

// CommandType defines the type of command being executed
type CommandType int

const (
	CmdCreateGame CommandType = iota
	CmdJoinGame
	CmdGetGame
	CmdSubmitState
	CmdGetMoves
	CmdGetBoard
	CmdDeleteGame
)

// Command is a unified structure for all processor operations
type Command struct {
	Type    CommandType
	UserID  string
	GameID  string // For game-specific commands
	PieceID int    // For CmdGetMoves
	Args    any    // Command-specific arguments
}

// ProcessorResponse wraps the response with metadata
type ProcessorResponse struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   *core.ErrorResponse `json:"error,omitempty"`
}

func NewCreateGameCommand(req core.CreateGameRequest) Command {
	return Command{
		Type: CmdCreateGame,
		Args: req,
	}
}

func NewJoinGameCommand(gameID string, req core.JoinGameRequest) Command {
	return Command{
		Type:   CmdJoinGame,
		GameID: gameID,
		Args:   req,
	}
}

func NewGetGameCommand(gameID string) Command {
	return Command{
		Type:   CmdGetGame,
		GameID: gameID,
	}
}

func NewSubmitStateCommand(gameID string, req core.SubmitStateRequest) Command {
	return Command{
		Type:   CmdSubmitState,
		GameID: gameID,
		Args:   req,
	}
}

func NewGetMovesCommand(gameID string, pieceID int) Command {
	return Command{
		Type:    CmdGetMoves,
		GameID:  gameID,
		PieceID: pieceID,
	}
}

func NewGetBoardCommand(gameID string) Command {
	return Command{
		Type:   CmdGetBoard,
		GameID: gameID,
	}
}

func NewDeleteGameCommand(gameID string) Command {
	return Command{
		Type:   CmdDeleteGame,
		GameID: gameID,
	}
}
