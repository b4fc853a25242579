package processor

import (
	"errors"
	"fmt"

	"chessroom/internal/board"
	"chessroom/internal/core"
	"chessroom/internal/engine"
	"chessroom/internal/service"
)

// Processor executes API commands against the service layer and shapes the
// results into wire responses.
type Processor struct {
	svc *service.Service
}

// New creates a processor backed by the given service
func New(svc *service.Service) *Processor {
	return &Processor{svc: svc}
}

func (p *Processor) Execute(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdCreateGame:
		return p.handleCreateGame(cmd)
	case CmdJoinGame:
		return p.handleJoinGame(cmd)
	case CmdGetGame:
		return p.handleGetGame(cmd)
	case CmdSubmitState:
		return p.handleSubmitState(cmd)
	case CmdGetMoves:
		return p.handleGetMoves(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	case CmdDeleteGame:
		return p.handleDeleteGame(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrInvalidRequest)
	}
}

// handleCreateGame creates a game with the creator seated
func (p *Processor) handleCreateGame(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.CreateGameRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	color := engine.Color(args.Color)
	if color == "" {
		color = engine.White
	}
	if !color.Valid() {
		return p.errorResponse("invalid color", core.ErrInvalidRequest)
	}

	creator := core.NewPlayer(cmd.UserID, args.Name, color)

	gameID := p.svc.GenerateGameID()
	snap, err := p.svc.CreateGame(gameID, creator)
	if err != nil {
		return p.errorResponse(fmt.Sprintf("failed to create game: %v", err), core.ErrInternalError)
	}

	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(snap),
	}
}

// handleJoinGame seats a second player
func (p *Processor) handleJoinGame(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.JoinGameRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	requested := engine.Color(args.Color)
	if requested != "" && !requested.Valid() {
		return p.errorResponse("invalid color", core.ErrInvalidRequest)
	}

	_, snap, err := p.svc.JoinGame(cmd.GameID, requested, cmd.UserID, args.Name)
	if err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(snap),
	}
}

// handleGetGame retrieves current game state
func (p *Processor) handleGetGame(cmd Command) ProcessorResponse {
	snap, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(snap),
	}
}

// handleSubmitState processes a move as a full successor state
func (p *Processor) handleSubmitState(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.SubmitStateRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	// Authenticated identity wins over the self-reported player ID
	playerID := cmd.UserID
	if playerID == "" {
		playerID = args.PlayerID
	}
	if playerID == "" {
		return p.errorResponse("player identity required", core.ErrUnauthorized)
	}

	snap, err := p.svc.SubmitState(cmd.GameID, playerID, args.State)
	if err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(snap),
	}
}

// handleGetMoves lists legal destinations for a piece
func (p *Processor) handleGetMoves(cmd Command) ProcessorResponse {
	moves, promote, err := p.svc.ValidMovesFor(cmd.GameID, cmd.PieceID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return p.serviceError(err)
		}
		return p.errorResponse(err.Error(), core.ErrInvalidRequest)
	}

	if moves == nil {
		moves = []engine.Coord{}
	}
	return ProcessorResponse{
		Success: true,
		Data: core.MovesResponse{
			PieceID: cmd.PieceID,
			Moves:   moves,
			Promote: promote,
		},
	}
}

// handleGetBoard returns board visualization
func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	snap, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.BoardResponse{
			Board: board.ToASCII(snap.State),
		},
	}
}

// handleDeleteGame removes a game
func (p *Processor) handleDeleteGame(cmd Command) ProcessorResponse {
	if err := p.svc.DeleteGame(cmd.GameID); err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{
		Success: true,
	}
}

// buildGameResponse constructs standard game response
func buildGameResponse(snap service.Snapshot) core.GameResponse {
	turn := snap.State.Turn()
	return core.GameResponse{
		GameID: snap.GameID,
		State:  snap.State,
		Turn:   turn,
		Status: snap.Status.String(),
		Check:  engine.IsInCheck(snap.State, turn),
		Players: core.PlayersResponse{
			White: snap.White,
			Black: snap.Black,
		},
		LastMove: snap.LastMove,
	}
}

// serviceError maps service sentinel errors onto API error codes
func (p *Processor) serviceError(err error) ProcessorResponse {
	code := core.ErrInternalError
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		code = core.ErrGameNotFound
	case errors.Is(err, service.ErrGameOver):
		code = core.ErrGameOver
	case errors.Is(err, service.ErrNotSeated):
		code = core.ErrUnauthorized
	case errors.Is(err, service.ErrNotYourTurn):
		code = core.ErrNotYourTurn
	case errors.Is(err, service.ErrSeatTaken), errors.Is(err, service.ErrGameFull):
		code = core.ErrSeatTaken
	case errors.Is(err, service.ErrStaleState):
		code = core.ErrInvalidState
	case errors.Is(err, service.ErrInvalidMove):
		code = core.ErrInvalidMove
	}
	return p.errorResponse(err.Error(), code)
}

// errorResponse creates error response
func (p *Processor) errorResponse(message, code string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error:   message,
			Code:    code,
		},
	}
}
