package service

import (
	"encoding/json"
	"fmt"
	"time"

	"chessroom/internal/core"
	"chessroom/internal/engine"
	"chessroom/internal/game"
	"chessroom/internal/storage"

	"github.com/google/uuid"
)

// Snapshot is a consistent read of one game, taken under the service lock so
// handlers never touch a live aggregate concurrently with a submission.
type Snapshot struct {
	GameID   string
	State    engine.GameState
	Status   core.State
	White    *core.Player
	Black    *core.Player
	LastMove *core.MoveInfo
}

// GenerateGameID creates a new unique game ID
func (s *Service) GenerateGameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Ensure UUID uniqueness (handle potential conflicts)
	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// CreateGame registers a new game with the creator in their chosen seat
func (s *Service) CreateGame(id string, creator *core.Player) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[id]; exists {
		return Snapshot{}, fmt.Errorf("game %s already exists", id)
	}

	g := game.New(creator)
	s.games[id] = g

	if s.store != nil {
		record := storage.GameRecord{
			GameID:       id,
			Status:       g.Status().String(),
			StartTimeUTC: time.Now().UTC(),
		}
		if p := g.Player(engine.White); p != nil {
			record.WhitePlayerID = p.ID
		}
		if p := g.Player(engine.Black); p != nil {
			record.BlackPlayerID = p.ID
		}
		s.store.RecordNewGame(record)
		s.journalState(id, g.CurrentState(), "")
	}

	return s.snapshotLocked(id, g), nil
}

// JoinGame seats a player in an existing game. An empty requested color takes
// the open seat.
func (s *Service) JoinGame(gameID string, requested engine.Color, userID, name string) (*core.Player, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, Snapshot{}, ErrGameNotFound
	}

	color := requested
	if color == "" {
		open, ok := g.OpenSeat()
		if !ok {
			return nil, Snapshot{}, ErrGameFull
		}
		color = open
	}

	player := core.NewPlayer(userID, name, color)
	if err := g.Seat(player); err != nil {
		return nil, Snapshot{}, ErrSeatTaken
	}

	if s.store != nil {
		var whiteID, blackID string
		if p := g.Player(engine.White); p != nil {
			whiteID = p.ID
		}
		if p := g.Player(engine.Black); p != nil {
			blackID = p.ID
		}
		s.store.UpdateGameSeats(gameID, whiteID, blackID)
	}

	return player, s.snapshotLocked(gameID, g), nil
}

// GetGame returns a consistent snapshot of a game
func (s *Service) GetGame(gameID string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return Snapshot{}, ErrGameNotFound
	}
	return s.snapshotLocked(gameID, g), nil
}

// MoveCount returns the current move counter, for long-poll registration
func (s *Service) MoveCount(gameID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return 0, ErrGameNotFound
	}
	return g.CurrentState().MoveCount, nil
}

// ValidMovesFor computes the legal destinations for one piece
func (s *Service) ValidMovesFor(gameID string, pieceID int) ([]engine.Coord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, false, ErrGameNotFound
	}

	state := g.CurrentState()
	piece, ok := state.PieceByID(pieceID)
	if !ok {
		return nil, false, fmt.Errorf("piece %d not on the board", pieceID)
	}

	moves := engine.ValidMoves(state, piece, false)
	promote := false
	for _, to := range moves {
		if engine.CanPromote(piece, to) {
			promote = true
			break
		}
	}
	return moves, promote, nil
}

// SubmitState is the single write path for moves. The caller sends the whole
// successor state it computed locally; under the write lock the service
// checks the seat, the turn, the move counter, and finally replays the
// transition with the engine before accepting it.
func (s *Service) SubmitState(gameID, playerID string, next engine.GameState) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return Snapshot{}, ErrGameNotFound
	}

	if g.Status().Over() {
		return Snapshot{}, ErrGameOver
	}

	player := g.PlayerByID(playerID)
	if player == nil {
		return Snapshot{}, ErrNotSeated
	}

	current := g.CurrentState()
	if player.Color != current.Turn() {
		return Snapshot{}, ErrNotYourTurn
	}

	// Optimistic concurrency: exactly one move ahead of what we hold.
	if next.MoveCount != current.MoveCount+1 {
		return Snapshot{}, ErrStaleState
	}

	if !engine.ValidateTransition(current, next) {
		return Snapshot{}, ErrInvalidMove
	}

	var lastMove *core.MoveInfo
	if info, ok := game.MovedPiece(current, next); ok {
		if info.PlayerColor != player.Color {
			return Snapshot{}, ErrNotYourTurn
		}
		lastMove = &info
	}

	g.Apply(next, lastMove)

	s.waiter.NotifyGame(gameID, next.MoveCount)

	if s.store != nil {
		s.journalState(gameID, next, colorCode(player.Color))
		if g.Status().Over() {
			s.store.UpdateGameStatus(gameID, g.Status().String())
		}
	}

	return s.snapshotLocked(gameID, g), nil
}

// DeleteGame removes a game from memory and its journal from storage
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return ErrGameNotFound
	}

	// Notify and remove all waiters before deletion
	s.waiter.RemoveGame(gameID)

	delete(s.games, gameID)

	if s.store != nil {
		s.store.DeleteGameRecords(gameID)
	}
	return nil
}

// snapshotLocked builds a Snapshot; callers must hold at least a read lock.
func (s *Service) snapshotLocked(gameID string, g *game.Game) Snapshot {
	return Snapshot{
		GameID:   gameID,
		State:    g.CurrentState(),
		Status:   g.Status(),
		White:    g.Player(engine.White),
		Black:    g.Player(engine.Black),
		LastMove: g.LastMove(),
	}
}

// journalState serializes a state into the async journal
func (s *Service) journalState(gameID string, state engine.GameState, playerColor string) {
	data, err := json.Marshal(state)
	if err != nil {
		fmt.Printf("journal: failed to serialize state for game %s: %v\n", gameID, err)
		return
	}
	s.store.RecordState(storage.StateRecord{
		GameID:      gameID,
		MoveCount:   state.MoveCount,
		StateJSON:   string(data),
		PlayerColor: playerColor,
		MoveTimeUTC: time.Now().UTC(),
	})
}

func colorCode(c engine.Color) string {
	if c == engine.White {
		return "w"
	}
	return "b"
}
