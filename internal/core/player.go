package core

import (
	"github.com/google/uuid"

	"chessroom/internal/engine"
)

// Player is one seat in a game. ID is either the authenticated user's ID or
// a generated anonymous one; either way the server only accepts state
// submissions for a color from the holder of its seat.
type Player struct {
	ID    string       `json:"id"`
	Name  string       `json:"name,omitempty"`
	Color engine.Color `json:"color"`
}

// NewPlayer seats a player. An empty userID seats an anonymous player under
// a fresh UUID, which the client must keep to move.
func NewPlayer(userID, name string, color engine.Color) *Player {
	if userID == "" {
		userID = uuid.New().String()
	}
	return &Player{
		ID:    userID,
		Name:  name,
		Color: color,
	}
}
