// Package session holds the interactive client's state between commands:
// who is logged in, which game is current, and which seat the user holds.
package session

import (
	"chessroom/internal/client/api"
	"chessroom/internal/core"
	"chessroom/internal/engine"
)

type Session struct {
	APIBaseURL string
	Client     *api.Client
	Verbose    bool

	// Auth
	AuthToken string
	UserID    string
	Username  string

	// Current game. PlayerID is the seat credential: the user ID when
	// authenticated, otherwise the server-issued UUID returned on
	// create/join, which must accompany every state submission.
	CurrentGame      string
	PlayerID         string
	PlayerColor      engine.Color
	LastMoveCount    int
	CurrentGameState *core.GameResponse
}

func (s *Session) GetAPIBaseURL() string     { return s.APIBaseURL }
func (s *Session) SetAPIBaseURL(url string)  { s.APIBaseURL = url }
func (s *Session) GetClient() *api.Client    { return s.Client }
func (s *Session) IsVerbose() bool           { return s.Verbose }
func (s *Session) GetAuthToken() string      { return s.AuthToken }
func (s *Session) SetAuthToken(token string) { s.AuthToken = token }
func (s *Session) GetUserID() string         { return s.UserID }
func (s *Session) SetUserID(id string)       { s.UserID = id }
func (s *Session) GetUsername() string       { return s.Username }
func (s *Session) SetUsername(name string)   { s.Username = name }

func (s *Session) GetCurrentGame() string { return s.CurrentGame }

// SetCurrentGame switches games and drops the seat and cached state of the
// previous one.
func (s *Session) SetCurrentGame(gameID string) {
	if gameID != s.CurrentGame {
		s.PlayerID = ""
		s.PlayerColor = ""
		s.LastMoveCount = 0
		s.CurrentGameState = nil
	}
	s.CurrentGame = gameID
}

func (s *Session) GetPlayerID() string              { return s.PlayerID }
func (s *Session) SetPlayerID(id string)            { s.PlayerID = id }
func (s *Session) GetPlayerColor() engine.Color     { return s.PlayerColor }
func (s *Session) SetPlayerColor(c engine.Color)    { s.PlayerColor = c }
func (s *Session) GetLastMoveCount() int            { return s.LastMoveCount }
func (s *Session) SetLastMoveCount(n int)           { s.LastMoveCount = n }
func (s *Session) GetGameState() *core.GameResponse { return s.CurrentGameState }

func (s *Session) SetGameState(g *core.GameResponse) {
	s.CurrentGameState = g
	if g != nil {
		s.LastMoveCount = g.State.MoveCount
	}
}
