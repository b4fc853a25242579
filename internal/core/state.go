package core

// State is the lifecycle of a game as the server tracks it. The engine only
// answers "can this color move" and "is it in check"; mapping that onto a
// result is the server's concern.
type State int

const (
	StateOngoing State = iota
	StateWhiteWins
	StateBlackWins
	StateStalemate
)

func (s State) String() string {
	switch s {
	case StateWhiteWins:
		return "white wins"
	case StateBlackWins:
		return "black wins"
	case StateStalemate:
		return "stalemate"
	case StateOngoing:
		return "ongoing"
	default:
		return "unknown"
	}
}

func (s State) Over() bool {
	return s != StateOngoing
}
