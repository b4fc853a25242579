package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"chessroom/internal/board"
	"chessroom/internal/client/display"
	"chessroom/internal/core"
	"chessroom/internal/engine"
)

func (r *Registry) registerGameCommands() {
	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Create a new game",
		Usage:       "new [white|black]",
		Handler:     newGameHandler,
	})

	r.Register(&Command{
		Name:        "join",
		ShortName:   "j",
		Description: "Join a game (or spectate with 'join <gameId> watch')",
		Usage:       "join <gameId> [white|black|watch]",
		Handler:     joinGameHandler,
	})

	r.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Description: "Make a move",
		Usage:       "move <from> <to> [q|r|b|n]",
		Handler:     moveHandler,
	})

	r.Register(&Command{
		Name:        "moves",
		ShortName:   "v",
		Description: "List legal moves for a piece",
		Usage:       "moves <square>",
		Handler:     movesHandler,
	})

	r.Register(&Command{
		Name:        "show",
		ShortName:   "h",
		Description: "Show board and game state",
		Usage:       "show",
		Handler:     showBoardHandler,
	})

	r.Register(&Command{
		Name:        "state",
		ShortName:   "s",
		Description: "Show raw game JSON",
		Usage:       "state",
		Handler:     gameStateHandler,
	})

	r.Register(&Command{
		Name:        "delete",
		ShortName:   "d",
		Description: "Delete a game",
		Usage:       "delete [gameId]",
		Handler:     deleteGameHandler,
	})

	r.Register(&Command{
		Name:        "poll",
		ShortName:   "p",
		Description: "Long-poll for the opponent's move",
		Usage:       "poll",
		Handler:     pollHandler,
	})
}

func parseColor(arg string) (engine.Color, error) {
	switch strings.ToLower(arg) {
	case "w", "white":
		return engine.White, nil
	case "b", "black":
		return engine.Black, nil
	}
	return "", fmt.Errorf("invalid color %q (use white or black)", arg)
}

// seatOf finds the caller's seat in a game response: by user ID when
// authenticated, otherwise by the color that was requested.
func seatOf(s Session, resp *core.GameResponse, requested engine.Color) *core.Player {
	if id := s.GetUserID(); id != "" {
		if p := resp.Players.White; p != nil && p.ID == id {
			return p
		}
		if p := resp.Players.Black; p != nil && p.ID == id {
			return p
		}
	}
	switch requested {
	case engine.White:
		return resp.Players.White
	case engine.Black:
		return resp.Players.Black
	}
	return nil
}

func takeSeat(s Session, seat *core.Player) {
	if seat == nil {
		return
	}
	s.SetPlayerID(seat.ID)
	s.SetPlayerColor(seat.Color)
	fmt.Printf("Playing as %s", display.ColorName(seat.Color))
	if s.GetUserID() == "" {
		// Anonymous seat: the ID is the only credential, so show it
		fmt.Printf(" (player ID: %s)", seat.ID)
	}
	fmt.Println()
}

func newGameHandler(s Session, args []string) error {
	c := s.GetClient()

	color := engine.White
	if len(args) > 0 {
		var err error
		if color, err = parseColor(args[0]); err != nil {
			return err
		}
	}

	req := &core.CreateGameRequest{
		Color: string(color),
		Name:  s.GetUsername(),
	}

	resp, err := c.CreateGame(req)
	if err != nil {
		return err
	}

	s.SetCurrentGame(resp.GameID)
	s.SetGameState(resp)

	fmt.Printf("%sGame created: %s%s\n", display.Green, resp.GameID, display.Reset)
	takeSeat(s, seatOf(s, resp, color))
	fmt.Printf("Share the game ID so your opponent can 'join %s'\n", resp.GameID)

	return nil
}

func joinGameHandler(s Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: join <gameId> [white|black|watch]")
	}

	gameID := args[0]
	c := s.GetClient()

	// Spectate: track the game without taking a seat
	if len(args) > 1 && strings.EqualFold(args[1], "watch") {
		resp, err := c.GetGame(gameID)
		if err != nil {
			return err
		}
		s.SetCurrentGame(gameID)
		s.SetGameState(resp)
		fmt.Printf("%sWatching game: %s%s\n", display.Green, gameID, display.Reset)
		fmt.Printf("Turn: %s | Status: %s | Moves: %d\n",
			display.ColorName(resp.Turn), resp.Status, resp.State.MoveCount)
		return nil
	}

	var requested engine.Color
	if len(args) > 1 {
		var err error
		if requested, err = parseColor(args[1]); err != nil {
			return err
		}
	}

	req := &core.JoinGameRequest{
		Color: string(requested),
		Name:  s.GetUsername(),
	}

	resp, err := c.JoinGame(gameID, req)
	if err != nil {
		return err
	}

	s.SetCurrentGame(gameID)
	s.SetGameState(resp)

	// No color requested: the server picked the open seat, find the one
	// occupied by a player we don't recognize as the opponent's creator.
	seat := seatOf(s, resp, requested)
	if seat == nil {
		// The open seat preference is white
		if resp.Players.White != nil && resp.Players.Black == nil {
			seat = resp.Players.White
		} else if resp.Players.White == nil && resp.Players.Black != nil {
			seat = resp.Players.Black
		} else if resp.Players.Black != nil {
			seat = resp.Players.Black
		}
	}

	fmt.Printf("%sJoined game: %s%s\n", display.Green, gameID, display.Reset)
	takeSeat(s, seat)
	fmt.Printf("Turn: %s | Status: %s | Moves: %d\n",
		display.ColorName(resp.Turn), resp.Status, resp.State.MoveCount)

	return nil
}

var promotionTypes = map[string]engine.PieceType{
	"q": engine.Queen, "queen": engine.Queen,
	"r": engine.Rook, "rook": engine.Rook,
	"b": engine.Bishop, "bishop": engine.Bishop,
	"n": engine.Knight, "knight": engine.Knight,
}

// moveHandler computes the successor state locally with the rule engine and
// submits the whole state; the server replays it before accepting.
func moveHandler(s Session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: move <from> <to> [q|r|b|n]")
	}

	gameID := s.GetCurrentGame()
	if gameID == "" {
		return fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}
	if s.GetPlayerID() == "" {
		return fmt.Errorf("no seat in this game, use 'join' or 'seat <playerId>'")
	}

	from, err := board.ParseSquare(args[0])
	if err != nil {
		return err
	}
	to, err := board.ParseSquare(args[1])
	if err != nil {
		return err
	}

	c := s.GetClient()

	// Refresh: the opponent may have moved since the last look
	game, err := c.GetGame(gameID)
	if err != nil {
		return err
	}
	s.SetGameState(game)

	piece, ok := game.State.PieceAt(from)
	if !ok {
		return fmt.Errorf("no piece on %s", args[0])
	}
	if pc := s.GetPlayerColor(); pc != "" && piece.Color != pc {
		return fmt.Errorf("%s on %s is not your piece", piece.Type, args[0])
	}

	legal := false
	for _, m := range engine.ValidMoves(game.State, piece, false) {
		if m == to {
			legal = true
			break
		}
	}
	if !legal {
		return fmt.Errorf("%s cannot move from %s to %s", piece.Type, args[0], args[1])
	}

	moved := piece
	moved.Coord = to
	if engine.CanPromote(piece, to) {
		moved.Type = engine.Queen
		if len(args) > 2 {
			t, ok := promotionTypes[strings.ToLower(args[2])]
			if !ok {
				return fmt.Errorf("invalid promotion %q (use q, r, b or n)", args[2])
			}
			moved.Type = t
		}
		fmt.Printf("%sPromoting to %s%s\n", display.Magenta, moved.Type, display.Reset)
	}

	next, err := engine.UpdatePiece(game.State, moved, 1)
	if err != nil {
		return err
	}

	resp, err := c.SubmitState(gameID, &core.SubmitStateRequest{
		State:    next,
		PlayerID: s.GetPlayerID(),
	})
	if err != nil {
		return err
	}

	s.SetGameState(resp)
	fmt.Printf("%sMove accepted: %s %s-%s%s\n",
		display.Green, piece.Type, args[0], args[1], display.Reset)
	if resp.Check {
		fmt.Printf("%sCheck!%s\n", display.Magenta, display.Reset)
	}
	if resp.Status != "ongoing" {
		fmt.Printf("%sGame over: %s%s\n", display.Magenta, resp.Status, display.Reset)
	}

	return nil
}

func movesHandler(s Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: moves <square>")
	}

	gameID := s.GetCurrentGame()
	if gameID == "" {
		return fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}

	c := s.GetClient()

	game := s.GetGameState()
	if game == nil {
		var err error
		if game, err = c.GetGame(gameID); err != nil {
			return err
		}
		s.SetGameState(game)
	}

	square, err := board.ParseSquare(args[0])
	if err != nil {
		return err
	}
	piece, ok := game.State.PieceAt(square)
	if !ok {
		return fmt.Errorf("no piece on %s", args[0])
	}

	resp, err := c.GetMoves(gameID, piece.ID)
	if err != nil {
		return err
	}

	if len(resp.Moves) == 0 {
		fmt.Printf("%s%s on %s has no legal moves%s\n",
			display.Yellow, piece.Type, args[0], display.Reset)
		return nil
	}

	squares := make([]string, len(resp.Moves))
	for i, m := range resp.Moves {
		squares[i] = board.FormatSquare(m)
	}
	fmt.Printf("%s%s on %s:%s %s", display.Cyan, piece.Type, args[0], display.Reset,
		strings.Join(squares, " "))
	if resp.Promote {
		fmt.Printf(" %s(promotes)%s", display.Magenta, display.Reset)
	}
	fmt.Println()

	return nil
}

func describePlayer(p *core.Player) string {
	if p == nil {
		return "(open)"
	}
	if p.Name != "" {
		return p.Name
	}
	if len(p.ID) > 8 {
		return p.ID[:8]
	}
	return p.ID
}

func showBoardHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}

	c := s.GetClient()

	// Get full game state
	game, err := c.GetGame(gameID)
	if err != nil {
		return err
	}

	// Get ASCII board
	b, err := c.GetBoard(gameID)
	if err != nil {
		return err
	}

	s.SetGameState(game)

	// Display board with colors
	fmt.Println()
	display.RenderBoard(b.Board)

	// Display game info
	fmt.Printf("\n%s: %s  %s: %s\n",
		display.ColorName(engine.White), describePlayer(game.Players.White),
		display.ColorName(engine.Black), describePlayer(game.Players.Black))
	fmt.Printf("Turn: %s | Status: %s | Moves: %d\n",
		display.ColorName(game.Turn), game.Status, game.State.MoveCount)
	if game.Check {
		fmt.Printf("%s%s is in check%s\n",
			display.Magenta, game.Turn, display.Reset)
	}

	if game.LastMove != nil {
		fmt.Printf("Last move: %s %s-%s by %s\n",
			pieceTypeAt(game.State, game.LastMove.PieceID),
			board.FormatSquare(game.LastMove.From),
			board.FormatSquare(game.LastMove.To),
			game.LastMove.PlayerColor)
	}

	return nil
}

func pieceTypeAt(g engine.GameState, pieceID int) string {
	if p, ok := g.PieceByID(pieceID); ok {
		return string(p.Type)
	}
	return fmt.Sprintf("piece %d", pieceID)
}

func gameStateHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}

	c := s.GetClient()
	resp, err := c.GetGame(gameID)
	if err != nil {
		return err
	}

	s.SetGameState(resp)

	// Pretty print JSON
	fmt.Printf("%sGame State:%s\n", display.Cyan, display.Reset)
	display.PrettyPrintJSON(resp)

	return nil
}

func deleteGameHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if len(args) > 0 {
		gameID = args[0]
	}

	if gameID == "" {
		return fmt.Errorf("specify game ID or set current game")
	}

	// Deleting a game is final for both players
	fmt.Printf("%sDelete game %s? (y/N): %s", display.Yellow, gameID, display.Reset)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Scan()
	if answer := strings.ToLower(strings.TrimSpace(scanner.Text())); answer != "y" && answer != "yes" {
		fmt.Println("Cancelled")
		return nil
	}

	c := s.GetClient()
	if err := c.DeleteGame(gameID); err != nil {
		return err
	}

	if gameID == s.GetCurrentGame() {
		s.SetCurrentGame("")
	}

	fmt.Printf("%sGame deleted: %s%s\n", display.Green, gameID, display.Reset)
	return nil
}

func pollHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}

	c := s.GetClient()
	moveCount := s.GetLastMoveCount()

	fmt.Printf("%sLong-polling for updates (move count: %d)...%s\n",
		display.Cyan, moveCount, display.Reset)
	fmt.Printf("%sThis may take up to 25 seconds%s\n", display.Cyan, display.Reset)

	resp, err := c.GetGameWithPoll(gameID, moveCount)
	if err != nil {
		return err
	}

	s.SetGameState(resp)

	if resp.State.MoveCount > moveCount {
		fmt.Printf("%sGame updated!%s\n", display.Green, display.Reset)
		if resp.LastMove != nil {
			fmt.Printf("Last move: %s-%s by %s\n",
				board.FormatSquare(resp.LastMove.From),
				board.FormatSquare(resp.LastMove.To),
				resp.LastMove.PlayerColor)
		}
		if resp.Status != "ongoing" {
			fmt.Printf("%sGame over: %s%s\n", display.Magenta, resp.Status, display.Reset)
		}
	} else {
		fmt.Printf("%sNo updates (timeout)%s\n", display.Yellow, display.Reset)
	}

	return nil
}
