// Package main implements the interactive terminal client for the chess
// server API.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"chessroom/internal/client/api"
	"chessroom/internal/client/commands"
	"chessroom/internal/client/display"
	"chessroom/internal/client/session"

	"github.com/chzyer/readline"
)

func main() {
	s := &session.Session{
		APIBaseURL: "http://localhost:8080",
		Client:     api.New("http://localhost:8080"),
		Verbose:    false,
	}

	// Initialize readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("chess"),
		HistoryFile:     ".chess_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("%sChess Client%s\n", display.Cyan, display.Reset)
	fmt.Printf("%sAPI: %s%s\n", display.Cyan, s.APIBaseURL, display.Reset)
	fmt.Printf("Type 'help' for commands\n\n")

	registry := commands.NewRegistry(s)

	for {
		// Build enhanced prompt
		prompt := buildPrompt(s)
		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "exit" || line == "quit" || line == "x" {
			break
		}

		// Check for verbose flag
		if strings.HasSuffix(line, " -v") {
			s.Verbose = true
			line = strings.TrimSuffix(line, " -v")
		} else {
			s.Verbose = false
		}

		registry.Execute(line)
	}
}

func buildPrompt(s *session.Session) string {
	parts := []string{}

	// Base
	base := "chess"

	// Add user/game context
	if s.Username != "" {
		parts = append(parts, fmt.Sprintf("%s%s%s", display.Magenta, s.Username, display.Reset))
	}
	if s.Username != "" && s.CurrentGame != "" {
		parts = append(parts, fmt.Sprintf("%s - %s", display.Yellow, display.Reset))
	}
	if s.CurrentGame != "" {
		parts = append(parts, fmt.Sprintf("%s%s%s", display.White, s.CurrentGame[:8], display.Reset))
	}

	// Add player color if seated
	if s.PlayerColor != "" {
		parts = append(parts, display.ColorName(s.PlayerColor))
	}

	// Build first part
	promptStr := base
	if len(parts) > 0 {
		promptStr += display.Yellow + " [" + display.Reset + strings.Join(parts, "") + display.Yellow + "]"
	}

	// Add turn indicator for the current game
	if s.CurrentGameState != nil {
		turn := s.CurrentGameState.Turn
		marker := ""
		if s.PlayerColor != "" {
			if turn == s.PlayerColor {
				marker = "(you)"
			} else {
				marker = "(them)"
			}
		}
		promptStr += fmt.Sprintf(" - Turn:%s%s", display.ColorName(turn), marker)
	}

	return display.Prompt(promptStr)
}
