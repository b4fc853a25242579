package display

import (
	"fmt"
	"strings"

	"chessroom/internal/engine"
)

// RenderBoard prints the server's ASCII board with colored pieces. The first
// and last lines carry the file letters; everything between is a rank.
func RenderBoard(asciiBoard string) {
	lines := strings.Split(asciiBoard, "\n")

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		isFileLine := i == 0 || i == len(lines)-1

		for _, char := range line {
			switch {
			case char >= 'a' && char <= 'h' && isFileLine:
				// File letters - Cyan
				fmt.Printf("%s%c%s", Cyan, char, Reset)
			case char >= 'A' && char <= 'Z':
				// White pieces - Blue
				fmt.Printf("%s%c%s", Blue, char, Reset)
			case char >= 'a' && char <= 'z' && !isFileLine:
				// Black pieces - Red
				fmt.Printf("%s%c%s", Red, char, Reset)
			case char >= '1' && char <= '8':
				// Rank numbers - Cyan
				fmt.Printf("%s%c%s", Cyan, char, Reset)
			default:
				fmt.Printf("%c", char)
			}
		}
		fmt.Println()
	}
}

// ColorName returns a colored side name
func ColorName(c engine.Color) string {
	if c == engine.White {
		return Blue + "White" + Reset
	}
	return Red + "Black" + Reset
}
