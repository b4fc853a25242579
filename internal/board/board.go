package board

import (
	"fmt"
	"strings"

	"chessroom/internal/engine"
)

var pieceLetters = map[engine.PieceType]byte{
	engine.Pawn:   'p',
	engine.Rook:   'r',
	engine.Knight: 'n',
	engine.Bishop: 'b',
	engine.Queen:  'q',
	engine.King:   'k',
}

// Letter returns the one-letter piece code, uppercase for white.
func Letter(p engine.Piece) byte {
	ch := pieceLetters[p.Type]
	if ch == 0 {
		return '?'
	}
	if p.Color == engine.White {
		ch -= 'a' - 'A'
	}
	return ch
}

// ToASCII renders the position with files a-h left to right and rank 8 on
// top, white pieces uppercase.
func ToASCII(g engine.GameState) string {
	var squares [8][8]byte
	for _, p := range g.Pieces {
		if p.Coord.InBounds() {
			squares[p.Coord.Y][p.Coord.X] = Letter(p)
		}
	}

	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for y := 7; y >= 0; y-- {
		sb.WriteString(fmt.Sprintf("%d ", y+1))
		for x := 0; x < 8; x++ {
			if squares[y][x] == 0 {
				sb.WriteString(". ")
			} else {
				sb.WriteString(fmt.Sprintf("%c ", squares[y][x]))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", y+1))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}

// ParseSquare converts algebraic notation ("e4") to a coordinate.
func ParseSquare(square string) (engine.Coord, error) {
	if len(square) != 2 ||
		square[0] < 'a' || square[0] > 'h' ||
		square[1] < '1' || square[1] > '8' {
		return engine.Coord{}, fmt.Errorf("invalid square %q", square)
	}
	return engine.Coord{X: int(square[0] - 'a'), Y: int(square[1] - '1')}, nil
}

// FormatSquare is the inverse of ParseSquare.
func FormatSquare(c engine.Coord) string {
	if !c.InBounds() {
		return "??"
	}
	return fmt.Sprintf("%c%c", 'a'+byte(c.X), '1'+byte(c.Y))
}
