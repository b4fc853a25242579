package board

import (
	"strings"
	"testing"

	"chessroom/internal/engine"
)

func TestParseSquare(t *testing.T) {
	cases := []struct {
		in   string
		want engine.Coord
	}{
		{"a1", engine.Coord{X: 0, Y: 0}},
		{"h8", engine.Coord{X: 7, Y: 7}},
		{"e4", engine.Coord{X: 4, Y: 3}},
		{"d2", engine.Coord{X: 3, Y: 1}},
	}
	for _, tc := range cases {
		got, err := ParseSquare(tc.in)
		if err != nil {
			t.Errorf("ParseSquare(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseSquare(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseSquareRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "e", "e44", "i4", "e9", "4e", "E4"} {
		if _, err := ParseSquare(in); err == nil {
			t.Errorf("ParseSquare(%q): expected error", in)
		}
	}
}

func TestFormatSquareRoundTrip(t *testing.T) {
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			c := engine.Coord{X: x, Y: y}
			back, err := ParseSquare(FormatSquare(c))
			if err != nil {
				t.Fatalf("round trip of %v: %v", c, err)
			}
			if back != c {
				t.Fatalf("round trip of %v came back as %v", c, back)
			}
		}
	}
}

func TestFormatSquareOutOfBounds(t *testing.T) {
	if got := FormatSquare(engine.Coord{X: 8, Y: 0}); got != "??" {
		t.Errorf("out of bounds square rendered as %q", got)
	}
}

func TestLetterCase(t *testing.T) {
	white := engine.Piece{Type: engine.Knight, Color: engine.White}
	black := engine.Piece{Type: engine.Knight, Color: engine.Black}
	if Letter(white) != 'N' {
		t.Errorf("white knight: got %c", Letter(white))
	}
	if Letter(black) != 'n' {
		t.Errorf("black knight: got %c", Letter(black))
	}
}

func TestToASCIIInitialPosition(t *testing.T) {
	out := ToASCII(engine.MakeGame())
	lines := strings.Split(out, "\n")

	if len(lines) != 10 {
		t.Fatalf("line count: got %d, want 10", len(lines))
	}
	if !strings.Contains(lines[0], "a b c d e f g h") {
		t.Errorf("missing file header: %q", lines[0])
	}

	// Rank 8 on top holds the black back rank; white pawns sit on rank 2.
	if !strings.HasPrefix(lines[1], "8 ") {
		t.Errorf("top line is not rank 8: %q", lines[1])
	}
	if !strings.Contains(lines[1], "r") || strings.Contains(lines[1], "R") {
		t.Errorf("rank 8 should hold black pieces: %q", lines[1])
	}
	if !strings.Contains(lines[7], "P") {
		t.Errorf("rank 2 should hold white pawns: %q", lines[7])
	}
	if !strings.Contains(lines[4], ". . . . . . . .") {
		t.Errorf("middle ranks should be empty: %q", lines[4])
	}
}
