package game

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// A layout is the text form of a board: eight lines of eight characters, row 0
// first, followed by an optional line naming the side to move ("black" or "red",
// black when absent). Characters on non-playable squares are ignored. Pieces are
// written b, B, r, R (pawn, king) or with the digit codes 3, 4, 1, 2; '.', '_',
// '0' and ' ' are empty squares. Lines after the turn line are left to the caller.

// NewBoardFromLayout parses layout and falls back to the standard starting position
// when it cannot be read.
func NewBoardFromLayout(layout string) *Board {
	b, err := ParseLayout(layout)
	if err != nil {
		log.Warn().Err(err).Msg("error reading board layout, making default board")
		return NewBoard()
	}
	return b
}

// ParseLayout reads a board from its text form
func ParseLayout(layout string) (*Board, error) {
	lines := strings.Split(strings.ReplaceAll(layout, "\r", ""), "\n")
	if len(lines) < Rows {
		return nil, fmt.Errorf("layout has %d lines, need at least %d", len(lines), Rows)
	}

	var grid [Rows][Cols]Piece
	for row := 0; row < Rows; row++ {
		line := []rune(lines[row])
		if len(line) > Cols {
			return nil, fmt.Errorf("row %d has %d squares, want at most %d", row, len(line), Cols)
		}
		for col, c := range line {
			if !(Square{Row: row, Col: col}).Playable() {
				continue
			}
			piece, err := parsePiece(c)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", row, col, err)
			}
			grid[row][col] = piece
		}
	}

	turn := Black
	if len(lines) > Rows {
		t, err := parseTurn(lines[Rows])
		if err != nil {
			return nil, err
		}
		turn = t
	}
	return newBoard(grid, turn), nil
}

// Layout writes the board in the form read by ParseLayout
func (b *Board) Layout() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			sb.WriteString(b.grid[row][col].String())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(b.turn.String())
	sb.WriteByte('\n')
	return sb.String()
}

func parsePiece(c rune) (Piece, error) {
	switch c {
	case 'b', '3':
		return BlackPawn, nil
	case 'B', '4':
		return BlackKing, nil
	case 'r', '1':
		return RedPawn, nil
	case 'R', '2':
		return RedKing, nil
	case '.', '_', '0', ' ':
		return Empty, nil
	}
	return Empty, fmt.Errorf("unknown piece code %q", c)
}

func parseTurn(line string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "b", "black":
		return Black, nil
	case "r", "red":
		return Red, nil
	}
	return 0, fmt.Errorf("unknown side to move %q", line)
}
