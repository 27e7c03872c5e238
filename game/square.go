package game

import (
	"fmt"
	"math/bits"
)

// Square is a (row, column) coordinate on the board
type Square struct {
	Row int
	Col int
}

func (s Square) String() string {
	return fmt.Sprintf("%d,%d", s.Row, s.Col)
}

// OnBoard reports whether the coordinate lies inside the 8x8 grid
func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < Rows && s.Col >= 0 && s.Col < Cols
}

// Playable reports whether pieces may stand on the square. Only squares whose
// coordinates add up to an even number are used.
func (s Square) Playable() bool {
	return s.OnBoard() && (s.Row+s.Col)%2 == 0
}

// Offset returns the square dr rows and dc columns away. The result may be off the board.
func (s Square) Offset(dr, dc int) Square {
	return Square{Row: s.Row + dr, Col: s.Col + dc}
}

func (s Square) index() int {
	return s.Row*Cols + s.Col
}

func squareAt(index int) Square {
	return Square{Row: index / Cols, Col: index % Cols}
}

// SquareSet is a set of squares packed into a bitboard. Iteration is in row-major
// order, which keeps move generation deterministic.
type SquareSet uint64

func (s SquareSet) Has(sq Square) bool {
	return s&(1<<uint(sq.index())) != 0
}

func (s SquareSet) With(sq Square) SquareSet {
	return s | 1<<uint(sq.index())
}

func (s SquareSet) Without(sq Square) SquareSet {
	return s &^ (1 << uint(sq.index()))
}

func (s SquareSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Squares lists the members in row-major order
func (s SquareSet) Squares() []Square {
	squares := make([]Square, 0, s.Len())
	for rest := uint64(s); rest != 0; rest &= rest - 1 {
		squares = append(squares, squareAt(bits.TrailingZeros64(rest)))
	}
	return squares
}
