package game

// Board dimensions
const (
	Rows = 8
	Cols = 8
)

// Evaluates the board to an integer score. The score is computed from the point of
// view of the side to move, and negated when that side is not the maximizing player,
// so a search can always treat larger values as better for the maximizer.
type Evaluate func(b *Board, maximizer bool) int
