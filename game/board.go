package game

import (
	"fmt"
	"strings"
)

// PlayerState caches what one side can do in the current position.
type PlayerState struct {
	Player  Player    // The side this state belongs to
	Moves   []Move    // Legal moves, only populated while this side is to move
	CanJump bool      // Whether Moves are forced captures
	Pieces  SquareSet // Squares occupied by this side's pieces
}

// Board is a complete game position. It changes only through ApplyMove; searches
// work on clones so branches never share mutable state.
type Board struct {
	grid    [Rows][Cols]Piece
	players [2]PlayerState
	turn    Player // The side to move
}

// NewBoard returns the standard starting position with black to move.
func NewBoard() *Board {
	var grid [Rows][Cols]Piece
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			sq := Square{Row: row, Col: col}
			if !sq.Playable() {
				continue
			}
			switch {
			case row < 3:
				grid[row][col] = BlackPawn
			case row >= Rows-3:
				grid[row][col] = RedPawn
			}
		}
	}
	return newBoard(grid, Black)
}

// newBoard indexes the pieces on the grid and computes the mover's legal moves
func newBoard(grid [Rows][Cols]Piece, turn Player) *Board {
	b := &Board{
		grid: grid,
		players: [2]PlayerState{
			{Player: Black},
			{Player: Red},
		},
		turn: turn,
	}
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			sq := Square{Row: row, Col: col}
			if owner, ok := grid[row][col].Owner(); ok {
				st := &b.players[owner.index()]
				st.Pieces = st.Pieces.With(sq)
			}
		}
	}
	b.calcMoves()
	return b
}

// Clone returns an independent copy of the board
func (b *Board) Clone() *Board {
	c := *b
	for i := range c.players {
		if b.players[i].Moves != nil {
			c.players[i].Moves = make([]Move, len(b.players[i].Moves))
			copy(c.players[i].Moves, b.players[i].Moves)
		}
	}
	return &c
}

// Turn returns the side to move
func (b *Board) Turn() Player {
	return b.turn
}

// LegalMoves returns the cached legal moves of the side to move. The slice is owned
// by the board and must not be modified.
func (b *Board) LegalMoves() []Move {
	return b.current().Moves
}

// CanJump reports whether the side to move is in forced-capture mode
func (b *Board) CanJump() bool {
	return b.current().CanJump
}

// State returns a copy of the cached state of player
func (b *Board) State(player Player) PlayerState {
	return b.players[player.index()]
}

// Pieces lists the squares occupied by player in row-major order
func (b *Board) Pieces(player Player) []Square {
	return b.players[player.index()].Pieces.Squares()
}

// Count returns how many pieces player has left
func (b *Board) Count(player Player) int {
	return b.players[player.index()].Pieces.Len()
}

// PieceAt returns the piece on sq. Looking up an off-board square is a programming error.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.OnBoard() {
		panic(fmt.Sprintf("square %s is off the board", sq))
	}
	return b.grid[sq.Row][sq.Col]
}

// ApplyMove plays LegalMoves()[index]. It returns false and leaves the board
// untouched when index is out of range.
func (b *Board) ApplyMove(index int) bool {
	mover := b.current()
	if index < 0 || index >= len(mover.Moves) {
		return false
	}
	mv := mover.Moves[index]
	opponent := &b.players[b.turn.Other().index()]

	piece := b.grid[mv.Start.Row][mv.Start.Col]
	for _, c := range mv.Captures {
		b.grid[c.Row][c.Col] = Empty
		opponent.Pieces = opponent.Pieces.Without(c)
	}
	b.grid[mv.Start.Row][mv.Start.Col] = Empty
	mover.Pieces = mover.Pieces.Without(mv.Start)

	if mv.End.Row == b.turn.PromotionRow() {
		piece = piece.Promote()
	}
	b.grid[mv.End.Row][mv.End.Col] = piece
	mover.Pieces = mover.Pieces.With(mv.End)

	// Only the side to move carries a move list
	mover.Moves = nil
	mover.CanJump = false

	b.turn = b.turn.Other()
	b.calcMoves()
	return true
}

// IsTerminal reports the winner once the side to move has no legal moves left.
// The winner is always the side that is not to move.
func (b *Board) IsTerminal() (winner Player, over bool) {
	if len(b.current().Moves) == 0 {
		return b.turn.Other(), true
	}
	return 0, false
}

func (b *Board) current() *PlayerState {
	return &b.players[b.turn.index()]
}

// String draws the board with row 7 on top, the way red sees it from across the table
func (b *Board) String() string {
	var sb strings.Builder
	for row := Rows - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d |", row)
		for col := 0; col < Cols; col++ {
			sb.WriteString(b.grid[row][col].String())
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   0 1 2 3 4 5 6 7\n")
	return sb.String()
}

// MovesString lists the legal moves numbered by their index
func (b *Board) MovesString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Player: %s\n", b.turn)
	for i, mv := range b.LegalMoves() {
		fmt.Fprintf(&sb, "%d. %s\n", i, mv)
	}
	return sb.String()
}
