package game

type Piece int

const (
	Empty Piece = iota
	BlackPawn
	BlackKing
	RedPawn
	RedKing
)

func (p Piece) IsKing() bool {
	return p == BlackKing || p == RedKing
}

func (p Piece) IsEmpty() bool {
	return p == Empty
}

// Owner returns the player the piece belongs to. ok is false for an empty square.
func (p Piece) Owner() (player Player, ok bool) {
	switch p {
	case BlackPawn, BlackKing:
		return Black, true
	case RedPawn, RedKing:
		return Red, true
	}
	return 0, false
}

// BelongsTo reports whether the piece is owned by player
func (p Piece) BelongsTo(player Player) bool {
	owner, ok := p.Owner()
	return ok && owner == player
}

// Promote turns a pawn into a king of the same color. Kings and empty squares are returned unchanged.
func (p Piece) Promote() Piece {
	switch p {
	case BlackPawn:
		return BlackKing
	case RedPawn:
		return RedKing
	}
	return p
}

func (p Piece) String() string {
	switch p {
	case BlackPawn:
		return "b"
	case BlackKing:
		return "B"
	case RedPawn:
		return "r"
	case RedKing:
		return "R"
	}
	return "."
}

// Player identifies one side. The value doubles as the row direction the side's
// pawns move in.
type Player int

const (
	Black Player = 1  // Starts on rows 0-2 and moves first
	Red   Player = -1 // Starts on rows 5-7
)

func (p Player) Other() Player {
	return -p
}

// Forward is the row delta of a step towards the promotion row
func (p Player) Forward() int {
	return int(p)
}

// HomeRow is the back row the player starts on and defends
func (p Player) HomeRow() int {
	if p == Black {
		return 0
	}
	return Rows - 1
}

// PromotionRow is the opponent's home row
func (p Player) PromotionRow() int {
	return p.Other().HomeRow()
}

func (p Player) Pawn() Piece {
	if p == Black {
		return BlackPawn
	}
	return RedPawn
}

func (p Player) King() Piece {
	if p == Black {
		return BlackKing
	}
	return RedKing
}

func (p Player) String() string {
	switch p {
	case Black:
		return "black"
	case Red:
		return "red"
	}
	return "none"
}

// index maps a player to a slot in per-player arrays
func (p Player) index() int {
	if p == Black {
		return 0
	}
	return 1
}
