package game

// direction is a diagonal step as (row delta, column delta)
type direction struct {
	dr int
	dc int
}

// directions returns the diagonals a piece owned by player may move along.
// Forward right and forward left come first, kings add backward right and left.
func directions(piece Piece, player Player) []direction {
	f := player.Forward()
	dirs := []direction{{f, 1}, {f, -1}}
	if piece.IsKing() {
		dirs = append(dirs, direction{-f, 1}, direction{-f, -1})
	}
	return dirs
}

// calcMoves rebuilds the legal moves of the side to move. If any piece can capture,
// only capture chains are legal.
func (b *Board) calcMoves() {
	st := b.current()
	moves := []Move{}
	canJump := false

	for _, sq := range st.Pieces.Squares() {
		if b.hasJump(sq, st.Player) {
			if !canJump {
				// Forced capture: quiet moves found so far are no longer legal
				moves = moves[:0]
				canJump = true
			}
			b.dfsJumps(sq, sq, nil, st.Player, &moves)
		}
		if canJump {
			continue
		}
		moves = b.appendQuietMoves(sq, st.Player, moves)
	}

	st.Moves = moves
	st.CanJump = canJump
}

func (b *Board) appendQuietMoves(sq Square, player Player, moves []Move) []Move {
	piece := b.grid[sq.Row][sq.Col]
	for _, d := range directions(piece, player) {
		to := sq.Offset(d.dr, d.dc)
		if to.OnBoard() && b.grid[to.Row][to.Col] == Empty {
			moves = append(moves, Move{Start: sq, End: to})
		}
	}
	return moves
}

// hasJump reports whether the piece on sq has a single capture available
func (b *Board) hasJump(sq Square, player Player) bool {
	piece := b.grid[sq.Row][sq.Col]
	for _, d := range directions(piece, player) {
		enemy := sq.Offset(d.dr, d.dc)
		land := sq.Offset(2*d.dr, 2*d.dc)
		if !enemy.OnBoard() || !land.OnBoard() {
			continue
		}
		if b.grid[enemy.Row][enemy.Col].BelongsTo(player.Other()) && b.grid[land.Row][land.Col] == Empty {
			return true
		}
	}
	return false
}

// dfsJumps explores every capture continuation from at. The chain's piece is still
// standing on start while the search runs, and whether it may jump backwards is
// decided by that piece. A branch is emitted as a move once nothing more can be captured.
func (b *Board) dfsJumps(start, at Square, captures []Square, player Player, moves *[]Move) {
	piece := b.grid[start.Row][start.Col]
	found := false

	for _, d := range directions(piece, player) {
		enemy := at.Offset(d.dr, d.dc)
		land := at.Offset(2*d.dr, 2*d.dc)
		if !b.canContinue(start, enemy, land, captures, player) {
			continue
		}
		found = true
		path := make([]Square, len(captures), len(captures)+1)
		copy(path, captures)
		path = append(path, enemy)
		b.dfsJumps(start, land, path, player, moves)
	}

	if !found && len(captures) > 0 {
		*moves = append(*moves, Move{Start: start, End: at, Captures: captures})
	}
}

// canContinue is the capture predicate used inside a chain. The landing square counts
// as open when it is empty, was already captured in this chain, or is the chain's own
// start square, so a chain may loop back onto its origin.
func (b *Board) canContinue(start, enemy, land Square, captures []Square, player Player) bool {
	if !enemy.OnBoard() || !land.OnBoard() {
		return false
	}
	chain := Move{Captures: captures}
	if chain.Captured(enemy) {
		return false
	}
	if !b.grid[enemy.Row][enemy.Col].BelongsTo(player.Other()) {
		return false
	}
	return b.grid[land.Row][land.Col] == Empty || chain.Captured(land) || land == start
}
