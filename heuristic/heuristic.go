package heuristic

import (
	"checkers/game"
	"math"
)

// EndgamePieces is the total piece count below which kings are pushed to hunt
const EndgamePieces = 6

// Score evaluates b from the side to move's point of view: the sum of its pieces'
// features minus the opponent's, plus mobility and aggression terms. The result is
// negated when the side to move is not the maximizer. Score has the game.Evaluate signature.
func (p Params) Score(b *game.Board, maximizer bool) int {
	me := b.Turn()
	opp := me.Other()
	mine := b.Pieces(me)
	theirs := b.Pieces(opp)
	endgame := len(mine)+len(theirs) < EndgamePieces

	score := 0
	for _, sq := range mine {
		score += p.pieceScore(b, sq, me, theirs, endgame)
	}
	for _, sq := range theirs {
		score -= p.pieceScore(b, sq, opp, mine, endgame)
	}
	score += p.mobility(b)
	score += p.aggression(len(mine), len(theirs))

	if !maximizer {
		score = -score
	}
	return score
}

func (p Params) pieceScore(b *game.Board, sq game.Square, owner game.Player, enemies []game.Square, endgame bool) int {
	piece := b.PieceAt(sq)
	score := 0
	if piece.IsKing() {
		score += p[KingValue]
		if endgame {
			score -= p.pursuit(sq, enemies)
		}
	} else {
		score += p[PawnValue]
		score += p.advancement(sq, owner)
	}
	score += p.center(sq)
	score += p.defender(sq, owner)
	return score
}

// advancement rewards pawns for every row they have moved away from home
func (p Params) advancement(sq game.Square, owner game.Player) int {
	return abs(sq.Row-owner.HomeRow()) * p[AdvanceMul]
}

func (p Params) center(sq game.Square) int {
	if sq.Row != 3 && sq.Row != 4 {
		return 0
	}
	switch sq.Col {
	case 3, 4:
		return p[TrueCenter]
	case 2, 5:
		return p[OffCenter]
	}
	return 0
}

// defender rewards pieces that still guard their home row
func (p Params) defender(sq game.Square, owner game.Player) int {
	if sq.Row != owner.HomeRow() {
		return 0
	}
	if sq.Col > 1 && sq.Col < 6 {
		return p[DefenderCenter]
	}
	return p[DefenderSide]
}

func (p Params) mobility(b *game.Board) int {
	moves := len(b.LegalMoves())
	if b.CanJump() {
		return moves * p[PerJumpMove]
	}
	return moves * p[PerMove]
}

// aggression pushes the side with more material to trade down. It is zero when
// counts are equal, otherwise the larger count over the smaller scaled by the
// aggression weight and rounded up, positive when the side to move leads.
func (p Params) aggression(mine, theirs int) int {
	if mine == theirs {
		return 0
	}
	larger, smaller := mine, theirs
	if theirs > mine {
		larger, smaller = theirs, mine
	}
	if smaller < 1 {
		smaller = 1
	}
	magnitude := int(math.Ceil(float64(p[Aggression]) * float64(larger) / float64(smaller)))
	if mine > theirs {
		return magnitude
	}
	return -magnitude
}

// pursuit penalizes a king by its distance to the farthest enemy piece
func (p Params) pursuit(king game.Square, enemies []game.Square) int {
	farthest := 0.0
	for _, e := range enemies {
		dr := float64(king.Row - e.Row)
		dc := float64(king.Col - e.Col)
		farthest = math.Max(farthest, math.Sqrt(dr*dr+dc*dc))
	}
	return int(math.Ceil(farthest * float64(p[Pursuit])))
}
