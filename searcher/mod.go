package searcher

import "math"

// Score bounds. MIN is the exact negation of MAX so negating a bound never overflows.
const (
	MAX = math.MaxInt32
	MIN = -MAX
)

// Outcome is the control state a search frame reports to its caller
type Outcome int

const (
	Initial      Outcome = iota // No child improved on the starting bound
	DepthReached                // The depth limit was hit below the best line
	Finished                    // The best line ends in a decided game
	TimeExpired                 // The deadline passed; the frame's value is unusable
)

func (o Outcome) String() string {
	switch o {
	case Initial:
		return "initial"
	case DepthReached:
		return "depth_reached"
	case Finished:
		return "finished"
	case TimeExpired:
		return "time_expired"
	}
	return "unknown"
}

// result pairs an outcome with the index of the move that produced it
type result struct {
	outcome Outcome
	move    int
}

// set labels a usable result with the move index of the current frame.
// Initial and TimeExpired results carry no move.
func (r result) set(move int) result {
	if r.outcome == DepthReached || r.outcome == Finished {
		r.move = move
	}
	return r
}
