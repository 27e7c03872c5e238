package searcher

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/heuristic"
	"time"

	"github.com/rs/zerolog/log"
)

// Longest safety margin kept between the deadline and the caller's budget
const maxMargin = 100 * time.Millisecond

type Option func(ab *AlphaBeta)

// AlphaBeta picks moves with iterative-deepening minimax and alpha-beta pruning
type AlphaBeta struct {
	duration time.Duration
	maxDepth int
	evaluate game.Evaluate
	metrics  metrics.Collector
	trace    *Trace
}

// WithDuration sets the wall-clock budget of a single move
func WithDuration(duration time.Duration) Option {
	return func(ab *AlphaBeta) {
		if duration > 0 {
			ab.duration = duration
		}
	}
}

// WithMaxDepth stops deepening after depth plies
func WithMaxDepth(depth int) Option {
	return func(ab *AlphaBeta) {
		if depth > 0 {
			ab.maxDepth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(ab *AlphaBeta) {
		if evaluate != nil {
			ab.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(ab *AlphaBeta) {
		ab.metrics = metrics.NewCollector()
	}
}

// WithTrace records the tree of the last completed depth into trace
func WithTrace(trace *Trace) Option {
	return func(ab *AlphaBeta) {
		ab.trace = trace
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	ab := &AlphaBeta{ // Default values
		evaluate: heuristic.Default().Score,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(ab)
	}
	if ab.duration <= 0 && ab.maxDepth <= 0 {
		panic("Must specify search duration or max depth")
	}
	return ab
}

// PredictMove returns the index into b.LegalMoves() to play within budget. A nil
// params uses the default weights.
func PredictMove(b *game.Board, budget time.Duration, params *heuristic.Params) int {
	p := heuristic.Default()
	if params != nil {
		p = *params
	}
	return NewAlphaBeta(WithDuration(budget), WithEvaluationFn(p.Score)).FindMove(b)
}

func (ab *AlphaBeta) FindMove(b *game.Board) int {
	move, _ := ab.Search(b)
	return move
}

// Search runs iterative deepening until the budget runs out, the max depth is
// completed, or a line ending in a decided game is found. Only the result of a
// fully searched depth is ever returned.
func (ab *AlphaBeta) Search(b *game.Board) (int, metrics.SearchMetric) {
	ab.metrics.Start()
	if len(b.LegalMoves()) <= 1 {
		return 0, ab.metrics.Complete("single_move")
	}

	start := time.Now()
	s := &search{
		evaluate: ab.evaluate,
		metrics:  ab.metrics,
		tracing:  ab.trace != nil,
	}
	if ab.duration > 0 {
		s.deadline = start.Add(ab.duration - margin(ab.duration))
	}

	best := 0
	for depth := 1; ab.maxDepth <= 0 || depth <= ab.maxDepth; depth++ {
		root := s.newRoot()
		_, r := s.maxValue(b, depth, 0, MIN, MAX, root)

		switch r.outcome {
		case Finished:
			log.Debug().Msgf("found bottom at depth %d after %v", depth, time.Since(start))
			ab.metrics.CompleteDepth(depth)
			ab.trace.store(root, depth)
			return r.move, ab.metrics.Complete(Finished.String())
		case TimeExpired:
			log.Debug().Msgf("time limit expired in depth %d after %v", depth, time.Since(start))
			return best, ab.metrics.Complete(TimeExpired.String())
		case DepthReached:
			best = r.move
		case Initial:
			if s.expired() {
				return best, ab.metrics.Complete(TimeExpired.String())
			}
		}
		log.Debug().Msgf("finished depth %d after %v", depth, time.Since(start))
		ab.metrics.CompleteDepth(depth)
		ab.trace.store(root, depth)
	}
	return best, ab.metrics.Complete(DepthReached.String())
}

// margin keeps the deadline a little ahead of the budget so the move is delivered in time
func margin(budget time.Duration) time.Duration {
	m := budget / 10
	if m > maxMargin {
		m = maxMargin
	}
	return m
}

// search holds the state shared by the frames of one depth iteration
type search struct {
	evaluate game.Evaluate
	deadline time.Time
	metrics  metrics.Collector
	tracing  bool
}

func (s *search) expired() bool {
	return !s.deadline.IsZero() && !time.Now().Before(s.deadline)
}

func (s *search) newRoot() *TraceNode {
	if !s.tracing {
		return nil
	}
	return &TraceNode{Maximizer: true, Alpha: MIN, Beta: MAX}
}

// terminal reports whether the frame ends here: the deadline passed, the game is
// decided, or the depth limit is reached. A decided game is scored by the number of
// plies from the root so faster wins and slower losses are preferred.
func (s *search) terminal(b *game.Board, depth, ply int, maximizer bool) (int, result, bool) {
	if s.expired() {
		return 0, result{outcome: TimeExpired}, true
	}
	if _, over := b.IsTerminal(); over {
		// The side to move has lost
		if maximizer {
			return -(MAX - ply), result{outcome: Finished}, true
		}
		return MAX - ply, result{outcome: Finished}, true
	}
	if depth == 0 {
		return s.evaluate(b, maximizer), result{outcome: DepthReached}, true
	}
	return 0, result{}, false
}

func (s *search) maxValue(b *game.Board, depth, ply, alpha, beta int, node *TraceNode) (int, result) {
	s.metrics.AddNode()
	if v, r, ok := s.terminal(b, depth, ply, true); ok {
		return v, r
	}

	v := MIN
	r := result{outcome: Initial}
	moves := b.LegalMoves()
	for i := range moves {
		child := b.Clone()
		child.ApplyMove(i)
		childNode := node.child(moves[i], false, alpha, beta)

		v2, r2 := s.minValue(child, depth-1, ply+1, alpha, beta, childNode)
		if v2 > v {
			v = v2
			r = r2.set(i)
			if v > alpha {
				alpha = v
			}
		}
		childNode.record(v2, alpha, beta)

		if r2.outcome == TimeExpired {
			return v, r2
		}
		if v >= beta {
			s.metrics.AddCutoff()
			node.prune(moves[i+1:], alpha, beta)
			return v, r
		}
	}
	return v, r
}

func (s *search) minValue(b *game.Board, depth, ply, alpha, beta int, node *TraceNode) (int, result) {
	s.metrics.AddNode()
	if v, r, ok := s.terminal(b, depth, ply, false); ok {
		return v, r
	}

	v := MAX
	r := result{outcome: Initial}
	moves := b.LegalMoves()
	for i := range moves {
		child := b.Clone()
		child.ApplyMove(i)
		childNode := node.child(moves[i], true, alpha, beta)

		v2, r2 := s.maxValue(child, depth-1, ply+1, alpha, beta, childNode)
		if v2 < v {
			v = v2
			r = r2.set(i)
			if v < beta {
				beta = v
			}
		}
		childNode.record(v2, alpha, beta)

		if r2.outcome == TimeExpired {
			return v, r2
		}
		if v <= alpha {
			s.metrics.AddCutoff()
			node.prune(moves[i+1:], alpha, beta)
			return v, r
		}
	}
	return v, r
}
