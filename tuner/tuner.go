package tuner

import (
	"checkers/agent"
	"checkers/engine"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/heuristic"
	"checkers/meta"
	"checkers/searcher"
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// MaxFitness scores a game that ended without a side running out of moves
const MaxFitness = math.MaxInt32

// Result of one sibling game. Params are the weights of the side credited with the
// win: the winner of a decisive game, else the side ahead on material.
type Result struct {
	Sibling        int // -1 for the unmutated baseline
	Fitness        int // Plies to a decisive win, MaxFitness otherwise
	Params         heuristic.Params
	Challenger     heuristic.Params
	ChallengerSide game.Player
	Outcome        engine.Outcome
}

type Generation struct {
	Baseline heuristic.Params
	Fitness  int
	Params   heuristic.Params // Weights seeding the next generation
	Selected int              // Sibling whose result was selected, -1 keeps the baseline
	Siblings []Result
}

type Option func(t *Tuner)

// Tuner improves heuristic weights by self-play: every generation plays mutated
// siblings against the baseline and keeps the weights behind the fastest win.
type Tuner struct {
	moveDuration  time.Duration
	maxDepth      int
	seed          uint64
	mutate        bool
	quietPlyLimit int
	maxPlies      int
	logger        zerolog.Logger
	writer        *metrics.Writer
	board         *game.Board
	newAgent      func(p heuristic.Params) agent.Agent
}

// WithMoveDuration sets the thinking time per move. Zero leaves only the depth limit.
func WithMoveDuration(duration time.Duration) Option {
	return func(t *Tuner) {
		if duration >= 0 {
			t.moveDuration = duration
		}
	}
}

func WithMaxDepth(depth int) Option {
	return func(t *Tuner) {
		if depth > 0 {
			t.maxDepth = depth
		}
	}
}

// WithSeed makes the mutations reproducible. Sibling i draws from seed+i.
func WithSeed(seed uint64) Option {
	return func(t *Tuner) {
		t.seed = seed
	}
}

// WithMutation(false) plays the baseline against itself
func WithMutation(mutate bool) Option {
	return func(t *Tuner) {
		t.mutate = mutate
	}
}

func WithQuietPlyLimit(limit int) Option {
	return func(t *Tuner) {
		if limit >= 0 {
			t.quietPlyLimit = limit
		}
	}
}

func WithMaxPlies(plies int) Option {
	return func(t *Tuner) {
		if plies >= 0 {
			t.maxPlies = plies
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(t *Tuner) {
		t.logger = logger
	}
}

// WithWriter appends every generation to the writer's generations.csv
func WithWriter(writer *metrics.Writer) Option {
	return func(t *Tuner) {
		t.writer = writer
	}
}

// WithStartingBoard plays every sibling game from a copy of board instead of the starting position
func WithStartingBoard(board *game.Board) Option {
	return func(t *Tuner) {
		t.board = board
	}
}

func New(options ...Option) *Tuner {
	t := &Tuner{ // Default values
		moveDuration:  meta.TRAIN_MOVE_DURATION,
		seed:          uint64(time.Now().UnixNano()),
		mutate:        true,
		quietPlyLimit: meta.QUIET_PLY_LIMIT,
		maxPlies:      meta.MAX_PLIES,
		logger:        log.Logger,
	}
	for _, option := range options {
		option(t)
	}
	if t.moveDuration <= 0 && t.maxDepth <= 0 {
		panic("Must specify move duration or max depth")
	}
	t.newAgent = t.searchAgent
	return t
}

func (t *Tuner) searchAgent(p heuristic.Params) agent.Agent {
	return agent.NewSearchAgent(searcher.NewAlphaBeta(
		searcher.WithDuration(t.moveDuration),
		searcher.WithMaxDepth(t.maxDepth),
		searcher.WithEvaluationFn(p.Score),
	))
}

// Run plays generations one after another, each seeded by the selection of the
// previous one, and returns the final weights.
func (t *Tuner) Run(ctx context.Context, baseline heuristic.Params, generations, siblings int) (heuristic.Params, error) {
	params := baseline
	for n := 0; n < generations; n++ {
		t.logger.Info().Int("generation", n).Object("params", params).Msg("starting generation")

		gen, err := t.RunGeneration(ctx, params, siblings)
		if err != nil {
			return params, fmt.Errorf("generation %d: %w", n, err)
		}
		t.logger.Info().
			Int("generation", n).
			Int("fitness", gen.Fitness).
			Int("selected", gen.Selected).
			Object("params", gen.Params).
			Msg("generation ended")

		if t.writer != nil {
			if err := t.writer.AppendGenerations(records(n, gen)); err != nil {
				return params, err
			}
		}
		params = gen.Params
	}
	return params, nil
}

// RunGeneration plays siblings games concurrently, each between a mutation of
// baseline and baseline itself, and selects the weights credited with the fastest
// decisive win. Ties keep the baseline. A sibling that panics fails the generation.
func (t *Tuner) RunGeneration(ctx context.Context, baseline heuristic.Params, siblings int) (Generation, error) {
	if siblings < 1 {
		return Generation{}, fmt.Errorf("need at least one sibling, got %d", siblings)
	}

	best := newBest()
	results := make([]Result, siblings)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < siblings; i++ {
		i := i
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("sibling %d panicked: %v", i, r)
				}
			}()
			results[i], err = t.playSibling(ctx, i, baseline, best)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Generation{}, err
	}

	kept := Result{Sibling: -1, Fitness: MaxFitness, Params: baseline, Challenger: baseline}
	selected := lo.MinBy(append([]Result{kept}, results...), func(a, b Result) bool {
		return a.Fitness < b.Fitness
	})

	return Generation{
		Baseline: baseline,
		Fitness:  selected.Fitness,
		Params:   selected.Params,
		Selected: selected.Sibling,
		Siblings: results,
	}, nil
}

// playSibling plays sibling i. The challenger takes black on even siblings and red
// on odd ones. The game is abandoned as soon as it can no longer beat the best
// fitness of the generation.
func (t *Tuner) playSibling(ctx context.Context, i int, baseline heuristic.Params, best *best) (Result, error) {
	challenger := baseline
	if t.mutate {
		rng := rand.New(rand.NewSource(t.seed + uint64(i)))
		challenger = baseline.Mutate(rng)
	}

	side := game.Black
	agents := [2]agent.Agent{t.newAgent(challenger), t.newAgent(baseline)}
	if i%2 == 1 {
		side = game.Red
		agents[0], agents[1] = agents[1], agents[0]
	}

	abort := func(plies int) bool {
		// Finishing takes at least one more ply
		return ctx.Err() != nil || plies+1 >= best.get()
	}
	board := game.NewBoard()
	if t.board != nil {
		board = t.board.Clone()
	}
	e := engine.LocalEngine(agents, board,
		engine.WithQuietPlyLimit(t.quietPlyLimit),
		engine.WithMaxPlies(t.maxPlies),
		engine.WithAbort(abort),
	)
	outcome, _, _, err := e.Run()
	if err != nil {
		return Result{}, fmt.Errorf("sibling %d: %w", i, err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	fitness := MaxFitness
	if outcome.Decisive {
		fitness = outcome.Plies
	}
	best.offer(fitness)

	params := baseline
	if outcome.Winner == side {
		params = challenger
	}
	t.logger.Debug().
		Int("sibling", i).
		Int("fitness", fitness).
		Int("plies", outcome.Plies).
		Str("reason", string(outcome.Reason)).
		Stringer("winner", outcome.Winner).
		Msg("sibling finished")

	return Result{
		Sibling:        i,
		Fitness:        fitness,
		Params:         params,
		Challenger:     challenger,
		ChallengerSide: side,
		Outcome:        outcome,
	}, nil
}

func records(generation int, gen Generation) []metrics.GenerationRecord {
	baseline := metrics.GenerationRecord{
		Generation: generation,
		Sibling:    -1,
		Fitness:    MaxFitness,
		Selected:   gen.Selected == -1,
		Params:     gen.Baseline,
	}
	return append([]metrics.GenerationRecord{baseline}, lo.Map(gen.Siblings, func(r Result, _ int) metrics.GenerationRecord {
		return metrics.GenerationRecord{
			Generation: generation,
			Sibling:    r.Sibling,
			Fitness:    r.Fitness,
			Selected:   gen.Selected == r.Sibling,
			Params:     r.Params,
		}
	})...)
}
