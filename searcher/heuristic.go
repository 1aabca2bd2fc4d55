package searcher

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"ludus/experiments/metrics"
	"ludus/game"
	"ludus/randomness"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// HeuristicAgent evaluates every move it could make and picks randomly among
// the best ones. By default a move is worth the heuristic value of the state it
// leads to, or the result if that state is final.
type HeuristicAgent[M comparable] struct {
	random    *randomness.Source
	heuristic game.Heuristic[M]
	logger    zerolog.Logger
	metrics   metrics.Collector
	states    StateEvaluator[M]
	moves     MoveEvaluator[M]
}

var _ Agent[int] = (*HeuristicAgent[int])(nil)

// NewHeuristicAgent returns an agent evaluating states with heuristic. A nil
// heuristic is replaced by RandomHeuristic, which is only useful in tests.
func NewHeuristicAgent[M comparable](heuristic game.Heuristic[M], options ...Option) *HeuristicAgent[M] {
	return newHeuristicAgent(heuristic, newSettings(options))
}

func newHeuristicAgent[M comparable](heuristic game.Heuristic[M], s settings) *HeuristicAgent[M] {
	a := &HeuristicAgent[M]{
		random:    s.random,
		heuristic: heuristic,
		logger:    s.logger,
		metrics:   s.metrics,
	}
	if a.heuristic == nil {
		a.heuristic = RandomHeuristic[M](s.random)
	}
	a.states = a
	a.moves = a
	return a
}

// EvaluateMovesWith replaces the move evaluation step, for example with one
// returning Pending evaluations.
func (a *HeuristicAgent[M]) EvaluateMovesWith(e MoveEvaluator[M]) {
	if e == nil {
		e = a
	}
	a.moves = e
}

func (a *HeuristicAgent[M]) Heuristic(g game.Game[M], player string) float64 {
	a.metrics.AddHeuristic()
	return a.heuristic(g, player)
}

func (a *HeuristicAgent[M]) StateEvaluation(g game.Game[M], player string) (float64, error) {
	if result := g.Result(); result.Finished() {
		return result[player], nil
	}
	return a.Heuristic(g, player), nil
}

func (a *HeuristicAgent[M]) MoveEvaluation(move M, g game.Game[M], player string) (Evaluation, error) {
	next, err := g.Next(map[string]M{player: move})
	if err != nil {
		return Evaluation{}, err
	}
	value, err := a.states.StateEvaluation(next, player)
	if err != nil {
		return Evaluation{}, err
	}
	return Ready(value), nil
}

// SelectMoves evaluates all moves and returns the ones with the highest
// evaluation, in the order given. Pending evaluations are awaited together;
// if any of them fails, the selection fails.
func (a *HeuristicAgent[M]) SelectMoves(moves []M, g game.Game[M], player string) ([]M, error) {
	evaluations := make([]Evaluation, len(moves))
	for i, move := range moves {
		e, err := a.moves.MoveEvaluation(move, g, player)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate move %v: %w", move, err)
		}
		a.metrics.AddEvaluation()
		evaluations[i] = e
	}

	evaluated := make([]EvaluatedMove[M], len(moves))
	var group errgroup.Group
	for i, e := range evaluations {
		evaluated[i].Move = moves[i]
		if value, ok := e.Value(); ok {
			evaluated[i].Evaluation = value
			continue
		}
		group.Go(func() error {
			value, err := e.Await()
			if err != nil {
				return fmt.Errorf("failed to evaluate move %v: %w", moves[i], err)
			}
			evaluated[i].Evaluation = value
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	for _, e := range evaluated {
		if math.IsNaN(e.Evaluation) {
			return nil, fmt.Errorf("%w: move %v", ErrNaNEvaluation, e.Move)
		}
	}
	return slices.Collect(BestMoves(evaluated)), nil
}

func (a *HeuristicAgent[M]) Decision(g game.Game[M], player string) (M, error) {
	var zero M
	moves, err := legalMoves(g, player)
	if err != nil {
		return zero, err
	}
	best, err := a.SelectMoves(moves, g, player)
	if err != nil {
		return zero, err
	}
	move, err := randomness.Choice(a.random, best)
	if err != nil {
		return zero, err
	}

	a.logger.Debug().
		Str("player", player).
		Int("moves", len(moves)).
		Int("best", len(best)).
		Interface("move", move).
		Msg("decision")
	return move, nil
}

// BestMoves lazily yields the moves whose evaluation equals the maximum, in
// input order. Evaluations are compared exactly.
func BestMoves[M comparable](evaluated []EvaluatedMove[M]) iter.Seq[M] {
	return func(yield func(M) bool) {
		best := math.Inf(-1)
		for _, e := range evaluated {
			if e.Evaluation > best {
				best = e.Evaluation
			}
		}
		for _, e := range evaluated {
			if e.Evaluation == best && !yield(e.Move) {
				return
			}
		}
	}
}

// RandomHeuristic returns a uniform value in [-0.5, 0.5) regardless of the state.
func RandomHeuristic[M comparable](src *randomness.Source) game.Heuristic[M] {
	return func(game.Game[M], string) float64 {
		return src.Between(-0.5, 0.5)
	}
}
