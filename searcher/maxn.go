package searcher

import (
	"fmt"
	"math"

	"ludus/game"
)

// MaxNAgent is a HeuristicAgent whose state evaluation is a MaxN search: every
// player is assumed to maximize its own coordinate of the evaluation vector.
// The search stops at final states and at the horizon, where the heuristic is
// applied for every player.
type MaxNAgent[M comparable] struct {
	*HeuristicAgent[M]
	horizon int
}

var (
	_ Agent[int]      = (*MaxNAgent[int])(nil)
	_ Compatible[int] = (*MaxNAgent[int])(nil)
)

func NewMaxNAgent[M comparable](heuristic game.Heuristic[M], options ...Option) (*MaxNAgent[M], error) {
	s := newSettings(options)
	if s.horizon < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHorizon, s.horizon)
	}
	m := &MaxNAgent[M]{
		HeuristicAgent: newHeuristicAgent(heuristic, s),
		horizon:        s.horizon,
	}
	m.states = m
	return m, nil
}

func (m *MaxNAgent[M]) Horizon() int {
	return m.horizon
}

// IsCompatibleWith reports whether g is sequential and deterministic.
func (m *MaxNAgent[M]) IsCompatibleWith(g game.Game[M]) bool {
	return !g.IsSimultaneous() && g.IsDeterministic()
}

func (m *MaxNAgent[M]) Decision(g game.Game[M], player string) (M, error) {
	if !m.IsCompatibleWith(g) {
		var zero M
		return zero, fmt.Errorf("%w: maxn needs a sequential deterministic game", ErrIncompatibleGame)
	}
	return m.HeuristicAgent.Decision(g, player)
}

// Heuristics evaluates g for every player.
func (m *MaxNAgent[M]) Heuristics(g game.Game[M]) game.Result {
	players := g.Players()
	values := make(game.Result, len(players))
	for _, p := range players {
		values[p] = m.Heuristic(g, p)
	}
	return values
}

// Quiescence returns the evaluation vector of g if the search should stop
// there.
func (m *MaxNAgent[M]) Quiescence(g game.Game[M], player string, depth int) (game.Result, bool) {
	if result := g.Result(); result.Finished() {
		return result, true
	}
	if depth >= m.horizon {
		return m.Heuristics(g), true
	}
	return nil, false
}

func (m *MaxNAgent[M]) MaxN(g game.Game[M], player string, depth int) (game.Result, error) {
	m.metrics.AddNode()
	if values, ok := m.Quiescence(g, player, depth); ok {
		return values, nil
	}

	active, err := g.ActivePlayer()
	if err != nil {
		return nil, err
	}
	moves := g.Moves()[active]
	if len(moves) == 0 {
		return nil, fmt.Errorf("%w: player %s at depth %d", ErrNoMovesUnfinished, active, depth)
	}

	var best game.Result
	bestValue := math.Inf(-1)
	for _, move := range moves {
		next, err := g.Next(map[string]M{active: move})
		if err != nil {
			return nil, err
		}
		values, err := m.MaxN(next, player, depth+1)
		if err != nil {
			return nil, err
		}
		// Ties keep the earliest move.
		if v := values[active]; best == nil || v > bestValue {
			best, bestValue = values, v
		}
	}
	return best, nil
}

func (m *MaxNAgent[M]) StateEvaluation(g game.Game[M], player string) (float64, error) {
	if g.IsContingent() {
		return 0, ErrContingentState
	}
	values, err := m.MaxN(g, player, 0)
	if err != nil {
		return 0, err
	}
	m.logger.Trace().Str("player", player).Interface("values", values).Msg("maxn search")
	return values[player], nil
}
