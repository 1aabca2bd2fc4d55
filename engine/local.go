package engine

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"ludus/experiments/metrics"
	"ludus/game"
	"ludus/randomness"
	"ludus/searcher"
	"ludus/searcher/agent"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(s *settings)

type settings struct {
	random   *randomness.Source
	clock    quartz.Clock
	maxPlies int
	logger   zerolog.Logger
}

// WithRandom sets the source used to resolve chance events.
func WithRandom(src *randomness.Source) Option {
	return func(s *settings) {
		if src != nil {
			s.random = src
		}
	}
}

func WithClock(clock quartz.Clock) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithMaxPlies(plies int) Option {
	return func(s *settings) {
		if plies > 0 {
			s.maxPlies = plies
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// Engine plays a single match locally, asking each active player's agent for
// a move until the game ends.
type Engine[M comparable] struct {
	state   game.Game[M]
	players map[string]agent.Player[M]
	settings
}

// New checks that every player of g has an agent able to play it.
func New[M comparable](g game.Game[M], players map[string]agent.Player[M], options ...Option) (*Engine[M], error) {
	for _, p := range g.Players() {
		player, ok := players[p]
		if !ok || player.Agent == nil {
			return nil, fmt.Errorf("%w %s", ErrMissingAgent, p)
		}
		if !player.IsCompatibleWith(g) {
			return nil, fmt.Errorf("%w: agent %s cannot play %s", searcher.ErrIncompatibleGame, player.Config.Name, p)
		}
	}

	e := &Engine[M]{
		state:   g,
		players: players,
		settings: settings{ // Default values
			random:   randomness.Default(),
			clock:    quartz.NewReal(),
			maxPlies: MaxPlies,
			logger:   log.Logger,
		},
	}
	for _, option := range options {
		option(&e.settings)
	}
	return e, nil
}

// Run plays the match from the initial state. It returns the record so far
// together with any error.
func (e *Engine[M]) Run() (Record[M], error) {
	var record Record[M]
	start := e.clock.Now()
	state := e.state
	ply := 0

	for {
		for state.IsContingent() {
			next, err := state.RandomNext(e.random)
			if err != nil {
				return e.complete(record, state, ply, start), fmt.Errorf("failed to resolve chance event: %w", err)
			}
			state = next
		}
		if state.Result().Finished() {
			break
		}
		if ply >= e.maxPlies {
			return e.complete(record, state, ply, start), fmt.Errorf("%w: %d", ErrTooManyPlies, e.maxPlies)
		}

		active := state.ActivePlayers()
		if len(active) == 0 {
			return e.complete(record, state, ply, start), searcher.ErrNoMovesUnfinished
		}
		ply++
		if ply == 1 {
			record.Match.StartingPlayer = active[0]
			e.logger.Info().Msgf("player %s is starting", active[0])
		}

		legal := state.Moves()
		moves := make(map[string]M, len(active))
		for _, p := range active {
			move, metric, err := e.players[p].FindMove(state, p)
			if err != nil {
				return e.complete(record, state, ply, start), fmt.Errorf("player %s failed to decide: %w", p, err)
			}
			if !slices.Contains(legal[p], move) {
				return e.complete(record, state, ply, start), fmt.Errorf("%w: player %s chose %v", game.ErrIllegalMove, p, move)
			}
			moves[p] = move
			record.Decisions = append(record.Decisions, metrics.DecisionMetric{
				Ply:          ply,
				Player:       p,
				SearchMetric: metric,
			})
		}

		next, err := state.Next(moves)
		if err != nil {
			return e.complete(record, state, ply, start), err
		}
		record.Moves = append(record.Moves, moves)
		state = next
	}

	record = e.complete(record, state, ply, start)
	e.logger.Info().Msgf("game ended after %d plies with winner: %q", ply, record.Match.Winner)
	return record, nil
}

func (e *Engine[M]) complete(record Record[M], state game.Game[M], ply int, start time.Time) Record[M] {
	end := e.clock.Now()
	result := state.Result()
	record.Final = state
	record.Match.Winner = Winner(result)
	record.Match.Scores = maps.Clone(result)
	record.Match.StartTime = start
	record.Match.EndTime = end
	record.Match.Duration = end.Sub(start)
	record.Match.TotalPlies = ply
	return record
}

// Winner returns the player with the single highest score, or "" if the best
// score is shared or the result is empty.
func Winner(result game.Result) string {
	winner := ""
	best := math.Inf(-1)
	shared := false
	for p, score := range result {
		switch {
		case score > best:
			winner, best, shared = p, score, false
		case score == best:
			shared = true
		}
	}
	if shared {
		return ""
	}
	return winner
}
