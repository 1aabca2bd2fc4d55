package searcher

import (
	"ludus/game"
	"ludus/randomness"

	"github.com/rs/zerolog"
)

// RandomAgent plays uniformly random legal moves.
type RandomAgent[M comparable] struct {
	random *randomness.Source
	logger zerolog.Logger
}

var _ Agent[int] = (*RandomAgent[int])(nil)

func NewRandomAgent[M comparable](options ...Option) *RandomAgent[M] {
	s := newSettings(options)
	return &RandomAgent[M]{random: s.random, logger: s.logger}
}

func (a *RandomAgent[M]) Decision(g game.Game[M], player string) (M, error) {
	var zero M
	moves, err := legalMoves(g, player)
	if err != nil {
		return zero, err
	}
	move, err := randomness.Choice(a.random, moves)
	if err != nil {
		return zero, err
	}
	a.logger.Debug().Str("player", player).Int("moves", len(moves)).Interface("move", move).Msg("random decision")
	return move, nil
}
