package searcher

import (
	"errors"
	"fmt"

	"ludus/game"
)

var (
	ErrNoMoves           = errors.New("no moves available")
	ErrIncompatibleGame  = errors.New("agent is not compatible with game")
	ErrNoMovesUnfinished = errors.New("unfinished game has no moves")
	ErrContingentState   = errors.New("cannot search a contingent state")
	ErrInvalidHorizon    = errors.New("horizon must not be negative")
	ErrNaNEvaluation     = errors.New("evaluation is NaN")
)

// Agent picks a move for a player in a game state.
type Agent[M comparable] interface {
	Decision(g game.Game[M], player string) (M, error)
}

// Compatible is implemented by agents that only support some kinds of games.
type Compatible[M comparable] interface {
	IsCompatibleWith(g game.Game[M]) bool
}

func legalMoves[M comparable](g game.Game[M], player string) ([]M, error) {
	moves := g.Moves()[player]
	if len(moves) == 0 {
		return nil, fmt.Errorf("%w for player %s", ErrNoMoves, player)
	}
	return moves, nil
}
