package searcher

import (
	"sync/atomic"

	"ludus/game"
	"ludus/game/games"
)

// stuckGame is an unfinished game where nobody can move.
type stuckGame struct {
	games.TicTacToe
}

func (stuckGame) Moves() map[string][]int {
	return nil
}

// simultaneousGame claims all players move at once.
type simultaneousGame struct {
	games.TicTacToe
}

func (simultaneousGame) IsSimultaneous() bool {
	return true
}

func countingHeuristic[M comparable](calls *atomic.Int64) game.Heuristic[M] {
	return func(game.Game[M], string) float64 {
		calls.Add(1)
		return 0
	}
}

func constantHeuristic[M comparable](value float64) game.Heuristic[M] {
	return func(game.Game[M], string) float64 {
		return value
	}
}

func mustTicTacToe(board, turn string) games.TicTacToe {
	g, err := games.ParseTicTacToe(board, turn)
	if err != nil {
		panic(err)
	}
	return g
}
