package games

import (
	"fmt"
	"slices"

	"ludus/game"
	"ludus/randomness"
)

const (
	This = "This"
	That = "That"

	Win  = "win"
	Lose = "lose"
	Pass = "pass"
)

var (
	choose2WinPlayers = []string{This, That}
	choose2WinMoves   = []string{Win, Lose, Pass}
)

// Choose2Win lets the active player simply win, lose, or pass the turn to the
// other player. It never ends if both keep passing.
type Choose2Win struct {
	active int
	winner string
}

var _ game.Game[string] = Choose2Win{}

func NewChoose2Win() Choose2Win {
	return Choose2Win{}
}

func (c Choose2Win) Players() []string {
	return choose2WinPlayers
}

func (c Choose2Win) ActivePlayers() []string {
	if c.winner != "" {
		return nil
	}
	return []string{choose2WinPlayers[c.active]}
}

func (c Choose2Win) ActivePlayer() (string, error) {
	return game.SingleActivePlayer(c.ActivePlayers())
}

func (c Choose2Win) Moves() map[string][]string {
	if c.winner != "" {
		return nil
	}
	return map[string][]string{choose2WinPlayers[c.active]: slices.Clone(choose2WinMoves)}
}

func (c Choose2Win) Next(moves map[string]string) (game.Game[string], error) {
	if c.winner != "" {
		return nil, game.ErrGameOver
	}
	player := choose2WinPlayers[c.active]
	opponent := choose2WinPlayers[1-c.active]
	if len(moves) != 1 {
		return nil, fmt.Errorf("%w: expected a single move for %s", game.ErrIllegalMove, player)
	}

	next := c
	switch moves[player] {
	case Win:
		next.winner = player
	case Lose:
		next.winner = opponent
	case Pass:
		next.active = 1 - c.active
	default:
		return nil, fmt.Errorf("%w: %v", game.ErrIllegalMove, moves)
	}
	return next, nil
}

func (c Choose2Win) Result() game.Result {
	switch c.winner {
	case This:
		return game.Result{This: 1, That: -1}
	case That:
		return game.Result{This: -1, That: 1}
	}
	return nil
}

func (c Choose2Win) IsSimultaneous() bool  { return false }
func (c Choose2Win) IsDeterministic() bool { return true }
func (c Choose2Win) IsContingent() bool    { return false }

func (c Choose2Win) RandomNext(*randomness.Source) (game.Game[string], error) {
	return c, nil
}
