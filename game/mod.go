package game

import (
	"errors"
	"fmt"

	"ludus/randomness"
)

var (
	ErrNotSingleActivePlayer = errors.New("game does not have exactly one active player")
	ErrIllegalMove           = errors.New("illegal move")
	ErrGameOver              = errors.New("game is over")
)

// Result maps every player to its numeric outcome. A nil or empty Result means
// the game has not finished yet.
type Result map[string]float64

// Game is one state of a turn-based game. Games are immutable: Next and
// RandomNext always return a new value and never modify the receiver.
type Game[M comparable] interface {
	// Players returns every player of the game, in a fixed order.
	Players() []string
	// ActivePlayers returns the players that must move in this state.
	ActivePlayers() []string
	// ActivePlayer returns the only active player, or ErrNotSingleActivePlayer.
	ActivePlayer() (string, error)
	// Moves returns the legal moves of every active player, or nil if the game has ended.
	Moves() map[string][]M
	// Next applies one move per active player.
	Next(moves map[string]M) (Game[M], error)
	// Result returns the outcome of a finished game, or nil.
	Result() Result

	IsSimultaneous() bool
	IsDeterministic() bool
	// IsContingent reports whether a chance event is pending.
	IsContingent() bool
	// RandomNext resolves the pending chance event of a contingent state.
	RandomNext(src *randomness.Source) (Game[M], error)
}

// Finished reports whether r holds the outcome of a finished game.
func (r Result) Finished() bool {
	return len(r) > 0
}

// SingleActivePlayer is a helper for Game implementations.
func SingleActivePlayer(active []string) (string, error) {
	if len(active) != 1 {
		return "", fmt.Errorf("%w: %d active", ErrNotSingleActivePlayer, len(active))
	}
	return active[0], nil
}
