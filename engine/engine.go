package engine

import (
	"errors"

	"ludus/experiments/metrics"
	"ludus/game"
)

// MaxPlies bounds the length of a match unless WithMaxPlies says otherwise.
const MaxPlies = 10000

var (
	ErrTooManyPlies = errors.New("game did not finish within the ply limit")
	ErrMissingAgent = errors.New("no agent for player")
)

// Record describes a played match.
type Record[M comparable] struct {
	Final     game.Game[M]
	Moves     []map[string]M // One entry per ply
	Match     metrics.MatchMetric
	Decisions []metrics.DecisionMetric
}
