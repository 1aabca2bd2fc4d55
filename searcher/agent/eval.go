package agent

import (
	"errors"
	"fmt"

	"ludus/experiments/metrics"
	"ludus/game"
	"ludus/randomness"
	"ludus/searcher"

	"github.com/coder/quartz"
	"github.com/rs/zerolog/log"
)

const (
	KindRandom    = "random"
	KindHeuristic = "heuristic"
	KindMaxN      = "maxn"
)

// Kinds lists every agent kind New can build.
var Kinds = []string{KindRandom, KindHeuristic, KindMaxN}

var ErrUnknownKind = errors.New("unknown agent kind")

// New builds the agent described by config. Its decisions are measured with a
// collector on clock. A seed of 0 keeps the shared random source, and a
// horizon of 0 keeps the default one. Extra options are applied last.
func New[M comparable](config metrics.AgentConfig, heuristic game.Heuristic[M], clock quartz.Clock, options ...searcher.Option) (Player[M], error) {
	collector := metrics.NewCollector(clock)
	opts := []searcher.Option{
		searcher.WithMetrics(collector),
		searcher.WithLogger(log.With().Str("agent", config.Name).Logger()),
	}
	if config.Seed != 0 {
		opts = append(opts, searcher.WithRandom(randomness.New(config.Seed)))
	}
	if config.Horizon > 0 {
		opts = append(opts, searcher.WithHorizon(config.Horizon))
	}
	opts = append(opts, options...)

	p := Player[M]{Config: config, Metrics: collector}
	switch config.Kind {
	case KindRandom:
		p.Agent = searcher.NewRandomAgent[M](opts...)
	case KindHeuristic:
		p.Agent = searcher.NewHeuristicAgent(heuristic, opts...)
	case KindMaxN:
		m, err := searcher.NewMaxNAgent(heuristic, opts...)
		if err != nil {
			return Player[M]{}, fmt.Errorf("failed to create agent %s: %w", config.Name, err)
		}
		p.Agent = m
	default:
		return Player[M]{}, fmt.Errorf("%w: %q", ErrUnknownKind, config.Kind)
	}
	return p, nil
}
