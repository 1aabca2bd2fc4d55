package searcher

import (
	"ludus/experiments/metrics"
	"ludus/randomness"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultHorizon is the MaxN search depth used when none is given.
const DefaultHorizon = 4

type Option func(s *settings)

type settings struct {
	random  *randomness.Source
	horizon int
	logger  zerolog.Logger
	metrics metrics.Collector
}

func newSettings(options []Option) settings {
	s := settings{ // Default values
		random:  randomness.Default(),
		horizon: DefaultHorizon,
		logger:  log.Logger,
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&s)
	}
	return s
}

// WithRandom makes the agent draw from src instead of the shared default source.
func WithRandom(src *randomness.Source) Option {
	return func(s *settings) {
		if src != nil {
			s.random = src
		}
	}
}

// WithHorizon sets the MaxN search depth. Other agents ignore it.
func WithHorizon(horizon int) Option {
	return func(s *settings) {
		s.horizon = horizon
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(s *settings) {
		if collector != nil {
			s.metrics = collector
		}
	}
}
