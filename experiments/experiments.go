package experiments

import (
	"fmt"
	"path/filepath"
	"time"

	"ludus/config"
	"ludus/engine"
	"ludus/experiments/metrics"
	"ludus/game"
	"ludus/game/games"
	"ludus/randomness"
	"ludus/searcher"
	"ludus/searcher/agent"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Summary is the outcome of a tournament.
type Summary struct {
	Matches int
	Points  map[string]float64 // 1 per win, 0.5 per draw, by agent name
	Stats   map[string]AgentStats
	Dir     string // Where the records were written
}

type Option func(r *Runner)

func WithClock(clock quartz.Clock) Option {
	return func(r *Runner) {
		if clock != nil {
			r.clock = clock
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithBaseline pairs the named agent with every other agent, in both seats,
// instead of playing a full round robin.
func WithBaseline(name string) Option {
	return func(r *Runner) {
		r.baseline = name
	}
}

// Runner plays a tournament: every ordered pair of configured agents plays
// Games matches, so each agent gets to start against every other one.
// With a baseline only the pairs including it are played.
type Runner struct {
	config   *config.File
	clock    quartz.Clock
	logger   zerolog.Logger
	baseline string
}

func New(cfg *config.File, options ...Option) *Runner {
	r := &Runner{ // Default values
		config: cfg,
		clock:  quartz.NewReal(),
		logger: log.Logger,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// outcome is the part of an engine.Record that does not depend on the move type.
type outcome struct {
	seats     []string // Player names of the game, in seat order
	match     metrics.MatchMetric
	decisions []metrics.DecisionMetric
}

func (r *Runner) Run() (Summary, error) {
	t := r.config.Tournament
	configs := r.config.AgentConfigs()

	matchUps := [][]metrics.AgentConfig{}
	for _, config1 := range configs {
		for _, config2 := range configs {
			if config1.ID == config2.ID {
				continue
			}
			if r.baseline != "" && config1.Name != r.baseline && config2.Name != r.baseline {
				continue
			}
			matchUps = append(matchUps, []metrics.AgentConfig{config1, config2})
		}
	}
	if len(matchUps) == 0 {
		return Summary{}, fmt.Errorf("%w: no matchups for baseline %q", config.ErrInvalidConfig, r.baseline)
	}

	count := 0
	summary := Summary{Points: map[string]float64{}}
	matchRecords := []metrics.MatchRecord{}
	decisionRecords := []metrics.DecisionRecord{}
	agentSamples := map[string]*samples{}
	for _, c := range configs {
		agentSamples[c.Name] = &samples{}
	}

	r.logger.Info().Msgf("starting %s tournament on %s...", t.Name, t.Game)

	for mi, matchUp := range matchUps {
		config1 := matchUp[0]
		config2 := matchUp[1]

		r.logger.Info().Msgf("starting matchup %d of %d between %s and %s...", mi+1, len(matchUps), config1.Name, config2.Name)

		for i := 0; i < t.Games; i++ {
			count++
			seats := []metrics.AgentConfig{reseed(config1, count), reseed(config2, count)}
			o, err := r.runMatch(seats, r.chance(count))
			if err != nil {
				return summary, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			matchRecords = append(matchRecords, metrics.MatchRecord{
				ID:          count,
				Agent1:      config1.ID,
				Agent2:      config2.ID,
				MatchMetric: o.match,
			})
			seatAgents := map[string]string{}
			for si, seat := range o.seats {
				seatAgents[seat] = matchUp[si].Name
			}
			for _, dm := range o.decisions {
				decisionRecords = append(decisionRecords, metrics.DecisionRecord{
					Match:          count,
					DecisionMetric: dm,
				})
				agentSamples[seatAgents[dm.Player]].add(dm.SearchMetric)
			}

			winner := seatAgents[o.match.Winner]
			switch {
			case winner != "":
				summary.Points[winner]++
			case len(o.match.Scores) > 0:
				summary.Points[config1.Name] += 0.5
				summary.Points[config2.Name] += 0.5
			}

			r.logger.Debug().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(matchUps), i+1, winner)
		}
		r.logger.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}
	summary.Matches = count
	summary.Stats = make(map[string]AgentStats, len(agentSamples))
	for name, s := range agentSamples {
		summary.Stats[name] = s.stats()
	}

	r.logger.Info().Msgf("completed %s tournament", t.Name)

	timestamp := r.clock.Now().UTC().Format(time.RFC3339)
	writer, err := metrics.NewWriter(filepath.Join(t.Output, t.Name, timestamp))
	if err != nil {
		return summary, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	summary.Dir = writer.Dir()

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return summary, fmt.Errorf("failed to store agent configs: %w", err)
	}
	err = writer.WriteMatchRecords(matchRecords)
	if err != nil {
		return summary, fmt.Errorf("failed to write match records: %w", err)
	}
	err = writer.WriteDecisionRecords(decisionRecords)
	if err != nil {
		return summary, fmt.Errorf("failed to write decision records: %w", err)
	}
	r.logger.Info().Msgf("stored records in %s", summary.Dir)

	return summary, nil
}

func (r *Runner) runMatch(seats []metrics.AgentConfig, src *randomness.Source) (outcome, error) {
	t := r.config.Tournament
	switch t.Game {
	case config.GameTicTacToe:
		return playMatch[int](r, games.NewTicTacToe(), games.TicTacToeHeuristic, seats, src)
	case config.GameRace:
		g, err := games.NewRace([]string{"first", "second"}, t.Goal)
		if err != nil {
			return outcome{}, err
		}
		return playMatch[int](r, g, games.RaceHeuristic, seats, src)
	case config.GamePig:
		g, err := games.NewPig(t.Goal)
		if err != nil {
			return outcome{}, err
		}
		return playMatch[string](r, g, games.PigHeuristic, seats, src)
	}
	return outcome{}, fmt.Errorf("%w: unknown game %q", config.ErrInvalidConfig, t.Game)
}

func playMatch[M comparable](r *Runner, g game.Game[M], heuristic game.Heuristic[M], seats []metrics.AgentConfig, src *randomness.Source) (outcome, error) {
	names := g.Players()
	if len(names) != len(seats) {
		return outcome{}, fmt.Errorf("game has %d players but %d agents were seated", len(names), len(seats))
	}

	players := make(map[string]agent.Player[M], len(seats))
	for i, name := range names {
		logger := r.logger.With().Str("agent", seats[i].Name).Logger()
		p, err := agent.New(seats[i], heuristic, r.clock, searcher.WithLogger(logger))
		if err != nil {
			return outcome{}, err
		}
		players[name] = p
	}

	e, err := engine.New(g, players,
		engine.WithRandom(src),
		engine.WithClock(r.clock),
		engine.WithMaxPlies(r.config.Tournament.MaxPlies),
		engine.WithLogger(r.logger),
	)
	if err != nil {
		return outcome{}, err
	}
	record, err := e.Run()
	if err != nil {
		return outcome{}, err
	}
	return outcome{seats: names, match: record.Match, decisions: record.Decisions}, nil
}

// chance returns the source resolving chance events of the given match.
func (r *Runner) chance(match int) *randomness.Source {
	seed := r.config.Tournament.Seed
	if seed == 0 {
		return randomness.Default()
	}
	return randomness.New(uint64(seed)*1_000_003 + uint64(match))
}

// reseed varies a seeded agent from match to match so repeated games differ.
func reseed(c metrics.AgentConfig, match int) metrics.AgentConfig {
	if c.Seed != 0 {
		c.Seed = c.Seed*1_000_003 + uint64(match)
	}
	return c
}
