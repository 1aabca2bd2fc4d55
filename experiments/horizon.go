package experiments

import (
	"fmt"

	"ludus/config"
	"ludus/searcher/agent"
)

// BaselineName is the agent every MaxN agent of a horizon sweep plays against.
const BaselineName = "baseline"

// HorizonSweep describes a tournament between a one-ply heuristic baseline
// and MaxN agents searching to each of the given horizons. Run it with
// WithBaseline(BaselineName).
func HorizonSweep(tournament config.Tournament, horizons []int, seed int64) (*config.File, error) {
	if len(horizons) == 0 {
		return nil, fmt.Errorf("%w: no horizons to sweep", config.ErrInvalidConfig)
	}

	tournament.Name = tournament.Name + "-horizons"
	file := &config.File{
		Tournament: &tournament,
		Agents: []config.AgentConfig{
			{Name: BaselineName, Kind: agent.KindHeuristic, Seed: seed},
		},
	}
	for i, h := range horizons {
		// A zero horizon in an agent config means the default one.
		if h < 1 {
			return nil, fmt.Errorf("%w: horizon %d must be positive", config.ErrInvalidConfig, h)
		}
		file.Agents = append(file.Agents, config.AgentConfig{
			Name:    fmt.Sprintf("maxn-%d", h),
			Kind:    agent.KindMaxN,
			Horizon: h,
			Seed:    seed + int64(i) + 1,
		})
	}

	if err := file.Validate(); err != nil {
		return nil, err
	}
	return file, nil
}
