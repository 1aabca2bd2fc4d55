package agent

import (
	"ludus/experiments/metrics"
	"ludus/game"
	"ludus/searcher"
)

// Player is an agent built from an AgentConfig together with the collector
// measuring its decisions.
type Player[M comparable] struct {
	Config  metrics.AgentConfig
	Agent   searcher.Agent[M]
	Metrics metrics.Collector
}

// FindMove returns the agent's decision and the metrics collected while making it.
func (p Player[M]) FindMove(g game.Game[M], player string) (M, metrics.SearchMetric, error) {
	collector := p.Metrics
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}
	collector.Start()
	move, err := p.Agent.Decision(g, player)
	return move, collector.Complete(), err
}

// IsCompatibleWith reports whether the agent can play g. Agents that do not
// restrict the games they play are compatible with everything.
func (p Player[M]) IsCompatibleWith(g game.Game[M]) bool {
	if c, ok := p.Agent.(searcher.Compatible[M]); ok {
		return c.IsCompatibleWith(g)
	}
	return true
}
