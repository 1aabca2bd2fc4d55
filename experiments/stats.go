package experiments

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"ludus/experiments/metrics"
)

// AgentStats summarizes the decisions an agent made during a tournament.
type AgentStats struct {
	Decisions         int
	MeanNodes         float64
	StdDevNodes       float64
	MeanEvaluations   float64
	MeanDuration      time.Duration
	StdDevDurationSec float64
}

type samples struct {
	nodes       []float64
	evaluations []float64
	durations   []float64 // Seconds
}

func (s *samples) add(m metrics.SearchMetric) {
	s.nodes = append(s.nodes, float64(m.Nodes))
	s.evaluations = append(s.evaluations, float64(m.Evaluations))
	s.durations = append(s.durations, m.Duration.Seconds())
}

func (s *samples) stats() AgentStats {
	nodes, nodesStd := meanStdDev(s.nodes)
	evaluations, _ := meanStdDev(s.evaluations)
	seconds, secondsStd := meanStdDev(s.durations)
	return AgentStats{
		Decisions:         len(s.nodes),
		MeanNodes:         nodes,
		StdDevNodes:       nodesStd,
		MeanEvaluations:   evaluations,
		MeanDuration:      time.Duration(seconds * float64(time.Second)),
		StdDevDurationSec: secondsStd,
	}
}

// meanStdDev is stat.MeanStdDev with a zero deviation for fewer than two samples.
func meanStdDev(x []float64) (float64, float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}
