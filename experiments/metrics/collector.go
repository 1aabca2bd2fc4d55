package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
)

type AgentConfig struct {
	ID      int
	Name    string
	Kind    string // random, heuristic or maxn
	Horizon int    // MaxN only, 0 means the default
	Seed    uint64 // 0 means the shared source
}

type SearchMetric struct {
	Duration    time.Duration
	Evaluations int // Move evaluations
	Heuristics  int // Heuristic calls
	Nodes       int // MaxN nodes visited
}

type DecisionMetric struct {
	Ply    int
	Player string
	SearchMetric
}

type MatchMetric struct {
	StartingPlayer string
	Winner         string // Empty on a draw
	Scores         map[string]float64
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalPlies     int
}

// Collector counts the work an agent does for one decision. Counters may be
// incremented from concurrent evaluations.
type Collector interface {
	Start()
	AddEvaluation()
	AddHeuristic()
	AddNode()
	Complete() SearchMetric
}

type collector struct {
	clock       quartz.Clock
	mu          sync.Mutex
	startTime   time.Time
	evaluations atomic.Int64
	heuristics  atomic.Int64
	nodes       atomic.Int64
}

func NewCollector(clock quartz.Clock) Collector {
	return &collector{clock: clock}
}

// Start resets the counters and starts timing a decision.
func (m *collector) Start() {
	m.mu.Lock()
	m.startTime = m.clock.Now()
	m.mu.Unlock()

	m.evaluations.Store(0)
	m.heuristics.Store(0)
	m.nodes.Store(0)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) AddHeuristic() {
	m.heuristics.Add(1)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	m.mu.Lock()
	start := m.startTime
	m.mu.Unlock()

	return SearchMetric{
		Duration:    m.clock.Now().Sub(start),
		Evaluations: int(m.evaluations.Load()),
		Heuristics:  int(m.heuristics.Load()),
		Nodes:       int(m.nodes.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                 {}
func (m *dummyCollector) AddEvaluation()         {}
func (m *dummyCollector) AddHeuristic()          {}
func (m *dummyCollector) AddNode()               {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
