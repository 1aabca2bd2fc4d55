package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	clock := quartz.NewMock(t)
	c := NewCollector(clock)

	c.Start()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AddEvaluation()
			c.AddHeuristic()
			c.AddHeuristic()
			c.AddNode()
		}()
	}
	wg.Wait()
	clock.Advance(3 * time.Second)

	m := c.Complete()
	assert.Equal(t, 3*time.Second, m.Duration)
	assert.Equal(t, 10, m.Evaluations)
	assert.Equal(t, 20, m.Heuristics)
	assert.Equal(t, 10, m.Nodes)

	// Starting again resets the counters
	c.Start()
	clock.Advance(time.Second)
	m = c.Complete()
	assert.Equal(t, SearchMetric{Duration: time.Second}, m)
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	c.Start()
	c.AddEvaluation()
	c.AddNode()
	assert.Equal(t, SearchMetric{}, c.Complete())
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "run")
	w, err := NewWriter(dir)
	require.NoError(t, err)
	require.Equal(t, dir, w.Dir())

	err = w.WriteAgentConfigs([]AgentConfig{
		{ID: 1, Name: "rando", Kind: "random", Seed: 42},
		{ID: 2, Name: "deep", Kind: "maxn", Horizon: 6},
	})
	require.NoError(t, err)

	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	err = w.WriteMatchRecords([]MatchRecord{{
		ID:     1,
		Agent1: 1,
		Agent2: 2,
		MatchMetric: MatchMetric{
			StartingPlayer: "Xs",
			Winner:         "Os",
			Scores:         map[string]float64{"Xs": -1, "Os": 1},
			StartTime:      start,
			EndTime:        start.Add(time.Second),
			Duration:       time.Second,
			TotalPlies:     7,
		},
	}})
	require.NoError(t, err)

	err = w.WriteDecisionRecords([]DecisionRecord{{
		Match: 1,
		DecisionMetric: DecisionMetric{
			Ply:          1,
			Player:       "Xs",
			SearchMetric: SearchMetric{Duration: time.Millisecond, Evaluations: 9, Heuristics: 18, Nodes: 30},
		},
	}})
	require.NoError(t, err)

	configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
	assert.Equal(t, [][]string{
		{"id", "name", "kind", "horizon", "seed"},
		{"1", "rando", "random", "0", "42"},
		{"2", "deep", "maxn", "6", "0"},
	}, configs)

	matches := readCSV(t, filepath.Join(dir, "match_records.csv"))
	require.Len(t, matches, 2)
	assert.Equal(t, []string{"1", "1", "2", "Xs", "Os", "Os=1;Xs=-1", "2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s", "7"}, matches[1])

	decisions := readCSV(t, filepath.Join(dir, "decision_records.csv"))
	assert.Equal(t, []string{"1", "1", "Xs", "1ms", "9", "18", "30"}, decisions[1])
}
