package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

type MatchRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	MatchMetric
}

type DecisionRecord struct {
	Match int // MatchRecord.ID
	DecisionMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates baseDir if needed and writes every file into it.
func NewWriter(baseDir string) (*Writer, error) {
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "name", "kind", "horizon", "seed"}
	return w.write("agent_configs.csv", header, len(configs), func(i int) []string {
		config := configs[i]
		return []string{
			strconv.Itoa(config.ID),
			config.Name,
			config.Kind,
			strconv.Itoa(config.Horizon),
			strconv.FormatUint(config.Seed, 10),
		}
	})
}

func (w *Writer) WriteMatchRecords(records []MatchRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "scores", "start_time", "end_time", "duration", "total_plies"}
	return w.write("match_records.csv", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.StartingPlayer,
			record.Winner,
			formatScores(record.Scores),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
			strconv.Itoa(record.TotalPlies),
		}
	})
}

func (w *Writer) WriteDecisionRecords(records []DecisionRecord) error {
	header := []string{"match", "ply", "player", "duration", "evaluations", "heuristics", "nodes"}
	return w.write("decision_records.csv", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.Match),
			strconv.Itoa(record.Ply),
			record.Player,
			record.Duration.String(),
			strconv.Itoa(record.Evaluations),
			strconv.Itoa(record.Heuristics),
			strconv.Itoa(record.Nodes),
		}
	})
}

func (w *Writer) write(name string, header []string, rows int, row func(i int) []string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for i := 0; i < rows; i++ {
		err = writer.Write(row(i))
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatScores renders scores as player=score pairs sorted by player.
func formatScores(scores map[string]float64) string {
	players := make([]string, 0, len(scores))
	for p := range scores {
		players = append(players, p)
	}
	slices.Sort(players)

	pairs := make([]string, len(players))
	for i, p := range players {
		pairs[i] = p + "=" + strconv.FormatFloat(scores[p], 'g', -1, 64)
	}
	return strings.Join(pairs, ";")
}
