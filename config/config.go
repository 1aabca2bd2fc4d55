// Package config loads tournament descriptions from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"ludus/experiments/metrics"
	"ludus/searcher/agent"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

const (
	GameTicTacToe = "tictactoe"
	GameRace      = "race"
	GamePig       = "pig"
)

// Games lists the game names a tournament can be played on.
var Games = []string{GameTicTacToe, GameRace, GamePig}

var ErrInvalidConfig = errors.New("invalid config")

// File is the content of a tournament file.
type File struct {
	Tournament *Tournament   `hcl:"tournament,block"`
	Agents     []AgentConfig `hcl:"agent,block"`
}

type Tournament struct {
	Name     string `hcl:"name,label"`
	Game     string `hcl:"game,optional"`
	Games    int    `hcl:"games,optional"`     // Per ordered pair of agents
	Seed     int64  `hcl:"seed,optional"`      // Seeds chance events of every game
	Output   string `hcl:"output,optional"`    // Directory for CSV records
	MaxPlies int    `hcl:"max_plies,optional"` // 0 keeps the engine default
	Goal     int    `hcl:"goal,optional"`      // Race and Pig target
}

type AgentConfig struct {
	Name    string `hcl:"name,label"`
	Kind    string `hcl:"kind"`
	Horizon int    `hcl:"horizon,optional"`
	Seed    int64  `hcl:"seed,optional"`
}

func defaultTournament() *Tournament {
	return &Tournament{
		Name:   "default",
		Game:   GameTicTacToe,
		Games:  10,
		Seed:   1,
		Output: "experiments",
		Goal:   20,
	}
}

// Default returns the tournament played when no file is given.
func Default() *File {
	return &File{
		Tournament: defaultTournament(),
		Agents: []AgentConfig{
			{Name: "random", Kind: agent.KindRandom, Seed: 1},
			{Name: "greedy", Kind: agent.KindHeuristic, Seed: 2},
			{Name: "maxn", Kind: agent.KindMaxN, Horizon: 4, Seed: 3},
		},
	}
}

// Load reads and validates the tournament file at path. A missing file yields
// Default().
func Load(path string) (*File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	return decode(file, diags)
}

// Parse reads and validates a tournament from HCL source.
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	return decode(file, diags)
}

func decode(file *hcl.File, diags hcl.Diagnostics) (*File, error) {
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config File
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *File) applyDefaults() {
	defaults := defaultTournament()
	if c.Tournament == nil {
		c.Tournament = defaults
		return
	}
	t := c.Tournament
	if t.Game == "" {
		t.Game = defaults.Game
	}
	if t.Games == 0 {
		t.Games = defaults.Games
	}
	if t.Output == "" {
		t.Output = defaults.Output
	}
	if t.Goal == 0 {
		t.Goal = defaults.Goal
	}
}

// Validate checks the tournament can be played.
func (c *File) Validate() error {
	t := c.Tournament
	if t == nil {
		return fmt.Errorf("%w: missing tournament block", ErrInvalidConfig)
	}
	if !slices.Contains(Games, t.Game) {
		return fmt.Errorf("%w: unknown game %q", ErrInvalidConfig, t.Game)
	}
	if t.Games < 1 {
		return fmt.Errorf("%w: games must be positive", ErrInvalidConfig)
	}
	if t.Seed < 0 || t.MaxPlies < 0 {
		return fmt.Errorf("%w: seed and max_plies must not be negative", ErrInvalidConfig)
	}
	if t.Goal < 1 {
		return fmt.Errorf("%w: goal must be positive", ErrInvalidConfig)
	}

	if len(c.Agents) < 2 {
		return fmt.Errorf("%w: at least two agents must be configured", ErrInvalidConfig)
	}
	names := map[string]bool{}
	for _, a := range c.Agents {
		if names[a.Name] {
			return fmt.Errorf("%w: duplicate agent %s", ErrInvalidConfig, a.Name)
		}
		names[a.Name] = true

		if !slices.Contains(agent.Kinds, a.Kind) {
			return fmt.Errorf("%w: agent %s: unknown kind %q", ErrInvalidConfig, a.Name, a.Kind)
		}
		if a.Horizon < 0 {
			return fmt.Errorf("%w: agent %s: horizon must not be negative", ErrInvalidConfig, a.Name)
		}
		if a.Seed < 0 {
			return fmt.Errorf("%w: agent %s: seed must not be negative", ErrInvalidConfig, a.Name)
		}
		if a.Kind == agent.KindMaxN && t.Game == GamePig {
			return fmt.Errorf("%w: agent %s: maxn cannot play %s", ErrInvalidConfig, a.Name, t.Game)
		}
	}
	return nil
}

// AgentConfigs numbers the agents from 1 in file order.
func (c *File) AgentConfigs() []metrics.AgentConfig {
	configs := make([]metrics.AgentConfig, len(c.Agents))
	for i, a := range c.Agents {
		configs[i] = metrics.AgentConfig{
			ID:      i + 1,
			Name:    a.Name,
			Kind:    a.Kind,
			Horizon: a.Horizon,
			Seed:    uint64(a.Seed),
		}
	}
	return configs
}
