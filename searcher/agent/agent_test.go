package agent

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"ludus/experiments/metrics"
	"ludus/game/games"
	"ludus/searcher"
)

func TestNew(t *testing.T) {
	clock := quartz.NewMock(t)

	t.Run("builds every kind", func(t *testing.T) {
		tests := []struct {
			kind string
			want any
		}{
			{KindRandom, &searcher.RandomAgent[int]{}},
			{KindHeuristic, &searcher.HeuristicAgent[int]{}},
			{KindMaxN, &searcher.MaxNAgent[int]{}},
		}
		for _, tt := range tests {
			t.Run(tt.kind, func(t *testing.T) {
				config := metrics.AgentConfig{ID: 1, Name: tt.kind, Kind: tt.kind, Seed: 3}
				p, err := New(config, games.TicTacToeHeuristic, clock)
				require.NoError(t, err)
				require.IsType(t, tt.want, p.Agent)
				require.Equal(t, config, p.Config)
				require.NotNil(t, p.Metrics)
			})
		}
	})

	t.Run("applies the horizon", func(t *testing.T) {
		p, err := New(metrics.AgentConfig{Name: "deep", Kind: KindMaxN, Horizon: 7}, games.TicTacToeHeuristic, clock)
		require.NoError(t, err)
		require.Equal(t, 7, p.Agent.(*searcher.MaxNAgent[int]).Horizon())

		p, err = New(metrics.AgentConfig{Name: "default", Kind: KindMaxN}, games.TicTacToeHeuristic, clock)
		require.NoError(t, err)
		require.Equal(t, searcher.DefaultHorizon, p.Agent.(*searcher.MaxNAgent[int]).Horizon())
	})

	t.Run("extra options override the config", func(t *testing.T) {
		_, err := New(metrics.AgentConfig{Name: "bad", Kind: KindMaxN}, games.TicTacToeHeuristic, clock, searcher.WithHorizon(-2))
		require.ErrorIs(t, err, searcher.ErrInvalidHorizon)
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		_, err := New(metrics.AgentConfig{Name: "mcts", Kind: "mcts"}, games.TicTacToeHeuristic, clock)
		require.ErrorIs(t, err, ErrUnknownKind)
	})

	t.Run("same seed gives the same decisions", func(t *testing.T) {
		config := metrics.AgentConfig{Name: "h", Kind: KindHeuristic, Seed: 17}
		a, err := New[int](config, nil, clock)
		require.NoError(t, err)
		b, err := New[int](config, nil, clock)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			x, _, err := a.FindMove(games.NewTicTacToe(), games.Xs)
			require.NoError(t, err)
			y, _, err := b.FindMove(games.NewTicTacToe(), games.Xs)
			require.NoError(t, err)
			require.Equal(t, x, y)
		}
	})
}

func TestPlayer(t *testing.T) {
	clock := quartz.NewMock(t)

	t.Run("find move reports metrics", func(t *testing.T) {
		p, err := New(metrics.AgentConfig{Name: "m", Kind: KindMaxN, Horizon: 1}, games.TicTacToeHeuristic, clock)
		require.NoError(t, err)

		move, m, err := p.FindMove(games.NewTicTacToe(), games.Xs)
		require.NoError(t, err)
		require.GreaterOrEqual(t, move, 0)
		require.Equal(t, 9, m.Evaluations)
		// Each of the 9 successors expands 8 replies evaluated for both players
		require.Equal(t, 9*(1+8), m.Nodes)
		require.Equal(t, 9*8*2, m.Heuristics)
		require.Equal(t, time.Duration(0), m.Duration)
	})

	t.Run("compatibility", func(t *testing.T) {
		pig, err := games.NewPig(10)
		require.NoError(t, err)

		maxn, err := New[string](metrics.AgentConfig{Name: "m", Kind: KindMaxN}, nil, clock)
		require.NoError(t, err)
		require.False(t, maxn.IsCompatibleWith(pig))

		random, err := New[string](metrics.AgentConfig{Name: "r", Kind: KindRandom}, nil, clock)
		require.NoError(t, err)
		require.True(t, random.IsCompatibleWith(pig))
	})
}
