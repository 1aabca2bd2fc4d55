package searcher

import (
	"errors"
	"math"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"ludus/experiments/metrics"
	"ludus/game"
	"ludus/game/games"
	"ludus/randomness"
)

func TestBestMoves(t *testing.T) {
	t.Run("empty input yields nothing", func(t *testing.T) {
		require.Empty(t, slices.Collect(BestMoves[int](nil)))
	})

	t.Run("yields every maximum in input order", func(t *testing.T) {
		evaluated := []EvaluatedMove[string]{{"a", 1}, {"b", 3}, {"c", -2}, {"d", 3}}
		require.Equal(t, []string{"b", "d"}, slices.Collect(BestMoves(evaluated)))
	})

	t.Run("stops when the consumer stops", func(t *testing.T) {
		evaluated := []EvaluatedMove[string]{{"a", 1}, {"b", 1}, {"c", 1}}
		var got []string
		for move := range BestMoves(evaluated) {
			got = append(got, move)
			break
		}
		require.Equal(t, []string{"a"}, got)
	})

	t.Run("infinite evaluations compare exactly", func(t *testing.T) {
		evaluated := []EvaluatedMove[int]{{0, math.Inf(-1)}, {1, math.Inf(-1)}}
		require.Equal(t, []int{0, 1}, slices.Collect(BestMoves(evaluated)))
	})

	t.Run("random sequences", func(t *testing.T) {
		src := randomness.New(1)
		values := []float64{-1, -0.5, 0, 0.5, 1}
		for i := 0; i < 200; i++ {
			n := src.Intn(10) + 1
			evaluated := make([]EvaluatedMove[int], n)
			maxValue := math.Inf(-1)
			for j := range evaluated {
				evaluated[j] = EvaluatedMove[int]{Move: j, Evaluation: values[src.Intn(len(values))]}
				maxValue = max(maxValue, evaluated[j].Evaluation)
			}

			best := slices.Collect(BestMoves(evaluated))
			require.NotEmpty(t, best)
			require.True(t, slices.IsSorted(best), "Best moves should keep input order")
			count := 0
			for _, e := range evaluated {
				if e.Evaluation == maxValue {
					count++
					require.Contains(t, best, e.Move)
				}
			}
			require.Len(t, best, count, "Best moves should only contain maxima")
		}
	})
}

func TestHeuristicAgentStateEvaluation(t *testing.T) {
	finished := mustTicTacToe("XXXOO____", games.Os)

	t.Run("final states evaluate to the result", func(t *testing.T) {
		var calls atomic.Int64
		a := NewHeuristicAgent(countingHeuristic[int](&calls))
		for player, want := range finished.Result() {
			got, err := a.StateEvaluation(finished, player)
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
		require.Zero(t, calls.Load(), "Heuristic should not be called on final states")
	})

	t.Run("other states evaluate to the heuristic", func(t *testing.T) {
		a := NewHeuristicAgent(constantHeuristic[int](0.25))
		got, err := a.StateEvaluation(games.NewTicTacToe(), games.Xs)
		require.NoError(t, err)
		require.Equal(t, 0.25, got)
	})

	t.Run("default heuristic stays within bounds", func(t *testing.T) {
		a := NewHeuristicAgent[int](nil, WithRandom(randomness.New(3)))
		for i := 0; i < 100; i++ {
			v := a.Heuristic(games.NewTicTacToe(), games.Xs)
			require.GreaterOrEqual(t, v, -0.5)
			require.Less(t, v, 0.5)
		}
	})
}

func TestHeuristicAgentMoveEvaluation(t *testing.T) {
	a := NewHeuristicAgent(constantHeuristic[int](0))
	g := mustTicTacToe("XX_OO____", games.Xs)

	e, err := a.MoveEvaluation(2, g, games.Xs)
	require.NoError(t, err)
	require.True(t, e.IsReady())
	v, _ := e.Value()
	require.Equal(t, 1.0, v, "Winning move should evaluate to the result")

	_, err = a.MoveEvaluation(0, g, games.Xs)
	require.ErrorIs(t, err, game.ErrIllegalMove)
}

func TestSelectMoves(t *testing.T) {
	moves := []string{"a", "b", "c"}
	values := map[string]float64{"a": 3, "b": 5, "c": 5}
	g := games.NewChoose2Win()

	t.Run("synchronous evaluations", func(t *testing.T) {
		a := NewHeuristicAgent[string](nil)
		a.EvaluateMovesWith(MoveEvaluatorFunc[string](func(move string, _ game.Game[string], _ string) (Evaluation, error) {
			return Ready(values[move]), nil
		}))

		best, err := a.SelectMoves(moves, g, games.This)
		require.NoError(t, err)
		require.Equal(t, []string{"b", "c"}, best)
	})

	t.Run("asynchronous first evaluation", func(t *testing.T) {
		a := NewHeuristicAgent[string](nil)
		a.EvaluateMovesWith(MoveEvaluatorFunc[string](func(move string, _ game.Game[string], _ string) (Evaluation, error) {
			if move == "a" {
				return Async(func() (float64, error) { return values[move], nil }), nil
			}
			return Ready(values[move]), nil
		}))

		best, err := a.SelectMoves(moves, g, games.This)
		require.NoError(t, err)
		require.Equal(t, []string{"b", "c"}, best)
	})

	t.Run("pending evaluations are awaited together", func(t *testing.T) {
		// Each evaluation only completes once all of them have started.
		started := make(chan struct{}, len(moves))
		release := make(chan struct{})
		go func() {
			for range moves {
				<-started
			}
			close(release)
		}()

		a := NewHeuristicAgent[string](nil)
		a.EvaluateMovesWith(MoveEvaluatorFunc[string](func(move string, _ game.Game[string], _ string) (Evaluation, error) {
			return Pending(func() (float64, error) {
				started <- struct{}{}
				<-release
				return values[move], nil
			}), nil
		}))

		best, err := a.SelectMoves(moves, g, games.This)
		require.NoError(t, err)
		require.Equal(t, []string{"b", "c"}, best)
	})

	t.Run("a failed pending evaluation fails the selection", func(t *testing.T) {
		errBoom := errors.New("boom")
		a := NewHeuristicAgent[string](nil)
		a.EvaluateMovesWith(MoveEvaluatorFunc[string](func(move string, _ game.Game[string], _ string) (Evaluation, error) {
			if move == "c" {
				return Async(func() (float64, error) { return 0, errBoom }), nil
			}
			return Ready(values[move]), nil
		}))

		best, err := a.SelectMoves(moves, g, games.This)
		require.ErrorIs(t, err, errBoom)
		require.Nil(t, best)
	})

	t.Run("a failed evaluation fails the selection", func(t *testing.T) {
		a := NewHeuristicAgent[string](nil)
		_, err := a.SelectMoves([]string{"jump"}, g, games.This)
		require.ErrorIs(t, err, game.ErrIllegalMove)
	})

	t.Run("NaN evaluations are rejected", func(t *testing.T) {
		a := NewHeuristicAgent(constantHeuristic[string](math.NaN()))
		_, err := a.SelectMoves([]string{games.Pass}, g, games.This)
		require.ErrorIs(t, err, ErrNaNEvaluation)
	})
}

func TestHeuristicAgentDecision(t *testing.T) {
	t.Run("returns a legal move", func(t *testing.T) {
		src := randomness.New(11)
		a := NewHeuristicAgent(games.TicTacToeHeuristic, WithRandom(src))
		for i := 0; i < 20; i++ {
			var g game.Game[int] = games.NewTicTacToe()
			for !g.Result().Finished() {
				player, err := g.ActivePlayer()
				require.NoError(t, err)
				move, err := a.Decision(g, player)
				require.NoError(t, err)
				require.Contains(t, g.Moves()[player], move)
				g, err = g.Next(map[string]int{player: move})
				require.NoError(t, err)
			}
		}
	})

	t.Run("takes an immediate win", func(t *testing.T) {
		a := NewHeuristicAgent(games.TicTacToeHeuristic)
		move, err := a.Decision(mustTicTacToe("XX_OO____", games.Xs), games.Xs)
		require.NoError(t, err)
		require.Equal(t, 2, move)
	})

	t.Run("fails without moves", func(t *testing.T) {
		a := NewHeuristicAgent(games.TicTacToeHeuristic)
		_, err := a.Decision(mustTicTacToe("XXXOO____", games.Os), games.Os)
		require.ErrorIs(t, err, ErrNoMoves)
	})

	t.Run("is deterministic under a seed", func(t *testing.T) {
		decisions := func() []int {
			a := NewHeuristicAgent[int](nil, WithRandom(randomness.New(99)))
			var got []int
			var g game.Game[int] = games.NewTicTacToe()
			for !g.Result().Finished() {
				player, err := g.ActivePlayer()
				require.NoError(t, err)
				move, err := a.Decision(g, player)
				require.NoError(t, err)
				got = append(got, move)
				g, err = g.Next(map[string]int{player: move})
				require.NoError(t, err)
			}
			return got
		}
		require.Equal(t, decisions(), decisions())
	})

	t.Run("reports work to the collector", func(t *testing.T) {
		collector := metrics.NewCollector(quartz.NewMock(t))
		a := NewHeuristicAgent(games.TicTacToeHeuristic, WithMetrics(collector))
		collector.Start()
		_, err := a.Decision(games.NewTicTacToe(), games.Xs)
		require.NoError(t, err)
		m := collector.Complete()
		require.Equal(t, 9, m.Evaluations)
		require.Equal(t, 9, m.Heuristics)
		require.Zero(t, m.Nodes)
	})
}

func TestEvaluation(t *testing.T) {
	ready := Ready(2)
	require.True(t, ready.IsReady())
	v, err := ready.Await()
	require.NoError(t, err)
	require.Equal(t, 2.0, v)

	pending := Async(func() (float64, error) { return 7, nil })
	_, ok := pending.Value()
	require.False(t, ok)
	for i := 0; i < 2; i++ {
		v, err = pending.Await()
		require.NoError(t, err)
		require.Equal(t, 7.0, v)
	}

	require.Panics(t, func() { Pending(nil) })
}
