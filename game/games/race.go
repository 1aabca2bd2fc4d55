package games

import (
	"fmt"
	"slices"

	"ludus/game"
	"ludus/randomness"
)

// MaxStep is the largest amount a player may add to the Race total.
const MaxStep = 3

// Race is a counting game for any number of players. Players take turns, in
// order, adding 1 to MaxStep to a shared total; whoever brings it to the goal
// wins. The winner scores 1 and everybody else 0, so it is not zero-sum.
type Race struct {
	players []string
	goal    int
	total   int
	active  int
}

var _ game.Game[int] = Race{}

func NewRace(players []string, goal int) (Race, error) {
	if len(players) == 0 {
		return Race{}, fmt.Errorf("race needs at least one player")
	}
	for i, p := range players {
		if slices.Contains(players[:i], p) {
			return Race{}, fmt.Errorf("duplicate player %q", p)
		}
	}
	if goal < 1 {
		return Race{}, fmt.Errorf("goal must be positive, got %d", goal)
	}
	return Race{players: slices.Clone(players), goal: goal}, nil
}

func (r Race) Players() []string {
	return r.players
}

func (r Race) ActivePlayers() []string {
	if r.total >= r.goal {
		return nil
	}
	return []string{r.players[r.active]}
}

func (r Race) ActivePlayer() (string, error) {
	return game.SingleActivePlayer(r.ActivePlayers())
}

func (r Race) Moves() map[string][]int {
	if r.total >= r.goal {
		return nil
	}
	n := min(MaxStep, r.goal-r.total)
	moves := make([]int, n)
	for i := range moves {
		moves[i] = i + 1
	}
	return map[string][]int{r.players[r.active]: moves}
}

func (r Race) Next(moves map[string]int) (game.Game[int], error) {
	if r.total >= r.goal {
		return nil, game.ErrGameOver
	}
	player := r.players[r.active]
	step, ok := moves[player]
	if !ok || len(moves) != 1 || step < 1 || step > min(MaxStep, r.goal-r.total) {
		return nil, fmt.Errorf("%w: %v", game.ErrIllegalMove, moves)
	}
	next := r
	next.total += step
	if next.total < next.goal {
		next.active = (r.active + 1) % len(r.players)
	}
	return next, nil
}

func (r Race) Result() game.Result {
	if r.total < r.goal {
		return nil
	}
	result := make(game.Result, len(r.players))
	for i, p := range r.players {
		if i == r.active {
			result[p] = 1
		} else {
			result[p] = 0
		}
	}
	return result
}

func (r Race) IsSimultaneous() bool  { return false }
func (r Race) IsDeterministic() bool { return true }
func (r Race) IsContingent() bool    { return false }

func (r Race) RandomNext(*randomness.Source) (game.Game[int], error) {
	return r, nil
}

// Remaining returns how far the total is from the goal.
func (r Race) Remaining() int {
	return r.goal - r.total
}

// RaceHeuristic favors the active player when it can reach the goal in one move.
func RaceHeuristic(g game.Game[int], player string) float64 {
	r, ok := g.(Race)
	if !ok || r.Remaining() > MaxStep || r.Remaining() <= 0 {
		return 0
	}
	if r.players[r.active] == player {
		return 0.5
	}
	return 0
}
