package games

import (
	"fmt"
	"math"

	"ludus/game"
	"ludus/randomness"
)

const (
	One = "One"
	Two = "Two"

	Roll = "roll"
	Hold = "hold"
)

var (
	pigPlayers = []string{One, Two}
	pigMoves   = []string{Roll, Hold}
)

// Pig is the two player dice game. Rolling leaves the game contingent until
// the die is resolved: a 1 loses the turn total and passes the turn, any other
// value adds to it. Holding banks the turn total. The first player to reach
// the goal wins.
type Pig struct {
	goal      int
	scores    [2]int
	turnTotal int
	active    int
	rolling   bool
}

var _ game.Game[string] = Pig{}

func NewPig(goal int) (Pig, error) {
	if goal < 1 {
		return Pig{}, fmt.Errorf("goal must be positive, got %d", goal)
	}
	return Pig{goal: goal}, nil
}

func (p Pig) Players() []string {
	return pigPlayers
}

func (p Pig) ActivePlayers() []string {
	if p.rolling || p.finished() {
		return nil
	}
	return []string{pigPlayers[p.active]}
}

func (p Pig) ActivePlayer() (string, error) {
	return game.SingleActivePlayer(p.ActivePlayers())
}

func (p Pig) Moves() map[string][]string {
	if p.rolling || p.finished() {
		return nil
	}
	moves := pigMoves
	if p.turnTotal == 0 {
		moves = pigMoves[:1]
	}
	return map[string][]string{pigPlayers[p.active]: append([]string(nil), moves...)}
}

func (p Pig) Next(moves map[string]string) (game.Game[string], error) {
	if p.finished() {
		return nil, game.ErrGameOver
	}
	if p.rolling {
		return nil, fmt.Errorf("%w: die roll pending", game.ErrIllegalMove)
	}
	player := pigPlayers[p.active]
	if len(moves) != 1 {
		return nil, fmt.Errorf("%w: expected a single move for %s", game.ErrIllegalMove, player)
	}

	next := p
	switch moves[player] {
	case Roll:
		next.rolling = true
	case Hold:
		if p.turnTotal == 0 {
			return nil, fmt.Errorf("%w: nothing to hold", game.ErrIllegalMove)
		}
		next.scores[p.active] += p.turnTotal
		next.turnTotal = 0
		if !next.finished() {
			next.active = 1 - p.active
		}
	default:
		return nil, fmt.Errorf("%w: %v", game.ErrIllegalMove, moves)
	}
	return next, nil
}

// Roll resolves a pending roll with the given die value.
func (p Pig) Roll(die int) (Pig, error) {
	if !p.rolling {
		return p, fmt.Errorf("%w: no roll pending", game.ErrIllegalMove)
	}
	if die < 1 || die > 6 {
		return p, fmt.Errorf("%w: die value %d", game.ErrIllegalMove, die)
	}
	next := p
	next.rolling = false
	if die == 1 {
		next.turnTotal = 0
		next.active = 1 - p.active
	} else {
		next.turnTotal += die
	}
	return next, nil
}

func (p Pig) RandomNext(src *randomness.Source) (game.Game[string], error) {
	if !p.rolling {
		return p, nil
	}
	return p.Roll(src.Intn(6) + 1)
}

func (p Pig) Result() game.Result {
	switch {
	case p.scores[0] >= p.goal:
		return game.Result{One: 1, Two: -1}
	case p.scores[1] >= p.goal:
		return game.Result{One: -1, Two: 1}
	}
	return nil
}

func (p Pig) IsSimultaneous() bool  { return false }
func (p Pig) IsDeterministic() bool { return false }
func (p Pig) IsContingent() bool    { return p.rolling }

// Scores returns the banked scores of One and Two.
func (p Pig) Scores() (int, int) {
	return p.scores[0], p.scores[1]
}

func (p Pig) finished() bool {
	return p.scores[0] >= p.goal || p.scores[1] >= p.goal
}

// PigHeuristic compares the scores, counting the unbanked turn total for the
// player on turn, and squashes the lead into (-0.5, 0.5).
func PigHeuristic(g game.Game[string], player string) float64 {
	p, ok := g.(Pig)
	if !ok {
		return 0
	}
	scores := p.scores
	scores[p.active] += p.turnTotal
	lead := scores[0] - scores[1]
	if player == Two {
		lead = -lead
	}
	return math.Tanh(float64(lead)/float64(p.goal)) / 2
}
