package games

import (
	"fmt"
	"maps"

	"ludus/game"
	"ludus/randomness"
)

var predefinedPlayers = []string{"A", "B"}

// Predefined is a game between A and B whose result is fixed in advance. It
// always lasts height plies, each offering width moves (0..width-1).
type Predefined struct {
	active int
	result game.Result
	height int
	width  int
}

var _ game.Game[int] = Predefined{}

func NewPredefined(active string, result game.Result, height, width int) (Predefined, error) {
	p := Predefined{result: maps.Clone(result), height: height, width: width}
	switch active {
	case "A":
	case "B":
		p.active = 1
	default:
		return p, fmt.Errorf("unknown player %q", active)
	}
	if height < 0 || width < 1 {
		return p, fmt.Errorf("invalid dimensions: height=%d width=%d", height, width)
	}
	for _, player := range predefinedPlayers {
		if _, ok := result[player]; !ok {
			return p, fmt.Errorf("result is missing player %s", player)
		}
	}
	return p, nil
}

func (p Predefined) Players() []string {
	return predefinedPlayers
}

func (p Predefined) ActivePlayers() []string {
	if p.height <= 0 {
		return nil
	}
	return []string{predefinedPlayers[p.active]}
}

func (p Predefined) ActivePlayer() (string, error) {
	return game.SingleActivePlayer(p.ActivePlayers())
}

func (p Predefined) Moves() map[string][]int {
	if p.height <= 0 {
		return nil
	}
	moves := make([]int, p.width)
	for i := range moves {
		moves[i] = i
	}
	return map[string][]int{predefinedPlayers[p.active]: moves}
}

func (p Predefined) Next(moves map[string]int) (game.Game[int], error) {
	if p.height <= 0 {
		return nil, game.ErrGameOver
	}
	player := predefinedPlayers[p.active]
	move, ok := moves[player]
	if !ok || len(moves) != 1 || move < 0 || move >= p.width {
		return nil, fmt.Errorf("%w: %v", game.ErrIllegalMove, moves)
	}
	next := p
	next.active = 1 - p.active
	next.height--
	return next, nil
}

func (p Predefined) Result() game.Result {
	if p.height > 0 {
		return nil
	}
	return p.result
}

func (p Predefined) IsSimultaneous() bool  { return false }
func (p Predefined) IsDeterministic() bool { return true }
func (p Predefined) IsContingent() bool    { return false }

func (p Predefined) RandomNext(*randomness.Source) (game.Game[int], error) {
	return p, nil
}
