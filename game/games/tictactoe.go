package games

import (
	"fmt"

	"ludus/game"
	"ludus/randomness"
)

const (
	Xs = "Xs"
	Os = "Os"
)

var ticTacToePlayers = []string{Xs, Os}

// lines lists every row, column and diagonal of the board, by square index.
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

type mark byte

const (
	empty mark = iota
	cross
	nought
)

// TicTacToe is the classic 3x3 game. Moves are square indices 0..8, row by row.
// Xs start.
type TicTacToe struct {
	board [9]mark
	turn  int
}

var _ game.Game[int] = TicTacToe{}

func NewTicTacToe() TicTacToe {
	return TicTacToe{}
}

// ParseTicTacToe builds a position from a 9 character board made of 'X', 'O'
// and '_', with the given player to move.
func ParseTicTacToe(board string, turn string) (TicTacToe, error) {
	var t TicTacToe
	if len(board) != len(t.board) {
		return t, fmt.Errorf("board must have %d squares, got %d", len(t.board), len(board))
	}
	for i, c := range board {
		switch c {
		case 'X':
			t.board[i] = cross
		case 'O':
			t.board[i] = nought
		case '_':
		default:
			return t, fmt.Errorf("unexpected square %q", c)
		}
	}
	switch turn {
	case Xs:
		t.turn = 0
	case Os:
		t.turn = 1
	default:
		return t, fmt.Errorf("unknown player %q", turn)
	}
	return t, nil
}

func (t TicTacToe) Players() []string {
	return ticTacToePlayers
}

func (t TicTacToe) ActivePlayers() []string {
	if t.Result().Finished() {
		return nil
	}
	return []string{ticTacToePlayers[t.turn]}
}

func (t TicTacToe) ActivePlayer() (string, error) {
	return game.SingleActivePlayer(t.ActivePlayers())
}

func (t TicTacToe) Moves() map[string][]int {
	if t.Result().Finished() {
		return nil
	}
	moves := make([]int, 0, len(t.board))
	for i, m := range t.board {
		if m == empty {
			moves = append(moves, i)
		}
	}
	return map[string][]int{ticTacToePlayers[t.turn]: moves}
}

func (t TicTacToe) Next(moves map[string]int) (game.Game[int], error) {
	if t.Result().Finished() {
		return nil, game.ErrGameOver
	}
	player := ticTacToePlayers[t.turn]
	square, ok := moves[player]
	if !ok || len(moves) != 1 {
		return nil, fmt.Errorf("%w: expected a single move for %s", game.ErrIllegalMove, player)
	}
	if square < 0 || square >= len(t.board) || t.board[square] != empty {
		return nil, fmt.Errorf("%w: square %d", game.ErrIllegalMove, square)
	}

	next := t
	next.board[square] = t.mark()
	next.turn = 1 - t.turn
	return next, nil
}

func (t TicTacToe) Result() game.Result {
	for _, line := range lines {
		m := t.board[line[0]]
		if m != empty && m == t.board[line[1]] && m == t.board[line[2]] {
			if m == cross {
				return game.Result{Xs: 1, Os: -1}
			}
			return game.Result{Xs: -1, Os: 1}
		}
	}
	for _, m := range t.board {
		if m == empty {
			return nil
		}
	}
	return game.Result{Xs: 0, Os: 0}
}

func (t TicTacToe) IsSimultaneous() bool  { return false }
func (t TicTacToe) IsDeterministic() bool { return true }
func (t TicTacToe) IsContingent() bool    { return false }

func (t TicTacToe) RandomNext(*randomness.Source) (game.Game[int], error) {
	return t, nil
}

func (t TicTacToe) String() string {
	s := make([]byte, len(t.board))
	for i, m := range t.board {
		switch m {
		case cross:
			s[i] = 'X'
		case nought:
			s[i] = 'O'
		default:
			s[i] = '_'
		}
	}
	return string(s)
}

func (t TicTacToe) mark() mark {
	if t.turn == 0 {
		return cross
	}
	return nought
}

// TicTacToeHeuristic counts the lines still open for each player and returns
// the difference, scaled into (-0.5, 0.5) so it never outweighs a real result.
func TicTacToeHeuristic(g game.Game[int], player string) float64 {
	t, ok := g.(TicTacToe)
	if !ok {
		return 0
	}
	own, other := cross, nought
	if player == Os {
		own, other = nought, cross
	}

	open := 0
	for _, line := range lines {
		var mine, theirs bool
		for _, square := range line {
			switch t.board[square] {
			case own:
				mine = true
			case other:
				theirs = true
			}
		}
		switch {
		case mine && !theirs:
			open++
		case theirs && !mine:
			open--
		}
	}
	return float64(open) / (2 * float64(len(lines)+1))
}
