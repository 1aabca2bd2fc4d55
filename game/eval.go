package game

// Heuristic evaluates an unfinished game state from the given player's
// perspective; higher is better. It must be a pure function of its arguments,
// apart from any random source it explicitly owns.
type Heuristic[M comparable] func(g Game[M], player string) float64

// Zero is a Heuristic that considers every unfinished state even.
func Zero[M comparable](Game[M], string) float64 {
	return 0
}
