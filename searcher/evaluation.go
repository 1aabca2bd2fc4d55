package searcher

import "ludus/game"

// Evaluation is the value of a move, either known already (Ready) or still
// being computed (Pending).
type Evaluation struct {
	value float64
	await func() (float64, error)
}

func Ready(value float64) Evaluation {
	return Evaluation{value: value}
}

// Pending wraps a function that blocks until the value is known.
func Pending(await func() (float64, error)) Evaluation {
	if await == nil {
		panic("pending evaluation without await function")
	}
	return Evaluation{await: await}
}

// Async starts fn on its own goroutine and returns a Pending evaluation of its
// result. Awaiting it more than once returns the same outcome.
func Async(fn func() (float64, error)) Evaluation {
	done := make(chan struct{})
	var (
		value float64
		err   error
	)
	go func() {
		defer close(done)
		value, err = fn()
	}()
	return Pending(func() (float64, error) {
		<-done
		return value, err
	})
}

func (e Evaluation) IsReady() bool {
	return e.await == nil
}

// Value returns the value of a Ready evaluation.
func (e Evaluation) Value() (float64, bool) {
	return e.value, e.IsReady()
}

// Await blocks until the evaluation is known.
func (e Evaluation) Await() (float64, error) {
	if e.IsReady() {
		return e.value, nil
	}
	return e.await()
}

// StateEvaluator scores a game state from a player's point of view.
type StateEvaluator[M comparable] interface {
	StateEvaluation(g game.Game[M], player string) (float64, error)
}

// MoveEvaluator scores a move the player could make in a game state.
type MoveEvaluator[M comparable] interface {
	MoveEvaluation(move M, g game.Game[M], player string) (Evaluation, error)
}

type MoveEvaluatorFunc[M comparable] func(move M, g game.Game[M], player string) (Evaluation, error)

func (f MoveEvaluatorFunc[M]) MoveEvaluation(move M, g game.Game[M], player string) (Evaluation, error) {
	return f(move, g, player)
}

type EvaluatedMove[M comparable] struct {
	Move       M
	Evaluation float64
}
