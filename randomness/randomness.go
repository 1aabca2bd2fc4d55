// Package randomness provides the seedable random source shared by agents and
// match engines. Access to a Source is serialized, so one instance can be used
// from concurrent evaluations.
package randomness

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

var ErrEmptyChoice = errors.New("cannot choose from an empty sequence")

type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Source seeded deterministically from seed.
func New(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

var (
	defaultOnce   sync.Once
	defaultSource *Source
)

// Default returns the process-wide Source, seeded from the clock on first use.
func Default() *Source {
	defaultOnce.Do(func() {
		defaultSource = New(uint64(time.Now().UnixNano()))
	})
	return defaultSource
}

// Float64 returns a uniform value in [0, 1).
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.Float64()
}

// Between returns a uniform value in [lo, hi).
func (s *Source) Between(lo, hi float64) float64 {
	return lo + s.Float64()*(hi-lo)
}

// Intn returns a uniform value in [0, n). It panics if n <= 0.
func (s *Source) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.Intn(n)
}

// Choice returns one element of xs picked uniformly at random.
func Choice[T any](s *Source, xs []T) (T, error) {
	if len(xs) == 0 {
		var zero T
		return zero, ErrEmptyChoice
	}
	return xs[s.Intn(len(xs))], nil
}
