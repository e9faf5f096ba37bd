package memo

import (
	"sync"

	"Strata/internal/stress/boussinesq"
)

// Store memoizes rectangular stress-field evaluations by the full
// parameter tuple. The evaluator itself is a pure function, so a hit
// can hand back the prior result as-is. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	results map[boussinesq.Input]boussinesq.Result
}

func NewStore() *Store {
	return &Store{results: make(map[boussinesq.Input]boussinesq.Result)}
}

// Calculate returns the cached result for in, computing and caching it
// on first use. Errors are not cached; invalid inputs fail on every
// call.
func (s *Store) Calculate(in boussinesq.Input) (boussinesq.Result, error) {
	s.mu.Lock()
	res, ok := s.results[in]
	s.mu.Unlock()
	if ok {
		return res, nil
	}

	res, err := boussinesq.Calculate(in)
	if err != nil {
		return boussinesq.Result{}, err
	}

	s.mu.Lock()
	s.results[in] = res
	s.mu.Unlock()
	return res, nil
}

// Len reports the number of cached parameter sets.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}
