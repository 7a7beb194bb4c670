package solver

import (
	"context"
	"math/rand"
	"time"

	"github.com/gitrdm/csp/internal/constraint"
)

// MinConflictsSolver is a local-search repair algorithm: it starts from a
// uniformly random full assignment, then repeatedly picks a conflicted
// variable and reassigns it to whichever value leaves it with the fewest
// conflicts (ties broken at random), for up to Steps rounds. It never
// checks Preprocess-level domain pruning and provides only a single
// solution -- GetSolutions and GetSolutionIter both report
// ErrNotImplemented, matching the source algorithm's own documented
// limitation.
type MinConflictsSolver[V comparable] struct {
	// Steps bounds how many repair rounds to attempt before giving up.
	// Zero means the default of 1000.
	Steps int

	// Rand supplies randomness for the initial assignment, variable
	// shuffling, and tie-breaking. A nil Rand uses a fresh source seeded
	// from the current time; supply one explicitly for reproducible runs.
	Rand *rand.Rand
}

// NewMinConflictsSolver constructs a MinConflictsSolver with the default
// step budget.
func NewMinConflictsSolver[V comparable]() *MinConflictsSolver[V] {
	return &MinConflictsSolver[V]{Steps: 1000}
}

func (s *MinConflictsSolver[V]) rng() *rand.Rand {
	if s.Rand != nil {
		return s.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (s *MinConflictsSolver[V]) steps() int {
	if s.Steps <= 0 {
		return 1000
	}
	return s.Steps
}

// GetSolution implements Solver. It runs the repair loop with
// context.Background(), so it cannot be cancelled; see GetSolutionCtx.
func (s *MinConflictsSolver[V]) GetSolution(domains constraint.Domains[V], constraints []constraint.Record[V], vconstraints map[V][]constraint.Record[V], order []V) (constraint.Assignment[V], error) {
	return s.getSolution(context.Background(), domains, vconstraints, order)
}

// GetSolutionCtx is the context-aware entry point; GetSolution delegates to
// it with context.Background() to satisfy the Solver interface. ctx is
// checked once per step; a cancelled context stops the repair loop early
// and returns ctx.Err().
func (s *MinConflictsSolver[V]) GetSolutionCtx(ctx context.Context, domains constraint.Domains[V], vconstraints map[V][]constraint.Record[V], order []V) (constraint.Assignment[V], error) {
	return s.getSolution(ctx, domains, vconstraints, order)
}

func (s *MinConflictsSolver[V]) getSolution(ctx context.Context, domains constraint.Domains[V], vconstraints map[V][]constraint.Record[V], order []V) (constraint.Assignment[V], error) {
	rng := s.rng()
	assignment := make(constraint.Assignment[V], len(order))
	for _, v := range order {
		values := domains[v].Values()
		if len(values) == 0 {
			return nil, nil
		}
		assignment[v] = values[rng.Intn(len(values))]
	}

	for i := 0; i < s.steps(); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		shuffled := append([]V(nil), order...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		conflicted := false
		for _, variable := range shuffled {
			if checkAll(variable, vconstraints, domains, assignment, false) {
				continue
			}
			conflicted = true

			values := domains[variable].Values()
			minCount := len(vconstraints[variable]) + 1
			var minValues []any
			for _, val := range values {
				assignment[variable] = val
				count := 0
				for _, rec := range vconstraints[variable] {
					if !rec.Constraint.Check(rec.Variables, domains, assignment, false) {
						count++
					}
				}
				switch {
				case count == minCount:
					minValues = append(minValues, val)
				case count < minCount:
					minCount = count
					minValues = minValues[:0]
					minValues = append(minValues, val)
				}
			}
			assignment[variable] = minValues[rng.Intn(len(minValues))]
		}
		if !conflicted {
			return assignment, nil
		}
	}
	return nil, nil
}

// GetSolutions implements Solver.
func (s *MinConflictsSolver[V]) GetSolutions(domains constraint.Domains[V], constraints []constraint.Record[V], vconstraints map[V][]constraint.Record[V], order []V) ([]constraint.Assignment[V], error) {
	return nil, ErrNotImplemented
}

// GetSolutionIter implements Solver.
func (s *MinConflictsSolver[V]) GetSolutionIter(domains constraint.Domains[V], constraints []constraint.Record[V], vconstraints map[V][]constraint.Record[V], order []V) (func(yield func(constraint.Assignment[V]) bool), error) {
	return nil, ErrNotImplemented
}
