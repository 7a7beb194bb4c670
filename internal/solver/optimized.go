package solver

import "github.com/gitrdm/csp/internal/constraint"

// OptimizedBacktrackingSolver sorts variables by degree+MRV once, against
// the domains as they stand at compile time, instead of recomputing the
// order at every selection step. This trades a small amount of pruning
// quality (the order can go stale as domains shrink during search) for
// avoiding an O(n log n) sort on every assignment. When there are no
// constraints at all it skips search entirely and returns the domains'
// full cross product via BruteForce.
type OptimizedBacktrackingSolver[V comparable] struct {
	ForwardCheck bool
}

// NewOptimizedBacktrackingSolver constructs the optimised solver.
func NewOptimizedBacktrackingSolver[V comparable]() *OptimizedBacktrackingSolver[V] {
	return &OptimizedBacktrackingSolver[V]{ForwardCheck: true}
}

func staticOrder[V comparable](domains constraint.Domains[V], vconstraints map[V][]constraint.Record[V], order []V) []V {
	sorted := append([]V(nil), order...)
	degreeMRVOrder(domains, vconstraints, sorted)
	return sorted
}

func (s *OptimizedBacktrackingSolver[V]) newSearch(domains constraint.Domains[V], vconstraints map[V][]constraint.Record[V], order []V) *search[V] {
	sorted := staticOrder(domains, vconstraints, order)
	rank := make(map[V]int, len(sorted))
	for i, v := range sorted {
		rank[v] = i
	}
	pick := func(candidates []V) {
		best := 0
		for i := 1; i < len(candidates); i++ {
			if rank[candidates[i]] < rank[candidates[best]] {
				best = i
			}
		}
		candidates[0], candidates[best] = candidates[best], candidates[0]
	}
	return newSearch(domains, vconstraints, order, s.ForwardCheck, pick)
}

// BruteForce enumerates the full cross product of every variable's domain,
// with no constraint checking at all. It is the fast path taken by
// GetSolutions when a problem carries no constraints whatsoever.
func BruteForce[V comparable](domains constraint.Domains[V], order []V) []constraint.Assignment[V] {
	if len(order) == 0 {
		return nil
	}
	results := []constraint.Assignment[V]{{}}
	for _, v := range order {
		values := domains[v].Values()
		next := make([]constraint.Assignment[V], 0, len(results)*len(values))
		for _, partial := range results {
			for _, val := range values {
				a := cloneAssignment(partial)
				a[v] = val
				next = append(next, a)
			}
		}
		results = next
	}
	return results
}

// GetSolution implements Solver.
func (s *OptimizedBacktrackingSolver[V]) GetSolution(domains constraint.Domains[V], constraints []constraint.Record[V], vconstraints map[V][]constraint.Record[V], order []V) (constraint.Assignment[V], error) {
	if len(constraints) == 0 {
		all := BruteForce(domains, order)
		if len(all) == 0 {
			return nil, nil
		}
		return all[0], nil
	}
	sols := s.newSearch(domains, vconstraints, order).run(true)
	if len(sols) == 0 {
		return nil, nil
	}
	return sols[0], nil
}

// GetSolutions implements Solver, taking the BruteForce fast path when the
// problem carries no constraints.
func (s *OptimizedBacktrackingSolver[V]) GetSolutions(domains constraint.Domains[V], constraints []constraint.Record[V], vconstraints map[V][]constraint.Record[V], order []V) ([]constraint.Assignment[V], error) {
	if len(constraints) == 0 {
		return BruteForce(domains, order), nil
	}
	return s.newSearch(domains, vconstraints, order).run(false), nil
}

// GetSolutionsList skips forward-checking entirely: it pushes no domain
// states and performs only the cheap per-variable constraint check as each
// variable is assigned, trading pruning power for per-step cost. It exists
// for problems whose constraints are expensive to forward-check against but
// cheap to check on a partial assignment -- the second entry point spec.md's
// optimised-solver section names explicitly.
func (s *OptimizedBacktrackingSolver[V]) GetSolutionsList(domains constraint.Domains[V], constraints []constraint.Record[V], vconstraints map[V][]constraint.Record[V], order []V) ([]constraint.Assignment[V], error) {
	if len(constraints) == 0 {
		return BruteForce(domains, order), nil
	}
	sorted := staticOrder(domains, vconstraints, order)
	noForwardCheck := newSearch(domains, vconstraints, sorted, false, func([]V) {})
	return noForwardCheck.run(false), nil
}

// GetSolutionIter implements Solver. When there are no constraints it ranges
// lazily over the BruteForce cross product (cheap to build but no cheaper to
// search, so nothing is lost by yielding from the already-built slice);
// otherwise it hands back search.iterate directly, so stopping early (the
// range body returning) truly stops the frame stack instead of discarding an
// already-complete result.
func (s *OptimizedBacktrackingSolver[V]) GetSolutionIter(domains constraint.Domains[V], constraints []constraint.Record[V], vconstraints map[V][]constraint.Record[V], order []V) (func(yield func(constraint.Assignment[V]) bool), error) {
	if len(constraints) == 0 {
		all := BruteForce(domains, order)
		return func(yield func(constraint.Assignment[V]) bool) {
			for _, sol := range all {
				if !yield(sol) {
					return
				}
			}
		}, nil
	}
	return s.newSearch(domains, vconstraints, order).iterate, nil
}
