package solver

import "github.com/gitrdm/csp/internal/constraint"

// RecursiveBacktrackingSolver mirrors IterativeBacktrackingSolver's search
// exactly (degree+MRV order recomputed at every step, forward checking via
// domain checkpoints) but drives it with Go call-stack recursion instead of
// an explicit frame stack, matching the source engine's original shape. It
// exists for readability/teaching value; for anything where recursion depth
// could become a problem, prefer the iterative solver.
type RecursiveBacktrackingSolver[V comparable] struct {
	ForwardCheck bool
}

// NewRecursiveBacktrackingSolver constructs the recursive solver.
func NewRecursiveBacktrackingSolver[V comparable]() *RecursiveBacktrackingSolver[V] {
	return &RecursiveBacktrackingSolver[V]{ForwardCheck: true}
}

type recursiveSearch[V comparable] struct {
	domains      constraint.Domains[V]
	vconstraints map[V][]constraint.Record[V]
	order        []V
	forwardCheck bool
	solutions    []constraint.Assignment[V]
}

// recurse assigns one more variable and calls itself for the remainder of
// the search, returning true once `single` is satisfied and the caller
// should stop exploring further branches.
func (s *recursiveSearch[V]) recurse(assignment constraint.Assignment[V], single bool) bool {
	var candidates []V
	for _, v := range s.order {
		if _, ok := assignment[v]; !ok {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		s.solutions = append(s.solutions, cloneAssignment(assignment))
		return single
	}
	degreeMRVOrder(s.domains, s.vconstraints, candidates)
	variable := candidates[0]

	var pushed []V
	if s.forwardCheck {
		for _, v := range candidates[1:] {
			pushed = append(pushed, v)
		}
	}

	for _, val := range s.domains[variable].Values() {
		assignment[variable] = val
		for _, v := range pushed {
			s.domains[v].PushState()
		}
		if checkAll(variable, s.vconstraints, s.domains, assignment, s.forwardCheck) {
			if s.recurse(assignment, single) {
				for _, v := range pushed {
					s.domains[v].PopState()
				}
				delete(assignment, variable)
				return true
			}
		}
		for _, v := range pushed {
			s.domains[v].PopState()
		}
		delete(assignment, variable)
	}
	return false
}

func (s *RecursiveBacktrackingSolver[V]) run(domains constraint.Domains[V], vconstraints map[V][]constraint.Record[V], order []V, single bool) []constraint.Assignment[V] {
	rs := &recursiveSearch[V]{domains: domains, vconstraints: vconstraints, order: order, forwardCheck: s.ForwardCheck}
	rs.recurse(constraint.Assignment[V]{}, single)
	return rs.solutions
}

// GetSolution implements Solver.
func (s *RecursiveBacktrackingSolver[V]) GetSolution(domains constraint.Domains[V], constraints []constraint.Record[V], vconstraints map[V][]constraint.Record[V], order []V) (constraint.Assignment[V], error) {
	sols := s.run(domains, vconstraints, order, true)
	if len(sols) == 0 {
		return nil, nil
	}
	return sols[0], nil
}

// GetSolutions implements Solver.
func (s *RecursiveBacktrackingSolver[V]) GetSolutions(domains constraint.Domains[V], constraints []constraint.Record[V], vconstraints map[V][]constraint.Record[V], order []V) ([]constraint.Assignment[V], error) {
	return s.run(domains, vconstraints, order, false), nil
}

// GetSolutionIter implements Solver. The recursive solver does not support
// lazy iteration -- its call stack can't be suspended mid-yield the way the
// iterative solver's explicit frame stack can -- so it returns
// ErrNotImplemented, matching spec.md's documented limitation for this
// variant.
func (s *RecursiveBacktrackingSolver[V]) GetSolutionIter(domains constraint.Domains[V], constraints []constraint.Record[V], vconstraints map[V][]constraint.Record[V], order []V) (func(yield func(constraint.Assignment[V]) bool), error) {
	return nil, ErrNotImplemented
}
