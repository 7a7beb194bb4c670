// Package solver implements the pluggable backtracking search strategies:
// iterative and recursive backtracking with forward checking, the
// sorted-once optimised variant, min-conflicts local search, and the
// interface-only parallel solver. Every strategy consumes the same
// (domains, constraints, vconstraints) shape produced by Problem.compile and
// returns constraint.Assignment values.
package solver

import (
	"sort"

	"github.com/gitrdm/csp/internal/constraint"
)

// frame records one variable's trial on the backtracking stack: the
// remaining candidate values not yet tried (popped from the end) and the
// domains that were checkpointed for the current attempt, so backtracking
// out of this frame knows exactly what to pop.
type frame[V comparable] struct {
	variable V
	values   []any
	pushed   []V
}

// degreeMRVOrder ranks candidates by descending constraint degree, breaking
// ties by ascending domain size -- the degree+MRV heuristic.
func degreeMRVOrder[V comparable](domains constraint.Domains[V], vconstraints map[V][]constraint.Record[V], candidates []V) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := len(vconstraints[candidates[i]]), len(vconstraints[candidates[j]])
		if di != dj {
			return di > dj
		}
		return domains[candidates[i]].Len() < domains[candidates[j]].Len()
	})
}

// checkAll runs every constraint touching v and reports whether they all
// currently accept the assignment.
func checkAll[V comparable](v V, vconstraints map[V][]constraint.Record[V], domains constraint.Domains[V], assignment constraint.Assignment[V], forwardCheck bool) bool {
	for _, rec := range vconstraints[v] {
		if !rec.Constraint.Check(rec.Variables, domains, assignment, forwardCheck) {
			return false
		}
	}
	return true
}

func cloneAssignment[V comparable](a constraint.Assignment[V]) constraint.Assignment[V] {
	out := make(constraint.Assignment[V], len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// search is the shared engine behind IterativeBacktrackingSolver and
// OptimizedBacktrackingSolver's default path: an explicit stack of frames,
// forward checking via domain checkpoints, and a caller-supplied
// pickVariable strategy so the optimised variant can reuse everything but
// variable ordering.
type search[V comparable] struct {
	domains      constraint.Domains[V]
	vconstraints map[V][]constraint.Record[V]
	order        []V
	forwardCheck bool
	pickVariable func(candidates []V)

	assignment constraint.Assignment[V]
	queue      []frame[V]
}

func newSearch[V comparable](domains constraint.Domains[V], vconstraints map[V][]constraint.Record[V], order []V, forwardCheck bool, pickVariable func([]V)) *search[V] {
	return &search[V]{
		domains:      domains,
		vconstraints: vconstraints,
		order:        order,
		forwardCheck: forwardCheck,
		pickVariable: pickVariable,
		assignment:   constraint.Assignment[V]{},
	}
}

func (s *search[V]) nextUnassigned() (V, bool) {
	var candidates []V
	for _, v := range s.order {
		if _, ok := s.assignment[v]; !ok {
			candidates = append(candidates, v)
		}
	}
	var zero V
	if len(candidates) == 0 {
		return zero, false
	}
	s.pickVariable(candidates)
	return candidates[0], true
}

func (s *search[V]) pushedFor(variable V) []V {
	if !s.forwardCheck {
		return nil
	}
	var pushed []V
	for _, v := range s.order {
		if v == variable {
			continue
		}
		if _, ok := s.assignment[v]; !ok {
			pushed = append(pushed, v)
		}
	}
	return pushed
}

// attempt tries values for variable, popping from the end, until one
// satisfies every constraint touching variable. On success it leaves
// assignment[variable] set and the pushed domains checkpointed, and returns
// the values left untried. On exhaustion it leaves no trace of variable in
// assignment or in the domain checkpoint stack.
func (s *search[V]) attempt(variable V, values []any, pushed []V) (ok bool, remaining []any) {
	for len(values) > 0 {
		val := values[len(values)-1]
		values = values[:len(values)-1]
		s.assignment[variable] = val
		for _, v := range pushed {
			s.domains[v].PushState()
		}
		if checkAll(variable, s.vconstraints, s.domains, s.assignment, s.forwardCheck) {
			return true, values
		}
		for _, v := range pushed {
			s.domains[v].PopState()
		}
		delete(s.assignment, variable)
	}
	return false, values
}

// backtrack pops frames until one has an untried value that succeeds, and
// leaves the search ready to continue forward from there. It returns false
// once the whole search space is exhausted.
func (s *search[V]) backtrack() bool {
	for len(s.queue) > 0 {
		top := s.queue[len(s.queue)-1]
		s.queue = s.queue[:len(s.queue)-1]
		for _, v := range top.pushed {
			s.domains[v].PopState()
		}
		delete(s.assignment, top.variable)
		if ok, remaining := s.attempt(top.variable, top.values, top.pushed); ok {
			s.queue = append(s.queue, frame[V]{variable: top.variable, values: remaining, pushed: top.pushed})
			return true
		}
	}
	return false
}

// iterate is the true generator underneath run, GetSolutions and
// GetSolutionIter alike: it drives the frame stack exactly as run does, but
// calls yield as each solution is discovered instead of collecting them, and
// stops searching the instant yield returns false. run, GetSolution and
// GetSolutions are all expressed in terms of it so every entry point shares
// one search engine.
func (s *search[V]) iterate(yield func(constraint.Assignment[V]) bool) {
	for {
		variable, has := s.nextUnassigned()
		if !has {
			if !yield(cloneAssignment(s.assignment)) || !s.backtrack() {
				return
			}
			continue
		}

		values := s.domains[variable].Values()
		pushed := s.pushedFor(variable)
		if ok, remaining := s.attempt(variable, values, pushed); ok {
			s.queue = append(s.queue, frame[V]{variable: variable, values: remaining, pushed: pushed})
			continue
		}
		if !s.backtrack() {
			return
		}
	}
}

// run drives the search to completion, collecting every solution, or just
// the first one when single is true.
func (s *search[V]) run(single bool) []constraint.Assignment[V] {
	var solutions []constraint.Assignment[V]
	s.iterate(func(sol constraint.Assignment[V]) bool {
		solutions = append(solutions, sol)
		return !single
	})
	return solutions
}

// IterativeBacktrackingSolver is the baseline solver: an explicit stack of
// trial frames, recomputing degree+MRV order at every selection step, with
// forward checking on by default.
type IterativeBacktrackingSolver[V comparable] struct {
	ForwardCheck bool
}

// NewIterativeBacktrackingSolver constructs the baseline solver.
func NewIterativeBacktrackingSolver[V comparable]() *IterativeBacktrackingSolver[V] {
	return &IterativeBacktrackingSolver[V]{ForwardCheck: true}
}

func (s *IterativeBacktrackingSolver[V]) newSearch(domains constraint.Domains[V], vconstraints map[V][]constraint.Record[V], order []V) *search[V] {
	return newSearch(domains, vconstraints, order, s.ForwardCheck, func(candidates []V) {
		degreeMRVOrder(domains, vconstraints, candidates)
	})
}

// GetSolution implements Solver.
func (s *IterativeBacktrackingSolver[V]) GetSolution(domains constraint.Domains[V], constraints []constraint.Record[V], vconstraints map[V][]constraint.Record[V], order []V) (constraint.Assignment[V], error) {
	sols := s.newSearch(domains, vconstraints, order).run(true)
	if len(sols) == 0 {
		return nil, nil
	}
	return sols[0], nil
}

// GetSolutions implements Solver.
func (s *IterativeBacktrackingSolver[V]) GetSolutions(domains constraint.Domains[V], constraints []constraint.Record[V], vconstraints map[V][]constraint.Record[V], order []V) ([]constraint.Assignment[V], error) {
	return s.newSearch(domains, vconstraints, order).run(false), nil
}

// GetSolutionIter implements Solver: a lazy sequence backed by search.iterate
// directly, so ranging over it drives the frame stack one step at a time and
// stopping early (the range body returning, or the iter.Seq consumer breaking
// out) truly stops the search instead of discarding an already-complete
// result.
func (s *IterativeBacktrackingSolver[V]) GetSolutionIter(domains constraint.Domains[V], constraints []constraint.Record[V], vconstraints map[V][]constraint.Record[V], order []V) (func(yield func(constraint.Assignment[V]) bool), error) {
	return s.newSearch(domains, vconstraints, order).iterate, nil
}
