package csp

import "github.com/gitrdm/csp/internal/constraint"

// Solver is implemented by every pluggable search strategy. Problem's
// GetSolution* methods delegate to whichever Solver is currently configured via
// SetSolver. A Solver that cannot support a given shape (for example, lazy
// iteration on a solver with no native generator form) must return
// ErrNotImplemented rather than silently materialising the whole result.
type Solver[V comparable] interface {
	// GetSolution returns the first satisfying assignment, or nil if none
	// exists.
	GetSolution(domains constraint.Domains[V], constraints []constraint.Record[V], vconstraints map[V][]constraint.Record[V], order []V) (constraint.Assignment[V], error)

	// GetSolutions returns every satisfying assignment.
	GetSolutions(domains constraint.Domains[V], constraints []constraint.Record[V], vconstraints map[V][]constraint.Record[V], order []V) ([]constraint.Assignment[V], error)

	// GetSolutionIter returns a lazy sequence of satisfying assignments.
	GetSolutionIter(domains constraint.Domains[V], constraints []constraint.Record[V], vconstraints map[V][]constraint.Record[V], order []V) (func(yield func(constraint.Assignment[V]) bool), error)
}
