// Package csp implements a finite-domain constraint satisfaction engine:
// variables with finite domains, constraints over subsets of those
// variables, and solvers that enumerate satisfying assignments.
//
// The three load-bearing pieces are the Domain (a mutable, reversible set of
// candidate values), the Problem (the variable/domain/constraint registry
// and the solution-retrieval API), and the pluggable Solver implementations
// in internal/solver. Constraints live in internal/constraint; the textual
// constraint parser lives in internal/parse.
package csp

import "github.com/gitrdm/csp/internal/domain"

// Domain holds the live candidate values for a single variable. See
// internal/domain for the full documentation of its reversible semantics;
// this is a type alias so the public API can expose Domain at the package
// root while the implementation is shared with internal/constraint and
// internal/solver without an import cycle.
type Domain[T comparable] = domain.Domain[T]

// NewDomain creates a Domain over the given values. It fails if values is
// empty.
func NewDomain[T comparable](values []T) (*Domain[T], error) {
	return domain.New(values)
}

// ErrEmptyDomain is returned when a Domain would be constructed with no
// values.
var ErrEmptyDomain = domain.ErrEmpty
