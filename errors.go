package csp

import (
	"errors"

	"github.com/gitrdm/csp/internal/solver"
)

// Sentinel errors returned by Problem and the constraint library. Wrap with
// fmt.Errorf("csp: ...: %w", err) to add context; callers can still match
// with errors.Is.
var (
	// ErrDuplicateVariable is returned by AddVariable when the variable
	// identity is already registered.
	ErrDuplicateVariable = errors.New("csp: duplicate variable")

	// ErrInvalidDomain reports a domain argument that fails validation. No
	// function in this module returns it: AddVariables takes one value list
	// shared by every variable, so there is no length to check.
	ErrInvalidDomain = errors.New("csp: invalid domain")

	// ErrInvalidConstraint is returned by AddConstraint when given something
	// that is neither a Constraint nor a function constraint-compatible
	// callable.
	ErrInvalidConstraint = errors.New("csp: invalid constraint")

	// ErrParseFailure is returned when the string constraint parser cannot
	// build a constraint and the safe-evaluator fallback also rejects the
	// expression.
	ErrParseFailure = errors.New("csp: parser could not build a constraint")

	// ErrNotImplemented is returned by solver methods a particular Solver
	// variant does not support (e.g. lazy iteration on RecursiveBacktrackingSolver).
	// It is the same value as the solver package's sentinel, so errors.Is
	// matches what the built-in solvers return.
	ErrNotImplemented = solver.ErrNotImplemented

	// ErrDuplicateSolutions is returned by GetSolutionsAsListDict when
	// validate is requested and two distinct search branches produced the
	// same tuple.
	ErrDuplicateSolutions = errors.New("csp: duplicate solutions in search space")
)
