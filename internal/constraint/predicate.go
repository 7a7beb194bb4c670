package constraint

// Predicate wraps an arbitrary Go function over a fixed, ordered list of
// variables: the fallback every other constraint variant reduces to when the
// parser (or the caller) can't express something more specific. It is the
// Go analogue of FunctionConstraint in the source engine.
type Predicate[V comparable] struct {
	// Fn receives the values of Variables in order; a missing (unassigned)
	// variable is passed as nil when AcceptsUnassigned is true. When it is
	// false, Fn only sees fully assigned argument lists: Check either
	// short-circuits to true, or (forward checking with exactly one variable
	// missing) calls Fn once per candidate value of that variable.
	Fn func(args []any) bool

	// AcceptsUnassigned controls behaviour when the variable list is only
	// partially assigned. When false (the common case), Check returns true
	// without evaluating Fn as soon as any variable is missing -- a
	// predicate with unknown inputs cannot yet reject the assignment --
	// except when forward checking with exactly one variable missing, where
	// Check hides that variable's values that make Fn reject.
	AcceptsUnassigned bool
}

// NewPredicate constructs a Predicate constraint.
func NewPredicate[V comparable](fn func(args []any) bool) *Predicate[V] {
	return &Predicate[V]{Fn: fn}
}

// Check implements Constraint.
func (p *Predicate[V]) Check(variables []V, domains Domains[V], assignment Assignment[V], forwardCheck bool) bool {
	args := make([]any, len(variables))
	missing := -1
	missingCount := 0
	for i, v := range variables {
		val, ok := assignment[v]
		if !ok {
			missing = i
			missingCount++
			args[i] = nil
			continue
		}
		args[i] = val
	}

	if missingCount > 0 && !p.AcceptsUnassigned {
		if forwardCheck && missingCount == 1 {
			return p.forwardCheckOne(variables, domains, assignment, args, missing)
		}
		return true
	}

	return p.Fn(args)
}

// forwardCheckOne implements the generic "exactly one variable missing"
// forward-check case: try every candidate value of the missing variable in
// its place and hide the ones that make Fn reject.
func (p *Predicate[V]) forwardCheckOne(variables []V, domains Domains[V], assignment Assignment[V], args []any, missing int) bool {
	missingVar := variables[missing]
	return ForwardCheckSingle(missingVar, domains, assignment, func(val any) bool {
		args[missing] = val
		return p.Fn(args)
	})
}

// Preprocess implements Constraint using the default single-variable
// discharge rule.
func (p *Predicate[V]) Preprocess(variables []V, domains Domains[V], constraints *[]Record[V], vconstraints map[V][]Record[V]) {
	DefaultPreprocess[V](p, variables, domains, constraints, vconstraints)
}

// CompilablePredicate holds a Predicate's logic as source text instead of a
// compiled function, for the "picklable" / parallel-solver-isolated mode
// described in the parser and parallel-solver sections: the source is
// serialisable across a worker boundary. No code in this module builds or
// consumes one; ParallelSolver's Isolated mode returns ErrNotImplemented.
type CompilablePredicate[V comparable] struct {
	Source    string
	Variables []V
}
