package csp

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/gitrdm/csp/internal/constraint"
	"github.com/gitrdm/csp/internal/domain"
	"github.com/gitrdm/csp/internal/parse"
	"github.com/gitrdm/csp/internal/solver"
)

// Assignment is a (possibly partial) variable -> value map, the shape every
// constraint Check call and every solver result shares. A variable present
// in a Problem but absent from an Assignment is unassigned; there is no
// reserved "Unassigned" sentinel value (spec.md §9).
type Assignment[V comparable] = constraint.Assignment[V]

// userConstraint is what AddConstraint actually stores before compile: a
// resolved Constraint, or a source string awaiting the parser.
type userConstraint[V comparable] struct {
	constraint constraint.Constraint[V]
	variables  []V
	source     string
}

// Problem holds the variable/domain/constraint registry for a CSP instance
// and drives the solution-retrieval API described in spec.md §4.C/§6. It is
// not safe for concurrent mutation (spec.md §5): callers own external
// synchronization if a Problem is shared across goroutines.
type Problem[V comparable] struct {
	order     []V
	variables map[V]*domain.Domain[any]
	userCs    []userConstraint[V]
	solverImp Solver[V]
	logger    *slog.Logger
}

// NewProblem constructs an empty Problem using IterativeBacktrackingSolver
// (the spec's documented baseline) unless a different Solver is supplied.
func NewProblem[V comparable](s ...Solver[V]) *Problem[V] {
	p := &Problem[V]{
		variables: make(map[V]*domain.Domain[any]),
		solverImp: solver.NewIterativeBacktrackingSolver[V](),
	}
	if len(s) > 0 && s[0] != nil {
		p.solverImp = s[0]
	}
	return p
}

// SetLogger attaches a structured logger for debug-level solver-step
// tracing. A nil logger (the default) disables tracing entirely.
func (p *Problem[V]) SetLogger(l *slog.Logger) {
	p.logger = l
}

// SetSolver replaces the active Solver implementation.
func (p *Problem[V]) SetSolver(s Solver[V]) {
	p.solverImp = s
}

// GetSolver returns the active Solver implementation.
func (p *Problem[V]) GetSolver() Solver[V] {
	return p.solverImp
}

// AddVariable registers v with the given candidate values. It fails with
// ErrDuplicateVariable if v is already registered, or with ErrEmptyDomain
// (wrapped) if values is empty.
func (p *Problem[V]) AddVariable(v V, values []any) error {
	if _, exists := p.variables[v]; exists {
		return fmt.Errorf("csp: add variable %v: %w", v, ErrDuplicateVariable)
	}
	d, err := domain.New(values)
	if err != nil {
		return fmt.Errorf("csp: add variable %v: %w", v, err)
	}
	p.variables[v] = d
	p.order = append(p.order, v)
	return nil
}

// AddVariableDomain registers v with a caller-constructed domain. The
// domain is cloned so later mutation of d (or of another Problem sharing
// it) cannot alias this Problem's state, matching spec.md §4.C's
// "Domain instances are deep-copied" requirement.
func (p *Problem[V]) AddVariableDomain(v V, d *Domain[any]) error {
	if _, exists := p.variables[v]; exists {
		return fmt.Errorf("csp: add variable %v: %w", v, ErrDuplicateVariable)
	}
	if d == nil || d.Len() == 0 {
		return fmt.Errorf("csp: add variable %v: %w", v, ErrEmptyDomain)
	}
	p.variables[v] = d.Clone()
	p.order = append(p.order, v)
	return nil
}

// AddVariables registers every variable in vs with a shared set of candidate
// values, shorthand for calling AddVariable in a loop.
func (p *Problem[V]) AddVariables(vs []V, values []any) error {
	for _, v := range vs {
		if err := p.AddVariable(v, values); err != nil {
			return err
		}
	}
	return nil
}

// AddConstraint registers a constraint over vars (or, if vars is empty, over
// every variable currently registered -- resolved at compile time, so
// variables added afterward are still included). c must be a
// constraint.Constraint[V], a func([]any) bool predicate, or a string for
// deferred parsing; anything else returns ErrInvalidConstraint.
func (p *Problem[V]) AddConstraint(c any, vars ...V) error {
	switch val := c.(type) {
	case constraint.Constraint[V]:
		p.userCs = append(p.userCs, userConstraint[V]{constraint: val, variables: vars})
	case func([]any) bool:
		p.userCs = append(p.userCs, userConstraint[V]{constraint: constraint.NewPredicate[V](val), variables: vars})
	case string:
		p.userCs = append(p.userCs, userConstraint[V]{source: val, variables: vars})
	default:
		return fmt.Errorf("csp: add constraint: %w", ErrInvalidConstraint)
	}
	return nil
}

// Reset discards nothing registered, but guarantees the next GetSolution* call
// recompiles from a fresh clone of every domain -- compile() already clones
// on every call, so Reset exists purely as a documented no-op entry point
// for callers migrating from an API that required it explicitly.
func (p *Problem[V]) Reset() {}

// compiled is the (domains, constraints, vconstraints, order) shape every
// Solver consumes -- the Go analogue of _getArgs's return value. empty is
// set when compile discovers a domain emptied by preprocessing, which the
// solver-facing API treats as "no solutions" rather than an error.
type compiled[V comparable] struct {
	domains      constraint.Domains[V]
	constraints  []constraint.Record[V]
	vconstraints map[V][]constraint.Record[V]
	order        []V
	empty        bool
}

// compile is the Go name for spec.md §4.C's _getArgs: clone domains, resolve
// string constraints via the parser, resolve default-all variable lists,
// build vconstraints, run every constraint's Preprocess over a snapshot
// (preprocessing may mutate the live list), reset domain state, and detect
// whether any domain preprocessed itself into emptiness.
func (p *Problem[V]) compile() (*compiled[V], error) {
	domains := make(constraint.Domains[V], len(p.variables))
	for v, d := range p.variables {
		domains[v] = d.Clone()
	}
	order := append([]V(nil), p.order...)

	var records []constraint.Record[V]
	var stringExprs []string
	for _, uc := range p.userCs {
		if uc.source != "" {
			stringExprs = append(stringExprs, uc.source)
			continue
		}
		vars := uc.variables
		if len(vars) == 0 {
			vars = order
		}
		records = append(records, constraint.Record[V]{Constraint: uc.constraint, Variables: vars})
	}

	if len(stringExprs) > 0 {
		parsed, err := p.compileStrings(stringExprs, domains, order)
		if err != nil {
			return nil, err
		}
		records = append(records, parsed...)
	}

	vconstraints := make(map[V][]constraint.Record[V], len(order))
	for _, v := range order {
		vconstraints[v] = nil
	}
	for _, r := range records {
		for _, v := range r.Variables {
			vconstraints[v] = append(vconstraints[v], r)
		}
	}

	// Preprocess may mutate `records` (self-discharge) and vconstraints, so
	// iterate over an explicit snapshot per spec.md §4.C.
	snapshot := append([]constraint.Record[V](nil), records...)
	for _, r := range snapshot {
		r.Constraint.Preprocess(r.Variables, domains, &records, vconstraints)
	}

	for _, v := range order {
		domains[v].ResetState()
	}

	for _, v := range order {
		if domains[v].Len() == 0 {
			return &compiled[V]{empty: true}, nil
		}
	}

	if p.logger != nil {
		p.logger.Debug("csp: compiled problem", "variables", len(order), "constraints", len(records))
	}

	return &compiled[V]{domains: domains, constraints: records, vconstraints: vconstraints, order: order}, nil
}

// compileStrings adapts the string-constraint parser, which operates on
// string variable names (spec.md §4.E's mini-language has no notion of a
// non-textual variable identity), into this Problem's V-typed records. The
// interface assertion below succeeds exactly when V is instantiated as
// string, which is the only case in which "a variable referenced by name in
// an expression" is a coherent idea; any other V fails the assertion and
// surfaces as ErrInvalidConstraint rather than a panic.
func (p *Problem[V]) compileStrings(exprs []string, domains constraint.Domains[V], order []V) ([]constraint.Record[V], error) {
	strDomains := make(map[string]*domain.Domain[any], len(order))
	nameToVar := make(map[string]V, len(order))
	for _, v := range order {
		name, ok := any(v).(string)
		if !ok {
			return nil, fmt.Errorf("csp: string constraints require string variable identities: %w", ErrInvalidConstraint)
		}
		strDomains[name] = domains[v]
		nameToVar[name] = v
	}

	results, err := parse.CompileToConstraints(exprs, strDomains, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	recs := make([]constraint.Record[V], 0, len(results))
	for _, res := range results {
		vars := make([]V, len(res.Variables))
		for i, name := range res.Variables {
			vars[i] = nameToVar[name]
		}
		c, ok := any(res.Constraint).(constraint.Constraint[V])
		if !ok {
			return nil, fmt.Errorf("csp: internal: parsed constraint %T is not a Constraint[V]: %w", res.Constraint, ErrInvalidConstraint)
		}
		recs = append(recs, constraint.Record[V]{Constraint: c, Variables: vars})
	}
	return recs, nil
}

// GetSolution returns the first satisfying assignment, or nil if the
// problem has none.
func (p *Problem[V]) GetSolution() (Assignment[V], error) {
	c, err := p.compile()
	if err != nil {
		return nil, err
	}
	if c.empty {
		return nil, nil
	}
	return p.solverImp.GetSolution(c.domains, c.constraints, c.vconstraints, c.order)
}

// GetSolutions returns every satisfying assignment.
func (p *Problem[V]) GetSolutions() ([]Assignment[V], error) {
	c, err := p.compile()
	if err != nil {
		return nil, err
	}
	if c.empty {
		return nil, nil
	}
	return p.solverImp.GetSolutions(c.domains, c.constraints, c.vconstraints, c.order)
}

// GetSolutionIter returns a lazy sequence of satisfying assignments; the
// caller stops consuming to cancel (spec.md §5's cooperative-cancellation
// contract).
func (p *Problem[V]) GetSolutionIter() (func(yield func(Assignment[V]) bool), error) {
	c, err := p.compile()
	if err != nil {
		return nil, err
	}
	if c.empty {
		return func(func(Assignment[V]) bool) {}, nil
	}
	return p.solverImp.GetSolutionIter(c.domains, c.constraints, c.vconstraints, c.order)
}

// GetSolutionsOrderedList returns every solution as a tuple of values in the
// given variable order, instead of as an Assignment map -- used by search-
// space export / hyperparameter-style tooling (spec.md §4.C).
func (p *Problem[V]) GetSolutionsOrderedList(order []V) ([][]any, error) {
	sols, err := p.GetSolutions()
	if err != nil {
		return nil, err
	}
	out := make([][]any, len(sols))
	for i, sol := range sols {
		tuple := make([]any, len(order))
		for j, v := range order {
			tuple[j] = sol[v]
		}
		out[i] = tuple
	}
	return out, nil
}

// tupleKey builds a stable, comparable map key for a value tuple. Go slices
// aren't comparable, so GetSolutionsAsListDict's duplicate-detection keys on
// a fmt.Sprint-joined form of the ordered tuple -- sufficient for detecting
// duplicates (the only thing this key is used for) without requiring T to
// implement a custom key method. See DESIGN.md for this Open Question
// resolution.
func tupleKey(tuple []any) string {
	parts := make([]string, len(tuple))
	for i, v := range tuple {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, "\x1f")
}

// GetSolutionsAsListDict returns every solution as an ordered tuple, plus a
// map from each tuple's key to its index in that list, plus the list's
// length. When validate is true, a tuple colliding with an earlier one is
// reported as ErrDuplicateSolutions along with the offending tuples, per
// spec.md §7's DuplicateSolutions diagnostic.
func (p *Problem[V]) GetSolutionsAsListDict(order []V, validate bool) ([][]any, map[string]int, int, error) {
	tuples, err := p.GetSolutionsOrderedList(order)
	if err != nil {
		return nil, nil, 0, err
	}
	index := make(map[string]int, len(tuples))
	var duplicates [][]any
	for i, t := range tuples {
		key := tupleKey(t)
		if _, exists := index[key]; exists {
			if validate {
				duplicates = append(duplicates, t)
			}
			continue
		}
		index[key] = i
	}
	if validate && len(duplicates) > 0 {
		return tuples, index, len(tuples), fmt.Errorf("csp: %d duplicate solution(s) %v: %w", len(duplicates), duplicates, ErrDuplicateSolutions)
	}
	return tuples, index, len(tuples), nil
}

// Violation describes one constraint rejecting a candidate assignment,
// returned by Explain for debugging why a tuple isn't a solution.
type Violation[V comparable] struct {
	Variables  []V
	Constraint constraint.Constraint[V]
}

// Explain evaluates every compiled constraint against a full candidate
// assignment (forward-checking disabled) and reports which ones reject it.
// This is a supplemental diagnostic (spec.md has no equivalent); it has no
// effect on solver semantics and is meant for debugging rejected
// assignments during development.
func (p *Problem[V]) Explain(assignment Assignment[V]) ([]Violation[V], error) {
	c, err := p.compile()
	if err != nil {
		return nil, err
	}
	if c.empty {
		return nil, nil
	}
	var violations []Violation[V]
	for _, rec := range c.constraints {
		if !rec.Constraint.Check(rec.Variables, c.domains, assignment, false) {
			violations = append(violations, Violation[V]{Variables: rec.Variables, Constraint: rec.Constraint})
		}
	}
	sort.SliceStable(violations, func(i, j int) bool { return len(violations[i].Variables) < len(violations[j].Variables) })
	return violations, nil
}
