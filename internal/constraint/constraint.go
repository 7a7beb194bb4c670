// Package constraint implements the built-in constraint library: a tagged
// set of constraint variants (predicate, all-different, all-equal, sum and
// product bounds, set membership, variable-linked bounds), each exposing a
// Check and a Preprocess operation. Variants are plain structs implementing
// the Constraint interface rather than a class hierarchy, following the
// engine's "dispatch by variant, not by inheritance" design.
package constraint

import (
	"fmt"

	"github.com/gitrdm/csp/internal/domain"
)

// Domains is the per-variable domain map a Constraint operates over. Values
// are stored as any so a single Problem can mix numeric, string, boolean,
// and tuple-shaped variables, matching the source engine's duck-typed
// domains.
type Domains[V comparable] map[V]*domain.Domain[any]

// Assignment is the (possibly partial) variable -> value map a Check call
// sees. A variable present in the surrounding Domains map but absent here is
// unassigned; there is no reserved "Unassigned" sentinel value.
type Assignment[V comparable] map[V]any

// Record pairs a Constraint with the ordered tuple of variables it applies
// to. A nil Variables field at registration time means "all problem
// variables"; Problem.compile resolves that before constraints ever see a
// Record.
type Record[V comparable] struct {
	Constraint Constraint[V]
	Variables  []V
}

// Constraint is implemented by every constraint variant.
type Constraint[V comparable] interface {
	// Check reports whether the constraint is still satisfiable given the
	// (possibly partial) assignment. When forwardCheck is true, Check may
	// additionally hide values from the domains of variables in `variables`
	// that are not yet assigned, pruning values that cannot participate in
	// any completion consistent with the current assignment. Check must
	// leave domains untouched when it returns false; the caller rolls back
	// any hides via PopState.
	Check(variables []V, domains Domains[V], assignment Assignment[V], forwardCheck bool) bool

	// Preprocess runs once before search begins. It may permanently remove
	// values from domains and may discharge itself by removing its own
	// Record from constraints/vconstraints when it will never need to run
	// again during search.
	Preprocess(variables []V, domains Domains[V], constraints *[]Record[V], vconstraints map[V][]Record[V])
}

// DefaultPreprocess implements the default single-variable preprocessing
// described in the component design: when a constraint applies to exactly
// one variable, it is evaluated against every domain value in isolation, the
// failing values are permanently removed, and the constraint discharges
// itself. Variants with no custom preprocessing (AllDifferent, AllEqual,
// MinSum, the Predicate constraint, ...) call this directly as their
// Preprocess method.
func DefaultPreprocess[V comparable](c Constraint[V], variables []V, domains Domains[V], constraints *[]Record[V], vconstraints map[V][]Record[V]) {
	if len(variables) != 1 {
		return
	}
	v := variables[0]
	dom, ok := domains[v]
	if !ok {
		return
	}
	for _, val := range dom.Values() {
		if !c.Check(variables, domains, Assignment[V]{v: val}, false) {
			dom.Remove(val)
		}
	}
	discharge(c, v, constraints, vconstraints)
}

// discharge removes every Record referencing c from constraints and from
// vconstraints[v]. It is called once a constraint has permanently folded
// itself into domain pruning and will never contribute further checks.
func discharge[V comparable](c Constraint[V], v V, constraints *[]Record[V], vconstraints map[V][]Record[V]) {
	filtered := (*constraints)[:0]
	for _, r := range *constraints {
		if r.Constraint != Constraint[V](c) {
			filtered = append(filtered, r)
		}
	}
	*constraints = filtered

	vs := vconstraints[v]
	kept := vs[:0]
	for _, r := range vs {
		if r.Constraint != Constraint[V](c) {
			kept = append(kept, r)
		}
	}
	vconstraints[v] = kept
}

// ForwardCheckSingle is the generic single-missing-variable forward-check
// helper used by several variants: given that every variable but `missing`
// is assigned, it tries every remaining candidate value of `missing` against
// accept, hiding the ones that fail. It returns false if hiding empties the
// domain.
func ForwardCheckSingle[V comparable](missing V, domains Domains[V], assignment Assignment[V], accept func(val any) bool) bool {
	dom := domains[missing]
	for _, val := range dom.Values() {
		if !accept(val) {
			if err := dom.HideValue(val); err != nil {
				panic(fmt.Sprintf("constraint: forward check: %v", err))
			}
		}
	}
	return dom.Len() > 0
}
