package csp

import "github.com/gitrdm/csp/internal/constraint"

// AsPredicate adapts any Constraint into a plain function over an ordered
// argument list, the supplemented "convert_constraint_restriction" feature
// from the original engine: there, each constraint type needed its own
// case in a type switch to produce an equivalent closure; here every
// constraint already exposes the same Check method, so the adapter is a
// single generic function instead of a type switch over every family.
func AsPredicate[V comparable](c constraint.Constraint[V], variables []V) func(args []any) bool {
	return func(args []any) bool {
		if len(args) != len(variables) {
			return false
		}
		assignment := make(constraint.Assignment[V], len(variables))
		for i, v := range variables {
			assignment[v] = args[i]
		}
		return c.Check(variables, constraint.Domains[V]{}, assignment, false)
	}
}
