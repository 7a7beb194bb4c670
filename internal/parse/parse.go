// Package parse turns the textual constraint expressions spec.md §4.E
// describes ("x + y <= 10", "a != b", "3 <= x*y < 9") into
// internal/constraint values, following an eight-step pipeline: dedup,
// chain-splitting, per-expression rewriting, inverse-operation rewriting,
// numeric-constraint matching,
// variable-linked matching, equality matching, and a grammar-based
// predicate fallback for anything the earlier steps don't recognise.
package parse

import (
	"fmt"

	"github.com/gitrdm/csp/internal/constraint"
	"github.com/gitrdm/csp/internal/domain"
	"github.com/gitrdm/csp/internal/parse/grammar"
)

// CompiledConstraint is one output of CompileToConstraints: the constraint
// object itself, the variables it was built over (in first-appearance
// order), and, for constraints that fell through to the predicate fallback
// when picklable is true, the original source expression -- callers that need to ship the
// constraint to another process (spec.md §5's isolated parallel mode) can
// re-derive a CompilablePredicate from Source without holding a live
// closure.
type CompiledConstraint struct {
	Constraint constraint.Constraint[string]
	Variables  []string
	Source     string
}

// CompileToConstraints runs the full pipeline over exprs. domains supplies
// the set of known variable names (by key) so that rewriting steps can tell
// identifiers apart from free-floating garbage. When picklable is true, the
// predicate fallback's CompiledConstraint.Source is always populated (even
// though the constraint is still compiled eagerly for immediate use in this
// process) so isolated-mode workers can recompile it independently instead
// of receiving a non-serializable closure.
func CompileToConstraints(exprs []string, domains map[string]*domain.Domain[any], picklable bool) ([]CompiledConstraint, error) {
	var out []CompiledConstraint
	for _, expr := range dedup(exprs) {
		for _, clause := range splitChains(expr) {
			cc, err := compileOne(clause, domains, picklable)
			if err != nil {
				return nil, err
			}
			out = append(out, cc)
		}
	}
	return out, nil
}

func compileOne(expr string, domains map[string]*domain.Domain[any], picklable bool) (CompiledConstraint, error) {
	clause := stripOuterParens(expr)

	op, start, end, ok := findSingleComparator(clause)
	if ok {
		lhs, rhs := clause[:start], clause[end:]
		if rewrittenLHS, rewrittenOp, rewrittenRHS, changed := rewriteInverse(lhs, op, rhs); changed {
			lhs, op, rhs = rewrittenLHS, rewrittenOp, rewrittenRHS
		}

		if c, vars, ok := buildNumeric(lhs, op, rhs, domains); ok {
			return CompiledConstraint{Constraint: c, Variables: vars}, nil
		}
		if c, vars, ok := buildVariableLinked(lhs, op, rhs, domains); ok {
			return CompiledConstraint{Constraint: c, Variables: vars}, nil
		}
		if c, vars, ok := buildEquality(lhs, op, rhs, domains); ok {
			return CompiledConstraint{Constraint: c, Variables: vars}, nil
		}
	}

	return buildPredicate(expr, domains, picklable)
}

// buildPredicate is spec.md §4.E step 8: anything the structural matchers
// above didn't recognise is compiled with the safe expression grammar
// (internal/parse/grammar) into a Predicate whose Fn evaluates the parsed
// AST against the candidate assignment.
func buildPredicate(expr string, domains map[string]*domain.Domain[any], picklable bool) (CompiledConstraint, error) {
	ast, err := grammar.Parse(expr)
	if err != nil {
		return CompiledConstraint{}, fmt.Errorf("parse: compile constraint %q: %w", expr, err)
	}

	var vars []string
	for _, name := range grammar.Variables(ast) {
		if isVarName(name, domains) {
			vars = append(vars, name)
		}
	}

	fn := func(args []any) bool {
		bindings := make(map[string]float64, len(vars))
		for i, name := range vars {
			f, ok := toFloat64(args[i])
			if !ok {
				return false
			}
			bindings[name] = f
		}
		result, err := grammar.Eval(ast, bindings)
		if err != nil {
			return false
		}
		switch v := result.(type) {
		case bool:
			return v
		case float64:
			return v != 0
		default:
			return false
		}
	}

	source := ""
	if picklable {
		source = expr
	}
	return CompiledConstraint{
		Constraint: constraint.NewPredicate[string](fn),
		Variables:  vars,
		Source:     source,
	}, nil
}

// toFloat64 mirrors internal/constraint's unexported numeric coercion; it's
// small enough to duplicate here rather than export it across a package
// boundary this package otherwise has no need to depend on.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
