package parse

import (
	"math"
	"strings"

	"github.com/gitrdm/csp/internal/constraint"
	"github.com/gitrdm/csp/internal/domain"
	"github.com/gitrdm/csp/internal/parse/grammar"
)

// comparators recognised by numeric/variable-linked matching, longest first
// so "<=" is tried before "<".
var comparatorTokens = []string{"<=", ">=", "==", "!=", "<", ">"}

// findSingleComparator returns the one comparator in expr and its byte
// range, or ok=false if expr contains zero or more than one.
func findSingleComparator(expr string) (op string, start, end int, ok bool) {
	found := -1
	var foundOp string
	for i := 0; i < len(expr); i++ {
		for _, tok := range comparatorTokens {
			if strings.HasPrefix(expr[i:], tok) {
				if found != -1 {
					return "", 0, 0, false
				}
				found = i
				foundOp = tok
				i += len(tok) - 1
				break
			}
		}
	}
	if found == -1 {
		return "", 0, 0, false
	}
	return foundOp, found, found + len(foundOp), true
}

func flipOp(op string) string {
	switch op {
	case "<=":
		return ">="
	case ">=":
		return "<="
	case "<":
		return ">"
	case ">":
		return "<"
	default:
		return op
	}
}

// tryConst evaluates expr as a pure arithmetic literal (no identifiers) via
// the grammar package -- the same "safe expression evaluator" spec.md §9
// requires for the fallback predicate, reused here to recognise a constant
// side without a second, separate arithmetic parser.
func tryConst(expr string) (float64, bool) {
	ast, err := grammar.Parse(expr)
	if err != nil {
		return 0, false
	}
	v, err := grammar.Eval(ast, map[string]float64{})
	if err != nil {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// splitVarChain recognises a uniform + chain or uniform * chain of distinct
// declared variable names, spec.md §4.E steps 5-6. Mixed + and * in the same
// chain is rejected (the documented resolution of the parser's "mixed
// operator" open question) and falls through to the predicate fallback.
func splitVarChain(expr string, domains map[string]*domain.Domain[any]) (vars []string, sep byte, ok bool) {
	expr = strings.TrimSpace(expr)
	if isVarName(expr, domains) {
		return []string{expr}, '+', true
	}
	hasPlus := strings.Contains(expr, "+")
	hasStar := strings.Contains(expr, "*")
	if hasPlus == hasStar {
		return nil, 0, false
	}
	sep = '+'
	if hasStar {
		sep = '*'
	}
	parts := strings.Split(expr, string(sep))
	seen := make(map[string]bool, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if !isVarName(p, domains) || seen[p] {
			return nil, 0, false
		}
		seen[p] = true
		out = append(out, p)
	}
	if len(out) < 2 {
		return nil, 0, false
	}
	return out, sep, true
}

// boundKind classifies a normalized comparator into the three shapes the
// numeric constraint families support.
type boundKind int

const (
	boundMax boundKind = iota
	boundMin
	boundExact
)

// normalizeComparator folds strict < / > into the nearest representable
// non-strict bound, spec.md §4.E step 5: integer bounds shift by 1, general
// (float) bounds shift by a small epsilon. == is left exact; != has no
// numeric-constraint representation and must be rejected by the caller.
func normalizeComparator(op string, bound float64) (kind boundKind, adjusted float64, ok bool) {
	const eps = 1e-9
	integer := bound == math.Trunc(bound)
	switch op {
	case "<=":
		return boundMax, bound, true
	case ">=":
		return boundMin, bound, true
	case "==":
		return boundExact, bound, true
	case "<":
		if integer {
			return boundMax, bound - 1, true
		}
		return boundMax, bound - eps, true
	case ">":
		if integer {
			return boundMin, bound + 1, true
		}
		return boundMin, bound + eps, true
	default:
		return 0, 0, false
	}
}

// buildNumeric implements spec.md §4.E step 5: one side of a single
// comparator is a pure constant, the other a uniform +/* chain of declared
// variables. It returns a MaxSum/MinSum/ExactSum or MaxProd/MinProd/
// ExactProd constraint over that chain.
func buildNumeric(lhs, op, rhs string, domains map[string]*domain.Domain[any]) (constraint.Constraint[string], []string, bool) {
	varSide, effectiveOp, bound, ok := splitConstSide(lhs, op, rhs)
	if !ok {
		return nil, nil, false
	}
	vars, sep, ok := splitVarChain(varSide, domains)
	if !ok {
		return nil, nil, false
	}
	kind, adjusted, ok := normalizeComparator(effectiveOp, bound)
	if !ok {
		return nil, nil, false
	}
	isProd := sep == '*'
	var c constraint.Constraint[string]
	switch {
	case !isProd && kind == boundMax:
		c = constraint.NewMaxSum[string](adjusted, nil)
	case !isProd && kind == boundMin:
		c = constraint.NewMinSum[string](adjusted, nil)
	case !isProd && kind == boundExact:
		c = constraint.NewExactSum[string](adjusted, nil)
	case isProd && kind == boundMax:
		c = constraint.NewMaxProd[string](adjusted)
	case isProd && kind == boundMin:
		c = constraint.NewMinProd[string](adjusted)
	case isProd && kind == boundExact:
		c = constraint.NewExactProd[string](adjusted)
	default:
		return nil, nil, false
	}
	return c, vars, true
}

// splitConstSide determines which side of op is a pure constant, returning
// the other side as the variable expression and op normalized so that the
// variable side is always on the left (flipping op when the constant came
// first).
func splitConstSide(lhs, op, rhs string) (varSide, effectiveOp string, bound float64, ok bool) {
	if v, isConst := tryConst(rhs); isConst {
		return lhs, op, v, true
	}
	if v, isConst := tryConst(lhs); isConst {
		return rhs, flipOp(op), v, true
	}
	return "", "", 0, false
}

// buildVariableLinked implements spec.md §4.E step 6: neither side is a
// constant, but one side is a single declared variable (the target) and the
// other a uniform +/* chain of the remaining variables (the sources). Only
// <=, >=, and == are supported for variable-linked constraints -- the
// target's bound is read at solve time from its own assignment, so there is
// no fixed literal to apply a strict-inequality epsilon/± 1 shift against.
// A strict < or > here falls through to the predicate fallback instead.
func buildVariableLinked(lhs, op, rhs string, domains map[string]*domain.Domain[any]) (constraint.Constraint[string], []string, bool) {
	if op != "<=" && op != ">=" && op != "==" {
		return nil, nil, false
	}
	if c, vars, ok := linkedFromSides(lhs, op, rhs, domains); ok {
		return c, vars, true
	}
	if c, vars, ok := linkedFromSides(rhs, flipOp(op), lhs, domains); ok {
		return c, vars, true
	}
	return nil, nil, false
}

// linkedFromSides treats target as the single-variable side and chain as
// the multi-variable side, with op already oriented target-op-chain.
func linkedFromSides(target, op, chain string, domains map[string]*domain.Domain[any]) (constraint.Constraint[string], []string, bool) {
	target = strings.TrimSpace(target)
	if !isVarName(target, domains) {
		return nil, nil, false
	}
	sources, sep, ok := splitVarChain(chain, domains)
	if !ok {
		return nil, nil, false
	}
	for _, s := range sources {
		if s == target {
			return nil, nil, false
		}
	}
	isProd := sep == '*'
	vars := append([]string{target}, sources...)

	// "target <= chain" means chain's sum/product is at least target (Min);
	// "target >= chain" means it's at most target (Max); VariableLinkedMaxSum
	// etc. are defined as sum(Sources) <= value(Target), so the relation
	// inverts relative to how target reads on the page.
	var c constraint.Constraint[string]
	switch {
	case !isProd && op == "<=":
		c = constraint.NewVariableLinkedMinSum[string](target, sources, nil)
	case !isProd && op == ">=":
		c = constraint.NewVariableLinkedMaxSum[string](target, sources, nil)
	case !isProd && op == "==":
		c = constraint.NewVariableLinkedExactSum[string](target, sources, nil)
	case isProd && op == "<=":
		c = constraint.NewVariableLinkedMinProd[string](target, sources)
	case isProd && op == ">=":
		c = constraint.NewVariableLinkedMaxProd[string](target, sources)
	case isProd && op == "==":
		c = constraint.NewVariableLinkedExactProd[string](target, sources)
	default:
		return nil, nil, false
	}
	return c, vars, true
}
