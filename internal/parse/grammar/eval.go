package grammar

import (
	"fmt"
	"math"
)

// round10 mirrors internal/constraint's float-rounding contract (spec.md
// §4.B/§9): every float arithmetic step that feeds a comparison is rounded
// to 10 fractional digits first. Duplicated here rather than imported to
// keep this grammar package free of a dependency on internal/constraint.
func round10(x float64) float64 {
	const scale = 1e10
	return math.Round(x*scale) / scale
}

// Eval walks a parsed Expression against variable bindings and returns
// either a bool (the expression contained a comparison or and/or) or a
// float64 (a bare arithmetic expression with no comparator).
func Eval(e *Expression, vars map[string]float64) (any, error) {
	return evalOr(e.Or, vars)
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	default:
		return false
	}
}

func evalOr(o *OrExpr, vars map[string]float64) (any, error) {
	left, err := evalAnd(o.Left, vars)
	if err != nil {
		return nil, err
	}
	if len(o.Rest) == 0 {
		return left, nil
	}
	result := truthy(left)
	for _, r := range o.Rest {
		v, err := evalAnd(r, vars)
		if err != nil {
			return nil, err
		}
		result = result || truthy(v)
	}
	return result, nil
}

func evalAnd(a *AndExpr, vars map[string]float64) (any, error) {
	left, err := evalComparison(a.Left, vars)
	if err != nil {
		return nil, err
	}
	if len(a.Rest) == 0 {
		return left, nil
	}
	result := truthy(left)
	for _, r := range a.Rest {
		v, err := evalComparison(r, vars)
		if err != nil {
			return nil, err
		}
		result = result && truthy(v)
	}
	return result, nil
}

func evalComparison(c *Comparison, vars map[string]float64) (any, error) {
	left, err := evalArith(c.Left, vars)
	if err != nil {
		return nil, err
	}
	if c.Op == nil {
		return left, nil
	}
	right, err := evalArith(c.Right, vars)
	if err != nil {
		return nil, err
	}
	left, right = round10(left), round10(right)
	switch *c.Op {
	case "<=":
		return left <= right, nil
	case ">=":
		return left >= right, nil
	case "==":
		return left == right, nil
	case "!=":
		return left != right, nil
	case "<":
		return left < right, nil
	case ">":
		return left > right, nil
	}
	return nil, fmt.Errorf("grammar: unknown comparator %q", *c.Op)
}

func evalArith(a *Arith, vars map[string]float64) (float64, error) {
	sum, err := evalTerm(a.Left, vars)
	if err != nil {
		return 0, err
	}
	for _, op := range a.Rest {
		v, err := evalTerm(op.Term, vars)
		if err != nil {
			return 0, err
		}
		switch op.Op {
		case "+":
			sum = round10(sum + v)
		case "-":
			sum = round10(sum - v)
		}
	}
	return sum, nil
}

func evalTerm(t *Term, vars map[string]float64) (float64, error) {
	prod, err := evalFactor(t.Left, vars)
	if err != nil {
		return 0, err
	}
	for _, op := range t.Rest {
		v, err := evalFactor(op.Factor, vars)
		if err != nil {
			return 0, err
		}
		switch op.Op {
		case "*":
			prod = round10(prod * v)
		case "/":
			if v == 0 {
				return 0, fmt.Errorf("grammar: division by zero")
			}
			prod = round10(prod / v)
		}
	}
	return prod, nil
}

func evalFactor(f *Factor, vars map[string]float64) (float64, error) {
	var v float64
	switch {
	case f.Number != nil:
		v = *f.Number
	case f.Ident != nil:
		val, ok := vars[*f.Ident]
		if !ok {
			return 0, fmt.Errorf("grammar: unbound variable %q", *f.Ident)
		}
		v = val
	case f.Sub != nil:
		inner, err := Eval(f.Sub, vars)
		if err != nil {
			return 0, err
		}
		f64, ok := inner.(float64)
		if !ok {
			return 0, fmt.Errorf("grammar: expected numeric sub-expression, got boolean")
		}
		v = f64
	default:
		return 0, fmt.Errorf("grammar: empty factor")
	}
	if f.Negative {
		v = -v
	}
	return v, nil
}

// Variables returns every identifier referenced anywhere in e, for callers
// that need to know an expression's free variables without a second parse
// pass (e.g. to build the ordered argument list a compiled predicate needs).
func Variables(e *Expression) []string {
	seen := map[string]bool{}
	var order []string
	var walkFactor func(f *Factor)
	var walkExpr func(ex *Expression)

	walkFactor = func(f *Factor) {
		if f == nil {
			return
		}
		if f.Ident != nil {
			if !seen[*f.Ident] {
				seen[*f.Ident] = true
				order = append(order, *f.Ident)
			}
		}
		if f.Sub != nil {
			walkExpr(f.Sub)
		}
	}
	walkTerm := func(t *Term) {
		if t == nil {
			return
		}
		walkFactor(t.Left)
		for _, op := range t.Rest {
			walkFactor(op.Factor)
		}
	}
	walkArith := func(a *Arith) {
		if a == nil {
			return
		}
		walkTerm(a.Left)
		for _, op := range a.Rest {
			walkTerm(op.Term)
		}
	}
	walkComparison := func(c *Comparison) {
		if c == nil {
			return
		}
		walkArith(c.Left)
		walkArith(c.Right)
	}
	walkAnd := func(a *AndExpr) {
		if a == nil {
			return
		}
		walkComparison(a.Left)
		for _, c := range a.Rest {
			walkComparison(c)
		}
	}
	walkExpr = func(ex *Expression) {
		if ex == nil || ex.Or == nil {
			return
		}
		walkAnd(ex.Or.Left)
		for _, a := range ex.Or.Rest {
			walkAnd(a)
		}
	}

	walkExpr(e)
	return order
}
