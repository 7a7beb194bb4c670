package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gitrdm/csp/internal/domain"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// isIdent reports whether s is a single identifier token (no operators,
// whitespace, or punctuation).
func isIdent(s string) bool {
	return identRe.MatchString(s)
}

// isVarName reports whether s names one of the problem's declared
// variables.
func isVarName(s string, domains map[string]*domain.Domain[any]) bool {
	if !isIdent(s) {
		return false
	}
	_, ok := domains[s]
	return ok
}

// stripOuterParens removes redundant enclosing parentheses, spec.md §4.E
// step 3, e.g. "(x + y <= 5)" -> "x + y <= 5"; nested redundant layers such
// as "((x))" are stripped one after another until none is left. It only strips
// when the opening paren at index 0 actually matches the closing paren at
// the end (not e.g. "(x+y) <= (z+1)", whose leading '(' closes mid-string).
func stripOuterParens(s string) string {
	for {
		t := strings.TrimSpace(s)
		if len(t) < 2 || t[0] != '(' || t[len(t)-1] != ')' {
			return t
		}
		depth := 0
		matchesEnd := true
		for i, r := range t {
			switch r {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 && i != len(t)-1 {
					matchesEnd = false
				}
			}
		}
		if !matchesEnd {
			return t
		}
		s = t[1 : len(t)-1]
	}
}

var trailingNumTermRe = regexp.MustCompile(`^(.*\S)\s*([+\-*/])\s*(\d+(?:\.\d+)?)$`)

// rewriteInverse implements the common case of spec.md §4.E step 4's
// "inverse-operation rewrite": a side ending in "- k", "+ k", "* k" or
// "/ k" for a trailing numeric literal k is moved across the comparator by
// applying the inverse operation to the other side, so that e.g.
// "x - 2 <= 5" canonicalizes to "x <= 5 + 2" before numeric-constraint
// matching. Full symbolic rewriting of arbitrary nested expressions is out
// of scope here; anything this doesn't canonicalize still falls through to
// the grammar-based predicate fallback, which evaluates it correctly
// regardless, just without being promoted to a specialized bound
// constraint.
func rewriteInverse(lhs, op, rhs string) (string, string, string, bool) {
	if base, inverseOp, num, ok := splitTrailingTerm(lhs); ok {
		return base, op, rhs + " " + inverseOp + " " + num, true
	}
	if base, inverseOp, num, ok := splitTrailingTerm(rhs); ok {
		return lhs + " " + inverseOp + " " + num, op, base, true
	}
	return lhs, op, rhs, false
}

func splitTrailingTerm(side string) (base, inverseOp, num string, ok bool) {
	side = strings.TrimSpace(side)
	m := trailingNumTermRe.FindStringSubmatch(side)
	if m == nil {
		return "", "", "", false
	}
	base, trailingOp, num := m[1], m[2], m[3]
	if _, err := strconv.ParseFloat(num, 64); err != nil {
		return "", "", "", false
	}
	switch trailingOp {
	case "-":
		return base, "+", num, true
	case "+":
		return base, "-", num, true
	case "/":
		return base, "*", num, true
	case "*":
		return base, "/", num, true
	}
	return "", "", "", false
}
