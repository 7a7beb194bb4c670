package parse

import (
	"strings"

	"github.com/gitrdm/csp/internal/constraint"
	"github.com/gitrdm/csp/internal/domain"
)

// buildEquality implements spec.md §4.E step 7: a single == or != between
// two bare variable names emits AllEqual or AllDifferent over exactly those
// two variables. Chains of equality over three or more variables should be
// written as separate pairwise expressions (dedup already makes repeats
// free) or added directly via the Problem API; this pass only recognises
// the direct two-variable form the parser pipeline is expected to see.
func buildEquality(lhs, op, rhs string, domains map[string]*domain.Domain[any]) (constraint.Constraint[string], []string, bool) {
	if op != "==" && op != "!=" {
		return nil, nil, false
	}
	l, r := strings.TrimSpace(lhs), strings.TrimSpace(rhs)
	if !isVarName(l, domains) || !isVarName(r, domains) || l == r {
		return nil, nil, false
	}
	vars := []string{l, r}
	if op == "==" {
		return constraint.NewAllEqual[string](), vars, true
	}
	return constraint.NewAllDifferent[string](), vars, true
}
