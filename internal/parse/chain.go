package parse

import (
	"regexp"
	"strings"
)

var (
	wordAnd  = regexp.MustCompile(`(?i)\band\b`)
	wordOr   = regexp.MustCompile(`(?i)\bor\b`)
	chainOps = regexp.MustCompile(`<=|>=|<|>`)
)

// splitChains implements spec.md §4.E step 2: when an expression contains no
// "and"/"or" but two or more of <=|>=|<|>, it is split at each comparator
// into a conjunction of binary inequalities -- "3 <= x*y < 9 <= z" becomes
// ["3 <= x*y", "x*y < 9", "9 <= z"]. == and != never trigger chain splitting;
// they stay with equality/numeric matching downstream.
func splitChains(expr string) []string {
	if wordAnd.MatchString(expr) || wordOr.MatchString(expr) {
		return []string{expr}
	}
	locs := chainOps.FindAllStringIndex(expr, -1)
	if len(locs) < 2 {
		return []string{expr}
	}

	terms := make([]string, 0, len(locs)+1)
	ops := make([]string, 0, len(locs))
	prev := 0
	for _, loc := range locs {
		terms = append(terms, strings.TrimSpace(expr[prev:loc[0]]))
		ops = append(ops, expr[loc[0]:loc[1]])
		prev = loc[1]
	}
	terms = append(terms, strings.TrimSpace(expr[prev:]))

	out := make([]string, 0, len(ops))
	for i, op := range ops {
		out = append(out, terms[i]+" "+op+" "+terms[i+1])
	}
	return out
}
