package parse

import "strings"

// dedup strips surrounding whitespace from every expression and keeps only
// the first occurrence of each, preserving order -- spec.md §4.E step 1.
func dedup(exprs []string) []string {
	seen := make(map[string]bool, len(exprs))
	out := make([]string, 0, len(exprs))
	for _, e := range exprs {
		trimmed := strings.TrimSpace(e)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		out = append(out, trimmed)
	}
	return out
}
