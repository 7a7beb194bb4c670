package solver

import (
	"testing"

	"github.com/gitrdm/csp/internal/constraint"
	"github.com/gitrdm/csp/internal/domain"
)

func mustDomain(t *testing.T, values ...any) *domain.Domain[any] {
	t.Helper()
	d, err := domain.New(values)
	if err != nil {
		t.Fatalf("domain.New: %v", err)
	}
	return d
}

// buildVConstraints indexes records by every variable they touch, mirroring
// Problem.compile's own indexing.
func buildVConstraints(records []constraint.Record[string]) map[string][]constraint.Record[string] {
	out := map[string][]constraint.Record[string]{}
	for _, rec := range records {
		for _, v := range rec.Variables {
			out[v] = append(out[v], rec)
		}
	}
	return out
}

func hasAssignment(sols []constraint.Assignment[string], want constraint.Assignment[string]) bool {
	for _, s := range sols {
		if len(s) != len(want) {
			continue
		}
		match := true
		for k, v := range want {
			if s[k] != v {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
