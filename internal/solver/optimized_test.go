package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/csp/internal/constraint"
)

func TestOptimizedBacktrackingGetSolutionsMatchesIterative(t *testing.T) {
	domains, records, vc, order := twoVarAllDifferent(t)
	s := NewOptimizedBacktrackingSolver[string]()
	sols, err := s.GetSolutions(domains, records, vc, order)
	require.NoError(t, err)
	require.Len(t, sols, 2)
	assert.True(t, hasAssignment(sols, constraint.Assignment[string]{"a": 1, "b": 2}))
	assert.True(t, hasAssignment(sols, constraint.Assignment[string]{"a": 2, "b": 1}))
}

func TestOptimizedBacktrackingBruteForceFastPath(t *testing.T) {
	order := []string{"a", "b"}
	domains := constraint.Domains[string]{
		"a": mustDomain(t, 1, 2),
		"b": mustDomain(t, "x", "y"),
	}
	s := NewOptimizedBacktrackingSolver[string]()
	sols, err := s.GetSolutions(domains, nil, nil, order)
	require.NoError(t, err)
	assert.Len(t, sols, 4)
}

func TestBruteForceEmptyOrder(t *testing.T) {
	assert.Nil(t, BruteForce[string](constraint.Domains[string]{}, nil))
}

func TestGetSolutionsListSkipsForwardCheckButFindsSolutions(t *testing.T) {
	domains, records, vc, order := twoVarAllDifferent(t)
	s := NewOptimizedBacktrackingSolver[string]()
	sols, err := s.GetSolutionsList(domains, records, vc, order)
	require.NoError(t, err)
	require.Len(t, sols, 2)
	assert.True(t, hasAssignment(sols, constraint.Assignment[string]{"a": 1, "b": 2}))
	assert.True(t, hasAssignment(sols, constraint.Assignment[string]{"a": 2, "b": 1}))
}

func TestGetSolutionsListBruteForceFastPath(t *testing.T) {
	order := []string{"a"}
	domains := constraint.Domains[string]{"a": mustDomain(t, 1, 2, 3)}
	s := NewOptimizedBacktrackingSolver[string]()
	sols, err := s.GetSolutionsList(domains, nil, nil, order)
	require.NoError(t, err)
	assert.Len(t, sols, 3)
}
