package constraint

import (
	"testing"

	"github.com/gitrdm/csp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDomain(t *testing.T, values ...any) *domain.Domain[any] {
	t.Helper()
	d, err := domain.New(values)
	require.NoError(t, err)
	return d
}

func TestAllDifferentCheck(t *testing.T) {
	c := NewAllDifferent[string]()
	vars := []string{"a", "b", "c"}
	domains := Domains[string]{
		"a": mustDomain(t, 1, 2, 3),
		"b": mustDomain(t, 1, 2, 3),
		"c": mustDomain(t, 1, 2, 3),
	}

	assert.True(t, c.Check(vars, domains, Assignment[string]{"a": 1, "b": 2}, false))
	assert.False(t, c.Check(vars, domains, Assignment[string]{"a": 1, "b": 1}, false))
}

func TestAllDifferentForwardCheckHidesConflicts(t *testing.T) {
	c := NewAllDifferent[string]()
	vars := []string{"a", "b"}
	domains := Domains[string]{
		"a": mustDomain(t, 1, 2, 3),
		"b": mustDomain(t, 1, 2, 3),
	}

	ok := c.Check(vars, domains, Assignment[string]{"a": 1}, true)
	require.True(t, ok)
	assert.False(t, domains["b"].Has(1))
	assert.True(t, domains["b"].Has(2))
	assert.True(t, domains["b"].Has(3))
}

func TestAllDifferentForwardCheckEmptiesDomainFails(t *testing.T) {
	c := NewAllDifferent[string]()
	vars := []string{"a", "b"}
	domains := Domains[string]{
		"a": mustDomain(t, 1),
		"b": mustDomain(t, 1),
	}
	assert.False(t, c.Check(vars, domains, Assignment[string]{"a": 1}, true))
}

func TestAllEqualCheck(t *testing.T) {
	c := NewAllEqual[string]()
	vars := []string{"a", "b", "c"}
	domains := Domains[string]{
		"a": mustDomain(t, 1, 2),
		"b": mustDomain(t, 1, 2),
		"c": mustDomain(t, 1, 2),
	}

	assert.True(t, c.Check(vars, domains, Assignment[string]{"a": 1, "b": 1}, false))
	assert.False(t, c.Check(vars, domains, Assignment[string]{"a": 1, "b": 2}, false))
}

func TestAllEqualForwardCheckHidesMismatches(t *testing.T) {
	c := NewAllEqual[string]()
	vars := []string{"a", "b"}
	domains := Domains[string]{
		"a": mustDomain(t, 1, 2),
		"b": mustDomain(t, 1, 2),
	}
	ok := c.Check(vars, domains, Assignment[string]{"a": 1}, true)
	require.True(t, ok)
	assert.True(t, domains["b"].Has(1))
	assert.False(t, domains["b"].Has(2))
}
