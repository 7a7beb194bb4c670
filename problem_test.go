package csp

import (
	"sort"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/csp/internal/constraint"
)

func TestAddVariableRejectsDuplicate(t *testing.T) {
	p := NewProblem[string]()
	require.NoError(t, p.AddVariable("x", []any{1, 2, 3}))
	err := p.AddVariable("x", []any{4, 5})
	assert.ErrorIs(t, err, ErrDuplicateVariable)
}

func TestAddVariableRejectsEmptyDomain(t *testing.T) {
	p := NewProblem[string]()
	err := p.AddVariable("x", nil)
	assert.ErrorIs(t, err, ErrEmptyDomain)
}

func TestAddVariableDomainClonesInput(t *testing.T) {
	p := NewProblem[string]()
	d, err := NewDomain([]any{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, p.AddVariableDomain("x", d))

	d.Remove(1)
	sol, err := p.GetSolution()
	require.NoError(t, err)
	require.NotNil(t, sol)
	assert.Contains(t, []any{1, 2, 3}, sol["x"])
}

func TestAddVariablesShorthand(t *testing.T) {
	p := NewProblem[string]()
	require.NoError(t, p.AddVariables([]string{"a", "b", "c"}, []any{0, 1}))
	sols, err := p.GetSolutions()
	require.NoError(t, err)
	assert.Len(t, sols, 8)
}

func TestAddConstraintAcceptsThreeForms(t *testing.T) {
	p := NewProblem[string]()
	require.NoError(t, p.AddVariables([]string{"a", "b"}, []any{1, 2}))

	require.NoError(t, p.AddConstraint(constraint.NewAllDifferent[string](), "a", "b"))
	p2 := NewProblem[string]()
	require.NoError(t, p2.AddVariables([]string{"a", "b"}, []any{1, 2}))
	require.NoError(t, p2.AddConstraint(func(args []any) bool { return args[0] != args[1] }, "a", "b"))
	p3 := NewProblem[string]()
	require.NoError(t, p3.AddVariables([]string{"a", "b"}, []any{1, 2}))
	require.NoError(t, p3.AddConstraint("a != b"))

	for _, prob := range []*Problem[string]{p, p2, p3} {
		sols, err := prob.GetSolutions()
		require.NoError(t, err)
		assert.Len(t, sols, 2)
	}
}

func TestAddConstraintRejectsInvalidType(t *testing.T) {
	p := NewProblem[string]()
	err := p.AddConstraint(42)
	assert.ErrorIs(t, err, ErrInvalidConstraint)
}

func TestGetSolutionsAllDifferentTwoVariables(t *testing.T) {
	p := NewProblem[string]()
	require.NoError(t, p.AddVariables([]string{"a", "b"}, []any{1, 2}))
	require.NoError(t, p.AddConstraint(constraint.NewAllDifferent[string](), "a", "b"))

	sols, err := p.GetSolutions()
	require.NoError(t, err)

	got := make([]map[string]any, len(sols))
	for i, s := range sols {
		got[i] = map[string]any(s)
	}
	sort.Slice(got, func(i, j int) bool { return got[i]["a"].(int) < got[j]["a"].(int) })
	want := []map[string]any{
		{"a": 1, "b": 2},
		{"a": 2, "b": 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("solutions mismatch (-want +got):\n%s", diff)
	}
}

func TestGetSolutionExactSumWithMultipliers(t *testing.T) {
	p := NewProblem[string]()
	require.NoError(t, p.AddVariables([]string{"a", "b"}, []any{1, 2, 3}))
	// 2a + b == 8: (a=3,b=2) is one solution
	require.NoError(t, p.AddConstraint(constraint.NewExactSum[string](8, []float64{2, 1}), "a", "b"))

	sols, err := p.GetSolutions()
	require.NoError(t, err)
	require.NotEmpty(t, sols)
	for _, s := range sols {
		assert.Equal(t, 8.0, 2*float64(s["a"].(int))+float64(s["b"].(int)))
	}
}

func TestGetSolutionsMaxProdZeroBound(t *testing.T) {
	p := NewProblem[string]()
	require.NoError(t, p.AddVariables([]string{"a", "b"}, []any{-1, 0, 1}))
	require.NoError(t, p.AddConstraint(constraint.NewMaxProd[string](0), "a", "b"))

	sols, err := p.GetSolutions()
	require.NoError(t, err)
	require.NotEmpty(t, sols)
	for _, s := range sols {
		assert.LessOrEqual(t, float64(s["a"].(int))*float64(s["b"].(int)), 0.0)
	}
}

func TestGetSolutionsParserProducedNumericConstraint(t *testing.T) {
	p := NewProblem[string]()
	require.NoError(t, p.AddVariables([]string{"x", "y"}, []any{1, 2, 3, 4}))
	require.NoError(t, p.AddConstraint("x + y <= 5"))

	sols, err := p.GetSolutions()
	require.NoError(t, err)
	require.NotEmpty(t, sols)
	for _, s := range sols {
		assert.LessOrEqual(t, float64(s["x"].(int))+float64(s["y"].(int)), 5.0)
	}
}

func TestGetSolutionsParserProducedVariableLinkedConstraint(t *testing.T) {
	p := NewProblem[string]()
	require.NoError(t, p.AddVariable("t", []any{2, 3, 4, 5, 6}))
	require.NoError(t, p.AddVariables([]string{"a", "b"}, []any{1, 2, 3}))
	require.NoError(t, p.AddConstraint("t >= a + b"))

	sols, err := p.GetSolutions()
	require.NoError(t, err)
	require.NotEmpty(t, sols)
	for _, s := range sols {
		target := float64(s["t"].(int))
		sum := float64(s["a"].(int)) + float64(s["b"].(int))
		assert.GreaterOrEqual(t, target, sum)
	}
}

func TestGetSolutionsOrderedListAndListDict(t *testing.T) {
	p := NewProblem[string]()
	require.NoError(t, p.AddVariables([]string{"a", "b"}, []any{1, 2}))
	require.NoError(t, p.AddConstraint(constraint.NewAllDifferent[string](), "a", "b"))

	tuples, err := p.GetSolutionsOrderedList([]string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, tuples, 2)

	list, index, n, err := p.GetSolutionsAsListDict([]string{"a", "b"}, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, index, 2)
	assert.Equal(t, tuples, list)
}

func TestGetSolutionsAsListDictReportsDuplicates(t *testing.T) {
	p := NewProblem[string]()
	require.NoError(t, p.AddVariable("a", []any{1, 2}))
	require.NoError(t, p.AddVariable("b", []any{9}))

	_, _, _, err := p.GetSolutionsAsListDict([]string{"a"}, true)
	require.NoError(t, err)

	// two variables, but ordering only by "b" (always 9) means every full
	// solution collapses onto the same one-element tuple.
	_, _, n, err := p.GetSolutionsAsListDict([]string{"b"}, true)
	assert.ErrorIs(t, err, ErrDuplicateSolutions)
	assert.Equal(t, 2, n)
}

func TestCompileDetectsEmptyDomainAfterPreprocess(t *testing.T) {
	p := NewProblem[string]()
	require.NoError(t, p.AddVariable("a", []any{1, 2, 3}))
	require.NoError(t, p.AddConstraint(constraint.NewInSet[string](99), "a"))

	sol, err := p.GetSolution()
	require.NoError(t, err)
	assert.Nil(t, sol)

	sols, err := p.GetSolutions()
	require.NoError(t, err)
	assert.Empty(t, sols)
}

func TestGetSolutionIterStopsEarly(t *testing.T) {
	p := NewProblem[string]()
	require.NoError(t, p.AddVariables([]string{"a", "b"}, []any{1, 2}))
	require.NoError(t, p.AddConstraint(constraint.NewAllDifferent[string](), "a", "b"))

	iter, err := p.GetSolutionIter()
	require.NoError(t, err)
	count := 0
	iter(func(Assignment[string]) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

// TestGetSolutionIterStopsSearchEarly asserts Problem's default solver truly
// stops searching once the caller stops ranging, rather than running the
// full search to completion and merely ranging over the result afterward.
func TestGetSolutionIterStopsSearchEarly(t *testing.T) {
	p := NewProblem[string]()
	vars := []string{"a", "b", "c"}
	values := make([]any, 0, 20)
	for i := 1; i <= 20; i++ {
		values = append(values, i)
	}
	for _, v := range vars {
		require.NoError(t, p.AddVariable(v, values))
	}

	var calls int32
	require.NoError(t, p.AddConstraint(func(args []any) bool {
		atomic.AddInt32(&calls, 1)
		return true
	}, vars...))

	iter, err := p.GetSolutionIter()
	require.NoError(t, err)
	yielded := 0
	iter(func(Assignment[string]) bool {
		yielded++
		return false
	})
	assert.Equal(t, 1, yielded)
	// 20*20*20 = 8000 combinations total; a true generator stops long before
	// exhausting them.
	assert.Less(t, int(atomic.LoadInt32(&calls)), 50)
}

func TestExplainReportsViolatingConstraints(t *testing.T) {
	p := NewProblem[string]()
	require.NoError(t, p.AddVariables([]string{"a", "b"}, []any{1, 2}))
	require.NoError(t, p.AddConstraint(constraint.NewAllDifferent[string](), "a", "b"))

	violations, err := p.Explain(Assignment[string]{"a": 1, "b": 1})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.ElementsMatch(t, []string{"a", "b"}, violations[0].Variables)

	violations, err = p.Explain(Assignment[string]{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestSetSolverAndGetSolver(t *testing.T) {
	p := NewProblem[string]()
	original := p.GetSolver()
	require.NotNil(t, original)

	replacement := NewProblem[string]().GetSolver()
	p.SetSolver(replacement)
	assert.Same(t, replacement, p.GetSolver())
}
