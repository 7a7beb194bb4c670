package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/csp/internal/constraint"
)

func TestFindSingleComparatorPicksLongestToken(t *testing.T) {
	op, start, end, ok := findSingleComparator("x<=y")
	require.True(t, ok)
	assert.Equal(t, "<=", op)
	assert.Equal(t, "x", "x<=y"[:start])
	assert.Equal(t, "y", "x<=y"[end:])
}

func TestFindSingleComparatorRejectsMultiple(t *testing.T) {
	_, _, _, ok := findSingleComparator("x <= y <= z")
	assert.False(t, ok)
}

func TestFindSingleComparatorRejectsNone(t *testing.T) {
	_, _, _, ok := findSingleComparator("x + y")
	assert.False(t, ok)
}

func TestFlipOp(t *testing.T) {
	assert.Equal(t, ">=", flipOp("<="))
	assert.Equal(t, "<=", flipOp(">="))
	assert.Equal(t, ">", flipOp("<"))
	assert.Equal(t, "<", flipOp(">"))
	assert.Equal(t, "==", flipOp("=="))
}

func TestTryConst(t *testing.T) {
	v, ok := tryConst("3 + 4")
	require.True(t, ok)
	assert.Equal(t, 7.0, v)

	_, ok = tryConst("x + 4")
	assert.False(t, ok)
}

func TestSplitVarChainSingleVariable(t *testing.T) {
	domains := oneValDomains("x")
	vars, sep, ok := splitVarChain("x", domains)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, vars)
	assert.Equal(t, byte('+'), sep)
}

func TestSplitVarChainSumChain(t *testing.T) {
	domains := oneValDomains("x", "y", "z")
	vars, sep, ok := splitVarChain("x + y + z", domains)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y", "z"}, vars)
	assert.Equal(t, byte('+'), sep)
}

func TestSplitVarChainProductChain(t *testing.T) {
	domains := oneValDomains("x", "y")
	vars, sep, ok := splitVarChain("x*y", domains)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, vars)
	assert.Equal(t, byte('*'), sep)
}

func TestSplitVarChainRejectsMixedOperators(t *testing.T) {
	domains := oneValDomains("x", "y", "z")
	_, _, ok := splitVarChain("x + y*z", domains)
	assert.False(t, ok)
}

func TestSplitVarChainRejectsUnknownVariable(t *testing.T) {
	domains := oneValDomains("x", "y")
	_, _, ok := splitVarChain("x + w", domains)
	assert.False(t, ok)
}

func TestSplitVarChainRejectsRepeatedVariable(t *testing.T) {
	domains := oneValDomains("x", "y")
	_, _, ok := splitVarChain("x + x", domains)
	assert.False(t, ok)
}

func TestNormalizeComparatorFoldsStrictIntegerBound(t *testing.T) {
	kind, adjusted, ok := normalizeComparator("<", 5)
	require.True(t, ok)
	assert.Equal(t, boundMax, kind)
	assert.Equal(t, 4.0, adjusted)

	kind, adjusted, ok = normalizeComparator(">", 5)
	require.True(t, ok)
	assert.Equal(t, boundMin, kind)
	assert.Equal(t, 6.0, adjusted)
}

func TestNormalizeComparatorLeavesNonStrictAlone(t *testing.T) {
	kind, adjusted, ok := normalizeComparator("<=", 5)
	require.True(t, ok)
	assert.Equal(t, boundMax, kind)
	assert.Equal(t, 5.0, adjusted)

	kind, adjusted, ok = normalizeComparator("==", 5)
	require.True(t, ok)
	assert.Equal(t, boundExact, kind)
	assert.Equal(t, 5.0, adjusted)
}

func TestNormalizeComparatorRejectsNotEqual(t *testing.T) {
	_, _, ok := normalizeComparator("!=", 5)
	assert.False(t, ok)
}

func TestBuildNumericSumLessEqual(t *testing.T) {
	domains := oneValDomains("x", "y")
	c, vars, ok := buildNumeric("x + y", "<=", "10", domains)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, vars)
	_, isMaxSum := c.(*constraint.MaxSum[string])
	assert.True(t, isMaxSum)
}

func TestBuildNumericConstOnLeftFlipsOperator(t *testing.T) {
	domains := oneValDomains("x", "y")
	c, vars, ok := buildNumeric("10", ">=", "x + y", domains)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, vars)
	_, isMaxSum := c.(*constraint.MaxSum[string])
	assert.True(t, isMaxSum)
}

func TestBuildNumericProductExact(t *testing.T) {
	domains := oneValDomains("x", "y")
	c, vars, ok := buildNumeric("x*y", "==", "12", domains)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, vars)
	_, isExactProd := c.(*constraint.ExactProd[string])
	assert.True(t, isExactProd)
}

func TestBuildNumericRejectsWhenNeitherSideIsConst(t *testing.T) {
	domains := oneValDomains("x", "y")
	_, _, ok := buildNumeric("x", "<=", "y", domains)
	assert.False(t, ok)
}

func TestBuildVariableLinkedTargetOnLeft(t *testing.T) {
	domains := oneValDomains("t", "a", "b")
	c, vars, ok := buildVariableLinked("t", ">=", "a + b", domains)
	require.True(t, ok)
	assert.Equal(t, []string{"t", "a", "b"}, vars)
	_, isMax := c.(*constraint.VariableLinkedMaxSum[string])
	assert.True(t, isMax)
}

func TestBuildVariableLinkedTargetOnRight(t *testing.T) {
	domains := oneValDomains("t", "a", "b")
	c, vars, ok := buildVariableLinked("a + b", "<=", "t", domains)
	require.True(t, ok)
	assert.Equal(t, []string{"t", "a", "b"}, vars)
	_, isMax := c.(*constraint.VariableLinkedMaxSum[string])
	assert.True(t, isMax)
}

func TestBuildVariableLinkedRejectsStrictInequality(t *testing.T) {
	domains := oneValDomains("t", "a", "b")
	_, _, ok := buildVariableLinked("t", ">", "a + b", domains)
	assert.False(t, ok)
}

func TestBuildVariableLinkedRejectsTargetAmongSources(t *testing.T) {
	domains := oneValDomains("t", "a")
	_, _, ok := buildVariableLinked("t", ">=", "t + a", domains)
	assert.False(t, ok)
}
