package cspctl

import (
	"fmt"

	"github.com/gitrdm/csp"
	"github.com/gitrdm/csp/internal/constraint"
)

// buildNQueens places n non-attacking queens on an n x n board: one
// variable per row holding its column, AllDifferent over the columns (no
// two queens share a column -- row uniqueness is implicit in the variable
// layout), plus a pairwise predicate per row pair ruling out shared
// diagonals.
func buildNQueens(n int) (*csp.Problem[string], error) {
	if n <= 0 {
		n = 8
	}
	p := csp.NewProblem[string]()

	rows := make([]string, n)
	cols := make([]any, n)
	for i := 0; i < n; i++ {
		rows[i] = fmt.Sprintf("row%d", i)
		cols[i] = i
	}
	if err := p.AddVariables(rows, cols); err != nil {
		return nil, err
	}
	if err := p.AddConstraint(constraint.NewAllDifferent[string](), rows...); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			rowDelta := j - i
			notDiagonal := func(args []any) bool {
				ci, cj := args[0].(int), args[1].(int)
				d := ci - cj
				if d < 0 {
					d = -d
				}
				return d != rowDelta
			}
			if err := p.AddConstraint(notDiagonal, rows[i], rows[j]); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

// buildSendMoreMoney is the classic SEND + MORE = MONEY cryptarithmetic
// puzzle. Moving every term to one side turns the addition into a single
// weighted sum equal to zero --
// S*1000 + E*91 + N*-90 + D*1 + M*-9000 + O*-900 + R*10 + Y*-1 == 0 --
// checked by a predicate over all eight letters rather than ExactSum,
// whose pruning and early rejection assume non-negative contributions. The
// whole puzzle is that predicate plus AllDifferent and two
// nonzero-leading-digit domain restrictions.
func buildSendMoreMoney() (*csp.Problem[string], error) {
	p := csp.NewProblem[string]()

	digits := make([]any, 10)
	for i := range digits {
		digits[i] = i
	}
	nonzero := digits[1:]

	letters := []string{"S", "E", "N", "D", "M", "O", "R", "Y"}
	for _, l := range letters {
		dom := digits
		if l == "S" || l == "M" {
			dom = nonzero
		}
		if err := p.AddVariable(l, dom); err != nil {
			return nil, err
		}
	}

	if err := p.AddConstraint(constraint.NewAllDifferent[string](), letters...); err != nil {
		return nil, err
	}

	multipliers := []int{1000, 91, -90, 1, -9000, -900, 10, -1}
	balanced := func(args []any) bool {
		total := 0
		for i, a := range args {
			total += multipliers[i] * a.(int)
		}
		return total == 0
	}
	if err := p.AddConstraint(balanced, letters...); err != nil {
		return nil, err
	}
	return p, nil
}
