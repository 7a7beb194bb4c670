package constraint

// MaxSum requires the weighted sum of assigned variables to never exceed
// Bound. Multipliers, if set, must have the same length as the constraint's
// variable list; a nil Multipliers means every weight is 1.
type MaxSum[V comparable] struct {
	Bound       float64
	Multipliers []float64
}

// NewMaxSum constructs a MaxSum constraint.
func NewMaxSum[V comparable](bound float64, multipliers []float64) *MaxSum[V] {
	return &MaxSum[V]{Bound: bound, Multipliers: multipliers}
}

// Check implements Constraint.
func (c *MaxSum[V]) Check(variables []V, domains Domains[V], assignment Assignment[V], forwardCheck bool) bool {
	sum := 0.0
	for i, v := range variables {
		val, ok := assignment[v]
		if !ok {
			continue
		}
		sum = round10(sum + weightOf(c.Multipliers, i)*mustFloat64(val))
	}
	if sum > c.Bound {
		return false
	}

	if !forwardCheck {
		return true
	}
	for i, v := range variables {
		if _, ok := assignment[v]; ok {
			continue
		}
		w := weightOf(c.Multipliers, i)
		dom := domains[v]
		for _, val := range dom.Values() {
			if round10(sum+w*mustFloat64(val)) > c.Bound {
				if err := dom.HideValue(val); err != nil {
					return false
				}
			}
		}
		if dom.Len() == 0 {
			return false
		}
	}
	return true
}

// Preprocess prunes values that alone already exceed Bound, but only when at
// most one variable's domain contains a negative value -- if two or more
// variables can go negative, a large value in one domain might still be
// compensated by a very negative pick elsewhere, so no single-domain pruning
// is safe to do ahead of time. When exactly one variable has a negative
// value, only that variable's domain is pruned: every other variable's large
// values could still be compensated by it. This is the documented resolution
// of the "MaxSum preprocessing" open question.
func (c *MaxSum[V]) Preprocess(variables []V, domains Domains[V], constraints *[]Record[V], vconstraints map[V][]Record[V]) {
	negativeCount := 0
	var theNegative V
	for _, v := range variables {
		for _, val := range domains[v].Values() {
			if mustFloat64(val) < 0 {
				negativeCount++
				theNegative = v
				break
			}
		}
		if negativeCount > 1 {
			return
		}
	}

	for i, v := range variables {
		if negativeCount == 1 && v != theNegative {
			continue
		}
		w := weightOf(c.Multipliers, i)
		for _, val := range domains[v].Values() {
			if round10(w*mustFloat64(val)) > c.Bound {
				domains[v].Remove(val)
			}
		}
	}
}

// MinSum requires the weighted sum of ALL variables (the constraint only
// evaluates once every variable is assigned) to be at least Bound.
type MinSum[V comparable] struct {
	Bound       float64
	Multipliers []float64
}

// NewMinSum constructs a MinSum constraint.
func NewMinSum[V comparable](bound float64, multipliers []float64) *MinSum[V] {
	return &MinSum[V]{Bound: bound, Multipliers: multipliers}
}

// Check implements Constraint. MinSum defers until every variable in its
// scope is assigned; a partial assignment can always still reach the bound
// once the remaining variables are filled in, so there is nothing sound to
// reject early.
func (c *MinSum[V]) Check(variables []V, domains Domains[V], assignment Assignment[V], forwardCheck bool) bool {
	sum := 0.0
	for i, v := range variables {
		val, ok := assignment[v]
		if !ok {
			return true
		}
		sum = round10(sum + weightOf(c.Multipliers, i)*mustFloat64(val))
	}
	return sum >= c.Bound
}

// Preprocess implements Constraint using the default discharge rule (no
// custom pruning beyond the single-variable case).
func (c *MinSum[V]) Preprocess(variables []V, domains Domains[V], constraints *[]Record[V], vconstraints map[V][]Record[V]) {
	DefaultPreprocess[V](c, variables, domains, constraints, vconstraints)
}

// ExactSum requires the weighted sum of ALL variables to equal Bound
// exactly, and rejects as soon as a partial sum already exceeds Bound.
type ExactSum[V comparable] struct {
	Bound       float64
	Multipliers []float64
}

// NewExactSum constructs an ExactSum constraint.
func NewExactSum[V comparable](bound float64, multipliers []float64) *ExactSum[V] {
	return &ExactSum[V]{Bound: bound, Multipliers: multipliers}
}

// Check implements Constraint.
func (c *ExactSum[V]) Check(variables []V, domains Domains[V], assignment Assignment[V], forwardCheck bool) bool {
	sum := 0.0
	missing := 0
	for i, v := range variables {
		val, ok := assignment[v]
		if !ok {
			missing++
			continue
		}
		sum = round10(sum + weightOf(c.Multipliers, i)*mustFloat64(val))
	}
	if sum > c.Bound {
		return false
	}
	if missing > 0 {
		if !forwardCheck {
			return true
		}
		for i, v := range variables {
			if _, ok := assignment[v]; ok {
				continue
			}
			w := weightOf(c.Multipliers, i)
			dom := domains[v]
			for _, val := range dom.Values() {
				if round10(sum+w*mustFloat64(val)) > c.Bound {
					if err := dom.HideValue(val); err != nil {
						return false
					}
				}
			}
			if dom.Len() == 0 {
				return false
			}
		}
		return true
	}
	return sum == c.Bound
}

// Preprocess removes, from every variable's domain, values that alone (after
// weighting) already exceed Bound. Unlike MaxSum, ExactSum prunes
// unconditionally, without looking for negative values or weights; the
// prune only keeps every solution when no other variable can make a
// negative weighted contribution, the same assumption Check's running-sum
// rule makes when it rejects a partial sum above Bound.
func (c *ExactSum[V]) Preprocess(variables []V, domains Domains[V], constraints *[]Record[V], vconstraints map[V][]Record[V]) {
	for i, v := range variables {
		w := weightOf(c.Multipliers, i)
		for _, val := range domains[v].Values() {
			if round10(w*mustFloat64(val)) > c.Bound {
				domains[v].Remove(val)
			}
		}
	}
}
