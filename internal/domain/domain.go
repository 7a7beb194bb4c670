// Package domain implements the reversible finite domain used throughout the
// constraint engine: an ordered, mutable set of candidate values supporting
// permanent removal (preprocessing) and reversible hiding (forward checking).
package domain

import (
	"errors"
	"fmt"
)

// ErrEmpty is returned when a Domain would be constructed with no values.
var ErrEmpty = errors.New("csp: domain must have at least one value")

// Domain holds the live candidate values for a single variable. It is
// mutable and supports two distinct kinds of removal:
//
//   - Remove deletes a value permanently. It is meant for one-time domain
//     preparation (preprocessing) and is not undone by PopState.
//   - HideValue removes a value but remembers it on a stack, so a later
//     PopState can restore it. This is what forward checking uses to prune
//     a domain and then back out of the pruning when the search backtracks.
//
// PushState/PopState bracket a reversible region: PushState records the
// current length, and the matching PopState restores every value hidden
// since that point.
type Domain[T comparable] struct {
	values []T
	hidden []T
	states []int
}

// New creates a Domain over the given values. Order is preserved; duplicate
// values are kept as given. An empty values slice is rejected: a variable
// with no candidate values can never be part of a solution.
func New[T comparable](values []T) (*Domain[T], error) {
	if len(values) == 0 {
		return nil, ErrEmpty
	}
	d := &Domain[T]{values: make([]T, len(values))}
	copy(d.values, values)
	return d, nil
}

// Len returns the number of live values currently in the domain.
func (d *Domain[T]) Len() int {
	return len(d.values)
}

// Values returns a copy of the live values, in their current order.
func (d *Domain[T]) Values() []T {
	out := make([]T, len(d.values))
	copy(out, d.values)
	return out
}

// Has reports whether v is currently a live value of the domain.
func (d *Domain[T]) Has(v T) bool {
	for _, x := range d.values {
		if x == v {
			return true
		}
	}
	return false
}

// PushState records a checkpoint that a later PopState can restore to.
func (d *Domain[T]) PushState() {
	d.states = append(d.states, len(d.values))
}

// PopState restores the domain to the state recorded by the most recent
// PushState, re-inserting every value hidden since then. PopState on a
// domain with no outstanding PushState is a no-op.
func (d *Domain[T]) PopState() {
	if len(d.states) == 0 {
		return
	}
	target := d.states[len(d.states)-1]
	d.states = d.states[:len(d.states)-1]

	diff := target - len(d.values)
	if diff > len(d.hidden) {
		diff = len(d.hidden)
	}
	if diff <= 0 {
		return
	}
	restored := d.hidden[len(d.hidden)-diff:]
	d.hidden = d.hidden[:len(d.hidden)-diff]
	d.values = append(d.values, restored...)
}

// HideValue removes v from the live values and remembers it so a later
// PopState (back to the checkpoint active when HideValue was called) can
// restore it. It returns an error if v is not currently live.
func (d *Domain[T]) HideValue(v T) error {
	idx := -1
	for i, x := range d.values {
		if x == v {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("csp: HideValue: value %v not in domain", v)
	}
	d.values = append(d.values[:idx], d.values[idx+1:]...)
	d.hidden = append(d.hidden, v)
	return nil
}

// Remove deletes v from the domain permanently; it is not restored by any
// later PopState. This is for one-time constraint preprocessing and must not
// be used once search has begun pushing state.
func (d *Domain[T]) Remove(v T) {
	for i, x := range d.values {
		if x == v {
			d.values = append(d.values[:i], d.values[i+1:]...)
			return
		}
	}
}

// ResetState discards every checkpoint and hidden value, restoring every
// value ever hidden (but not values removed permanently via Remove) back
// into the live set. Problem.compile calls this on every domain before
// search begins, so a Problem can be solved more than once.
func (d *Domain[T]) ResetState() {
	if len(d.hidden) > 0 {
		d.values = append(d.values, d.hidden...)
		d.hidden = d.hidden[:0]
	}
	d.states = d.states[:0]
}

// Clone returns an independent copy of the domain, including its hidden and
// checkpoint stacks.
func (d *Domain[T]) Clone() *Domain[T] {
	c := &Domain[T]{
		values: make([]T, len(d.values)),
		hidden: make([]T, len(d.hidden)),
		states: make([]int, len(d.states)),
	}
	copy(c.values, d.values)
	copy(c.hidden, d.hidden)
	copy(c.states, d.states)
	return c
}
