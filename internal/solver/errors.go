package solver

import "errors"

// ErrNotImplemented is returned by a Solver method a given strategy cannot
// support -- for example lazy iteration on a solver with no native
// generator form. Callers should prefer a different retrieval method or
// solver rather than treating this as "no solutions".
var ErrNotImplemented = errors.New("solver: not implemented")
