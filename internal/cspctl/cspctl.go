// Package cspctl is the small command-line front-end cmd/cspsolve wires up:
// enough to exercise the library end to end (a handful of built-in example
// problems, a solver choice, single-vs-all solution retrieval) without the
// library itself taking on any CLI surface of its own.
package cspctl

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/gitrdm/csp"
	"github.com/gitrdm/csp/internal/solver"
)

// Config holds the parsed command-line flags cmd/cspsolve builds from
// flag.FlagSet.
type Config struct {
	Problem string // "nqueens" or "sendmoremoney"
	Solver  string // "iterative", "optimized", "recursive", "minconflicts"
	N       int    // board size, for "nqueens"
	All     bool   // enumerate every solution instead of just the first
	Logger  *slog.Logger
}

// Run builds the requested example problem, solves it, and writes a report
// to out.
func Run(cfg Config, out io.Writer) error {
	problem, err := build(cfg)
	if err != nil {
		return err
	}
	if cfg.Logger != nil {
		problem.SetLogger(cfg.Logger)
	}
	if s, err := solverFor(cfg.Solver); err != nil {
		return err
	} else if s != nil {
		problem.SetSolver(s)
	}

	if cfg.All {
		solutions, err := problem.GetSolutions()
		if err != nil {
			return fmt.Errorf("cspctl: get solutions: %w", err)
		}
		fmt.Fprintf(out, "found %d solution(s)\n", len(solutions))
		for i, sol := range solutions {
			fmt.Fprintf(out, "%d: %s\n", i, formatAssignment(sol))
		}
		return nil
	}

	sol, err := problem.GetSolution()
	if err != nil {
		return fmt.Errorf("cspctl: get solution: %w", err)
	}
	if sol == nil {
		fmt.Fprintln(out, "no solution")
		return nil
	}
	fmt.Fprintln(out, formatAssignment(sol))
	return nil
}

func build(cfg Config) (*csp.Problem[string], error) {
	switch cfg.Problem {
	case "", "nqueens":
		return buildNQueens(cfg.N)
	case "sendmoremoney":
		return buildSendMoreMoney()
	default:
		return nil, fmt.Errorf("cspctl: unknown problem %q", cfg.Problem)
	}
}

func solverFor(name string) (csp.Solver[string], error) {
	switch name {
	case "":
		return nil, nil
	case "iterative":
		return solver.NewIterativeBacktrackingSolver[string](), nil
	case "optimized":
		return solver.NewOptimizedBacktrackingSolver[string](), nil
	case "recursive":
		return solver.NewRecursiveBacktrackingSolver[string](), nil
	case "minconflicts":
		return solver.NewMinConflictsSolver[string](), nil
	default:
		return nil, fmt.Errorf("cspctl: unknown solver %q", name)
	}
}

func formatAssignment(a csp.Assignment[string]) string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := ""
	for i, k := range keys {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%v", k, a[k])
	}
	return s
}
