// Command cspsolve is a thin example driver over the csp library: pick a
// built-in problem, a solver, and whether to enumerate every solution or
// just the first.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gitrdm/csp/internal/cspctl"
)

func main() {
	problem := flag.String("problem", "nqueens", "example problem: nqueens, sendmoremoney")
	solverName := flag.String("solver", "", "solver: iterative, optimized, recursive, minconflicts (default: library default)")
	n := flag.Int("n", 8, "board size for nqueens")
	all := flag.Bool("all", false, "enumerate every solution instead of just the first")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := cspctl.Config{
		Problem: *problem,
		Solver:  *solverName,
		N:       *n,
		All:     *all,
		Logger:  logger,
	}

	if err := cspctl.Run(cfg, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "cspsolve:", err)
		os.Exit(1)
	}
}
