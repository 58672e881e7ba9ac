// Package solver finds optimal solutions for sliding-tile boards.
//
// It runs A* over the board package's state space: a min-priority frontier
// ordered by board.Priority (steps plus Manhattan distance), a visited set
// keyed by board.Key, and path reconstruction over the previous-board chain.
// Because the heuristic is admissible, returned solutions are shortest.
//
// Usage:
//
//	sol, err := solver.Solve(ctx, b, solver.Options{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(sol.Moves) // e.g. [left up right]
//
// Boards with the wrong permutation parity fail fast with ErrUnsolvable;
// long searches can be bounded with Options.MaxExpansions or cancelled via
// the context.
package solver
