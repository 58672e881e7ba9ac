// Package board models the state space of a sliding-tile puzzle.
//
// A Board is an immutable snapshot of an N×N grid holding N²-1 numbered
// tiles and one blank slot. Search drivers explore the space by asking a
// board for its Neighbours (each a new board one slide away), ordering
// candidates by Priority (moves taken plus the Manhattan-distance
// heuristic), and testing Resolved. The Previous chain of the winning board
// reconstructs the solution path.
//
// Boards are never mutated after construction: every move allocates a new
// board that shares tile payloads with its parent. That makes boards safe to
// share read-only across concurrent search workers; the only swap a board
// ever sees happens privately between cloning and first exposure.
//
// Usage:
//
//	b, err := board.FromLabels(3, []int{1, 0, 2, 3, 4, 5, 6, 7, board.Empty})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, next := range b.Neighbours() {
//		if next.Resolved() {
//			// walk next.Previous() for the path back to b
//		}
//	}
//
// Equality (Equals) compares tile arrangements only, ignoring move count and
// history, and Key produces a matching string for hash-based visited sets.
package board
