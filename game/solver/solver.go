package solver

import (
	"container/heap"
	"context"
	"errors"
	"fmt"

	"github.com/wricardo/mcp-training/npuzzle/game/board"
)

var (
	// ErrUnsolvable is returned when the start board cannot reach the solved
	// layout (wrong permutation parity).
	ErrUnsolvable = errors.New("board is not solvable")

	// ErrLimitReached is returned when the search exhausts MaxExpansions
	// before finding a solution.
	ErrLimitReached = errors.New("expansion limit reached")
)

// checkInterval controls how often the search polls the context.
const checkInterval = 1024

// DefaultMaxExpansions bounds a search unless the caller overrides it.
// Generous for 3x3 boards; 4x4 boards with hard layouts may need more.
const DefaultMaxExpansions = 500000

// Options tunes a Solve call.
type Options struct {
	// MaxExpansions caps the number of boards popped from the frontier.
	// Zero selects DefaultMaxExpansions; negative means unlimited.
	MaxExpansions int
}

// Solution describes an optimal path from the start board to the solved one.
type Solution struct {
	// Moves names each slide in order, using the engine's direction
	// vocabulary (the direction the tile travels).
	Moves []string

	// Boards holds every board along the path, start first, solved last.
	Boards []*board.Board

	// Expanded counts the boards popped from the frontier.
	Expanded int
}

// Length returns the number of moves in the solution.
func (s *Solution) Length() int { return len(s.Moves) }

// Solve runs A* from start and returns an optimal solution. The heuristic is
// the board's Manhattan distance, which never overestimates, so the first
// resolved board popped from the frontier is on a shortest path.
func Solve(ctx context.Context, start *board.Board, opts Options) (*Solution, error) {
	if !start.Solvable() {
		return nil, ErrUnsolvable
	}

	limit := opts.MaxExpansions
	if limit == 0 {
		limit = DefaultMaxExpansions
	}

	// The search derives fresh boards, so strip any history the caller's
	// board carries to keep reconstructed paths anchored at the start.
	root := start
	if root.Steps() != 0 || root.Previous() != nil {
		labels := boardLabels(start)
		rebuilt, err := board.FromLabels(start.Size(), labels)
		if err != nil {
			return nil, fmt.Errorf("failed to rebuild start board: %w", err)
		}
		root = rebuilt
	}

	frontier := &boardHeap{root}
	heap.Init(frontier)

	// visited maps a board key to the fewest steps it has been reached in.
	// Keys pair with board.Equals, so duplicate arrangements found on longer
	// paths are skipped.
	visited := map[string]int{root.Key(): 0}

	expanded := 0
	for frontier.Len() > 0 {
		if expanded%checkInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		if limit > 0 && expanded >= limit {
			return nil, ErrLimitReached
		}

		current := heap.Pop(frontier).(*board.Board)
		expanded++

		if current.Resolved() {
			return buildSolution(current, expanded), nil
		}

		for _, next := range current.Neighbours() {
			key := next.Key()
			if best, seen := visited[key]; seen && best <= next.Steps() {
				continue
			}
			visited[key] = next.Steps()
			heap.Push(frontier, next)
		}
	}

	// Unreachable for solvable boards; kept as a guard.
	return nil, ErrUnsolvable
}

// buildSolution walks the previous-board chain backward and reverses it.
func buildSolution(goal *board.Board, expanded int) *Solution {
	var boards []*board.Board
	for b := goal; b != nil; b = b.Previous() {
		boards = append(boards, b)
	}
	for i, j := 0, len(boards)-1; i < j; i, j = i+1, j-1 {
		boards[i], boards[j] = boards[j], boards[i]
	}

	moves := make([]string, 0, len(boards)-1)
	for i := 1; i < len(boards); i++ {
		moves = append(moves, MoveName(boards[i-1], boards[i]))
	}

	return &Solution{Moves: moves, Boards: boards, Expanded: expanded}
}

// MoveName names the slide that turns from into to, as the direction the
// tile travels: the tile moves opposite to the blank.
func MoveName(from, to *board.Board) string {
	size := from.Size()
	e1, e2 := from.EmptyIndex(), to.EmptyIndex()

	switch e2 - e1 {
	case 1:
		return "left" // blank moved right, tile slid left
	case -1:
		return "right"
	case size:
		return "up" // blank moved down, tile slid up
	case -size:
		return "down"
	}
	return "unknown"
}

// boardLabels flattens a board back into a FromLabels sequence.
func boardLabels(b *board.Board) []int {
	tiles := b.Tiles()
	labels := make([]int, len(tiles))
	for i, tile := range tiles {
		if tile == nil {
			labels[i] = board.Empty
		} else {
			labels[i] = tile.Number
		}
	}
	return labels
}

// boardHeap is a min-heap over board priority. Ties fall back to deeper
// boards first, which reaches goals sooner without affecting optimality.
type boardHeap []*board.Board

func (h boardHeap) Len() int { return len(h) }

func (h boardHeap) Less(i, j int) bool {
	pi, pj := h[i].Priority(), h[j].Priority()
	if pi != pj {
		return pi < pj
	}
	return h[i].Steps() > h[j].Steps()
}

func (h boardHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *boardHeap) Push(x interface{}) {
	*h = append(*h, x.(*board.Board))
}

func (h *boardHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
