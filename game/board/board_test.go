package board

import (
	"errors"
	"math/rand"
	"testing"
)

// solvedLabels returns the canonical solved label sequence for a size.
func solvedLabels(size int) []int {
	total := size * size
	labels := make([]int, total)
	for i := 0; i < total-1; i++ {
		labels[i] = i
	}
	labels[total-1] = Empty
	return labels
}

func TestNew(t *testing.T) {
	b := New(3)

	if !b.Resolved() {
		t.Error("Expected freshly created board to be resolved")
	}
	if b.Steps() != 0 {
		t.Errorf("Expected 0 steps, got %d", b.Steps())
	}
	if b.Previous() != nil {
		t.Error("Expected no previous board for a root")
	}
	if b.EmptyIndex() != 8 {
		t.Errorf("Expected blank in last slot, got %d", b.EmptyIndex())
	}
	if b.Priority() != 0 {
		t.Errorf("Expected priority 0 on solved board, got %d", b.Priority())
	}
}

func TestFromLabels(t *testing.T) {
	b, err := FromLabels(3, solvedLabels(3))
	if err != nil {
		t.Fatalf("Failed to build board from solved labels: %v", err)
	}
	if !b.Resolved() {
		t.Error("Expected solved labels to produce a resolved board")
	}

	// One move away from solved: blank swapped with tile 7.
	b, err = FromLabels(3, []int{0, 1, 2, 3, 4, 5, 6, Empty, 7})
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}
	if b.Resolved() {
		t.Error("Expected unsolved board")
	}
	if b.EmptyIndex() != 7 {
		t.Errorf("Expected blank at slot 7, got %d", b.EmptyIndex())
	}
}

func TestFromLabels_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		labels []int
	}{
		{"wrong length", 3, []int{0, 1, 2, Empty}},
		{"no blank", 3, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}},
		{"two blanks", 3, []int{0, 1, 2, 3, 4, 5, 6, Empty, Empty}},
		{"duplicate label", 3, []int{0, 1, 2, 3, 4, 5, 6, 6, Empty}},
		{"label out of range", 3, []int{0, 1, 2, 3, 4, 5, 6, 8, Empty}},
		{"size too small", 1, []int{Empty}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLabels(tt.size, tt.labels)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestNeighbours_Count(t *testing.T) {
	tests := []struct {
		name     string
		labels   []int
		expected int
	}{
		{"corner blank", []int{Empty, 0, 1, 2, 3, 4, 5, 6, 7}, 2},
		{"edge blank", []int{0, Empty, 1, 2, 3, 4, 5, 6, 7}, 3},
		{"interior blank", []int{0, 1, 2, 3, Empty, 4, 5, 6, 7}, 4},
		{"last corner blank", solvedLabels(3), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := FromLabels(3, tt.labels)
			if err != nil {
				t.Fatalf("Failed to build board: %v", err)
			}

			moves := b.Neighbours()
			if len(moves) != tt.expected {
				t.Fatalf("Expected %d neighbours, got %d", tt.expected, len(moves))
			}

			for i, next := range moves {
				if next.Steps() != b.Steps()+1 {
					t.Errorf("Neighbour %d: expected steps %d, got %d", i, b.Steps()+1, next.Steps())
				}
				if next.Previous() != b {
					t.Errorf("Neighbour %d: expected previous link to source board", i)
				}
				// Exactly one adjacent swap: the blank must have moved to an
				// adjacent slot and exactly two slots differ.
				diff := 0
				for j := range b.tiles {
					if (b.tiles[j] == nil) != (next.tiles[j] == nil) {
						diff++
						continue
					}
					if b.tiles[j] != nil && next.tiles[j] != nil && b.tiles[j].Number != next.tiles[j].Number {
						diff++
					}
				}
				if diff != 2 {
					t.Errorf("Neighbour %d: expected exactly 2 slots to differ, got %d", i, diff)
				}
			}
		})
	}
}

func TestNeighbours_Order(t *testing.T) {
	// Interior blank: neighbours must come back in left, right, up, down
	// order of the blank's adjacent slots.
	b, err := FromLabels(3, []int{0, 1, 2, 3, Empty, 4, 5, 6, 7})
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}

	moves := b.Neighbours()
	if len(moves) != 4 {
		t.Fatalf("Expected 4 neighbours, got %d", len(moves))
	}

	// The blank starts at slot 4; sliding the left/right/up/down tile into it
	// puts the blank at slots 3, 5, 1, 7 respectively.
	expectedBlank := []int{3, 5, 1, 7}
	for i, next := range moves {
		if next.EmptyIndex() != expectedBlank[i] {
			t.Errorf("Neighbour %d: expected blank at slot %d, got %d", i, expectedBlank[i], next.EmptyIndex())
		}
	}
}

func TestMove(t *testing.T) {
	b := New(3)

	// Blank is at slot 8. Tiles at slots 5 and 7 are adjacent to it.
	next, moved := b.Move(7)
	if !moved {
		t.Fatal("Expected move of adjacent tile to succeed")
	}
	if next.EmptyIndex() != 7 {
		t.Errorf("Expected blank at slot 7 after move, got %d", next.EmptyIndex())
	}
	if next.Steps() != 1 {
		t.Errorf("Expected 1 step after move, got %d", next.Steps())
	}
	if b.EmptyIndex() != 8 {
		t.Error("Expected source board to be unchanged")
	}

	// Non-adjacent tile.
	if _, moved := b.Move(0); moved {
		t.Error("Expected move of non-adjacent tile to fail")
	}
	// The blank itself.
	if _, moved := b.Move(8); moved {
		t.Error("Expected move of the blank slot to fail")
	}
	// Out of range.
	if _, moved := b.Move(-1); moved {
		t.Error("Expected out-of-range move to fail")
	}
	if _, moved := b.Move(9); moved {
		t.Error("Expected out-of-range move to fail")
	}
}

func TestResolved(t *testing.T) {
	if !New(3).Resolved() {
		t.Error("Expected solved board to be resolved")
	}

	b, err := FromLabels(3, []int{1, 0, 2, 3, 4, 5, 6, 7, Empty})
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}
	if b.Resolved() {
		t.Error("Expected swapped board not to be resolved")
	}

	// Blank anywhere but the last slot cannot be resolved.
	b, err = FromLabels(3, []int{Empty, 0, 1, 2, 3, 4, 5, 6, 7})
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}
	if b.Resolved() {
		t.Error("Expected board with blank in first slot not to be resolved")
	}
}

func TestDistanceAndPriority(t *testing.T) {
	if d := New(3).Distance(); d != 0 {
		t.Errorf("Expected distance 0 on solved board, got %d", d)
	}

	// Tile 7 one slot right of its goal: distance 1.
	b, err := FromLabels(3, []int{0, 1, 2, 3, 4, 5, 6, Empty, 7})
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}
	if d := b.Distance(); d != 1 {
		t.Errorf("Expected distance 1, got %d", d)
	}
	if p := b.Priority(); p != 1 {
		t.Errorf("Expected priority 1 on root board, got %d", p)
	}

	// Priority accumulates steps along a path.
	next, moved := b.Move(7)
	if !moved {
		t.Fatal("Expected move to succeed")
	}
	if next.Priority() != next.Steps()+next.Distance() {
		t.Errorf("Expected priority %d, got %d", next.Steps()+next.Distance(), next.Priority())
	}
}

func TestDistance_Admissible(t *testing.T) {
	// A board k legal moves from solved can never have a heuristic above k.
	rng := rand.New(rand.NewSource(7))
	current := New(3)
	for k := 1; k <= 30; k++ {
		moves := current.Neighbours()
		current = moves[rng.Intn(len(moves))]
		if current.Distance() > k {
			t.Fatalf("Heuristic %d exceeds true distance bound %d", current.Distance(), k)
		}
	}
}

func TestEquals(t *testing.T) {
	a := New(3)
	b := New(3)

	if !a.Equals(a) {
		t.Error("Expected equality to be reflexive")
	}
	if !a.Equals(b) || !b.Equals(a) {
		t.Error("Expected two solved boards to compare equal both ways")
	}
	if a.Equals(nil) {
		t.Error("Expected board not to equal nil")
	}
	if a.Equals(New(4)) {
		t.Error("Expected boards of different sizes not to compare equal")
	}

	// Same arrangement via different move sequences must compare equal and
	// share a key, regardless of steps.
	left, _ := a.Move(7)
	back, _ := left.Move(8)
	if !back.Equals(a) {
		t.Error("Expected board moved out and back to equal the original")
	}
	if back.Steps() == a.Steps() {
		t.Error("Expected differing step counts for the equality check to ignore")
	}
	if back.Key() != a.Key() {
		t.Errorf("Expected matching keys, got %q and %q", back.Key(), a.Key())
	}

	shifted, _ := a.Move(7)
	if a.Equals(shifted) {
		t.Error("Expected different arrangements not to compare equal")
	}
	if a.Key() == shifted.Key() {
		t.Error("Expected different arrangements to produce different keys")
	}
}

func TestReset(t *testing.T) {
	b := New(3)
	next, _ := b.Move(7)
	next, _ = next.Move(6)

	if next.Steps() != 2 || next.Previous() == nil {
		t.Fatal("Expected board two moves deep with history")
	}

	next.Reset()
	if next.Steps() != 0 {
		t.Errorf("Expected 0 steps after reset, got %d", next.Steps())
	}
	if next.Previous() != nil {
		t.Error("Expected no previous board after reset")
	}
}

func TestShuffle(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := New(3).Shuffle(40, rng)

	if b.Steps() != 0 {
		t.Errorf("Expected shuffled board to start at 0 steps, got %d", b.Steps())
	}
	if b.Previous() != nil {
		t.Error("Expected shuffled board to have no history")
	}
	if !b.Solvable() {
		t.Error("Expected shuffled board to be solvable")
	}

	count := 0
	for _, tile := range b.Tiles() {
		if tile == nil {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly one blank after shuffle, got %d", count)
	}

	// Zero moves is the identity.
	c := New(3)
	if !c.Shuffle(0, rng).Equals(c) {
		t.Error("Expected zero-move shuffle to leave the board unchanged")
	}
}

func TestSolvable(t *testing.T) {
	if !New(3).Solvable() {
		t.Error("Expected solved board to be solvable")
	}

	// Swapping two adjacent tiles flips parity: classic unsolvable 8-puzzle.
	b, err := FromLabels(3, []int{1, 0, 2, 3, 4, 5, 6, 7, Empty})
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}
	if b.Solvable() {
		t.Error("Expected single-transposition board to be unsolvable")
	}

	// Even-size case: a single transposition on a 4x4 is unsolvable too.
	labels := solvedLabels(4)
	labels[0], labels[1] = labels[1], labels[0]
	c, err := FromLabels(4, labels)
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}
	if c.Solvable() {
		t.Error("Expected transposed 4x4 board to be unsolvable")
	}
	if !New(4).Solvable() {
		t.Error("Expected solved 4x4 board to be solvable")
	}
}

func TestNeighbours_SolvesOneMoveOut(t *testing.T) {
	// A board one legal move from solved must include the solved board among
	// its neighbours, and the solved neighbour's history must walk back to
	// the start in exactly one step.
	start, err := FromLabels(3, []int{0, 1, 2, 3, 4, 5, 6, Empty, 7})
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}

	var solved *Board
	for _, next := range start.Neighbours() {
		if next.Resolved() {
			solved = next
			break
		}
	}
	if solved == nil {
		t.Fatal("Expected a resolved board among the neighbours")
	}

	if solved.Previous() == nil || !solved.Previous().Equals(start) {
		t.Error("Expected solved board's history to lead back to the start")
	}
	if solved.Previous().Previous() != nil {
		t.Error("Expected exactly one step back to the root")
	}
}

func TestTileIdentity(t *testing.T) {
	tile := NewTile(4)
	if tile.Label != "5" {
		t.Errorf("Expected default label '5' for tile number 4, got %q", tile.Label)
	}

	// Labels are payload, not identity: boards with re-labeled tiles still
	// compare equal.
	a := New(3)
	b := New(3)
	for _, tl := range b.tiles {
		if tl != nil {
			tl.Label = "x"
		}
	}
	if !a.Equals(b) {
		t.Error("Expected boards to compare equal regardless of labels")
	}
}

func TestString(t *testing.T) {
	got := New(2).String()
	want := "1 2\n3 _"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
