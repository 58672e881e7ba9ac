package board

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Empty marks the blank slot in a label sequence passed to FromLabels.
const Empty = -1

// ErrInvalidConfiguration is returned when a root board is constructed from a
// label sequence of the wrong length, with duplicate labels, or without
// exactly one blank marker.
var ErrInvalidConfiguration = errors.New("invalid board configuration")

// neighbourOffsets lists the four candidate blank neighbours in the fixed
// order left, right, up, down. Neighbours and Move depend on this order for
// deterministic tie-breaking in search.
var neighbourOffsets = [4][2]int{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}

// Tile is a single sliding piece. Number is the slot index the tile occupies
// in the solved layout; Label is an opaque display payload and is not part of
// tile identity.
type Tile struct {
	Number int
	Label  string
}

// NewTile creates a tile whose label defaults to the 1-based tile number.
func NewTile(number int) *Tile {
	return &Tile{Number: number, Label: strconv.Itoa(number + 1)}
}

// Board is one immutable snapshot of the puzzle. tiles is row-major
// (index = x + y*size) with exactly one nil entry for the blank slot.
// steps counts moves from the root board and prev links back along the path
// that produced this snapshot; neither participates in equality.
type Board struct {
	size  int
	tiles []*Tile
	steps int
	prev  *Board
}

// New creates a solved board of the given size: tile i in slot i, blank last.
func New(size int) *Board {
	total := size * size
	tiles := make([]*Tile, total)
	for i := 0; i < total-1; i++ {
		tiles[i] = NewTile(i)
	}
	return &Board{size: size, tiles: tiles}
}

// FromLabels builds a root board from a sequence of goal indices, one of
// which must be Empty. The remaining entries must be a permutation of
// 0..size*size-2.
func FromLabels(size int, labels []int) (*Board, error) {
	total := size * size
	if size < 2 {
		return nil, fmt.Errorf("%w: size must be at least 2, got %d", ErrInvalidConfiguration, size)
	}
	if len(labels) != total {
		return nil, fmt.Errorf("%w: expected %d labels, got %d", ErrInvalidConfiguration, total, len(labels))
	}

	tiles := make([]*Tile, total)
	seen := make([]bool, total-1)
	blanks := 0
	for i, label := range labels {
		if label == Empty {
			blanks++
			continue
		}
		if label < 0 || label >= total-1 {
			return nil, fmt.Errorf("%w: label %d out of range [0,%d]", ErrInvalidConfiguration, label, total-2)
		}
		if seen[label] {
			return nil, fmt.Errorf("%w: duplicate label %d", ErrInvalidConfiguration, label)
		}
		seen[label] = true
		tiles[i] = NewTile(label)
	}
	if blanks != 1 {
		return nil, fmt.Errorf("%w: expected exactly one blank slot, got %d", ErrInvalidConfiguration, blanks)
	}

	return &Board{size: size, tiles: tiles}, nil
}

// Restore rebuilds a persisted board snapshot: the same validation as
// FromLabels plus a step count, with no history chain.
func Restore(size int, labels []int, steps int) (*Board, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: negative step count %d", ErrInvalidConfiguration, steps)
	}
	b, err := FromLabels(size, labels)
	if err != nil {
		return nil, err
	}
	b.steps = steps
	return b, nil
}

// Size returns the board dimension N.
func (b *Board) Size() int { return b.size }

// Steps returns the number of moves taken to reach this board from its root.
func (b *Board) Steps() int { return b.steps }

// Previous returns the board this one was derived from, or nil for a root.
func (b *Board) Previous() *Board { return b.prev }

// Tiles returns a copy of the tile sequence. The blank slot is nil.
func (b *Board) Tiles() []*Tile {
	out := make([]*Tile, len(b.tiles))
	copy(out, b.tiles)
	return out
}

// Tile returns the tile at slot i, or nil for the blank slot.
func (b *Board) Tile(i int) *Tile { return b.tiles[i] }

// EmptyIndex returns the slot index of the blank.
func (b *Board) EmptyIndex() int {
	for i, tile := range b.tiles {
		if tile == nil {
			return i
		}
	}
	// Unreachable for boards built through the package constructors.
	return -1
}

// indexOf converts grid coordinates to a row-major slot index.
func (b *Board) indexOf(x, y int) int {
	return x + y*b.size
}

// derive clones the board for one move: shared tiles, steps+1, prev set.
// The caller must perform exactly one swap before exposing the result.
func (b *Board) derive() *Board {
	tiles := make([]*Tile, len(b.tiles))
	copy(tiles, b.tiles)
	return &Board{
		size:  b.size,
		tiles: tiles,
		steps: b.steps + 1,
		prev:  b,
	}
}

// swapTiles exchanges two slots. Only valid inside the derive window.
func (b *Board) swapTiles(i, j int) {
	b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
}

// Neighbours returns every board reachable by sliding one tile into the
// blank. With the blank in a corner this yields 2 boards, on an edge 3, in
// the interior 4, always in the left/right/up/down offset order.
func (b *Board) Neighbours() []*Board {
	empty := b.EmptyIndex()
	ex, ey := empty%b.size, empty/b.size

	moves := make([]*Board, 0, 4)
	for _, delta := range neighbourOffsets {
		nx, ny := ex+delta[0], ey+delta[1]
		if nx < 0 || nx >= b.size || ny < 0 || ny >= b.size {
			continue
		}
		next := b.derive()
		next.swapTiles(b.indexOf(nx, ny), empty)
		moves = append(moves, next)
	}
	return moves
}

// Move attempts to slide the tile at slot target into the blank. It returns
// the derived board and true when target is in range and adjacent to the
// blank; otherwise it returns nil and false. A failed move is a normal
// outcome of user input, not an error, and leaves the board unchanged.
func (b *Board) Move(target int) (*Board, bool) {
	if target < 0 || target >= len(b.tiles) || b.tiles[target] == nil {
		return nil, false
	}

	tx, ty := target%b.size, target/b.size
	for _, delta := range neighbourOffsets {
		nx, ny := tx+delta[0], ty+delta[1]
		if nx < 0 || nx >= b.size || ny < 0 || ny >= b.size {
			continue
		}
		if b.tiles[b.indexOf(nx, ny)] == nil {
			next := b.derive()
			next.swapTiles(b.indexOf(nx, ny), target)
			return next, true
		}
	}
	return nil, false
}

// Resolved reports whether every slot 0..N²-2 holds the tile whose number
// matches the slot. The final slot is not inspected: with exactly one blank
// per board it can only be the blank once all other tiles are in place.
func (b *Board) Resolved() bool {
	for i := 0; i < len(b.tiles)-1; i++ {
		tile := b.tiles[i]
		if tile == nil || tile.Number != i {
			return false
		}
	}
	return true
}

// Distance returns the Manhattan heuristic: the sum over all tiles of the
// horizontal plus vertical distance from the tile's slot to its goal slot.
// It never overestimates the true remaining move count.
func (b *Board) Distance() int {
	distance := 0
	for i, tile := range b.tiles {
		if tile == nil {
			continue
		}
		ax, ay := i%b.size, i/b.size
		gx, gy := tile.Number%b.size, tile.Number/b.size
		distance += abs(gx-ax) + abs(gy-ay)
	}
	return distance
}

// Priority returns steps + Distance, the A* ordering key.
func (b *Board) Priority() int {
	return b.steps + b.Distance()
}

// Equals reports whether two boards hold the same tile arrangement,
// blank included. Steps and the previous-board link are ignored so that
// boards reached via different paths compare equal.
func (b *Board) Equals(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i, tile := range b.tiles {
		o := other.tiles[i]
		if tile == nil || o == nil {
			if tile != o {
				return false
			}
			continue
		}
		if tile.Number != o.Number {
			return false
		}
	}
	return true
}

// Key returns a string derived from the same fields Equals compares, with
// the blank mapped to a sentinel. Visited sets keyed on it stay consistent
// with Equals.
func (b *Board) Key() string {
	var sb strings.Builder
	for i, tile := range b.tiles {
		if i > 0 {
			sb.WriteByte(',')
		}
		if tile == nil {
			sb.WriteByte('_')
		} else {
			sb.WriteString(strconv.Itoa(tile.Number))
		}
	}
	return sb.String()
}

// Reset drops search bookkeeping from the currently displayed board: steps
// back to zero, previous-board link cleared. Never used inside search.
func (b *Board) Reset() {
	b.steps = 0
	b.prev = nil
}

// Shuffle performs n random legal slides starting from b and returns the
// final board with its history dropped. Because every step is a legal move,
// the result is always solvable.
func (b *Board) Shuffle(n int, rng *rand.Rand) *Board {
	current := b
	for i := 0; i < n; i++ {
		moves := current.Neighbours()
		current = moves[rng.Intn(len(moves))]
	}
	if current == b {
		return b
	}
	current.Reset()
	return current
}

// Solvable reports whether the board can reach the solved layout. For odd N
// the inversion count must be even; for even N the inversion count plus the
// blank's row from the bottom must be odd.
func (b *Board) Solvable() bool {
	var sequence []int
	blankRow := 0
	for i, tile := range b.tiles {
		if tile == nil {
			blankRow = i / b.size
			continue
		}
		sequence = append(sequence, tile.Number)
	}

	inversions := 0
	for i := 0; i < len(sequence); i++ {
		for j := i + 1; j < len(sequence); j++ {
			if sequence[i] > sequence[j] {
				inversions++
			}
		}
	}

	if b.size%2 == 1 {
		return inversions%2 == 0
	}
	rowFromBottom := b.size - blankRow
	return (inversions+rowFromBottom)%2 == 1
}

// String renders the board as a grid with an underscore for the blank.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.size; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.size; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			tile := b.tiles[b.indexOf(x, y)]
			if tile == nil {
				sb.WriteString("_")
			} else {
				sb.WriteString(tile.Label)
			}
		}
	}
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
