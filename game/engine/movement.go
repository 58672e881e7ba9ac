package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/wricardo/mcp-training/npuzzle/game/board"
)

// slidingSlot returns the slot holding the tile that a direction would
// slide, given the blank's index. The sliding tile sits on the opposite side
// of the blank from its travel: "up" takes the tile below the blank.
func slidingSlot(b *board.Board, direction string) (int, bool) {
	size := b.Size()
	empty := b.EmptyIndex()
	ex, ey := empty%size, empty/size

	var tx, ty int
	switch direction {
	case Up:
		tx, ty = ex, ey+1
	case Down:
		tx, ty = ex, ey-1
	case Left:
		tx, ty = ex+1, ey
	case Right:
		tx, ty = ex-1, ey
	default:
		return 0, false
	}

	if tx < 0 || tx >= size || ty < 0 || ty >= size {
		return 0, false
	}
	return tx + ty*size, true
}

// Move attempts to slide a tile in the specified direction
func (e *PuzzleEngine) Move(direction string) bool {
	target, ok := slidingSlot(e.current, direction)
	if !ok {
		e.addMoveToHistory(direction, 0, -1, -1, false)
		e.message = e.config.Messages.CantMove
		return false
	}
	return e.moveSlot(direction, target)
}

// MoveTile attempts to slide the tile with the given 1-based number. This is
// the "tap a tile" entry point: the engine locates the tile and succeeds only
// when it sits next to the blank.
func (e *PuzzleEngine) MoveTile(number int) bool {
	action := fmt.Sprintf("tile:%d", number)
	for i, tile := range e.current.Tiles() {
		if tile != nil && tile.Number == number-1 {
			return e.moveSlot(action, i)
		}
	}
	e.addMoveToHistory(action, number, -1, -1, false)
	e.message = e.config.Messages.CantMove
	return false
}

// moveSlot performs the shared move path: derive a new board with the tile
// at target slid into the blank, record history, update the message.
func (e *PuzzleEngine) moveSlot(action string, target int) bool {
	tile := e.current.Tile(target)
	number := 0
	if tile != nil {
		number = tile.Number + 1
	}

	next, moved := e.current.Move(target)
	if !moved {
		e.addMoveToHistory(action, number, target, -1, false)
		e.message = e.config.Messages.CantMove
		return false
	}

	// The tile lands where the blank was.
	e.addMoveToHistory(action, number, target, e.current.EmptyIndex(), true)
	e.current = next

	if next.Resolved() {
		e.message = fmt.Sprintf(e.config.Messages.Solved, next.Steps())
	} else {
		e.message = fmt.Sprintf(e.config.Messages.MoveStatus, next.Steps(), next.Distance())
	}
	return true
}

// CanMove checks if a tile can slide in the specified direction
func (e *PuzzleEngine) CanMove(direction string) bool {
	_, ok := slidingSlot(e.current, direction)
	return ok
}

// GetPossibleMoves returns all directions with a tile able to slide
func (e *PuzzleEngine) GetPossibleMoves() []string {
	var possible []string
	for _, dir := range Directions {
		if e.CanMove(dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// BulkMove executes multiple moves in sequence, returning success status for
// each. It stops early once the board is solved.
func (e *PuzzleEngine) BulkMove(moves []string) []bool {
	results := make([]bool, 0, len(moves))

	for _, direction := range moves {
		if e.IsSolved() {
			break
		}
		results = append(results, e.Move(direction))
	}

	return results
}

// Shuffle applies the given number of random legal slides to the current
// board, drops its history, and clears the current move segment. Zero moves
// falls back to the config's shuffle depth.
func (e *PuzzleEngine) Shuffle(moves int) *GameState {
	if moves <= 0 {
		moves = e.config.ShuffleMoves
	}
	if moves <= 0 {
		moves = MaxBulkMoves
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	e.current = e.current.Shuffle(moves, rng)
	e.message = e.config.Messages.Shuffled
	e.currentMoves = []MoveHistoryEntry{}

	return e.GetState()
}

// addMoveToHistory appends an entry to both the cumulative and current-segment
// histories.
func (e *PuzzleEngine) addMoveToHistory(action string, tileNumber, from, to int, success bool) {
	entry := MoveHistoryEntry{
		Action:     action,
		TileNumber: tileNumber,
		FromIndex:  from,
		ToIndex:    to,
		Timestamp:  time.Now().Unix(),
		Success:    success,
		MoveNumber: e.totalMoves + 1,
	}
	e.history = append(e.history, entry)
	e.totalMoves++
	e.currentMoves = append(e.currentMoves, entry)
}
