package engine

import (
	"fmt"

	"github.com/wricardo/mcp-training/npuzzle/game/board"
)

// Engine provides the main interface for puzzle operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() (*GameState, error)
	IsSolved() bool
	GetSteps() int
	GetDistance() int
	Board() *board.Board

	// Movement operations
	Move(direction string) bool
	MoveTile(number int) bool
	CanMove(direction string) bool
	GetPossibleMoves() []string
	BulkMove(moves []string) []bool
	Shuffle(moves int) *GameState

	// Configuration
	GetConfig() *PuzzleConfig
	SetConfig(config *PuzzleConfig) error

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// PuzzleEngine implements the Engine interface. It owns the current
// displayed board and replaces it wholesale on every successful move; the
// board package never mutates a board in place.
type PuzzleEngine struct {
	config  *PuzzleConfig
	current *board.Board
	message string

	history      []MoveHistoryEntry
	currentMoves []MoveHistoryEntry
	totalMoves   int
}

// NewEngine creates a new puzzle engine with the provided configuration
func NewEngine(config *PuzzleConfig) (*PuzzleEngine, error) {
	if err := ValidatePuzzleConfig(config); err != nil {
		return nil, err
	}

	b, err := InitBoardFromConfig(config)
	if err != nil {
		return nil, err
	}

	return &PuzzleEngine{
		config:  config,
		current: b,
		message: config.Messages.Welcome,
	}, nil
}

// NewEngineWithDefaults creates a new puzzle engine with default configuration
func NewEngineWithDefaults() *PuzzleEngine {
	config := DefaultConfig()
	b, _ := InitBoardFromConfig(config)
	return &PuzzleEngine{
		config:  config,
		current: b,
		message: config.Messages.Welcome,
	}
}

// Board returns the current displayed board. Callers must treat it as
// read-only; every mutation goes through the engine.
func (e *PuzzleEngine) Board() *board.Board {
	return e.current
}

// GetState builds a serializable snapshot of the current board and history.
func (e *PuzzleEngine) GetState() *GameState {
	tiles := e.current.Tiles()
	numbers := make([]int, len(tiles))
	labels := make([]string, len(tiles))
	for i, tile := range tiles {
		if tile == nil {
			numbers[i] = board.Empty
			labels[i] = ""
			continue
		}
		numbers[i] = tile.Number
		labels[i] = tile.Label
	}

	return &GameState{
		GridSize:          e.current.Size(),
		Tiles:             numbers,
		Labels:            labels,
		EmptyIndex:        e.current.EmptyIndex(),
		Steps:             e.current.Steps(),
		Heuristic:         e.current.Distance(),
		Solved:            e.current.Resolved(),
		Message:           e.message,
		ConfigName:        e.config.Name,
		MoveHistory:       e.history,
		TotalMoves:        e.totalMoves,
		CurrentMoves:      e.currentMoves,
		CurrentMovesCount: len(e.currentMoves),
	}
}

// SetState restores a snapshot (used for persistence loading).
func (e *PuzzleEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}

	b, err := board.Restore(state.GridSize, state.Tiles, state.Steps)
	if err != nil {
		return fmt.Errorf("failed to restore board: %w", err)
	}

	e.current = b
	e.message = state.Message
	e.history = state.MoveHistory
	e.currentMoves = state.CurrentMoves
	e.totalMoves = state.TotalMoves
	return nil
}

// Reset rebuilds the starting board from the config. Cumulative history and
// totals survive a reset; only the current segment is cleared.
func (e *PuzzleEngine) Reset() (*GameState, error) {
	b, err := InitBoardFromConfig(e.config)
	if err != nil {
		return nil, err
	}

	e.current = b
	e.message = e.config.Messages.Welcome
	e.currentMoves = []MoveHistoryEntry{}

	return e.GetState(), nil
}

// IsSolved reports whether the current board is in the solved layout.
func (e *PuzzleEngine) IsSolved() bool {
	return e.current.Resolved()
}

// GetSteps returns the move count since the last reset or shuffle.
func (e *PuzzleEngine) GetSteps() int {
	return e.current.Steps()
}

// GetDistance returns the current Manhattan-distance heuristic.
func (e *PuzzleEngine) GetDistance() int {
	return e.current.Distance()
}

// GetConfig returns the current puzzle configuration
func (e *PuzzleEngine) GetConfig() *PuzzleConfig {
	return e.config
}

// SetConfig sets a new puzzle configuration and restarts the game
func (e *PuzzleEngine) SetConfig(config *PuzzleConfig) error {
	if err := ValidatePuzzleConfig(config); err != nil {
		return err
	}

	b, err := InitBoardFromConfig(config)
	if err != nil {
		return err
	}

	e.config = config
	e.current = b
	e.message = config.Messages.Welcome
	e.currentMoves = []MoveHistoryEntry{}
	return nil
}

// GetMoveHistory returns the complete move history
func (e *PuzzleEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.history
}

// GetLastMove returns the last move made, or nil if no moves
func (e *PuzzleEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.history) == 0 {
		return nil
	}
	return &e.history[len(e.history)-1]
}
