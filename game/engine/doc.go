// Package engine provides the stateful game layer over the puzzle board.
//
// The engine package implements:
//   - Direction- and tile-based sliding moves
//   - Shuffling and reset with reproducible seeds
//   - Move history tracking across resets
//   - Serializable game state for persistence and transports
//   - Configuration loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by PuzzleEngine. GameState is the serializable snapshot of a
// session, while PuzzleConfig defines the puzzle parameters loaded from
// JSON files. The underlying state-space model lives in the board package;
// the engine only ever swaps one immutable board for the next.
//
// Usage:
//
//	config, err := engine.LoadConfigByName("classic3")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	puzzle, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Slide the tile below the blank upward
//	success := puzzle.Move("up")
//	state := puzzle.GetState()
//
// Directions name the sliding tile's travel, not the blank's: "up" moves
// the tile below the blank into it, "left" the tile to the blank's right,
// and so on. MoveTile slides a tile by its printed number instead.
package engine
