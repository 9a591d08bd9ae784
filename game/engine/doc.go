// Package engine provides the core game logic for Twenty48.
//
// The engine package implements the sliding-tile mechanics including:
//   - Line collapse (slide + merge) with score accounting
//   - Rotation-based direction normalization
//   - Random tile spawning with an injectable entropy source
//   - Terminal-state detection
//   - Game state management and move history
//
// Core Types:
//
// Grid is a fixed 4x4 value type; every turn produces a fresh snapshot, so
// no grid is ever mutated in place. Direction is a closed enumeration of the
// four slide directions. GameEngine holds the mutable session state (grid,
// score, won/over flags) and applies one turn per Move call.
//
// Usage:
//
//	gameEngine := engine.NewEngineWithDefaults()
//
//	// Slide the board
//	moved := gameEngine.Move(engine.Left)
//	state := gameEngine.GetState()
//
// Game Rules:
//
// Tiles slide as far as possible in the chosen direction; two tiles with the
// same value merge into their sum, and each merge adds that sum to the score.
// After every accepted move a new tile (2 or 4) spawns on a random empty cell.
// The game is won when a 2048 tile appears and over when no move can change
// the board. A move that changes nothing is rejected as a no-op, never an
// error.
package engine
