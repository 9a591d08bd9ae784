package engine

import (
	"fmt"
	"time"
)

// Messages surfaced to players as the game state changes.
const (
	WelcomeMessage  = "Join the numbers and get to the 2048 tile!"
	WinMessage      = "You win!"
	GameOverMessage = "Game over!"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	NewGame() *GameState
	IsOver() bool
	IsWon() bool
	GetScore() int
	GetMaxTile() int

	// Movement operations
	Move(dir Direction) bool
	CanMove(dir Direction) bool
	GetAvailableMoves() []Direction
	BulkMove(moves []Direction) []bool

	// History
	GetMoveHistory() []MoveRecord
	GetLastMove() *MoveRecord
}

// GameEngine implements the Engine interface. It owns exactly one current
// grid snapshot; every accepted move replaces it wholesale, so rejecting a
// candidate grid needs no rollback.
type GameEngine struct {
	state *GameState
	rng   RandomSource
}

// NewEngine creates a game engine drawing spawn randomness from rng.
func NewEngine(rng RandomSource) *GameEngine {
	e := &GameEngine{rng: rng}
	e.state = e.newGameState()
	return e
}

// NewEngineWithSeed creates a deterministic engine: the same seed always
// replays the same game.
func NewEngineWithSeed(seed int64) *GameEngine {
	return NewEngine(NewSeededSource(seed))
}

// NewEngineWithDefaults creates an engine seeded from crypto/rand.
func NewEngineWithDefaults() *GameEngine {
	return NewEngine(NewRandomSource())
}

// newGameState builds a zeroed board and spawns the two starting tiles, the
// second spawn seeing the first.
func (e *GameEngine) newGameState() *GameState {
	var g Grid
	g = SpawnTile(g, e.rng)
	g = SpawnTile(g, e.rng)
	return &GameState{
		Grid:        g,
		MaxTile:     g.MaxTile(),
		Message:     WelcomeMessage,
		MoveHistory: []MoveRecord{},
	}
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// NewGame restarts the board for the same session. Cumulative move history
// and the total move count survive the restart; only grid, score and flags
// are reinitialized. This is "try again", not undo.
func (e *GameEngine) NewGame() *GameState {
	prevHistory := e.state.MoveHistory
	prevTotal := e.state.TotalMoves

	e.state = e.newGameState()
	e.state.MoveHistory = prevHistory
	e.state.TotalMoves = prevTotal
	return e.state
}

// IsOver returns whether the game is finished
func (e *GameEngine) IsOver() bool {
	return e.state.Over
}

// IsWon returns whether a 2048 tile has been reached
func (e *GameEngine) IsWon() bool {
	return e.state.Won
}

// GetScore returns the cumulative score
func (e *GameEngine) GetScore() int {
	return e.state.Score
}

// GetMaxTile returns the largest tile currently on the board
func (e *GameEngine) GetMaxTile() int {
	return e.state.MaxTile
}

// Move slides the board in the given direction and runs one full turn:
// collapse, spawn, score, win and terminal checks. It returns true when the
// board changed. Rejected moves (game already over, or nothing slid) return
// false without spawning a tile or touching the score; rejections are normal
// outcomes, never errors. Every attempt is appended to the move history.
func (e *GameEngine) Move(dir Direction) bool {
	if e.state.Over {
		e.recordMove(dir, false, 0, nil)
		return false
	}

	result := ApplyMove(e.state.Grid, dir)
	if !result.Moved {
		// A board no direction can change is finished even when it was
		// loaded in that shape instead of reached through play.
		if IsTerminal(e.state.Grid) {
			e.state.Over = true
			e.state.Message = GameOverMessage
		} else {
			e.state.Message = fmt.Sprintf("Nothing to slide %s", dir)
		}
		e.recordMove(dir, false, 0, nil)
		return false
	}

	next := SpawnTile(result.Grid, e.rng)
	spawned := diffSpawn(result.Grid, next)

	e.state.Grid = next
	e.state.Score += result.ScoreDelta
	e.state.MaxTile = next.MaxTile()
	if result.ScoreDelta > 0 {
		e.state.Message = fmt.Sprintf("Moved %s (+%d)", dir, result.ScoreDelta)
	} else {
		e.state.Message = fmt.Sprintf("Moved %s", dir)
	}

	// Win check runs on the post-spawn grid and is sticky; reaching 2048
	// does not end the game.
	if !e.state.Won && next.contains(WinningTile) {
		e.state.Won = true
		e.state.Message = WinMessage
	}

	// Terminal check runs on the post-spawn grid too: a board with an empty
	// cell is never terminal regardless of adjacency.
	if next.EmptyCount() == 0 && IsTerminal(next) {
		e.state.Over = true
		e.state.Message = GameOverMessage
	}

	e.recordMove(dir, true, result.ScoreDelta, spawned)
	return true
}

// CanMove checks whether sliding in the given direction would change the board
func (e *GameEngine) CanMove(dir Direction) bool {
	if e.state.Over {
		return false
	}
	return ApplyMove(e.state.Grid, dir).Moved
}

// GetAvailableMoves returns all directions that would change the board
func (e *GameEngine) GetAvailableMoves() []Direction {
	if e.state.Over {
		return nil
	}
	return AvailableMoves(e.state.Grid)
}

// BulkMove executes multiple moves in sequence, returning the outcome of each.
// The sequence stops early once the game is over.
func (e *GameEngine) BulkMove(moves []Direction) []bool {
	results := make([]bool, 0, len(moves))
	for _, dir := range moves {
		if e.IsOver() {
			break
		}
		results = append(results, e.Move(dir))
	}
	return results
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveRecord {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveRecord {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}

// recordMove appends one attempt to the history and bumps the move counter.
func (e *GameEngine) recordMove(dir Direction, moved bool, delta int, spawned *TilePlacement) {
	entry := MoveRecord{
		Direction:  dir.String(),
		Moved:      moved,
		ScoreDelta: delta,
		Spawned:    spawned,
		Timestamp:  time.Now().Unix(),
		MoveNumber: e.state.TotalMoves + 1,
	}
	e.state.MoveHistory = append(e.state.MoveHistory, entry)
	e.state.TotalMoves++
}

// diffSpawn recovers where SpawnTile placed its tile by comparing the grids
// before and after. Nil when nothing was placed (full board).
func diffSpawn(before, after Grid) *TilePlacement {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if before[r][c] != after[r][c] {
				return &TilePlacement{Row: r, Col: c, Value: after[r][c]}
			}
		}
	}
	return nil
}
