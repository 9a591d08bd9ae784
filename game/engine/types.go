package engine

import (
	"fmt"
	"strings"
)

const (
	// Size is the fixed board dimension.
	Size = 4
	// WinningTile is the value that flips the won flag when it first appears.
	WinningTile = 2048

	MaxBulkMoves        = 50
	WebSocketBufferSize = 256
)

// Direction is one of the four slide directions. Keeping it a closed
// enumeration makes an out-of-range direction unrepresentable inside the
// engine; strings are parsed at the service boundary.
type Direction int

const (
	Left Direction = iota
	Up
	Right
	Down
)

// Directions lists all four directions in a stable order.
var Directions = [4]Direction{Left, Up, Right, Down}

var directionNames = [4]string{"left", "up", "right", "down"}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	if d < Left || d > Down {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection converts a wire string into a Direction. Matching is
// case-insensitive; anything but the four direction names is an error.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return Left, nil
	case "up":
		return Up, nil
	case "right":
		return Right, nil
	case "down":
		return Down, nil
	default:
		return Left, fmt.Errorf("invalid direction %q (want up, down, left or right)", s)
	}
}

// rotations returns how many counter-clockwise quarter turns normalize the
// direction to a leftward slide.
func rotations(d Direction) int {
	return int(d)
}

// Grid is the 4x4 board. 0 is an empty cell; any positive value is a tile
// and is a power of two by construction. Grid is a value type: assignment
// copies it, which gives each turn its own snapshot.
type Grid [Size][Size]int

// MoveResult is the ephemeral outcome of applying one direction to a grid.
// If Moved is false the grid is identical to the input and ScoreDelta is 0.
type MoveResult struct {
	Grid       Grid
	Moved      bool
	ScoreDelta int
}

// TilePlacement identifies the cell a spawn filled and the value it placed.
type TilePlacement struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

// MoveRecord is a single entry in the move history. Rejected attempts are
// recorded too, with Moved false and no spawned tile; the history is a
// diagnostic log, never an undo stack.
type MoveRecord struct {
	Direction  string         `json:"direction"`
	Moved      bool           `json:"moved"`
	ScoreDelta int            `json:"score_delta"`
	Spawned    *TilePlacement `json:"spawned,omitempty"`
	Timestamp  int64          `json:"timestamp"`
	MoveNumber int            `json:"move_number"`
}

// GameState is the complete session state. Won and Over are sticky: once
// set they are never cleared for the lifetime of the game. Won does not
// imply Over; play may continue past 2048.
type GameState struct {
	Grid        Grid         `json:"grid"`
	Score       int          `json:"score"`
	Won         bool         `json:"won"`
	Over        bool         `json:"over"`
	MaxTile     int          `json:"max_tile"`
	Message     string       `json:"message"`
	MoveHistory []MoveRecord `json:"move_history"`
	TotalMoves  int          `json:"total_moves"`
}
