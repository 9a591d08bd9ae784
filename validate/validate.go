// Command validate provides a small CLI that lints captured game snapshots:
// JSON files holding the game-state document the API serves. It checks:
//   - JSON structure and a board of exactly 4x4 cells
//   - Tile values: every cell is empty (0) or a power of two of at least 2
//   - Score and max_tile consistency with the board
//   - Flag coherence: over implies no move remains, won implies 2048 was built
//   - Move history: parseable directions, increasing move numbers, sane deltas
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/slidetile/twenty48/game/engine"
)

// Snapshot mirrors the JSON schema of a saved game state. The grid is kept as
// a plain slice so shape problems surface as validation errors instead of
// being silently zero-padded away.
type Snapshot struct {
	Grid        [][]int        `json:"grid"`
	Score       int            `json:"score"`
	Won         bool           `json:"won"`
	Over        bool           `json:"over"`
	MaxTile     int            `json:"max_tile"`
	Message     string         `json:"message"`
	MoveHistory []SnapshotMove `json:"move_history"`
	TotalMoves  int            `json:"total_moves"`
}

// SnapshotMove mirrors one move history entry.
type SnapshotMove struct {
	Direction  string         `json:"direction"`
	Moved      bool           `json:"moved"`
	ScoreDelta int            `json:"score_delta"`
	Spawned    *SnapshotSpawn `json:"spawned,omitempty"`
	Timestamp  int64          `json:"timestamp"`
	MoveNumber int            `json:"move_number"`
}

// SnapshotSpawn mirrors a spawned tile placement.
type SnapshotSpawn struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateSnapshot loads and validates a single snapshot JSON file. It checks
// the board shape and tile values, the derived fields, the state flags and
// the move history.
func validateSnapshot(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	gridOK := validateGrid(&snap, &result)

	if snap.Score < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("score must be non-negative, got %d", snap.Score))
	}

	if gridOK {
		validateDerivedFields(&snap, &result)
	}

	validateHistory(&snap, &result)

	// Add informational data
	if result.Valid {
		status := "in progress"
		switch {
		case snap.Won && snap.Over:
			status = "won, game over"
		case snap.Over:
			status = "game over"
		case snap.Won:
			status = "won, still playing"
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Score: %d", snap.Score))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Best tile: %d", snap.MaxTile))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Moves: %d", snap.TotalMoves))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Status: %s", status))
	}

	return result
}

// validateGrid checks the board shape and tile values. It reports whether the
// shape is usable for the derived-field checks.
func validateGrid(snap *Snapshot, result *ValidationResult) bool {
	if len(snap.Grid) != engine.Size {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Board must have %d rows, got %d", engine.Size, len(snap.Grid)))
		return false
	}

	shapeOK := true
	for i, row := range snap.Grid {
		if len(row) != engine.Size {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d must have %d cells, got %d", i+1, engine.Size, len(row)))
			shapeOK = false
			continue
		}
		for j, v := range row {
			if v != 0 && !isPowerOfTwo(v) {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Invalid tile %d at [%d,%d]: tiles are powers of two", v, i+1, j+1))
			}
		}
	}
	return shapeOK
}

// validateDerivedFields checks max_tile against the board and the won/over
// flags against what the board allows. Only called with a well-shaped grid.
func validateDerivedFields(snap *Snapshot, result *ValidationResult) {
	grid := toGrid(snap.Grid)

	if boardMax := grid.MaxTile(); snap.MaxTile != boardMax {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("max_tile is %d but the board's largest tile is %d", snap.MaxTile, boardMax))
	}

	if snap.Won && snap.MaxTile < engine.WinningTile {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("won is set but the best tile is only %d", snap.MaxTile))
	}

	if snap.Over && !engine.IsTerminal(grid) {
		result.Valid = false
		result.Errors = append(result.Errors, "over is set but moves remain available")
	}
}

// validateHistory checks that every recorded move parses, that move numbers
// strictly increase, that deltas are coherent with the moved flag and that
// the total matches the history length.
func validateHistory(snap *Snapshot, result *ValidationResult) {
	lastNumber := 0
	for i, m := range snap.MoveHistory {
		if _, err := engine.ParseDirection(m.Direction); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Move %d: %v", i+1, err))
		}
		if m.MoveNumber <= lastNumber {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Move %d: move_number %d does not increase (previous %d)", i+1, m.MoveNumber, lastNumber))
		}
		lastNumber = m.MoveNumber

		if m.ScoreDelta < 0 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Move %d: negative score delta %d", i+1, m.ScoreDelta))
		}
		if !m.Moved && m.ScoreDelta != 0 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Move %d: rejected move carries score delta %d", i+1, m.ScoreDelta))
		}
		if !m.Moved && m.Spawned != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Move %d: rejected move spawned a tile", i+1))
		}

		if sp := m.Spawned; sp != nil {
			if sp.Row < 0 || sp.Row >= engine.Size || sp.Col < 0 || sp.Col >= engine.Size {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Move %d: spawn position (%d,%d) is off the board", i+1, sp.Row, sp.Col))
			}
			if sp.Value != 2 && sp.Value != 4 {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Move %d: spawned tile must be 2 or 4, got %d", i+1, sp.Value))
			}
		}
	}

	if len(snap.MoveHistory) != snap.TotalMoves {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("total_moves is %d but the history holds %d moves", snap.TotalMoves, len(snap.MoveHistory)))
	}
}

// isPowerOfTwo reports whether v is a power of two no smaller than 2.
func isPowerOfTwo(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// toGrid converts a well-shaped slice board into an engine grid.
func toGrid(cells [][]int) engine.Grid {
	var g engine.Grid
	for r := 0; r < engine.Size; r++ {
		for c := 0; c < engine.Size; c++ {
			g[r][c] = cells[r][c]
		}
	}
	return g
}

// main scans a snapshot directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are
// invalid. The directory defaults to ./snapshots and can be overridden with
// the first argument.
func main() {
	snapshotDir := "snapshots"
	if len(os.Args) > 1 {
		snapshotDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(snapshotDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding snapshot files: %v\n", err)
		os.Exit(1)
	}

	if len(files) == 0 {
		fmt.Printf("No snapshots found in %s\n", snapshotDir)
		return
	}

	allValid := true
	for _, file := range files {
		result := validateSnapshot(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All snapshots are valid!")
	} else {
		fmt.Println("❌ Some snapshots have errors")
		os.Exit(1)
	}
}
