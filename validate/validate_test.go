package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write snapshot: %v", err)
	}
	return path
}

func hasError(result ValidationResult, substr string) bool {
	for _, err := range result.Errors {
		if strings.Contains(err, substr) {
			return true
		}
	}
	return false
}

func TestValidateSnapshot_ValidMidGame(t *testing.T) {
	validSnapshot := `{
		"grid": [
			[2, 0, 0, 0],
			[0, 4, 0, 0],
			[0, 0, 8, 0],
			[0, 0, 0, 2]
		],
		"score": 12,
		"won": false,
		"over": false,
		"max_tile": 8,
		"message": "Moved down (+8)",
		"move_history": [
			{"direction": "left", "moved": true, "score_delta": 4, "spawned": {"row": 3, "col": 3, "value": 2}, "timestamp": 1700000000, "move_number": 1},
			{"direction": "down", "moved": true, "score_delta": 8, "spawned": {"row": 0, "col": 0, "value": 2}, "timestamp": 1700000001, "move_number": 2}
		],
		"total_moves": 2
	}`

	path := writeSnapshot(t, validSnapshot)
	result := validateSnapshot(path)

	if !result.Valid {
		t.Errorf("Expected valid snapshot, but got errors: %v", result.Errors)
	}
	if result.File != filepath.Base(path) {
		t.Errorf("Expected file name %s, got %s", filepath.Base(path), result.File)
	}
	if !hasError(result, "✓ Score: 12") {
		t.Errorf("Expected informational score line, got: %v", result.Errors)
	}
}

func TestValidateSnapshot_ValidGameOver(t *testing.T) {
	// Alternating tiles: full board, no adjacent equals, so over is coherent
	overSnapshot := `{
		"grid": [
			[2, 4, 2, 4],
			[4, 2, 4, 2],
			[2, 4, 2, 4],
			[4, 2, 4, 2]
		],
		"score": 0,
		"won": false,
		"over": true,
		"max_tile": 4,
		"message": "Game over!",
		"move_history": [],
		"total_moves": 0
	}`

	result := validateSnapshot(writeSnapshot(t, overSnapshot))
	if !result.Valid {
		t.Errorf("Expected valid snapshot, but got errors: %v", result.Errors)
	}
	if !hasError(result, "✓ Status: game over") {
		t.Errorf("Expected game over status line, got: %v", result.Errors)
	}
}

func TestValidateSnapshot_MissingFile(t *testing.T) {
	result := validateSnapshot("/non/existent/snapshot.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
	if !hasError(result, "Failed to read file") {
		t.Error("Expected 'Failed to read file' error")
	}
}

func TestValidateSnapshot_InvalidJSON(t *testing.T) {
	result := validateSnapshot(writeSnapshot(t, `{"grid": [[2, 0`))
	if result.Valid {
		t.Error("Expected invalid snapshot due to bad JSON")
	}
	if !hasError(result, "Invalid JSON") {
		t.Error("Expected 'Invalid JSON' error")
	}
}

func TestValidateSnapshot_WrongBoardShape(t *testing.T) {
	threeRows := `{
		"grid": [
			[2, 0, 0, 0],
			[0, 0, 0, 0],
			[0, 0, 0, 0]
		],
		"score": 0,
		"max_tile": 2,
		"move_history": [],
		"total_moves": 0
	}`

	result := validateSnapshot(writeSnapshot(t, threeRows))
	if result.Valid {
		t.Error("Expected invalid snapshot due to missing row")
	}
	if !hasError(result, "Board must have 4 rows, got 3") {
		t.Errorf("Expected row count error, got: %v", result.Errors)
	}

	wideRow := `{
		"grid": [
			[2, 0, 0, 0],
			[0, 0, 0, 0, 0],
			[0, 0, 0, 0],
			[0, 0, 0, 0]
		],
		"score": 0,
		"max_tile": 2,
		"move_history": [],
		"total_moves": 0
	}`

	result = validateSnapshot(writeSnapshot(t, wideRow))
	if result.Valid {
		t.Error("Expected invalid snapshot due to a 5-cell row")
	}
	if !hasError(result, "Row 2 must have 4 cells, got 5") {
		t.Errorf("Expected row width error, got: %v", result.Errors)
	}
}

func TestValidateSnapshot_InvalidTileValue(t *testing.T) {
	badTile := `{
		"grid": [
			[2, 3, 0, 0],
			[0, 0, 0, 0],
			[0, 0, 0, 0],
			[0, 0, 0, 0]
		],
		"score": 0,
		"max_tile": 3,
		"move_history": [],
		"total_moves": 0
	}`

	result := validateSnapshot(writeSnapshot(t, badTile))
	if result.Valid {
		t.Error("Expected invalid snapshot due to a non power-of-two tile")
	}
	if !hasError(result, "Invalid tile 3 at [1,2]") {
		t.Errorf("Expected invalid tile error, got: %v", result.Errors)
	}
}

func TestValidateSnapshot_MaxTileMismatch(t *testing.T) {
	mismatch := `{
		"grid": [
			[2, 8, 0, 0],
			[0, 0, 0, 0],
			[0, 0, 0, 0],
			[0, 0, 0, 0]
		],
		"score": 0,
		"max_tile": 16,
		"move_history": [],
		"total_moves": 0
	}`

	result := validateSnapshot(writeSnapshot(t, mismatch))
	if result.Valid {
		t.Error("Expected invalid snapshot due to max_tile mismatch")
	}
	if !hasError(result, "max_tile is 16 but the board's largest tile is 8") {
		t.Errorf("Expected max_tile error, got: %v", result.Errors)
	}
}

func TestValidateSnapshot_NegativeScore(t *testing.T) {
	negative := `{
		"grid": [
			[2, 0, 0, 0],
			[0, 0, 0, 0],
			[0, 0, 0, 0],
			[0, 0, 0, 2]
		],
		"score": -4,
		"max_tile": 2,
		"move_history": [],
		"total_moves": 0
	}`

	result := validateSnapshot(writeSnapshot(t, negative))
	if result.Valid {
		t.Error("Expected invalid snapshot due to negative score")
	}
	if !hasError(result, "score must be non-negative") {
		t.Errorf("Expected score error, got: %v", result.Errors)
	}
}

func TestValidateSnapshot_OverWithMovesLeft(t *testing.T) {
	bogusOver := `{
		"grid": [
			[2, 2, 0, 0],
			[0, 0, 0, 0],
			[0, 0, 0, 0],
			[0, 0, 0, 0]
		],
		"score": 0,
		"over": true,
		"max_tile": 2,
		"move_history": [],
		"total_moves": 0
	}`

	result := validateSnapshot(writeSnapshot(t, bogusOver))
	if result.Valid {
		t.Error("Expected invalid snapshot: over is set on a playable board")
	}
	if !hasError(result, "over is set but moves remain available") {
		t.Errorf("Expected over coherence error, got: %v", result.Errors)
	}
}

func TestValidateSnapshot_WonWithoutWinningTile(t *testing.T) {
	bogusWin := `{
		"grid": [
			[2, 64, 0, 0],
			[0, 0, 0, 0],
			[0, 0, 0, 0],
			[0, 0, 0, 0]
		],
		"score": 100,
		"won": true,
		"max_tile": 64,
		"move_history": [],
		"total_moves": 0
	}`

	result := validateSnapshot(writeSnapshot(t, bogusWin))
	if result.Valid {
		t.Error("Expected invalid snapshot: won without a 2048 tile")
	}
	if !hasError(result, "won is set but the best tile is only 64") {
		t.Errorf("Expected won coherence error, got: %v", result.Errors)
	}
}

func TestValidateSnapshot_HistoryErrors(t *testing.T) {
	badHistory := `{
		"grid": [
			[2, 0, 0, 0],
			[0, 0, 0, 0],
			[0, 0, 0, 0],
			[0, 0, 0, 2]
		],
		"score": 0,
		"max_tile": 2,
		"move_history": [
			{"direction": "sideways", "moved": true, "score_delta": 0, "move_number": 1},
			{"direction": "left", "moved": false, "score_delta": 4, "move_number": 1},
			{"direction": "up", "moved": true, "score_delta": -2, "move_number": 3}
		],
		"total_moves": 5
	}`

	result := validateSnapshot(writeSnapshot(t, badHistory))
	if result.Valid {
		t.Error("Expected invalid snapshot due to history problems")
	}

	expectedErrors := []string{
		"invalid direction",
		"move_number 1 does not increase",
		"rejected move carries score delta 4",
		"negative score delta -2",
		"total_moves is 5 but the history holds 3 moves",
	}
	for _, want := range expectedErrors {
		if !hasError(result, want) {
			t.Errorf("Expected error containing %q, got: %v", want, result.Errors)
		}
	}
}

func TestValidateSnapshot_BadSpawn(t *testing.T) {
	badSpawn := `{
		"grid": [
			[2, 0, 0, 0],
			[0, 0, 0, 0],
			[0, 0, 0, 0],
			[0, 0, 0, 2]
		],
		"score": 0,
		"max_tile": 2,
		"move_history": [
			{"direction": "left", "moved": true, "score_delta": 0, "spawned": {"row": 7, "col": 0, "value": 2}, "move_number": 1},
			{"direction": "up", "moved": true, "score_delta": 0, "spawned": {"row": 1, "col": 1, "value": 8}, "move_number": 2}
		],
		"total_moves": 2
	}`

	result := validateSnapshot(writeSnapshot(t, badSpawn))
	if result.Valid {
		t.Error("Expected invalid snapshot due to bad spawn records")
	}
	if !hasError(result, "spawn position (7,0) is off the board") {
		t.Errorf("Expected spawn position error, got: %v", result.Errors)
	}
	if !hasError(result, "spawned tile must be 2 or 4, got 8") {
		t.Errorf("Expected spawn value error, got: %v", result.Errors)
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	tests := []struct {
		input    int
		expected bool
	}{
		{2, true},
		{4, true},
		{2048, true},
		{131072, true},
		{0, false},
		{1, false},
		{3, false},
		{6, false},
		{-2, false},
	}

	for _, test := range tests {
		result := isPowerOfTwo(test.input)
		if result != test.expected {
			t.Errorf("isPowerOfTwo(%d) = %v, expected %v", test.input, result, test.expected)
		}
	}
}
