package main

import (
	"strings"
	"testing"

	"github.com/slidetile/twenty48/game/engine"
)

func TestNewStrategy(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"corner", "corner", false},
		{"random", "random", false},
		{"diagonal", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		strat, err := newStrategy(tt.name, 1)
		if tt.wantErr {
			if err == nil {
				t.Errorf("newStrategy(%q) expected error, got nil", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("newStrategy(%q) failed: %v", tt.name, err)
			continue
		}
		if strat.Name() != tt.want {
			t.Errorf("newStrategy(%q).Name() = %q, want %q", tt.name, strat.Name(), tt.want)
		}
	}
}

func TestCornerStrategyPriority(t *testing.T) {
	tests := []struct {
		name string
		grid engine.Grid
		want engine.Direction
	}{
		{
			name: "prefers down when everything is open",
			grid: engine.Grid{
				{2, 0, 0, 0},
				{0, 2, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			want: engine.Down,
		},
		{
			name: "falls back to left when down does nothing",
			grid: engine.Grid{
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 2, 4, 2},
			},
			want: engine.Left,
		},
		{
			name: "takes up as a last resort",
			grid: engine.Grid{
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{2, 4, 2, 4},
			},
			want: engine.Up,
		},
	}

	strat := cornerStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strat.NextMove(&engine.GameState{Grid: tt.grid})
			if got != tt.want {
				t.Errorf("NextMove = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRandomStrategyPicksAvailableMoves(t *testing.T) {
	grid := engine.Grid{
		{2, 0, 0, 0},
		{0, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	state := &engine.GameState{Grid: grid}
	available := engine.AvailableMoves(grid)

	strat := newRandomStrategy(7)
	for i := 0; i < 20; i++ {
		dir := strat.NextMove(state)
		found := false
		for _, a := range available {
			if a == dir {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("NextMove returned %s, which is not an available move", dir)
		}
	}
}

func TestRandomStrategyDeterministic(t *testing.T) {
	grid := engine.Grid{
		{2, 0, 0, 0},
		{0, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	state := &engine.GameState{Grid: grid}

	a := newRandomStrategy(3)
	b := newRandomStrategy(3)
	for i := 0; i < 10; i++ {
		if got, want := a.NextMove(state), b.NextMove(state); got != want {
			t.Fatalf("move %d diverged: %s vs %s", i, got, want)
		}
	}
}

func TestPlayGameDeterministic(t *testing.T) {
	first := playGame(42, cornerStrategy{}, 10000)
	second := playGame(42, cornerStrategy{}, 10000)

	if first != second {
		t.Errorf("same seed produced different playouts: %+v vs %+v", first, second)
	}
}

func TestPlayGameRunsToGameOver(t *testing.T) {
	result := playGame(1, cornerStrategy{}, 100000)

	if !result.Finished {
		t.Error("Expected the playout to reach game over")
	}
	if result.Score <= 0 {
		t.Errorf("Expected a positive score, got %d", result.Score)
	}
	// A full board of nothing but 2s cannot be terminal
	if result.MaxTile < 4 {
		t.Errorf("Expected a best tile of at least 4, got %d", result.MaxTile)
	}
	if result.Moves < 14 {
		t.Errorf("Filling the board takes at least 14 moves, got %d", result.Moves)
	}
}

func TestPlayGameHonorsMoveCap(t *testing.T) {
	result := playGame(5, cornerStrategy{}, 5)

	if result.Moves != 5 {
		t.Errorf("Expected exactly 5 moves, got %d", result.Moves)
	}
	// Seven tiles at most after five spawns: the board cannot be full
	if result.Finished {
		t.Error("Expected the move cap to stop play before game over")
	}
}

func TestSummarize(t *testing.T) {
	results := []gameResult{
		{Seed: 1, Score: 1200, MaxTile: 128, Moves: 150, Finished: true},
		{Seed: 2, Score: 24000, MaxTile: 2048, Moves: 900, Won: true, Finished: true},
		{Seed: 3, Score: 3600, MaxTile: 256, Moves: 310, Finished: false},
		{Seed: 4, Score: 800, MaxTile: 128, Moves: 120, Finished: true},
	}

	s := summarize(results)

	if s.Games != 4 {
		t.Errorf("Expected 4 games, got %d", s.Games)
	}
	if s.Wins != 1 {
		t.Errorf("Expected 1 win, got %d", s.Wins)
	}
	if s.BestScore != 24000 || s.BestSeed != 2 {
		t.Errorf("Expected best score 24000 from seed 2, got %d from seed %d", s.BestScore, s.BestSeed)
	}
	if s.TotalScore != 29600 {
		t.Errorf("Expected total score 29600, got %d", s.TotalScore)
	}
	if s.TotalMoves != 1480 {
		t.Errorf("Expected 1480 total moves, got %d", s.TotalMoves)
	}
	if s.MoveCapped != 1 {
		t.Errorf("Expected 1 move-capped game, got %d", s.MoveCapped)
	}
	if s.TileCounts[128] != 2 || s.TileCounts[256] != 1 || s.TileCounts[2048] != 1 {
		t.Errorf("Unexpected tile counts: %v", s.TileCounts)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := summarize(nil)
	if s.Games != 0 || s.Wins != 0 || s.BestScore != 0 {
		t.Errorf("Expected zero summary, got %+v", s)
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		result gameResult
		want   string
	}{
		{gameResult{Seed: 9, Score: 21000, MaxTile: 2048, Moves: 950, Won: true, Finished: true}, "WON"},
		{gameResult{Seed: 3, Score: 1800, MaxTile: 256, Moves: 240, Finished: true}, "over"},
		{gameResult{Seed: 4, Score: 600, MaxTile: 64, Moves: 100}, "move cap"},
	}

	for _, tt := range tests {
		line := formatResult(tt.result)
		if !strings.Contains(line, tt.want) {
			t.Errorf("formatResult(%+v) = %q, want it to contain %q", tt.result, line, tt.want)
		}
		if !strings.Contains(line, "seed") || !strings.Contains(line, "score") {
			t.Errorf("formatResult missing fields: %q", line)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, total int
		want        float64
	}{
		{1, 4, 25},
		{0, 10, 0},
		{10, 10, 100},
		{0, 0, 0},
	}

	for _, tt := range tests {
		if got := percent(tt.part, tt.total); got != tt.want {
			t.Errorf("percent(%d, %d) = %.1f, want %.1f", tt.part, tt.total, got, tt.want)
		}
	}
}
