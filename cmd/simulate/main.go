// Command simulate plays unattended games against the grid engine and prints
// aggregate statistics: win rate, score averages and the distribution of best
// tiles reached. Playouts are deterministic per seed, so a run can be
// reproduced exactly by passing the same flags again.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/slidetile/twenty48/game/engine"
)

// gameResult captures one finished playout.
type gameResult struct {
	Seed     int64
	Score    int
	MaxTile  int
	Moves    int
	Won      bool
	Finished bool // false when the move cap stopped play before game over
}

// strategy picks the next direction for the current board.
type strategy interface {
	Name() string
	NextMove(state *engine.GameState) engine.Direction
}

// randomStrategy slides in a uniformly random available direction.
type randomStrategy struct {
	rng engine.RandomSource
}

func newRandomStrategy(seed int64) *randomStrategy {
	return &randomStrategy{rng: engine.NewSeededSource(seed)}
}

func (s *randomStrategy) Name() string { return "random" }

func (s *randomStrategy) NextMove(state *engine.GameState) engine.Direction {
	moves := engine.AvailableMoves(state.Grid)
	if len(moves) == 0 {
		return engine.Left
	}
	return moves[s.rng.IntN(len(moves))]
}

// cornerStrategy anchors the big tiles in the bottom-left corner: down and
// left whenever possible, right only to unlock a row, up as a last resort.
type cornerStrategy struct{}

func (cornerStrategy) Name() string { return "corner" }

func (cornerStrategy) NextMove(state *engine.GameState) engine.Direction {
	priority := [4]engine.Direction{engine.Down, engine.Left, engine.Right, engine.Up}
	available := engine.AvailableMoves(state.Grid)
	for _, dir := range priority {
		for _, a := range available {
			if dir == a {
				return dir
			}
		}
	}
	return engine.Down
}

// newStrategy builds the named strategy. The seed only matters for strategies
// that draw randomness of their own.
func newStrategy(name string, seed int64) (strategy, error) {
	switch name {
	case "random":
		return newRandomStrategy(seed), nil
	case "corner":
		return cornerStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want corner or random)", name)
	}
}

// playGame runs one playout to game over or the move cap, whichever first.
func playGame(seed int64, strat strategy, maxMoves int) gameResult {
	eng := engine.NewEngineWithSeed(seed)
	for !eng.IsOver() && eng.GetState().TotalMoves < maxMoves {
		eng.Move(strat.NextMove(eng.GetState()))
	}

	state := eng.GetState()
	return gameResult{
		Seed:     seed,
		Score:    state.Score,
		MaxTile:  state.MaxTile,
		Moves:    state.TotalMoves,
		Won:      state.Won,
		Finished: state.Over,
	}
}

// summary aggregates many playouts.
type summary struct {
	Games      int
	Wins       int
	BestScore  int
	BestSeed   int64
	TotalScore int
	TotalMoves int
	MoveCapped int
	TileCounts map[int]int // best tile reached -> number of games
}

func summarize(results []gameResult) summary {
	s := summary{TileCounts: make(map[int]int)}
	for i, r := range results {
		if i == 0 || r.Score > s.BestScore {
			s.BestScore = r.Score
			s.BestSeed = r.Seed
		}
		s.Games++
		if r.Won {
			s.Wins++
		}
		s.TotalScore += r.Score
		s.TotalMoves += r.Moves
		if !r.Finished {
			s.MoveCapped++
		}
		s.TileCounts[r.MaxTile]++
	}
	return s
}

func formatResult(r gameResult) string {
	status := "move cap"
	switch {
	case r.Won:
		status = "WON"
	case r.Finished:
		status = "over"
	}
	return fmt.Sprintf("seed %-8d score %-7d best %-5d moves %-5d %s",
		r.Seed, r.Score, r.MaxTile, r.Moves, status)
}

func printSummary(s summary) {
	if s.Games == 0 {
		return
	}

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Games played:  %d\n", s.Games)
	fmt.Printf("Wins (2048):   %d (%.1f%%)\n", s.Wins, percent(s.Wins, s.Games))
	fmt.Printf("Average score: %.0f\n", float64(s.TotalScore)/float64(s.Games))
	fmt.Printf("Best score:    %d (seed %d)\n", s.BestScore, s.BestSeed)
	fmt.Printf("Average moves: %.0f\n", float64(s.TotalMoves)/float64(s.Games))
	if s.MoveCapped > 0 {
		fmt.Printf("⚠️  %d games hit the move cap before reaching game over\n", s.MoveCapped)
	}

	fmt.Printf("\nBest tile reached:\n")
	tiles := make([]int, 0, len(s.TileCounts))
	for tile := range s.TileCounts {
		tiles = append(tiles, tile)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(tiles)))
	for _, tile := range tiles {
		count := s.TileCounts[tile]
		fmt.Printf("  %5d: %3d games (%.1f%%)\n", tile, count, percent(count, s.Games))
	}
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}

func main() {
	games := flag.Int("games", 10, "Number of games to play")
	seed := flag.Int64("seed", 1, "Base seed; game i plays with seed+i (0 = draw a random base seed)")
	stratName := flag.String("strategy", "corner", "Move strategy: corner or random")
	maxMoves := flag.Int("max-moves", 10000, "Stop a game after this many moves")
	verbose := flag.Bool("v", false, "Print one line per game")
	flag.Parse()

	if *games < 1 {
		fmt.Fprintln(os.Stderr, "games must be at least 1")
		os.Exit(2)
	}
	if *maxMoves < 1 {
		fmt.Fprintln(os.Stderr, "max-moves must be at least 1")
		os.Exit(2)
	}

	baseSeed := *seed
	if baseSeed == 0 {
		drawn, err := engine.NewSeed()
		if err != nil {
			fmt.Fprintf(os.Stderr, "draw seed: %v\n", err)
			os.Exit(1)
		}
		baseSeed = drawn
	}

	fmt.Printf("=== Simulating %d games: strategy=%s base-seed=%d max-moves=%d ===\n",
		*games, *stratName, baseSeed, *maxMoves)

	results := make([]gameResult, 0, *games)
	for i := 0; i < *games; i++ {
		gameSeed := baseSeed + int64(i)
		strat, err := newStrategy(*stratName, gameSeed)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		result := playGame(gameSeed, strat, *maxMoves)
		results = append(results, result)
		if *verbose {
			fmt.Println(formatResult(result))
		}
	}

	printSummary(summarize(results))
}
