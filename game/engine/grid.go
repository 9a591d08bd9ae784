package engine

// fourTileChance is the probability that a spawned tile is a 4 instead of a 2.
const fourTileChance = 0.1

// CollapseLine slides one line toward index 0 and merges equal neighbours.
// Zeros are filtered out first, then a single left-to-right scan merges each
// pair of equal values into their sum; a merged cell never merges again in
// the same pass. The result is padded back to length Size with zeros. The
// second return value is the score delta: the sum of all merged pair values.
func CollapseLine(line [Size]int) ([Size]int, int) {
	compact := make([]int, 0, Size)
	for _, v := range line {
		if v != 0 {
			compact = append(compact, v)
		}
	}

	var out [Size]int
	delta := 0
	n := 0
	for i := 0; i < len(compact); n++ {
		if i+1 < len(compact) && compact[i] == compact[i+1] {
			merged := compact[i] * 2
			out[n] = merged
			delta += merged
			i += 2
		} else {
			out[n] = compact[i]
			i++
		}
	}
	return out, delta
}

// rotateCCW turns the grid a quarter turn counter-clockwise.
func rotateCCW(g Grid) Grid {
	var out Grid
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			out[Size-1-c][r] = g[r][c]
		}
	}
	return out
}

// ApplyMove slides the whole grid in the given direction. The move is
// normalized to a leftward slide by rotating the grid counter-clockwise
// k quarter turns (left 0, up 1, right 2, down 3), collapsing every row,
// then rotating back. If nothing changed the input grid is returned
// untouched with a zero score delta; callers must treat that as a rejected
// move and spawn no tile.
func ApplyMove(g Grid, dir Direction) MoveResult {
	k := rotations(dir)
	work := g
	for i := 0; i < k; i++ {
		work = rotateCCW(work)
	}

	moved := false
	delta := 0
	for r := 0; r < Size; r++ {
		collapsed, d := CollapseLine(work[r])
		if collapsed != work[r] {
			moved = true
		}
		delta += d
		work[r] = collapsed
	}

	if !moved {
		return MoveResult{Grid: g}
	}

	for i := 0; i < (4-k)%4; i++ {
		work = rotateCCW(work)
	}
	return MoveResult{Grid: work, Moved: true, ScoreDelta: delta}
}

// SpawnTile places a 2 (90%) or a 4 (10%) on a uniformly random empty cell
// and returns the new grid. A full grid is returned unchanged without
// consuming any randomness; that is a normal no-op, not an error.
func SpawnTile(g Grid, rng RandomSource) Grid {
	type cell struct{ r, c int }
	empties := make([]cell, 0, Size*Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] == 0 {
				empties = append(empties, cell{r, c})
			}
		}
	}
	if len(empties) == 0 {
		return g
	}

	pick := empties[rng.IntN(len(empties))]
	value := 2
	if rng.Float64() < fourTileChance {
		value = 4
	}
	g[pick.r][pick.c] = value
	return g
}

// IsTerminal reports whether no move can change the grid: every cell is
// occupied and no two horizontally or vertically adjacent cells are equal.
// Whether a 2048 tile exists is irrelevant here.
func IsTerminal(g Grid) bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] == 0 {
				return false
			}
			if c+1 < Size && g[r][c] == g[r][c+1] {
				return false
			}
			if r+1 < Size && g[r][c] == g[r+1][c] {
				return false
			}
		}
	}
	return true
}

// EmptyCount returns the number of empty cells.
func (g Grid) EmptyCount() int {
	count := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] == 0 {
				count++
			}
		}
	}
	return count
}

// MaxTile returns the largest tile value on the grid, 0 when empty.
func (g Grid) MaxTile() int {
	max := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] > max {
				max = g[r][c]
			}
		}
	}
	return max
}

// contains reports whether any cell holds the given value.
func (g Grid) contains(value int) bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] == value {
				return true
			}
		}
	}
	return false
}

// AvailableMoves returns the directions that would change the grid. The
// slice is empty exactly when the grid is terminal.
func AvailableMoves(g Grid) []Direction {
	var available []Direction
	for _, dir := range Directions {
		if ApplyMove(g, dir).Moved {
			available = append(available, dir)
		}
	}
	return available
}
