package extract

import "sort"

// Row clustering thresholds, in device units. Fragments within sameLineJitter
// vertically are treated as one visual line when sorting; a fragment more
// than rowBreak below the fragment that started the current row begins a new
// row. Both values are unvalidated empirical heuristics inherited from the
// observed report layouts; changing either changes row grouping.
const (
	sameLineJitter = 10
	rowBreak       = 15
)

// buildGrid clusters positioned fragments into ordered rows of cells.
// It fully sorts before grouping, so the result is independent of input
// order and running it twice over the same set is idempotent.
func buildGrid(frags []Fragment) Grid {
	if len(frags) == 0 {
		return Grid{}
	}

	sorted := make([]Fragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		dy := sorted[i].Y - sorted[j].Y
		if dy < -sameLineJitter {
			return true
		}
		if dy > sameLineJitter {
			return false
		}
		// Within vertical jitter the pair is one visual line: order by X.
		return sorted[i].X < sorted[j].X
	})

	grid := Grid{}
	row := []Fragment{sorted[0]}
	anchorY := sorted[0].Y
	for _, f := range sorted[1:] {
		if abs(f.Y-anchorY) > rowBreak {
			grid = append(grid, flushRow(row))
			row = []Fragment{f}
			anchorY = f.Y
			continue
		}
		row = append(row, f)
	}
	return append(grid, flushRow(row))
}

// flushRow orders one row's fragments left to right and drops coordinates.
func flushRow(row []Fragment) []string {
	sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
	cells := make([]string, len(row))
	for i, f := range row {
		cells[i] = f.Text
	}
	return cells
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
