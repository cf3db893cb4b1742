package extract

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestBuildGrid_Empty(t *testing.T) {
	grid := buildGrid(nil)
	if len(grid) != 0 {
		t.Errorf("expected empty grid, got %v", grid)
	}
}

func TestBuildGrid_SingleFragment(t *testing.T) {
	grid := buildGrid([]Fragment{{Text: "only", X: 3, Y: 9}})
	want := Grid{{"only"}}
	if !reflect.DeepEqual(grid, want) {
		t.Errorf("grid = %v, want %v", grid, want)
	}
}

func TestBuildGrid_SameRowWithinThreshold(t *testing.T) {
	grid := buildGrid([]Fragment{
		{Text: "a", X: 0, Y: 100},
		{Text: "b", X: 50, Y: 114},
	})
	want := Grid{{"a", "b"}}
	if !reflect.DeepEqual(grid, want) {
		t.Errorf("y=100 and y=114 must share a row, got %v", grid)
	}
}

func TestBuildGrid_NewRowPastThreshold(t *testing.T) {
	grid := buildGrid([]Fragment{
		{Text: "a", X: 0, Y: 100},
		{Text: "b", X: 50, Y: 116},
	})
	want := Grid{{"a"}, {"b"}}
	if !reflect.DeepEqual(grid, want) {
		t.Errorf("y=100 and y=116 must split rows, got %v", grid)
	}
}

func TestBuildGrid_CellsOrderedByX(t *testing.T) {
	grid := buildGrid([]Fragment{
		{Text: "right", X: 200, Y: 50},
		{Text: "left", X: 10, Y: 52},
		{Text: "middle", X: 90, Y: 48},
	})
	want := Grid{{"left", "middle", "right"}}
	if !reflect.DeepEqual(grid, want) {
		t.Errorf("grid = %v, want %v", grid, want)
	}
}

func TestBuildGrid_RowsOrderedByY(t *testing.T) {
	grid := buildGrid([]Fragment{
		{Text: "footer", X: 0, Y: 900},
		{Text: "header", X: 0, Y: 10},
		{Text: "body", X: 0, Y: 400},
	})
	want := Grid{{"header"}, {"body"}, {"footer"}}
	if !reflect.DeepEqual(grid, want) {
		t.Errorf("grid = %v, want %v", grid, want)
	}
}

func TestBuildGrid_FinalRowFlushed(t *testing.T) {
	grid := buildGrid([]Fragment{
		{Text: "r1", X: 0, Y: 0},
		{Text: "r2", X: 0, Y: 100},
	})
	if len(grid) != 2 || grid[1][0] != "r2" {
		t.Errorf("final row must be flushed, got %v", grid)
	}
}

func TestBuildGrid_PermutationInvariant(t *testing.T) {
	frags := []Fragment{
		{Text: "A1", X: 10, Y: 5},
		{Text: "B1", X: 120, Y: 7},
		{Text: "C1", X: 300, Y: 5},
		{Text: "A2", X: 10, Y: 60},
		{Text: "B2", X: 120, Y: 63},
		{Text: "A3", X: 10, Y: 120},
		{Text: "B3", X: 120, Y: 120},
		{Text: "C3", X: 300, Y: 118},
	}
	want := buildGrid(frags)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		shuffled := make([]Fragment, len(frags))
		copy(shuffled, frags)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		got := buildGrid(shuffled)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("trial %d: grid differs under permutation:\ngot  %v\nwant %v", trial, got, want)
		}
	}
}

func TestBuildGrid_Idempotent(t *testing.T) {
	frags := []Fragment{
		{Text: "x", X: 5, Y: 0},
		{Text: "y", X: 80, Y: 8},
		{Text: "z", X: 0, Y: 40},
	}
	first := buildGrid(frags)
	second := buildGrid(frags)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("buildGrid not idempotent: %v vs %v", first, second)
	}
}

func TestBuildGrid_DoesNotMutateInput(t *testing.T) {
	frags := []Fragment{
		{Text: "b", X: 100, Y: 0},
		{Text: "a", X: 0, Y: 0},
	}
	buildGrid(frags)
	if frags[0].Text != "b" || frags[1].Text != "a" {
		t.Errorf("input slice was reordered: %+v", frags)
	}
}
