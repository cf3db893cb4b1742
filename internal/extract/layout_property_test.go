package extract

import (
	"fmt"
	"reflect"
	"testing"
	"testing/quick"
)

// Property: the reconstructor fully sorts before grouping, so the grid it
// produces is a pure function of the fragment set — reversing the input
// order changes nothing, and no fragment is ever dropped or duplicated.
func TestProperty_GridIsOrderIndependentAndLossless(t *testing.T) {
	f := func(points []struct{ X, Y uint8 }) bool {
		// Distinct coordinates only: two fragments sharing an exact (X,Y)
		// have no defined relative order. Rows are spread far apart so
		// every Y pair is either identical or unambiguously ordered.
		used := make(map[[2]uint8]bool)
		var frags []Fragment
		for i, p := range points {
			if used[[2]uint8{p.X, p.Y}] {
				continue
			}
			used[[2]uint8{p.X, p.Y}] = true
			frags = append(frags, Fragment{
				Text: fmt.Sprintf("cell-%d", i),
				X:    int(p.X),
				Y:    int(p.Y) * 40,
			})
		}
		want := buildGrid(frags)

		reversed := make([]Fragment, len(frags))
		for i, fr := range frags {
			reversed[len(frags)-1-i] = fr
		}
		got := buildGrid(reversed)

		cells := 0
		for _, row := range want {
			cells += len(row)
		}
		return cells == len(frags) && reflect.DeepEqual(got, want)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
