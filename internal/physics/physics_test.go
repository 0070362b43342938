package physics

import (
	"sort"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	base := Rect{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"contained", Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"touching right edge", Rect{X: 10, Y: 0, W: 5, H: 5}, false},
		{"touching bottom edge", Rect{X: 0, Y: 10, W: 5, H: 5}, false},
		{"apart", Rect{X: 20, Y: 20, W: 5, H: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
			if got := tt.other.Intersects(base); got != tt.want {
				t.Errorf("symmetric Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Centered(100, 50, 200, 50)
	if !r.Contains(100, 50) {
		t.Error("center should be contained")
	}
	if !r.Contains(0, 25) {
		t.Error("top-left corner should be contained")
	}
	if r.Contains(200, 50) {
		t.Error("right edge should be exclusive")
	}
	if r.Contains(100, 80) {
		t.Error("point below should not be contained")
	}
}

func TestSpatialGridOverlapping(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(Rect{X: 5, Y: 5, W: 10, H: 10}, 0)
	g.Insert(Rect{X: 15, Y: 5, W: 10, H: 10}, 1)
	g.Insert(Rect{X: 55, Y: 55, W: 10, H: 10}, 2)
	g.Insert(Rect{X: 95, Y: 95, W: 10, H: 10}, 3)

	query := func(r Rect) []int {
		var found []int
		g.Overlapping(r, func(id int) bool {
			found = append(found, id)
			return false
		})
		sort.Ints(found)
		return found
	}

	if got := query(Rect{X: 12, Y: 8, W: 4, H: 4}); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("found = %v, want [0 1]", got)
	}
	// Same neighborhood, but the boxes only touch.
	if got := query(Rect{X: 25, Y: 5, W: 3, H: 3}); len(got) != 0 {
		t.Errorf("touching box found %v", got)
	}
	if got := query(Rect{X: 98, Y: 98, W: 1, H: 1}); len(got) != 1 || got[0] != 3 {
		t.Errorf("corner query found = %v, want [3]", got)
	}

	g.Clear()
	if got := query(Rect{X: 55, Y: 55, W: 5, H: 5}); len(got) != 0 {
		t.Errorf("cleared grid returned %v", got)
	}
}

func TestSpatialGridEarlyStop(t *testing.T) {
	g := NewSpatialGrid(50, 50, 10)
	for i := range 5 {
		g.Insert(Rect{X: 1, Y: 1, W: 5, H: 5}, i)
	}
	calls := 0
	g.Overlapping(Rect{X: 2, Y: 2, W: 1, H: 1}, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
