package game

import (
	"github.com/feifei876/alien-invasion/internal/object"
	"github.com/feifei876/alien-invasion/internal/physics"
)

// Layout tiles a grid of enemies over the screen. The grid starts one enemy
// size in from the top-left, leaves one enemy width of gap between columns
// and one enemy height between rows, and stops short of the right edge and
// of the bottom three enemy rows so the fleet never spawns near the ship.
// The result depends only on its arguments.
func Layout(screen object.Screen, enemyW, enemyH float64) []*object.Enemy {
	var enemies []*object.Enemy
	maxX := float64(screen.Width) - 2*enemyW
	maxY := float64(screen.Height) - 3*enemyH

	for y := enemyH; y < maxY; y += 2 * enemyH {
		for x := enemyW; x < maxX; x += 2 * enemyW {
			enemies = append(enemies, object.NewEnemy(x, y))
		}
	}
	return enemies
}

// Fleet is the set of live enemies moving in lockstep.
type Fleet struct {
	Enemies []*object.Enemy
	screen  object.Screen
}

// NewFleet creates a fleet laid out over screen.
func NewFleet(screen object.Screen) *Fleet {
	f := &Fleet{screen: screen}
	f.Reset()
	return f
}

// Reset replaces the fleet with a fresh grid.
func (f *Fleet) Reset() {
	f.Enemies = Layout(f.screen, object.EnemyWidth, object.EnemyHeight)
}

// Clear removes every enemy.
func (f *Fleet) Clear() {
	f.Enemies = f.Enemies[:0]
}

// Cleared reports whether no enemies remain.
func (f *Fleet) Cleared() bool {
	return len(f.Enemies) == 0
}

// CheckEdges drops the whole fleet and reverses its direction if any enemy
// touches a side of the screen. It acts at most once per call no matter how
// many enemies are at the edge. Returns true if the fleet turned.
func (f *Fleet) CheckEdges(rs *RunSettings) bool {
	for _, e := range f.Enemies {
		if e.AtEdge(f.screen) {
			for _, d := range f.Enemies {
				d.Drop(rs.FleetDropSpeed)
			}
			rs.ReverseFleet()
			return true
		}
	}
	return false
}

// Update moves every enemy one step in the fleet direction.
func (f *Fleet) Update(rs *RunSettings) {
	for _, e := range f.Enemies {
		e.Update(rs.EnemySpeed, rs.FleetDirection)
	}
}

// Sweep drops enemies marked destroyed.
func (f *Fleet) Sweep() {
	f.Enemies = object.Sweep(f.Enemies)
}

// ReachedBottom reports whether any enemy's lower edge reached the floor.
func (f *Fleet) ReachedBottom() bool {
	floor := float64(f.screen.Height)
	for _, e := range f.Enemies {
		if e.Bounds().Bottom() >= floor {
			return true
		}
	}
	return false
}

// Touches reports whether any enemy overlaps r.
func (f *Fleet) Touches(r physics.Rect) bool {
	for _, e := range f.Enemies {
		if e.Bounds().Intersects(r) {
			return true
		}
	}
	return false
}
