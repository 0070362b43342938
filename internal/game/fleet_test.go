package game

import (
	"testing"

	"github.com/feifei876/alien-invasion/internal/difficulty"
	"github.com/feifei876/alien-invasion/internal/object"
)

func TestLayoutGrid(t *testing.T) {
	screen := object.NewScreen(PlayWidth, PlayHeight)
	enemies := Layout(screen, object.EnemyWidth, object.EnemyHeight)

	if len(enemies) != 45 {
		t.Fatalf("enemies = %d, want 45 (9 columns x 5 rows)", len(enemies))
	}
	first, last := enemies[0], enemies[len(enemies)-1]
	if first.X != object.EnemyWidth || first.Y != object.EnemyHeight {
		t.Errorf("first enemy at (%v, %v), want (%v, %v)", first.X, first.Y, object.EnemyWidth, object.EnemyHeight)
	}
	if last.X != 1020 || last.Y != 522 {
		t.Errorf("last enemy at (%v, %v), want (1020, 522)", last.X, last.Y)
	}
	for _, e := range enemies {
		if e.AtEdge(screen) {
			t.Errorf("enemy at (%v, %v) spawned touching an edge", e.X, e.Y)
		}
	}
}

func TestLayoutDeterministic(t *testing.T) {
	screen := object.NewScreen(800, 600)
	a := Layout(screen, 40, 30)
	b := Layout(screen, 40, 30)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].X != b[i].X || a[i].Y != b[i].Y {
			t.Fatalf("enemy %d differs: (%v,%v) vs (%v,%v)", i, a[i].X, a[i].Y, b[i].X, b[i].Y)
		}
	}
}

func TestLayoutTooSmall(t *testing.T) {
	if got := Layout(object.NewScreen(100, 100), 60, 58); len(got) != 0 {
		t.Errorf("enemies = %d, want 0", len(got))
	}
}

func TestCheckEdgesDropsOnce(t *testing.T) {
	screen := object.NewScreen(PlayWidth, PlayHeight)
	f := &Fleet{screen: screen}
	for i := 0; i < 5; i++ {
		f.Enemies = append(f.Enemies, object.NewEnemy(PlayWidth-object.EnemyWidth, float64(100*i)))
	}
	f.Enemies = append(f.Enemies, object.NewEnemy(500, 50))

	rs := NewRunSettings(difficulty.For(difficulty.Easy))
	if !f.CheckEdges(&rs) {
		t.Fatal("fleet at the right edge should turn")
	}
	if rs.FleetDirection != -1 {
		t.Errorf("direction = %d, want -1", rs.FleetDirection)
	}
	for i := 0; i < 5; i++ {
		if got, want := f.Enemies[i].Y, float64(100*i)+rs.FleetDropSpeed; got != want {
			t.Errorf("enemy %d y = %v, want %v", i, got, want)
		}
	}
	if got := f.Enemies[5].Y; got != 50+rs.FleetDropSpeed {
		t.Errorf("inner enemy y = %v, want %v", got, 50+rs.FleetDropSpeed)
	}
}

func TestCheckEdgesNoTurn(t *testing.T) {
	f := NewFleet(object.NewScreen(PlayWidth, PlayHeight))
	rs := NewRunSettings(difficulty.For(difficulty.Normal))
	y := f.Enemies[0].Y
	if f.CheckEdges(&rs) {
		t.Error("fresh fleet should not turn")
	}
	if rs.FleetDirection != 1 || f.Enemies[0].Y != y {
		t.Error("nothing should change away from the edges")
	}
}

func TestFleetUpdateFollowsDirection(t *testing.T) {
	f := NewFleet(object.NewScreen(PlayWidth, PlayHeight))
	rs := NewRunSettings(difficulty.For(difficulty.Hard))
	x := f.Enemies[0].X

	f.Update(&rs)
	if got := f.Enemies[0].X; got != x+rs.EnemySpeed {
		t.Errorf("x = %v, want %v", got, x+rs.EnemySpeed)
	}
	rs.ReverseFleet()
	f.Update(&rs)
	if got := f.Enemies[0].X; got != x {
		t.Errorf("x = %v, want %v", got, x)
	}
}

func TestFleetReachedBottom(t *testing.T) {
	f := &Fleet{screen: object.NewScreen(PlayWidth, PlayHeight)}
	f.Enemies = []*object.Enemy{object.NewEnemy(100, PlayHeight-object.EnemyHeight-1)}
	if f.ReachedBottom() {
		t.Error("enemy above the floor reported at bottom")
	}
	f.Enemies[0].Drop(1)
	if !f.ReachedBottom() {
		t.Error("enemy touching the floor not reported")
	}
}
