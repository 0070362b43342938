package object

import (
	"github.com/feifei876/alien-invasion/internal/draw"
	"github.com/feifei876/alien-invasion/internal/physics"
)

// Enemy dimensions in logical units.
const (
	EnemyWidth  = 60.0
	EnemyHeight = 58.0
)

// Enemy is a single invader in the fleet grid.
type Enemy struct {
	X, Y      float64 // Top-left corner
	destroyed bool    // Marked for destruction
}

// NewEnemy creates an enemy with its top-left corner at (x, y).
func NewEnemy(x, y float64) *Enemy {
	return &Enemy{X: x, Y: y}
}

// MarkDestroyed marks the enemy for removal.
func (e *Enemy) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true if the enemy is marked for destruction.
func (e *Enemy) IsDestroyed() bool {
	return e.destroyed
}

// Update shifts the enemy horizontally by speed in the given direction (-1 or +1).
func (e *Enemy) Update(speed float64, direction int) {
	e.X += speed * float64(direction)
}

// Drop moves the enemy down by dy.
func (e *Enemy) Drop(dy float64) {
	e.Y += dy
}

// AtEdge reports whether the enemy touches or has passed either side of the screen.
func (e *Enemy) AtEdge(screen Screen) bool {
	return e.X+EnemyWidth >= float64(screen.Width) || e.X <= 0
}

// Bounds returns the enemy's collision box.
func (e *Enemy) Bounds() physics.Rect {
	return physics.Rect{X: e.X, Y: e.Y, W: EnemyWidth, H: EnemyHeight}
}

// invaderShape is the outline of an invader in unit coordinates.
var invaderShape = [...]draw.Point{
	{X: 0.30, Y: 0.00}, {X: 0.70, Y: 0.00},
	{X: 0.90, Y: 0.25}, {X: 1.00, Y: 0.60},
	{X: 0.80, Y: 0.60}, {X: 0.90, Y: 1.00},
	{X: 0.65, Y: 0.75}, {X: 0.35, Y: 0.75},
	{X: 0.10, Y: 1.00}, {X: 0.20, Y: 0.60},
	{X: 0.00, Y: 0.60}, {X: 0.10, Y: 0.25},
}

// Draw renders the enemy as a filled invader silhouette.
func (e *Enemy) Draw(ctx DrawContext) error {
	ctx.Canvas.SetInk(draw.InkAlien)
	pts := ctx.Canvas.BorrowPoints(len(invaderShape))
	for i, p := range invaderShape {
		pts[i] = draw.Point{X: e.X + p.X*EnemyWidth, Y: e.Y + p.Y*EnemyHeight}
	}
	ctx.Canvas.DrawPolygon(pts, true)
	return nil
}
