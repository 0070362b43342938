package object

import (
	"github.com/feifei876/alien-invasion/internal/draw"
	"github.com/feifei876/alien-invasion/internal/physics"
)

// Projectile dimensions in logical units.
const (
	ProjectileWidth  = 3.0
	ProjectileHeight = 15.0
)

// Projectile is a bullet fired straight up by the ship.
type Projectile struct {
	X, Y      float64 // Top-left corner
	destroyed bool    // Marked for destruction
}

// NewProjectile creates a projectile leaving the nose of the ship.
func NewProjectile(ship *Ship) *Projectile {
	b := ship.Bounds()
	return &Projectile{
		X: b.CenterX() - ProjectileWidth/2,
		Y: b.Top(),
	}
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile is marked for destruction.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}

// Update moves the projectile up by speed. Returns true once it has left the
// top of the play area.
func (p *Projectile) Update(speed float64) (remove bool) {
	p.Y -= speed
	return p.Y+ProjectileHeight <= 0
}

// Bounds returns the projectile's collision box.
func (p *Projectile) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: ProjectileWidth, H: ProjectileHeight}
}

// Draw renders the projectile as a vertical line.
func (p *Projectile) Draw(ctx DrawContext) error {
	cx := p.X + ProjectileWidth/2
	ctx.Canvas.SetInk(draw.InkBullet)
	ctx.Canvas.DrawLine(draw.Point{X: cx, Y: p.Y}, draw.Point{X: cx, Y: p.Y + ProjectileHeight})
	return nil
}
