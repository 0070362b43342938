package object

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/feifei876/alien-invasion/internal/draw"
	"github.com/feifei876/alien-invasion/internal/physics"
)

// Explosion debris sizes.
const (
	EnemyBurstCount = 10
	ShipBurstCount  = 24
	burstSpeed      = 4.0 // Logical units per tick, before variation
	burstLife       = 30  // Ticks, half a second at 60 FPS
	particleSize    = 4.0
	particleDrag    = 0.92
)

var particlePool = sync.Pool{
	New: func() any { return &Particle{} },
}

// Particle is a short-lived piece of explosion debris. It takes no part in
// collisions.
type Particle struct {
	X, Y    float64
	VX, VY  float64 // Per tick
	Life    int     // Ticks remaining
	MaxLife int
	Ink     draw.Ink
}

// NewParticle takes a particle from the pool.
func NewParticle(x, y, vx, vy float64, life int, ink draw.Ink) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{X: x, Y: y, VX: vx, VY: vy, Life: life, MaxLife: life, Ink: ink}
	return p
}

// Release returns the particle to the pool. It must not be used afterwards.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Burst appends count particles flying out of (x, y) in random directions.
func Burst(dst []*Particle, x, y float64, count int, ink draw.Ink) []*Particle {
	for range count {
		angle := rand.Float64() * 2 * math.Pi
		speed := burstSpeed * (0.5 + rand.Float64())
		life := burstLife/2 + rand.IntN(burstLife/2+1)
		dst = append(dst, NewParticle(x, y, math.Cos(angle)*speed, math.Sin(angle)*speed, life, ink))
	}
	return dst
}

// Update moves the particle one tick. It reports true once the particle has
// burned out.
func (p *Particle) Update() bool {
	p.Life--
	if p.Life <= 0 {
		return true
	}
	p.VX *= particleDrag
	p.VY *= particleDrag
	p.X += p.VX
	p.Y += p.VY
	return false
}

// Bounds returns the area the particle paints.
func (p *Particle) Bounds() physics.Rect {
	return physics.Centered(p.X, p.Y, particleSize, particleSize)
}

// Draw paints the particle as a dot. The last quarter of its life is
// invisible so bursts thin out before they vanish.
func (p *Particle) Draw(ctx DrawContext) error {
	if p.MaxLife > 0 && p.Life*4 < p.MaxLife {
		return nil
	}
	b := p.Bounds()
	ctx.Canvas.SetInk(p.Ink)
	ctx.Canvas.FillRect(b.X, b.Y, b.W, b.H)
	return nil
}
