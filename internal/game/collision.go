package game

import (
	"math"

	"github.com/feifei876/alien-invasion/internal/audio"
	"github.com/feifei876/alien-invasion/internal/draw"
	"github.com/feifei876/alien-invasion/internal/object"
	"github.com/feifei876/alien-invasion/internal/physics"
)

// collisionGridCellSize must be >= the largest box dimension of a projectile
// or an enemy so overlapping pairs always share a 3x3 neighborhood.
var collisionGridCellSize = math.Max(
	math.Max(object.EnemyWidth, object.EnemyHeight),
	math.Max(object.ProjectileWidth, object.ProjectileHeight),
)

// markImpacts marks every projectile and enemy that touch each other as
// destroyed and returns the number of distinct enemies hit. Nothing is
// removed here; callers sweep afterwards.
func markImpacts(grid *physics.SpatialGrid, projectiles []*object.Projectile, enemies []*object.Enemy) int {
	grid.Clear()
	for i, e := range enemies {
		grid.Insert(e.Bounds(), i)
	}

	killed := 0
	for _, p := range projectiles {
		grid.Overlapping(p.Bounds(), func(i int) bool {
			p.MarkDestroyed()
			if e := enemies[i]; !e.IsDestroyed() {
				e.MarkDestroyed()
				killed++
			}
			return false
		})
	}
	return killed
}

// resolveProjectileImpacts removes colliding projectiles and enemies, awards
// points per enemy destroyed and starts the next wave once the fleet is gone.
func (s *Session) resolveProjectileImpacts() {
	killed := markImpacts(s.grid, s.projectiles, s.fleet.Enemies)
	if killed > 0 {
		for _, e := range s.fleet.Enemies {
			if e.IsDestroyed() {
				c := e.Bounds()
				s.particles = object.Burst(s.particles, c.CenterX(), c.CenterY(), object.EnemyBurstCount, draw.InkAlien)
			}
		}
		s.projectiles = object.Sweep(s.projectiles)
		s.fleet.Sweep()

		s.sound.Play(audio.SoundExplosion)
		s.stats.Score += s.settings.PointsPerKill * killed
		s.checkHighScore()
	}

	if s.fleet.Cleared() {
		s.advanceWave()
	}
}

// advanceWave lays out a new fleet and makes the game faster.
func (s *Session) advanceWave() {
	s.projectiles = s.projectiles[:0]
	s.fleet.Reset()
	s.settings.Speedup()
	s.stats.Level++
	s.log.Info("wave cleared", "level", s.stats.Level, "points", s.settings.PointsPerKill)
}

// resolveShipImpact costs a life when an enemy touches the ship or reaches
// the floor. Returns true if a life was lost.
func (s *Session) resolveShipImpact() bool {
	if s.fleet.Touches(s.ship.Bounds()) || s.fleet.ReachedBottom() {
		s.shipHit()
		return true
	}
	return false
}

// checkHighScore records a new best for the active tier and saves it at once.
func (s *Session) checkHighScore() {
	if s.highScores.Record(s.tier, s.stats.Score) {
		s.highScore = s.stats.Score
		s.persist()
	}
}
