package game

import "github.com/feifei876/alien-invasion/internal/difficulty"

// RunSettings holds the tuning values of the current run. It starts as a
// copy of the active tier's profile and speeds up with each cleared wave.
type RunSettings struct {
	ShipSpeed       float64
	ProjectileSpeed float64
	EnemySpeed      float64
	FleetDropSpeed  float64
	PointsPerKill   int

	SpeedupScale     float64
	ShipSpeedupScale float64
	ScoreScale       float64

	FleetDirection int // +1 right, -1 left
}

// NewRunSettings returns the baseline settings for a profile.
func NewRunSettings(p difficulty.Profile) RunSettings {
	return RunSettings{
		ShipSpeed:        p.ShipSpeed,
		ProjectileSpeed:  p.ProjectileSpeed,
		EnemySpeed:       p.EnemySpeed,
		FleetDropSpeed:   p.FleetDropSpeed,
		PointsPerKill:    p.PointsPerKill,
		SpeedupScale:     SpeedupScale,
		ShipSpeedupScale: ShipSpeedupScale,
		ScoreScale:       ScoreScale,
		FleetDirection:   1,
	}
}

// Speedup applies the wave-clear transform. Points are rounded down.
func (r *RunSettings) Speedup() {
	r.ShipSpeed *= r.ShipSpeedupScale
	r.ProjectileSpeed *= r.SpeedupScale
	r.EnemySpeed *= r.SpeedupScale
	r.PointsPerKill = int(float64(r.PointsPerKill) * r.ScoreScale)
}

// ReverseFleet flips the fleet's horizontal direction.
func (r *RunSettings) ReverseFleet() {
	r.FleetDirection = -r.FleetDirection
}
