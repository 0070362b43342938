// Package difficulty holds the fixed per-tier tuning table.
package difficulty

// Tier names a difficulty configuration.
type Tier string

const (
	Easy   Tier = "easy"
	Normal Tier = "normal"
	Hard   Tier = "hard"
)

// All returns every tier in menu order.
func All() []Tier {
	return []Tier{Easy, Normal, Hard}
}

// ParseTier converts a name to a Tier. Unknown names return false.
func ParseTier(name string) (Tier, bool) {
	switch Tier(name) {
	case Easy, Normal, Hard:
		return Tier(name), true
	}
	return "", false
}

// Label returns the button caption for the tier.
func (t Tier) Label() string {
	switch t {
	case Easy:
		return "Easy"
	case Hard:
		return "Hard"
	default:
		return "Normal"
	}
}

// Profile is the immutable baseline for one tier.
// Speeds are logical units per tick.
type Profile struct {
	Tier            Tier
	ShipSpeed       float64
	ProjectileSpeed float64
	EnemySpeed      float64
	FleetDropSpeed  float64
	Lives           int
	PointsPerKill   int
}

var profiles = map[Tier]Profile{
	Easy: {
		Tier:            Easy,
		ShipSpeed:       2.0,
		ProjectileSpeed: 3.0,
		EnemySpeed:      0.8,
		FleetDropSpeed:  3,
		Lives:           5,
		PointsPerKill:   30,
	},
	Normal: {
		Tier:            Normal,
		ShipSpeed:       1.5,
		ProjectileSpeed: 2.5,
		EnemySpeed:      1.0,
		FleetDropSpeed:  5,
		Lives:           3,
		PointsPerKill:   50,
	},
	Hard: {
		Tier:            Hard,
		ShipSpeed:       1.0,
		ProjectileSpeed: 2.0,
		EnemySpeed:      1.5,
		FleetDropSpeed:  8,
		Lives:           2,
		PointsPerKill:   100,
	},
}

// For returns the profile of the given tier. Unknown tiers fall back to Normal.
func For(t Tier) Profile {
	if p, ok := profiles[t]; ok {
		return p
	}
	return profiles[Normal]
}
