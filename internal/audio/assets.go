package audio

import (
	"errors"
	"path/filepath"
)

// Asset file names inside the sound directory.
const (
	ShootFile      = "shoot.wav"
	ExplosionFile  = "explosion.wav"
	BackgroundFile = "background.wav"
)

// Volumes holds the playback volume of each asset (0.0 - 1.0).
type Volumes struct {
	Shoot      float64
	Explosion  float64
	Background float64
}

// DefaultVolumes mirrors the shipped mix: quiet music under louder effects.
var DefaultVolumes = Volumes{
	Shoot:      0.3,
	Explosion:  0.5,
	Background: 0.2,
}

// LoadAssets loads every asset in dir into m. Each asset is independent: a
// missing or undecodable file leaves that sound silent and its error is
// included in the joined result.
func LoadAssets(m *Manager, dir string, v Volumes) error {
	var errs []error

	if c, err := Load(filepath.Join(dir, ShootFile), v.Shoot); err != nil {
		errs = append(errs, err)
	} else {
		m.Attach(SoundShoot, c)
	}

	if c, err := Load(filepath.Join(dir, ExplosionFile), v.Explosion); err != nil {
		errs = append(errs, err)
	} else {
		m.Attach(SoundExplosion, c)
	}

	if c, err := Load(filepath.Join(dir, BackgroundFile), v.Background); err != nil {
		errs = append(errs, err)
	} else {
		m.SetMusic(c)
	}

	return errors.Join(errs...)
}
