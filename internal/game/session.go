package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/feifei876/alien-invasion/internal/audio"
	"github.com/feifei876/alien-invasion/internal/difficulty"
	"github.com/feifei876/alien-invasion/internal/draw"
	"github.com/feifei876/alien-invasion/internal/highscore"
	"github.com/feifei876/alien-invasion/internal/object"
	"github.com/feifei876/alien-invasion/internal/physics"
)

// State is the current phase of a session.
type State int

const (
	StateMenu      State = iota // Buttons shown, waiting for Play
	StateHelp                   // How-to-play overlay
	StatePlaying                // Active gameplay
	StateHitPause               // Ship was hit; the loop stalls before play resumes
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateHelp:
		return "help"
	case StatePlaying:
		return "playing"
	case StateHitPause:
		return "hit-pause"
	default:
		return "unknown"
	}
}

// Options configures a Session.
type Options struct {
	Store  highscore.Store // Required
	Sound  audio.Player    // Defaults to audio.Silent
	Logger *log.Logger     // Defaults to a discarding logger
	Tier   difficulty.Tier // Initial tier, defaults to Normal
	Screen object.Screen   // Play area, defaults to PlayWidth x PlayHeight
}

// Session owns all game state for one player and advances it one tick at a
// time. It is not safe for concurrent use; the game loop is its only caller.
type Session struct {
	state    State
	running  bool
	gameOver bool // The last run ended; shown on the menu

	tier     difficulty.Tier
	settings RunSettings
	stats    Stats

	screen      object.Screen
	ship        *object.Ship
	projectiles []*object.Projectile
	particles   []*object.Particle
	fleet       *Fleet
	menu        *Menu
	grid        *physics.SpatialGrid

	highScores highscore.Table
	highScore  int // Best score of the active tier, as displayed

	store highscore.Store
	sound audio.Player
	log   *log.Logger
}

// NewSession creates a session in the menu state and loads the high scores.
// A record that cannot be read is logged and replaced by zeros.
func NewSession(opts Options) *Session {
	if opts.Sound == nil {
		opts.Sound = audio.Silent{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if _, ok := difficulty.ParseTier(string(opts.Tier)); !ok {
		opts.Tier = difficulty.Normal
	}
	if opts.Screen.Width == 0 || opts.Screen.Height == 0 {
		opts.Screen = object.NewScreen(PlayWidth, PlayHeight)
	}

	table, err := opts.Store.Load()
	if err != nil {
		opts.Logger.Warn("high scores unreadable, starting from zero", "err", err)
	}
	if table == nil {
		table = highscore.NewTable()
	}

	s := &Session{
		state:       StateMenu,
		running:     true,
		screen:      opts.Screen,
		ship:        object.NewShip(opts.Screen),
		projectiles: make([]*object.Projectile, 0, MaxProjectiles),
		fleet:       NewFleet(opts.Screen),
		menu:        NewMenu(opts.Screen),
		grid:        physics.NewSpatialGrid(float64(opts.Screen.Width), float64(opts.Screen.Height), collisionGridCellSize),
		highScores:  table,
		store:       opts.Store,
		sound:       opts.Sound,
		log:         opts.Logger,
	}
	s.applyTier(opts.Tier)
	return s
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Running reports whether the session has not been quit.
func (s *Session) Running() bool { return s.running }

// GameOver reports whether the menu follows a finished run.
func (s *Session) GameOver() bool { return s.gameOver }

// Tier returns the active difficulty tier.
func (s *Session) Tier() difficulty.Tier { return s.tier }

// Settings returns a copy of the current run settings.
func (s *Session) Settings() RunSettings { return s.settings }

// Stats returns a copy of the current run statistics.
func (s *Session) Stats() Stats { return s.stats }

// HighScore returns the best score of the active tier.
func (s *Session) HighScore() int { return s.highScore }

// HighScores returns a copy of the whole high-score table.
func (s *Session) HighScores() highscore.Table { return s.highScores.Clone() }

// Screen returns the play area.
func (s *Session) Screen() object.Screen { return s.screen }

// Ship returns the player's ship.
func (s *Session) Ship() *object.Ship { return s.ship }

// Projectiles returns the live projectiles.
func (s *Session) Projectiles() []*object.Projectile { return s.projectiles }

// Fleet returns the enemy fleet.
func (s *Session) Fleet() *Fleet { return s.fleet }

// Particles returns the explosion debris in flight.
func (s *Session) Particles() []*object.Particle { return s.particles }

// Menu returns the menu buttons.
func (s *Session) Menu() *Menu { return s.menu }

// applyTier switches the tier without any state checks.
func (s *Session) applyTier(t difficulty.Tier) {
	s.tier = t
	s.settings = NewRunSettings(difficulty.For(t))
	s.highScore = s.highScores.Get(t)
	s.menu.Highlight(t)
}

// Select changes the difficulty tier. Only honored on the menu.
func (s *Session) Select(t difficulty.Tier) {
	if s.state != StateMenu {
		return
	}
	if _, ok := difficulty.ParseTier(string(t)); !ok {
		return
	}
	s.applyTier(t)
	s.log.Debug("difficulty selected", "tier", t)
}

// Start begins a new run. Only honored on the menu.
func (s *Session) Start() {
	if s.state != StateMenu {
		return
	}

	profile := difficulty.For(s.tier)
	s.settings = NewRunSettings(profile)
	s.stats.Reset(profile.Lives)
	s.highScore = s.highScores.Get(s.tier)

	s.projectiles = s.projectiles[:0]
	s.clearParticles()
	s.fleet.Clear()
	s.fleet.Reset()
	s.ship.Center(s.screen)
	s.ship.Intent = object.IntentNone

	s.gameOver = false
	s.state = StatePlaying
	s.sound.StartMusic()
	s.log.Info("run started", "tier", s.tier, "lives", s.stats.Lives)
}

// ToggleHelp opens the help overlay from the menu, or closes it.
func (s *Session) ToggleHelp() {
	switch s.state {
	case StateMenu:
		s.state = StateHelp
	case StateHelp:
		s.state = StateMenu
	}
}

// Cancel closes the help overlay.
func (s *Session) Cancel() {
	if s.state == StateHelp {
		s.state = StateMenu
	}
}

// Click handles a pointer press at logical coordinates. Buttons are only
// active on the menu.
func (s *Session) Click(x, y float64) {
	if s.state != StateMenu {
		return
	}
	switch {
	case s.menu.Play.Hit(x, y):
		s.Start()
	case s.menu.Help.Hit(x, y):
		s.ToggleHelp()
	default:
		if t, ok := s.menu.tierAt(x, y); ok {
			s.Select(t)
		}
	}
}

// Steer sets the ship's movement intent.
func (s *Session) Steer(intent object.Intent) {
	s.ship.Intent = intent
}

// Fire launches a projectile if fewer than MaxProjectiles are in flight.
func (s *Session) Fire() {
	if s.state != StatePlaying || len(s.projectiles) >= MaxProjectiles {
		return
	}
	s.projectiles = append(s.projectiles, object.NewProjectile(s.ship))
	s.sound.Play(audio.SoundShoot)
}

// Quit stops the music, saves the high scores and ends the session.
func (s *Session) Quit() {
	if !s.running {
		return
	}
	s.sound.StopMusic()
	s.persist()
	s.running = false
	s.log.Info("session quit", "score", s.stats.Score)
}

// ResumeAfterHit ends the hit pause.
func (s *Session) ResumeAfterHit() {
	if s.state == StateHitPause {
		s.state = StatePlaying
	}
}

// Tick advances the simulation by one step. Outside of play it does nothing.
func (s *Session) Tick() {
	if s.state != StatePlaying {
		return
	}

	s.updateParticles()
	s.ship.Update(s.settings.ShipSpeed, s.screen)
	s.updateProjectiles()
	s.resolveProjectileImpacts()
	s.updateFleet()
}

// updateProjectiles moves projectiles and drops those past the top edge.
func (s *Session) updateProjectiles() {
	kept := s.projectiles[:0]
	for _, p := range s.projectiles {
		if !p.Update(s.settings.ProjectileSpeed) {
			kept = append(kept, p)
		}
	}
	clear(s.projectiles[len(kept):])
	s.projectiles = kept
}

// updateParticles ages the debris and returns burned-out pieces to the pool.
func (s *Session) updateParticles() {
	kept := s.particles[:0]
	for _, p := range s.particles {
		if p.Update() {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(s.particles[len(kept):])
	s.particles = kept
}

func (s *Session) clearParticles() {
	for _, p := range s.particles {
		p.Release()
	}
	clear(s.particles)
	s.particles = s.particles[:0]
}

// updateFleet turns the fleet at the edges, moves it and checks whether it
// got the ship.
func (s *Session) updateFleet() {
	s.fleet.CheckEdges(&s.settings)
	s.fleet.Update(&s.settings)
	s.resolveShipImpact()
}

// shipHit spends a life. With lives left the board is reset and the session
// enters the hit pause; otherwise the run ends.
func (s *Session) shipHit() {
	if s.stats.loseLife() > 0 {
		s.sound.Play(audio.SoundExplosion)
		b := s.ship.Bounds()
		s.clearParticles()
		s.particles = object.Burst(s.particles, b.CenterX(), b.CenterY(), object.ShipBurstCount, draw.InkShip)
		s.projectiles = s.projectiles[:0]
		s.fleet.Clear()
		s.fleet.Reset()
		s.ship.Center(s.screen)
		s.state = StateHitPause
		s.log.Info("ship hit", "lives", s.stats.Lives)
		return
	}
	s.endRun()
}

// endRun returns to the menu after the last life.
func (s *Session) endRun() {
	s.sound.StopMusic()
	s.persist()
	s.ship.Intent = object.IntentNone
	s.gameOver = true
	s.state = StateMenu
	s.log.Info("game over", "tier", s.tier, "score", s.stats.Score, "level", s.stats.Level)
}

// persist writes the high-score table. Failures are logged and dropped; the
// in-memory table stays authoritative for this session.
func (s *Session) persist() {
	if err := s.store.Save(s.highScores.Clone()); err != nil {
		s.log.Warn("could not save high scores", "err", err)
	}
}
