package game

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/feifei876/alien-invasion/internal/audio"
	"github.com/feifei876/alien-invasion/internal/difficulty"
	"github.com/feifei876/alien-invasion/internal/highscore"
	"github.com/feifei876/alien-invasion/internal/object"
)

// memStore is an in-memory highscore.Store that counts saves.
type memStore struct {
	table   highscore.Table
	loadErr error
	saveErr error
	saves   int
}

func (m *memStore) Load() (highscore.Table, error) {
	if m.table == nil {
		return highscore.NewTable(), m.loadErr
	}
	return m.table.Clone(), m.loadErr
}

func (m *memStore) Save(t highscore.Table) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.table = t.Clone()
	return nil
}

// recordingPlayer captures playback calls.
type recordingPlayer struct {
	played       []audio.Sound
	musicStarted int
	musicStopped int
}

func (r *recordingPlayer) Play(s audio.Sound) { r.played = append(r.played, s) }
func (r *recordingPlayer) StartMusic()        { r.musicStarted++ }
func (r *recordingPlayer) StopMusic()         { r.musicStopped++ }

func (r *recordingPlayer) count(s audio.Sound) int {
	n := 0
	for _, p := range r.played {
		if p == s {
			n++
		}
	}
	return n
}

func newTestSession(t *testing.T, tier difficulty.Tier) (*Session, *memStore, *recordingPlayer) {
	t.Helper()
	store := &memStore{}
	player := &recordingPlayer{}
	s := NewSession(Options{Store: store, Sound: player, Tier: tier})
	return s, store, player
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSelectAppliesTierTable(t *testing.T) {
	for _, tier := range difficulty.All() {
		t.Run(string(tier), func(t *testing.T) {
			s, _, _ := newTestSession(t, difficulty.Normal)
			s.Select(tier)

			p := difficulty.For(tier)
			rs := s.Settings()
			if s.Tier() != tier {
				t.Errorf("tier = %q, want %q", s.Tier(), tier)
			}
			if rs.ShipSpeed != p.ShipSpeed || rs.ProjectileSpeed != p.ProjectileSpeed ||
				rs.EnemySpeed != p.EnemySpeed || rs.FleetDropSpeed != p.FleetDropSpeed ||
				rs.PointsPerKill != p.PointsPerKill {
				t.Errorf("settings = %+v, want profile %+v", rs, p)
			}
			if rs.FleetDirection != 1 {
				t.Errorf("fleet direction = %d, want 1", rs.FleetDirection)
			}
		})
	}
}

func TestSelectUpdatesDisplayedHighScore(t *testing.T) {
	store := &memStore{table: highscore.Table{
		difficulty.Easy:   10,
		difficulty.Normal: 20,
		difficulty.Hard:   30,
	}}
	s := NewSession(Options{Store: store})
	if s.HighScore() != 20 {
		t.Errorf("initial high score = %d, want 20", s.HighScore())
	}
	s.Select(difficulty.Hard)
	if s.HighScore() != 30 {
		t.Errorf("hard high score = %d, want 30", s.HighScore())
	}
	if !s.Menu().Hard.Selected || s.Menu().Normal.Selected {
		t.Error("hard button should be the only highlighted tier")
	}
}

func TestSelectIgnoredOutsideMenu(t *testing.T) {
	s, _, _ := newTestSession(t, difficulty.Normal)

	s.Start()
	s.Select(difficulty.Hard)
	if s.Tier() != difficulty.Normal {
		t.Error("tier changed while playing")
	}

	s2, _, _ := newTestSession(t, difficulty.Normal)
	s2.ToggleHelp()
	s2.Select(difficulty.Easy)
	if s2.Tier() != difficulty.Normal {
		t.Error("tier changed while help is shown")
	}
	s2.Start()
	if s2.State() != StateHelp {
		t.Errorf("start from help: state = %v, want help", s2.State())
	}
}

func TestSelectRejectsUnknownTier(t *testing.T) {
	s, _, _ := newTestSession(t, difficulty.Easy)
	s.Select(difficulty.Tier("impossible"))
	if s.Tier() != difficulty.Easy {
		t.Errorf("tier = %q, want easy", s.Tier())
	}
}

func TestHelpToggle(t *testing.T) {
	s, _, _ := newTestSession(t, difficulty.Normal)
	s.ToggleHelp()
	if s.State() != StateHelp {
		t.Fatalf("state = %v, want help", s.State())
	}
	s.Cancel()
	if s.State() != StateMenu {
		t.Fatalf("state = %v, want menu", s.State())
	}
	s.ToggleHelp()
	s.ToggleHelp()
	if s.State() != StateMenu {
		t.Fatalf("state = %v, want menu", s.State())
	}

	s.Start()
	s.ToggleHelp()
	s.Cancel()
	if s.State() != StatePlaying {
		t.Errorf("help commands should not affect play, state = %v", s.State())
	}
}

func TestStartResetsRun(t *testing.T) {
	s, _, player := newTestSession(t, difficulty.Easy)
	s.Start()

	if s.State() != StatePlaying {
		t.Fatalf("state = %v, want playing", s.State())
	}
	st := s.Stats()
	if st.Score != 0 || st.Level != 1 || st.Lives != 5 {
		t.Errorf("stats = %+v, want score 0 level 1 lives 5", st)
	}
	if len(s.Fleet().Enemies) == 0 {
		t.Error("fleet should be laid out")
	}
	if player.musicStarted != 1 {
		t.Errorf("music started %d times, want 1", player.musicStarted)
	}

	// Mutate the run, end it, start again: everything returns to baseline.
	s.settings.Speedup()
	s.stats.Score = 999
	s.stats.Level = 4
	s.Fire()
	s.endRun()
	s.Start()

	if got := s.Settings(); got != NewRunSettings(difficulty.For(difficulty.Easy)) {
		t.Errorf("settings not restored: %+v", got)
	}
	if st := s.Stats(); st.Score != 0 || st.Level != 1 || st.Lives != 5 {
		t.Errorf("stats not reset: %+v", st)
	}
	if len(s.Projectiles()) != 0 {
		t.Error("projectiles should be cleared")
	}
	if s.GameOver() {
		t.Error("game over flag should clear on a new run")
	}
}

func TestFireCapsProjectiles(t *testing.T) {
	s, _, player := newTestSession(t, difficulty.Normal)

	s.Fire()
	if len(s.Projectiles()) != 0 {
		t.Fatal("fire should be ignored on the menu")
	}

	s.Start()
	for i := 0; i < 5; i++ {
		s.Fire()
	}
	if n := len(s.Projectiles()); n != MaxProjectiles {
		t.Errorf("projectiles = %d, want %d", n, MaxProjectiles)
	}
	if n := player.count(audio.SoundShoot); n != MaxProjectiles {
		t.Errorf("shoot sounds = %d, want %d", n, MaxProjectiles)
	}
}

func TestProjectilesLeaveTop(t *testing.T) {
	s, _, _ := newTestSession(t, difficulty.Normal)
	s.Start()
	s.Fire()
	p := s.Projectiles()[0]
	p.Y = 1 - object.ProjectileHeight

	s.updateProjectiles()
	if len(s.Projectiles()) != 0 {
		t.Error("projectile past the top edge should be removed")
	}
}

func TestClickHitTesting(t *testing.T) {
	s, _, _ := newTestSession(t, difficulty.Normal)
	m := s.Menu()

	s.Click(m.Easy.Rect.CenterX(), m.Easy.Rect.CenterY())
	if s.Tier() != difficulty.Easy {
		t.Errorf("tier = %q, want easy", s.Tier())
	}

	s.Click(m.Help.Rect.CenterX(), m.Help.Rect.CenterY())
	if s.State() != StateHelp {
		t.Fatalf("state = %v, want help", s.State())
	}
	s.Click(m.Play.Rect.CenterX(), m.Play.Rect.CenterY())
	if s.State() != StateHelp {
		t.Fatal("clicks should be ignored while help is shown")
	}
	s.Cancel()

	s.Click(1, 1)
	if s.State() != StateMenu {
		t.Fatal("click on empty space should do nothing")
	}

	s.Click(m.Play.Rect.CenterX(), m.Play.Rect.CenterY())
	if s.State() != StatePlaying {
		t.Fatalf("state = %v, want playing", s.State())
	}

	s.Click(m.Hard.Rect.CenterX(), m.Hard.Rect.CenterY())
	if s.Tier() != difficulty.Easy {
		t.Error("tier buttons must be inactive while playing")
	}
}

func TestLifeLossAndGameOver(t *testing.T) {
	s, store, player := newTestSession(t, difficulty.Hard)
	s.Start()
	lives := s.Stats().Lives
	if lives != 2 {
		t.Fatalf("hard lives = %d, want 2", lives)
	}

	hitShip := func() {
		ship := s.Ship().Bounds()
		s.fleet.Enemies = []*object.Enemy{object.NewEnemy(ship.X, ship.Y-10)}
		s.Tick()
	}

	hitShip()
	if got := s.Stats().Lives; got != 1 {
		t.Fatalf("lives = %d, want 1", got)
	}
	if s.State() != StateHitPause {
		t.Fatalf("state = %v, want hit-pause", s.State())
	}
	if len(s.Fleet().Enemies) != 45 {
		t.Errorf("fleet should be re-laid, got %d enemies", len(s.Fleet().Enemies))
	}
	if s.Ship().Bounds().CenterX() != float64(s.Screen().CenterX) {
		t.Error("ship should be re-centered")
	}

	// Ticks during the pause do nothing.
	s.Tick()
	if got := s.Stats().Lives; got != 1 {
		t.Fatalf("lives changed during pause: %d", got)
	}
	s.ResumeAfterHit()
	if s.State() != StatePlaying {
		t.Fatalf("state = %v, want playing", s.State())
	}

	savesBefore := store.saves
	hitShip()
	if got := s.Stats().Lives; got != 0 {
		t.Fatalf("lives = %d, want 0", got)
	}
	if s.State() != StateMenu || !s.GameOver() {
		t.Fatalf("state = %v gameOver=%v, want menu after last life", s.State(), s.GameOver())
	}
	if store.saves != savesBefore+1 {
		t.Errorf("game over should persist high scores once, saves %d -> %d", savesBefore, store.saves)
	}
	if player.musicStopped != 1 {
		t.Errorf("music stopped %d times, want 1", player.musicStopped)
	}

	// Lives never go negative.
	s.stats.loseLife()
	if got := s.Stats().Lives; got != 0 {
		t.Errorf("lives = %d, want 0", got)
	}
}

func TestFleetReachingFloorCostsLife(t *testing.T) {
	s, _, _ := newTestSession(t, difficulty.Normal)
	s.Start()

	// Far from the ship horizontally but at the bottom of the screen.
	s.fleet.Enemies = []*object.Enemy{object.NewEnemy(100, float64(PlayHeight)-object.EnemyHeight)}
	s.Tick()

	if got := s.Stats().Lives; got != 2 {
		t.Errorf("lives = %d, want 2", got)
	}
	if s.State() != StateHitPause {
		t.Errorf("state = %v, want hit-pause", s.State())
	}
}

func TestHighScorePersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_scores.json")
	seed := highscore.NewTable()
	seed[difficulty.Easy] = 70
	seed[difficulty.Normal] = 20
	seed[difficulty.Hard] = 500
	if err := highscore.NewFileStore(path).Save(seed); err != nil {
		t.Fatal(err)
	}

	s := NewSession(Options{Store: highscore.NewFileStore(path), Tier: difficulty.Hard})
	s.Start()
	s.stats.Score = 1000
	s.checkHighScore()

	if s.HighScore() != 1000 {
		t.Errorf("displayed high score = %d, want 1000", s.HighScore())
	}

	reloaded, err := highscore.NewFileStore(path).Load()
	if err != nil {
		t.Fatal(err)
	}
	if reloaded[difficulty.Hard] != 1000 {
		t.Errorf("hard = %d, want 1000", reloaded[difficulty.Hard])
	}
	if reloaded[difficulty.Easy] != 70 || reloaded[difficulty.Normal] != 20 {
		t.Errorf("other tiers changed: %v", reloaded)
	}

	restarted := NewSession(Options{Store: highscore.NewFileStore(path), Tier: difficulty.Hard})
	if restarted.HighScore() != 1000 {
		t.Errorf("restarted high score = %d, want 1000", restarted.HighScore())
	}
}

func TestHighScoreOnlyOnImprovement(t *testing.T) {
	store := &memStore{table: highscore.Table{difficulty.Normal: 300}}
	s := NewSession(Options{Store: store})
	s.Start()

	s.stats.Score = 200
	s.checkHighScore()
	if store.saves != 0 || s.HighScore() != 300 {
		t.Errorf("lower score should not save: saves=%d high=%d", store.saves, s.HighScore())
	}

	s.stats.Score = 350
	s.checkHighScore()
	if store.saves != 1 || s.HighScore() != 350 {
		t.Errorf("better score should save once: saves=%d high=%d", store.saves, s.HighScore())
	}
}

func TestSaveFailureIsNotFatal(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	s := NewSession(Options{Store: store})
	s.Start()
	s.stats.Score = 50
	s.checkHighScore()

	if s.HighScore() != 50 {
		t.Errorf("in-memory high score = %d, want 50", s.HighScore())
	}
	if got := s.HighScores()[difficulty.Normal]; got != 50 {
		t.Errorf("table = %d, want 50", got)
	}
	s.Quit()
	if s.Running() {
		t.Error("quit should end the session even if saving fails")
	}
}

func TestCorruptRecordStartsAtZero(t *testing.T) {
	store := &memStore{loadErr: errors.New("decode high scores: unexpected EOF")}
	s := NewSession(Options{Store: store})

	got := s.HighScores()
	for _, tier := range difficulty.All() {
		if got[tier] != 0 {
			t.Errorf("%s = %d, want 0", tier, got[tier])
		}
	}
}

func TestQuitPersistsAndStopsMusic(t *testing.T) {
	s, store, player := newTestSession(t, difficulty.Normal)
	s.Start()
	s.Quit()

	if s.Running() {
		t.Error("session should stop running")
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
	if player.musicStopped != 1 {
		t.Errorf("music stopped %d times, want 1", player.musicStopped)
	}

	s.Quit()
	if store.saves != 1 {
		t.Error("second quit should be a no-op")
	}
}

func TestTickMovesShipWithIntent(t *testing.T) {
	s, _, _ := newTestSession(t, difficulty.Normal)
	s.Start()
	x := s.Ship().X

	s.Steer(object.IntentRight)
	s.Tick()
	if !almostEqual(s.Ship().X, x+1.5) {
		t.Errorf("ship x = %v, want %v", s.Ship().X, x+1.5)
	}

	s.Steer(object.IntentLeft)
	s.Tick()
	s.Tick()
	if !almostEqual(s.Ship().X, x-1.5) {
		t.Errorf("ship x = %v, want %v", s.Ship().X, x-1.5)
	}
}

func TestTickIdleOutsidePlay(t *testing.T) {
	s, _, _ := newTestSession(t, difficulty.Normal)
	before := s.Fleet().Enemies[0].X
	s.Tick()
	if s.Fleet().Enemies[0].X != before {
		t.Error("fleet moved while on the menu")
	}
}

func TestStateString(t *testing.T) {
	if StateHitPause.String() != "hit-pause" || State(42).String() != "unknown" {
		t.Error("unexpected state names")
	}
}
