// Package audio plays the game's sound effects and background music.
//
// Every asset load returns an error of its own; callers decide whether to
// continue without that sound. A Manager that failed to reach an output
// device, or a Silent player, turns every call into a no-op.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const sampleRate = beep.SampleRate(44100)

// ErrNoDevice is returned when the speaker cannot be opened.
var ErrNoDevice = errors.New("audio: no output device")

// Sound identifies a one-shot effect.
type Sound int

const (
	SoundShoot Sound = iota
	SoundExplosion
)

// Player is the playback surface the game drives.
type Player interface {
	Play(s Sound)
	StartMusic()
	StopMusic()
}

// Silent is a Player that does nothing.
type Silent struct{}

func (Silent) Play(Sound)  {}
func (Silent) StartMusic() {}
func (Silent) StopMusic()  {}

// Clip is a decoded sound held in memory together with its playback volume.
type Clip struct {
	buf    *beep.Buffer
	volume float64 // 0.0 - 1.0
}

// Load decodes the WAV file at path into memory, resampling to the
// speaker rate when needed.
func Load(path string, volume float64) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		src = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  sampleRate,
		NumChannels: format.NumChannels,
		Precision:   format.Precision,
	})
	buf.Append(src)

	return &Clip{buf: buf, volume: clampVolume(volume)}, nil
}

// Len returns the clip length in samples.
func (c *Clip) Len() int {
	return c.buf.Len()
}

func (c *Clip) streamer() beep.StreamSeeker {
	return c.buf.Streamer(0, c.buf.Len())
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// withVolume scales s linearly by volume.
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	return &effects.Gain{Streamer: s, Gain: volume - 1}
}

// Manager owns the speaker and the loaded clips.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	effects     map[Sound]*Clip
	music       *Clip
	musicCtrl   *beep.Ctrl
	initialized bool
}

// NewManager creates a manager with no clips attached.
func NewManager() *Manager {
	return &Manager{
		mixer:   &beep.Mixer{},
		effects: make(map[Sound]*Clip),
	}
}

// Initialize opens the speaker. Safe to call more than once.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Attach registers the clip played for s.
func (m *Manager) Attach(s Sound, c *Clip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.effects[s] = c
}

// SetMusic registers the looping background clip.
func (m *Manager) SetMusic(c *Clip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.music = c
}

// Play starts the effect s on top of whatever is playing.
func (m *Manager) Play(s Sound) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clip := m.effects[s]
	if !m.initialized || clip == nil {
		return
	}
	speaker.Lock()
	m.mixer.Add(withVolume(clip.streamer(), clip.volume))
	speaker.Unlock()
}

// StartMusic loops the background clip from the beginning.
func (m *Manager) StartMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.music == nil {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	if m.musicCtrl != nil {
		m.musicCtrl.Paused = true
	}
	loop := beep.Loop(-1, m.music.streamer())
	m.musicCtrl = &beep.Ctrl{Streamer: withVolume(loop, m.music.volume)}
	m.mixer.Add(m.musicCtrl)
}

// StopMusic silences the background loop.
func (m *Manager) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.musicCtrl == nil {
		return
	}
	speaker.Lock()
	m.musicCtrl.Paused = true
	m.musicCtrl.Streamer = nil
	speaker.Unlock()
	m.musicCtrl = nil
}

// Cleanup stops all sounds.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	m.musicCtrl = nil
	m.initialized = false
}
