package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/feifei876/alien-invasion/internal/difficulty"
	"github.com/feifei876/alien-invasion/internal/highscore"
)

// High-score storage backends.
const (
	BackendJSON   = highscore.BackendJSON
	BackendSQLite = highscore.BackendSQLite
)

// DefaultIdleTimeout disconnects SSH players after this long without input.
const DefaultIdleTimeout = 2 * time.Minute

// Config is the runtime configuration shared by the commands.
type Config struct {
	Difficulty string          `yaml:"difficulty"` // Initial tier
	LogFile    string          `yaml:"log_file"`   // Local game only; the terminal is busy
	HighScores HighScoreConfig `yaml:"high_scores"`
	Sound      SoundConfig     `yaml:"sound"`
	SSH        SSHConfig       `yaml:"ssh"`
	Web        WebConfig       `yaml:"web"`
}

// HighScoreConfig selects where high scores are kept.
type HighScoreConfig struct {
	Backend string `yaml:"backend"` // "json" or "sqlite"
	Path    string `yaml:"path"`
}

// SoundConfig controls audio playback.
type SoundConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"` // Holds shoot.wav, explosion.wav, background.wav
	Volumes VolumesConfig `yaml:"volumes"`
}

// VolumesConfig holds per-sound gain, 0 to 1.
type VolumesConfig struct {
	Shoot      float64 `yaml:"shoot"`
	Explosion  float64 `yaml:"explosion"`
	Background float64 `yaml:"background"`
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Host        string        `yaml:"host"`
	Port        string        `yaml:"port"`
	HostKeyPath string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// WebConfig configures the landing page server.
type WebConfig struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	DisplayHost string `yaml:"display_host"` // Host shown in the ssh command
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Difficulty: string(difficulty.Normal),
		LogFile:    "invaders.log",
		HighScores: HighScoreConfig{
			Backend: BackendJSON,
			Path:    highscore.DefaultPath,
		},
		Sound: SoundConfig{
			Enabled: true,
			Dir:     "sounds",
			Volumes: VolumesConfig{Shoot: 0.3, Explosion: 0.5, Background: 0.2},
		},
		SSH: SSHConfig{
			Host:        "::",
			Port:        "2222",
			HostKeyPath: ".ssh/invaders_host_key",
			IdleTimeout: DefaultIdleTimeout,
		},
		Web: WebConfig{
			Host:        "0.0.0.0",
			Port:        "8080",
			DisplayHost: "localhost",
		},
	}
}

// Load builds the configuration from the defaults, the optional YAML file
// named by INVADERS_CONFIG and then the environment.
func Load() (Config, error) {
	return LoadFile(GetEnv("INVADERS_CONFIG", ""))
}

// LoadFile is Load with an explicit file path. An empty path skips the file.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides fields from environment variables.
func (c *Config) applyEnv() error {
	c.Difficulty = GetEnv("INVADERS_DIFFICULTY", c.Difficulty)
	c.LogFile = GetEnv("INVADERS_LOG_FILE", c.LogFile)
	c.HighScores.Backend = GetEnv("INVADERS_HIGHSCORE_BACKEND", c.HighScores.Backend)
	c.HighScores.Path = GetEnv("INVADERS_HIGHSCORE_PATH", c.HighScores.Path)
	c.Sound.Dir = GetEnv("INVADERS_SOUND_DIR", c.Sound.Dir)
	c.SSH.Host = GetEnv("SSH_HOST", c.SSH.Host)
	c.SSH.Port = GetEnv("SSH_PORT", c.SSH.Port)
	c.SSH.HostKeyPath = GetEnv("SSH_HOST_KEY", c.SSH.HostKeyPath)
	c.Web.Host = GetEnv("WEB_HOST", c.Web.Host)
	c.Web.Port = GetEnv("WEB_PORT", c.Web.Port)
	c.Web.DisplayHost = GetEnv("SSH_DISPLAY_HOST", c.Web.DisplayHost)

	if v := strings.TrimSpace(GetEnv("INVADERS_SOUND", "")); v != "" {
		on, err := parseSwitch(v)
		if err != nil {
			return fmt.Errorf("INVADERS_SOUND: %w", err)
		}
		c.Sound.Enabled = on
	}
	if v := strings.TrimSpace(GetEnv("SSH_IDLE_TIMEOUT", "")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SSH_IDLE_TIMEOUT: %w", err)
		}
		c.SSH.IdleTimeout = d
	}
	return nil
}

// parseSwitch accepts on/off in addition to the strconv booleans.
func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	return strconv.ParseBool(v)
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if _, ok := difficulty.ParseTier(c.Difficulty); !ok {
		errs = append(errs, fmt.Errorf("unknown difficulty %q", c.Difficulty))
	}
	switch c.HighScores.Backend {
	case BackendJSON, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown high score backend %q", c.HighScores.Backend))
	}
	if c.HighScores.Path == "" {
		errs = append(errs, errors.New("high score path is empty"))
	}
	volumes := []struct {
		name string
		v    float64
	}{
		{"shoot", c.Sound.Volumes.Shoot},
		{"explosion", c.Sound.Volumes.Explosion},
		{"background", c.Sound.Volumes.Background},
	}
	for _, vol := range volumes {
		if vol.v < 0 || vol.v > 1 {
			errs = append(errs, fmt.Errorf("%s volume %v out of range [0, 1]", vol.name, vol.v))
		}
	}
	if c.SSH.IdleTimeout < 0 {
		errs = append(errs, errors.New("negative idle timeout"))
	}
	return errors.Join(errs...)
}

// Tier returns the configured initial tier.
func (c Config) Tier() difficulty.Tier {
	t, _ := difficulty.ParseTier(c.Difficulty)
	return t
}
