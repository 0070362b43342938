package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/feifei876/alien-invasion/internal/difficulty"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invaders.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Tier() != difficulty.Normal {
		t.Errorf("tier = %q, want normal", cfg.Tier())
	}
	if cfg.HighScores.Backend != BackendJSON || cfg.HighScores.Path != "high_scores.json" {
		t.Errorf("high scores = %+v", cfg.HighScores)
	}
	if !cfg.Sound.Enabled || cfg.Sound.Volumes.Explosion != 0.5 {
		t.Errorf("sound = %+v", cfg.Sound)
	}
	if cfg.SSH.IdleTimeout != DefaultIdleTimeout {
		t.Errorf("idle timeout = %v, want %v", cfg.SSH.IdleTimeout, DefaultIdleTimeout)
	}
}

func TestValidateReportsVolumesInOrder(t *testing.T) {
	cfg := Default()
	cfg.Sound.Volumes = VolumesConfig{Shoot: 2, Explosion: -1, Background: 3}
	want := "shoot volume 2 out of range [0, 1]\n" +
		"explosion volume -1 out of range [0, 1]\n" +
		"background volume 3 out of range [0, 1]"
	for range 10 {
		err := cfg.Validate()
		if err == nil {
			t.Fatal("Validate accepted bad volumes")
		}
		if err.Error() != want {
			t.Fatalf("error = %q, want %q", err.Error(), want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
difficulty: hard
high_scores:
  backend: sqlite
  path: /tmp/scores.db
sound:
  volumes:
    shoot: 0.1
ssh:
  port: "2323"
  idle_timeout: 30s
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Tier() != difficulty.Hard {
		t.Errorf("tier = %q, want hard", cfg.Tier())
	}
	if cfg.HighScores.Backend != BackendSQLite || cfg.HighScores.Path != "/tmp/scores.db" {
		t.Errorf("high scores = %+v", cfg.HighScores)
	}
	if cfg.Sound.Volumes.Shoot != 0.1 || cfg.Sound.Volumes.Background != 0.2 {
		t.Errorf("volumes = %+v, want shoot overridden, rest default", cfg.Sound.Volumes)
	}
	if cfg.SSH.Port != "2323" || cfg.SSH.Host != "::" {
		t.Errorf("ssh = %+v", cfg.SSH)
	}
	if cfg.SSH.IdleTimeout != 30*time.Second {
		t.Errorf("idle timeout = %v, want 30s", cfg.SSH.IdleTimeout)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "difficulty: hard\n")
	t.Setenv("INVADERS_DIFFICULTY", "easy")
	t.Setenv("INVADERS_HIGHSCORE_PATH", "scores/alt.json")
	t.Setenv("INVADERS_SOUND", "off")
	t.Setenv("SSH_PORT", "2424")
	t.Setenv("SSH_IDLE_TIMEOUT", "0s")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Tier() != difficulty.Easy {
		t.Errorf("tier = %q, want easy", cfg.Tier())
	}
	if cfg.HighScores.Path != "scores/alt.json" {
		t.Errorf("path = %q", cfg.HighScores.Path)
	}
	if cfg.Sound.Enabled {
		t.Error("sound should be off")
	}
	if cfg.SSH.Port != "2424" || cfg.SSH.IdleTimeout != 0 {
		t.Errorf("ssh = %+v", cfg.SSH)
	}
}

func TestLoadUsesConfigEnv(t *testing.T) {
	t.Setenv("INVADERS_CONFIG", writeConfig(t, "log_file: custom.log\n"))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogFile != "custom.log" {
		t.Errorf("log file = %q", cfg.LogFile)
	}
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		want string
	}{
		{name: "tier", body: "difficulty: insane\n", want: "unknown difficulty"},
		{name: "backend", body: "high_scores:\n  backend: redis\n", want: "unknown high score backend"},
		{name: "volume", body: "sound:\n  volumes:\n    explosion: 2\n", want: "explosion volume"},
		{name: "yaml", body: "difficulty: [\n", want: "parse config"},
		{name: "sound switch", env: map[string]string{"INVADERS_SOUND": "loud"}, want: "INVADERS_SOUND"},
		{name: "idle", env: map[string]string{"SSH_IDLE_TIMEOUT": "soon"}, want: "SSH_IDLE_TIMEOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFile(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("INVADERS_TEST_KEY", "")
	if got := GetEnv("INVADERS_TEST_KEY", "fallback"); got != "" {
		t.Errorf("set but empty variable should win, got %q", got)
	}
	if got := GetEnv("INVADERS_TEST_UNSET_KEY", "fallback"); got != "fallback" {
		t.Errorf("got %q, want fallback", got)
	}
}
