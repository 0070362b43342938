package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/feifei876/alien-invasion/internal/audio"
	"github.com/feifei876/alien-invasion/internal/config"
	"github.com/feifei876/alien-invasion/internal/game"
	"github.com/feifei876/alien-invasion/internal/highscore"
	"github.com/feifei876/alien-invasion/internal/loop"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := openLogger(cfg.LogFile)
	defer closeLog()

	if err := run(cfg, logger); err != nil {
		logger.Error("game error", "err", err)
		closeLog()
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *log.Logger) error {
	store, closer, err := highscore.Open(cfg.HighScores.Backend, cfg.HighScores.Path)
	if err != nil {
		return err
	}
	defer closer.Close()

	player, cleanup := openAudio(cfg.Sound, logger)
	defer cleanup()

	session := game.NewSession(game.Options{
		Store:  store,
		Sound:  player,
		Logger: logger,
		Tier:   cfg.Tier(),
	})

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	logger.Info("game started", "tier", cfg.Tier(), "backend", cfg.HighScores.Backend)
	return loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, session, loop.Options{Logger: logger})
}

// openLogger logs to path; the terminal belongs to the game. Without a
// usable file, logging is discarded.
func openLogger(path string) (*log.Logger, func()) {
	if path == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file: %v (logging disabled)\n", err)
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "invaders",
		Level:           log.InfoLevel,
	})
	return logger, func() { _ = f.Close() }
}

// openAudio starts the speaker and loads the sounds. Any failure degrades
// to silence.
func openAudio(cfg config.SoundConfig, logger *log.Logger) (audio.Player, func()) {
	if !cfg.Enabled {
		return audio.Silent{}, func() {}
	}

	m := audio.NewManager()
	if err := m.Initialize(); err != nil {
		logger.Warn("audio unavailable, playing silently", "err", err)
		return audio.Silent{}, func() {}
	}

	volumes := audio.Volumes{
		Shoot:      cfg.Volumes.Shoot,
		Explosion:  cfg.Volumes.Explosion,
		Background: cfg.Volumes.Background,
	}
	if err := audio.LoadAssets(m, cfg.Dir, volumes); err != nil {
		logger.Warn("some sounds could not be loaded", "dir", cfg.Dir, "err", err)
	}
	return m, m.Cleanup
}
