package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/feifei876/alien-invasion/internal/audio"
	"github.com/feifei876/alien-invasion/internal/config"
	"github.com/feifei876/alien-invasion/internal/draw"
	"github.com/feifei876/alien-invasion/internal/game"
	"github.com/feifei876/alien-invasion/internal/highscore"
	"github.com/feifei876/alien-invasion/internal/loop"
)

// arcade holds what every SSH session shares: the high-score record.
type arcade struct {
	cfg    config.Config
	store  highscore.Store
	logger *log.Logger
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "invaders-ssh",
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config",
		"host", cfg.SSH.Host, "port", cfg.SSH.Port, "hostKeyPath", cfg.SSH.HostKeyPath,
		"workingDir", workingDir, "backend", cfg.HighScores.Backend, "scores", cfg.HighScores.Path)

	// One record for all players; concurrent saves keep the best per tier.
	inner, closer, err := highscore.Open(cfg.HighScores.Backend, cfg.HighScores.Path)
	if err != nil {
		logger.Fatal("failed to open high scores", "err", err)
	}
	defer closer.Close()

	a := &arcade{cfg: cfg, store: highscore.NewMerging(inner), logger: logger}

	// Sessions end through this context on shutdown, saving their scores.
	sessionCtx, cancelSessions := context.WithCancel(context.Background())
	var sessions sync.WaitGroup

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			a.gameMiddleware(sessionCtx, &sessions),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if cfg.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// End running games first so their high scores are saved.
	cancelSessions()
	waitTimeout(&sessions, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// waitTimeout waits for wg, giving up after d.
func waitTimeout(wg *sync.WaitGroup, d time.Duration) {
	ch := make(chan struct{})
	go func() {
		wg.Wait()
		close(ch)
	}()
	select {
	case <-ch:
	case <-time.After(d):
	}
}

// gameMiddleware runs an independent single-player game per SSH session.
// Remote sessions have no speaker, so they play silently.
func (a *arcade) gameMiddleware(shutdown context.Context, sessions *sync.WaitGroup) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}
			sessions.Add(1)
			defer sessions.Done()

			logger := a.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
			logger.Info("new game session", "terminal", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

			size := &windowSize{}
			size.set(pty.Window)
			go size.follow(winCh)

			ctx, cancel := context.WithCancel(sess.Context())
			defer cancel()
			stop := context.AfterFunc(shutdown, cancel)
			defer stop()

			session := game.NewSession(game.Options{
				Store:  a.store,
				Sound:  audio.Silent{},
				Logger: logger,
				Tier:   a.cfg.Tier(),
			})
			err := loop.Run(ctx, bufio.NewReader(sess), sess, session, loop.Options{
				TermSizeFunc: size.get,
				Logger:       logger,
				IdleTimeout:  a.cfg.SSH.IdleTimeout,
			})
			if err != nil {
				logger.Warn("game error", "err", err)
			}

			st := session.Stats()
			logger.Info("session ended", "tier", session.Tier(), "score", st.Score, "level", st.Level)
			next(sess)
		}
	}
}

// windowSize is the latest PTY size reported by the client.
type windowSize struct {
	mu   sync.Mutex
	cols int
	rows int
}

func (w *windowSize) set(win ssh.Window) {
	w.mu.Lock()
	w.cols, w.rows = win.Width, win.Height
	w.mu.Unlock()
}

// follow applies window-change events until the session closes the channel.
func (w *windowSize) follow(changes <-chan ssh.Window) {
	for win := range changes {
		w.set(win)
	}
}

func (w *windowSize) get() (int, int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cols, w.rows, nil
}

var _ draw.TermSizeFunc = (*windowSize)(nil).get
