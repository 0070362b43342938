// Package loop drives a game session against a terminal with the fixed
// Input → Update → Draw cycle.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/feifei876/alien-invasion/internal/difficulty"
	"github.com/feifei876/alien-invasion/internal/draw"
	"github.com/feifei876/alien-invasion/internal/game"
	"github.com/feifei876/alien-invasion/internal/input"
	"github.com/feifei876/alien-invasion/internal/object"
)

// Options configures Run.
type Options struct {
	TermSizeFunc draw.TermSizeFunc   // Defaults to the local terminal
	Logger       *log.Logger         // Defaults to a discarding logger
	Sleep        func(time.Duration) // Defaults to time.Sleep
	IdleTimeout  time.Duration       // Quit after this long without input; 0 disables
}

// tierKeys maps the number row to difficulty tiers.
var tierKeys = map[int]difficulty.Tier{
	1: difficulty.Easy,
	2: difficulty.Normal,
	3: difficulty.Hard,
}

// runner holds the per-connection rendering state.
type runner struct {
	session      *game.Session
	canvas       *draw.Canvas
	cw           *draw.ChunkWriter
	stream       *input.Stream
	termSizeFunc draw.TermSizeFunc
	sleep        func(time.Duration)
	log          *log.Logger

	mouseOn     bool
	idleTimeout time.Duration
	lastInput   time.Time
	idleWarning bool

	world []object.Object // Reused every frame
}

// Run plays session on the terminal behind r and w until the player quits,
// the input ends or ctx is cancelled. The session is always quit on return,
// so high scores are saved.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, session *game.Session, opts Options) error {
	rn := newRunner(r, w, session, opts)
	return rn.run(ctx)
}

func newRunner(r *bufio.Reader, w io.Writer, session *game.Session, opts Options) *runner {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}

	screen := session.Screen()
	termWidth, termHeight, _ := opts.TermSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, float64(screen.Width), float64(screen.Height))
	canvas.SetOffset(offsetCol, offsetRow)

	return &runner{
		session:      session,
		canvas:       canvas,
		cw:           draw.NewChunkWriter(w, offsetCol, offsetRow),
		stream:       input.StartStream(r),
		termSizeFunc: opts.TermSizeFunc,
		sleep:        opts.Sleep,
		log:          opts.Logger,
		idleTimeout:  opts.IdleTimeout,
		lastInput:    time.Now(),
	}
}

func (rn *runner) run(ctx context.Context) error {
	s := rn.session
	defer s.Quit()

	defer rn.stream.Stop()

	draw.HideCursor(rn.cw)
	defer rn.restoreTerminal()

	for s.Running() {
		select {
		case <-ctx.Done():
			rn.log.Debug("loop cancelled", "err", ctx.Err())
			s.Quit()
			continue
		default:
		}

		frameStart := time.Now()

		// ===== INPUT PHASE =====
		rn.processInput(frameStart)
		if !s.Running() {
			break
		}

		// ===== UPDATE PHASE =====
		rn.updateScreen()
		s.Tick()
		if s.State() == game.StateHitPause {
			// Show the reset board with the banner for the whole pause.
			if err := rn.drawFrame(); err != nil {
				return fmt.Errorf("draw frame: %w", err)
			}
			rn.sleep(game.HitPause)
			s.ResumeAfterHit()
			rn.stream.Reset()
			continue
		}

		// ===== DRAW PHASE =====
		if err := rn.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// ===== FRAME TIMING =====
		if elapsed := time.Since(frameStart); elapsed < game.TickTime {
			rn.sleep(game.TickTime - elapsed)
		}
	}
	return nil
}

// restoreTerminal undoes what the loop changed on the terminal.
func (rn *runner) restoreTerminal() {
	if rn.mouseOn {
		draw.DisableMouse(rn.cw)
		rn.mouseOn = false
	}
	draw.ClearScreen(rn.cw)
	draw.ShowCursor(rn.cw)
	if err := rn.cw.Flush(); err != nil {
		rn.log.Debug("restore terminal", "err", err)
	}
}

// processInput reads the pending input and applies it to the session.
func (rn *runner) processInput(now time.Time) {
	in := input.ReadInput(rn.stream)

	if len(in.Pressed) > 0 {
		rn.lastInput = now
		rn.idleWarning = false
	} else if rn.idleTimeout > 0 {
		idle := now.Sub(rn.lastInput)
		if idle > rn.idleTimeout {
			rn.log.Info("disconnecting idle player", "idle", idle.Round(time.Second))
			rn.session.Quit()
			return
		}
		rn.idleWarning = idle > time.Duration(float64(rn.idleTimeout)*idleWarnFraction)
	}

	if in.Quit {
		rn.session.Quit()
		return
	}
	dispatch(rn.session, in, rn.canvas)
}

// dispatch translates one frame of input into session commands. Clicks are
// mapped from terminal cells to logical coordinates through canvas.
func dispatch(s *game.Session, in input.Input, canvas *draw.Canvas) {
	switch {
	case in.Left && !in.Right:
		s.Steer(object.IntentLeft)
	case in.Right && !in.Left:
		s.Steer(object.IntentRight)
	default:
		s.Steer(object.IntentNone)
	}

	if in.Escape {
		s.Cancel()
	}
	if in.Help {
		s.ToggleHelp()
	}
	if tier, ok := tierKeys[in.Number]; ok {
		s.Select(tier)
	}
	for _, c := range in.Clicks {
		if x, y, ok := canvas.TerminalToLogical(c.Col, c.Row); ok {
			s.Click(x, y)
		}
	}
	if in.Start {
		s.Start()
	}
	for i := 0; i < in.Fire; i++ {
		s.Fire()
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
func (rn *runner) updateScreen() {
	termWidth, termHeight, err := rn.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	rn.canvas.Resize(renderWidth, renderHeight)
	rn.canvas.SetOffset(offsetCol, offsetRow)
	rn.cw.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(1, min(termWidth, MaxTermWidth))
	renderHeight = max(1, min(termHeight, MaxTermHeight))
	offsetCol = max(0, (termWidth-renderWidth)/2)
	offsetRow = max(0, (termHeight-renderHeight)/2)
	return
}

// drawFrame renders the whole frame into the chunk writer and flushes it.
func (rn *runner) drawFrame() error {
	s := rn.session
	cw := rn.cw

	rn.syncMouse()
	draw.ClearScreen(cw)
	rn.canvas.Clear()

	ctx := object.DrawContext{Canvas: rn.canvas, Writer: cw}

	// Shapes go to the canvas first; text overlays are written after the
	// canvas is rendered so they stay on top.
	switch s.State() {
	case game.StatePlaying, game.StateHitPause:
		rn.world = worldObjects(rn.world[:0], s)
		if err := drawWorld(rn.world, ctx); err != nil {
			return err
		}
		rn.canvas.Render(cw)
		rn.canvas.RenderBorder(cw)
		rn.drawHUD()
	case game.StateMenu:
		// Button labels sit inside the outlines, so the canvas never
		// paints over them.
		for _, b := range s.Menu().Buttons() {
			if err := b.Draw(ctx); err != nil {
				return err
			}
		}
		rn.canvas.Render(cw)
		rn.canvas.RenderBorder(cw)
		rn.drawMenu()
	case game.StateHelp:
		rn.canvas.Render(cw)
		rn.canvas.RenderBorder(cw)
		rn.drawHelp()
	}

	if rn.idleWarning {
		rn.drawIdleWarning()
	}
	return cw.Flush()
}

// worldObjects appends everything drawn during play, back to front.
func worldObjects(dst []object.Object, s *game.Session) []object.Object {
	for _, p := range s.Particles() {
		dst = append(dst, p)
	}
	dst = append(dst, s.Ship())
	for _, e := range s.Fleet().Enemies {
		dst = append(dst, e)
	}
	for _, p := range s.Projectiles() {
		dst = append(dst, p)
	}
	return dst
}

// drawWorld draws objs in order onto the canvas.
func drawWorld(objs []object.Object, ctx object.DrawContext) error {
	for _, o := range objs {
		if err := o.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// syncMouse turns mouse reporting on while buttons are clickable.
func (rn *runner) syncMouse() {
	st := rn.session.State()
	want := st == game.StateMenu || st == game.StateHelp
	if want == rn.mouseOn {
		return
	}
	if want {
		draw.EnableMouse(rn.cw)
	} else {
		draw.DisableMouse(rn.cw)
	}
	rn.mouseOn = want
}
