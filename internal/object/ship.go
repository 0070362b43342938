package object

import (
	"github.com/feifei876/alien-invasion/internal/draw"
	"github.com/feifei876/alien-invasion/internal/physics"
)

// Ship dimensions in logical units.
const (
	ShipWidth  = 60.0
	ShipHeight = 48.0
)

// Intent is the direction the player is currently steering.
type Intent int

const (
	IntentNone Intent = iota
	IntentLeft
	IntentRight
)

// Ship is the player-controlled cannon at the bottom of the play area.
type Ship struct {
	X, Y   float64 // Top-left corner
	Intent Intent  // Current steering direction
}

// NewShip creates a ship centered at the bottom of the screen.
func NewShip(screen Screen) *Ship {
	s := &Ship{}
	s.Center(screen)
	return s
}

// Center places the ship at the bottom center of the screen.
func (s *Ship) Center(screen Screen) {
	s.X = float64(screen.CenterX) - ShipWidth/2
	s.Y = float64(screen.Height) - ShipHeight
}

// Update moves the ship by speed in the direction of its intent. The ship
// never leaves the screen.
func (s *Ship) Update(speed float64, screen Screen) {
	switch s.Intent {
	case IntentRight:
		s.X += speed
	case IntentLeft:
		s.X -= speed
	default:
		return
	}
	s.X = min(max(s.X, 0), float64(screen.Width)-ShipWidth)
}

// Bounds returns the ship's collision box.
func (s *Ship) Bounds() physics.Rect {
	return physics.Rect{X: s.X, Y: s.Y, W: ShipWidth, H: ShipHeight}
}

// Draw renders the ship as a turret on a wide base.
func (s *Ship) Draw(ctx DrawContext) error {
	w, h := ShipWidth, ShipHeight

	ctx.Canvas.SetInk(draw.InkShip)

	// Base
	ctx.Canvas.FillRect(s.X, s.Y+h*0.55, w, h*0.45)

	// Turret
	turret := ctx.Canvas.BorrowPoints(3)
	turret[0] = draw.Point{X: s.X + w*0.5, Y: s.Y}
	turret[1] = draw.Point{X: s.X + w*0.75, Y: s.Y + h*0.55}
	turret[2] = draw.Point{X: s.X + w*0.25, Y: s.Y + h*0.55}
	ctx.Canvas.DrawPolygon(turret, true)

	return nil
}
