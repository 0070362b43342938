package object

import (
	"unicode/utf8"

	"github.com/feifei876/alien-invasion/internal/draw"
	"github.com/feifei876/alien-invasion/internal/physics"
)

// Button dimensions in logical units.
const (
	ButtonWidth  = 200.0
	ButtonHeight = 50.0
)

// Button is a clickable menu region with a centered label.
type Button struct {
	Label    string
	Rect     physics.Rect
	Selected bool // Drawn highlighted (active difficulty)
}

// NewButton creates a button centered on (cx, cy).
func NewButton(label string, cx, cy float64) *Button {
	return &Button{
		Label: label,
		Rect:  physics.Centered(cx, cy, ButtonWidth, ButtonHeight),
	}
}

// Hit reports whether the logical point lies on the button.
func (b *Button) Hit(x, y float64) bool {
	return b.Rect.Contains(x, y)
}

// Bounds returns the button area.
func (b *Button) Bounds() physics.Rect {
	return b.Rect
}

// Draw outlines the button on the canvas and writes its label on top.
// The label is placed in canvas-relative terminal coordinates.
func (b *Button) Draw(ctx DrawContext) error {
	r := b.Rect
	ctx.Canvas.SetInk(draw.InkButton)
	ctx.Canvas.StrokeRect(r.X, r.Y, r.W, r.H)

	col, row := ctx.Canvas.LogicalToTerminal(r.CenterX(), r.CenterY())
	label := Text{
		X:     col - utf8.RuneCountInString(b.Label)/2,
		Y:     row,
		Value: b.Label,
	}
	if b.Selected {
		label.Attr = draw.AttrReverse
	}
	return label.Draw(ctx.Writer)
}
