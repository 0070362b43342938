// Package object defines the game entities: the ship, its projectiles, the
// enemies and the menu buttons.
package object

import (
	"io"

	"github.com/feifei876/alien-invasion/internal/draw"
	"github.com/feifei876/alien-invasion/internal/physics"
)

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // High-resolution canvas (2x vertical)
	Writer io.Writer    // Direct terminal output (for text)
}

// Screen represents the logical play area.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen returns a screen of the given logical size.
func NewScreen(width, height int) Screen {
	return Screen{
		Width:   width,
		Height:  height,
		CenterX: width / 2,
		CenterY: height / 2,
	}
}

// Object is a drawable game entity with a bounding box.
type Object interface {
	// Bounds returns the collision box in logical coordinates.
	Bounds() physics.Rect

	// Draw draws the object. Use ctx.Canvas for shapes, ctx.Writer for text.
	Draw(ctx DrawContext) error
}

var (
	_ Object = (*Ship)(nil)
	_ Object = (*Enemy)(nil)
	_ Object = (*Projectile)(nil)
	_ Object = (*Particle)(nil)
	_ Object = (*Button)(nil)
)

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on the next sweep.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Sweep drops destroyed objects in place, reusing the backing array.
func Sweep[T Destructible](objs []T) []T {
	kept := objs[:0]
	for _, o := range objs {
		if !o.IsDestroyed() {
			kept = append(kept, o)
		}
	}
	clear(objs[len(kept):])
	return kept
}
