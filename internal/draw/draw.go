// Package draw renders logical game coordinates onto an ANSI terminal.
package draw

import "strconv"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters used by the canvas renderer.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI attributes for text overlays.
const (
	AttrReverse = "\033[7m"
	AttrBold    = "\033[1m"
	AttrDim     = "\033[2m"
	AttrReset   = "\033[0m"
)

// Ink is the color of a canvas dot.
type Ink uint8

const (
	InkNone   Ink = iota // Empty dot
	InkPlain             // Terminal default foreground
	InkShip              // Bright cyan
	InkAlien             // Bright green
	InkBullet            // Yellow
	InkButton            // Green, like the menu buttons
)

// fgCodes holds the SGR foreground number per ink; background is +10.
var fgCodes = [...]int{
	InkPlain:  39,
	InkShip:   96,
	InkAlien:  92,
	InkBullet: 33,
	InkButton: 32,
}

func (i Ink) fgCode() string {
	if i == InkNone || int(i) >= len(fgCodes) {
		return ""
	}
	return "\033[" + strconv.Itoa(fgCodes[i]) + "m"
}

func (i Ink) bgCode() string {
	if i == InkNone || int(i) >= len(fgCodes) {
		return ""
	}
	return "\033[" + strconv.Itoa(fgCodes[i]+10) + "m"
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
