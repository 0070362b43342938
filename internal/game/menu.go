package game

import (
	"github.com/feifei876/alien-invasion/internal/difficulty"
	"github.com/feifei876/alien-invasion/internal/object"
)

// Menu holds the five buttons shown outside of play.
type Menu struct {
	Play   *object.Button
	Help   *object.Button
	Easy   *object.Button
	Normal *object.Button
	Hard   *object.Button
}

// NewMenu lays the buttons out around the center of screen: the tiers in a
// row above Play, the help button below it.
func NewMenu(screen object.Screen) *Menu {
	cx := float64(screen.CenterX)
	cy := float64(screen.CenterY)
	const spacing = 220.0

	return &Menu{
		Easy:   object.NewButton(difficulty.Easy.Label(), cx-spacing, cy-80),
		Normal: object.NewButton(difficulty.Normal.Label(), cx, cy-80),
		Hard:   object.NewButton(difficulty.Hard.Label(), cx+spacing, cy-80),
		Play:   object.NewButton("Play", cx, cy+50),
		Help:   object.NewButton("How to Play", cx, cy+120),
	}
}

// Buttons returns every button in drawing order.
func (m *Menu) Buttons() []*object.Button {
	return []*object.Button{m.Easy, m.Normal, m.Hard, m.Play, m.Help}
}

// Highlight marks the button of the selected tier.
func (m *Menu) Highlight(t difficulty.Tier) {
	m.Easy.Selected = t == difficulty.Easy
	m.Normal.Selected = t == difficulty.Normal
	m.Hard.Selected = t == difficulty.Hard
}

// tierAt returns the tier whose button contains the point.
func (m *Menu) tierAt(x, y float64) (difficulty.Tier, bool) {
	switch {
	case m.Easy.Hit(x, y):
		return difficulty.Easy, true
	case m.Normal.Hit(x, y):
		return difficulty.Normal, true
	case m.Hard.Hit(x, y):
		return difficulty.Hard, true
	}
	return "", false
}
