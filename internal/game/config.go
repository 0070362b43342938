// Package game implements the invasion rules: run settings, the enemy
// fleet, collision scoring and the session state machine.
package game

import "time"

// Play area in logical units. The renderer scales it to the terminal.
const (
	PlayWidth  = 1200
	PlayHeight = 800
)

// Tick rate of the simulation.
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// MaxProjectiles caps the player's shots on screen at once.
const MaxProjectiles = 3

// HitPause is how long the game freezes after the ship is hit.
const HitPause = 500 * time.Millisecond

// Wave-clear scaling.
const (
	SpeedupScale     = 1.2
	ShipSpeedupScale = 1.2
	ScoreScale       = 1.5
)
