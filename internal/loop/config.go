package loop

// Max render resolution in terminal cells. Larger terminals get a centered,
// bordered play area so the 3:2 field keeps a sane aspect.
const (
	MaxTermWidth  = 180
	MaxTermHeight = 60
)

// idleWarnFraction is the share of Options.IdleTimeout after which the
// warning is shown.
const idleWarnFraction = 0.75
