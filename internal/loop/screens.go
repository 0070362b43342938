package loop

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/feifei876/alien-invasion/internal/difficulty"
	"github.com/feifei876/alien-invasion/internal/draw"
	"github.com/feifei876/alien-invasion/internal/game"
)

var printer = message.NewPrinter(language.English)

// formatScore rounds to the nearest ten (halves to even) and adds thousands
// separators: 1234 -> "1,230".
func formatScore(score int) string {
	rounded := int(math.RoundToEven(float64(score)/10) * 10)
	return printer.Sprintf("%d", rounded)
}

// logicalRow returns the terminal row of a logical y coordinate.
func (rn *runner) logicalRow(y float64) int {
	_, row := rn.canvas.LogicalToTerminal(0, y)
	return row
}

// writeStyled centers s on col, wrapped in an ANSI attribute.
func (rn *runner) writeStyled(col, row int, attr, s string) {
	rn.cw.WriteAt(col-utf8.RuneCountInString(s)/2, row, attr+s+draw.AttrReset)
}

// drawHUD draws the scoreboard over the play field.
// Text fields use fixed-width formatting so the layout does not jump as
// values grow.
func (rn *runner) drawHUD() {
	s := rn.session
	cw := rn.cw
	termWidth := rn.canvas.TerminalWidth()
	st := s.Stats()

	// Ships left (top left)
	ships := "Ships: " + strings.Repeat("A ", st.Lives)
	cw.WriteAt(2, 1, ships)

	// High score (top center)
	high := "High Score: " + formatScore(s.HighScore())
	cw.WriteCentered(termWidth/2, 1, high)

	// Score and level (top right)
	score := fmt.Sprintf("Score: %9s", formatScore(st.Score))
	cw.WriteAt(termWidth-len(score)-1, 1, score)
	level := fmt.Sprintf("Level: %3d", st.Level)
	cw.WriteAt(termWidth-len(level)-1, 2, level)

	if s.State() == game.StateHitPause {
		rn.writeStyled(termWidth/2, rn.canvas.TerminalHeight()/2, draw.AttrBold, "SHIP DOWN")
	}
}

// titleArt is the menu banner (figlet "small" font).
var titleArt = []string{
	`   _   _    ___ ___ _  _   ___ _  ___   ___   ___ ___ ___  _  _ `,
	`  /_\ | |  |_ _| __| \| | |_ _| \| \ \ / /_\ / __|_ _/ _ \| \| |`,
	` / _ \| |__ | || _|| .' |  | || .' |\ V / _ \\__ \| | (_) | .' |`,
	`/_/ \_\____|___|___|_|\_| |___|_|\_| \_/_/ \_\___/___\___/|_|\_|`,
}

// drawMenu draws the text parts of the menu: title, game-over banner,
// high score of the selected tier and key hints. Buttons are drawn by the
// caller.
func (rn *runner) drawMenu() {
	s := rn.session
	cw := rn.cw
	termWidth := rn.canvas.TerminalWidth()
	termHeight := rn.canvas.TerminalHeight()
	centerX := termWidth / 2

	// Title, only where it fits
	titleRow := rn.logicalRow(80)
	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}
	if titleWidth < termWidth-2 && termHeight >= 30 {
		for i, line := range titleArt {
			cw.WriteAt(centerX-titleWidth/2, titleRow+i, line)
		}
	} else {
		rn.writeStyled(centerX, titleRow, draw.AttrBold, "A L I E N   I N V A S I O N")
	}

	if s.GameOver() {
		st := s.Stats()
		bannerRow := rn.logicalRow(235)
		rn.writeStyled(centerX, bannerRow, draw.AttrBold, "GAME OVER")
		summary := fmt.Sprintf("Score %s  Level %d", formatScore(st.Score), st.Level)
		cw.WriteCentered(centerX, bannerRow+1, summary)
	}

	high := fmt.Sprintf("%s high score: %s", s.Tier().Label(), formatScore(s.HighScore()))
	cw.WriteCentered(centerX, rn.logicalRow(560), high)

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		cw.WriteCentered(centerX, rn.logicalRow(620), ">>  Press P or click Play  <<")
	}

	rn.writeStyled(centerX, termHeight, draw.AttrDim, "1/2/3 Difficulty   H Help   Q Quit")
}

// drawHelp draws the how-to-play screen.
func (rn *runner) drawHelp() {
	cw := rn.cw
	centerX := rn.canvas.TerminalWidth() / 2
	row := max(1, rn.canvas.TerminalHeight()/2-10)

	rn.writeStyled(centerX, row, draw.AttrBold, "HOW TO PLAY")
	row += 2

	lines := []string{
		"Shoot down the alien fleet before it reaches you.",
		"The fleet drops each time it touches a side of the screen.",
		"Clearing a wave brings a faster one worth more points.",
		"You lose a ship when an alien hits you or lands.",
		"",
		"A D / < >  . .  Move",
		"SPACE  . . . . . Fire (3 shots at a time)",
		"P  . . . . . . . Play",
		"Q  . . . . . . . Quit",
		"",
	}
	for _, tier := range difficulty.All() {
		p := difficulty.For(tier)
		lines = append(lines, fmt.Sprintf("%-7s %d ships, %d points per alien", tier.Label(), p.Lives, p.PointsPerKill))
	}
	lines = append(lines, "", "Press ESC or H to go back")

	for i, line := range lines {
		cw.WriteCentered(centerX, row+i, line)
	}
}

// drawIdleWarning tells a remote player they are about to be disconnected.
func (rn *runner) drawIdleWarning() {
	centerX := rn.canvas.TerminalWidth() / 2
	centerY := rn.canvas.TerminalHeight() / 2

	left := rn.idleTimeout - time.Since(rn.lastInput)
	msg := fmt.Sprintf("Inactive: disconnecting in %d seconds. Press any key.", max(0, int(left.Seconds())))
	rn.writeStyled(centerX, centerY+3, draw.AttrReverse, msg)
}
