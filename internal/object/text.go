package object

import (
	"fmt"
	"io"
)

// positionedWriter places text at 1-based terminal coordinates itself
// (draw.ChunkWriter does, adding its canvas offset).
type positionedWriter interface {
	WriteAt(col, row int, s string)
}

// Text is a simple drawable text object.
// Coordinates are 1-based terminal positions.
type Text struct {
	X     int
	Y     int
	Value string
	Attr  string // Optional ANSI attribute prefix, reset after the text
}

// Draw writes the text at its position using ANSI cursor movement.
func (t Text) Draw(w io.Writer) error {
	if t.Value == "" {
		return nil
	}
	x := t.X
	y := t.Y
	if x < 1 {
		x = 1
	}
	if y < 1 {
		y = 1
	}
	value := t.Value
	if t.Attr != "" {
		value = t.Attr + value + "\033[0m"
	}
	if pw, ok := w.(positionedWriter); ok {
		pw.WriteAt(x, y, value)
		return nil
	}
	_, err := fmt.Fprintf(w, "\033[%d;%dH%s", y, x, value)
	return err
}
