package draw

import (
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"golang.org/x/term"
)

// ChunkWriter collects one frame of escape sequences and text, then writes it
// out in MTU-sized pieces on Flush. Positions passed to it are 1-based and
// relative to the canvas; the canvas offset is added here.
type ChunkWriter struct {
	w      io.Writer
	frame  []byte
	offCol int
	offRow int
}

// NewChunkWriter returns a ChunkWriter for w with the given canvas offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		w:      w,
		frame:  make([]byte, 0, 16*1024),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the canvas origin, usually after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol, cw.offRow = offsetCol, offsetRow
}

// MoveCursor queues a cursor move to a canvas-relative cell.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.frame = append(cw.frame, "\033["...)
	cw.frame = strconv.AppendInt(cw.frame, int64(row+cw.offRow), 10)
	cw.frame = append(cw.frame, ';')
	cw.frame = strconv.AppendInt(cw.frame, int64(col+cw.offCol), 10)
	cw.frame = append(cw.frame, 'H')
}

// Write queues raw bytes; Canvas.Render writes through it.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.frame = append(cw.frame, p...)
	return len(p), nil
}

// WriteString queues s as is.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame = append(cw.frame, s...)
}

// WriteAt queues s starting at a canvas-relative cell.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.WriteString(s)
}

// WriteCentered queues plain text centered on col.
func (cw *ChunkWriter) WriteCentered(col, row int, s string) {
	cw.WriteAt(col-utf8.RuneCountInString(s)/2, row, s)
}

// Flush sends the queued frame and empties the queue. The first write error
// aborts the frame.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame
	cw.frame = cw.frame[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

var _ io.Writer = (*ChunkWriter)(nil)

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the local terminal.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Terminal mode sequences. Mouse reporting uses xterm button tracking with
// SGR coordinates so large terminals report correctly.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	seqMouseOn    = "\033[?1000h\033[?1006h"
	seqMouseOff   = "\033[?1006l\033[?1000l"
)

// ClearScreen, HideCursor, ShowCursor, EnableMouse and DisableMouse write the
// matching mode sequence to w.
func ClearScreen(w io.Writer) { _, _ = io.WriteString(w, seqClear) }
func HideCursor(w io.Writer) { _, _ = io.WriteString(w, seqHideCursor) }
func ShowCursor(w io.Writer) { _, _ = io.WriteString(w, seqShowCursor) }
func EnableMouse(w io.Writer) { _, _ = io.WriteString(w, seqMouseOn) }
func DisableMouse(w io.Writer) { _, _ = io.WriteString(w, seqMouseOff) }
