// Package input turns the raw byte stream of a terminal in raw mode into
// per-frame key and mouse state.
package input

import (
	"bufio"
	"strconv"
	"sync"
	"time"
)

// keyHoldDuration is how long a movement key counts as held after its last
// press. Terminals only send repeats, never key releases.
const keyHoldDuration = 60 * time.Millisecond

// Click is a left mouse button press at a 1-based terminal position.
type Click struct {
	Col int
	Row int
}

// Input represents the current frame's input state.
type Input struct {
	Quit   bool // q or Ctrl-C, or the stream ended
	Left   bool // Held
	Right  bool // Held
	Fire   int  // Space presses this frame
	Start  bool // p
	Help   bool // h
	Escape bool
	Number int // Last digit pressed this frame, -1 if none
	Clicks []Click

	Pressed []byte
}

// keyState tracks the last time each movement key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks held keys.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool

	done     chan struct{}
	stopOnce sync.Once
	exited   chan struct{}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream until r fails or Stop is called.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:     make(chan byte, 128),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go func() {
		defer close(s.exited)
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Stop releases the reader goroutine once its pending read returns. Bytes not
// yet consumed are dropped. Stop may be called more than once.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Reset forgets held keys, e.g. when play resumes after a pause.
func (s *Stream) Reset() {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream without blocking and
// parses them.
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := parse(&s.state, buf, time.Now())
	if s.closed {
		in.Quit = true
	}
	return in
}

// parse decodes one frame of bytes, updating held key timestamps.
func parse(state *keyState, buf []byte, now time.Time) Input {
	in := Input{Number: -1, Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			if n, click, ok := parseMouse(buf[i:]); n > 0 {
				if ok {
					in.Clicks = append(in.Clicks, click)
				}
				i += n - 1
				continue
			}
			if i+2 < len(buf) {
				switch buf[i+2] {
				case 'C': // Right arrow
					state.right = now
					i += 2
					continue
				case 'D': // Left arrow
					state.left = now
					i += 2
					continue
				case 'A', 'B': // Up, down: unused
					i += 2
					continue
				}
			}
		}

		switch b {
		case 'q', 'Q', '\x03':
			in.Quit = true
		case 'a', 'A':
			state.left = now
		case 'd', 'D':
			state.right = now
		case ' ':
			in.Fire++
		case 'p', 'P':
			in.Start = true
		case 'h', 'H':
			in.Help = true
		case '\x1b':
			in.Escape = true
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			in.Number = int(b - '0')
		}
	}

	in.Left = now.Sub(state.left) < keyHoldDuration
	in.Right = now.Sub(state.right) < keyHoldDuration
	return in
}

// parseMouse decodes an SGR mouse report "ESC [ < b ; x ; y M" at the start
// of seq. n is the number of bytes consumed (0 if seq is not a mouse report);
// ok is true only for a left button press.
func parseMouse(seq []byte) (n int, click Click, ok bool) {
	if len(seq) < 3 || seq[2] != '<' {
		return 0, Click{}, false
	}

	var fields [3]int
	field := 0
	start := 3
	for i := 3; i < len(seq); i++ {
		c := seq[i]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' || c == 'M' || c == 'm':
			v, err := strconv.Atoi(string(seq[start:i]))
			if err != nil || field > 2 {
				return i + 1, Click{}, false
			}
			fields[field] = v
			field++
			start = i + 1
			if c == ';' {
				continue
			}
			if field != 3 {
				return i + 1, Click{}, false
			}
			press := c == 'M'
			leftButton := fields[0]&0b11 == 0 && fields[0]&(32|64) == 0
			return i + 1, Click{Col: fields[1], Row: fields[2]}, press && leftButton
		default:
			return i, Click{}, false
		}
	}
	// Incomplete report: swallow it rather than read it as keys.
	return len(seq), Click{}, false
}
