package calc

import "abacus/abacusos/limits"

// editor owns the in-progress input line: a fixed byte buffer plus a
// cursor, with 0 <= cursor <= n <= cap after every mutation.
type editor struct {
	buf    [limits.InputCap]byte
	n      int
	cursor int
}

func (e *editor) text() []byte { return e.buf[:e.n] }

func (e *editor) empty() bool { return e.n == 0 }

// insert places c at the cursor. A full buffer is a normal boundary, not
// a fault: the byte is silently discarded.
func (e *editor) insert(c byte) bool {
	if e.n >= limits.InputCap {
		return false
	}
	copy(e.buf[e.cursor+1:e.n+1], e.buf[e.cursor:e.n])
	e.buf[e.cursor] = c
	e.n++
	e.cursor++
	return true
}

func (e *editor) backspace() bool {
	if e.cursor == 0 {
		return false
	}
	copy(e.buf[e.cursor-1:], e.buf[e.cursor:e.n])
	e.n--
	e.cursor--
	return true
}

func (e *editor) deleteForward() bool {
	if e.cursor >= e.n {
		return false
	}
	copy(e.buf[e.cursor:], e.buf[e.cursor+1:e.n])
	e.n--
	return true
}

func (e *editor) left() {
	if e.cursor > 0 {
		e.cursor--
	}
}

func (e *editor) right() {
	if e.cursor < e.n {
		e.cursor++
	}
}

func (e *editor) clear() {
	e.n = 0
	e.cursor = 0
}

// setText replaces the buffer contents (truncated to capacity) and puts
// the cursor at the end.
func (e *editor) setText(b []byte) {
	e.n = copy(e.buf[:], b)
	e.cursor = e.n
}
