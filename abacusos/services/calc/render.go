package calc

import (
	"fmt"

	"abacus/abacusos/limits"
	"abacus/abacusos/proto"
)

// Rendering is plain VT100 over the terminal service: the input line is
// redrawn in place (CR, rewrite, erase to end, cursor-left moves), and
// stack-changing events print a fresh preview block above a new line.

func (s *Service) emit(str string) {
	s.out = append(s.out, str...)
}

// renderLine redraws the input line in place and repositions the cursor.
func (s *Service) renderLine() {
	s.emit("\r\x1b[32m> \x1b[0m")
	s.emit(string(s.ed.text()))

	// Trailing visible characters the cursor must back over.
	back := s.ed.n - s.ed.cursor
	if s.status != proto.ErrNone {
		msg := s.status.String()
		s.emit("  \x1b[31m[")
		s.emit(msg)
		s.emit("]\x1b[0m")
		back += len(msg) + 4
	}
	s.emit("\x1b[K")
	for i := 0; i < back; i++ {
		s.emit("\x1b[D")
	}
}

// renderEvent finishes the current line, prints the stack preview window
// and starts a fresh input line.
func (s *Service) renderEvent() {
	s.emit("\r\n")
	s.renderPreview()
	s.renderLine()
}

// renderPreview prints the visible slice of the operand stack, deepest
// visible row first, via read-only peeks.
func (s *Service) renderPreview() {
	depth := s.st.Depth()
	if depth == 0 {
		s.emit("\x1b[90m  (empty)\x1b[0m\r\n")
		return
	}

	top := s.view
	bottom := top + limits.PreviewRows
	if bottom > depth {
		bottom = depth
	}
	if s.view > 0 {
		s.emit(fmt.Sprintf("\x1b[90m  ... %d above\x1b[0m\r\n", s.view))
	}
	for d := bottom - 1; d >= top; d-- {
		v, err := s.st.Peek(d)
		if err != nil {
			continue
		}
		s.emit(fmt.Sprintf("\x1b[90m%3d:\x1b[0m %s\r\n", d+1, v.String()))
	}
	if bottom < depth {
		s.emit(fmt.Sprintf("\x1b[90m  ... %d below\x1b[0m\r\n", depth-bottom))
	}
}
