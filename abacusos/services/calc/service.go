// Package calc is the calculator core service: it decodes the input byte
// stream, edits the current line, and drives the operand stack.
package calc

import (
	"errors"
	"fmt"

	clientlog "abacus/abacusos/client/logger"
	"abacus/abacusos/decimal"
	"abacus/abacusos/kernel"
	"abacus/abacusos/limits"
	"abacus/abacusos/proto"
	"abacus/abacusos/rpn"
	"abacus/abacusos/stack"
)

type Service struct {
	inCap   kernel.Capability
	termCap kernel.Capability
	logCap  kernel.Capability

	dec  decoder
	ed   editor
	hist history
	st   stack.Stack

	// view scrolls the stack preview window, 0 meaning top of stack.
	view int

	// status is the transient error indicator, cleared by the next key.
	status proto.ErrCode

	badSeqs uint32

	out []byte
}

func New(inCap, termCap, logCap kernel.Capability) *Service {
	return &Service{
		inCap:   inCap,
		termCap: termCap,
		logCap:  logCap,
		hist:    newHistory(),
	}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.inCap)
	if !ok {
		return
	}

	s.emit("\x1b[0m\x1b[32mAbacus RPN\x1b[0m\r\n")
	s.renderEvent()
	s.flush(ctx)

	tickCh := make(chan uint64, 16)
	go func() {
		last := ctx.NowTick()
		for {
			last = ctx.WaitTick(last)
			select {
			case tickCh <- last:
			default:
			}
		}
	}()

	for {
		select {
		case msg := <-ch:
			switch proto.Kind(msg.Kind) {
			case proto.MsgKeyInput:
				before := s.badSeqs
				s.handleInput(msg.Payload(), ctx.NowTick())
				if s.badSeqs != before {
					_ = clientlog.Log(ctx, s.logCap,
						fmt.Sprintf("calc: malformed input sequences: %d", s.badSeqs))
				}
				s.flush(ctx)
			case proto.MsgError:
				s.showFault(proto.DecodeErrCode(msg.Payload()))
				s.flush(ctx)
			}

		case now := <-tickCh:
			// A stalled escape sequence resolves to an unrecognized key.
			if key, ok := s.dec.expire(now); ok {
				s.applyKey(key)
				s.flush(ctx)
			}
		}
	}
}

// handleInput feeds raw bytes through the decoder and applies each
// resulting key event.
func (s *Service) handleInput(b []byte, now uint64) {
	for _, c := range b {
		if key, ok := s.dec.feed(c, now); ok {
			s.applyKey(key)
		}
	}
}

// showFault surfaces a fault reported by another service on the status
// line. Like any other status it clears on the next keystroke.
func (s *Service) showFault(code proto.ErrCode) {
	s.status = code
	s.renderLine()
}

func (s *Service) applyKey(key proto.Key) {
	s.status = proto.ErrNone

	switch key.Kind {
	case proto.KeyChar:
		s.handleChar(key.Ch)

	case proto.KeyEnter:
		s.commit()
		s.renderEvent()

	case proto.KeyBackspace:
		s.ed.backspace()
		s.renderLine()

	case proto.KeyDelete:
		s.ed.deleteForward()
		s.renderLine()

	case proto.KeyLeft:
		s.ed.left()
		s.renderLine()

	case proto.KeyRight:
		s.ed.right()
		s.renderLine()

	case proto.KeyUp:
		if line, ok := s.hist.up(); ok {
			s.ed.setText(line)
		}
		s.renderLine()

	case proto.KeyDown:
		if line, ok := s.hist.down(); ok {
			s.ed.setText(line)
		}
		s.renderLine()

	case proto.KeyPageUp:
		s.scrollPreview(limits.PreviewRows)
		s.renderEvent()

	case proto.KeyPageDown:
		s.scrollPreview(-limits.PreviewRows)
		s.renderEvent()

	case proto.KeyDropTop:
		s.applyOp(proto.OpDrop)
		s.renderEvent()

	case proto.KeyFunction:
		switch key.Fn {
		case 1:
			s.applyOp(proto.OpSwap)
		case 2:
			s.applyOp(proto.OpDup)
		case 3:
			s.applyOp(proto.OpDrop)
		case 4:
			s.applyOp(proto.OpClear)
		}
		s.renderEvent()

	case proto.KeyUnrecognized:
		s.badSeqs++
		s.status = proto.ErrMalformedSequence
		s.renderLine()

	case proto.KeyNone:
	}
}

func (s *Service) handleChar(c byte) {
	switch c {
	case '+':
		s.handleOpChar(proto.OpAdd)
	case '-':
		s.handleOpChar(proto.OpSub)
	case '*':
		s.handleOpChar(proto.OpMul)
	case '/':
		s.handleOpChar(proto.OpDiv)
	case 'c', 'C':
		s.ed.clear()
		s.applyOp(proto.OpClear)
		s.renderEvent()
	default:
		s.ed.insert(c)
		s.renderLine()
	}
}

// handleOpChar commits a pending operand first, then applies the
// operator. A buffer that fails to parse blocks the operator and stays
// put for correction.
func (s *Service) handleOpChar(op proto.Op) {
	if !s.ed.empty() && !s.commitBuffer() {
		s.renderLine()
		return
	}
	s.applyOp(op)
	s.renderEvent()
}

// commit handles Enter: push the parsed buffer, or duplicate the top of
// the stack when the buffer is empty (the classic RPN convention).
func (s *Service) commit() {
	if s.ed.empty() {
		s.applyOp(proto.OpDup)
		return
	}
	s.commitBuffer()
}

// commitBuffer parses and pushes the buffer, recording it in history.
// On any failure the buffer is preserved unchanged for correction —
// malformed input must never silently vanish.
func (s *Service) commitBuffer() bool {
	d, err := decimal.Parse(string(s.ed.text()))
	if err != nil {
		s.status = errCodeFor(err)
		return false
	}
	if err := s.st.Push(d); err != nil {
		s.status = errCodeFor(err)
		return false
	}
	s.hist.push(s.ed.text())
	s.ed.clear()
	s.clampView()
	return true
}

// applyOp runs one operator; a failure becomes a transient status and
// the stack is untouched (rpn.Apply is all-or-nothing).
func (s *Service) applyOp(op proto.Op) {
	if err := rpn.Apply(op, &s.st); err != nil {
		s.status = errCodeFor(err)
	}
	s.clampView()
}

func (s *Service) scrollPreview(delta int) {
	s.view += delta
	s.clampView()
}

func (s *Service) clampView() {
	maxView := s.st.Depth() - limits.PreviewRows
	if maxView < 0 {
		maxView = 0
	}
	if s.view > maxView {
		s.view = maxView
	}
	if s.view < 0 {
		s.view = 0
	}
}

func (s *Service) flush(ctx *kernel.Context) {
	pending := s.out
	for len(pending) > 0 {
		chunk := pending
		if len(chunk) > kernel.MaxMessageBytes {
			chunk = chunk[:kernel.MaxMessageBytes]
		}
		res := ctx.SendToCapRetry(s.termCap, uint16(proto.MsgTermWrite), chunk, kernel.Capability{}, 100)
		if res != kernel.SendOK {
			break
		}
		pending = pending[len(chunk):]
	}
	s.out = s.out[:0]
}

func errCodeFor(err error) proto.ErrCode {
	switch {
	case err == nil:
		return proto.ErrNone
	case errors.Is(err, decimal.ErrDivisionByZero):
		return proto.ErrDivisionByZero
	case errors.Is(err, decimal.ErrOverflow):
		return proto.ErrOverflow
	case errors.Is(err, decimal.ErrParse):
		return proto.ErrParse
	case errors.Is(err, stack.ErrStackOverflow):
		return proto.ErrStackOverflow
	case errors.Is(err, stack.ErrStackUnderflow):
		return proto.ErrStackUnderflow
	case errors.Is(err, stack.ErrOutOfRange):
		return proto.ErrOutOfRange
	default:
		return proto.ErrMalformedSequence
	}
}
