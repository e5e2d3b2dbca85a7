// Package stack implements the bounded operand stack. The backing array
// is fixed at limits.StackCap; no operation ever reallocates, and a
// failing operation never mutates.
package stack

import (
	"errors"

	"abacus/abacusos/decimal"
	"abacus/abacusos/limits"
)

var (
	ErrStackOverflow  = errors.New("stack: overflow")
	ErrStackUnderflow = errors.New("stack: underflow")
	ErrOutOfRange     = errors.New("stack: depth out of range")
)

// Stack is a LIFO of Decimal values. The zero value is an empty stack.
type Stack struct {
	vals [limits.StackCap]decimal.Decimal
	n    int
}

// Depth returns the current number of values.
func (s *Stack) Depth() int { return s.n }

// Push inserts v at the top.
func (s *Stack) Push(v decimal.Decimal) error {
	if s.n >= limits.StackCap {
		return ErrStackOverflow
	}
	s.vals[s.n] = v
	s.n++
	return nil
}

// Pop removes and returns the top value.
func (s *Stack) Pop() (decimal.Decimal, error) {
	if s.n == 0 {
		return decimal.Zero, ErrStackUnderflow
	}
	s.n--
	return s.vals[s.n], nil
}

// MultiPop removes the top len(dst) values, filling dst from the deepest
// of the popped values to the topmost. Re-pushing dst in order restores
// the stack exactly; operators that care about operand order (sub, div)
// must treat dst[0] as the left operand.
func (s *Stack) MultiPop(dst []decimal.Decimal) error {
	n := len(dst)
	if n > s.n {
		return ErrStackUnderflow
	}
	copy(dst, s.vals[s.n-n:s.n])
	s.n -= n
	return nil
}

// Swap exchanges the top two values.
func (s *Stack) Swap() error {
	if s.n < 2 {
		return ErrStackUnderflow
	}
	s.vals[s.n-1], s.vals[s.n-2] = s.vals[s.n-2], s.vals[s.n-1]
	return nil
}

// DropTop discards the top value.
func (s *Stack) DropTop() error {
	if s.n == 0 {
		return ErrStackUnderflow
	}
	s.n--
	return nil
}

// Dup pushes a copy of the top value.
func (s *Stack) Dup() error {
	if s.n == 0 {
		return ErrStackUnderflow
	}
	return s.Push(s.vals[s.n-1])
}

// Peek returns a copy of the value at the given depth, 0 being the top.
func (s *Stack) Peek(depth int) (decimal.Decimal, error) {
	if depth < 0 || depth >= s.n {
		return decimal.Zero, ErrOutOfRange
	}
	return s.vals[s.n-1-depth], nil
}

// Clear empties the stack.
func (s *Stack) Clear() { s.n = 0 }
