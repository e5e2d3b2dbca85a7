// Package rpn applies operators to the operand stack. Application is
// all-or-nothing: a failed operator leaves the stack exactly as it was.
package rpn

import (
	"errors"

	"abacus/abacusos/decimal"
	"abacus/abacusos/proto"
	"abacus/abacusos/stack"
)

// ErrUnknownOp reports an operator tag outside the closed set.
var ErrUnknownOp = errors.New("rpn: unknown operator")

// Apply performs one operator against the stack. Arithmetic failures
// (overflow, division by zero) restore the consumed operands before
// returning, so a failed application is indistinguishable from never
// having been invoked.
func Apply(op proto.Op, st *stack.Stack) error {
	switch op {
	case proto.OpAdd, proto.OpSub, proto.OpMul, proto.OpDiv:
		return applyBinary(op, st)
	case proto.OpSwap:
		return st.Swap()
	case proto.OpDrop:
		return st.DropTop()
	case proto.OpDup:
		return st.Dup()
	case proto.OpClear:
		st.Clear()
		return nil
	default:
		return ErrUnknownOp
	}
}

func applyBinary(op proto.Op, st *stack.Stack) error {
	var args [2]decimal.Decimal
	if err := st.MultiPop(args[:]); err != nil {
		return err
	}

	// args[0] is the deeper value, i.e. the left operand: with [3, 4] on
	// the stack, OpSub computes 3 - 4.
	var res decimal.Decimal
	var err error
	switch op {
	case proto.OpAdd:
		res, err = args[0].Add(args[1])
	case proto.OpSub:
		res, err = args[0].Sub(args[1])
	case proto.OpMul:
		res, err = args[0].Mul(args[1])
	case proto.OpDiv:
		res, err = args[0].Div(args[1])
	}
	if err != nil {
		// Restore in returned order; both pushes fit because the pops
		// just freed the slots.
		_ = st.Push(args[0])
		_ = st.Push(args[1])
		return err
	}
	return st.Push(res)
}
