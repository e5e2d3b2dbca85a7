package rpn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"abacus/abacusos/decimal"
	"abacus/abacusos/proto"
	"abacus/abacusos/stack"
)

func push(t *testing.T, st *stack.Stack, vals ...string) {
	t.Helper()
	for _, v := range vals {
		require.NoError(t, st.Push(decimal.MustParse(v)))
	}
}

func top(t *testing.T, st *stack.Stack) decimal.Decimal {
	t.Helper()
	v, err := st.Peek(0)
	require.NoError(t, err)
	return v
}

func TestApplyArithmetic(t *testing.T) {
	tcs := []struct {
		name string
		a, b string
		op   proto.Op
		want string
	}{
		{"add", "3", "4", proto.OpAdd, "7"},
		{"sub deepest minus top", "3", "4", proto.OpSub, "-1"},
		{"mul", "2.5", "4", proto.OpMul, "10"},
		{"div", "1", "8", proto.OpDiv, "0.125"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var st stack.Stack
			push(t, &st, tc.a, tc.b)
			require.NoError(t, Apply(tc.op, &st))
			require.Equal(t, 1, st.Depth())
			require.Equal(t, tc.want, top(t, &st).String())
		})
	}
}

func TestApplyUnderflow(t *testing.T) {
	var st stack.Stack
	push(t, &st, "5")

	require.ErrorIs(t, Apply(proto.OpAdd, &st), stack.ErrStackUnderflow)
	require.Equal(t, 1, st.Depth())
	require.Equal(t, "5", top(t, &st).String())
}

func TestDivByZeroLeavesStackUnchanged(t *testing.T) {
	var st stack.Stack
	push(t, &st, "7", "0")

	require.ErrorIs(t, Apply(proto.OpDiv, &st), decimal.ErrDivisionByZero)
	require.Equal(t, 2, st.Depth())
	require.Equal(t, "0", top(t, &st).String())
	deep, err := st.Peek(1)
	require.NoError(t, err)
	require.Equal(t, "7", deep.String())
}

func TestOverflowLeavesStackUnchanged(t *testing.T) {
	var st stack.Stack
	push(t, &st, "999999999999999999", "1")

	require.ErrorIs(t, Apply(proto.OpAdd, &st), decimal.ErrOverflow)
	require.Equal(t, 2, st.Depth())
	require.Equal(t, "1", top(t, &st).String())
}

func TestApplyStackShape(t *testing.T) {
	var st stack.Stack
	push(t, &st, "1", "2")

	require.NoError(t, Apply(proto.OpSwap, &st))
	require.Equal(t, "1", top(t, &st).String())

	require.NoError(t, Apply(proto.OpDup, &st))
	require.Equal(t, 3, st.Depth())

	require.NoError(t, Apply(proto.OpDrop, &st))
	require.Equal(t, 2, st.Depth())

	require.NoError(t, Apply(proto.OpClear, &st))
	require.Equal(t, 0, st.Depth())

	require.ErrorIs(t, Apply(proto.OpSwap, &st), stack.ErrStackUnderflow)
	require.ErrorIs(t, Apply(proto.OpDrop, &st), stack.ErrStackUnderflow)
	require.ErrorIs(t, Apply(proto.OpDup, &st), stack.ErrStackUnderflow)
}

func TestUnknownOp(t *testing.T) {
	var st stack.Stack
	require.ErrorIs(t, Apply(proto.Op(0xEE), &st), ErrUnknownOp)
}
