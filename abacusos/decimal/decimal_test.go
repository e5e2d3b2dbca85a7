package decimal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"abacus/abacusos/limits"
)

func TestParse(t *testing.T) {
	tcs := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"7", "7"},
		{"-7", "-7"},
		{"12.5", "12.5"},
		{"-12.5", "-12.5"},
		{"0.05", "0.05"},
		{"3.1400", "3.14"},
		{"000042", "42"},
		{"-0", "0"},
		{"0.000000000", "0"},
		{"999999999999999999", "999999999999999999"},
	}
	for _, tc := range tcs {
		t.Run(tc.in, func(t *testing.T) {
			d, err := Parse(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, d.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "-", ".", "-.", "1.2.3", "1e5", "12a", "+5", " 1"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.ErrorIs(t, err, ErrParse)
		})
	}
	for _, in := range []string{"1000000000000000000", "0.0000000001", "1.0000000001"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.ErrorIs(t, err, ErrOverflow)
		})
	}
}

func TestNewNormalizes(t *testing.T) {
	a, err := New(1250, 2)
	require.NoError(t, err)
	b, err := New(125, 1)
	require.NoError(t, err)
	require.True(t, a.Equal(b))
	require.Equal(t, "12.5", a.String())

	z, err := New(0, 5)
	require.NoError(t, err)
	require.True(t, z.Equal(Zero))

	up, err := New(5, -2)
	require.NoError(t, err)
	require.Equal(t, "500", up.String())
}

func TestAddSub(t *testing.T) {
	tcs := []struct {
		a, b, sum string
	}{
		{"1", "2", "3"},
		{"12.5", "0.5", "13"},
		{"0.1", "0.2", "0.3"},
		{"-1.5", "1.5", "0"},
		{"999999999999999998", "1", "999999999999999999"},
		{"0.000000001", "0.000000001", "0.000000002"},
	}
	for _, tc := range tcs {
		t.Run(tc.a+"+"+tc.b, func(t *testing.T) {
			a, b := MustParse(tc.a), MustParse(tc.b)
			sum, err := a.Add(b)
			require.NoError(t, err)
			require.Equal(t, tc.sum, sum.String())

			// Round trip: (a+b)-b = a exactly.
			back, err := sum.Sub(b)
			require.NoError(t, err)
			require.True(t, back.Equal(a), "(%s+%s)-%s = %s, want %s", tc.a, tc.b, tc.b, back, a)
		})
	}
}

func TestAddOverflow(t *testing.T) {
	max := MustParse("999999999999999999")
	_, err := max.Add(MustParse("1"))
	require.ErrorIs(t, err, ErrOverflow)

	// Alignment past the mantissa budget with an unstrippable tail.
	_, err = MustParse("900000000000000000").Add(MustParse("0.5"))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestMul(t *testing.T) {
	tcs := []struct {
		a, b, prod string
	}{
		{"3", "4", "12"},
		{"1.5", "2", "3"},
		{"0.25", "4", "1"},
		{"-0.5", "0.5", "-0.25"},
		{"0", "123.4", "0"},
		{"2.5", "2.5", "6.25"},
	}
	for _, tc := range tcs {
		t.Run(tc.a+"*"+tc.b, func(t *testing.T) {
			got, err := MustParse(tc.a).Mul(MustParse(tc.b))
			require.NoError(t, err)
			require.Equal(t, tc.prod, got.String())
		})
	}

	_, err := MustParse("999999999999999999").Mul(MustParse("10"))
	require.ErrorIs(t, err, ErrOverflow)
	_, err = MustParse("0.00001").Mul(MustParse("0.000001"))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestDivRounding(t *testing.T) {
	// Round half away from zero at limits.DivScale fractional digits.
	tcs := []struct {
		a, b, q string
	}{
		{"1", "2", "0.5"},
		{"10", "4", "2.5"},
		{"1", "3", "0.333333333"},
		{"2", "3", "0.666666667"},
		{"-2", "3", "-0.666666667"},
		{"2", "-3", "-0.666666667"},
		{"1", "8", "0.125"},
		{"0.000000001", "2", "0.000000001"}, // exactly half rounds away
		{"-0.000000001", "2", "-0.000000001"},
		{"0", "5", "0"},
		{"7", "7", "1"},
	}
	for _, tc := range tcs {
		t.Run(tc.a+"/"+tc.b, func(t *testing.T) {
			got, err := MustParse(tc.a).Div(MustParse(tc.b))
			require.NoError(t, err)
			require.Equal(t, tc.q, got.String())
		})
	}
	require.Equal(t, limits.DivScale, 9, "rounding cases above assume 9 fractional digits")
}

func TestDivLargeQuotients(t *testing.T) {
	// Quotients whose scaled mantissa would not fit at full fractional
	// precision give up fractional digits instead of failing.
	tcs := []struct {
		a, b, q string
	}{
		{"20000000000", "1", "20000000000"},
		{"100000000000", "2", "50000000000"},
		{"999999999999999999", "1", "999999999999999999"},
		{"999999999999999999", "7", "142857142857142857"}, // exact
		{"20000000000", "3", "6666666666.66666667"},       // rounded at the reduced scale
		{"-20000000000", "3", "-6666666666.66666667"},
	}
	for _, tc := range tcs {
		t.Run(tc.a+"/"+tc.b, func(t *testing.T) {
			got, err := MustParse(tc.a).Div(MustParse(tc.b))
			require.NoError(t, err)
			require.Equal(t, tc.q, got.String())
		})
	}

	// An integer part beyond the digit budget is a real overflow.
	_, err := MustParse("999999999999999999").Div(MustParse("0.000000001"))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestDivByZero(t *testing.T) {
	_, err := MustParse("1").Div(Zero)
	require.ErrorIs(t, err, ErrDivisionByZero)
	_, err = Zero.Div(Zero)
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestCmp(t *testing.T) {
	tcs := []struct {
		a, b string
		want int
	}{
		{"1", "2", -1},
		{"2", "1", 1},
		{"1.50", "1.5", 0},
		{"-1", "1", -1},
		{"-2", "-1", -1},
		{"0.3", "0.29999", 1},
		{"0", "0", 0},
	}
	for _, tc := range tcs {
		t.Run(tc.a+" vs "+tc.b, func(t *testing.T) {
			require.Equal(t, tc.want, MustParse(tc.a).Cmp(MustParse(tc.b)))
		})
	}
}
