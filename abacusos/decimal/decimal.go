// Package decimal implements the exact fixed-point number used on the
// operand stack: a signed mantissa times ten to the minus scale. All
// arithmetic is integer arithmetic; there is no binary floating point
// anywhere in the value path.
package decimal

import (
	"errors"
	"math/bits"
	"strconv"

	"abacus/abacusos/limits"
)

var (
	ErrOverflow       = errors.New("decimal: overflow")
	ErrDivisionByZero = errors.New("decimal: division by zero")
	ErrParse          = errors.New("decimal: parse error")
)

// Decimal is mant x 10^-scale, kept normalized: no trailing zeros in the
// mantissa while scale > 0, zero is always {0, 0}. Equality and ordering
// are therefore defined on the pair itself.
type Decimal struct {
	mant  int64
	scale int8
}

// Zero is the canonical zero value.
var Zero = Decimal{}

var pow10 = [...]int64{
	1,
	10,
	100,
	1000,
	10000,
	100000,
	1000000,
	10000000,
	100000000,
	1000000000,
	10000000000,
	100000000000,
	1000000000000,
	10000000000000,
	100000000000000,
	1000000000000000,
	10000000000000000,
	100000000000000000,
	1000000000000000000,
}

// maxAligned bounds intermediate mantissas during scale alignment. Any
// aligned mantissa beyond it can never normalize back into range, and the
// bound keeps int64 addition of two aligned operands from wrapping.
const maxAligned int64 = 4_000_000_000_000_000_000

// New constructs a normalized Decimal from a mantissa and scale. Negative
// scales shift the mantissa up. Fails with ErrOverflow when the value does
// not fit the mantissa/scale budget.
func New(mant int64, scale int) (Decimal, error) {
	if mant == -1<<63 {
		return Zero, ErrOverflow
	}
	for scale < 0 {
		if mant > limits.MantMax/10 || mant < -limits.MantMax/10 {
			return Zero, ErrOverflow
		}
		mant *= 10
		scale++
	}
	d := norm(mant, scale)
	if d.mant > limits.MantMax || d.mant < -limits.MantMax || int(d.scale) > limits.ScaleMax {
		return Zero, ErrOverflow
	}
	return d, nil
}

// norm strips trailing zeros while the scale allows and canonicalizes
// zero. The scale argument must be small enough to fit int8.
func norm(mant int64, scale int) Decimal {
	if mant == 0 {
		return Decimal{}
	}
	for scale > 0 && mant%10 == 0 {
		mant /= 10
		scale--
	}
	return Decimal{mant: mant, scale: int8(scale)}
}

// Parse reads "[-]digits[.digits]" into a Decimal. Anything else fails
// with ErrParse; values too wide or too precise fail with ErrOverflow.
func Parse(s string) (Decimal, error) {
	if s == "" {
		return Zero, ErrParse
	}
	neg := false
	i := 0
	if s[0] == '-' {
		neg = true
		i++
	}
	var mant int64
	scale := 0
	digits := 0
	seenDot := false
	for ; i < len(s); i++ {
		c := s[i]
		if c == '.' {
			if seenDot {
				return Zero, ErrParse
			}
			seenDot = true
			continue
		}
		if c < '0' || c > '9' {
			return Zero, ErrParse
		}
		digits++
		if mant > (limits.MantMax-int64(c-'0'))/10 {
			return Zero, ErrOverflow
		}
		mant = mant*10 + int64(c-'0')
		if seenDot {
			scale++
		}
	}
	if digits == 0 {
		return Zero, ErrParse
	}
	if scale > limits.ScaleMax {
		// The digits may still normalize into range ("0.0000000000").
		d := norm(mant, scale)
		if int(d.scale) > limits.ScaleMax {
			return Zero, ErrOverflow
		}
		if neg {
			d.mant = -d.mant
		}
		return d, nil
	}
	if neg {
		mant = -mant
	}
	return norm(mant, scale), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic("decimal: MustParse(" + strconv.Quote(s) + "): " + err.Error())
	}
	return d
}

// IsZero reports whether d is zero.
func (d Decimal) IsZero() bool { return d.mant == 0 }

// Neg returns -d.
func (d Decimal) Neg() Decimal {
	d.mant = -d.mant
	return d
}

// Equal reports exact equality. Normalization makes this a pair compare.
func (d Decimal) Equal(o Decimal) bool { return d == o }

// Cmp returns -1, 0 or +1 ordering d against o.
func (d Decimal) Cmp(o Decimal) int {
	switch {
	case d == o:
		return 0
	case d.mant < 0 && o.mant >= 0:
		return -1
	case d.mant >= 0 && o.mant < 0:
		return 1
	}

	// Same sign: cross-scale the magnitudes into 128 bits.
	ahi, alo := bits.Mul64(abs64(d.mant), uint64(pow10[o.scale]))
	bhi, blo := bits.Mul64(abs64(o.mant), uint64(pow10[d.scale]))
	c := 1
	if ahi < bhi || (ahi == bhi && alo < blo) {
		c = -1
	} else if ahi == bhi && alo == blo {
		c = 0
	}
	if d.mant < 0 {
		c = -c
	}
	return c
}

// Add returns d + o, failing with ErrOverflow when the exact sum does not
// fit the mantissa/scale budget.
func (d Decimal) Add(o Decimal) (Decimal, error) {
	a, b := d, o
	for a.scale < b.scale {
		if a.mant > maxAligned/10 || a.mant < -maxAligned/10 {
			return Zero, ErrOverflow
		}
		a.mant *= 10
		a.scale++
	}
	for b.scale < a.scale {
		if b.mant > maxAligned/10 || b.mant < -maxAligned/10 {
			return Zero, ErrOverflow
		}
		b.mant *= 10
		b.scale++
	}
	sum := norm(a.mant+b.mant, int(a.scale))
	if sum.mant > limits.MantMax || sum.mant < -limits.MantMax {
		return Zero, ErrOverflow
	}
	return sum, nil
}

// Sub returns d - o.
func (d Decimal) Sub(o Decimal) (Decimal, error) {
	return d.Add(o.Neg())
}

// Mul returns d * o: mantissas multiply, scales add. Exact trailing zeros
// are stripped; anything else out of range fails with ErrOverflow.
func (d Decimal) Mul(o Decimal) (Decimal, error) {
	if d.mant == 0 || o.mant == 0 {
		return Zero, nil
	}
	neg := (d.mant < 0) != (o.mant < 0)
	scale := int(d.scale) + int(o.scale)

	hi, lo := bits.Mul64(abs64(d.mant), abs64(o.mant))
	for scale > 0 && (hi != 0 || lo > uint64(limits.MantMax) || scale > limits.ScaleMax) {
		qhi := hi / 10
		qlo, rem := bits.Div64(hi%10, lo, 10)
		if rem != 0 {
			break
		}
		hi, lo = qhi, qlo
		scale--
	}
	if hi != 0 || lo > uint64(limits.MantMax) || scale > limits.ScaleMax {
		return Zero, ErrOverflow
	}
	mant := int64(lo)
	if neg {
		mant = -mant
	}
	return norm(mant, scale), nil
}

// Div returns d / o rounded half away from zero at the largest scale not
// exceeding limits.DivScale whose mantissa fits the digit budget: small
// quotients carry the full limits.DivScale fractional digits, large ones
// trade fractional digits for integer range. Fails with ErrDivisionByZero
// on a zero divisor and ErrOverflow when even the integer quotient does
// not fit.
func (d Decimal) Div(o Decimal) (Decimal, error) {
	if o.mant == 0 {
		return Zero, ErrDivisionByZero
	}
	if d.mant == 0 {
		return Zero, nil
	}
	neg := (d.mant < 0) != (o.mant < 0)
	na := abs64(d.mant)
	nb := abs64(o.mant)

	// q = na * 10^shift / nb targets the current result scale; when the
	// rounded quotient cannot fit (the 128-bit dividend overruns nb's
	// 64-bit division window, or the mantissa budget), retry one scale
	// lower. Each retry re-divides the exact numerator, so the result is
	// rounded exactly once, at the scale it is returned with. The shift
	// never goes negative: at scale d.scale-o.scale it is zero and the
	// quotient is at most na, which always fits.
	for scale := limits.DivScale; ; scale-- {
		shift := scale - int(d.scale) + int(o.scale)
		hi, lo := bits.Mul64(na, uint64(pow10[shift]))
		if hi < nb {
			q, rem := bits.Div64(hi, lo, nb)
			if q <= uint64(limits.MantMax) {
				if rem >= nb-rem {
					q++
				}
				if q <= uint64(limits.MantMax) {
					mant := int64(q)
					if neg {
						mant = -mant
					}
					return norm(mant, scale), nil
				}
			}
		}
		if scale == 0 {
			return Zero, ErrOverflow
		}
	}
}

// String formats d exactly, with a decimal point when scale > 0.
func (d Decimal) String() string {
	if d.scale == 0 {
		return strconv.FormatInt(d.mant, 10)
	}
	var buf [limits.MantDigits + 3]byte
	out := buf[:0]
	if d.mant < 0 {
		out = append(out, '-')
	}
	digits := strconv.AppendUint(nil, abs64(d.mant), 10)
	if n := int(d.scale) + 1 - len(digits); n > 0 {
		// Pad to at least one integer digit ("0.05").
		pad := make([]byte, n)
		for i := range pad {
			pad[i] = '0'
		}
		digits = append(pad, digits...)
	}
	cut := len(digits) - int(d.scale)
	out = append(out, digits[:cut]...)
	out = append(out, '.')
	out = append(out, digits[cut:]...)
	return string(out)
}

func abs64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}
