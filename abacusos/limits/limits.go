// Package limits is the single source of truth for every capacity and
// width used by the calculator core. No other package declares its own
// copy of these numbers.
package limits

const (
	// StackCap is the maximum operand stack depth.
	StackCap = 16

	// InputCap is the input line buffer capacity in bytes.
	InputCap = 40

	// HistoryCap is the number of committed input lines kept for recall.
	HistoryCap = 16
)

// Decimal representation. The mantissa is an int64 carrying up to
// MantDigits significant decimal digits; the scale is the count of
// fractional digits. An int64 mantissa plus a one-byte scale pads to the
// same 16-byte struct as any wider scale field would, so the widest
// mantissa the display budget needs wins.
const (
	// MantDigits is the significant-digit budget of a mantissa.
	MantDigits = 18

	// MantMax is the largest representable mantissa magnitude.
	MantMax int64 = 1e18 - 1

	// ScaleMax is the largest representable scale (fractional digits).
	ScaleMax = 9

	// DivScale is the fixed fractional-digit count of division results
	// before normalization.
	DivScale = 9
)

const (
	// EscParamCap bounds the CSI parameter buffer. Sequences that
	// accumulate more parameter bytes resolve to an unrecognized key.
	EscParamCap = 8

	// EscTimeoutTicks is how many timebase ticks a partial escape
	// sequence may stall before it resolves to an unrecognized key.
	EscTimeoutTicks = 50
)

const (
	// InputRingBytes is the capacity of the serial receive byte ring
	// shared between the reader context and the input service.
	InputRingBytes = 256

	// PreviewRows is the height of the stack preview window on screen.
	PreviewRows = 8
)
