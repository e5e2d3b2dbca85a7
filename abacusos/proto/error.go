package proto

// ErrCode is the status surface of the calculator: every fault a user can
// provoke maps to exactly one code. Codes are transient display state,
// never fatal.
type ErrCode uint16

const (
	ErrNone ErrCode = iota
	ErrStackOverflow
	ErrStackUnderflow
	ErrOutOfRange
	ErrOverflow
	ErrDivisionByZero
	ErrParse
	ErrMalformedSequence
	ErrQueueOverflow
)

// Encode renders c as a MsgError payload.
func (c ErrCode) Encode() []byte {
	return []byte{byte(c >> 8), byte(c)}
}

// DecodeErrCode reads an ErrCode back out of a MsgError payload. Short
// payloads decode as ErrNone.
func DecodeErrCode(b []byte) ErrCode {
	if len(b) < 2 {
		return ErrNone
	}
	return ErrCode(b[0])<<8 | ErrCode(b[1])
}

func (c ErrCode) String() string {
	switch c {
	case ErrNone:
		return ""
	case ErrStackOverflow:
		return "stack full"
	case ErrStackUnderflow:
		return "stack empty"
	case ErrOutOfRange:
		return "bad depth"
	case ErrOverflow:
		return "overflow"
	case ErrDivisionByZero:
		return "div by zero"
	case ErrParse:
		return "parse error"
	case ErrMalformedSequence:
		return "bad sequence"
	case ErrQueueOverflow:
		return "input lost"
	default:
		return "unknown"
	}
}
