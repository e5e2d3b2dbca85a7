package proto

// Op is the closed operator set of the evaluator.
type Op uint8

const (
	OpNone Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpSwap
	OpDrop
	OpDup
	OpClear
)

func (o Op) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpSwap:
		return "swap"
	case OpDrop:
		return "drop"
	case OpDup:
		return "dup"
	case OpClear:
		return "clear"
	default:
		return "unknown"
	}
}
