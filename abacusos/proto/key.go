package proto

// KeyKind tags a decoded key event.
type KeyKind uint8

const (
	KeyNone KeyKind = iota
	KeyChar
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyFunction
	KeyDropTop
	KeyUnrecognized
)

// KeyRawCap bounds the raw-byte capture of an unrecognized sequence.
const KeyRawCap = 12

// Key is one decoded input event. Ch is set for KeyChar, Fn for
// KeyFunction, Raw/RawLen for KeyUnrecognized.
type Key struct {
	Kind   KeyKind
	Ch     byte
	Fn     uint8
	Raw    [KeyRawCap]byte
	RawLen uint8
}

// RawBytes returns the captured bytes of an unrecognized sequence.
func (k *Key) RawBytes() []byte { return k.Raw[:k.RawLen] }

func (k KeyKind) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyChar:
		return "char"
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyPageUp:
		return "pgup"
	case KeyPageDown:
		return "pgdn"
	case KeyFunction:
		return "fn"
	case KeyDropTop:
		return "drop_top"
	case KeyUnrecognized:
		return "unrecognized"
	default:
		return "unknown"
	}
}
