// Package proto defines the closed message, key and operator sets shared
// between services. Every consumer switch over these types is meant to be
// exhaustive, so adding a variant is a compile-time-visible change.
package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgError
	MsgTermWrite
	MsgTermClear
	MsgKeyInput
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgError:
		return "error"
	case MsgTermWrite:
		return "term_write"
	case MsgTermClear:
		return "term_clear"
	case MsgKeyInput:
		return "key_input"
	default:
		return "unknown"
	}
}
