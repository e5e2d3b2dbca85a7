package calc

import (
	"abacus/abacusos/limits"
	"abacus/abacusos/proto"
)

type decState uint8

const (
	decGround decState = iota
	decEscape
	decCSI
)

// decoder turns the raw input byte stream into key events, one byte at a
// time. Every state has a transition for every byte value and the
// parameter buffer is capacity-bounded, so no input can wedge it or grow
// memory.
type decoder struct {
	state  decState
	params [limits.EscParamCap]byte
	nparam int
	raw    [proto.KeyRawCap]byte
	nraw   int
	since  uint64
}

// feed consumes one byte at tick now; the returned bool reports whether a
// key event was produced.
func (d *decoder) feed(b byte, now uint64) (proto.Key, bool) {
	switch d.state {
	case decEscape:
		d.capture(b)
		if b == '[' {
			d.state = decCSI
			return proto.Key{}, false
		}
		// ESC followed by anything else: surface the malformed sequence,
		// never swallow it.
		return d.abort(), true

	case decCSI:
		d.capture(b)
		if (b >= '0' && b <= '9') || b == ';' {
			if d.nparam >= limits.EscParamCap {
				return d.abort(), true
			}
			d.params[d.nparam] = b
			d.nparam++
			return proto.Key{}, false
		}
		if key, ok := d.terminate(b); ok {
			d.reset()
			return key, true
		}
		return d.abort(), true

	default: // decGround
		switch {
		case b == 0x1b:
			d.reset()
			d.state = decEscape
			d.capture(b)
			d.since = now
			return proto.Key{}, false
		case b == '\r' || b == '\n':
			return proto.Key{Kind: proto.KeyEnter}, true
		case b == 0x08 || b == 0x7f:
			return proto.Key{Kind: proto.KeyBackspace}, true
		case b >= 0x20 && b < 0x7f:
			return proto.Key{Kind: proto.KeyChar, Ch: b}, true
		default:
			d.reset()
			d.capture(b)
			return d.abort(), true
		}
	}
}

// expire resolves a sequence that has stalled past the timeout to an
// unrecognized key, returning the decoder to ground.
func (d *decoder) expire(now uint64) (proto.Key, bool) {
	if d.state == decGround || now-d.since < limits.EscTimeoutTicks {
		return proto.Key{}, false
	}
	return d.abort(), true
}

func (d *decoder) terminate(b byte) (proto.Key, bool) {
	switch b {
	case 'A':
		return proto.Key{Kind: proto.KeyUp}, true
	case 'B':
		return proto.Key{Kind: proto.KeyDown}, true
	case 'C':
		return proto.Key{Kind: proto.KeyRight}, true
	case 'D':
		return proto.Key{Kind: proto.KeyLeft}, true
	case 'P', 'Q', 'R', 'S':
		return proto.Key{Kind: proto.KeyFunction, Fn: b - 'P' + 1}, true
	case '~':
		vals, n := splitParams(d.params[:d.nparam])
		if n == 0 {
			return proto.Key{}, false
		}
		switch vals[0] {
		case 3:
			if n >= 2 && vals[1] == 2 {
				// Shift-Delete.
				return proto.Key{Kind: proto.KeyDropTop}, true
			}
			return proto.Key{Kind: proto.KeyDelete}, true
		case 5:
			return proto.Key{Kind: proto.KeyPageUp}, true
		case 6:
			return proto.Key{Kind: proto.KeyPageDown}, true
		case 11, 12, 13, 14:
			return proto.Key{Kind: proto.KeyFunction, Fn: uint8(vals[0] - 10)}, true
		}
		return proto.Key{}, false
	}
	return proto.Key{}, false
}

// abort emits the captured bytes as an unrecognized key and resets to
// ground.
func (d *decoder) abort() proto.Key {
	key := proto.Key{Kind: proto.KeyUnrecognized}
	key.RawLen = uint8(copy(key.Raw[:], d.raw[:d.nraw]))
	d.reset()
	return key
}

func (d *decoder) reset() {
	d.state = decGround
	d.nparam = 0
	d.nraw = 0
	d.since = 0
}

func (d *decoder) capture(b byte) {
	if d.nraw < len(d.raw) {
		d.raw[d.nraw] = b
		d.nraw++
	}
}

// splitParams reads up to two semicolon-separated CSI parameters.
func splitParams(b []byte) (vals [2]int, n int) {
	if len(b) == 0 {
		return vals, 0
	}
	cur := 0
	for _, c := range b {
		if c == ';' {
			if n < len(vals) {
				vals[n] = cur
			}
			n++
			cur = 0
			continue
		}
		cur = cur*10 + int(c-'0')
	}
	if n < len(vals) {
		vals[n] = cur
	}
	n++
	return vals, n
}
