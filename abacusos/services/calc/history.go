package calc

import "abacus/abacusos/limits"

// history is a fixed ring of committed input lines with a browse cursor.
// Browsing clamps at the oldest entry and stepping below the newest
// leaves browsing mode with an empty line; it never wraps.
type history struct {
	entries [limits.HistoryCap][limits.InputCap]byte
	lens    [limits.HistoryCap]uint8
	count   int
	next    int

	// browse is the recall position: -1 when not browsing, 0 the newest
	// entry, count-1 the oldest.
	browse int
}

func newHistory() history {
	return history{browse: -1}
}

func (h *history) len() int { return h.count }

// push records a committed line and resets browsing.
func (h *history) push(line []byte) {
	h.lens[h.next] = uint8(copy(h.entries[h.next][:], line))
	h.next = (h.next + 1) % limits.HistoryCap
	if h.count < limits.HistoryCap {
		h.count++
	}
	h.browse = -1
}

// up moves toward older entries, clamping at the oldest.
func (h *history) up() ([]byte, bool) {
	if h.count == 0 {
		return nil, false
	}
	if h.browse < h.count-1 {
		h.browse++
	}
	return h.at(h.browse), true
}

// down moves toward newer entries; stepping past the newest stops
// browsing and yields the empty line.
func (h *history) down() ([]byte, bool) {
	switch {
	case h.browse < 0:
		return nil, false
	case h.browse == 0:
		h.browse = -1
		return []byte{}, true
	default:
		h.browse--
		return h.at(h.browse), true
	}
}

func (h *history) at(browse int) []byte {
	idx := (h.next - 1 - browse + 2*limits.HistoryCap) % limits.HistoryCap
	return h.entries[idx][:h.lens[idx]]
}
