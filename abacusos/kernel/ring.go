package kernel

import (
	"sync/atomic"

	"abacus/abacusos/limits"
)

// ByteRing is a fixed-capacity single-producer/single-consumer byte
// queue. The producer owns the head, the consumer owns the tail; neither
// side allocates, so the producer may run in an interrupt-fed context.
// When the ring is full new bytes are dropped and counted; the drop
// counter is the only observable shared beyond the two indices.
type ByteRing struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint32
	tail  atomic.Uint32
	drops atomic.Uint32
	slots [limits.InputRingBytes]byte
}

// TryPush appends one byte, returning false (and counting a drop) if the
// ring is full.
func (r *ByteRing) TryPush(b byte) bool {
	head := r.head.Load()
	if head-r.tail.Load() >= limits.InputRingBytes {
		r.drops.Add(1)
		return false
	}
	r.slots[head%limits.InputRingBytes] = b
	r.head.Store(head + 1)
	return true
}

// TryPop removes one byte, returning false if the ring is empty.
func (r *ByteRing) TryPop() (byte, bool) {
	tail := r.tail.Load()
	if tail == r.head.Load() {
		return 0, false
	}
	b := r.slots[tail%limits.InputRingBytes]
	r.tail.Store(tail + 1)
	return b, true
}

// Drain pops up to len(dst) bytes in deposit order and returns the count.
func (r *ByteRing) Drain(dst []byte) int {
	n := 0
	for n < len(dst) {
		b, ok := r.TryPop()
		if !ok {
			break
		}
		dst[n] = b
		n++
	}
	return n
}

// Len returns the number of buffered bytes.
func (r *ByteRing) Len() int {
	return int(r.head.Load() - r.tail.Load())
}

// Dropped returns the total count of bytes lost to overflow.
func (r *ByteRing) Dropped() uint32 {
	return r.drops.Load()
}
