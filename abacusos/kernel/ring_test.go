package kernel

import (
	"testing"

	"abacus/abacusos/limits"
)

func TestByteRingOrder(t *testing.T) {
	var r ByteRing
	for i := 0; i < 10; i++ {
		if !r.TryPush(byte('a' + i)) {
			t.Fatalf("TryPush #%d failed", i)
		}
	}
	if r.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", r.Len())
	}
	for i := 0; i < 10; i++ {
		b, ok := r.TryPop()
		if !ok || b != byte('a'+i) {
			t.Fatalf("TryPop #%d = %q %v, want %q", i, b, ok, byte('a'+i))
		}
	}
	if _, ok := r.TryPop(); ok {
		t.Fatalf("TryPop on empty ring succeeded")
	}
}

func TestByteRingOverflowDropsNewest(t *testing.T) {
	var r ByteRing
	for i := 0; i < limits.InputRingBytes; i++ {
		if !r.TryPush(byte(i)) {
			t.Fatalf("TryPush #%d failed before capacity", i)
		}
	}
	if r.TryPush(0xFF) {
		t.Fatalf("TryPush on full ring succeeded")
	}
	if got := r.Dropped(); got != 1 {
		t.Fatalf("Dropped() = %d, want 1", got)
	}

	// The buffered prefix survives intact; only the newest byte was lost.
	b, ok := r.TryPop()
	if !ok || b != 0 {
		t.Fatalf("TryPop after overflow = %d %v, want 0", b, ok)
	}
}

func TestByteRingDrain(t *testing.T) {
	var r ByteRing
	for _, b := range []byte("escape") {
		r.TryPush(b)
	}

	var dst [4]byte
	if n := r.Drain(dst[:]); n != 4 || string(dst[:n]) != "esca" {
		t.Fatalf("Drain = %d %q, want 4 \"esca\"", n, dst[:n])
	}
	if n := r.Drain(dst[:]); n != 2 || string(dst[:n]) != "pe" {
		t.Fatalf("second Drain = %d %q, want 2 \"pe\"", n, dst[:n])
	}
	if n := r.Drain(dst[:]); n != 0 {
		t.Fatalf("Drain on empty ring = %d, want 0", n)
	}
}

func TestByteRingWraps(t *testing.T) {
	var r ByteRing
	// Push/pop more than the capacity to exercise index wrap.
	for i := 0; i < limits.InputRingBytes*3; i++ {
		if !r.TryPush(byte(i)) {
			t.Fatalf("TryPush #%d failed on empty ring", i)
		}
		b, ok := r.TryPop()
		if !ok || b != byte(i) {
			t.Fatalf("TryPop #%d = %d %v, want %d", i, b, ok, byte(i))
		}
	}
	if r.Dropped() != 0 {
		t.Fatalf("Dropped() = %d, want 0", r.Dropped())
	}
}
