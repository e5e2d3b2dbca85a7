package serial

import (
	"bytes"
	"io"
	"testing"
	"time"

	"abacus/abacusos/kernel"
	"abacus/abacusos/limits"
	"abacus/abacusos/proto"
)

// fakePort replays a fixed byte stream and then reports EOF, which ends
// the reader goroutine.
type fakePort struct {
	data []byte
	pos  int
}

func (f *fakePort) Read(p []byte) (int, error) {
	if f.pos >= len(f.data) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += n
	return n, nil
}

func (f *fakePort) Write(p []byte) (int, error) { return len(p), nil }

// collector drains an endpoint into a plain channel so the test can
// observe traffic without holding a kernel context itself.
type collector struct {
	ep  kernel.Capability
	out chan kernel.Message
}

func (c *collector) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(c.ep)
	if !ok {
		close(c.out)
		return
	}
	for msg := range ch {
		c.out <- msg
	}
}

func recvMsg(t *testing.T, ch chan kernel.Message) kernel.Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return kernel.Message{}
	}
}

func TestForwardsPortBytes(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	col := &collector{ep: ep.Restrict(kernel.RightRecv), out: make(chan kernel.Message, 8)}
	k.Go(col)

	svc := New(&fakePort{data: []byte("12+\r")}, ep.Restrict(kernel.RightSend), kernel.Capability{})
	k.Go(svc)

	msg := recvMsg(t, col.out)
	if proto.Kind(msg.Kind) != proto.MsgKeyInput {
		t.Fatalf("kind = %v, want %v", proto.Kind(msg.Kind), proto.MsgKeyInput)
	}
	if !bytes.Equal(msg.Payload(), []byte("12+\r")) {
		t.Errorf("payload = %q, want %q", msg.Payload(), "12+\r")
	}
}

func TestOverflowReportedDownstream(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	col := &collector{ep: ep.Restrict(kernel.RightRecv), out: make(chan kernel.Message, 16)}
	k.Go(col)

	svc := New(&fakePort{data: []byte("y")}, ep.Restrict(kernel.RightSend), kernel.Capability{})
	// Saturate the ring before the reader starts so the port byte is the
	// one that overflows.
	for i := 0; i < limits.InputRingBytes; i++ {
		if !svc.ring.TryPush('x') {
			t.Fatalf("ring full after %d bytes", i)
		}
	}
	k.Go(svc)

	// The buffered bytes arrive first, in deposit order, then the fault.
	got := 0
	for got < limits.InputRingBytes {
		msg := recvMsg(t, col.out)
		if proto.Kind(msg.Kind) != proto.MsgKeyInput {
			t.Fatalf("kind = %v after %d bytes, want %v", proto.Kind(msg.Kind), got, proto.MsgKeyInput)
		}
		for _, b := range msg.Payload() {
			if b != 'x' {
				t.Fatalf("byte %q at offset %d, want 'x'", b, got)
			}
			got++
		}
	}

	msg := recvMsg(t, col.out)
	if proto.Kind(msg.Kind) != proto.MsgError {
		t.Fatalf("kind = %v, want %v", proto.Kind(msg.Kind), proto.MsgError)
	}
	if code := proto.DecodeErrCode(msg.Payload()); code != proto.ErrQueueOverflow {
		t.Errorf("code = %v, want %v", code, proto.ErrQueueOverflow)
	}
	if n := svc.Dropped(); n != 1 {
		t.Errorf("dropped = %d, want 1", n)
	}
}
