package kernel

import "testing"

func testContext(k *Kernel) *Context {
	return &Context{k: k}
}

func TestSendRecv(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := testContext(k)

	if res := ctx.SendToCapResult(ep, 7, []byte("hi"), Capability{}); res != SendOK {
		t.Fatalf("send = %v, want ok", res)
	}
	msg, ok := ctx.TryRecv(ep)
	if !ok {
		t.Fatalf("TryRecv failed after send")
	}
	if msg.Kind != 7 || string(msg.Payload()) != "hi" {
		t.Fatalf("recv = kind %d payload %q, want kind 7 payload \"hi\"", msg.Kind, msg.Payload())
	}
	if _, ok := ctx.TryRecv(ep); ok {
		t.Fatalf("TryRecv on drained endpoint succeeded")
	}
}

func TestSendRights(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := testContext(k)

	recvOnly := ep.Restrict(RightRecv)
	if res := ctx.SendToCapResult(recvOnly, 1, nil, Capability{}); res != SendErrToNoSendRight {
		t.Fatalf("send via recv-only cap = %v, want no send right", res)
	}
	if res := ctx.SendToCapResult(Capability{}, 1, nil, Capability{}); res != SendErrInvalidToCap {
		t.Fatalf("send via zero cap = %v, want invalid cap", res)
	}
	sendOnly := ep.Restrict(RightSend)
	if _, ok := ctx.RecvChan(sendOnly); ok {
		t.Fatalf("RecvChan via send-only cap succeeded")
	}
}

func TestRestrict(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)

	if c := ep.Restrict(RightSend); !c.Valid() || !c.canSend() || c.canRecv() {
		t.Fatalf("Restrict(send) = send=%v recv=%v, want send only", c.canSend(), c.canRecv())
	}
	if c := ep.Restrict(RightRecv).Restrict(RightSend); c.Valid() {
		t.Fatalf("re-widening a restricted capability succeeded")
	}
}

func TestSendQueueFull(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := testContext(k)

	for i := 0; i < endpointSlots; i++ {
		if res := ctx.SendToCapResult(ep, 1, nil, Capability{}); res != SendOK {
			t.Fatalf("send #%d = %v, want ok", i, res)
		}
	}
	if res := ctx.SendToCapResult(ep, 1, nil, Capability{}); res != SendErrQueueFull {
		t.Fatalf("send on full queue = %v, want queue full", res)
	}

	// Draining one slot makes the queue accept again: the overflow is a
	// backpressure signal, not a dead endpoint.
	if _, ok := ctx.TryRecv(ep); !ok {
		t.Fatalf("TryRecv on full queue failed")
	}
	if res := ctx.SendToCapResult(ep, 1, nil, Capability{}); res != SendOK {
		t.Fatalf("send after drain = %v, want ok", res)
	}
}

func TestPayloadTooLarge(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := testContext(k)

	big := make([]byte, MaxMessageBytes+1)
	if res := ctx.SendToCapResult(ep, 1, big, Capability{}); res != SendErrPayloadTooLarge {
		t.Fatalf("oversized send = %v, want payload too large", res)
	}
}

func TestTickWait(t *testing.T) {
	k := New()
	ctx := testContext(k)

	done := make(chan uint64, 1)
	go func() {
		done <- ctx.WaitTick(0)
	}()

	k.TickTo(3)
	if got := <-done; got != 3 {
		t.Fatalf("WaitTick(0) = %d, want 3", got)
	}
	if got := ctx.NowTick(); got != 3 {
		t.Fatalf("NowTick() = %d, want 3", got)
	}

	// Stale tick values never move the timebase backwards.
	k.TickTo(2)
	if got := ctx.NowTick(); got != 3 {
		t.Fatalf("NowTick() after stale TickTo = %d, want 3", got)
	}
}

type panicker struct{}

func (panicker) Run(*Context) { panic("boom") }

func TestPanicCapture(t *testing.T) {
	k := New()
	got := make(chan PanicInfo, 1)
	k.SetPanicHandler(func(info PanicInfo) { got <- info })

	if k.InPanicMode() {
		t.Fatalf("InPanicMode true before any panic")
	}
	id := k.Go(panicker{})
	info := <-got
	if info.TaskID != id {
		t.Errorf("TaskID = %d, want %d", info.TaskID, id)
	}
	if info.Value != "boom" {
		t.Errorf("Value = %v, want boom", info.Value)
	}
	if !k.InPanicMode() {
		t.Errorf("InPanicMode false after panic")
	}

	// Only the first panic reaches the handler.
	k.triggerPanic(PanicInfo{TaskID: 99, Value: "again"})
	select {
	case info := <-got:
		t.Errorf("handler ran twice: %+v", info)
	default:
	}
}

func TestPanicStatePerKernel(t *testing.T) {
	k1 := New()
	k1.triggerPanic(PanicInfo{Value: "boom"})
	if !k1.InPanicMode() {
		t.Fatalf("k1 not in panic mode")
	}
	if New().InPanicMode() {
		t.Errorf("fresh kernel inherits panic state")
	}
}
