// Package serial feeds raw bytes from the HAL serial port into the
// calculator input endpoint.
//
// The reader goroutine is the asynchronous producer: it blocks on the
// port and deposits into a fixed byte ring. The service side drains the
// ring in deposit order and forwards it as messages, so the consumer can
// sleep on its endpoint instead of polling the port.
package serial

import (
	"fmt"

	clientlog "abacus/abacusos/client/logger"
	"abacus/abacusos/kernel"
	"abacus/abacusos/proto"
	"abacus/hal"
)

type Service struct {
	serial hal.Serial
	outCap kernel.Capability
	logCap kernel.Capability

	ring     kernel.ByteRing
	reported uint32
}

// New streams serial input bytes to the given consumer capability.
func New(serial hal.Serial, outCap, logCap kernel.Capability) *Service {
	return &Service{serial: serial, outCap: outCap, logCap: logCap}
}

func (s *Service) Run(ctx *kernel.Context) {
	if s.serial == nil {
		return
	}

	wake := make(chan struct{}, 1)
	go s.readLoop(wake)

	var buf [kernel.MaxMessageBytes]byte
	for range wake {
		for {
			n := s.ring.Drain(buf[:])
			if n == 0 {
				break
			}
			s.forward(ctx, buf[:n])
		}
		s.reportDrops(ctx)
	}
}

// readLoop runs outside the service context: it owns the ring head and
// only signals the wake channel, never the kernel.
func (s *Service) readLoop(wake chan<- struct{}) {
	var buf [kernel.MaxMessageBytes]byte
	for {
		n, err := s.serial.Read(buf[:])
		for i := 0; i < n; i++ {
			s.ring.TryPush(buf[i])
		}
		if n > 0 {
			select {
			case wake <- struct{}{}:
			default:
			}
		}
		if err != nil {
			return
		}
	}
}

func (s *Service) forward(ctx *kernel.Context, b []byte) {
	res := ctx.SendToCapRetry(s.outCap, uint16(proto.MsgKeyInput), b, kernel.Capability{}, 100)
	if res != kernel.SendOK {
		_ = clientlog.Log(ctx, s.logCap, "serial: forward dropped: "+res.String())
	}
}

// reportDrops surfaces ring overflow. Losing input bytes must be
// distinguishable from normal idle, so every increase is logged and
// reported downstream as a fault for the status line.
func (s *Service) reportDrops(ctx *kernel.Context) {
	d := s.ring.Dropped()
	if d == s.reported {
		return
	}
	_ = clientlog.Log(ctx, s.logCap, fmt.Sprintf("serial: input overflow, %d bytes lost", d-s.reported))
	ctx.SendToCapRetry(s.outCap, uint16(proto.MsgError), proto.ErrQueueOverflow.Encode(), kernel.Capability{}, 100)
	s.reported = d
}

// Dropped exposes the overflow counter.
func (s *Service) Dropped() uint32 { return s.ring.Dropped() }
