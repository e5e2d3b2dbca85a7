package term

import (
	"abacus/abacusos/kernel"
	"abacus/abacusos/proto"
	"abacus/hal"
)

// SerialService forwards the terminal byte stream to the serial port
// instead of the framebuffer: the far end is assumed to be a VT100.
type SerialService struct {
	port hal.Serial
	ep   kernel.Capability
}

func NewSerial(port hal.Serial, ep kernel.Capability) *SerialService {
	return &SerialService{port: port, ep: ep}
}

func (s *SerialService) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok || s.port == nil {
		return
	}
	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgTermWrite:
			_, _ = s.port.Write(msg.Payload())
		case proto.MsgTermClear:
			_, _ = s.port.Write([]byte("\x1b[2J\x1b[H"))
		}
	}
}
