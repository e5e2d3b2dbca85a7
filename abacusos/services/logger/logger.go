// Package logger drains log lines to the HAL logger (host stderr, UART on
// hardware).
package logger

import (
	"abacus/abacusos/kernel"
	"abacus/abacusos/proto"
	"abacus/hal"
)

type Service struct {
	log hal.Logger
	ep  kernel.Capability
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok || s.log == nil {
		return
	}
	for msg := range ch {
		if proto.Kind(msg.Kind) != proto.MsgLogLine {
			continue
		}
		s.log.WriteLineBytes(msg.Payload())
	}
}
