// Package logger forwards MsgLogLine messages to the HAL log sink.
package logger

import (
	"tiny3d/hal"
	"tiny3d/sparkos/kernel"
	"tiny3d/sparkos/proto"
)

type Service struct {
	log hal.Logger
	ep  kernel.Capability

	dropped uint32
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

// Dropped returns how many messages of an unexpected kind were discarded.
func (s *Service) Dropped() uint32 { return s.dropped }

func (s *Service) Step(ctx *kernel.Context) {
	for {
		msg, ok := ctx.Recv(s.ep)
		if !ok {
			break
		}
		if proto.Kind(msg.Kind) != proto.MsgLogLine || s.log == nil {
			s.dropped++
			continue
		}
		s.log.WriteLineBytes(msg.Payload())
	}
	ctx.BlockOnRecv(s.ep)
}
