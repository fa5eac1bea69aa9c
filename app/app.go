// Package app wires the HAL, kernel, services and the tilt task together.
package app

import (
	"fmt"

	"tiny3d/hal"
	"tiny3d/internal/buildinfo"
	"tiny3d/internal/config"
	"tiny3d/sparkos/kernel"
	"tiny3d/sparkos/mesh"
	"tiny3d/sparkos/sensor"
	"tiny3d/sparkos/services/logger"
	"tiny3d/sparkos/services/term"
	"tiny3d/sparkos/tasks/tilt"
)

// defaultStepBudget bounds the task steps run per host frame.
const defaultStepBudget = 64

type Config struct {
	Tilt config.Config
	// Model is the mesh reported at startup; the zero value selects mesh.Cube.
	Model mesh.Model
	// StepBudget is the number of kernel steps run per call to the step func.
	StepBudget int
}

type system struct {
	h      hal.HAL
	k      *kernel.Kernel
	budget int
	now    uint64
}

// New builds the OS from cfg and returns its step func. Each call feeds the
// latest HAL tick to the kernel and runs runnable tasks.
func New(h hal.HAL, cfg Config) (func() error, error) {
	s, err := newSystem(h, cfg)
	if err != nil {
		return nil, err
	}
	return s.step, nil
}

// Run starts the OS and steps it on every HAL tick. It never returns.
func Run(h hal.HAL, cfg Config) {
	s, err := newSystem(h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString("tiny3d: " + err.Error())
		}
		select {}
	}
	ticks := h.Time().Ticks()
	for now := range ticks {
		s.k.Tick(now)
		s.k.Run(s.budget)
	}
	select {}
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	if cfg.Model.VertexCount() == 0 {
		cfg.Model = mesh.Cube
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = defaultStepBudget
	}
	cfg.Tilt.Normalize()
	if err := cfg.Tilt.Validate(); err != nil {
		return nil, err
	}

	devices, err := newDevices(h.Analog(), cfg.Tilt.Devices)
	if err != nil {
		return nil, err
	}

	k := kernel.New()
	installPanicHandler(k, h)

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	termEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	names := make([]string, len(devices))
	for i, d := range devices {
		names[i] = d.Name()
	}

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(term.New(h.Display(), termEP.Restrict(kernel.RightRecv), names))
	k.AddTask(tilt.New(
		tilt.Config{FrameInterval: cfg.Tilt.FrameIntervalTicks, LogEvery: cfg.Tilt.LogEvery},
		devices,
		cfg.Model,
		h.LED(),
		logEP.Restrict(kernel.RightSend),
		termEP.Restrict(kernel.RightSend),
	))

	if l := h.Logger(); l != nil {
		l.WriteLineString(buildinfo.Banner())
	}
	return &system{h: h, k: k, budget: cfg.StepBudget}, nil
}

func newDevices(a hal.Analog, cfgs []config.Device) ([]*sensor.Device, error) {
	devices := make([]*sensor.Device, 0, len(cfgs))
	for _, c := range cfgs {
		sc, err := c.Sensor()
		if err != nil {
			return nil, err
		}
		src, err := tilt.NewAnalogSource(a, c.Channels)
		if err != nil {
			return nil, fmt.Errorf("device %q: %w", c.Name, err)
		}
		d, err := sensor.NewDevice(sc, src)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// step drains pending ticks, advances the kernel clock to the newest one and
// runs tasks. After a task panic the kernel is frozen so the panic screen
// stays up.
func (s *system) step() error {
	if s.k.InPanicMode() {
		return nil
	}
	if t := s.h.Time(); t != nil {
		if ch := t.Ticks(); ch != nil {
		drain:
			for {
				select {
				case now := <-ch:
					s.now = now
				default:
					break drain
				}
			}
		}
	}
	if s.now != s.k.Now() {
		s.k.Tick(s.now)
	}
	s.k.Run(s.budget)
	return nil
}
