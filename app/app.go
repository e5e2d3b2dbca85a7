// Package app assembles the calculator: it builds the kernel, allocates
// the endpoints, and starts every service with just the capabilities it
// needs.
package app

import (
	"abacus/abacusos/kernel"
	"abacus/abacusos/services/calc"
	"abacus/abacusos/services/logger"
	"abacus/abacusos/services/serial"
	"abacus/abacusos/services/term"
	"abacus/abacusos/services/termkbd"
	"abacus/hal"
)

type system struct {
	k *kernel.Kernel
}

type Config struct {
	// NoDisplay skips the framebuffer terminal; output goes to the
	// serial port only.
	NoDisplay bool
}

// New initializes and starts the OS with default config.
func New(h hal.HAL) func() error {
	_ = newSystem(h, Config{})
	return func() error { return nil }
}

// Run starts the OS and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	_ = New(h)
	select {}
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	_ = newSystem(h, cfg)
	return func() error { return nil }
}

func RunWithConfig(h hal.HAL, cfg Config) {
	_ = NewWithConfig(h, cfg)
	select {}
}

func newSystem(h hal.HAL, cfg Config) *system {
	k := kernel.New()
	installPanicHandler(k, h)

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	termEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	inEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	k.Go(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	if !cfg.NoDisplay {
		k.Go(term.New(h.Display(), termEP.Restrict(kernel.RightRecv)))
	} else {
		k.Go(term.NewSerial(h.Serial(), termEP.Restrict(kernel.RightRecv)))
	}
	k.Go(termkbd.New(h.Input(), inEP.Restrict(kernel.RightSend)))
	k.Go(serial.New(h.Serial(), inEP.Restrict(kernel.RightSend), logEP.Restrict(kernel.RightSend)))
	k.Go(calc.New(
		inEP.Restrict(kernel.RightRecv),
		termEP.Restrict(kernel.RightSend),
		logEP.Restrict(kernel.RightSend),
	))

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return &system{k: k}
}
