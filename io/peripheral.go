// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package io provides the peripherals of the AVR emulator.
// Peripherals attach to a core through register hooks on its I/O window,
// and signal it through interrupt lines.
package io

import (
	"iter"

	"github.com/ezrec/avre/core"
)

// Peripheral defines the interface for all devices attached to a core.
type Peripheral interface {
	// Attach registers the peripheral's hooks on the core.
	Attach(c *core.Core) error
	// Reset returns the peripheral's registers to their power-on state.
	Reset()
	// Tick advances the peripheral once per driver iteration.
	// It must be called from the goroutine that steps the core.
	Tick() error
	// Defines returns the peripheral's register names and values.
	Defines() iter.Seq2[string, string]
	// Close removes the peripheral's hooks from the core, and stops any
	// goroutine it started.
	Close() error
}
