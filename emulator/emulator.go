// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives an AVR core and its peripherals.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/avre/core"
	"github.com/ezrec/avre/internal"
	"github.com/ezrec/avre/io"
	"github.com/ezrec/avre/loader"
)

var _emulator_defines = map[string]string{
	"FLASH_SIZE": fmt.Sprintf("0x%x", core.FLASH_SIZE),
	"SRAM_SIZE":  fmt.Sprintf("0x%x", core.SRAM_SIZE),
}

// Emulator state. Core + peripherals + stop condition.
type Emulator struct {
	Verbose    bool // If set, enables verbose logging.
	*core.Core      // Reference to the core simulation.

	Usart io.Usart // Serial port, attached at the first Reset.

	// Until is a Starlark expression evaluated after every tick.
	// When it is true, the run stops.
	Until string
	// HaltOnBreak stops the run at a BREAK instruction.
	HaltOnBreak bool

	peripherals []io.Peripheral
	attached    bool
	until       *until
}

// NewEmulator creates a new emulator, with an unattached USART0.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Core: core.NewCore(),
	}

	emu.Usart.Config = io.USART0
	emu.peripherals = []io.Peripheral{&emu.Usart}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	seqs := []iter.Seq2[string, string]{
		maps.All(_emulator_defines),
		emu.Core.Defines(),
	}
	for _, p := range emu.peripherals {
		seqs = append(seqs, p.Defines())
	}

	return internal.IterSeq2Concat(seqs...)
}

// Load installs a program image into flash.
func (emu *Emulator) Load(img *loader.Image) (err error) {
	err = img.Install(emu.Core)
	return
}

// Reset the emulator state. Peripherals are attached to the core on the
// first reset after NewEmulator or Close; set their inputs and outputs
// before it.
func (emu *Emulator) Reset() (err error) {
	emu.Core.Verbose = emu.Verbose
	emu.Usart.Verbose = emu.Verbose

	if !emu.attached {
		for _, p := range emu.peripherals {
			err = p.Attach(emu.Core)
			if err != nil {
				return
			}
		}
		emu.attached = true
	}

	emu.Core.Reset()
	for _, p := range emu.peripherals {
		p.Reset()
	}

	return
}

// Close detaches the peripherals from the core. A later Reset attaches
// them again.
func (emu *Emulator) Close() (err error) {
	if !emu.attached {
		return
	}

	var errs []error
	for _, p := range emu.peripherals {
		errs = append(errs, p.Close())
	}
	emu.attached = false

	err = errors.Join(errs...)
	return
}

// Tick performs a single tick of the emulator: every peripheral ticks
// once, then the core steps once.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Core.Verbose = emu.Verbose

	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: uint32(emu.Core.PC) << 1, Cycle: emu.Core.Cycles, Err: err}
		}
	}()

	for _, p := range emu.peripherals {
		err = p.Tick()
		if err != nil {
			return
		}
	}

	_, err = emu.Core.Step()
	if errors.Is(err, core.ErrBreak{}) {
		err = nil
		if emu.HaltOnBreak {
			done = true
			return
		}
	}
	if err != nil {
		return
	}

	done, err = emu.stop()
	return
}

// stop evaluates the stop condition.
func (emu *Emulator) stop() (done bool, err error) {
	if emu.Until == "" {
		return
	}

	if emu.until == nil || emu.until.source != emu.Until {
		emu.until, err = compileUntil(emu.Until, emu.Defines())
		if err != nil {
			return
		}
		if emu.Verbose {
			log.Printf("emulator: until %v", emu.Until)
		}
	}

	done, err = emu.until.eval(emu.Core)
	return
}

// Run ticks the emulator until it is done, fails, or the context is
// cancelled. Cancellation is only observed between ticks.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
