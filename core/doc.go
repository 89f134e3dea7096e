// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package core implements an AVR-class 8-bit microcontroller core.
//
// The core owns a 64KiB data space (general registers r0-r31, the I/O
// register window and SRAM, with the stack at the top), a separate 128KiB
// instruction flash addressed in 16-bit words, the status register SREG,
// and a pending interrupt mask.
//
// Instruction decode is a 65536 entry table, built on first use from the
// ordered list of encodings (mask, pattern, handler). Each handler
// executes one instruction and returns its cycle cost.
//
// Peripherals attach to the core through register hooks on the
// addresses 0x00-0xff, and through RaiseInterrupt. The core performs no
// locking; callers driving peripherals from other goroutines must
// serialize every call into the core.
package core
