// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package core

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"math/bits"
	"strings"
)

// Fixed data space addresses.
const (
	IO_BASE = uint16(0x20) // Data address of I/O register 0.
	RAMPZ   = uint16(0x5b) // Extended Z pointer for ELPM.
	SPL     = uint16(0x5d) // Stack pointer, low byte.
	SPH     = uint16(0x5e) // Stack pointer, high byte.
	SREG    = uint16(0x5f) // Status register.
	RAMEND  = uint16(SRAM_SIZE - 1)
)

// Index register pairs.
const (
	REG_X = 26
	REG_Y = 28
	REG_Z = 30
)

const (
	INTERRUPT_COUNT  = 27 // Interrupt lines, and vectors.
	INTERRUPT_CYCLES = 4  // Cost of dispatching to a vector.
)

var _core_defines = map[string]string{
	"IO_BASE":         fmt.Sprintf("0x%x", IO_BASE),
	"RAMPZ":           fmt.Sprintf("0x%x", RAMPZ),
	"SPL":             fmt.Sprintf("0x%x", SPL),
	"SPH":             fmt.Sprintf("0x%x", SPH),
	"SREG":            fmt.Sprintf("0x%x", SREG),
	"RAMEND":          fmt.Sprintf("0x%x", RAMEND),
	"FLASHEND":        fmt.Sprintf("0x%x", FLASH_SIZE-1),
	"INTERRUPT_COUNT": fmt.Sprintf("%d", INTERRUPT_COUNT),
}

// Core is the simulation context of one microcontroller core.
type Core struct {
	Verbose bool // Set to enable verbose logging.

	PC     uint16 // Program counter, in flash words.
	Sreg   Sreg   // Status register.
	Cycles uint64 // Cycles executed since reset.

	memory  Memory
	pending uint32 // Pending interrupt lines.
}

// NewCore creates a core in its reset state.
func NewCore() (c *Core) {
	c = &Core{}
	c.Reset()
	return
}

// Defines for the core.
func (c *Core) Defines() iter.Seq2[string, string] {
	return maps.All(_core_defines)
}

// Reset the core state.
// - Zeros the program counter, cycle counter and pending interrupts.
// - Clears the registers and the I/O window, without invoking hooks.
// - Points the stack at the top of the data space.
//
// Flash and the registered hooks are kept.
func (c *Core) Reset() {
	if c.Verbose {
		log.Printf("core: reset")
	}

	c.PC = 0
	c.Cycles = 0
	c.pending = 0
	c.Sreg = Sreg{}
	c.memory.clearWindow()
	c.memory.store(SPL, byte(RAMEND&0xff))
	c.memory.store(SPH, byte(RAMEND>>8))
}

// RegisterHook installs a hook on an address of the I/O window.
func (c *Core) RegisterHook(addr uint16, hook Hook) error {
	return c.memory.RegisterHook(addr, hook)
}

// LoadFlash writes a program image into flash at a byte offset.
func (c *Core) LoadFlash(offset int, data []byte) error {
	return c.memory.LoadFlash(offset, data)
}

// FlashWord returns the flash word at a word address.
func (c *Core) FlashWord(index uint16) uint16 {
	return c.memory.FlashWord(index)
}

// ReadByte loads a byte from the data space. The status register reads
// back the current flags.
func (c *Core) ReadByte(addr uint16) byte {
	if addr == SREG {
		c.memory.store(SREG, c.Sreg.Byte())
	}
	return c.memory.ReadByte(addr)
}

// WriteByte stores a byte to the data space. A store to the status
// register updates the flags.
func (c *Core) WriteByte(addr uint16, value byte) {
	c.memory.WriteByte(addr, value)
	if addr == SREG {
		c.Sreg.SetByte(c.memory.load(SREG))
	}
}

// Peek returns the stored byte at addr without invoking hooks.
func (c *Core) Peek(addr uint16) byte {
	if addr == SREG {
		return c.Sreg.Byte()
	}
	return c.memory.load(addr)
}

// ReadWord loads a little-endian word.
func (c *Core) ReadWord(addr uint16) uint16 {
	lo := c.ReadByte(addr)
	hi := c.ReadByte(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// WriteWord stores a little-endian word.
func (c *Core) WriteWord(addr uint16, value uint16) {
	c.WriteByte(addr, byte(value))
	c.WriteByte(addr+1, byte(value>>8))
}

// Register returns general purpose register n.
func (c *Core) Register(n int) byte {
	return c.reg(n)
}

// SetRegister sets general purpose register n.
func (c *Core) SetRegister(n int, value byte) {
	c.setReg(n, value)
}

func (c *Core) reg(n int) byte {
	return c.ReadByte(uint16(n & 0x1f))
}

func (c *Core) setReg(n int, value byte) {
	c.WriteByte(uint16(n&0x1f), value)
}

func (c *Core) pair(n int) uint16 {
	return c.ReadWord(uint16(n & 0x1e))
}

func (c *Core) setPair(n int, value uint16) {
	c.WriteWord(uint16(n&0x1e), value)
}

// fetch returns the flash word at the PC, and advances the PC.
func (c *Core) fetch() (w uint16) {
	w = c.memory.FlashWord(c.PC)
	c.PC++
	return
}

// RaiseInterrupt marks an interrupt line as pending. Raising a line that
// is already pending has no effect.
func (c *Core) RaiseInterrupt(line int) (err error) {
	if line < 0 || line >= INTERRUPT_COUNT {
		err = ErrInterruptRange
		return
	}

	c.pending |= 1 << line
	return
}

// Pending returns the mask of pending interrupt lines.
func (c *Core) Pending() uint32 {
	return c.pending
}

// dispatch vectors to the highest priority pending interrupt, if
// interrupts are enabled. Returns the cycles spent.
func (c *Core) dispatch() (cycles int) {
	if c.pending == 0 || !c.Sreg.I {
		return
	}

	line := bits.TrailingZeros32(c.pending)
	c.pending &^= 1 << line

	if c.Verbose {
		log.Printf("core: interrupt %d from %05x", line, uint32(c.PC)<<1)
	}

	c.PushWord(c.PC)
	c.PC = uint16(line)
	c.Sreg.I = false

	cycles = INTERRUPT_CYCLES
	return
}

// Step executes one fetch-execute cycle, dispatching a pending interrupt
// first if one is enabled. Faults leave the PC at the faulting word.
func (c *Core) Step() (cycles int, err error) {
	c.Sreg.SetByte(c.ReadByte(SREG))

	cycles = c.dispatch()

	addr := c.PC
	w := c.fetch()
	enc := Decode(w)

	if c.Verbose {
		log.Printf("core: %05x: %v", uint32(addr)<<1, enc.Disassemble(w, c.memory.FlashWord(c.PC)))
	}

	n, err := enc.Exec(c, w)
	cycles += n
	c.Cycles += uint64(cycles)

	c.memory.store(SREG, c.Sreg.Byte())

	if err != nil {
		log.Printf("core: %v", err)
	}

	return
}

// String returns the current core state as a string.
func (c *Core) String() string {
	var text strings.Builder

	fmt.Fprintf(&text, "   pc: %05x\n", uint32(c.PC)<<1)
	fmt.Fprintf(&text, " sreg: %v\n", c.Sreg)
	fmt.Fprintf(&text, "   sp: %04x\n", c.SP())
	fmt.Fprintf(&text, "cycle: %d\n", c.Cycles)
	for row := range 4 {
		for col := range 8 {
			n := row*8 + col
			fmt.Fprintf(&text, " r%-2d %02x", n, c.memory.load(uint16(n)))
		}
		text.WriteString("\n")
	}

	return text.String()
}
